// Package proj loads logic project files: TOML files that bundle the theory
// sources of a project with the rules theory they are checked against and the
// formatting settings of the writer.
package proj

// Project represents a project -- specifically, the project configuration
// loaded from a logic-proj.toml file.
type Project struct {
	// Name is the name of the project
	Name string

	// ProjectRoot is the path to the root directory of the project
	ProjectRoot string

	// RulesFile is the path to the rules theory, relative to the project root
	RulesFile string

	// Sources is the ordered list of theory files to check, relative to the
	// project root
	Sources []string

	// Writer holds the pretty-printer settings used by `logic fmt`
	Writer WriterConfig
}

// WriterConfig represents the pretty-printer settings of a project
type WriterConfig struct {
	// LineLength is the column width at which lists are broken
	LineLength int

	// TabSize is the number of columns per indentation level
	TabSize int

	// Tabs selects tab indentation instead of spaces
	Tabs bool
}

// DefaultWriterConfig returns the conventional writer settings.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{LineLength: 80, TabSize: 4, Tabs: true}
}
