package proj

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/aaronpuchert/logic/common"
)

// tomlProjectFile represents the project file as it is encoded in TOML
type tomlProjectFile struct {
	Project *tomlProject `toml:"project"`
	Writer  *tomlWriter  `toml:"writer"`
}

// tomlProject represents a logic project as it is encoded in TOML
type tomlProject struct {
	Name      string   `toml:"name"`
	RulesFile string   `toml:"rules"`
	Sources   []string `toml:"sources"`
	Requires  string   `toml:"requires,omitempty"`
}

// tomlWriter represents the writer settings as they are encoded in TOML
type tomlWriter struct {
	LineLength int  `toml:"line-length"`
	TabSize    int  `toml:"tab-size"`
	Tabs       bool `toml:"tabs"`
}

// LoadProject loads and validates a project file.  `path` is the path to the
// project directory.  The `requires` field, if present, is a semantic version
// constraint that the running checker version must satisfy.
func LoadProject(path string) (*Project, error) {
	f, err := os.Open(filepath.Join(path, common.ProjectFileName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read project file")
	}

	tpf := &tomlProjectFile{}
	if err := toml.Unmarshal(buff, tpf); err != nil {
		return nil, errors.Wrap(err, "unable to parse project file")
	}

	if tpf.Project == nil {
		return nil, errors.New("missing [project] table in project file")
	}
	if tpf.Project.Name == "" {
		return nil, errors.New("project missing required field: `name`")
	}
	if len(tpf.Project.Sources) == 0 {
		return nil, errors.New("project missing required field: `sources`")
	}

	if tpf.Project.Requires != "" {
		if err := checkVersion(tpf.Project.Requires); err != nil {
			return nil, err
		}
	}

	project := &Project{
		Name:        tpf.Project.Name,
		ProjectRoot: path,
		RulesFile:   tpf.Project.RulesFile,
		Sources:     tpf.Project.Sources,
		Writer:      DefaultWriterConfig(),
	}

	if tpf.Writer != nil {
		if tpf.Writer.LineLength > 0 {
			project.Writer.LineLength = tpf.Writer.LineLength
		}
		if tpf.Writer.TabSize > 0 {
			project.Writer.TabSize = tpf.Writer.TabSize
		}
		project.Writer.Tabs = tpf.Writer.Tabs
	}

	return project, nil
}

// checkVersion validates the running checker version against a semver
// constraint from the project file.
func checkVersion(constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(err, "invalid version constraint %q", constraint)
	}

	v, err := semver.NewVersion(common.LogicVersion)
	if err != nil {
		return errors.Wrap(err, "invalid checker version")
	}

	if !c.Check(v) {
		return errors.Errorf("project requires logic %s, but this is %s",
			constraint, common.LogicVersion)
	}

	return nil
}
