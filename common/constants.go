package common

const (
	SrcFileExtension = ".lth"
	ProjectFileName  = "logic-proj.toml"
	DefaultRulesFile = "basic/rules.lth"
	LogicVersion     = "0.2.0"
)

// LogicPath is the path to the logic installation directory; the default
// rules file is resolved relative to it when it is set.
var LogicPath = ""
