package common

import (
	"os"
	"path/filepath"
)

// ResolveRulesPath resolves a rules file path: an explicitly given path wins,
// then a file relative to the working directory, then one relative to the
// installation directory.
func ResolveRulesPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if _, err := os.Stat(DefaultRulesFile); err == nil {
		return DefaultRulesFile
	}

	if LogicPath != "" {
		return filepath.Join(LogicPath, DefaultRulesFile)
	}

	return DefaultRulesFile
}
