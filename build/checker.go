// Package build drives whole check runs: it loads the rules theory, parses
// the theory files of a run, and verifies every proof, reporting progress and
// diagnostics through the logging package.
package build

import (
	"os"

	"github.com/pkg/errors"

	"github.com/aaronpuchert/logic/logging"
	"github.com/aaronpuchert/logic/sem"
	"github.com/aaronpuchert/logic/syntax"
)

// Checker is the data structure responsible for maintaining the high-level
// state of a check run
type Checker struct {
	// rulesPath is the path of the rules theory file
	rulesPath string

	// theoryPaths are the theory files to check, in order
	theoryPaths []string

	// rules is the parsed rules theory, shared by all theory files
	rules *sem.Theory

	// parseErrors counts parse errors over all files of the run; it is also
	// the process exit code
	parseErrors int
}

// NewChecker creates a checker for a rules file and a list of theory files.
func NewChecker(rulesPath string, theoryPaths ...string) *Checker {
	return &Checker{
		rulesPath:   rulesPath,
		theoryPaths: theoryPaths,
	}
}

// Errors returns the number of parse errors of the last run.
func (c *Checker) Errors() int {
	return c.parseErrors
}

// Check runs the full pipeline: parse the rules theory, parse every theory
// file, and verify all proofs.  It returns the number of parse errors; the
// verification outcome is reported through the logger.
func (c *Checker) Check() int {
	c.parseErrors = 0

	logging.LogBeginPhase("Parsing")

	rules, numErrors, err := ParseFile(c.rulesPath, nil)
	if err != nil {
		logging.LogEndPhase(false)
		logging.LogConfigError("Rules", err.Error())
		c.parseErrors = 1
		return c.parseErrors
	}
	c.rules = rules
	c.parseErrors += numErrors

	theories := make(map[string]*sem.Theory, len(c.theoryPaths))
	for _, path := range c.theoryPaths {
		theory, numErrors, err := ParseFile(path, c.rules)
		if err != nil {
			logging.LogEndPhase(false)
			logging.LogConfigError("Theory", err.Error())
			c.parseErrors++
			return c.parseErrors
		}

		theories[path] = theory
		c.parseErrors += numErrors
	}

	if c.parseErrors > 0 {
		logging.LogEndPhase(false)
		logging.LogCheckFinished(false)
		return c.parseErrors
	}
	logging.LogEndPhase(true)

	logging.LogBeginPhase("Verifying")
	verified := true
	for _, path := range c.theoryPaths {
		if !verifyTheory(path, theories[path]) {
			verified = false
		}
	}
	logging.LogEndPhase(verified)
	logging.LogCheckFinished(verified)

	return c.parseErrors
}

// ParseFile parses a single theory file against a rules theory, which may be
// nil for files that contain no proofs.  It returns the parsed theory and
// the number of parse errors.
func ParseFile(path string, rules *sem.Theory) (*sem.Theory, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "unable to open %s", path)
	}
	defer f.Close()

	p := syntax.NewParser(f, path)
	p.Rules = rules
	theory := p.ParseTheory()

	return theory, p.Errors(), nil
}

// verifyTheory verifies a theory and reports every lemma whose proof does not
// validate.
func verifyTheory(descriptor string, theory *sem.Theory) bool {
	verified := true

	for pos := theory.Front(); pos != nil; pos = pos.Next() {
		stmt, ok := pos.Value.(*sem.Statement)
		if !ok || !stmt.HasProof() {
			continue
		}

		if !stmt.Proof().Proves(stmt) {
			name := stmt.Name()
			if name == "" {
				name = "<anonymous>"
			}
			logging.LogCheckError(descriptor, "could not verify lemma "+name,
				logging.LMKProof, nil)
			verified = false
		}
	}

	return verified
}
