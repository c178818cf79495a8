package cmd

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/ComedicChimera/olive"

	"github.com/aaronpuchert/logic/build"
	"github.com/aaronpuchert/logic/common"
	"github.com/aaronpuchert/logic/logging"
	"github.com/aaronpuchert/logic/proj"
	"github.com/aaronpuchert/logic/syntax"
)

// Execute runs the main `logic` application and returns the process exit
// code: the number of parse errors of the run, per convention.
func Execute() int {
	// The installation path is optional; it only provides the fallback
	// location of the default rules file.
	if logicPath, ok := os.LookupEnv("LOGIC_PATH"); ok {
		common.LogicPath = logicPath
	}

	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("logic", "logic is a proof checker for theory files", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the checker log level", false, []string{"silent", "error", "warning", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	checkCmd := cli.AddSubcommand("check", "verify the proofs of a theory", true)
	checkCmd.AddPrimaryArg("theory-path", "the theory file or project directory to check", true)
	checkCmd.AddStringArg("rules", "r", "the path to the rules theory", false)
	checkCmd.AddFlag("watch", "w", "recheck whenever an input file changes")

	fmtCmd := cli.AddSubcommand("fmt", "pretty-print a theory file", true)
	fmtCmd.AddPrimaryArg("theory-file", "the theory file to format", true)
	fmtCmd.AddStringArg("rules", "r", "the path to the rules theory", false)
	fmtCmd.AddStringArg("width", "cw", "the column width to wrap at", false)
	fmtCmd.AddFlag("spaces", "sp", "indent with spaces instead of tabs")

	cli.AddSubcommand("version", "print the logic version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return 1
	}

	logging.Initialize(result.Arguments["loglevel"].(string))

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		return execCheckCommand(subResult)
	case "fmt":
		return execFmtCommand(subResult)
	case "version":
		logging.PrintInfoMessage("Logic Version", common.LogicVersion)
	}

	return 0
}

// execCheckCommand executes the check subcommand and handles all its errors
func execCheckCommand(result *olive.ArgParseResult) int {
	targetRelPath, _ := result.PrimaryArg()

	targetPath, err := filepath.Abs(targetRelPath)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return 1
	}

	rulesPath := ""
	if rulesArgVal, ok := result.Arguments["rules"]; ok {
		rulesPath = rulesArgVal.(string)
	}

	var checker *build.Checker

	// A directory is checked as a project; a plain file on its own.
	if finfo, err := os.Stat(targetPath); err == nil && finfo.IsDir() {
		project, err := proj.LoadProject(targetPath)
		if err != nil {
			logging.PrintErrorMessage("Project Load Error", err)
			return 1
		}

		sources := make([]string, len(project.Sources))
		for n, source := range project.Sources {
			sources[n] = filepath.Join(project.ProjectRoot, source)
		}

		if rulesPath == "" && project.RulesFile != "" {
			rulesPath = filepath.Join(project.ProjectRoot, project.RulesFile)
		}

		logging.LogCheckHeader(common.LogicVersion, project.Name)
		checker = build.NewChecker(common.ResolveRulesPath(rulesPath), sources...)
	} else {
		logging.LogCheckHeader(common.LogicVersion, filepath.Base(targetPath))
		checker = build.NewChecker(common.ResolveRulesPath(rulesPath), targetPath)
	}

	if result.HasFlag("watch") {
		if err := checker.Watch(); err != nil {
			logging.PrintErrorMessage("Watch Error", err)
			return 1
		}
		return 0
	}

	return checker.Check()
}

// execFmtCommand executes the fmt subcommand and handles all its errors
func execFmtCommand(result *olive.ArgParseResult) int {
	theoryRelPath, _ := result.PrimaryArg()

	theoryPath, err := filepath.Abs(theoryRelPath)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return 1
	}

	rulesPath := ""
	if rulesArgVal, ok := result.Arguments["rules"]; ok {
		rulesPath = rulesArgVal.(string)
	}

	// Writer settings: project file defaults, overridden by flags
	config := proj.DefaultWriterConfig()
	if project, err := proj.LoadProject(filepath.Dir(theoryPath)); err == nil {
		config = project.Writer
	}
	if widthArgVal, ok := result.Arguments["width"]; ok {
		if width, err := strconv.Atoi(widthArgVal.(string)); err == nil && width > 0 {
			config.LineLength = width
		}
	}
	if result.HasFlag("spaces") {
		config.Tabs = false
	}

	rules, numErrors, err := build.ParseFile(common.ResolveRulesPath(rulesPath), nil)
	if err != nil || numErrors > 0 {
		if err != nil {
			logging.PrintErrorMessage("Rules Load Error", err)
		}
		return numErrors + 1
	}

	theory, numErrors, err := build.ParseFile(theoryPath, rules)
	if err != nil {
		logging.PrintErrorMessage("Theory Load Error", err)
		return 1
	}
	if numErrors > 0 {
		return numErrors
	}

	writer := syntax.NewWriter(os.Stdout, config.LineLength, config.TabSize, config.Tabs)
	writer.WriteTheory(theory)
	if err := writer.Flush(); err != nil {
		logging.LogFatal(err.Error())
		return 1
	}

	return 0
}
