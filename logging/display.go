package logging

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------
// This section contains the display functions for the different kinds of
// messages that can be logged.

func (ce *ConfigError) display() {
	PrintErrorMessage(ce.Kind+" Error", errors.New(ce.Message))
}

var checkMsgStrings = map[int]string{
	LMKSyntax: "Syntax",
	LMKName:   "Name",
	LMKTyping: "Type",
	LMKArity:  "Arity",
	LMKRule:   "Rule",
	LMKProof:  "Proof",
}

func (cm *CheckMessage) display() {
	// Messages follow the compiler convention `file:line:col: error: msg` so
	// that editors can jump to the position.
	prefix := cm.Descriptor
	if cm.Position != nil {
		prefix += ":" + strconv.Itoa(cm.Position.Line) + ":" + strconv.Itoa(cm.Position.Col)
	}

	fmt.Print(prefix + ": ")
	kindStr := checkMsgStrings[cm.Kind]
	if cm.IsError {
		ErrorColorFG.Print(kindStr + " error: ")
	} else {
		WarnColorFG.Print(kindStr + " warning: ")
	}
	fmt.Println(cm.Message)
}

const fatalErrorPostlude = `
This is likely a bug in the checker.
Please open an issue on Github: github.com/aaronpuchert/logic`

func displayFatalError(msg string) {
	fmt.Print("\n\n")
	ErrorStyleBG.Print("Fatal Error ")
	ErrorColorFG.Println(msg)
	InfoColorFG.Println(fatalErrorPostlude)
}

// -----------------------------------------------------------------------------

// displayCheckHeader displays the checker information before starting a run
func displayCheckHeader(version, target string) {
	fmt.Print("logic ")
	InfoColorFG.Print("v" + version)
	fmt.Print(" -- checking: ")
	InfoColorFG.Println(target)
}

// phaseSpinner stores the current phase spinner
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Verifying")

// displayBeginPhase displays the beginning of a check phase
func displayBeginPhase(phase string) {
	currentPhase = phase
	phaseText := phase + "..." + strings.Repeat(" ", maxPhaseLength-len(phase)+2)
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner.Start(phaseText)
	phaseStartTime = time.Now()
}

// displayEndPhase displays the end of a check phase
func displayEndPhase(success bool) {
	if phaseSpinner != nil {
		if success {
			phaseSpinner.Success(
				currentPhase+strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2),
				fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()),
			)
		} else {
			phaseSpinner.Fail(currentPhase + strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2))
		}

		phaseSpinner = nil
	}
}

// displayCheckFinished displays the closing message of a run
func displayCheckFinished(success bool, errorCount, warningCount int) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("Verified theory! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Println(" warnings)")
	case 1:
		WarnColorFG.Print(1)
		fmt.Println(" warning)")
	default:
		WarnColorFG.Print(warningCount)
		fmt.Println(" warnings)")
	}
}
