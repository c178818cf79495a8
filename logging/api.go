package logging

// logger is a global reference to a shared Logger (created/initialized with
// the checker, but separated for general usage)
var logger Logger

// Initialize initializes the global logger with the provided log level
func Initialize(loglevelname string) {
	var loglevel int
	switch loglevelname {
	case "silent":
		loglevel = LogLevelSilent
	case "error":
		loglevel = LogLevelError
	case "warning":
		loglevel = LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		loglevel = LogLevelVerbose
	}

	logger.reset(loglevel)
}

// ErrorCount returns the number of errors logged so far.
func ErrorCount() int {
	return logger.errorCount
}

// ShouldProceed indicates whether the log module has encountered an error.
func ShouldProceed() bool {
	return logger.errorCount == 0
}

// -----------------------------------------------------------------------------
// NOTE: The check and config log functions will only display if the
// appropriate log level is set.  They always count, so ErrorCount is right even
// when silent.  LogFatal always displays and is not counted.

// LogCheckError logs an error in a theory file (user-induced, bad input)
func LogCheckError(descriptor, message string, kind int, pos *TextPosition) {
	logger.handleMsg(&CheckMessage{
		Message:    message,
		Kind:       kind,
		Descriptor: descriptor,
		Position:   pos,
		IsError:    true,
	})
}

// LogCheckWarning logs a warning about a theory file
func LogCheckWarning(descriptor, message string, kind int, pos *TextPosition) {
	logger.handleMsg(&CheckMessage{
		Message:    message,
		Kind:       kind,
		Descriptor: descriptor,
		Position:   pos,
		IsError:    false,
	})
}

// LogConfigError logs an error related to the project file or the environment
func LogConfigError(kind, message string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: message})
}

// LogFatal logs an internal error: the checker did something it wasn't
// supposed to.
func LogFatal(message string) {
	displayFatalError(message)
}

// -----------------------------------------------------------------------------

// LogCheckHeader displays version and target before a run starts
func LogCheckHeader(version, target string) {
	if logger.LogLevel == LogLevelVerbose {
		displayCheckHeader(version, target)
	}
}

// LogBeginPhase displays the beginning of a named phase of the run
func LogBeginPhase(phase string) {
	if logger.LogLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// LogEndPhase displays the end of the current phase
func LogEndPhase(success bool) {
	if logger.LogLevel == LogLevelVerbose {
		displayEndPhase(success)
	}
}

// LogCheckFinished displays the closing message of a run
func LogCheckFinished(success bool) {
	if logger.LogLevel > LogLevelSilent {
		displayCheckFinished(success, logger.errorCount, logger.warningCount)
	}
}
