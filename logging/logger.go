package logging

import (
	"sync"
)

// Logger is responsible for storing and printing output from the checker as
// necessary
type Logger struct {
	errorCount   int // Total encountered errors
	warningCount int
	LogLevel     int

	// m is the mutex used to synchonize the printing of messages
	m sync.Mutex
}

// Enumeration of the different log levels
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors and the closing notification (success/fail)
	LogLevelWarning        // errors, warnings, and closing message
	LogLevelVerbose        // errors, warnings, phase progress, closing message (DEFAULT)
)

// reset reinitializes the logger for a fresh run at the given log level
func (l *Logger) reset(loglevel int) {
	l.m.Lock()
	l.LogLevel = loglevel
	l.errorCount = 0
	l.warningCount = 0
	l.m.Unlock()
}

// handleMsg prompts the logger to process a message.  Printing is serialized
// behind a mutex so that phase output and diagnostics don't interleave.
func (l *Logger) handleMsg(m Message) {
	l.m.Lock()

	if m.isError() {
		l.errorCount++

		if l.LogLevel > LogLevelSilent {
			displayEndPhase(false)
			m.display()
		}
	} else {
		l.warningCount++

		if l.LogLevel > LogLevelError {
			m.display()
		}
	}

	l.m.Unlock()
}
