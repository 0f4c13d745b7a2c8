// Package log provides the application's leveled file loggers. The TUI owns
// the terminal, so nothing is ever written to stdout or stderr while it runs.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/kastheco/codex/internal/sentry"
)

var (
	InfoLog    = log.New(io.Discard, "", 0)
	WarningLog = log.New(io.Discard, "", 0)
	ErrorLog   = log.New(io.Discard, "", 0)
)

var logFileName = filepath.Join(os.TempDir(), "codex.log")

var globalLogFile *os.File

// Path returns the location of the log file.
func Path() string {
	return logFileName
}

// Initialize opens the log file and points the leveled loggers at it. When
// telemetry is enabled, warnings become Sentry breadcrumbs and errors become
// Sentry events. Must be paired with Close.
func Initialize(telemetry bool) {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		panic(fmt.Sprintf("could not open log file: %s", err))
	}

	var info, warn, errw io.Writer = f, f, f
	if telemetry {
		info = sentry.NewWriter(f, sentry.LevelInfo)
		warn = sentry.NewWriter(f, sentry.LevelWarning)
		errw = sentry.NewWriter(f, sentry.LevelError)
	}

	flags := log.Ldate | log.Ltime | log.Lshortfile
	InfoLog = log.New(info, "INFO: ", flags)
	WarningLog = log.New(warn, "WARNING: ", flags)
	ErrorLog = log.New(errw, "ERROR: ", flags)

	globalLogFile = f
}

// Close flushes and closes the log file.
func Close() {
	if globalLogFile == nil {
		return
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
	fmt.Println("wrote logs to " + logFileName)
}
