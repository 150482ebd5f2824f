package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the global debug logger. It writes to stderr so that it never
// mixes with machine-readable output on stdout.
var Logger *log.Logger

func init() {
	Logger = newLogger(os.Stderr, false)
}

// SetupLogging configures the logger based on verbosity.
func SetupLogging(verbose bool) {
	Logger = newLogger(os.Stderr, verbose)
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		Prefix:          "easy-pybind",
	})
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}
