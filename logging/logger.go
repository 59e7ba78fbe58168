// Package logging configures the application logger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. It writes warnings and errors to
// stderr until Init is called.
var Log = New(os.Stderr, false)

// New returns a text logger writing to w. Verbose enables debug output.
func New(w io.Writer, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !verbose,
		FullTimestamp:    verbose,
	})
	l.SetLevel(logrus.WarnLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// Init replaces Log with a logger for the given verbosity.
func Init(verbose bool) {
	Log = New(os.Stderr, verbose)
}
