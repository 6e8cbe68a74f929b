package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before InitLogger runs so
// packages and tests can log without any setup.
var Log = logrus.New()

// InitLogger switches Log to structured JSON on stdout at the given level.
// Unknown levels fall back to info.
func InitLogger(level string) {
	Log.Out = os.Stdout

	// Set JSON formatter for structured logging
	Log.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}
