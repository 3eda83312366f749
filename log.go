package sprites

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package logger. Replace it with SetLogger; it is read on the
// tick path so it must never be nil.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "sprites",
	Level:  log.WarnLevel,
})

// SetLogger replaces the logger used for recovered failures (asset
// resolution, transition fallbacks) and style warnings. Passing nil restores
// the default warn-level stderr logger.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.NewWithOptions(os.Stderr, log.Options{Prefix: "sprites", Level: log.WarnLevel})
	}
	logger = l
}

// Logger returns the current package logger.
func Logger() *log.Logger {
	return logger
}
