// Package log provides the logger used throughout the emulator. The
// default implementation writes through logrus, tagging every line
// with the source location that produced it.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logger struct {
	l *logrus.Logger
}

// New returns a Logger writing to stderr at info level.
func New() Logger {
	return NewWithWriter(os.Stderr, false)
}

// NewWithWriter returns a Logger writing to w. When debug is set,
// debug lines (such as instruction traces) are also written.
func NewWithWriter(w io.Writer, debug bool) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableQuote:     true,
	})
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}

	return &logger{l: l}
}

// entry tags the line with the file:line of the logger's caller.
func (l *logger) entry() *logrus.Entry {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return logrus.NewEntry(l.l)
	}
	return l.l.WithField("src", fmt.Sprintf("%s:%d", filepath.Base(file), line))
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.entry().Infof(format, args...)
}

func (l *logger) Warnf(format string, args ...interface{}) {
	l.entry().Warnf(format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.entry().Errorf(format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	if !l.l.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	l.entry().Debugf(format, args...)
}
