package utils

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger с уровнями info, warn и error
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
}

// Log is the process-wide logger
var Log = NewLogger()

func NewLogger() *Logger {
	return NewLoggerTo(os.Stdout, os.Stderr)
}

// NewLoggerTo writes info to out and warn/error to errOut
func NewLoggerTo(out, errOut io.Writer) *Logger {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	return &Logger{
		info:  log.New(out, "INFO: ", flags),
		warn:  log.New(errOut, "WARN: ", flags),
		error: log.New(errOut, "ERROR: ", flags),
	}
}

func (l *Logger) Info(msg string) {
	l.info.Output(2, msg)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.info.Output(2, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.warn.Output(2, fmt.Sprintf(format, args...))
}

func (l *Logger) Error(msg string) {
	l.error.Output(2, msg)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.error.Output(2, fmt.Sprintf(format, args...))
}
