// Package logger provides the levelled logging used by the batch driver.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	// LogError lines are always written, whatever the level.
	LogError
)

func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "DEBUG"
	case LogInfo:
		return "INFO"
	case LogError:
		return "ERROR"
	}
	return fmt.Sprintf("LEVEL%d", int(l))
}

// ILogger is what the batch driver writes progress and failures to.
type ILogger interface {
	Printf(level LogLevel, format string, a ...interface{})
	Debugf(format string, a ...interface{})
	Infof(format string, a ...interface{})
	Errorf(format string, a ...interface{})
}

// StdOutLogger writes one "LEVEL: message" line per call and drops lines
// below its level. It may be shared by several batch workers.
type StdOutLogger struct {
	mu       sync.Mutex
	logLevel LogLevel
	out      *log.Logger
}

func NewStdOutLogger(level LogLevel) *StdOutLogger {
	return NewWriterLogger(os.Stdout, level)
}

func NewWriterLogger(w io.Writer, level LogLevel) *StdOutLogger {
	return &StdOutLogger{logLevel: level, out: log.New(w, "", 0)}
}

func (l *StdOutLogger) Printf(level LogLevel, format string, a ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.logLevel && level < LogError {
		return
	}
	l.out.Println(level.String() + ": " + fmt.Sprintf(format, a...))
}

func (l *StdOutLogger) Debugf(format string, a ...interface{}) { l.Printf(LogDebug, format, a...) }
func (l *StdOutLogger) Infof(format string, a ...interface{})  { l.Printf(LogInfo, format, a...) }
func (l *StdOutLogger) Errorf(format string, a ...interface{}) { l.Printf(LogError, format, a...) }

func (l *StdOutLogger) SetLogLevel(level LogLevel) {
	l.mu.Lock()
	l.logLevel = level
	l.mu.Unlock()
}

func (l *StdOutLogger) GetLogLevel() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.logLevel
}

// Discard drops everything. Runners without a logger use it.
var Discard ILogger = discard{}

type discard struct{}

func (discard) Printf(LogLevel, string, ...interface{}) {}
func (discard) Debugf(string, ...interface{})           {}
func (discard) Infof(string, ...interface{})            {}
func (discard) Errorf(string, ...interface{})           {}
