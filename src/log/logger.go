// MIT License
//
// Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/log/logger.go
package logger

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel defines the severity level of the log message.
type LogLevel int

// Log level constants starting from 0 with iota.
const (
	DEBUG LogLevel = iota // Detailed debug information.
	INFO                  // General informational messages.
	WARN                  // Warnings about potential issues.
	ERROR                 // Error messages.
)

// levelNames associates LogLevel constants with string labels.
var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if l < DEBUG || l > ERROR {
		return fmt.Sprintf("LogLevel(%d)", int(l))
	}
	return levelNames[l]
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" (any case) to a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return LogLevel(i), nil
		}
	}
	if strings.EqualFold(s, "warning") {
		return WARN, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

var (
	mu     sync.RWMutex
	global = zap.NewNop()
	// atom is shared by every logger built through New, so SetLevel applies to them.
	atom = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// New builds a JSON production logger at the given level.
func New(level string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	atom.SetLevel(lvl.zapLevel())
	cfg := zap.NewProductionConfig()
	cfg.Level = atom
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// NewDevelopment builds a human-readable console logger at DEBUG level.
func NewDevelopment() (*zap.Logger, error) {
	return zap.NewDevelopment()
}

// Init installs a production logger at level as the process-wide logger.
func Init(level string) error {
	l, err := New(level)
	if err != nil {
		return err
	}
	SetLogger(l)
	return nil
}

// SetLogger replaces the process-wide logger. A nil logger installs a no-op one.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	global = l
	mu.Unlock()
}

// L returns the process-wide logger. It is a no-op logger until Init or
// SetLogger is called.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// SetLevel sets the level of loggers built by New.
func SetLevel(lvl LogLevel) {
	atom.SetLevel(lvl.zapLevel())
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// Sync flushes the process-wide logger.
func Sync() error {
	return L().Sync()
}

// Infof logs a formatted message at INFO level.
func Infof(format string, args ...any) {
	L().Sugar().Infof(format, args...)
}

// Errorf logs a formatted message at ERROR level.
func Errorf(format string, args ...any) {
	L().Sugar().Errorf(format, args...)
}

// Fatalf logs a formatted message and then terminates the program.
func Fatalf(format string, args ...any) {
	L().Sugar().Fatalf(format, args...)
}

// Debugf logs a formatted message at DEBUG level.
func Debugf(format string, args ...any) {
	L().Sugar().Debugf(format, args...)
}

// Warnf logs a formatted message at WARN level.
func Warnf(format string, args ...any) {
	L().Sugar().Warnf(format, args...)
}
