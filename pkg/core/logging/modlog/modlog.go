/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package modlog

import (
	"fmt"
	"io"
	"os"
	"sync"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/zhang829-666/BookchainHF/pkg/core/logging/api"
	"github.com/zhang829-666/BookchainHF/pkg/core/logging/metadata"
)

var rwmutex = &sync.RWMutex{}
var moduleLevels = &metadata.ModuleLevels{}

// Provider is the default logger implementation. Log lines are written in
// logfmt through go-kit.
type Provider struct {
	out io.Writer
}

// LoggerProvider returns the default logging provider writing to stderr
func LoggerProvider() api.LoggerProvider {
	return &Provider{}
}

// NewProvider returns a default logging provider writing to out
func NewProvider(out io.Writer) *Provider {
	return &Provider{out: out}
}

// GetLogger returns SDK logger implementation
func (p *Provider) GetLogger(module string) api.Logger {
	out := p.out
	if out == nil {
		out = os.Stderr
	}
	l := &Log{module: module}
	l.ChangeOutput(out)
	return l
}

// Log is the default module logger
type Log struct {
	module string
	mutex  sync.RWMutex
	logger kitlog.Logger
}

// SetLevel - setting log level for given module
func SetLevel(module string, level api.Level) {
	rwmutex.Lock()
	defer rwmutex.Unlock()
	moduleLevels.SetLevel(module, level)
}

// GetLevel - getting log level for given module
func GetLevel(module string) api.Level {
	rwmutex.RLock()
	defer rwmutex.RUnlock()
	return moduleLevels.GetLevel(module)
}

// IsEnabledFor - Check if given log level is enabled for given module
func IsEnabledFor(module string, level api.Level) bool {
	rwmutex.RLock()
	defer rwmutex.RUnlock()
	return moduleLevels.IsEnabledFor(module, level)
}

// ChangeOutput for changing output destination for the logger.
func (l *Log) ChangeOutput(output io.Writer) {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(output))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC, "module", l.module)

	l.mutex.Lock()
	l.logger = logger
	l.mutex.Unlock()
}

// Debug logs at DEBUG level.
// Arguments are handled in the manner of fmt.Print.
func (l *Log) Debug(args ...interface{}) {
	l.log(api.DEBUG, fmt.Sprint(args...))
}

// Debugf logs at DEBUG level.
// Arguments are handled in the manner of fmt.Printf.
func (l *Log) Debugf(format string, args ...interface{}) {
	l.log(api.DEBUG, fmt.Sprintf(format, args...))
}

// Info logs at INFO level.
func (l *Log) Info(args ...interface{}) {
	l.log(api.INFO, fmt.Sprint(args...))
}

// Infof logs at INFO level.
func (l *Log) Infof(format string, args ...interface{}) {
	l.log(api.INFO, fmt.Sprintf(format, args...))
}

// Warn logs at WARNING level.
func (l *Log) Warn(args ...interface{}) {
	l.log(api.WARNING, fmt.Sprint(args...))
}

// Warnf logs at WARNING level.
func (l *Log) Warnf(format string, args ...interface{}) {
	l.log(api.WARNING, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level.
func (l *Log) Error(args ...interface{}) {
	l.log(api.ERROR, fmt.Sprint(args...))
}

// Errorf logs at ERROR level.
func (l *Log) Errorf(format string, args ...interface{}) {
	l.log(api.ERROR, fmt.Sprintf(format, args...))
}

func (l *Log) log(lvl api.Level, msg string) {
	if !IsEnabledFor(l.module, lvl) {
		return
	}

	l.mutex.RLock()
	logger := l.logger
	l.mutex.RUnlock()

	switch lvl {
	case api.DEBUG:
		logger = level.Debug(logger)
	case api.INFO:
		logger = level.Info(logger)
	case api.WARNING:
		logger = level.Warn(logger)
	default:
		logger = level.Error(logger)
	}

	if err := logger.Log("msg", msg); err != nil {
		fmt.Fprintf(os.Stderr, "error writing log line: %v\n", err)
	}
}
