/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

// Package log is the ambient structured logger used throughout the SDK.
// It renders RFC 5424 syslog lines via github.com/crewjam/rfc5424, the
// same library the rest of this ecosystem uses for leveled logging, so a
// client embedding this SDK gets output that looks at home next to its
// own log stream.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/crewjam/rfc5424"
)

// Level is a logging verbosity threshold. Calls below the logger's
// current level are dropped before an RFC 5424 record is built; the *f
// variants still format their message before that check.
type Level int

const (
	OFF Level = iota
	ERROR
	WARN
	INFO
	DEBUG
)

func (l Level) String() string {
	switch l {
	case OFF:
		return "off"
	case ERROR:
		return "error"
	case WARN:
		return "warn"
	case INFO:
		return "info"
	case DEBUG:
		return "debug"
	}
	return "unknown"
}

func (l Level) Valid() bool {
	return l >= OFF && l <= DEBUG
}

func (l Level) priority() rfc5424.Priority {
	switch l {
	case ERROR:
		return rfc5424.User | rfc5424.Error
	case WARN:
		return rfc5424.User | rfc5424.Warning
	case INFO:
		return rfc5424.User | rfc5424.Info
	case DEBUG:
		return rfc5424.User | rfc5424.Debug
	}
	return rfc5424.User | rfc5424.Info
}

// LevelFromEnvString parses MODALITY_LOG-style values ("modality=warn",
// or a bare level name) into a Level, defaulting to WARN on anything it
// doesn't recognize, matching the spec's documented default verbosity.
func LevelFromEnvString(s string) Level {
	if i := indexByte(s, '='); i >= 0 {
		s = s[i+1:]
	}
	switch s {
	case "off":
		return OFF
	case "error":
		return ERROR
	case "warn", "warning":
		return WARN
	case "info":
		return INFO
	case "debug", "trace":
		return DEBUG
	}
	return WARN
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

var ErrNotOpen = errors.New("log: logger has no writers")

const (
	defaultAppName = "auxon-sdk"
	maxHostname    = 255
	maxAppname     = 48
)

// Logger is a leveled, structured logger writing RFC 5424 lines to one or
// more io.Writers.
type Logger struct {
	mtx      sync.Mutex
	wtrs     []io.Writer
	lvl      Level
	hostname string
	appname  string
}

// New builds a Logger at INFO level writing to wtr.
func New(wtr io.Writer) *Logger {
	hostname, _ := os.Hostname()
	if len(hostname) > maxHostname {
		hostname = hostname[:maxHostname]
	}
	return &Logger{
		wtrs:     []io.Writer{wtr},
		lvl:      INFO,
		hostname: hostname,
		appname:  defaultAppName,
	}
}

// NewDiscard builds a Logger that drops everything, for use in tests and
// as the default when a caller does not supply one.
func NewDiscard() *Logger {
	return New(io.Discard)
}

// SetLevel changes the minimum level that is emitted.
func (l *Logger) SetLevel(lvl Level) error {
	if !lvl.Valid() {
		return fmt.Errorf("log: invalid level %d", lvl)
	}
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.lvl = lvl
	return nil
}

// SetAppName overrides the RFC 5424 APP-NAME field, truncating to the
// protocol's 48-byte limit.
func (l *Logger) SetAppName(name string) {
	if len(name) > maxAppname {
		name = name[:maxAppname]
	}
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.appname = name
}

// AddWriter adds an additional destination for every subsequent log line.
func (l *Logger) AddWriter(wtr io.Writer) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.wtrs = append(l.wtrs, wtr)
}

func (l *Logger) enabled(lvl Level) bool {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.lvl >= lvl
}

func (l *Logger) write(lvl Level, msg string, sds ...rfc5424.SDParam) error {
	if !l.enabled(lvl) {
		return nil
	}
	m := rfc5424.Message{
		Priority:  lvl.priority(),
		Timestamp: time.Now(),
		Hostname:  l.hostnameSnapshot(),
		AppName:   l.appnameSnapshot(),
		Message:   []byte(msg),
	}
	if len(sds) > 0 {
		m.StructuredData = []rfc5424.StructuredData{{ID: "sdk@1", Parameters: sds}}
	}
	b, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	return l.writeAll(b)
}

func (l *Logger) hostnameSnapshot() string {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.hostname
}

func (l *Logger) appnameSnapshot() string {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.appname
}

func (l *Logger) writeAll(b []byte) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if len(l.wtrs) == 0 {
		return ErrNotOpen
	}
	var firstErr error
	for _, w := range l.wtrs {
		if _, err := w.Write(append(b, '\n')); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (l *Logger) Debug(msg string, sds ...rfc5424.SDParam) error { return l.write(DEBUG, msg, sds...) }
func (l *Logger) Info(msg string, sds ...rfc5424.SDParam) error  { return l.write(INFO, msg, sds...) }
func (l *Logger) Warn(msg string, sds ...rfc5424.SDParam) error  { return l.write(WARN, msg, sds...) }
func (l *Logger) Error(msg string, sds ...rfc5424.SDParam) error { return l.write(ERROR, msg, sds...) }

func (l *Logger) Debugf(format string, args ...interface{}) error {
	return l.write(DEBUG, fmt.Sprintf(format, args...))
}
func (l *Logger) Infof(format string, args ...interface{}) error {
	return l.write(INFO, fmt.Sprintf(format, args...))
}
func (l *Logger) Warnf(format string, args ...interface{}) error {
	return l.write(WARN, fmt.Sprintf(format, args...))
}
func (l *Logger) Errorf(format string, args ...interface{}) error {
	return l.write(ERROR, fmt.Sprintf(format, args...))
}
