// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

const tracePrefix = "TRACE: "

var traceEnabled bool

// InitLogger installs the one-line handler on stderr and sets the level from
// the CSVDIFF_LOG env variable. Stdout is reserved for the diff itself.
func InitLogger() {
	level, trace := parseLevel(os.Getenv("CSVDIFF_LOG"))
	traceEnabled = trace
	log.SetHandler(&CustomHandler{Writer: os.Stderr})
	log.SetLevel(level)
}

// parseLevel maps a CSVDIFF_LOG value onto an apex level. Trace is carried at
// debug level and flagged separately. Unknown values mean error.
func parseLevel(s string) (log.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.DebugLevel, true
	case "debug":
		return log.DebugLevel, false
	case "info":
		return log.InfoLevel, false
	case "warn":
		return log.WarnLevel, false
	case "fatal":
		return log.FatalLevel, false
	default:
		return log.ErrorLevel, false
	}
}

// CustomHandler writes "<timestamp> <level letter> <message>" lines.
type CustomHandler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stderr
	}

	message := e.Message
	level := "?"
	if rest, ok := strings.CutPrefix(message, tracePrefix); ok {
		level, message = "T", rest
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}
	if err, ok := e.Fields["error"]; ok {
		message += fmt.Sprintf(" error=%v", err)
	}

	_, err := fmt.Fprintf(w, "%s %s %s\n", time.Now().Format("2006-01-02 15:04:05"), level, message)
	return err
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug(tracePrefix + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Debug logs at Debug level.
func Debug(msg string) {
	log.Debug(msg)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
