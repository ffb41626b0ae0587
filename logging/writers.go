//
// (C) Copyright 2023-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"runtime"
	"time"
)

const (
	debugLogFlags  = log.Lmicroseconds | log.Lshortfile
	infoLogFlags   = log.LstdFlags
	noticeLogFlags = log.LstdFlags
	errorLogFlags  = log.LstdFlags

	iso8601NoMicro = "2006-01-02T15:04:05Z0700"
	iso8601        = "2006-01-02T15:04:05.000000Z0700"
)

type baseLogger struct {
	dest   io.Writer
	log    Outputter
	prefix string
}

func formatSource(file string, line, flags int) string {
	if file == "" || line == 0 {
		return ""
	}
	if flags&log.Lshortfile != 0 {
		file = path.Base(file)
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// DefaultDebugLogger implements the DebugLogger interface.
type DefaultDebugLogger struct {
	baseLogger
}

// Debugf emits a formatted debug message.
func (l *DefaultDebugLogger) Debugf(format string, args ...interface{}) {
	out := fmt.Sprintf(format, args...)
	if err := l.log.Output(logOutputDepth, out); err != nil {
		fmt.Fprintf(os.Stderr, "logger Debugf() failed: %s\n", err)
	}
}

// NewDebugLogger returns a DebugLogger configured for outputting
// debugging messages.
func NewDebugLogger(dest io.Writer) *DefaultDebugLogger {
	return &DefaultDebugLogger{
		baseLogger{
			dest: dest,
			log:  log.New(dest, "DEBUG ", debugLogFlags),
		},
	}
}

// DefaultInfoLogger implements the InfoLogger interface.
type DefaultInfoLogger struct {
	baseLogger
}

// Infof emits a formatted informational message.
func (l *DefaultInfoLogger) Infof(format string, args ...interface{}) {
	out := fmt.Sprintf(format, args...)
	if err := l.log.Output(logOutputDepth, out); err != nil {
		fmt.Fprintf(os.Stderr, "logger Infof() failed: %s\n", err)
	}
}

// NewCommandLineInfoLogger returns an InfoLogger configured
// for output on the command line, i.e. without timestamps
// or source file annotations.
func NewCommandLineInfoLogger(output io.Writer) *DefaultInfoLogger {
	return &DefaultInfoLogger{
		baseLogger{
			dest: output,
			log:  log.New(output, "", emptyLogFlags),
		},
	}
}

// NewInfoLogger returns an InfoLogger configured for outputting
// informational messages with standard formatting (e.g. to stderr,
// logfile, etc.)
func NewInfoLogger(prefix string, output io.Writer) *DefaultInfoLogger {
	loggerPrefix := "INFO "
	if prefix != "" {
		loggerPrefix = prefix + " " + loggerPrefix
	}
	return &DefaultInfoLogger{
		baseLogger{
			dest:   output,
			prefix: prefix,
			log:    log.New(output, loggerPrefix, infoLogFlags),
		},
	}
}

// DefaultNoticeLogger implements the NoticeLogger interface.
type DefaultNoticeLogger struct {
	baseLogger
}

// Noticef emits a formatted notice message.
func (l *DefaultNoticeLogger) Noticef(format string, args ...interface{}) {
	out := fmt.Sprintf(format, args...)
	if err := l.log.Output(logOutputDepth, out); err != nil {
		fmt.Fprintf(os.Stderr, "logger Noticef() failed: %s\n", err)
	}
}

// NewNoticeLogger returns a NoticeLogger configured for outputting
// notice-worthy messages with standard formatting.
func NewNoticeLogger(prefix string, output io.Writer) *DefaultNoticeLogger {
	loggerPrefix := "NOTICE "
	if prefix != "" {
		loggerPrefix = prefix + " " + loggerPrefix
	}
	return &DefaultNoticeLogger{
		baseLogger{
			dest:   output,
			prefix: prefix,
			log:    log.New(output, loggerPrefix, noticeLogFlags),
		},
	}
}

// DefaultErrorLogger implements the ErrorLogger interface.
type DefaultErrorLogger struct {
	baseLogger
}

// Errorf emits a formatted error message.
func (l *DefaultErrorLogger) Errorf(format string, args ...interface{}) {
	out := fmt.Sprintf(format, args...)
	if err := l.log.Output(logOutputDepth, out); err != nil {
		fmt.Fprintf(os.Stderr, "logger Errorf() failed: %s\n", err)
	}
}

// NewCommandLineErrorLogger returns an ErrorLogger configured
// for output on the command line.
func NewCommandLineErrorLogger(output io.Writer) *DefaultErrorLogger {
	return &DefaultErrorLogger{
		baseLogger{
			dest: output,
			log:  log.New(output, "ERROR: ", emptyLogFlags),
		},
	}
}

// NewErrorLogger returns an ErrorLogger configured for outputting
// error messages with standard formatting (e.g. to stderr, logfile,
// etc.)
func NewErrorLogger(prefix string, output io.Writer) *DefaultErrorLogger {
	loggerPrefix := "ERROR "
	if prefix != "" {
		loggerPrefix = prefix + " " + loggerPrefix
	}
	return &DefaultErrorLogger{
		baseLogger{
			dest:   output,
			prefix: prefix,
			log:    log.New(output, loggerPrefix, errorLogFlags),
		},
	}
}

type (
	// JSONFormatter emits JSON-formatted log output.
	JSONFormatter struct {
		output io.Writer
		level  string
		extra  string
		flags  int
	}

	logStruct struct {
		Level   string `json:"level"`
		Time    string `json:"time"`
		Extra   string `json:"extra,omitempty"`
		Source  string `json:"source,omitempty"`
		Message string `json:"message"`
	}
)

func formatJSONTime(t time.Time, flags int) string {
	if flags&log.LUTC != 0 {
		t = t.UTC()
	}

	if flags&log.Lmicroseconds != 0 {
		return t.Format(iso8601)
	}
	return t.Format(iso8601NoMicro)
}

// Output emulates log.Logger's Output(), but formats
// the message as a JSON-structured log entry.
func (f *JSONFormatter) Output(callDepth int, msg string) error {
	now := time.Now()
	var file string
	var line int

	if f.flags&(log.Lshortfile|log.Llongfile) != 0 {
		var ok bool
		_, file, line, ok = runtime.Caller(callDepth)
		if !ok {
			file = "???"
			line = 0
		}
	}

	buf, err := json.Marshal(logStruct{
		Time:    formatJSONTime(now, f.flags),
		Level:   f.level,
		Extra:   f.extra,
		Source:  formatSource(file, line, f.flags),
		Message: msg,
	})
	if err != nil {
		return err
	}

	if _, err := f.output.Write(buf); err != nil {
		return err
	}
	_, err = f.output.Write([]byte("\n"))
	return err
}

// NewJSONFormatter returns a *JSONFormatter configured to
// emit JSON-formatted output.
func NewJSONFormatter(output io.Writer, level, extraData string, flags int) *JSONFormatter {
	return &JSONFormatter{
		output: output,
		level:  level,
		extra:  extraData,
		flags:  flags,
	}
}

// WithJSONOutput switches all of the logger's destinations
// to emit JSON-structured entries.
func (ll *LeveledLogger) WithJSONOutput() *LeveledLogger {
	ll.Lock()
	defer ll.Unlock()

	replaceFormatter := func(dest io.Writer, level string, flags int) Outputter {
		return NewJSONFormatter(dest, level, "", flags)
	}

	for i, l := range ll.debugLoggers {
		if dl, ok := l.(*DefaultDebugLogger); ok {
			dl.log = replaceFormatter(dl.dest, "DEBUG", debugLogFlags)
			ll.debugLoggers[i] = dl
		}
	}
	for i, l := range ll.infoLoggers {
		if il, ok := l.(*DefaultInfoLogger); ok {
			il.log = replaceFormatter(il.dest, "INFO", infoLogFlags)
			ll.infoLoggers[i] = il
		}
	}
	for i, l := range ll.noticeLoggers {
		if nl, ok := l.(*DefaultNoticeLogger); ok {
			nl.log = replaceFormatter(nl.dest, "NOTICE", noticeLogFlags)
			ll.noticeLoggers[i] = nl
		}
	}
	for i, l := range ll.errorLoggers {
		if el, ok := l.(*DefaultErrorLogger); ok {
			el.log = replaceFormatter(el.dest, "ERROR", errorLogFlags)
			ll.errorLoggers[i] = el
		}
	}

	return ll
}
