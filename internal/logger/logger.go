// Copyright 2026 The ufs Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logger provides the slog-based structured logger used by the rest
// of ufs. It never touches the bytes of any storage entry - only operation
// names, ids and error codes are ever logged.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/unionfs-go/ufs/cfg"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Custom levels, one per cfg.LogSeverity value except OFF, which maps to a
// level no call site ever logs at.
const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
	LevelOff   = slog.Level(16)
)

var severityNames = map[slog.Level]string{
	LevelTrace: "TRACE",
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARNING",
	LevelError: "ERROR",
}

type loggerFactory struct {
	file            *os.File
	sysWriter       io.Writer
	format          string
	level           string
	logRotateConfig cfg.LogRotateLoggingConfig
}

var (
	defaultLoggerFactory = &loggerFactory{
		sysWriter: os.Stderr,
		format:    "json",
		level:     cfg.INFO,
	}
	defaultLogger = slog.New(
		defaultLoggerFactory.createJsonOrTextHandler(os.Stderr, programLevel(cfg.INFO), ""),
	)
)

func programLevel(severity string) *slog.LevelVar {
	v := new(slog.LevelVar)
	setLoggingLevel(severity, v)
	return v
}

func setLoggingLevel(severity string, level *slog.LevelVar) {
	switch severity {
	case cfg.TRACE:
		level.Set(LevelTrace)
	case cfg.DEBUG:
		level.Set(LevelDebug)
	case cfg.INFO:
		level.Set(LevelInfo)
	case cfg.WARNING:
		level.Set(LevelWarn)
	case cfg.ERROR:
		level.Set(LevelError)
	default:
		level.Set(LevelOff)
	}
}

// severityHandler renders records as either:
//
//	time="2006/01/02 15:04:05.000000" severity=INFO message="prefix: msg"
//
// or, in "json" mode:
//
//	{"timestamp":{"seconds":...,"nanos":...},"severity":"INFO","message":"prefix: msg"}
type severityHandler struct {
	w      io.Writer
	level  *slog.LevelVar
	format string
	prefix string
}

func (f *loggerFactory) createJsonOrTextHandler(w io.Writer, level *slog.LevelVar, prefix string) slog.Handler {
	return &severityHandler{w: w, level: level, format: f.format, prefix: prefix}
}

func (h *severityHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *severityHandler) Handle(_ context.Context, r slog.Record) error {
	severity, ok := severityNames[r.Level]
	if !ok {
		severity = r.Level.String()
	}
	message := h.prefix + r.Message

	var line string
	if h.format == "text" {
		line = fmt.Sprintf("time=%q severity=%s message=%q\n", r.Time.Format("2006/01/02 15:04:05.000000"), severity, message)
	} else {
		line = fmt.Sprintf(`{"timestamp":{"seconds":%d,"nanos":%d},"severity":%q,"message":%q}`+"\n",
			r.Time.Unix(), r.Time.Nanosecond(), severity, message)
	}
	_, err := io.WriteString(h.w, line)
	return err
}

func (h *severityHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *severityHandler) WithGroup(_ string) slog.Handler      { return h }

// SetLogFormat switches the default logger between "text" and "json"
// output. An empty or unrecognized format falls back to "json".
func SetLogFormat(format string) {
	if format != "text" {
		format = "json"
	}
	defaultLoggerFactory.format = format
	defaultLogger = slog.New(
		defaultLoggerFactory.createJsonOrTextHandler(currentWriter(), programLevel(defaultLoggerFactory.level), ""),
	)
}

func currentWriter() io.Writer {
	if defaultLoggerFactory.file != nil {
		return defaultLoggerFactory.file
	}
	return defaultLoggerFactory.sysWriter
}

// InitLogFile reconfigures the default logger from a cfg.LoggingConfig,
// optionally rotating to a file via lumberjack.
func InitLogFile(c cfg.LoggingConfig) error {
	format := c.Format
	if format == "" {
		format = "json"
	}

	var w io.Writer = os.Stderr
	var f *os.File
	if c.FilePath != "" {
		lj := &lumberjack.Logger{
			Filename:   string(c.FilePath),
			MaxSize:    c.LogRotate.MaxFileSizeMb,
			MaxBackups: c.LogRotate.BackupFileCount,
			Compress:   c.LogRotate.Compress,
		}
		w = lj
		var err error
		f, err = os.OpenFile(string(c.FilePath), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
	}

	defaultLoggerFactory = &loggerFactory{
		file:            f,
		format:          format,
		level:           string(c.Severity),
		logRotateConfig: c.LogRotate,
	}
	defaultLogger = slog.New(
		defaultLoggerFactory.createJsonOrTextHandler(w, programLevel(string(c.Severity)), ""),
	)
	return nil
}

func Tracef(format string, v ...any) { defaultLogger.Log(context.Background(), LevelTrace, fmt.Sprintf(format, v...)) }
func Debugf(format string, v ...any) { defaultLogger.Log(context.Background(), LevelDebug, fmt.Sprintf(format, v...)) }
func Infof(format string, v ...any)  { defaultLogger.Log(context.Background(), LevelInfo, fmt.Sprintf(format, v...)) }
func Warnf(format string, v ...any)  { defaultLogger.Log(context.Background(), LevelWarn, fmt.Sprintf(format, v...)) }
func Errorf(format string, v ...any) { defaultLogger.Log(context.Background(), LevelError, fmt.Sprintf(format, v...)) }

// Default returns the process-wide slog.Logger so callers that need
// structured attributes (e.g. the core package) can use it directly
// instead of the Printf-style helpers above.
func Default() *slog.Logger {
	return defaultLogger
}
