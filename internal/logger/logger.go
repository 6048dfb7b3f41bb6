// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog.Logger for the daybook core.
//
// Components receive a *Logger at construction time and derive
// component-scoped children with [Logger.WithComponent]. Request- and call-scoped
// loggers travel in context.Context and are read back with [FromContext] or
// [FromRequest].
package logger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// NewLogger returns a JSON logger writing to stdout for role
// (e.g. "daybook-serve"). level is a zerolog level name; an empty or unknown
// level falls back to debug.
//
// Every entry carries "role", a timestamp and a "func" caller field holding
// the fully-qualified function name.
func NewLogger(role, level string) *Logger {
	return newLogger(os.Stdout, role, level)
}

// NewFileLogger returns a logger that appends to path, so interactive CLI
// output stays clean. If the file cannot be opened it falls back to stderr.
// An empty path resolves to "daybook.log" next to the executable.
func NewFileLogger(role, level, path string) *Logger {
	if path == "" {
		execPath, _ := os.Executable()
		path = filepath.Join(filepath.Dir(execPath), "daybook.log")
	}

	var out io.Writer = os.Stderr
	if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); err == nil {
		out = f
	}

	return newLogger(out, role, level)
}

func newLogger(out io.Writer, role, level string) *Logger {
	zerolog.SetGlobalLevel(parseLevel(level))
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	logger := zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

func parseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.DebugLevel
	}
	return lvl
}

// ValidLevel reports whether level is a zerolog level name.
func ValidLevel(level string) error {
	if level == "" {
		return nil
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(level)); err != nil {
		return fmt.Errorf("unknown log level %q: %w", level, err)
	}
	return nil
}

// Nop returns a *Logger that discards all output. Used in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy of l that can be enriched without affecting l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.Logger.With().Logger()}
}

// WithComponent returns a child logger tagged with the given component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{l.Logger.With().Str("component", component).Logger()}
}

// FromRequest returns the logger attached to the request context by the
// trace-id middleware, or the zerolog default.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger stored in ctx by zerolog's WithContext.
// It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
