// Copyright 2025 walteh LLC
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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
	"github.com/walteh/rxgrid/pkg/session"
)

const (
	opIndent     = 4  // spaces to indent operation lines
	subjectWidth = 35 // Base width for the file name or prompt
	kindWidth    = 10 // Width for the operation kind
)

// Operation kinds
const (
	KindUpload  = "upload"
	KindPreview = "preview"
	KindApply   = "apply"
)

// 📝 Operation is one finished request as shown on the console
type Operation struct {
	Kind    string // upload, preview or apply
	Subject string // File name or prompt
	Detail  string // Outcome summary on success
	Failed  bool   // Whether the request failed
	Message string // Error message on failure
}

// 🪵 Logger pairs console lines with structured zerolog records
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	operations []Operation
}

// 🏭 New creates a logger that prints to console and records to stderr
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

type contextKey struct{}

// FromContext returns the logger stored by NewContext; it panics when missing
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func (l *Logger) formatOperation(op Operation) string {
	symbol, symbolColor := '✓', color.FgGreen
	status := op.Detail
	if op.Failed {
		symbol, symbolColor = '✗', color.FgRed
		status = op.Message
	}

	var kindColor color.Attribute
	switch op.Kind {
	case KindUpload:
		kindColor = color.FgCyan
	case KindPreview:
		kindColor = color.FgYellow
	default:
		kindColor = color.FgBlue
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", opIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		runewidth.FillRight(runewidth.Truncate(op.Subject, subjectWidth, "…"), subjectWidth),
		color.New(kindColor).Sprint(fmt.Sprintf("%-*s", kindWidth, op.Kind)),
		status)
}

// LogOperation prints op and records it
func (l *Logger) LogOperation(ctx context.Context, op Operation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatOperation(op))

	ev := l.zlog.Info()
	if op.Failed {
		ev = l.zlog.Error().Str("error", op.Message)
	}
	ev.Str("kind", op.Kind).
		Str("subject", op.Subject).
		Str("detail", op.Detail).
		Msg("operation")
}

// 📥 LogIngest reports the outcome of an upload from the resulting session
func (l *Logger) LogIngest(ctx context.Context, name string, snap session.Snapshot) {
	op := Operation{Kind: KindUpload, Subject: name}
	if snap.Status.IsError() {
		op.Failed, op.Message = true, snap.Status.Message
	} else {
		op.Subject = snap.Filename
		op.Detail = fmt.Sprintf("%d columns, %d rows", len(snap.Columns), len(snap.Rows))
	}
	l.LogOperation(ctx, op)
}

// 🔍 LogPreview reports the outcome of a preview
func (l *Logger) LogPreview(ctx context.Context, description string, snap session.Snapshot) {
	op := Operation{Kind: KindPreview, Subject: description}
	if snap.Status.IsError() {
		op.Failed, op.Message = true, snap.Status.Message
	} else {
		op.Detail = snap.Pattern
	}
	l.LogOperation(ctx, op)
}

// 🔧 LogTransform reports the outcome of an apply
func (l *Logger) LogTransform(ctx context.Context, prompt string, snap session.Snapshot) {
	op := Operation{Kind: KindApply, Subject: prompt}
	switch {
	case snap.Status.IsError():
		op.Failed, op.Message = true, snap.Status.Message
	case snap.Stats != nil:
		op.Detail = fmt.Sprintf("%s (%s)", snap.Pattern, snap.Stats)
	default:
		op.Detail = snap.Pattern
	}
	l.LogOperation(ctx, op)
}

// Operations returns the operations logged so far
func (l *Logger) Operations() []Operation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Operation(nil), l.operations...)
}

func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("rxgrid")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
