// Package notify carries the transient messages shown after an action:
// success and failure of a submission, validation warnings, redirects.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

type Severity string

const (
	Success Severity = "success"
	Info    Severity = "info"
	Warning Severity = "warning"
	Error   Severity = "error"
)

type Notification struct {
	Severity Severity
	Message  string
}

func (n Notification) String() string {
	return fmt.Sprintf("[%s] %s", n.Severity, n.Message)
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Console writes one line per notification.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

var symbols = map[Severity]string{
	Success: "✔",
	Info:    "ℹ",
	Warning: "!",
	Error:   "✖",
}

func (c *Console) Notify(_ context.Context, n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sym, ok := symbols[n.Severity]
	if !ok {
		sym = "-"
	}
	fmt.Fprintf(c.w, "%s %s\n", sym, n.Message)
}

// Recorder keeps every notification; used by tests.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Last returns the latest notification and whether there was one.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Helpers for the common severities.

func Successf(ctx context.Context, n Notifier, format string, args ...any) {
	n.Notify(ctx, Notification{Severity: Success, Message: fmt.Sprintf(format, args...)})
}

func Warnf(ctx context.Context, n Notifier, format string, args ...any) {
	n.Notify(ctx, Notification{Severity: Warning, Message: fmt.Sprintf(format, args...)})
}

func Errorf(ctx context.Context, n Notifier, format string, args ...any) {
	n.Notify(ctx, Notification{Severity: Error, Message: fmt.Sprintf(format, args...)})
}

func Infof(ctx context.Context, n Notifier, format string, args ...any) {
	n.Notify(ctx, Notification{Severity: Info, Message: fmt.Sprintf(format, args...)})
}
