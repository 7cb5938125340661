package qrcode

import (
	"context"
	"log/slog"
)

// Tracer receives structured diagnostic events as an encode or decode
// runs, replacing the verbose fmt.Println trail the original prototype
// used. A Tracer must be safe to call from a single goroutine only; the
// codec never calls one concurrently.
type Tracer interface {
	Event(ctx context.Context, name string, attrs ...slog.Attr)
}

// SlogTracer emits every event as a structured slog record at Debug
// level through Logger, with the event name as the record message.
type SlogTracer struct {
	Logger *slog.Logger
}

// NewSlogTracer wraps logger (slog.Default() if nil) as a Tracer.
func NewSlogTracer(logger *slog.Logger) *SlogTracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogTracer{Logger: logger}
}

func (t *SlogTracer) Event(ctx context.Context, name string, attrs ...slog.Attr) {
	t.Logger.LogAttrs(ctx, slog.LevelDebug, name, attrs...)
}

// noopTracer discards every event; used when a caller passes no Tracer.
type noopTracer struct{}

func (noopTracer) Event(context.Context, string, ...slog.Attr) {}
