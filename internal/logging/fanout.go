package logging

import (
	"context"
	"log/slog"
)

// Fanout duplicates log records to every wrapped handler, letting the
// stdout handler and the DB handler each apply their own level filter.
type Fanout struct {
	handlers []slog.Handler
}

func NewFanout(handlers ...slog.Handler) *Fanout {
	return &Fanout{handlers: handlers}
}

func (f *Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *Fanout) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range f.handlers {
		if h.Enabled(ctx, record.Level) {
			if err := h.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	wrapped := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		wrapped[i] = h.WithAttrs(attrs)
	}
	return &Fanout{handlers: wrapped}
}

func (f *Fanout) WithGroup(name string) slog.Handler {
	wrapped := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		wrapped[i] = h.WithGroup(name)
	}
	return &Fanout{handlers: wrapped}
}
