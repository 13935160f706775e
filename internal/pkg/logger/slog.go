package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
)

type contextKey string

const (
	RequestIDKey   contextKey = "request_id"
	AirportCodeKey contextKey = "airport_code"
)

// WithAirportCode tags ctx so records logged under it carry the code.
func WithAirportCode(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, AirportCodeKey, code)
}

// ContextHandler adds request_id and airport_code from the context, and a
// stack trace to error records.
type ContextHandler struct {
	slog.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
			r.AddAttrs(slog.String("request_id", reqID))
		}
		if code, ok := ctx.Value(AirportCodeKey).(string); ok {
			r.AddAttrs(slog.String("airport_code", code))
		}
	}

	if r.Level >= slog.LevelError {
		buf := make([]byte, 4096)
		n := runtime.Stack(buf, false)
		r.AddAttrs(slog.String("stack_trace", string(buf[:n])))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}

// NewStructuredLogger builds a JSON logger writing to w.
func NewStructuredLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	if level.Level() == slog.LevelDebug {
		opts.AddSource = true
	}

	return slog.New(&ContextHandler{Handler: slog.NewJSONHandler(w, opts)})
}

// InitStructuredLogger installs the default logger on stderr. Stdout carries
// the console report.
func InitStructuredLogger(level slog.Leveler) {
	slog.SetDefault(NewStructuredLogger(os.Stderr, level))
}
