package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

const (
	LevelTrace = slog.Level(-8)
)

type contextKey struct{}

var traceIDKey = contextKey{}

// contextHandler stamps the request trace ID (if any) onto every record.
type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if tid, ok := ctx.Value(traceIDKey).(string); ok && len(tid) > 0 {
			r.AddAttrs(slog.String("traceID", tid))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{h.Handler.WithGroup(name)}
}

// New builds the JSON logger used by the server. dev enables debug output,
// verbose enables trace output on top of that.
func New(w io.Writer, env string, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if env == "dev" {
		opts.Level = slog.LevelDebug
	}
	if verbose {
		opts.Level = LevelTrace
	}
	return slog.New(&contextHandler{slog.NewJSONHandler(w, opts)}).With("service", "gatewarden")
}

// Setup installs New(os.Stdout, ...) as the slog default and returns it.
func Setup(env string, verbose bool) *slog.Logger {
	logger := New(os.Stdout, env, verbose)
	slog.SetDefault(logger)
	return logger
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	if tid, ok := ctx.Value(traceIDKey).(string); ok && len(tid) > 0 {
		return ctx
	}
	return context.WithValue(ctx, traceIDKey, traceID)
}

func TraceID(ctx context.Context) string {
	tid, _ := ctx.Value(traceIDKey).(string)
	return tid
}

func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}
