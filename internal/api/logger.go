package api

import (
	"context"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// OtelHandler stamps every record with the trace and span of its context.
type OtelHandler struct {
	next slog.Handler
}

func NewOtelHandler(next slog.Handler) *OtelHandler {
	return &OtelHandler{next: next}
}

func (h *OtelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *OtelHandler) Handle(ctx context.Context, r slog.Record) error {
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}
	return h.next.Handle(ctx, r)
}

func (h *OtelHandler) WithGroup(name string) slog.Handler {
	return NewOtelHandler(h.next.WithGroup(name))
}

func (h *OtelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewOtelHandler(h.next.WithAttrs(attrs))
}

// NewLogger writes JSON records tagged with serviceName to w.
func NewLogger(w io.Writer, serviceName string) *slog.Logger {
	return slog.New(NewOtelHandler(slog.NewJSONHandler(w, nil))).With(slog.String("service", serviceName))
}

func SetupGlobalHandler(serviceName string) {
	slog.SetDefault(NewLogger(os.Stdout, serviceName))
	slog.Info("Logger initialized", "service", serviceName)
}
