package logger

import (
	"context"
	"log/slog"
)

// RequestNumberKey is the attribute carrying the inbound request number.
const RequestNumberKey = "request_number"

// RequestNumberHandler is a slog.Handler that stamps every record with the
// current value of a request counter before passing it on.
type RequestNumberHandler struct {
	handler  slog.Handler
	requests Counter
}

// NewRequestNumberHandler wraps handler.
func NewRequestNumberHandler(handler slog.Handler, requests Counter) *RequestNumberHandler {
	return &RequestNumberHandler{
		handler:  handler,
		requests: requests,
	}
}

// Enabled implements the slog.Handler interface.
func (h *RequestNumberHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements the slog.Handler interface.
func (h *RequestNumberHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RequestNumberHandler{
		handler:  h.handler.WithAttrs(attrs),
		requests: h.requests,
	}
}

// WithGroup implements the slog.Handler interface.
func (h *RequestNumberHandler) WithGroup(name string) slog.Handler {
	return &RequestNumberHandler{
		handler:  h.handler.WithGroup(name),
		requests: h.requests,
	}
}

// Handle implements the slog.Handler interface.
func (h *RequestNumberHandler) Handle(ctx context.Context, record slog.Record) error {
	enhanced := record.Clone()
	enhanced.AddAttrs(slog.Int64(RequestNumberKey, h.requests.Value()))
	return h.handler.Handle(ctx, enhanced)
}
