package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestIDFromContext returns the id assigned by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestID tags each request with an id, reusing a client-supplied one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger logs one line per completed request through slog. Mounted
// outside middleware.Recoverer, it also logs recovered panics.
func RequestLogger(next http.Handler) http.Handler {
	return middleware.RequestLogger(slogFormatter{})(next)
}

type slogFormatter struct{}

func (slogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &slogEntry{
		requestID: RequestIDFromContext(r.Context()),
		method:    r.Method,
		path:      RequestPath(r),
	}
}

type slogEntry struct {
	requestID string
	method    string
	path      string
}

func (e *slogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ any) {
	slog.Info("request",
		"request_id", e.requestID,
		"method", e.method,
		"path", e.path,
		"status", status,
		"bytes", bytes,
		"duration", elapsed,
	)
}

func (e *slogEntry) Panic(v any, stack []byte) {
	slog.Error("panic in handler",
		"request_id", e.requestID,
		"path", e.path,
		"panic", v,
		"stack", string(stack),
	)
}
