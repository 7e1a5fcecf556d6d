package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sagarc03/kvgate"
)

// WriteObject writes a 200 response carrying obj. Content-Length is always
// the exact body length; HEAD requests get the headers without the body.
func WriteObject(w http.ResponseWriter, r *http.Request, obj kvgate.Object) {
	h := w.Header()
	h.Set("Content-Type", obj.ContentType)
	h.Set("Content-Length", strconv.Itoa(len(obj.Body)))
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}

	if _, err := w.Write(obj.Body); err != nil {
		slog.Warn("failed to write response body", "request_id", RequestIDFromContext(r.Context()), "error", err)
	}
}

// WriteStatus writes a status-only response with an empty body.
func WriteStatus(w http.ResponseWriter, code int) {
	h := w.Header()
	h.Del("Content-Type")
	h.Set("Content-Length", "0")
	w.WriteHeader(code)
}

// StatusCode maps a lookup error to its HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, kvgate.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, kvgate.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	default:
		// path too long, body discard, store open/read, allocation
		return http.StatusInternalServerError
	}
}

// HandleError logs err and writes the matching empty-bodied status.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusCode(err)

	attrs := []any{"request_id", RequestIDFromContext(r.Context()), "path", RequestPath(r), "error", err}
	if code >= http.StatusInternalServerError {
		slog.Error("request error", attrs...)
	} else {
		slog.Debug("request rejected", append(attrs, "status", code)...)
	}

	WriteStatus(w, code)
}
