package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sagarc03/kvgate"
)

// Service is the lookup side of the gateway.
type Service interface {
	Get(ctx context.Context, route kvgate.RouteConfig, rawPath string) (kvgate.Object, error)
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	Routes []kvgate.Route
	CORS   CORSConfig
}

// Handler serves key lookups for a set of configured routes.
type Handler struct {
	config  HandlerConfig
	service Service
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	return &Handler{
		config:  *config,
		service: service,
	}
}

// Router returns an http.Handler with one lookup handler mounted per route.
// Each route serves its own pattern and everything below it; the merged
// route configuration is bound to the handler once, here.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	for _, route := range h.config.Routes {
		handler := h.handleLookup(route.Config)
		for _, pattern := range routePatterns(route.Pattern) {
			r.Handle(pattern, handler)
		}
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteStatus(w, http.StatusNotFound)
	})

	return r
}

// routePatterns expands a route prefix into the chi patterns it serves.
func routePatterns(prefix string) []string {
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		return []string{"/*"}
	}
	return []string{prefix, prefix + "/*"}
}

// handleLookup runs the per-request pipeline: method check, body discard,
// lookup, response. The first failing step ends the request.
func (h *Handler) handleLookup(route kvgate.RouteConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			HandleError(w, r, fmt.Errorf("%s: %w", r.Method, kvgate.ErrMethodNotAllowed))
			return
		}

		if err := discardBody(r.Body); err != nil {
			HandleError(w, r, err)
			return
		}

		obj, err := h.service.Get(r.Context(), route, RequestPath(r))
		if err != nil {
			HandleError(w, r, err)
			return
		}

		WriteObject(w, r, obj)
	}
}

// RequestPath returns the path of the request target exactly as the client
// sent it, without decoding or re-escaping. The query string is dropped and
// an absolute-form target is reduced to its path.
func RequestPath(r *http.Request) string {
	target := r.RequestURI
	if target == "" {
		// client-side or hand-built request
		return r.URL.EscapedPath()
	}

	target, _, _ = strings.Cut(target, "?")
	if strings.HasPrefix(target, "/") {
		return target
	}

	_, rest, ok := strings.Cut(target, "://")
	if !ok {
		return target
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[i:]
	}
	return "/"
}

func discardBody(body io.ReadCloser) error {
	if body == nil {
		return nil
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return fmt.Errorf("%w: %w", kvgate.ErrBodyDiscard, err)
	}
	return nil
}
