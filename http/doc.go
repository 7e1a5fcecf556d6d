// Package http provides the HTTP front end of kvgate.
//
// Each configured route is mounted on a chi router at its prefix and below.
// A request is handled in fixed order, and the first failing step decides
// the response:
//
//  1. Methods other than GET and HEAD get 405 and never reach the store.
//  2. Any request body is drained and discarded; a failure is a 500.
//  3. The final path segment is looked up through the Service.
//  4. The value is written with the route's Content-Type and an exact
//     Content-Length. HEAD responses carry the headers only.
//
// Missing keys get 404. Oversized paths and store failures get 500. Error
// responses have an empty body.
//
// # Usage
//
//	routes, err := cfg.ResolveRoutes()
//	if err != nil {
//	    return err
//	}
//
//	handlerCfg := http.HandlerConfig{
//	    Routes: routes,
//	    CORS:   cfg.CORS,
//	}
//	handler := http.NewHandler(&handlerCfg, gateway)
//	http.ListenAndServe(":5708", handler.Router())
//
// # Middleware
//
// RequestID assigns an X-Request-Id and RequestLogger logs each request
// through slog. Handler panics are turned into 500 responses by chi's
// middleware.Recoverer, which reports them through the request's log entry.
package http
