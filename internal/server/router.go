package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// MuxRouter is an HTTP router implementing the [Router] interface.
//
// Uses [mux.Router] internally for routing, so path variables are read with [mux.Vars].
type MuxRouter struct {
	mux         *mux.Router
	middlewares []Middleware
}

// NewRouter creates a new [MuxRouter] instance with a health check at /health.
func NewRouter() *MuxRouter {
	r := &MuxRouter{
		mux:         mux.NewRouter(),
		middlewares: []Middleware{},
	}
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	return r
}

// Use adds [Middleware] to the [Router] instance's middleware stack, applied in the order it's added.
//
// Middleware only wraps handlers registered after the call.
func (r *MuxRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers a handler for the specified HTTP method and path.
//
// The handler is wrapped with all registered middleware. A request for a known path with another
// method gets 405 from the underlying router.
func (r *MuxRouter) Handle(method, path string, handler http.Handler) {
	r.mux.Handle(path, r.Apply(handler)).Methods(method)
}

// Handler registers every [Route] of a custom [Handler] implementation.
func (r *MuxRouter) Handler(handler Handler) {
	for _, route := range handler.Routes() {
		r.Handle(route.Method, route.Path, route.Handler)
	}
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *MuxRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps a handler with all registered middleware.
//
// Middleware is applied in reverse order (last added wraps first).
func (r *MuxRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}
