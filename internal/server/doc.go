// Package server provides HTTP routing, middleware, and the JSON API over the search and watchlist core.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [MuxRouter] implementation uses gorilla/mux internally, which gives method matching (405 on a known
// path with the wrong method) and path variables such as {id}.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface and return their [Route] list, keeping route
// definitions next to the code that serves them.
//
// # Endpoints
//
//	GET    /api/search?q=       search status and results
//	GET    /api/movies/{id}     detail record, 502 "Details not available." on failure
//	GET    /api/watchlist       saved movies in insertion order
//	POST   /api/watchlist       add a movie (201 added, 200 already present)
//	DELETE /api/watchlist/{id}  remove a movie (200 removed or not present)
//	GET    /api/theme           stored theme preference
//	PUT    /api/theme           store "light" or "dark"
//
// Each search request runs in its own session. The watchlist store is shared by all requests.
package server
