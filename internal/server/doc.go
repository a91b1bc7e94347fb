// Package server provides HTTP routing, middleware, and the JSON dashboard API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// [Logging] and [Recover] are the stock middleware.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally. Routes are registered as
// method patterns ("GET /api/summary"), so wrong methods get a 405 from the mux.
//
// # Dashboard
//
// [Dashboard] implements [Handler] and serves:
//
//	GET  /health                 liveness
//	GET  /api/summary            tier totals and clear rate
//	GET  /api/revenge            revenge titles in catalog order
//	GET  /api/unplayed           unplayed titles in catalog order
//	GET  /api/pick?list=         random pick from revenge (default) or unplayed
//	GET  /api/workouts           workout log (?from=, ?to=, ?limit=)
//	POST /api/workouts           log a workout
//	GET  /api/workouts/summary   calorie summary (?days= overrides the window)
//
// List endpoints read through a [SnapshotSource], which reuses the cached reconciliation while
// the input tables are unchanged. Missing inputs answer 503 with the loader's diagnostic.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
