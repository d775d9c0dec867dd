// Package internal holds the HTTP application core behind package contactd:
// the App, the request Context, routing on top of chi, and the graceful
// shutdown runtime.
//
// Import "github.com/pagecraft/contactd" instead, which re-exports the public API.
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context:
//
//	func (h *Contact) submit(c contactd.Context) error {
//	    res := h.pipeline.Submit(c, req)
//	    ...
//	}
//
// # Errors
//
// Handlers return errors instead of writing failure responses. The app's
// ErrorHandler turns them into responses; *HTTPError carries the status code,
// the client-facing message, and optional details.
//
// # Lifecycle
//
// App.Run runs startup hooks, listens, and blocks until SIGINT or SIGTERM.
// Shutdown stops accepting connections, drains in-flight requests, then runs
// shutdown hooks, all bounded by ShutdownTimeout.
package internal
