// Package middlewares provides the HTTP middleware stack of contactd.
//
// # Request ID
//
// RequestID assigns a UUIDv7 to each request unless a well-formed upstream
// X-Request-ID or X-Correlation-ID is present. Pair it with
// RequestIDExtractor so every log line of the request carries request_id:
//
//	log := logger.New(w, cfg, middlewares.RequestIDExtractor())
//	app := contactd.NewApp(
//	    contactd.WithLogger(log),
//	    contactd.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover turns panics into *PanicError values for the app's ErrorHandler:
//
//	contactd.WithErrorHandler(func(c contactd.Context, err error) error {
//	    if pe, ok := middlewares.AsPanicError(err); ok {
//	        reporter.Report(c, pe, nil)
//	    }
//	    return c.JSON(http.StatusInternalServerError, genericError)
//	})
//
// # Timeout
//
// Timeout attaches a deadline to the request context. Handlers run on the
// request goroutine and must honor ctx.Done(); a handler that overruns
// without writing a response yields *TimeoutError.
//
// # CORS
//
// CORS answers preflight requests and adds Access-Control-* headers for
// allowed origins, so the contact form can post from a static site on
// another origin.
//
// # Access log
//
// AccessLog writes one "request completed" line per request with method,
// path, status, and duration.
package middlewares
