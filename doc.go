// Package contactd wires the contact-form service: configuration, the
// submission pipeline, the delivery gateway and the HTTP application.
//
// # Configuration
//
// [Load] reads a .env file when present and then the environment. Every
// setting has a default except CONTACT_OPERATOR_EMAIL:
//
//	cfg, err := contactd.Load()
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// # Running
//
// [New] connects the rate limiter store (in memory, or Redis when
// RATE_LIMIT_REDIS_URL is set), picks the Resend gateway or a writer sender,
// and assembles the middleware chain:
//
//	log, closer := contactd.NewLogger(cfg)
//	defer closer.Close()
//
//	srv, err := contactd.New(ctx, cfg, log)
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
//
// The server exposes POST /api/contact plus /health/live and /health/ready.
//
// # Building blocks
//
// The aliases and options in this package ([App], [Context], [NewApp],
// [WithHandlers], ...) expose the HTTP layer for composing a custom server
// around the same handlers and middlewares.
package contactd
