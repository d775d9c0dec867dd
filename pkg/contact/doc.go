// Package contact implements the contact-form submission pipeline.
//
// A submission flows through four steps, each able to end it:
//
//  1. [Validate] turns the untrusted [Input] into a [Submission] or returns
//     every field problem at once as [ValidationErrors].
//  2. The abuse filter consults the rate limiter for the client identity,
//     then the honeypot field.
//  3. The [Notifier] emails the site operator. Its failure fails the
//     submission and the confirmation is never attempted.
//  4. The [Confirmer] acknowledges the submitter. Its failure is logged and
//     otherwise ignored.
//
// [Pipeline.Submit] returns a [Result] whose [State] maps onto the four
// caller-facing responses. A honeypot hit is its own state internally but
// must be answered exactly like an accepted submission.
//
//	p := contact.New(cfg, mailer, limiter,
//	    contact.WithLogger(log),
//	    contact.WithReporter(logger.NewSentryReporter(nil)),
//	)
//	res := p.Submit(ctx, contact.Request{Input: in, Identity: ip, RequestID: id})
package contact
