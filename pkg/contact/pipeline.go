package contact

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pagecraft/contactd/pkg/logger"
	"github.com/pagecraft/contactd/pkg/ratelimit"
)

// Limiter decides whether an identity may submit again.
// *ratelimit.Limiter implements it.
type Limiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Decision, error)
}

// Reporter forwards errors to an error tracker.
type Reporter interface {
	Report(ctx context.Context, err error, tags map[string]string)
}

type nopReporter struct{}

func (nopReporter) Report(context.Context, error, map[string]string) {}

// Request is one submission attempt.
type Request struct {
	Input     Input
	Identity  string // raw client identity, only its hash is logged
	RequestID string
}

// Pipeline runs submissions from validation to delivery.
type Pipeline struct {
	notifier  *Notifier
	confirmer *Confirmer
	limiter   Limiter
	reporter  Reporter
	logger    *slog.Logger
	now       func() time.Time
	cfg       Config
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Default discards.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithReporter sets the error tracker. Default discards.
func WithReporter(r Reporter) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.reporter = r
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a Pipeline sending through m and throttled by limiter.
func New(cfg Config, m Mailer, limiter Limiter, opts ...Option) *Pipeline {
	p := &Pipeline{
		notifier:  NewNotifier(m, cfg),
		confirmer: NewConfirmer(m, cfg),
		limiter:   limiter,
		reporter:  nopReporter{},
		logger:    logger.NewNope(),
		now:       time.Now,
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.notifier.now = p.now
	p.confirmer.now = p.now
	return p
}

// Submit runs one submission to a terminal state. It does not return errors:
// every failure is expressed in the Result and has already been logged.
func (p *Pipeline) Submit(ctx context.Context, req Request) Result {
	start := p.now()
	res := p.run(ctx, req)

	res.Record.RequestID = req.RequestID
	res.Record.IdentityHash = HashIdentity(req.Identity)
	res.Record.State = res.State
	res.Record.Duration = p.now().Sub(start)

	p.log(ctx, res)
	return res
}

func (p *Pipeline) run(ctx context.Context, req Request) Result {
	sub, err := Validate(req.Input)
	if err != nil {
		var verrs ValidationErrors
		if !errors.As(err, &verrs) {
			verrs = ValidationErrors{{Field: "input", Message: "is invalid"}}
		}
		return Result{State: StateRejected, Errors: verrs}
	}

	var res Result
	decision, err := p.limiter.Allow(ctx, req.Identity)
	if err != nil {
		// Fail open.
		p.logger.ErrorContext(ctx, "rate limiter unavailable, allowing submission",
			slog.String("identity_hash", HashIdentity(req.Identity)),
			slog.String("error", err.Error()),
		)
		p.reporter.Report(ctx, err, p.tags(req, "ratelimit"))
	} else {
		res.Decision = &decision
		if !decision.Allowed {
			res.State = StateRateLimited
			return res
		}
	}

	if req.Input.HoneypotTripped() {
		res.State = StateHoneypotAbsorbed
		return res
	}

	notification := p.notifier.Send(ctx, sub)
	res.Record.Notification = &notification
	if !notification.OK {
		p.reporter.Report(ctx, notification.Err, p.tags(req, "notification"))
		res.State = StateDeliveryFailed
		return res
	}

	if p.cfg.ConfirmationEnabled {
		confirmation := p.confirmer.Send(ctx, sub)
		res.Record.Confirmation = &confirmation
	}

	res.State = StateAccepted
	return res
}

func (p *Pipeline) log(ctx context.Context, res Result) {
	rec := slog.Any("submission", res.Record)

	switch res.State {
	case StateRejected:
		p.logger.InfoContext(ctx, "contact submission rejected", rec,
			slog.Any("invalid_fields", res.Errors.Fields()))
	case StateRateLimited:
		p.logger.WarnContext(ctx, "contact submission rate limited", rec)
	case StateHoneypotAbsorbed:
		p.logger.InfoContext(ctx, "contact submission absorbed by honeypot", rec)
	case StateDeliveryFailed:
		p.logger.ErrorContext(ctx, "contact notification failed", rec)
	case StateAccepted:
		if res.Record.ConfirmationFailed() {
			p.logger.WarnContext(ctx, "contact confirmation failed", rec)
		}
		p.logger.InfoContext(ctx, "contact submission accepted", rec)
	}
}

func (p *Pipeline) tags(req Request, stage string) map[string]string {
	return map[string]string{
		"request_id": req.RequestID,
		"stage":      stage,
	}
}
