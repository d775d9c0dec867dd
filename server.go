package contactd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/pagecraft/contactd/emails"
	"github.com/pagecraft/contactd/handlers"
	"github.com/pagecraft/contactd/middlewares"
	"github.com/pagecraft/contactd/pkg/contact"
	"github.com/pagecraft/contactd/pkg/logger"
	"github.com/pagecraft/contactd/pkg/mailer"
	"github.com/pagecraft/contactd/pkg/mailer/resend"
	"github.com/pagecraft/contactd/pkg/ratelimit"
	"github.com/pagecraft/contactd/pkg/redis"
)

// sentryFlushTimeout bounds the wait for buffered Sentry events on shutdown.
const sentryFlushTimeout = 2 * time.Second

// Server is the assembled contact service.
type Server struct {
	app      *App
	pipeline *contact.Pipeline
	logger   *slog.Logger
	closers  []func(context.Context) error
	cfg      Config

	closeOnce sync.Once
}

// ServerOption overrides a collaborator of the Server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	sender   mailer.Sender
	reporter contact.Reporter
	stdout   io.Writer
}

// WithSender replaces the delivery gateway chosen from the configuration.
func WithSender(s mailer.Sender) ServerOption {
	return func(o *serverOptions) {
		o.sender = s
	}
}

// WithReporter replaces the Sentry reporter.
func WithReporter(r contact.Reporter) ServerOption {
	return func(o *serverOptions) {
		o.reporter = r
	}
}

// WithStdout sets where the writer sender prints emails when no Resend key
// is configured. Defaults to os.Stdout.
func WithStdout(w io.Writer) ServerOption {
	return func(o *serverOptions) {
		if w != nil {
			o.stdout = w
		}
	}
}

// NewLogger builds the service logger from cfg. The returned closer releases
// the log file, if any.
func NewLogger(cfg Config) (*slog.Logger, io.Closer) {
	w := logger.Open(cfg.Log)
	return logger.NewWithSentry(w, cfg.Log, cfg.Sentry, middlewares.RequestIDExtractor()), w
}

// New validates cfg and wires the rate limiter store, the mailer, the
// submission pipeline and the HTTP application. With RATE_LIMIT_REDIS_URL set
// it connects to Redis and fails if the server is unreachable.
func New(ctx context.Context, cfg Config, log *slog.Logger, opts ...ServerOption) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNope()
	}

	o := serverOptions{stdout: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{cfg: cfg, logger: log}

	store, healthOpts, err := s.openStore(ctx)
	if err != nil {
		return nil, err
	}
	limiter := ratelimit.New(store, cfg.RateLimit.Options()...)

	sender := o.sender
	if sender == nil {
		sender = NewSender(cfg, o.stdout, log)
	}
	m := mailer.New(
		mailer.Throttle(sender, cfg.Mailer.RatePerSecond, cfg.Mailer.RateBurst),
		mailer.NewRenderer(emails.FS),
		cfg.Mailer,
	)

	reporter := o.reporter
	if reporter == nil && cfg.Sentry.DSN != "" {
		reporter = logger.NewSentryReporter(nil)
		s.closers = append(s.closers, logger.FlushSentry(sentryFlushTimeout))
	}

	s.pipeline = contact.New(cfg.Contact, m, limiter,
		contact.WithLogger(log),
		contact.WithReporter(reporter),
	)

	s.app = NewApp(
		WithLogger(log),
		WithBodyLimit(cfg.HTTP.BodyLimit),
		WithMiddleware(s.middlewares()...),
		WithErrorHandler(handlers.ErrorHandler(reporter)),
		WithNotFoundHandler(handlers.NotFound),
		WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		WithHealthChecks(healthOpts...),
		WithHandlers(handlers.NewContact(s.pipeline, cfg.Endpoint)),
	)

	return s, nil
}

func (s *Server) openStore(ctx context.Context) (ratelimit.Store, []HealthOption, error) {
	if s.cfg.Redis.URL == "" {
		s.logger.Info("rate limiter uses in-memory store")
		return ratelimit.NewMemoryStore(), nil, nil
	}

	client, err := redis.Open(ctx, s.cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	s.closers = append(s.closers, redis.Shutdown(client))
	s.logger.Info("rate limiter uses redis store", slog.String("key_prefix", s.cfg.RateLimit.KeyPrefix))

	return ratelimit.NewRedisStore(client, s.cfg.RateLimit.KeyPrefix),
		[]HealthOption{WithReadinessCheck("redis", redis.Healthcheck(client))},
		nil
}

func (s *Server) middlewares() []Middleware {
	mws := []Middleware{
		middlewares.RequestID(),
		middlewares.AccessLog("/health"),
		middlewares.Recover(),
	}
	if origins := s.cfg.HTTP.CORSAllowedOrigins; len(origins) > 0 {
		mws = append(mws, middlewares.CORS(
			middlewares.WithAllowOrigins(origins...),
			middlewares.WithExposeHeaders(
				"X-Request-ID",
				"X-RateLimit-Limit",
				"X-RateLimit-Remaining",
				"X-RateLimit-Reset",
				"Retry-After",
			),
		))
	}
	return append(mws, middlewares.Timeout(s.cfg.HTTP.RequestTimeout))
}

// NewSender returns the Resend gateway when an API key is configured and a
// writer sender printing to w otherwise.
func NewSender(cfg Config, w io.Writer, log *slog.Logger) mailer.Sender {
	if cfg.Resend.Enabled() {
		return resend.New(cfg.Resend)
	}
	if log != nil {
		log.Warn("RESEND_API_KEY is not set, emails are printed instead of delivered")
	}
	return mailer.NewWriterSender(w, false)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

// Run serves on the configured address until ctx is cancelled or the process
// receives SIGINT or SIGTERM, then shuts down gracefully and releases the
// Redis connection and the Sentry buffer.
func (s *Server) Run(ctx context.Context) error {
	err := s.app.Run(s.cfg.HTTP.Address,
		Logger(s.logger),
		ShutdownTimeout(s.cfg.HTTP.ShutdownTimeout),
		WithContext(ctx),
		ShutdownHook(s.Close),
	)
	if err != nil {
		return errors.Join(err, s.Close(context.Background()))
	}
	return nil
}

// Close releases external resources. Calls after the first are no-ops.
func (s *Server) Close(ctx context.Context) error {
	var errs []error
	s.closeOnce.Do(func() {
		for _, fn := range s.closers {
			if err := fn(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	})
	return errors.Join(errs...)
}

// Preview renders the notification and the confirmation for in and writes
// them to w without delivering anything. An unset operator address is
// replaced with a placeholder.
func Preview(ctx context.Context, w io.Writer, cfg Config, in contact.Input, includeHTML bool) error {
	sub, err := contact.Validate(in)
	if err != nil {
		return err
	}
	if cfg.Contact.OperatorEmail == "" {
		cfg.Contact.OperatorEmail = "operator@example.com"
	}

	m := mailer.New(mailer.NewWriterSender(w, includeHTML), mailer.NewRenderer(emails.FS), cfg.Mailer)
	if out := contact.NewNotifier(m, cfg.Contact).Send(ctx, sub); !out.OK {
		return out.Err
	}
	if out := contact.NewConfirmer(m, cfg.Contact).Send(ctx, sub); !out.OK {
		return out.Err
	}
	return nil
}
