package contact

import (
	"context"
	"time"

	"github.com/pagecraft/contactd/emails"
	"github.com/pagecraft/contactd/pkg/mailer"
)

// Mailer renders and sends one templated email, returning the provider id.
// *mailer.Mailer implements it.
type Mailer interface {
	Send(ctx context.Context, params mailer.SendParams) (string, error)
}

// DeliveryOutcome is the result of one dispatch.
type DeliveryOutcome struct {
	Err        error
	ProviderID string
	OK         bool
}

func outcome(id string, err error) DeliveryOutcome {
	if err != nil {
		return DeliveryOutcome{Err: err}
	}
	return DeliveryOutcome{OK: true, ProviderID: id}
}

// messageData is what both templates see.
type messageData struct {
	FirstName  string
	LastName   string
	Email      string
	Message    string
	ReceivedAt string
	SiteName   string
	SiteURL    string
}

func newMessageData(s *Submission, cfg Config, at time.Time) messageData {
	return messageData{
		FirstName:  s.FirstName(),
		LastName:   s.LastName(),
		Email:      s.Email(),
		Message:    s.Message(),
		ReceivedAt: at.UTC().Format(time.RFC1123),
		SiteName:   cfg.SiteName,
		SiteURL:    cfg.SiteURL,
	}
}

// Notifier sends the operator-facing notification.
type Notifier struct {
	mailer Mailer
	now    func() time.Time
	cfg    Config
}

// NewNotifier creates a Notifier addressing cfg.OperatorEmail.
func NewNotifier(m Mailer, cfg Config) *Notifier {
	return &Notifier{mailer: m, cfg: cfg, now: time.Now}
}

// Send emails the operator with reply-to set to the submitter. Failures are
// returned in the outcome.
func (n *Notifier) Send(ctx context.Context, s *Submission) DeliveryOutcome {
	return outcome(n.mailer.Send(ctx, mailer.SendParams{
		To:       n.cfg.OperatorEmail,
		ReplyTo:  s.Email(),
		Template: emails.Notification,
		Data:     newMessageData(s, n.cfg, n.now()),
		Tags:     mailer.Tags{"category": "contact_notification"},
	}))
}

// Confirmer sends the submitter-facing acknowledgment.
type Confirmer struct {
	mailer Mailer
	now    func() time.Time
	cfg    Config
}

// NewConfirmer creates a Confirmer. Replies to the acknowledgment go to
// cfg.OperatorEmail.
func NewConfirmer(m Mailer, cfg Config) *Confirmer {
	return &Confirmer{mailer: m, cfg: cfg, now: time.Now}
}

// Send emails the submitter a copy of their message.
func (c *Confirmer) Send(ctx context.Context, s *Submission) DeliveryOutcome {
	return outcome(c.mailer.Send(ctx, mailer.SendParams{
		To:       s.Email(),
		ReplyTo:  c.cfg.OperatorEmail,
		Template: emails.Confirmation,
		Data:     newMessageData(s, c.cfg, c.now()),
		Tags:     mailer.Tags{"category": "contact_confirmation"},
	}))
}
