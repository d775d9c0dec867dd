// Package resend delivers mailer emails through the Resend HTTP API.
package resend

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/resend/resend-go/v3"

	"github.com/pagecraft/contactd/pkg/mailer"
)

// ErrNoMessageID is returned when Resend accepts a request without an id.
var ErrNoMessageID = errors.New("resend: response carried no message id")

// Sender implements mailer.Sender on top of the Resend client.
type Sender struct {
	client *resend.Client
	from   string
}

// New creates a Sender from cfg.
func New(cfg Config) *Sender {
	return NewWithClient(resend.NewClient(cfg.APIKey), cfg)
}

// NewWithClient creates a Sender around an existing client, e.g. one whose
// BaseURL points at a test server.
func NewWithClient(client *resend.Client, cfg Config) *Sender {
	return &Sender{
		client: client,
		from:   mailer.Recipient(cfg.SenderName, cfg.SenderEmail),
	}
}

// Send implements mailer.Sender and returns the Resend email id.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	from := email.From
	if from == "" {
		from = s.from
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Tags:    convertTags(email.Tags),
	}

	resp, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return "", fmt.Errorf("resend: failed to send email: %w", err)
	}
	if resp == nil || resp.Id == "" {
		return "", ErrNoMessageID
	}
	return resp.Id, nil
}

func convertTags(tags mailer.Tags) []resend.Tag {
	if len(tags) == 0 {
		return nil
	}
	result := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		result = append(result, resend.Tag{Name: name, Value: value})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
