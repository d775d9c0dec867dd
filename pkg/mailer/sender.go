package mailer

import "context"

// Sender delivers a rendered email and returns the provider's message id.
// Any non-nil error means the message was not accepted by the provider.
type Sender interface {
	Send(ctx context.Context, email *Email) (string, error)
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, email *Email) (string, error)

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, email *Email) (string, error) {
	return f(ctx, email)
}
