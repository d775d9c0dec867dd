package mailer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// WriterSender prints emails to an io.Writer instead of delivering them.
// It backs local development and the preview command.
type WriterSender struct {
	w    io.Writer
	mu   sync.Mutex
	html bool
}

// NewWriterSender creates a WriterSender writing to w. With includeHTML the
// HTML part is printed after the plain-text part.
func NewWriterSender(w io.Writer, includeHTML bool) *WriterSender {
	return &WriterSender{w: w, html: includeHTML}
}

// Send writes the headers and the body and returns a locally generated id.
func (s *WriterSender) Send(_ context.Context, email *Email) (string, error) {
	if len(email.To) == 0 {
		return "", ErrNoRecipient
	}

	id := "local-" + uuid.NewString()

	var b strings.Builder
	fmt.Fprintf(&b, "Message-Id: %s\n", id)
	if email.From != "" {
		fmt.Fprintf(&b, "From: %s\n", email.From)
	}
	fmt.Fprintf(&b, "To: %s\n", strings.Join(email.To, ", "))
	if email.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\n", email.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\n\n", email.Subject)
	b.WriteString(email.Text)
	if !strings.HasSuffix(email.Text, "\n") {
		b.WriteByte('\n')
	}
	if s.html && email.HTML != "" {
		b.WriteString("\n--- html ---\n")
		b.WriteString(email.HTML)
		b.WriteByte('\n')
	}
	b.WriteString("\n")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.w, b.String()); err != nil {
		return "", err
	}
	return id, nil
}
