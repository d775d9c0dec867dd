package mailer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	texttemplate "text/template"
)

// Mailer renders templates and sends the result through a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{
		sender:   sender,
		renderer: renderer,
		config:   cfg,
	}
}

// SendParams describes one templated message.
type SendParams struct {
	Data     any
	Tags     Tags
	To       string
	Template string // e.g. "notification.md"

	Subject string // overrides the template's Subject frontmatter
	Layout  string // overrides Config.DefaultLayout
	From    string
	ReplyTo string
}

// Send renders params.Template and delivers it, returning the provider's
// message id. Subject resolution: params.Subject, then the template's
// Subject frontmatter, then Config.FallbackSubject.
func (m *Mailer) Send(ctx context.Context, params SendParams) (string, error) {
	if params.To == "" {
		return "", ErrNoRecipient
	}

	email, err := m.Render(params)
	if err != nil {
		return "", err
	}

	id, err := m.sender.Send(ctx, email)
	if err != nil {
		return "", errors.Join(ErrSendFailed, err)
	}
	return id, nil
}

// Render builds the Email described by params without sending it.
func (m *Mailer) Render(params SendParams) (*Email, error) {
	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	result, err := m.renderer.Render(layout, params.Template, params.Data)
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}

	subject := params.Subject
	if subject == "" {
		if s, ok := result.Metadata["Subject"].(string); ok {
			subject = s
		} else {
			subject = m.config.FallbackSubject
		}
	}

	subject, err = renderSubject(subject, params.Data)
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}
	if subject == "" {
		return nil, ErrNoSubject
	}

	return &Email{
		To:      []string{params.To},
		From:    params.From,
		ReplyTo: params.ReplyTo,
		Subject: subject,
		HTML:    result.HTML,
		Text:    result.Text,
		Tags:    params.Tags,
	}, nil
}

// renderSubject executes subject as a text/template and folds it onto one line.
func renderSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Funcs(texttemplate.FuncMap{"user": verbatim}).Parse(subject)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return strings.Join(strings.Fields(buf.String()), " "), nil
}
