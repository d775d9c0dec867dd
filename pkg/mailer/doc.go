// Package mailer renders markdown email templates and hands the result to a
// delivery provider.
//
// # Components
//
//   - [Sender]: the delivery gateway. [resend.Sender] talks to Resend,
//     [WriterSender] prints emails for local runs, [Throttle] caps the
//     outbound request rate of any sender.
//   - [Renderer]: markdown templates with YAML frontmatter, converted to HTML
//     with goldmark and wrapped in an html/template layout.
//   - [Mailer]: resolves the subject, renders, sends and returns the
//     provider's message id.
//
// # Templates
//
//	---
//	Subject: "New message from {{.Name}}"
//	---
//	Hello **{{user .Name}}**,
//
//	{{user .Message}}
//
//	[!button|Visit the site](https://example.com)
//
// The subject is itself a text/template. Untrusted values go through the
// user function: the plain-text part receives them verbatim, the HTML part
// receives them with every ASCII punctuation character backslash-escaped,
// so markdown or raw HTML typed by a visitor renders as literal text. The
// converted HTML is additionally passed through an allow-list sanitizer
// before it is placed in the layout. Line breaks are kept as <br>.
//
// # Sending
//
//	m := mailer.New(sender, mailer.NewRenderer(emails.FS), mailer.Config{
//	    DefaultLayout:   "base.html",
//	    FallbackSubject: "Notification",
//	})
//	id, err := m.Send(ctx, mailer.SendParams{
//	    To:       "owner@example.com",
//	    ReplyTo:  "visitor@example.com",
//	    Template: "notification.md",
//	    Data:     data,
//	})
//
// Send never retries. Render problems wrap [ErrRenderFailed], provider
// problems wrap [ErrSendFailed].
package mailer
