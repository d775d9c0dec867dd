// Package emails embeds the markdown templates and HTML layouts used for
// contact-form emails.
package emails

import "embed"

// FS holds *.md templates at the root and layouts under layouts/.
//
//go:embed *.md layouts/*.html
var FS embed.FS

const (
	Notification = "notification.md"
	Confirmation = "confirmation.md"
)
