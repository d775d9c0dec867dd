package mailer

import "fmt"

// Tags are provider-side labels attached to a message, used for filtering
// delivery logs. Names and values should be ASCII letters, digits, '_' or '-'.
type Tags map[string]string

// Recipient formats a name and an address as "Name <address>".
// An empty name yields the bare address.
func Recipient(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

// Email is a fully rendered message ready for a Sender.
type Email struct {
	Tags    Tags
	From    string // empty means the provider's configured sender
	ReplyTo string
	Subject string
	HTML    string
	Text    string
	To      []string
}
