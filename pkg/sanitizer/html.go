// Package sanitizer holds the HTML allow-list applied to email bodies.
package sanitizer

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPolicy *bluemonday.Policy
	initOnce    sync.Once
)

// EmailPolicy returns the shared policy for markdown-rendered email bodies:
// text formatting, headings, lists, quotes, code and http(s)/mailto links
// carrying at most the "btn" class. Everything else is removed.
func EmailPolicy() *bluemonday.Policy {
	initOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowStandardURLs()
		p.AllowElements(
			"p", "br", "hr",
			"h1", "h2", "h3", "h4",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		p.AllowAttrs("href").OnElements("a")
		p.AllowAttrs("class").Matching(regexp.MustCompile(`^btn$`)).OnElements("a")
		p.RequireNoFollowOnLinks(false)
		emailPolicy = p
	})
	return emailPolicy
}

// SanitizeEmailHTML filters s through EmailPolicy.
func SanitizeEmailHTML(s string) string {
	return EmailPolicy().Sanitize(s)
}
