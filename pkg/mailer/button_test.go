package mailer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func TestButtonExtension(t *testing.T) {
	t.Parallel()

	md := goldmark.New(goldmark.WithExtensions(ButtonExtension()))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "renders button",
			input: "[!button|Visit site](https://example.com)",
			want:  `<p><a href="https://example.com" class="btn">Visit site</a></p>`,
		},
		{
			name:  "escapes label",
			input: "[!button|A & B](https://example.com)",
			want:  `<p><a href="https://example.com" class="btn">A &amp; B</a></p>`,
		},
		{
			name:  "keeps surrounding text",
			input: "Go: [!button|Open](https://example.com/x) now",
			want:  `<p>Go: <a href="https://example.com/x" class="btn">Open</a> now</p>`,
		},
		{
			name:  "regular links are untouched",
			input: "[Docs](https://example.com)",
			want:  `<p><a href="https://example.com">Docs</a></p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, md.Convert([]byte(tt.input), &buf))
			require.Equal(t, tt.want, string(bytes.TrimSpace(buf.Bytes())))
		})
	}
}
