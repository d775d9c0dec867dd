package mailer

import (
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r := NewRenderer(testFS())

	result, err := r.Render("base.html", "welcome.md", map[string]string{"Name": "Alice"})
	require.NoError(t, err)

	require.Equal(t, "Hello **Alice**!\n", result.Text)
	require.Contains(t, result.HTML, "<strong>Alice</strong>")
	require.Contains(t, result.HTML, "<html><body>")
	require.Equal(t, "Welcome {{.Name}}", result.Metadata["Subject"])
}

func TestRenderer_Render_UserInput(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{Data: []byte(`{{.Content}}`)},
		"echo.md":           &fstest.MapFile{Data: []byte("Message:\n\n{{user .}}\n")},
	}
	r := NewRenderer(fsys)

	tests := []struct {
		name       string
		input      string
		htmlHas    []string
		htmlHasNot []string
	}{
		{
			name:       "raw html is shown as text",
			input:      `<script>alert("x")</script>`,
			htmlHas:    []string{"&lt;script&gt;"},
			htmlHasNot: []string{"<script>"},
		},
		{
			name:       "markdown is not interpreted",
			input:      "**bold** _em_ [link](https://evil.example)",
			htmlHas:    []string{"**bold**", "_em_", "[link](https://evil.example)"},
			htmlHasNot: []string{"<strong>", "<em>", "<a "},
		},
		{
			name:       "headings and lists are not interpreted",
			input:      "# Title\n- item\n1. first",
			htmlHas:    []string{"# Title", "- item", "1. first"},
			htmlHasNot: []string{"<h1>", "<ul>", "<ol>"},
		},
		{
			name:       "line breaks are kept",
			input:      "line one\nline two",
			htmlHas:    []string{"line one<br", "line two"},
			htmlHasNot: nil,
		},
		{
			name:       "indented lines do not become code",
			input:      "intro\n\n    indented",
			htmlHas:    []string{"indented"},
			htmlHasNot: []string{"<pre>", "<code>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := r.Render("base.html", "echo.md", tt.input)
			require.NoError(t, err)

			require.Equal(t, "Message:\n\n"+tt.input+"\n", result.Text, "text part must be verbatim")
			for _, s := range tt.htmlHas {
				require.Contains(t, result.HTML, s)
			}
			for _, s := range tt.htmlHasNot {
				require.NotContains(t, result.HTML, s)
			}
		})
	}
}

func TestRenderer_Render_Button(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{Data: []byte(`{{.Content}}`)},
		"cta.md":            &fstest.MapFile{Data: []byte(`Thanks!

{{button (printf "Visit %s" .Name) .URL}}
`)},
	}
	r := NewRenderer(fsys)

	result, err := r.Render("base.html", "cta.md", map[string]string{"Name": "Example", "URL": "https://example.com"})
	require.NoError(t, err)

	assert.Contains(t, result.Text, "Visit Example: https://example.com")
	assert.NotContains(t, result.Text, "[!button")
	assert.Contains(t, result.HTML, `href="https://example.com"`)
	assert.Contains(t, result.HTML, `class="btn"`)
	assert.Contains(t, result.HTML, ">Visit Example</a>")
	assert.NotContains(t, result.HTML, "[!button")
}

func TestRenderer_Render_Errors(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{Data: []byte(`{{.Content}}`)},
		"ok.md":             &fstest.MapFile{Data: []byte("ok")},
		"broken.md":         &fstest.MapFile{Data: []byte("{{.Name")},
		"bad-front.md":      &fstest.MapFile{Data: []byte("---\nSubject: [\n---\nbody")},
	}
	r := NewRenderer(fsys)

	_, err := r.Render("base.html", "missing.md", nil)
	require.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = r.Render("missing.html", "ok.md", nil)
	require.ErrorIs(t, err, ErrLayoutNotFound)

	_, err = r.Render("base.html", "broken.md", nil)
	require.ErrorIs(t, err, ErrRenderFailed)

	_, err = r.Render("base.html", "bad-front.md", nil)
	require.ErrorIs(t, err, ErrRenderFailed)
}

type countingFS struct {
	fstest.MapFS
	opens *atomic.Int32
}

func (c countingFS) ReadFile(name string) ([]byte, error) {
	c.opens.Add(1)
	return c.MapFS.ReadFile(name)
}

func TestRenderer_CachesParsedTemplates(t *testing.T) {
	t.Parallel()

	var opens atomic.Int32
	r := NewRenderer(countingFS{MapFS: testFS(), opens: &opens})

	_, err := r.Render("base.html", "welcome.md", map[string]string{"Name": "Alice"})
	require.NoError(t, err)
	require.Equal(t, int32(2), opens.Load())

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			res, err := r.Render("base.html", "welcome.md", map[string]string{"Name": "Bob"})
			if assert.NoError(t, err) {
				assert.Contains(t, res.Text, "Bob")
			}
		})
	}
	wg.Wait()

	require.Equal(t, int32(2), opens.Load())
}
