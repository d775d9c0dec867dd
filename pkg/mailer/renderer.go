package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/pagecraft/contactd/pkg/sanitizer"
)

// Renderer turns markdown templates into HTML and plain-text bodies.
// Parsed templates and layouts are cached; rendered output never is.
type Renderer struct {
	fs        fs.FS
	md        goldmark.Markdown
	templates map[string]*cachedTemplate
	layouts   map[string]*template.Template
	sanitize  func(string) string

	templateDir string
	layoutDir   string

	mu sync.RWMutex
}

// cachedTemplate keeps one parse per output mode: the text parse binds the
// user function to identity, the html parse to escapeMarkdown.
type cachedTemplate struct {
	metadata map[string]any
	text     *texttemplate.Template
	html     *texttemplate.Template
}

// RendererConfig configures a Renderer. Empty fields take defaults.
type RendererConfig struct {
	TemplateDir string // default "."
	LayoutDir   string // default "layouts"
	// Sanitize filters the HTML converted from markdown before it is placed
	// in the layout. Default sanitizer.SanitizeEmailHTML.
	Sanitize func(string) string
}

// NewRenderer creates a renderer with the default config.
func NewRenderer(filesystem fs.FS) *Renderer {
	return NewRendererWithConfig(filesystem, RendererConfig{})
}

// NewRendererWithConfig creates a renderer reading templates from filesystem.
func NewRendererWithConfig(filesystem fs.FS, cfg RendererConfig) *Renderer {
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "."
	}
	if cfg.LayoutDir == "" {
		cfg.LayoutDir = "layouts"
	}
	if cfg.Sanitize == nil {
		cfg.Sanitize = sanitizer.SanitizeEmailHTML
	}

	return &Renderer{
		fs:          filesystem,
		templateDir: cfg.TemplateDir,
		layoutDir:   cfg.LayoutDir,
		sanitize:    cfg.Sanitize,
		md: goldmark.New(
			goldmark.WithExtensions(ButtonExtension()),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		templates: make(map[string]*cachedTemplate),
		layouts:   make(map[string]*template.Template),
	}
}

// RenderResult holds both bodies and the template's frontmatter.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	Text     string
}

// Render executes templateName with data and wraps the HTML in layout.
func (r *Renderer) Render(layout, templateName string, data any) (*RenderResult, error) {
	cached, err := r.template(templateName)
	if err != nil {
		return nil, err
	}

	var text bytes.Buffer
	if err := cached.text.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("%w: execute %s: %v", ErrRenderFailed, templateName, err)
	}

	var markdown bytes.Buffer
	if err := cached.html.Execute(&markdown, data); err != nil {
		return nil, fmt.Errorf("%w: execute %s: %v", ErrRenderFailed, templateName, err)
	}

	var content bytes.Buffer
	if err := r.md.Convert(markdown.Bytes(), &content); err != nil {
		return nil, fmt.Errorf("%w: convert %s: %v", ErrRenderFailed, templateName, err)
	}

	layoutTmpl, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	err = layoutTmpl.Execute(&out, map[string]any{
		"Content":  template.HTML(r.sanitize(content.String())), //nolint:gosec // sanitized above
		"Metadata": cached.metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: execute layout %s: %v", ErrRenderFailed, layout, err)
	}

	return &RenderResult{
		HTML:     out.String(),
		Text:     text.String(),
		Metadata: cached.metadata,
	}, nil
}

func (r *Renderer) template(name string) (*cachedTemplate, error) {
	r.mu.RLock()
	cached, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.templates[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.templateDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}

	parsed, err := ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	textTmpl, err := texttemplate.New(name).Funcs(texttemplate.FuncMap{"user": verbatim, "button": textButton}).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrRenderFailed, name, err)
	}
	htmlTmpl, err := texttemplate.New(name).Funcs(texttemplate.FuncMap{"user": escapeMarkdown, "button": markdownButton}).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrRenderFailed, name, err)
	}

	cached = &cachedTemplate{metadata: parsed.Metadata, text: textTmpl, html: htmlTmpl}
	r.templates[name] = cached
	return cached, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.RLock()
	cached, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.layouts[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: parse layout %s: %v", ErrRenderFailed, name, err)
	}

	r.layouts[name] = tmpl
	return tmpl, nil
}

func verbatim(v any) string {
	return fmt.Sprint(v)
}

// textButton prints a button as its label followed by the bare URL.
func textButton(label, url string) string {
	return label + ": " + url
}

// markdownButton emits the [!button|label](url) syntax the button extension
// turns into a styled link.
func markdownButton(label, url string) string {
	return "[!button|" + label + "](" + url + ")"
}

// escapeMarkdown backslash-escapes every ASCII punctuation character so
// goldmark renders the value as literal text. Leading indentation becomes
// non-breaking spaces, otherwise an indented line would open a code block.
func escapeMarkdown(v any) string {
	s := fmt.Sprint(v)

	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	lineStart := true
	for _, r := range s {
		switch {
		case lineStart && r == ' ':
			b.WriteString("&nbsp;")
			continue
		case lineStart && r == '\t':
			b.WriteString("&nbsp;&nbsp;&nbsp;&nbsp;")
			continue
		case r < 0x80 && isASCIIPunct(byte(r)):
			b.WriteByte('\\')
		}
		b.WriteRune(r)
		lineStart = r == '\n'
	}
	return b.String()
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}
