// Package markdown renders post bodies to HTML with goldmark, replacing
// fenced code blocks with chroma-highlighted markup.
package markdown

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "dracula"

// Options controls the markdown engine and the code highlighter.
type Options struct {
	Style       string // chroma style name (default "dracula")
	LineNumbers bool   // number lines inside highlighted blocks
	UnsafeHTML  bool   // pass raw HTML in posts through untouched
}

// Renderer converts markdown to HTML. It holds no per-call state and is
// safe for concurrent use.
type Renderer struct {
	md    goldmark.Markdown
	style *chroma.Style
	code  *codeBlockRenderer
}

// New builds a Renderer with GFM extensions and the code block override.
func New(opts Options) *Renderer {
	if strings.TrimSpace(opts.Style) == "" {
		opts.Style = DefaultStyle
	}
	style := styles.Get(opts.Style)

	code := newCodeBlockRenderer(style, opts.LineNumbers)

	rendererOptions := []renderer.Option{
		// goldmark's own HTML renderer sits at priority 1000; lower wins.
		renderer.WithNodeRenderers(util.Prioritized(code, 100)),
	}
	if opts.UnsafeHTML {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	)

	return &Renderer{md: md, style: style, code: code}
}

// Render returns the HTML for source. It never fails: if conversion
// errors the source comes back escaped inside a <pre>.
func (r *Renderer) Render(source string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "<pre>" + string(util.EscapeHTML([]byte(source))) + "</pre>"
	}
	return buf.String()
}

// Markdown returns a templ.Component that renders source as HTML.
func (r *Renderer) Markdown(source string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, r.Render(source))
		return err
	})
}

// StyleName returns the name of the chroma style in use.
func (r *Renderer) StyleName() string {
	return r.style.Name
}

// WriteCSS writes the stylesheet for the highlighted code classes.
func (r *Renderer) WriteCSS(w io.Writer) error {
	return r.code.formatter.WriteCSS(w, r.style)
}

// StyleCSS returns the stylesheet written by WriteCSS.
func (r *Renderer) StyleCSS() string {
	var buf bytes.Buffer
	if err := r.WriteCSS(&buf); err != nil {
		return ""
	}
	return buf.String()
}
