package markdown

import (
	"bytes"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// codeBlockRenderer takes over fenced code blocks from goldmark's HTML
// renderer. Everything else keeps the default rendering.
type codeBlockRenderer struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

func newCodeBlockRenderer(style *chroma.Style, lineNumbers bool) *codeBlockRenderer {
	return &codeBlockRenderer{
		style: style,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.WithLineNumbers(lineNumbers),
			chromahtml.TabWidth(4),
		),
	}
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	lang := n.Language(source)
	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(source))
	}

	if out, ok := r.highlight(string(lang), code.String()); ok {
		_, _ = w.Write(out)
		return ast.WalkSkipChildren, nil
	}

	_, _ = w.WriteString(`<pre class="code-block"><code`)
	if len(lang) > 0 {
		_, _ = w.WriteString(` class="language-`)
		_, _ = w.Write(util.EscapeHTML(lang))
		_, _ = w.WriteString(`"`)
	}
	_, _ = w.WriteString(">")
	_, _ = w.Write(util.EscapeHTML(code.Bytes()))
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

// highlight renders code with the lexer registered for lang. It reports
// false when lang is empty or unknown, or when chroma fails, so the
// caller can fall back to a plain block.
func (r *codeBlockRenderer) highlight(lang, code string) ([]byte, bool) {
	if lang == "" {
		return nil, false
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil, false
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return nil, false
	}

	escaped := util.EscapeHTML([]byte(lang))
	var buf bytes.Buffer
	buf.WriteString(`<div class="code-block language-`)
	buf.Write(escaped)
	buf.WriteString(`" data-lang="`)
	buf.Write(escaped)
	buf.WriteString(`">`)
	if err := r.formatter.Format(&buf, r.style, iterator); err != nil {
		return nil, false
	}
	buf.WriteString("</div>\n")
	return buf.Bytes(), true
}
