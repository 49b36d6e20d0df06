package mailer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindButton is the node kind for ButtonNode.
var KindButton = ast.NewNodeKind("Button")

// ButtonNode is a call-to-action link written as [!button|Label](URL)
// or [!button:variant|Label](URL).
type ButtonNode struct {
	ast.BaseInline
	URL     []byte
	Label   []byte
	Variant []byte // Empty for the default style
}

// Kind implements ast.Node.
func (n *ButtonNode) Kind() ast.NodeKind {
	return KindButton
}

// Dump implements ast.Node.
func (n *ButtonNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"URL":     string(n.URL),
		"Label":   string(n.Label),
		"Variant": string(n.Variant),
	}, nil)
}

var buttonMarker = []byte("[!button")

type buttonParser struct{}

// NewButtonParser returns the inline parser for button links.
func NewButtonParser() parser.InlineParser {
	return buttonParser{}
}

func (buttonParser) Trigger() []byte {
	return []byte{'['}
}

func (buttonParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	rest, ok := bytes.CutPrefix(line, buttonMarker)
	if !ok {
		return nil
	}

	var variant []byte
	if v, after, found := bytes.Cut(rest, []byte{'|'}); found {
		switch {
		case len(v) == 0:
		case v[0] == ':' && len(v) > 1:
			variant = v[1:]
		default:
			return nil
		}
		rest = after
	} else {
		return nil
	}

	label, after, found := bytes.Cut(rest, []byte("]("))
	if !found || len(label) == 0 {
		return nil
	}
	url, _, found := bytes.Cut(after, []byte{')'})
	if !found {
		return nil
	}

	consumed := len(line) - len(after) + len(url) + 1
	block.Advance(consumed)

	return &ButtonNode{URL: url, Label: label, Variant: variant}
}

type buttonRenderer struct {
	html.Config
}

// NewButtonRenderer returns the HTML renderer for ButtonNode.
func NewButtonRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &buttonRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

func (r *buttonRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindButton, r.render)
}

func (r *buttonRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ButtonNode)

	_, _ = w.WriteString(`<a href="`)
	if r.Unsafe || !html.IsDangerousURL(n.URL) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.URL, true)))
	}
	_, _ = w.WriteString(`" class="btn`)
	if len(n.Variant) > 0 {
		_, _ = w.WriteString(" btn-")
		_, _ = w.Write(util.EscapeHTML(n.Variant))
	}
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</a>`)

	return ast.WalkContinue, nil
}

type buttonExtension struct{}

// NewButtonExtension returns a goldmark extension for button links.
func NewButtonExtension() goldmark.Extender {
	return buttonExtension{}
}

func (buttonExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(NewButtonParser(), 50),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewButtonRenderer(), 50),
	))
}
