package sanitizer

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// StrictPolicy strips ALL HTML and drops script/style contents.
		strictPolicy = bluemonday.StrictPolicy()
	})
}

// StripHTML removes every tag and returns the remaining text, still HTML-escaped.
func StripHTML(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// HTMLToText renders an HTML email body as a readable plain-text alternative.
// Block elements end lines, links keep their target as "label (url)", and
// entities are decoded.
func HTMLToText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return tidy(html.UnescapeString(StripHTML(s)))
	}

	var b strings.Builder
	writeText(&b, doc)
	return tidy(b.String())
}

// skipped elements contribute no text.
var skipped = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

// blocks start and end on their own line.
var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.Header: true, atom.Footer: true, atom.Blockquote: true, atom.Pre: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Table: true, atom.Tr: true, atom.Hr: true,
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch {
		case skipped[n.DataAtom]:
			return
		case n.DataAtom == atom.Br:
			b.WriteByte('\n')
			return
		case n.DataAtom == atom.A:
			b.WriteString(linkText(n))
			return
		case n.DataAtom == atom.Td || n.DataAtom == atom.Th:
			writeChildren(b, n)
			b.WriteByte(' ')
			return
		case blocks[n.DataAtom]:
			newline(b)
			writeChildren(b, n)
			newline(b)
			return
		}
	}
	writeChildren(b, n)
}

func writeChildren(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
}

// newline ends the current line unless it is already empty.
func newline(b *strings.Builder) {
	if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
		b.WriteByte('\n')
	}
}

// linkText formats an anchor as "label (href)", or just one of them when the
// other adds nothing. Script targets are dropped.
func linkText(n *html.Node) string {
	var lb strings.Builder
	writeChildren(&lb, n)
	label := strings.Join(strings.Fields(lb.String()), " ")

	var href string
	for _, attr := range n.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, "href") {
			href = strings.TrimSpace(attr.Val)
			break
		}
	}

	switch {
	case href == "" || strings.HasPrefix(strings.ToLower(href), "javascript:"):
		return label
	case label == "" || label == href:
		return href
	default:
		return label + " (" + href + ")"
	}
}

// tidy collapses whitespace within lines, keeps at most one blank line
// between paragraphs and trims the result.
func tidy(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
