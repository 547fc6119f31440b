package dom

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Element wraps an element node of the parsed document. It is the
// opaque target handle carried by findings.
type Element struct {
	node *html.Node
}

func (e *Element) Tag() string {
	return e.node.Data
}

// Is reports whether both handles wrap the same underlying node.
func (e *Element) Is(other *Element) bool {
	return other != nil && e.node == other.node
}

func (e *Element) Attr(key string) string {
	for _, attr := range e.node.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func (e *Element) HasAttr(key string) bool {
	for _, attr := range e.node.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

func (e *Element) ID() string {
	return e.Attr("id")
}

// Text returns the concatenated descendant text with whitespace collapsed.
func (e *Element) Text() string {
	var sb strings.Builder
	collectText(e.node, &sb, 0)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(n *html.Node, sb *strings.Builder, depth int) {
	if depth > 100 {
		return
	}
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteString(" ")
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb, depth+1)
	}
}

// Path returns a CSS-like locator for the element, used to point a
// human at the offending node in reports.
func (e *Element) Path() string {
	if id := e.ID(); id != "" {
		return e.Tag() + "#" + id
	}

	var parts []string
	for n := e.node; n != nil && n.Type == html.ElementNode; n = n.Parent {
		parts = append([]string{segment(n)}, parts...)
	}
	return strings.Join(parts, " > ")
}

func segment(n *html.Node) string {
	pos := 1
	for sib := n.PrevSibling; sib != nil; sib = sib.PrevSibling {
		if sib.Type == html.ElementNode && sib.Data == n.Data {
			pos++
		}
	}
	if pos == 1 {
		return n.Data
	}
	return fmt.Sprintf("%s:nth-of-type(%d)", n.Data, pos)
}

// HeadingLevel returns 1-6 for h1..h6 elements and 0 otherwise.
func (e *Element) HeadingLevel() int {
	tag := e.Tag()
	if len(tag) != 2 || tag[0] != 'h' {
		return 0
	}
	level, err := strconv.Atoi(tag[1:])
	if err != nil || level < 1 || level > 6 {
		return 0
	}
	return level
}

// TabIndex parses the explicit tabindex attribute. ok is false when the
// attribute is absent or malformed.
func (e *Element) TabIndex() (int, bool) {
	raw := e.Attr("tabindex")
	if raw == "" {
		return 0, false
	}
	idx, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return idx, true
}
