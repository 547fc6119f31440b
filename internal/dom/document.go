package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document is an immutable snapshot of a parsed HTML tree. Auditors
// scan it; nothing in this package mutates it after Parse.
type Document struct {
	root *html.Node
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Find walks the tree in document order and returns every element the
// predicate accepts. The root itself is excluded, matching
// querySelectorAll semantics for container-scoped scans.
func (d *Document) Find(pred func(*Element) bool) []*Element {
	var out []*Element
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(n *html.Node) {
			el := &Element{node: n}
			if pred(el) {
				out = append(out, el)
			}
		})
	}
	return out
}

func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func (d *Document) ByID(id string) *Element {
	if id == "" {
		return nil
	}
	matches := d.Find(func(e *Element) bool { return e.ID() == id })
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

func (d *Document) Headings() []*Element {
	return d.Find(func(e *Element) bool { return e.HeadingLevel() > 0 })
}

func (d *Document) Images() []*Element {
	return d.Find(func(e *Element) bool { return e.Tag() == "img" })
}

// FormControls returns labelable controls. Hidden inputs and
// button-like inputs carry their own text and are excluded.
func (d *Document) FormControls() []*Element {
	return d.Find(func(e *Element) bool {
		switch e.Tag() {
		case "select", "textarea":
			return true
		case "input":
			switch e.Attr("type") {
			case "hidden", "submit", "button", "reset", "image":
				return false
			}
			return true
		}
		return false
	})
}

// Focusable returns the interactive elements of the document in
// document order: links with an href, enabled buttons, enabled form
// fields, and anything with an explicit non-negative tabindex.
func (d *Document) Focusable() []*Element {
	return d.Find(isFocusable)
}

func isFocusable(e *Element) bool {
	switch e.Tag() {
	case "a":
		return e.HasAttr("href")
	case "button", "input", "select", "textarea":
		return !e.HasAttr("disabled")
	}
	if idx, ok := e.TabIndex(); ok && idx >= 0 {
		return true
	}
	return false
}

// Subtree returns a Document rooted at el, so a container can be
// scanned with the same query helpers as a whole document.
func (d *Document) Subtree(el *Element) *Document {
	if el == nil {
		return d
	}
	return &Document{root: el.node}
}
