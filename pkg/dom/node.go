package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Option configures an element created by El.
type Option func(n *html.Node)

// El creates a detached element node.
func El(tag string, opts ...Option) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Text creates a detached text node. Its content is escaped on render.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Attr sets an attribute, replacing any previous value.
func Attr(key, val string) Option {
	return func(n *html.Node) {
		for i := range n.Attr {
			if n.Attr[i].Key == key {
				n.Attr[i].Val = val
				return
			}
		}
		n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	}
}

// Class appends class names to the element's class attribute.
func Class(names ...string) Option {
	return func(n *html.Node) {
		existing, _ := AttrValue(n, "class")
		all := strings.Fields(existing)
		all = append(all, names...)
		Attr("class", strings.Join(all, " "))(n)
	}
}

// Children appends child nodes in order.
func Children(children ...*html.Node) Option {
	return func(n *html.Node) {
		for _, c := range children {
			if c == nil {
				continue
			}
			detach(c)
			n.AppendChild(c)
		}
	}
}

// AttrValue returns the value of the attribute key on n.
func AttrValue(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasClass reports whether n carries the given class name.
func HasClass(n *html.Node, name string) bool {
	v, ok := AttrValue(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == name {
			return true
		}
	}
	return false
}

// IsElement reports whether n is an element with the given tag.
func IsElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && strings.EqualFold(n.Data, tag)
}

// Closest walks from n towards the root and returns the first node matching
// fn. The walk stops after visiting stop; a nil stop walks to the top.
func Closest(n, stop *html.Node, fn func(*html.Node) bool) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if fn(cur) {
			return cur
		}
		if cur == stop {
			break
		}
	}
	return nil
}

// FindAll returns every descendant of root matching fn, in document order.
func FindAll(root *html.Node, fn func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if fn(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// ByClass matches elements carrying a class name.
func ByClass(name string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && HasClass(n, name)
	}
}

// TextContent concatenates the text of n and its descendants.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(TextContent(c))
	}
	return b.String()
}

// RenderHTML serialises nodes in order.
func RenderHTML(nodes ...*html.Node) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		if err := html.Render(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
