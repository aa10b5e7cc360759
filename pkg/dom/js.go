//go:build js && wasm

package dom

import (
	"syscall/js"

	"golang.org/x/net/html"
)

// JSDisplay mirrors node trees into a browser DOM element. A single delegated
// click listener on the element maps DOM targets back to their nodes and
// dispatches registered handlers; link navigation is left to the browser.
type JSDisplay struct {
	doc       js.Value
	container js.Value
	root      *html.Node
	nodes     []*html.Node
	elems     []js.Value
	handlers  map[*html.Node][]Handler
	onClick   js.Func
}

var _ Display = (*JSDisplay)(nil)

// NewJSDisplay binds the display to the DOM element with the given id.
// It returns false when no such element exists.
func NewJSDisplay(id string) (*JSDisplay, bool) {
	doc := js.Global().Get("document")
	el := doc.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil, false
	}

	d := &JSDisplay{
		doc:       doc,
		container: el,
		root:      El("div", Attr("id", id)),
		handlers:  make(map[*html.Node][]Handler),
	}
	d.onClick = js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			d.dispatch(args[0].Get("target"))
		}
		return nil
	})
	el.Call("addEventListener", "click", d.onClick)
	return d, true
}

// Replace implements Display.
func (d *JSDisplay) Replace(nodes ...*html.Node) {
	d.container.Set("innerHTML", "")
	for child := d.root.FirstChild; child != nil; child = d.root.FirstChild {
		d.root.RemoveChild(child)
	}
	d.nodes = d.nodes[:0]
	d.elems = d.elems[:0]
	d.handlers = make(map[*html.Node][]Handler)

	Children(nodes...)(d.root)
	for _, n := range nodes {
		if n == nil {
			continue
		}
		d.container.Call("appendChild", d.build(n))
	}
}

// Listen implements Display. Handlers on nodes outside the display are ignored.
func (d *JSDisplay) Listen(n *html.Node, h Handler) {
	if n == nil || h == nil || !d.contains(n) {
		return
	}
	d.handlers[n] = append(d.handlers[n], h)
	if n.Type == html.ElementNode {
		if el, ok := d.elementFor(n); ok {
			el.Get("style").Set("cursor", "pointer")
		}
	}
}

// Release detaches the click listener.
func (d *JSDisplay) Release() {
	d.container.Call("removeEventListener", "click", d.onClick)
	d.onClick.Release()
}

func (d *JSDisplay) contains(n *html.Node) bool {
	return Closest(n, nil, func(cur *html.Node) bool { return cur == d.root }) != nil
}

func (d *JSDisplay) build(n *html.Node) js.Value {
	if n.Type == html.TextNode {
		return d.doc.Call("createTextNode", n.Data)
	}
	el := d.doc.Call("createElement", n.Data)
	for _, a := range n.Attr {
		el.Call("setAttribute", a.Key, a.Val)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode && c.Type != html.TextNode {
			continue
		}
		el.Call("appendChild", d.build(c))
	}
	d.nodes = append(d.nodes, n)
	d.elems = append(d.elems, el)
	return el
}

func (d *JSDisplay) elementFor(n *html.Node) (js.Value, bool) {
	for i, cand := range d.nodes {
		if cand == n {
			return d.elems[i], true
		}
	}
	return js.Value{}, false
}

func (d *JSDisplay) nodeFor(el js.Value) *html.Node {
	for cur := el; cur.Truthy() && !cur.Equal(d.container); cur = cur.Get("parentNode") {
		for i, cand := range d.elems {
			if cand.Equal(cur) {
				return d.nodes[i]
			}
		}
	}
	return nil
}

func (d *JSDisplay) dispatch(target js.Value) {
	n := d.nodeFor(target)
	if n == nil {
		return
	}
	for _, call := range bubble(n, d.root, d.handlers) {
		call()
	}
}

// Location navigates by assigning window.location.href.
type Location struct{}

// Navigate implements Navigator.
func (Location) Navigate(path string) {
	js.Global().Get("window").Get("location").Set("href", path)
}

// Origin returns window.location.origin.
func Origin() string {
	return js.Global().Get("location").Get("origin").String()
}
