package dom

import (
	"sync"

	"golang.org/x/net/html"
)

// Event is delivered to click handlers.
type Event struct {
	// Target is the node that was clicked.
	Target *html.Node
	// CurrentTarget is the node the handler was registered on.
	CurrentTarget *html.Node
}

// Handler reacts to a click.
type Handler func(ev *Event)

// Display is the region the board draws into.
type Display interface {
	// Replace removes all current content and handlers, then appends nodes.
	Replace(nodes ...*html.Node)
	// Listen registers a click handler on n, which must be attached.
	Listen(n *html.Node, h Handler)
}

// Navigator moves the page to another path.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) { f(path) }

// Container is an in-memory Display. Clicking an element inside a link
// performs the link's navigation after handlers have run, mirroring a
// browser's default action.
type Container struct {
	mu       sync.Mutex
	root     *html.Node
	nav      Navigator
	handlers map[*html.Node][]Handler
}

var _ Display = (*Container)(nil)

// NewContainer creates an empty display area rooted at <div id="id">.
// nav may be nil, in which case link default actions are dropped.
func NewContainer(id string, nav Navigator) *Container {
	var opts []Option
	if id != "" {
		opts = append(opts, Attr("id", id))
	}
	return &Container{
		root:     El("div", opts...),
		nav:      nav,
		handlers: make(map[*html.Node][]Handler),
	}
}

// Replace implements Display.
func (c *Container) Replace(nodes ...*html.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for child := c.root.FirstChild; child != nil; child = c.root.FirstChild {
		c.root.RemoveChild(child)
	}
	c.handlers = make(map[*html.Node][]Handler)
	Children(nodes...)(c.root)
}

// Listen implements Display. Handlers on nodes outside the container are ignored.
func (c *Container) Listen(n *html.Node, h Handler) {
	if n == nil || h == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.contains(n) {
		return
	}
	c.handlers[n] = append(c.handlers[n], h)
}

// Root returns the container element. Callers must not mutate it.
func (c *Container) Root() *html.Node {
	return c.root
}

// HTML returns the inner markup of the container.
func (c *Container) HTML() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var nodes []*html.Node
	for child := c.root.FirstChild; child != nil; child = child.NextSibling {
		nodes = append(nodes, child)
	}
	out, err := RenderHTML(nodes...)
	if err != nil {
		return ""
	}
	return out
}

// Click dispatches a click on target. It returns false when target is not
// inside the container.
func (c *Container) Click(target *html.Node) bool {
	c.mu.Lock()
	if target == nil || !c.contains(target) {
		c.mu.Unlock()
		return false
	}
	calls := bubble(target, c.root, c.handlers)
	link := Closest(target, c.root, isLink)
	nav := c.nav
	c.mu.Unlock()

	for _, call := range calls {
		call()
	}
	if link != nil && nav != nil {
		href, _ := AttrValue(link, "href")
		nav.Navigate(href)
	}
	return true
}

func (c *Container) contains(n *html.Node) bool {
	return Closest(n, nil, func(cur *html.Node) bool { return cur == c.root }) != nil
}

// bubble collects handler invocations from target up to and including root.
func bubble(target, root *html.Node, handlers map[*html.Node][]Handler) []func() {
	var calls []func()
	for cur := target; cur != nil; cur = cur.Parent {
		for _, h := range handlers[cur] {
			ev := &Event{Target: target, CurrentTarget: cur}
			calls = append(calls, func() { h(ev) })
		}
		if cur == root {
			break
		}
	}
	return calls
}

func isLink(n *html.Node) bool {
	if !IsElement(n, "a") {
		return false
	}
	_, ok := AttrValue(n, "href")
	return ok
}

// WithinLink reports whether the event target sits inside a link below the
// handler's node. Handlers use it to leave link clicks to the link itself.
func (ev *Event) WithinLink() bool {
	return Closest(ev.Target, ev.CurrentTarget, func(n *html.Node) bool {
		return n != ev.CurrentTarget && isLink(n)
	}) != nil
}
