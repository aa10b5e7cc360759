// Package render turns commission records into cards inside a dom.Display.
package render

import (
	"log/slog"
	"strings"

	"github.com/polisai/commission-board/pkg/dom"
	"github.com/polisai/commission-board/pkg/domain"
	"golang.org/x/net/html"
)

// Fixed texts shown in place of cards.
const (
	EmptyMessage   = "No commissions available at the moment."
	FailureMessage = "Failed to load commissions. Please try again later."
)

// Class names used by the card markup and the page stylesheet.
const (
	ClassCard        = "commission-card"
	ClassState       = "loading-state"
	ClassCategoryTag = "category-tag"
	ClassTitle       = "card-title"
	ClassDescription = "description"
	ClassApply       = "apply-btn"
)

const (
	logoText   = "LS."
	postedText = "Posted Today"
	applyText  = "Apply Now"
)

// Renderer draws commission lists into a display area.
type Renderer struct {
	display dom.Display
	nav     dom.Navigator
	logger  *slog.Logger
}

// New creates a Renderer. nav receives whole-card navigations.
func New(display dom.Display, nav dom.Navigator, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		display: display,
		nav:     nav,
		logger:  logger,
	}
}

// Render replaces the display content with one card per commission, in
// order. An empty or nil list shows the empty placeholder instead.
func (r *Renderer) Render(commissions []domain.Commission) domain.LoadState {
	if len(commissions) == 0 {
		r.display.Replace(stateNode(EmptyMessage))
		return domain.LoadEmpty
	}

	cards := make([]*html.Node, len(commissions))
	for i, c := range commissions {
		cards[i] = Card(c)
	}
	r.display.Replace(cards...)

	for i, c := range commissions {
		r.display.Listen(cards[i], r.cardClick(c.DetailPath()))
	}

	r.logger.Debug("Rendered commissions", "count", len(commissions))
	return domain.LoadPopulated
}

// RenderError replaces the display content with the failure message.
func (r *Renderer) RenderError() domain.LoadState {
	r.display.Replace(stateNode(FailureMessage))
	return domain.LoadFailed
}

// cardClick navigates to the detail path unless the click landed on the
// card's own link, which navigates by itself.
func (r *Renderer) cardClick(path string) dom.Handler {
	return func(ev *dom.Event) {
		if ev.WithinLink() || r.nav == nil {
			return
		}
		r.nav.Navigate(path)
	}
}

// Card builds the markup for a single commission.
func Card(c domain.Commission) *html.Node {
	detail := c.DetailPath()

	return dom.El("div", dom.Class(ClassCard), dom.Attr("style", "cursor: pointer"), dom.Children(
		dom.El("div", dom.Class("card-header"), dom.Children(
			dom.El("div", dom.Class("title-section"), dom.Children(
				dom.El("span", dom.Class(ClassCategoryTag), dom.Children(dom.Text(c.Category.String()))),
				dom.El("h2", dom.Class(ClassTitle), dom.Children(dom.Text(c.Title.String()))),
			)),
			dom.El("div", dom.Class("company-logo"), dom.Children(dom.Text(logoText))),
		)),
		dom.El("div", dom.Class("card-body"), dom.Children(
			dom.El("p", dom.Class(ClassDescription), dom.Children(Description(c.Description.String())...)),
		)),
		dom.El("div", dom.Class("card-footer"), dom.Children(
			dom.El("span", dom.Class("posted-date"), dom.Children(dom.Text(postedText))),
			dom.El("a", dom.Attr("href", detail), dom.Class(ClassApply), dom.Children(dom.Text(applyText))),
		)),
	))
}

// Description splits text on newlines and joins the pieces with <br/>
// elements. Carriage returns preceding a newline are dropped.
func Description(text string) []*html.Node {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	nodes := make([]*html.Node, 0, 2*len(lines)-1)
	for i, line := range lines {
		if i > 0 {
			nodes = append(nodes, dom.El("br"))
		}
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			nodes = append(nodes, dom.Text(line))
		}
	}
	return nodes
}

func stateNode(message string) *html.Node {
	return dom.El("div", dom.Class(ClassState), dom.Children(dom.Text(message)))
}
