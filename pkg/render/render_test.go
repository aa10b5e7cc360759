package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/polisai/commission-board/pkg/dom"
	"github.com/polisai/commission-board/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"pgregory.net/rapid"
)

type recordingNavigator struct {
	paths []string
}

func (r *recordingNavigator) Navigate(path string) {
	r.paths = append(r.paths, path)
}

func newBoard() (*dom.Container, *recordingNavigator, *Renderer) {
	nav := &recordingNavigator{}
	container := dom.NewContainer("commissions-container", nav)
	return container, nav, New(container, nav, nil)
}

func document(c *dom.Container) *goquery.Document {
	return goquery.NewDocumentFromNode(c.Root())
}

func sample() []domain.Commission {
	return []domain.Commission{
		{ID: "1", Title: "New Commission (Web Developer)", Category: "Web Developer", Description: "line1\nline2"},
		{ID: "2", Title: "Logo refresh", Category: "Design", Description: "Vector work only."},
		{ID: "3", Title: "Copy edit", Category: "Writing", Description: "Two pages."},
	}
}

func TestRenderEmpty(t *testing.T) {
	for name, input := range map[string][]domain.Commission{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			c, _, r := newBoard()
			state := r.Render(input)

			assert.Equal(t, domain.LoadEmpty, state)
			doc := document(c)
			assert.Zero(t, doc.Find("."+ClassCard).Length())
			assert.Equal(t, `<div class="loading-state">`+EmptyMessage+`</div>`, c.HTML())
		})
	}
}

func TestRenderError(t *testing.T) {
	c, _, r := newBoard()
	r.Render(sample())

	assert.Equal(t, domain.LoadFailed, r.RenderError())
	assert.Equal(t, `<div class="loading-state">`+FailureMessage+`</div>`, c.HTML())
	assert.Zero(t, document(c).Find("."+ClassCard).Length())
}

func TestRenderCards(t *testing.T) {
	c, _, r := newBoard()
	assert.Equal(t, domain.LoadPopulated, r.Render(sample()))

	cards := document(c).Find("." + ClassCard)
	require.Equal(t, 3, cards.Length())

	first := cards.First()
	assert.Equal(t, "Web Developer", first.Find("."+ClassCategoryTag).Text())
	assert.Equal(t, "New Commission (Web Developer)", first.Find("h2."+ClassTitle).Text())
	assert.Equal(t, "LS.", first.Find(".company-logo").Text())
	assert.Equal(t, "Posted Today", first.Find(".posted-date").Text())

	apply := first.Find("a." + ClassApply)
	assert.Equal(t, "Apply Now", apply.Text())
	href, ok := apply.Attr("href")
	require.True(t, ok)
	assert.Equal(t, "/commission/1", href)
}

func TestDescriptionLineBreaks(t *testing.T) {
	c, _, r := newBoard()
	r.Render([]domain.Commission{{ID: "9", Title: "t", Category: "c", Description: "line1\nline2"}})

	desc, err := document(c).Find("p." + ClassDescription).Html()
	require.NoError(t, err)
	assert.Equal(t, "line1<br/>line2", desc)
	assert.NotContains(t, c.HTML(), "\n")
}

func TestDescriptionNodes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "plain", want: "plain"},
		{in: "a\nb\nc", want: "a<br/>b<br/>c"},
		{in: "\n", want: "<br/>"},
		{in: "a\r\nb", want: "a<br/>b"},
		{in: "<b>bold</b>\n&", want: "&lt;b&gt;bold&lt;/b&gt;<br/>&amp;"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			out, err := dom.RenderHTML(Description(tt.in)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestMarkupIsEscaped(t *testing.T) {
	c, _, r := newBoard()
	r.Render([]domain.Commission{{
		ID:       `5"onclick="x`,
		Title:    "<script>alert(1)</script>",
		Category: "<i>tag</i>",
	}})

	doc := document(c)
	assert.Zero(t, doc.Find("script").Length())
	assert.Zero(t, doc.Find("i").Length())
	assert.Equal(t, "<script>alert(1)</script>", doc.Find("h2").Text())

	href, _ := doc.Find("a." + ClassApply).Attr("href")
	assert.Equal(t, domain.DetailPath(`5"onclick="x`), href)
}

func TestCardClickNavigatesOnce(t *testing.T) {
	c, nav, r := newBoard()
	r.Render(sample())

	cards := dom.FindAll(c.Root(), dom.ByClass(ClassCard))
	require.Len(t, cards, 3)

	title := dom.FindAll(cards[1], dom.ByClass(ClassTitle))[0]
	require.True(t, c.Click(title))
	assert.Equal(t, []string{"/commission/2"}, nav.paths)

	nav.paths = nil
	require.True(t, c.Click(cards[2]))
	assert.Equal(t, []string{"/commission/3"}, nav.paths)
}

func TestApplyClickNavigatesOnce(t *testing.T) {
	c, nav, r := newBoard()
	r.Render(sample())

	apply := dom.FindAll(c.Root(), dom.ByClass(ClassApply))
	require.Len(t, apply, 3)

	require.True(t, c.Click(apply[0]))
	assert.Equal(t, []string{"/commission/1"}, nav.paths)

	nav.paths = nil
	require.True(t, c.Click(apply[0].FirstChild))
	assert.Equal(t, []string{"/commission/1"}, nav.paths, "clicking the link label still navigates exactly once")
}

func TestRerenderReplacesCards(t *testing.T) {
	c, nav, r := newBoard()
	r.Render(sample())
	old := dom.FindAll(c.Root(), dom.ByClass(ClassCard))

	r.Render([]domain.Commission{{ID: "77", Title: "Only", Category: "Misc", Description: "x"}})

	cards := document(c).Find("." + ClassCard)
	require.Equal(t, 1, cards.Length())
	assert.Equal(t, "Only", cards.Find("h2").Text())

	assert.False(t, c.Click(old[0]), "stale card must be detached")
	assert.Empty(t, nav.paths)

	c.Click(dom.FindAll(c.Root(), dom.ByClass(ClassCard))[0])
	assert.Equal(t, []string{"/commission/77"}, nav.paths)
}

func TestRenderIsIdempotent(t *testing.T) {
	c, _, r := newBoard()
	r.Render(sample())
	first := c.HTML()
	r.Render(sample())
	assert.Equal(t, first, c.HTML())
}

func TestNilNavigator(t *testing.T) {
	c := dom.NewContainer("root", nil)
	r := New(c, nil, nil)
	r.Render(sample())
	assert.True(t, c.Click(dom.FindAll(c.Root(), dom.ByClass(ClassCard))[0]))
}

func commissionsGen() *rapid.Generator[[]domain.Commission] {
	text := rapid.StringOf(rapid.RuneFrom([]rune("ab <&\"\n\r")))
	return rapid.Custom(func(t *rapid.T) []domain.Commission {
		n := rapid.IntRange(0, 12).Draw(t, "n")
		out := make([]domain.Commission, n)
		for i := range out {
			out[i] = domain.Commission{
				ID:          domain.CommissionID(fmt.Sprintf("%d-%s", i, rapid.StringMatching(`[a-z0-9]{0,4}`).Draw(t, "id"))),
				Title:       domain.DisplayText(text.Draw(t, "title")),
				Category:    domain.DisplayText(text.Draw(t, "category")),
				Description: domain.DisplayText(text.Draw(t, "description")),
			}
		}
		return out
	})
}

// For any list, the board shows exactly one card per record in input order,
// each linking to its detail path, or the empty placeholder for no records.
func TestRenderCardsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := commissionsGen().Draw(t, "commissions")
		c, _, r := newBoard()
		r.Render(input)

		cards := document(c).Find("." + ClassCard)
		if len(input) == 0 {
			assert.Zero(t, cards.Length())
			assert.Equal(t, EmptyMessage, document(c).Find("."+ClassState).Text())
			return
		}

		require.Equal(t, len(input), cards.Length())
		cards.Each(func(i int, s *goquery.Selection) {
			href, _ := s.Find("a." + ClassApply).Attr("href")
			assert.Equal(t, input[i].DetailPath(), href)
			assert.Equal(t, input[i].Title.String(), s.Find("h2").Text())
		})
	})
}

// Descriptions never render a literal newline and keep every line's text.
func TestDescriptionProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringOf(rapid.RuneFrom([]rune("ab <&\n"))).Draw(t, "description")
		p := dom.El("p", dom.Children(Description(text)...))

		out, err := dom.RenderHTML(p)
		require.NoError(t, err)
		assert.NotContains(t, out, "\n")
		assert.Equal(t, strings.Count(text, "\n"), len(dom.FindAll(p, func(n *html.Node) bool { return dom.IsElement(n, "br") })))
		assert.Equal(t, strings.ReplaceAll(text, "\n", ""), dom.TextContent(p))
	})
}

// Rendering twice with any two lists leaves only the second list's cards.
func TestRerenderProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		first := commissionsGen().Draw(t, "first")
		second := commissionsGen().Draw(t, "second")

		c, _, r := newBoard()
		r.Render(first)
		r.Render(second)

		fresh, _, r2 := newBoard()
		r2.Render(second)
		assert.Equal(t, fresh.HTML(), c.HTML())
	})
}
