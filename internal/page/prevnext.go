package page

import (
	"slices"

	"github.com/dgallion1/docpage/internal/doctree"
)

// PrevNext builds the navigation block linking the article's neighbours in
// reading order. It returns nil when the article is not in the navigation
// or has no neighbour that resolves to a known page.
func PrevNext(ctx Context) *doctree.Node {
	order := ctx.Navigation.Order()
	idx := slices.Index(order, ctx.ArticleID)
	if idx < 0 {
		return nil
	}

	var links []*doctree.Node
	if idx > 0 {
		if p, ok := ctx.Page(order[idx-1]); ok {
			links = append(links, neighbour(ctx, p, "prev"))
		}
	}
	if idx+1 < len(order) {
		if p, ok := ctx.Page(order[idx+1]); ok {
			links = append(links, neighbour(ctx, p, "next"))
		}
	}
	if len(links) == 0 {
		return nil
	}
	return doctree.Element("nav", doctree.Attrs("class", "prev-next"), links...)
}

func neighbour(ctx Context, p PageRef, rel string) *doctree.Node {
	link := InternalLink(ctx.Link(p.Slug), rel, doctree.Text(p.Title))
	link.Attrs = append(link.Attrs, doctree.Attr{Key: "rel", Val: rel})
	return link
}
