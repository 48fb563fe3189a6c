package page

import (
	"github.com/dgallion1/docpage/internal/doctree"
	"github.com/dgallion1/docpage/internal/transform"
)

// Marker attribute set on links produced by InternalLink.
const (
	LinkAttr     = "data-link"
	LinkInternal = "internal"
)

// Rule names, in evaluation order.
const (
	RuleInternalLink      = "internal-link"
	RuleCurrentYear       = "current-year"
	RuleArticleNavigation = "article-navigation"
)

// Rules returns the site rule set bound to ctx. Each rule targets a
// different tag, so the declared order only matters for readability:
//
//  1. a[href^="/"] (not protocol-relative, not already internal) becomes an
//     internal link with its children rewritten.
//  2. span[class*="current-year"] becomes <span>{build year}</span>.
//  3. article gets its children rewritten and the prev/next block appended.
func Rules(ctx Context) transform.RuleSet {
	return transform.RuleSet{
		{
			// Links already marked internal are left alone, prefix included, so
			// that running the rules over their own output changes nothing. An
			// authored data-link="internal" therefore opts out of PathPrefix.
			Name: RuleInternalLink,
			Match: transform.All(
				transform.Tag("a"),
				transform.AttrHasPrefix("href", "/"),
				transform.Not(transform.AttrHasPrefix("href", "//")),
				transform.Not(transform.AttrEquals(LinkAttr, LinkInternal)),
			),
			Build: func(el *doctree.Node, children transform.ChildrenFunc) *doctree.Node {
				href, _ := el.Attr("href")
				class, _ := el.Attr("class")
				return InternalLink(ctx.Link(href), class, children(el.Children)...)
			},
		},
		{
			Name:  RuleCurrentYear,
			Match: transform.All(transform.Tag("span"), transform.AttrContains("class", "current-year")),
			Build: func(*doctree.Node, transform.ChildrenFunc) *doctree.Node {
				return doctree.Element("span", nil, doctree.Text(ctx.BuildYear()))
			},
		},
		{
			Name:  RuleArticleNavigation,
			Match: transform.Tag("article"),
			Build: func(el *doctree.Node, children transform.ChildrenFunc) *doctree.Node {
				body := children(el.Children)
				if nav := PrevNext(ctx); nav != nil {
					body = append(body, nav)
				}
				return doctree.Element("article", nil, body...)
			},
		},
	}
}

// InternalLink builds the client-routed link construct. href must already
// carry the path prefix.
func InternalLink(href, class string, children ...*doctree.Node) *doctree.Node {
	attrs := []doctree.Attr{{Key: "href", Val: href}}
	if class != "" {
		attrs = append(attrs, doctree.Attr{Key: "class", Val: class})
	}
	attrs = append(attrs, doctree.Attr{Key: LinkAttr, Val: LinkInternal})
	return doctree.Element("a", attrs, children...)
}
