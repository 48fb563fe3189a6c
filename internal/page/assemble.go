package page

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgallion1/docpage/internal/doctree"
	"github.com/dgallion1/docpage/internal/toc"
	"github.com/dgallion1/docpage/internal/transform"
)

// ThemeColor is the value of the theme-color meta tag.
const ThemeColor = "#fff"

// Chrome holds the snippets shared by every page.
type Chrome struct {
	Footer []*doctree.Node
	Logo   []*doctree.Node
}

// Assembler builds full pages.
type Assembler struct {
	log   *slog.Logger
	rules func(Context) transform.RuleSet
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithRules replaces the site rule set used for every page.
func WithRules(rules func(Context) transform.RuleSet) AssemblerOption {
	return func(a *Assembler) { a.rules = rules }
}

func NewAssembler(log *slog.Logger, opts ...AssemblerOption) *Assembler {
	a := &Assembler{log: log, rules: Rules}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble rewrites the document body, footer and logo with the site rules
// of ctx and wraps them in the page shell. path is the request path; "/"
// adds the canonical link to the index alias.
//
// The three rewrites run concurrently. A failing rule on the footer or logo
// drops that snippet; a failing rule on the body fails the page.
func (a *Assembler) Assemble(ctx Context, doc *doctree.Document, chrome Chrome, path string) (*doctree.Node, error) {
	rules := a.rules(ctx)

	parts := []struct {
		name  string
		nodes []*doctree.Node
		out   []*doctree.Node
		err   error
	}{
		{name: "body", nodes: doc.Body},
		{name: "footer", nodes: chrome.Footer},
		{name: "logo", nodes: chrome.Logo},
	}

	var wg sync.WaitGroup
	for i := range parts {
		if len(parts[i].nodes) == 0 {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			parts[i].out, parts[i].err = transform.Try(parts[i].nodes, rules)
		}()
	}
	wg.Wait()

	body := parts[0]
	if body.err != nil {
		return nil, fmt.Errorf("rewrite %s of %s: %w", body.name, doc.Slug, body.err)
	}
	for _, p := range parts[1:] {
		if p.err != nil {
			a.log.Warn("dropping page snippet", "snippet", p.name, "slug", doc.Slug, "rule", failedRule(p.err), "error", p.err)
		}
	}

	return Shell(ctx, doc, body.out, parts[1].out, parts[2].out, path), nil
}

func failedRule(err error) string {
	var re *transform.RuleError
	if errors.As(err, &re) {
		return re.Rule
	}
	return ""
}

// Shell lays out an already rewritten page.
func Shell(ctx Context, doc *doctree.Document, body, footer, logo []*doctree.Node, path string) *doctree.Node {
	head := []*doctree.Node{
		doctree.Element("meta", doctree.Attrs("charset", "utf-8")),
		doctree.Element("title", nil, doctree.Text(Title(ctx.Site, doc))),
		doctree.Element("meta", doctree.Attrs("name", "description", "content", ctx.Site.Description)),
		doctree.Element("meta", doctree.Attrs("name", "theme-color", "content", ThemeColor)),
	}
	if path == "/" && ctx.Site.IndexAlias != "" {
		head = append(head, doctree.Element("link", doctree.Attrs("rel", "canonical", "href", ctx.Site.IndexAlias)))
	}

	var main []*doctree.Node
	if len(logo) > 0 {
		main = append(main, doctree.Element("header", doctree.Attrs("class", "logo"), logo...))
	}
	tocNav := doctree.Element("nav", doctree.Attrs("class", "toc"))
	if list := toc.Render(doc.Outline); list != nil {
		tocNav.Children = []*doctree.Node{list}
	}
	main = append(main, tocNav)
	main = append(main, body...)
	if len(footer) > 0 {
		main = append(main, doctree.Element("footer", nil, footer...))
	}

	var htmlAttrs []doctree.Attr
	if ctx.Site.Lang != "" {
		htmlAttrs = doctree.Attrs("lang", ctx.Site.Lang)
	}
	return doctree.Element("html", htmlAttrs,
		doctree.Element("head", nil, head...),
		doctree.Element("body", nil, main...),
	)
}

// Title formats the page title as "{document} - {site}".
func Title(site Site, doc *doctree.Document) string {
	if site.Title == "" {
		return doc.Title
	}
	return doc.Title + " - " + site.Title
}
