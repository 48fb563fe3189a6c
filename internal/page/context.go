// Package page assembles full documentation pages: site rewrite rules,
// prev/next navigation, table of contents and the HTML shell.
package page

// Site is the site-wide metadata shown on every page.
type Site struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Lang        string `yaml:"lang" json:"lang"`
	IndexAlias  string `yaml:"indexAlias" json:"index_alias"`
	PathPrefix  string `yaml:"pathPrefix" json:"path_prefix"`
}

// NavSection groups page ids under a title. Reading order across the whole
// navigation drives prev/next links.
type NavSection struct {
	Title string   `yaml:"title" json:"title"`
	Pages []string `yaml:"pages" json:"pages"`
}

// Navigation is the ordered list of sections.
type Navigation []NavSection

// Order flattens the navigation into reading order.
func (n Navigation) Order() []string {
	var ids []string
	for _, s := range n {
		ids = append(ids, s.Pages...)
	}
	return ids
}

// PageRef is the minimal description of a page used for linking.
type PageRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Context is everything a rule set may consult. It is built once per
// invocation and never modified afterwards.
type Context struct {
	Site       Site
	BuildTime  string
	ArticleID  string
	Navigation Navigation
	Pages      []PageRef
}

// Page looks up a page by id.
func (c Context) Page(id string) (PageRef, bool) {
	for _, p := range c.Pages {
		if p.ID == id {
			return p, true
		}
	}
	return PageRef{}, false
}

// Link prefixes a site-absolute path with the configured path prefix.
func (c Context) Link(path string) string {
	return c.Site.PathPrefix + path
}

// BuildYear returns the first four characters of the build time, or the
// whole string when it is shorter.
func (c Context) BuildYear() string {
	r := []rune(c.BuildTime)
	if len(r) < 4 {
		return c.BuildTime
	}
	return string(r[:4])
}
