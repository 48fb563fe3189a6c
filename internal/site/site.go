// Package site loads a content directory into an immutable set of pages.
package site

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgallion1/docpage/internal/doctree"
	"github.com/dgallion1/docpage/internal/page"
)

// Site is a loaded content directory. It is read-only after Load returns
// and safe for concurrent use.
type Site struct {
	file      File
	buildTime string
	docs      []*doctree.Document
	bySlug    map[string]*doctree.Document
	byID      map[string]*doctree.Document
	refs      []page.PageRef
	chrome    page.Chrome
}

func newSite(file File, buildTime string, docs []*doctree.Document, chrome page.Chrome) (*Site, error) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].Slug < docs[j].Slug })

	s := &Site{
		file:      file,
		buildTime: buildTime,
		docs:      docs,
		bySlug:    make(map[string]*doctree.Document, len(docs)),
		byID:      make(map[string]*doctree.Document, len(docs)),
		chrome:    chrome,
	}
	for _, d := range docs {
		if prev, ok := s.byID[d.ID]; ok {
			return nil, fmt.Errorf("duplicate page id %q (%s, %s)", d.ID, prev.Slug, d.Slug)
		}
		if _, ok := s.bySlug[d.Slug]; ok {
			return nil, fmt.Errorf("duplicate page slug %q", d.Slug)
		}
		s.byID[d.ID] = d
		s.bySlug[d.Slug] = d
		s.refs = append(s.refs, page.PageRef{ID: d.ID, Title: d.Title, Slug: d.Slug})
	}
	if file.Index != "" {
		if _, ok := s.byID[file.Index]; !ok {
			return nil, fmt.Errorf("index page %q not found", file.Index)
		}
	}
	return s, nil
}

// Page returns the document served at a URL path. "/" resolves to the
// index page when one is configured.
func (s *Site) Page(urlPath string) (*doctree.Document, bool) {
	urlPath = path.Clean("/" + strings.TrimSuffix(urlPath, "/"))
	if urlPath == "/" && s.file.Index != "" {
		d, ok := s.byID[s.file.Index]
		return d, ok
	}
	d, ok := s.bySlug[urlPath]
	return d, ok
}

// ByID returns the document with the given id.
func (s *Site) ByID(id string) (*doctree.Document, bool) {
	d, ok := s.byID[id]
	return d, ok
}

// Pages returns page references sorted by slug.
func (s *Site) Pages() []page.PageRef {
	return append([]page.PageRef(nil), s.refs...)
}

// Metadata returns the site metadata.
func (s *Site) Metadata() page.Site {
	return s.file.Site
}

// Context builds the rule context for the article with the given id.
func (s *Site) Context(articleID string) page.Context {
	return page.Context{
		Site:       s.file.Site,
		BuildTime:  s.buildTime,
		ArticleID:  articleID,
		Navigation: s.file.Navigation,
		Pages:      s.refs,
	}
}

// Chrome returns the shared footer and logo snippets.
func (s *Site) Chrome() page.Chrome {
	return s.chrome
}

// slugFor maps a content path relative to the content root to its URL path.
// "guide/index.md" and "guide.md" both become "/guide"; "index.md" is "/".
func slugFor(rel string) string {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	if rel == "index" {
		return "/"
	}
	rel = strings.TrimSuffix(rel, "/index")
	return "/" + rel
}

// idFor derives a page id from the slug when front matter has none.
func idFor(slug string) string {
	if slug == "/" {
		return "index"
	}
	return strings.ReplaceAll(strings.TrimPrefix(slug, "/"), "/", "-")
}
