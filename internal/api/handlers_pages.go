package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/docpage/internal/doctree"
	"github.com/dgallion1/docpage/internal/markup"
	"github.com/dgallion1/docpage/internal/toc"
)

// handlePage serves the assembled HTML page for the request path.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.site.Page(r.URL.Path)
	if !ok {
		s.metrics.pagesRendered.WithLabelValues("not_found").Inc()
		http.NotFound(w, r)
		return
	}

	start := time.Now()
	root, err := s.assembler.Assemble(s.site.Context(doc.ID), doc, s.site.Chrome(), r.URL.Path)
	if err != nil {
		s.renderFailed(w, r, doc, err)
		return
	}
	var buf bytes.Buffer
	if err := markup.RenderDocument(&buf, root); err != nil {
		s.renderFailed(w, r, doc, err)
		return
	}
	s.metrics.renderSeconds.Observe(time.Since(start).Seconds())
	s.metrics.pagesRendered.WithLabelValues("ok").Inc()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (s *Server) renderFailed(w http.ResponseWriter, r *http.Request, doc *doctree.Document, err error) {
	s.log.Error("render failed", "slug", doc.Slug, "path", r.URL.Path, "error", err)
	s.metrics.renderErrors.Inc()
	s.metrics.pagesRendered.WithLabelValues("error").Inc()
	http.Error(w, "failed to render page", http.StatusInternalServerError)
}

// handleListPages lists every loaded page.
func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"site":  s.site.Metadata(),
		"pages": s.site.Pages(),
	})
}

// outlineJSON mirrors doctree.OutlineEntry. Sections is null when absent
// and [] when present but empty, the distinction toc.Render marks.
type outlineJSON struct {
	Anchor   string        `json:"anchor"`
	Heading  string        `json:"heading"`
	Sections []outlineJSON `json:"sections"`
}

func toOutlineJSON(forest []doctree.OutlineEntry) []outlineJSON {
	if forest == nil {
		return nil
	}
	out := make([]outlineJSON, 0, len(forest))
	for _, e := range forest {
		out = append(out, outlineJSON{Anchor: e.Anchor, Heading: e.Heading, Sections: toOutlineJSON(e.Sections)})
	}
	return out
}

// handlePageTOC returns a page's outline and its rendered link list.
func (s *Server) handlePageTOC(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, ok := s.site.ByID(id)
	if !ok {
		jsonError(w, "page not found", http.StatusNotFound)
		return
	}

	var rendered string
	if list := toc.Render(doc.Outline); list != nil {
		var err error
		if rendered, err = markup.RenderString(list); err != nil {
			jsonError(w, "failed to render toc: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	outline := toOutlineJSON(doc.Outline)
	if outline == nil {
		outline = []outlineJSON{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":      doc.ID,
		"entries": toc.Count(doc.Outline),
		"depth":   toc.Depth(doc.Outline),
		"outline": outline,
		"html":    rendered,
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
