package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/dgallion1/docpage/internal/markup"
	"github.com/dgallion1/docpage/internal/page"
	"github.com/dgallion1/docpage/internal/transform"
)

// handleTransform rewrites a posted HTML fragment with the site rules. The
// optional article_id query parameter selects the prev/next context.
func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxTransformBytes+1))
	if err != nil {
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if int64(len(data)) > s.cfg.MaxTransformBytes {
		jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxTransformBytes), http.StatusRequestEntityTooLarge)
		return
	}

	nodes, err := markup.ParseFragment(string(data))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	articleID := r.URL.Query().Get("article_id")
	if articleID != "" {
		if _, ok := s.site.ByID(articleID); !ok {
			jsonError(w, "unknown article_id", http.StatusNotFound)
			return
		}
	}

	out, err := transform.Try(nodes, page.Rules(s.site.Context(articleID)))
	if err != nil {
		s.log.Error("transform failed", "article_id", articleID, "error", err)
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	html, err := markup.RenderString(out...)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.metrics.transforms.Inc()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, html)
}
