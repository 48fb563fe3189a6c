package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docpage/internal/config"
	"github.com/dgallion1/docpage/internal/doctree"
	"github.com/dgallion1/docpage/internal/site"
)

const testKey = "secret"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"site.yaml": `title: Docs
description: Product documentation
lang: en
indexAlias: https://docs.example.com/
index: intro
footer: _footer.html
navigation:
  - title: Start
    pages: [intro, install]
`,
		"intro.md":         "---\nid: intro\ntitle: Introduction\n---\n<article>\n\n# Welcome\n\nSee [install](/guide/install).\n\n</article>\n",
		"guide/install.md": "---\nid: install\ntitle: Installation\n---\n<article>\n\n# Install\n\n## Requirements\n\n</article>\n",
		"_footer.html":     `<p>&copy; <span class="current-year">YEAR</span></p>`,
	}
	for name, body := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{
		ContentDir:        dir,
		SiteFile:          "site.yaml",
		BuildTime:         "2025-03-04T00:00:00Z",
		APIKey:            testKey,
		LoadWorkers:       2,
		MaxTransformBytes: 1024,
	}
	s, err := site.Load(context.Background(), cfg, log)
	require.NoError(t, err)
	return NewServer(s, NewMetrics(), log, cfg)
}

func do(t *testing.T, srv http.Handler, method, target, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if authed {
		req.Header.Set("Authorization", "Bearer "+testKey)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/health", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPage_Index(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	require.True(t, strings.HasPrefix(body, "<!DOCTYPE html>\n<html lang=\"en\">"))
	require.Contains(t, body, `<title>Introduction - Docs</title>`)
	require.Contains(t, body, `<link rel="canonical" href="https://docs.example.com/"/>`)
	require.Contains(t, body, `<nav class="toc"><ul><li><a href="#welcome">Welcome</a></li></ul></nav>`)
	require.Contains(t, body, `<a href="/guide/install" data-link="internal">install</a>`)
	require.Contains(t, body, `<a href="/guide/install" class="next" data-link="internal" rel="next">Installation</a>`)
	require.Contains(t, body, `<footer><p>© <span>2025</span></p></footer>`)
}

func TestPage_Nested(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/guide/install", "", false)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.NotContains(t, body, `rel="canonical"`)
	require.Contains(t, body, `<li class="children"><a href="#install">Install</a><ul><li><a href="#requirements">Requirements</a></li></ul></li>`)
	require.Contains(t, body, `class="prev"`)
	require.NotContains(t, body, `class="next"`)
}

func TestPage_NotFound(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/nope", "", false)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_RequiresKey(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/pages", "", false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/pages", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_ListPages(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/pages", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Site struct {
			Title string `json:"title"`
		} `json:"site"`
		Pages []struct {
			ID   string `json:"id"`
			Slug string `json:"slug"`
		} `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Docs", resp.Site.Title)
	require.Len(t, resp.Pages, 2)
	require.Equal(t, "install", resp.Pages[0].ID)
	require.Equal(t, "/intro", resp.Pages[1].Slug)
}

func TestAPI_PageTOC(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/pages/install/toc", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{
		"id": "install",
		"entries": 2,
		"depth": 2,
		"outline": [{"anchor": "install", "heading": "Install", "sections": [{"anchor": "requirements", "heading": "Requirements", "sections": null}]}],
		"html": "<ul><li class=\"children\"><a href=\"#install\">Install</a><ul><li><a href=\"#requirements\">Requirements</a></li></ul></li></ul>"
	}`, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/api/pages/missing/toc", "", true)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_Transform(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/transform?article_id=intro",
		`<article><a href="/x">x</a><span class="current-year">Y</span></article>`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t,
		`<article><a href="/x" data-link="internal">x</a><span>2025</span>`+
			`<nav class="prev-next"><a href="/guide/install" class="next" data-link="internal" rel="next">Installation</a></nav></article>`,
		rec.Body.String())

	rec = do(t, srv, http.MethodPost, "/api/transform", `<p>plain</p>`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `<p>plain</p>`, rec.Body.String())

	rec = do(t, srv, http.MethodPost, "/api/transform?article_id=ghost", `<p/>`, true)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/transform", strings.Repeat("x", 2048), true)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodGet, "/", "", false)
	do(t, srv, http.MethodGet, "/nope", "", false)

	rec := do(t, srv, http.MethodGet, "/metrics", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `docpage_pages_rendered_total{status="ok"} 1`)
	require.Contains(t, body, `docpage_pages_rendered_total{status="not_found"} 1`)
	require.Contains(t, body, "docpage_render_duration_seconds_count 1")
}

func TestOutlineJSON_KeepsEmptySections(t *testing.T) {
	forest := []doctree.OutlineEntry{
		{Anchor: "a", Heading: "A", Sections: []doctree.OutlineEntry{}},
		{Anchor: "b", Heading: "B"},
	}
	data, err := json.Marshal(toOutlineJSON(forest))
	require.NoError(t, err)
	require.JSONEq(t, `[
		{"anchor": "a", "heading": "A", "sections": []},
		{"anchor": "b", "heading": "B", "sections": null}
	]`, string(data))
}
