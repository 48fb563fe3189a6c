package site

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dgallion1/docpage/internal/config"
	"github.com/dgallion1/docpage/internal/doctree"
	"github.com/dgallion1/docpage/internal/markup"
	"github.com/dgallion1/docpage/internal/page"
	"github.com/dgallion1/docpage/internal/parser"
)

// Load walks cfg.ContentDir and parses every supported file with at most
// cfg.LoadWorkers parsers running at once. Files and directories whose name
// starts with "_" or "." are skipped; they hold snippets and assets.
func Load(ctx context.Context, cfg config.Config, log *slog.Logger) (*Site, error) {
	sitePath := cfg.SiteFile
	if !filepath.IsAbs(sitePath) {
		sitePath = filepath.Join(cfg.ContentDir, sitePath)
	}
	file, err := ReadFile(sitePath)
	if err != nil {
		return nil, err
	}

	var paths []string
	err = filepath.WalkDir(cfg.ContentDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if p != cfg.ContentDir && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !parser.IsSupportedExtension(name) {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk content dir: %w", err)
	}

	opts := parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext}
	type result struct {
		doc  *doctree.Document
		err  error
		path string
	}
	results := make(chan result, len(paths))
	sem := make(chan struct{}, max(cfg.LoadWorkers, 1))
	var wg sync.WaitGroup

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		}
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			defer func() { <-sem }()
			doc, err := loadDocument(cfg.ContentDir, p, opts)
			results <- result{doc: doc, err: err, path: p}
		}(p)
	}
	wg.Wait()
	close(results)

	var docs []*doctree.Document
	var errs []string
	for r := range results {
		if r.err != nil {
			log.Error("parse failed", "path", r.path, "error", r.err)
			errs = append(errs, fmt.Sprintf("%s: %s", r.path, r.err))
			continue
		}
		docs = append(docs, r.doc)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("load content: %d file(s) failed: %s", len(errs), strings.Join(errs, "; "))
	}

	chrome, err := loadChrome(cfg.ContentDir, file)
	if err != nil {
		return nil, err
	}

	s, err := newSite(file, cfg.BuildTime, docs, chrome)
	if err != nil {
		return nil, err
	}
	nodes := 0
	for _, d := range docs {
		for _, n := range d.Body {
			nodes += doctree.CountNodes(n)
		}
	}
	log.Info("content loaded", "dir", cfg.ContentDir, "pages", len(docs), "nodes", nodes)
	return s, nil
}

func loadDocument(root, p string, opts parser.Options) (*doctree.Document, error) {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return nil, err
	}
	prs, err := parser.ForFile(p, opts)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := prs.Parse(f, filepath.Base(p))
	if err != nil {
		return nil, err
	}
	doc.Slug = slugFor(rel)
	if doc.ID == "" {
		doc.ID = idFor(doc.Slug)
	}
	return doc, nil
}

// loadChrome reads the footer and logo snippets named in the site file.
// Markdown snippets are converted; anything else is taken as HTML.
func loadChrome(root string, file File) (page.Chrome, error) {
	var chrome page.Chrome
	var err error
	if chrome.Footer, err = loadSnippet(root, file.Footer); err != nil {
		return chrome, fmt.Errorf("footer: %w", err)
	}
	if chrome.Logo, err = loadSnippet(root, file.Logo); err != nil {
		return chrome, fmt.Errorf("logo: %w", err)
	}
	return chrome, nil
}

func loadSnippet(root, name string) ([]*doctree.Node, error) {
	if name == "" {
		return nil, nil
	}
	p := name
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, name)
	}
	if ext := strings.ToLower(filepath.Ext(p)); ext == ".md" || ext == ".markdown" {
		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		doc, err := (&parser.MarkdownParser{}).Parse(f, filepath.Base(p))
		if err != nil {
			return nil, err
		}
		return doc.Body, nil
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}
	return markup.ParseFragment(string(data))
}
