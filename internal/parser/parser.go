package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docpage/internal/doctree"
	"github.com/dgallion1/docpage/internal/toc"
)

// Parser converts raw content bytes into a Document.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Document, error)
}

// Options tunes parser behaviour.
type Options struct {
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// stem strips the directory and extension from a filename.
func stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// newDocument is the finishing step shared by all parsers: front matter
// overrides, heading ids, outline.
func newDocument(title string, meta map[string]any, body []*doctree.Node) *doctree.Document {
	if meta == nil {
		meta = map[string]any{}
	}
	doc := &doctree.Document{
		Title: title,
		Meta:  meta,
		Body:  body,
	}
	if v, ok := meta["title"].(string); ok && strings.TrimSpace(v) != "" {
		doc.Title = strings.TrimSpace(v)
	}
	if v := meta["id"]; v != nil {
		doc.ID = strings.TrimSpace(fmt.Sprint(v))
	}

	assignHeadingIDs(body)
	doc.Outline = toc.Outline(body)
	return doc
}

// assignHeadingIDs gives every heading without an id a unique anchor. The
// nodes are freshly built by the parser, so they are written in place.
func assignHeadingIDs(nodes []*doctree.Node) {
	var taken []string
	var collect func(*doctree.Node)
	collect = func(n *doctree.Node) {
		if id, ok := n.Attr("id"); ok && id != "" {
			taken = append(taken, id)
		}
		for _, c := range n.Children {
			collect(c)
		}
	}
	for _, n := range nodes {
		collect(n)
	}

	anchors := toc.NewAnchors(taken...)
	var assign func(*doctree.Node)
	assign = func(n *doctree.Node) {
		if n.Kind != doctree.ElementNode {
			return
		}
		if toc.HeadingLevel(n.Tag) > 0 {
			if id, ok := n.Attr("id"); !ok || id == "" {
				n.Attrs = append(withoutAttr(n.Attrs, "id"), doctree.Attr{Key: "id", Val: anchors.Next(toc.TextContent(n))})
			}
			return
		}
		for _, c := range n.Children {
			assign(c)
		}
	}
	for _, n := range nodes {
		assign(n)
	}
}

func withoutAttr(attrs []doctree.Attr, key string) []doctree.Attr {
	out := attrs[:0:0]
	for _, a := range attrs {
		if a.Key != key {
			out = append(out, a)
		}
	}
	return out
}

// paragraph builds a <p> holding text.
func paragraph(text string) *doctree.Node {
	return doctree.Element("p", nil, doctree.Text(text))
}
