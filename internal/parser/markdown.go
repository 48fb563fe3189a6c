package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/dgallion1/docpage/internal/doctree"
	"github.com/dgallion1/docpage/internal/markup"
)

// MarkdownParser handles Markdown files using goldmark. Raw HTML in the
// source is kept so markers like <span class="current-year"> survive.
type MarkdownParser struct{}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(gmparser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	meta, src, err := splitFrontMatter(src)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	body, err := markup.ParseFragment(buf.String())
	if err != nil {
		return nil, err
	}
	return newDocument(stem(filename), meta, dropBlankText(body)), nil
}

// dropBlankText removes whitespace-only top-level text nodes left between
// rendered blocks.
func dropBlankText(nodes []*doctree.Node) []*doctree.Node {
	out := nodes[:0:0]
	for _, n := range nodes {
		if n.Kind == doctree.TextNode && strings.TrimSpace(n.Text) == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}
