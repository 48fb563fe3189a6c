package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/docpage/internal/doctree"
	"github.com/dgallion1/docpage/internal/markup"
	"github.com/dgallion1/docpage/internal/toc"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// HTMLParser handles HTML files, both full documents and fragments.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	meta, src, err := splitFrontMatter(bytes.TrimPrefix(src, utf8BOM))
	if err != nil {
		return nil, err
	}

	title := stem(filename)
	body, docTitle, err := parseHTMLBody(src)
	if err != nil {
		return nil, err
	}
	if docTitle != "" {
		title = docTitle
	}
	return newDocument(title, meta, body), nil
}

// parseHTMLBody returns the body nodes and the <title> text, if any.
func parseHTMLBody(src []byte) ([]*doctree.Node, string, error) {
	if !isFullDocument(src) {
		nodes, err := markup.ParseFragment(string(src))
		return nodes, "", err
	}

	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, "", fmt.Errorf("parse html: %w", err)
	}

	var title string
	if t := findElement(doc, "title"); t != nil {
		if n := markup.FromHTML(t); n != nil {
			title = toc.TextContent(n)
		}
	}

	var body []*doctree.Node
	if b := findElement(doc, "body"); b != nil {
		for c := b.FirstChild; c != nil; c = c.NextSibling {
			if n := markup.FromHTML(c); n != nil {
				body = append(body, n)
			}
		}
	}
	return body, title, nil
}

// isFullDocument reports whether src opens with a doctype, <html> or <head>
// once a byte order mark, whitespace, comments and an XML prolog are skipped.
func isFullDocument(src []byte) bool {
	rest := strings.ToLower(string(bytes.TrimPrefix(src, utf8BOM)))
	for {
		rest = strings.TrimSpace(rest)
		var end string
		switch {
		case strings.HasPrefix(rest, "<!--"):
			end = "-->"
		case strings.HasPrefix(rest, "<?"):
			end = ">"
		default:
			return strings.HasPrefix(rest, "<!doctype") ||
				strings.HasPrefix(rest, "<html") ||
				strings.HasPrefix(rest, "<head")
		}
		i := strings.Index(rest, end)
		if i < 0 {
			return false
		}
		rest = rest[i+len(end):]
	}
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
