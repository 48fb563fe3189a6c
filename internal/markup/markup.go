// Package markup converts between HTML text and doctree nodes.
package markup

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/docpage/internal/doctree"
)

// ParseFragment parses an HTML snippet as the content of a <body>.
// Comments and doctypes are dropped.
func ParseFragment(content string) ([]*doctree.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, fmt.Errorf("parse html fragment: %w", err)
	}
	out := make([]*doctree.Node, 0, len(nodes))
	for _, n := range nodes {
		if c := FromHTML(n); c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

// FromHTML converts an x/net/html node. Comment, doctype and document nodes
// yield nil.
func FromHTML(n *html.Node) *doctree.Node {
	switch n.Type {
	case html.TextNode:
		return doctree.Text(n.Data)
	case html.ElementNode:
		var attrs []doctree.Attr
		if len(n.Attr) > 0 {
			attrs = make([]doctree.Attr, 0, len(n.Attr))
			for _, a := range n.Attr {
				key := a.Key
				if a.Namespace != "" {
					key = a.Namespace + ":" + a.Key
				}
				attrs = append(attrs, doctree.Attr{Key: key, Val: a.Val})
			}
		}
		var children []*doctree.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if cc := FromHTML(c); cc != nil {
				children = append(children, cc)
			}
		}
		return doctree.Element(n.Data, attrs, children...)
	}
	return nil
}

// ToHTML converts a doctree node into a detached x/net/html tree.
func ToHTML(n *doctree.Node) *html.Node {
	if n.Kind == doctree.TextNode {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	out := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	if len(n.Attrs) > 0 {
		out.Attr = make([]html.Attribute, 0, len(n.Attrs))
		for _, a := range n.Attrs {
			out.Attr = append(out.Attr, html.Attribute{Key: a.Key, Val: a.Val})
		}
	}
	for _, c := range n.Children {
		out.AppendChild(ToHTML(c))
	}
	return out
}

// Render writes the nodes as HTML.
func Render(w io.Writer, nodes ...*doctree.Node) error {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if err := html.Render(w, ToHTML(n)); err != nil {
			return fmt.Errorf("render <%s>: %w", n.Tag, err)
		}
	}
	return nil
}

// RenderString renders the nodes to a string.
func RenderString(nodes ...*doctree.Node) (string, error) {
	var buf strings.Builder
	if err := Render(&buf, nodes...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderDocument writes a full page, doctype first.
func RenderDocument(w io.Writer, root *doctree.Node) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	return Render(w, root)
}
