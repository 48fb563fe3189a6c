package toc

import (
	"strings"

	"github.com/dgallion1/docpage/internal/doctree"
)

// Outline collects h1-h6 elements that carry an id into a nested forest.
// A heading nests under the closest preceding heading of a lower level.
func Outline(nodes []*doctree.Node) []doctree.OutlineEntry {
	type stackEntry struct {
		entry *outlineNode
		level int
	}
	root := &outlineNode{}
	stack := []stackEntry{{entry: root, level: 0}}

	var walk func(*doctree.Node)
	walk = func(n *doctree.Node) {
		if n.Kind != doctree.ElementNode {
			return
		}
		if level := HeadingLevel(n.Tag); level > 0 {
			id, ok := n.Attr("id")
			if !ok || id == "" {
				return
			}
			node := &outlineNode{anchor: id, heading: TextContent(n)}
			for len(stack) > 1 && stack[len(stack)-1].level >= level {
				stack = stack[:len(stack)-1]
			}
			parent := stack[len(stack)-1].entry
			parent.children = append(parent.children, node)
			stack = append(stack, stackEntry{entry: node, level: level})
			return // Heading text already extracted.
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}

	return root.forest()
}

type outlineNode struct {
	anchor   string
	heading  string
	children []*outlineNode
}

func (o *outlineNode) forest() []doctree.OutlineEntry {
	if len(o.children) == 0 {
		return nil
	}
	out := make([]doctree.OutlineEntry, 0, len(o.children))
	for _, c := range o.children {
		out = append(out, doctree.OutlineEntry{
			Anchor:   c.anchor,
			Heading:  c.heading,
			Sections: c.forest(),
		})
	}
	return out
}

// HeadingLevel returns 1-6 for heading tags and 0 otherwise.
func HeadingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// TextContent concatenates the text beneath n, trimmed.
func TextContent(n *doctree.Node) string {
	var buf strings.Builder
	var extract func(*doctree.Node)
	extract = func(n *doctree.Node) {
		if n.Kind == doctree.TextNode {
			buf.WriteString(n.Text)
		}
		for _, c := range n.Children {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}
