// Package toc renders heading outlines as nested link lists and builds
// outlines from document trees.
package toc

import (
	"github.com/dgallion1/docpage/internal/doctree"
)

// ChildrenClass marks list items that carry nested sections.
const ChildrenClass = "children"

// Render converts an outline forest into a <ul> of fragment links.
// It returns nil for an empty forest: no list at all, not an empty one.
func Render(forest []doctree.OutlineEntry) *doctree.Node {
	if len(forest) == 0 {
		return nil
	}

	items := make([]*doctree.Node, 0, len(forest))
	for _, e := range forest {
		link := doctree.Element("a", doctree.Attrs("href", "#"+e.Anchor), doctree.Text(e.Heading))
		li := doctree.Element("li", nil, link)
		if e.Sections != nil {
			li.Attrs = doctree.Attrs("class", ChildrenClass)
			if nested := Render(e.Sections); nested != nil {
				li.Children = append(li.Children, nested)
			}
		}
		items = append(items, li)
	}
	return doctree.Element("ul", nil, items...)
}

// Count returns the number of entries in the forest, nested ones included.
func Count(forest []doctree.OutlineEntry) int {
	n := 0
	for _, e := range forest {
		n += 1 + Count(e.Sections)
	}
	return n
}

// Depth returns the nesting depth of the forest (0 for an empty one).
func Depth(forest []doctree.OutlineEntry) int {
	max := 0
	for _, e := range forest {
		if d := 1 + Depth(e.Sections); d > max {
			max = d
		}
	}
	return max
}
