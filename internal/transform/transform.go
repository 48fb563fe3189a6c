// Package transform rewrites document trees with an ordered set of rules.
//
// A rule that matches an element replaces it outright: the transformer does
// not descend into the original children afterwards. A rule that wants the
// children rewritten must call the ChildrenFunc it is handed and embed the
// result. Forgetting to do so silently keeps the children's own matches from
// firing.
package transform

import (
	"fmt"
	"slices"

	"github.com/dgallion1/docpage/internal/doctree"
)

// ChildrenFunc transforms a sequence of nodes with the rules of the
// surrounding invocation.
type ChildrenFunc func(children []*doctree.Node) []*doctree.Node

// Rules decides the replacement of a single element. Returning nil means no
// replacement and the element is rebuilt from its transformed children.
type Rules interface {
	Replace(el *doctree.Node, children ChildrenFunc) *doctree.Node
}

// RulesFunc adapts a function to the Rules interface.
type RulesFunc func(el *doctree.Node, children ChildrenFunc) *doctree.Node

func (f RulesFunc) Replace(el *doctree.Node, children ChildrenFunc) *doctree.Node {
	return f(el, children)
}

// Transform returns the rewritten tree for n. The input is never modified;
// subtrees that come out unchanged are shared with the input.
func Transform(n *doctree.Node, rules Rules) *doctree.Node {
	if n == nil || n.Kind != doctree.ElementNode {
		return n
	}
	recurse := func(children []*doctree.Node) []*doctree.Node {
		return TransformAll(children, rules)
	}
	if rules != nil {
		if repl := rules.Replace(n, recurse); repl != nil {
			return repl
		}
	}

	children, changed := transformChildren(n.Children, rules)
	if !changed {
		return n
	}
	return &doctree.Node{
		Kind:     doctree.ElementNode,
		Tag:      n.Tag,
		Attrs:    n.Attrs,
		Children: children,
	}
}

// TransformAll transforms each node of a sequence. The returned slice is
// always freshly allocated, so callers may append to it.
func TransformAll(nodes []*doctree.Node, rules Rules) []*doctree.Node {
	out, changed := transformChildren(nodes, rules)
	if !changed {
		return slices.Clone(nodes)
	}
	return out
}

func transformChildren(nodes []*doctree.Node, rules Rules) ([]*doctree.Node, bool) {
	if len(nodes) == 0 {
		return nodes, false
	}
	out := make([]*doctree.Node, len(nodes))
	changed := false
	for i, c := range nodes {
		out[i] = Transform(c, rules)
		if out[i] != c {
			changed = true
		}
	}
	if !changed {
		return nodes, false
	}
	return out, true
}

// Try runs TransformAll and turns a panicking rule into an error, for callers
// that prefer a fallback over aborting. Panics raised by a RuleSet come back
// as *RuleError.
func Try(nodes []*doctree.Node, rules Rules) (out []*doctree.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			if re, ok := r.(*RuleError); ok {
				err = re
				return
			}
			err = fmt.Errorf("rewrite rule failed: %v", r)
		}
	}()
	return TransformAll(nodes, rules), nil
}
