package transform

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docpage/internal/doctree"
)

// Predicate selects elements a rule applies to.
type Predicate func(el *doctree.Node) bool

// Constructor builds the replacement for a matched element. It may return
// nil to decline, in which case the element is processed as unmatched.
type Constructor func(el *doctree.Node, children ChildrenFunc) *doctree.Node

// Rule pairs a predicate with the constructor of its replacement.
type Rule struct {
	Name  string
	Match Predicate
	Build Constructor
}

// RuleSet is an ordered list of rules. The first rule whose predicate
// matches decides the element; later rules are not consulted.
type RuleSet []Rule

// Replace runs the constructor of the deciding rule. A panicking constructor
// is re-raised as a *RuleError naming the rule, unless it already is one.
func (rs RuleSet) Replace(el *doctree.Node, children ChildrenFunc) *doctree.Node {
	r, ok := rs.match(el)
	if !ok {
		return nil
	}
	defer func() {
		if rec := recover(); rec != nil {
			if re, ok := rec.(*RuleError); ok {
				panic(re)
			}
			panic(&RuleError{Rule: r.Name, Tag: el.Tag, Cause: rec})
		}
	}()
	return r.Build(el, children)
}

func (rs RuleSet) match(el *doctree.Node) (Rule, bool) {
	for _, r := range rs {
		if r.Match != nil && r.Match(el) {
			return r, true
		}
	}
	return Rule{}, false
}

// RuleError reports a rule constructor that panicked.
type RuleError struct {
	Rule  string // Name of the failing rule
	Tag   string // Tag of the element it was building
	Cause any    // Recovered panic value
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rewrite rule %q failed on <%s>: %v", e.Rule, e.Tag, e.Cause)
}

// Tag matches elements with the given tag name.
func Tag(name string) Predicate {
	return func(el *doctree.Node) bool { return el.IsElement(name) }
}

// HasAttr matches elements carrying the attribute.
func HasAttr(key string) Predicate {
	return func(el *doctree.Node) bool { return el.HasAttr(key) }
}

// AttrEquals matches elements whose attribute equals val.
func AttrEquals(key, val string) Predicate {
	return func(el *doctree.Node) bool {
		v, ok := el.Attr(key)
		return ok && v == val
	}
}

// AttrHasPrefix matches elements whose attribute starts with prefix.
func AttrHasPrefix(key, prefix string) Predicate {
	return func(el *doctree.Node) bool {
		v, ok := el.Attr(key)
		return ok && v != "" && strings.HasPrefix(v, prefix)
	}
}

// AttrContains matches elements whose attribute contains sub anywhere.
func AttrContains(key, sub string) Predicate {
	return func(el *doctree.Node) bool {
		v, ok := el.Attr(key)
		return ok && v != "" && strings.Contains(v, sub)
	}
}

// ClassHasToken matches elements whose class list contains token.
func ClassHasToken(token string) Predicate {
	return func(el *doctree.Node) bool {
		v, ok := el.Attr("class")
		if !ok {
			return false
		}
		for _, f := range strings.Fields(v) {
			if f == token {
				return true
			}
		}
		return false
	}
}

// All matches when every predicate matches.
func All(ps ...Predicate) Predicate {
	return func(el *doctree.Node) bool {
		for _, p := range ps {
			if !p(el) {
				return false
			}
		}
		return true
	}
}

// Any matches when at least one predicate matches.
func Any(ps ...Predicate) Predicate {
	return func(el *doctree.Node) bool {
		for _, p := range ps {
			if p(el) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return func(el *doctree.Node) bool { return !p(el) }
}
