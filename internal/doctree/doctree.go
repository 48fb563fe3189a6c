package doctree

// Kind discriminates the two node variants.
type Kind int

const (
	ElementNode Kind = iota + 1
	TextNode
)

// Attr is a single element attribute.
type Attr struct {
	Key string
	Val string
}

// Node is an element or a text node in a parsed document.
// Trees are treated as immutable once built: code that needs a different
// tree builds a new one and may share untouched subtrees.
type Node struct {
	Kind     Kind
	Tag      string  // Element tag name, lowercase
	Attrs    []Attr  // Element attributes in source order
	Children []*Node // Element children
	Text     string  // Text content (TextNode only)
}

// Element builds an element node.
func Element(tag string, attrs []Attr, children ...*Node) *Node {
	return &Node{Kind: ElementNode, Tag: tag, Attrs: attrs, Children: children}
}

// Text builds a text node.
func Text(s string) *Node {
	return &Node{Kind: TextNode, Text: s}
}

// Attrs builds an attribute list from alternating key/value strings.
func Attrs(kv ...string) []Attr {
	if len(kv) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, Attr{Key: kv[i], Val: kv[i+1]})
	}
	return out
}

// IsElement reports whether n is an element with the given tag.
func (n *Node) IsElement(tag string) bool {
	return n != nil && n.Kind == ElementNode && n.Tag == tag
}

// Attr returns the value of the first attribute named key.
func (n *Node) Attr(key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the attribute is present, even if empty.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attr(key)
	return ok
}

// Equal reports structural equality of two trees.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind || a.Tag != b.Tag || a.Text != b.Text {
		return false
	}
	if len(a.Attrs) != len(b.Attrs) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Attrs {
		if a.Attrs[i] != b.Attrs[i] {
			return false
		}
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// CountNodes returns the number of nodes in the tree rooted at n.
func CountNodes(n *Node) int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += CountNodes(c)
	}
	return total
}

// OutlineEntry is one heading in a document outline.
type OutlineEntry struct {
	Anchor   string         // Fragment id of the heading
	Heading  string         // Heading label
	Sections []OutlineEntry // Nested headings; nil when absent
}

// Document is a parsed content file ready for page assembly.
type Document struct {
	ID      string         // Stable identifier (front matter id or file base name)
	Title   string         // Document title (front matter, <title>, or filename)
	Slug    string         // URL path, e.g. "/guide/install"
	Meta    map[string]any // Raw front matter
	Body    []*Node        // Top-level nodes of the document body
	Outline []OutlineEntry // Heading outline of Body
}
