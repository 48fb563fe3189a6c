package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/docpage/internal/markup"
)

func TestMarkdownParser_HeadingHierarchy(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.

## Section B

Section B content.
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", doc.Title)
	}

	// Outline: one h1 ("Title")
	if len(doc.Outline) != 1 {
		t.Fatalf("expected 1 top-level outline entry (h1), got %d", len(doc.Outline))
	}

	h1 := doc.Outline[0]
	if h1.Heading != "Title" || h1.Anchor != "title" {
		t.Errorf("expected h1 Title/#title, got %q/#%q", h1.Heading, h1.Anchor)
	}

	// h1 has two h2 children: "Section A" and "Section B"
	if len(h1.Sections) != 2 {
		t.Fatalf("expected 2 h2 sections, got %d", len(h1.Sections))
	}

	secA := h1.Sections[0]
	if secA.Anchor != "section-a" {
		t.Errorf("expected anchor %q, got %q", "section-a", secA.Anchor)
	}
	if len(secA.Sections) != 1 || secA.Sections[0].Heading != "Subsection A1" {
		t.Fatalf("expected Subsection A1 under Section A, got %+v", secA.Sections)
	}

	secB := h1.Sections[1]
	if secB.Heading != "Section B" {
		t.Errorf("expected %q, got %q", "Section B", secB.Heading)
	}
	if secB.Sections != nil {
		t.Errorf("expected no sections under Section B, got %+v", secB.Sections)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	input := `Just some plain text.

Another paragraph here.`

	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Outline != nil {
		t.Errorf("expected no outline, got %+v", doc.Outline)
	}
	if len(doc.Body) != 2 {
		t.Fatalf("expected 2 body blocks, got %d", len(doc.Body))
	}
	for i, n := range doc.Body {
		if n.Tag != "p" {
			t.Errorf("body[%d]: expected <p>, got <%s>", i, n.Tag)
		}
	}
}

func TestMarkdownParser_RawHTMLKept(t *testing.T) {
	input := "Copyright <span class=\"current-year\">YEAR</span>.\n\n<article>\n\n[Next](/docs/next)\n\n</article>\n"

	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "footer.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := markup.RenderString(doc.Body...)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`<span class="current-year">YEAR</span>`, `<article>`, `<a href="/docs/next">Next</a>`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestMarkdownParser_FrontMatter(t *testing.T) {
	input := "---\nid: install\ntitle: Installing\nweight: 3\n---\n# Install\n"

	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "guide/install.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID != "install" {
		t.Errorf("expected id %q, got %q", "install", doc.ID)
	}
	if doc.Title != "Installing" {
		t.Errorf("expected title %q, got %q", "Installing", doc.Title)
	}
	if doc.Meta["weight"] != 3 {
		t.Errorf("expected weight 3 in meta, got %v", doc.Meta["weight"])
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Body) != 0 {
		t.Errorf("expected empty body, got %d nodes", len(doc.Body))
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"docs/plain.md", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		doc, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if doc.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, doc.Title)
		}
	}
}
