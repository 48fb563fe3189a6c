package parser

import (
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"a.md", false},
		{"a.MARKDOWN", false},
		{"a.html", false},
		{"a.htm", false},
		{"a.txt", false},
		{"a.csv", false},
		{"a.pdf", false},
		{"a.docx", false},
		{"a.png", true},
	}
	for _, tt := range tests {
		_, err := ForFile(tt.filename, Options{})
		if (err != nil) != tt.wantErr {
			t.Errorf("ForFile(%q): err=%v, wantErr=%v", tt.filename, err, tt.wantErr)
		}
		if IsSupportedExtension(tt.filename) == tt.wantErr {
			t.Errorf("IsSupportedExtension(%q) disagrees with ForFile", tt.filename)
		}
	}
}

func TestForFile_PDFOptions(t *testing.T) {
	p, err := ForFile("x.pdf", Options{PDFFallbackPdftotext: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pdf, ok := p.(*PDFParser)
	if !ok || !pdf.FallbackPdftotext {
		t.Errorf("expected PDF parser with fallback enabled, got %#v", p)
	}
}

func TestPDFBody_PagesBecomeSections(t *testing.T) {
	body := pdfBody("First page.\n\nSecond para.\f\fThird page.")
	if len(body) != 2 {
		t.Fatalf("expected 2 sections (blank page skipped), got %d", len(body))
	}
	h, _ := body[1].Children[0].Attr("id")
	if h != "page-3" {
		t.Errorf("expected id %q, got %q", "page-3", h)
	}
	if len(body[0].Children) != 3 {
		t.Errorf("expected heading + 2 paragraphs, got %d children", len(body[0].Children))
	}
}

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantMeta bool
		wantBody string
		wantErr  bool
	}{
		{"none", "hello", false, "hello", false},
		{"basic", "---\nid: a\n---\nbody", true, "body", false},
		{"empty block", "---\n---\nbody", true, "body", false},
		{"crlf", "---\r\nid: a\r\n---\r\nbody", true, "body", false},
		{"closing at eof", "---\nid: a\n---", true, "", false},
		{"unterminated", "---\nid: a\nbody", false, "", true},
		{"not a mapping", "---\n- a\n- b\n---\nbody", false, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body, err := splitFrontMatter([]byte(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v, wantErr=%v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (meta != nil) != tt.wantMeta {
				t.Errorf("meta=%v, wantMeta=%v", meta, tt.wantMeta)
			}
			if string(body) != tt.wantBody {
				t.Errorf("body=%q, want %q", body, tt.wantBody)
			}
		})
	}
}
