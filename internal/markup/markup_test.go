package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docpage/internal/doctree"
)

func TestParseFragment_Structure(t *testing.T) {
	nodes, err := ParseFragment(`<p class="lead">Hello <a href="/docs/x">docs</a></p><!-- note -->tail`)
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	p := nodes[0]
	require.Equal(t, doctree.ElementNode, p.Kind)
	require.Equal(t, "p", p.Tag)
	class, _ := p.Attr("class")
	require.Equal(t, "lead", class)
	require.Len(t, p.Children, 2)
	require.Equal(t, "Hello ", p.Children[0].Text)

	a := p.Children[1]
	href, _ := a.Attr("href")
	require.Equal(t, "/docs/x", href)

	require.Equal(t, doctree.TextNode, nodes[1].Kind)
	require.Equal(t, "tail", nodes[1].Text)
}

func TestRenderString_RoundTrip(t *testing.T) {
	in := `<article><h2 id="a">A &amp; B</h2><p>x<br/>y</p><span class="current-year">PLACEHOLDER</span></article>`
	nodes, err := ParseFragment(in)
	require.NoError(t, err)

	out, err := RenderString(nodes...)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestRenderString_EscapesText(t *testing.T) {
	out, err := RenderString(doctree.Element("p", nil, doctree.Text("<b>")))
	require.NoError(t, err)
	require.Equal(t, "<p>&lt;b&gt;</p>", out)
}

func TestRenderString_SkipsNil(t *testing.T) {
	out, err := RenderString(nil, doctree.Text("x"), nil)
	require.NoError(t, err)
	require.Equal(t, "x", out)
}

func TestRenderDocument(t *testing.T) {
	var buf strings.Builder
	root := doctree.Element("html", doctree.Attrs("lang", "en"),
		doctree.Element("head", nil, doctree.Element("title", nil, doctree.Text("T"))),
		doctree.Element("body", nil),
	)
	require.NoError(t, RenderDocument(&buf, root))
	require.Equal(t, "<!DOCTYPE html>\n<html lang=\"en\"><head><title>T</title></head><body></body></html>", buf.String())
}

func TestRender_VoidElementWithChildrenFails(t *testing.T) {
	_, err := RenderString(doctree.Element("br", nil, doctree.Text("x")))
	require.Error(t, err)
}
