package lbmd

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pafthang/lbmd/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roundTripTests = []struct {
	name string
	text string
}{
	{"color", "[color=#ff0000]hi[/color]"},
	{"size", "[size=20]big[/size]"},
	{"spoilerInline", ">!secret!<"},
	{"spoilerPipes", "||a!b||"},
	{"spoilerRuns", ">!a!<b>!c!<"},
	{"subSup", "H~2~O and x^2^"},
	{"emphasis", "**bold** and _italic_"},
	{"strike", "~~gone~~"},
	{"nestedMarks", "[color=red]**bold**[/color]"},
	{"indent", "[lb-i]text"},
	{"center", "[center]\nmiddle\n[/center]"},
	{"right", "[right]\nside\n[/right]"},
	{"emptyCenter", "[center][/center]"},
	{"nestedCenter", "[center]\n[center]\nmiddle\n[/center]\n[/center]"},
	{"centerInRight", "[right]\n[center]\nmiddle\n[/center]\n[/right]"},
	{"spoilerBlock", ">! hidden\n>!\n>! more"},
	{"blankLine", "a\n\n[lb-blank][/lb-blank]\n[lb-blank][/lb-blank]\n\nb"},
	{"heading", "## Title"},
	{"bulletList", "- one\n- two"},
	{"orderedList", "3. three\n4. four"},
	{"taskList", "- [ ] todo\n- [x] done"},
	{"blockquote", "> quoted"},
	{"codeBlock", "```go\nx := 1\n```"},
	{"hr", "a\n\n---\n\nb"},
	{"link", "[site](https://example.com \"home\")"},
	{"autolink", "<https://example.com>"},
	{"image", "![pic](https://example.com/a.png)"},
	{"hardBreak", "one\\\ntwo"},
	{"table", "| a | b |\n| --- | :---: |\n| 1 | 2 |"},
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.parse", "lbmd.render")
	defer teardown()
	//
	engine := New()
	for _, test := range roundTripTests {
		t.Run(test.name, func(t *testing.T) {
			formatted, err := engine.Format(test.text)
			require.NoError(t, err)
			assert.Equal(t, test.text, formatted)
		})
	}
}

func TestIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.parse", "lbmd.render")
	defer teardown()
	//
	engine := New()
	inputs := []string{
		"*x*y and __strong__ text",
		"1) a\n2) b\n\n- c\n\n* d",
		"> a\nlazy\n\n>! s1\n\n[right]x[/right]",
		"text with \\* escapes and 1. numbers # here",
		"[ref]\n\n[ref]: https://example.com",
		">!spoiler!< then **bold [color=blue]blue[/color]**",
	}
	for _, input := range inputs {
		first := engine.Parse(input)
		text, err := engine.Render(first)
		require.NoError(t, err)
		second := engine.Parse(text)
		assert.True(t, ast.Equal(first, second), "input %q rendered as %q", input, text)
	}
}

func TestMutualExclusion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.parse")
	defer teardown()
	//
	n := &ast.Node{Type: ast.NodeText, Text: "x"}
	n.AddMark(&ast.Mark{Type: ast.MarkSuperscript})
	n.AddMark(&ast.Mark{Type: ast.MarkSubscript})
	assert.True(t, n.HasMark(ast.MarkSubscript))
	assert.False(t, n.HasMark(ast.MarkSuperscript))
	assert.Len(t, n.Marks, 1)
}

func TestNonGreedySpoiler(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.parse")
	defer teardown()
	//
	doc := New().Parse(">!a!<b>!c!<")
	require.Equal(t, 1, doc.ChildCount())
	p := doc.FirstChild
	require.Equal(t, ast.NodeParagraph, p.Type)
	texts := p.Children()
	require.Len(t, texts, 3)
	assert.Equal(t, "a", texts[0].Text)
	assert.True(t, texts[0].HasMark(ast.MarkSpoilerInline))
	assert.Equal(t, "b", texts[1].Text)
	assert.Empty(t, texts[1].Marks)
	assert.Equal(t, "c", texts[2].Text)
	assert.True(t, texts[2].HasMark(ast.MarkSpoilerInline))
}

func TestBlankLineAsymmetry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.parse", "lbmd.render")
	defer teardown()
	//
	engine := New()
	doc := &ast.Node{Type: ast.NodeDocument}
	doc.AppendChild(&ast.Node{Type: ast.NodeBlankLine})
	text, err := engine.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, "[lb-blank][/lb-blank]\n[lb-blank][/lb-blank]", text)

	parsed := engine.Parse(text)
	require.Equal(t, 1, parsed.ChildCount())
	assert.Equal(t, ast.NodeBlankLine, parsed.FirstChild.Type)

	parsed = engine.Parse("[lb-blank][/lb-blank]")
	require.Equal(t, 1, parsed.ChildCount())
	assert.Equal(t, ast.NodeBlankLine, parsed.FirstChild.Type)
}

func TestSpoilerPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.parse")
	defer teardown()
	//
	engine := New()
	doc := engine.Parse(">! spoiler block line")
	require.Equal(t, 1, doc.ChildCount())
	block := doc.FirstChild
	assert.Equal(t, ast.NodeSpoilerBlock, block.Type)
	assert.Equal(t, "spoiler block line", block.Content())

	doc = engine.Parse(">!inline!<")
	require.Equal(t, 1, doc.ChildCount())
	p := doc.FirstChild
	require.Equal(t, ast.NodeParagraph, p.Type)
	require.Equal(t, 1, p.ChildCount())
	assert.Equal(t, "inline", p.FirstChild.Text)
	assert.True(t, p.FirstChild.HasMark(ast.MarkSpoilerInline))
}

func TestEmptyContainer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.parse")
	defer teardown()
	//
	doc := New().Parse("[center][/center]")
	require.Equal(t, 1, doc.ChildCount())
	aligned := doc.FirstChild
	assert.Equal(t, ast.NodeAlignedBlock, aligned.Type)
	assert.Equal(t, "center", aligned.Align)
	require.Equal(t, 1, aligned.ChildCount())
	assert.Equal(t, ast.NodeParagraph, aligned.FirstChild.Type)
	assert.Nil(t, aligned.FirstChild.FirstChild)
}

func TestNestedMarks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.parse")
	defer teardown()
	//
	doc := New().Parse("[color=red]**bold**[/color]")
	text := doc.FirstChild.FirstChild
	require.NotNil(t, text)
	assert.Equal(t, "bold", text.Text)
	assert.True(t, text.HasMark(ast.MarkBold))
	color := text.Mark(ast.MarkTextColor)
	require.NotNil(t, color)
	assert.Equal(t, "red", color.Color)
}

func TestSanitize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.paste")
	defer teardown()
	//
	engine := New()
	assert.NotContains(t, engine.Sanitize(`<p><img src="data:image/png;base64,AAAA"></p>`), "<img")
	kept := `<p><img src="https://example.com/a.png"></p>`
	assert.Equal(t, kept, engine.Sanitize(kept))
}

func TestEmptyInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.parse", "lbmd.render")
	defer teardown()
	//
	engine := New()
	doc := engine.Parse("")
	require.Equal(t, 1, doc.ChildCount())
	assert.Equal(t, ast.NodeParagraph, doc.FirstChild.Type)

	text, err := engine.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestJSON(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.parse", "lbmd.render")
	defer teardown()
	//
	engine := New()
	text := "## Title\n\n>! [color=red]x[/color]"
	data, err := engine.ParseJSON(text)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"doc"`)

	rendered, err := engine.RenderJSON(string(data))
	require.NoError(t, err)
	assert.Equal(t, text, rendered)

	_, err = engine.RenderJSON("{")
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.render")
	defer teardown()
	//
	engine := New()
	out, err := engine.Preview("[size=100]x[/size] [color=red]y[/color] [color=url(evil)]z[/color]")
	require.NoError(t, err)
	assert.Contains(t, out, `<span style="font-size: 72px">x</span>`)
	assert.Contains(t, out, `<span style="color: red">y</span>`)
	assert.Contains(t, out, `<span>z</span>`)

	engine.SetTextSizeRange(30, 10)
	out, err = engine.Preview("[size=5]x[/size]")
	require.NoError(t, err)
	assert.Contains(t, out, "font-size: 10px")

	require.NoError(t, engine.SetTextColorPattern("^blue$"))
	out, err = engine.Preview("[color=red]y[/color]")
	require.NoError(t, err)
	assert.Contains(t, out, "<span>y</span>")
	assert.Error(t, engine.SetTextColorPattern("("))

	out, err = engine.Preview("[x](javascript:void) [y](https://example.com)")
	require.NoError(t, err)
	assert.NotContains(t, out, "javascript")
	assert.Contains(t, out, `<a href="https://example.com">y</a>`)
}

func TestPasteHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.paste", "lbmd.render")
	defer teardown()
	//
	engine := New()
	text, err := engine.PasteHTML2Text(`<p><b>bold</b> <span style="color: red">red</span></p><p><img src="data:image/png;base64,AAAA"></p>`)
	require.NoError(t, err)
	assert.Equal(t, "**bold** [color=red]red[/color]", text)
}

func TestWordCount(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.parse")
	defer teardown()
	//
	runes, words := New().WordCount("**hello** [color=red]world[/color]")
	assert.Equal(t, 10, runes)
	assert.Equal(t, 2, words)
}

func TestFormatRendererFuncs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.render")
	defer teardown()
	//
	engine := New()
	engine.FormatRendererFuncs[ast.NodeHorizontalRule] = func(n *ast.Node, entering bool) (string, ast.WalkStatus) {
		if entering {
			return "___", ast.WalkSkipChildren
		}
		return "", ast.WalkContinue
	}
	text, err := engine.Format("---")
	require.NoError(t, err)
	assert.Equal(t, "___", text)
}
