package paste

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pafthang/lbmd/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeParagraphMarks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.paste")
	defer teardown()
	//
	doc := Tree(`<p>a <b>bold <i>both</i></b> <span style="color: red; font-size: 20px">c</span></p>`)
	require.Equal(t, 1, doc.ChildCount())
	p := doc.FirstChild
	require.Equal(t, ast.NodeParagraph, p.Type)

	texts := p.Children()
	require.Len(t, texts, 5)
	assert.Equal(t, "a ", texts[0].Text)
	assert.Empty(t, texts[0].Marks)
	assert.Equal(t, "bold ", texts[1].Text)
	assert.True(t, texts[1].HasMark(ast.MarkBold))
	assert.Equal(t, "both", texts[2].Text)
	assert.True(t, texts[2].HasMark(ast.MarkBold))
	assert.True(t, texts[2].HasMark(ast.MarkItalic))
	assert.Equal(t, " ", texts[3].Text)
	assert.Equal(t, "c", texts[4].Text)
	assert.Equal(t, "red", texts[4].Mark(ast.MarkTextColor).Color)
	assert.Equal(t, 20, texts[4].Mark(ast.MarkTextSize).Size)
}

func TestTreeBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.paste")
	defer teardown()
	//
	doc := Tree(`<h2>Title</h2><ul><li><input type="checkbox" checked> done</li><li>todo</li></ul>` +
		`<blockquote><p>q</p></blockquote><pre><code class="language-go">x := 1
</code></pre><hr>`)
	children := doc.Children()
	require.Len(t, children, 5)

	assert.Equal(t, ast.NodeHeading, children[0].Type)
	assert.Equal(t, 2, children[0].Level)
	assert.Equal(t, "Title", children[0].Content())

	list := children[1]
	assert.Equal(t, ast.NodeBulletList, list.Type)
	require.Equal(t, 2, list.ChildCount())
	assert.True(t, list.FirstChild.Task)
	assert.True(t, list.FirstChild.Checked)
	assert.Equal(t, "done", list.FirstChild.Content())
	assert.False(t, list.LastChild.Task)

	assert.Equal(t, ast.NodeBlockquote, children[2].Type)
	assert.Equal(t, "q", children[2].Content())

	assert.Equal(t, ast.NodeCodeBlock, children[3].Type)
	assert.Equal(t, "go", children[3].Language)
	assert.Equal(t, "x := 1", children[3].Text)

	assert.Equal(t, ast.NodeHorizontalRule, children[4].Type)
}

func TestTreeAlignAndSpoiler(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.paste")
	defer teardown()
	//
	doc := Tree(`<div style="text-align: right"><p>r</p></div><p align="left">l</p><p data-align="justify">j</p>` +
		`<div class="spoiler"><p>s</p></div><p><span class="spoiler">hidden</span></p>`)
	children := doc.Children()
	require.Len(t, children, 5)

	assert.Equal(t, ast.NodeAlignedBlock, children[0].Type)
	assert.Equal(t, "right", children[0].Align)
	assert.Equal(t, ast.NodeParagraph, children[1].Type)
	assert.Equal(t, ast.NodeAlignedBlock, children[2].Type)
	assert.Equal(t, "center", children[2].Align)
	assert.Equal(t, ast.NodeSpoilerBlock, children[3].Type)
	assert.True(t, children[4].FirstChild.HasMark(ast.MarkSpoilerInline))
}

func TestTreeLinksImagesAndBreaks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.paste")
	defer teardown()
	//
	doc := Tree(`<p><a href="https://example.com" title="t">go</a><br><img src="https://example.com/a.png" alt="pic">` +
		`<img src="data:image/png;base64,AAAA"></p><script>alert(1)</script>`)
	require.Equal(t, 1, doc.ChildCount())
	nodes := doc.FirstChild.Children()
	require.Len(t, nodes, 3)
	link := nodes[0].Mark(ast.MarkLink)
	require.NotNil(t, link)
	assert.Equal(t, "https://example.com", link.Href)
	assert.Equal(t, "t", link.Title)
	assert.Equal(t, ast.NodeHardBreak, nodes[1].Type)
	assert.Equal(t, ast.NodeImage, nodes[2].Type)
	assert.Equal(t, "pic", nodes[2].Alt)
}

func TestTreeSkipsEncodedDataImages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.paste")
	defer teardown()
	//
	doc := Tree(`<p>x<img src="&#100;ata:image/png;base64,AAAA"><img src="data&colon;image/gif;base64,R0lG">` +
		`<img src="da&#10;ta:image/png;base64,AAAA"></p>`)
	assert.Empty(t, doc.ChildrenByType(ast.NodeImage))
	assert.Equal(t, "x", doc.Content())
}

func TestTreeTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.paste")
	defer teardown()
	//
	doc := Tree(`<table><thead><tr><th>a</th><th align="center">b</th></tr></thead>` +
		`<tbody><tr><td>1</td><td>2</td></tr></tbody></table>`)
	table := doc.FirstChild
	require.Equal(t, ast.NodeTable, table.Type)
	assert.Equal(t, []string{"", "center"}, table.Aligns)
	require.Equal(t, 2, table.ChildCount())
	assert.True(t, table.FirstChild.FirstChild.Header)
	assert.False(t, table.LastChild.FirstChild.Header)
	assert.Equal(t, "2", table.LastChild.LastChild.Content())
}

func TestTreeEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.paste")
	defer teardown()
	//
	doc := Tree("")
	require.Equal(t, 1, doc.ChildCount())
	assert.Equal(t, ast.NodeParagraph, doc.FirstChild.Type)

	doc = Tree("loose <b>text</b>")
	require.Equal(t, 1, doc.ChildCount())
	assert.Equal(t, "loose text", doc.FirstChild.Content())
}
