package render

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pafthang/lbmd/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string, marks ...*ast.Mark) *ast.Node {
	n := &ast.Node{Type: ast.NodeText, Text: s}
	for _, m := range marks {
		n.AddMark(m)
	}
	return n
}

func block(typ ast.NodeType, children ...*ast.Node) *ast.Node {
	n := &ast.Node{Type: typ}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func format(t *testing.T, root *ast.Node) string {
	output, err := NewFormatRenderer(root, nil).Render()
	require.NoError(t, err)
	return string(output)
}

var (
	bold   = &ast.Mark{Type: ast.MarkBold}
	italic = &ast.Mark{Type: ast.MarkItalic}
)

func TestFormatEscape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.render")
	defer teardown()
	//
	tests := []struct {
		text     string
		expected string
	}{
		{"*not bold* 1. # _x_", `\*not bold\* 1. # \_x\_`},
		{"# not heading", `\# not heading`},
		{"1. not a list", `1\. not a list`},
		{"- not a list", `\- not a list`},
		{"> not a quote", `\> not a quote`},
		{"snake_case_name", "snake_case_name"},
		{"a >! b !< c", `a >\! b \!< c`},
		{"[color=red]x[/color]", `\[color=red\]x\[/color\]`},
		{"<tag> a|b ~x~ ^y^", `\<tag> a\|b \~x\~ \^y\^`},
	}
	for _, test := range tests {
		doc := block(ast.NodeDocument, block(ast.NodeParagraph, text(test.text)))
		assert.Equal(t, test.expected, format(t, doc), test.text)
	}
}

func TestFormatMarks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.render")
	defer teardown()
	//
	tests := []struct {
		name     string
		nodes    []*ast.Node
		expected string
	}{
		{"italicInWord", []*ast.Node{text("a"), text("b", italic), text("c")}, "a*b*c"},
		{"expelSpace", []*ast.Node{text("b ", bold), text("c")}, "**b** c"},
		{"expelLeading", []*ast.Node{text("a"), text(" b", bold)}, "a **b**"},
		{"spaceOnly", []*ast.Node{text("a"), text(" ", bold), text("b")}, "a b"},
		{"spoilerBang", []*ast.Node{text("wow!", &ast.Mark{Type: ast.MarkSpoilerInline})}, "||wow!||"},
		{"code", []*ast.Node{text("a`b", &ast.Mark{Type: ast.MarkCode})}, "``a`b``"},
		{"codeEdge", []*ast.Node{text("`x", &ast.Mark{Type: ast.MarkCode})}, "`` `x ``"},
		{"linkSpaces", []*ast.Node{text("t", &ast.Mark{Type: ast.MarkLink, Href: "a b"})}, "[t](<a b>)"},
		{"linkTitle", []*ast.Node{text("t", &ast.Mark{Type: ast.MarkLink, Href: "/x", Title: `say "hi"`})}, `[t](/x "say \"hi\"")`},
		{"sharedMarks", []*ast.Node{text("a ", bold), text("b", bold, italic)}, "**a _b_**"},
		{"image", []*ast.Node{{Type: ast.NodeImage, Src: "/a.png", Alt: "a [b]", Title: "t"}}, `![a \[b\]](/a.png "t")`},
		{"breakInMark", []*ast.Node{text("a", bold), {Type: ast.NodeHardBreak}, text("b", bold)}, "**a\\\nb**"},
		{"indent", []*ast.Node{{Type: ast.NodeLbIndent}, text("x")}, "[lb-i]x"},
		{"size", []*ast.Node{text("x", &ast.Mark{Type: ast.MarkTextSize, Size: 18}, bold)}, "[size=18]**x**[/size]"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := block(ast.NodeDocument, block(ast.NodeParagraph, test.nodes...))
			assert.Equal(t, test.expected, format(t, doc))
		})
	}
}

func TestFormatBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.render")
	defer teardown()
	//
	item := func(children ...*ast.Node) *ast.Node { return block(ast.NodeListItem, children...) }
	para := func(s string) *ast.Node { return block(ast.NodeParagraph, text(s)) }

	first := &ast.Node{Type: ast.NodeBulletList, Tight: true}
	first.AppendChild(item(para("a")))
	second := &ast.Node{Type: ast.NodeBulletList, Tight: true}
	second.AppendChild(item(para("b")))
	assert.Equal(t, "- a\n\n* b", format(t, block(ast.NodeDocument, first, second)))

	list := &ast.Node{Type: ast.NodeOrderedList, Start: 9, Tight: true}
	list.AppendChild(item(block(ast.NodeHorizontalRule)))
	list.AppendChild(item(para("x"), para("y")))
	assert.Equal(t, "9. ***\n10. x\n\n    y", format(t, block(ast.NodeDocument, list)))

	loose := &ast.Node{Type: ast.NodeBulletList}
	loose.AppendChild(item(para("a")))
	loose.AppendChild(item())
	assert.Equal(t, "- a\n\n-", format(t, block(ast.NodeDocument, loose)))

	code := &ast.Node{Type: ast.NodeCodeBlock, Text: "```\nx"}
	assert.Equal(t, "````\n```\nx\n````", format(t, block(ast.NodeDocument, code)))

	quote := block(ast.NodeBlockquote, para("a"), para("b"))
	assert.Equal(t, "> a\n>\n> b", format(t, block(ast.NodeDocument, quote)))

	spoiler := block(ast.NodeSpoilerBlock, block(ast.NodeParagraph))
	assert.Equal(t, ">! ", format(t, block(ast.NodeDocument, spoiler)))

	aligned := &ast.Node{Type: ast.NodeAlignedBlock, Align: "right"}
	aligned.AppendChild(block(ast.NodeHeading, text("t")))
	aligned.FirstChild.Level = 3
	assert.Equal(t, "[right]\n### t\n[/right]", format(t, block(ast.NodeDocument, aligned)))

	task := &ast.Node{Type: ast.NodeBulletList, Tight: true}
	task.AppendChild(&ast.Node{Type: ast.NodeListItem, Task: true, Checked: true})
	task.FirstChild.AppendChild(para("done"))
	assert.Equal(t, "- [x] done", format(t, block(ast.NodeDocument, task)))
}

func TestFormatTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.render")
	defer teardown()
	//
	cell := func(header bool, s string) *ast.Node {
		n := &ast.Node{Type: ast.NodeTableCell, Header: header}
		n.AppendChild(text(s))
		return n
	}
	table := &ast.Node{Type: ast.NodeTable, Aligns: []string{"left", "right"}}
	table.AppendChild(block(ast.NodeTableRow, cell(true, "a"), cell(true, "b")))
	table.AppendChild(block(ast.NodeTableRow, cell(false, "x|y"), cell(false, "z")))
	assert.Equal(t, "| a | b |\n| :--- | ---: |\n| x\\|y | z |", format(t, block(ast.NodeDocument, table)))
}

func TestFormatMissingRendererFunc(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.render")
	defer teardown()
	//
	doc := block(ast.NodeDocument, block(ast.NodeParagraph, text("x")))
	renderer := NewFormatRenderer(doc, nil)
	delete(renderer.RendererFuncs, ast.NodeParagraph)
	_, err := renderer.Render()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRendererFunc))

	_, err = NewFormatRenderer(nil, nil).Render()
	assert.Error(t, err)
}

func TestFormatSubtree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.render")
	defer teardown()
	//
	assert.Equal(t, "**x**", format(t, text("x", bold)))
	assert.Equal(t, "[lb-blank][/lb-blank]\n[lb-blank][/lb-blank]", format(t, &ast.Node{Type: ast.NodeBlankLine}))
}
