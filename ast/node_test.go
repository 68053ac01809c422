package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Node {
	doc := &Node{Type: NodeDocument}
	p := &Node{Type: NodeParagraph}
	text := &Node{Type: NodeText, Text: "hi"}
	text.AddMark(&Mark{Type: MarkTextColor, Color: "red"})
	text.AddMark(&Mark{Type: MarkBold})
	p.AppendChild(text)
	p.AppendChild(&Node{Type: NodeLbIndent})
	aligned := &Node{Type: NodeAlignedBlock, Align: "right"}
	aligned.AppendChild(&Node{Type: NodeParagraph})
	list := &Node{Type: NodeOrderedList, Start: 3, Tight: true}
	li := &Node{Type: NodeListItem, Task: true, Checked: true}
	li.AppendChild(&Node{Type: NodeParagraph})
	list.AppendChild(li)
	doc.AppendChild(p)
	doc.AppendChild(aligned)
	doc.AppendChild(list)
	doc.AppendChild(&Node{Type: NodeBlankLine})
	doc.AppendChild(&Node{Type: NodeCodeBlock, Language: "go", Text: "x := 1"})
	return doc
}

func TestTreeOperations(t *testing.T) {
	doc := &Node{Type: NodeDocument}
	a := &Node{Type: NodeParagraph}
	b := &Node{Type: NodeHorizontalRule}
	c := &Node{Type: NodeBlankLine}
	doc.AppendChild(b)
	doc.PrependChild(a)
	b.InsertAfter(c)
	assert.Equal(t, []*Node{a, b, c}, doc.Children())

	b.Unlink()
	assert.Equal(t, 2, doc.ChildCount())
	assert.Equal(t, a, c.Previous)
	assert.Nil(t, b.Parent)

	c.InsertBefore(b)
	assert.Equal(t, []*Node{a, b, c}, doc.Children())
	assert.Equal(t, c, doc.LastChild)
}

func TestWalkSkipAndStop(t *testing.T) {
	doc := sampleTree()
	var types []NodeType
	Walk(doc, func(n *Node, entering bool) WalkStatus {
		if !entering {
			return WalkContinue
		}
		types = append(types, n.Type)
		if NodeParagraph == n.Type {
			return WalkSkipChildren
		}
		if NodeOrderedList == n.Type {
			return WalkStop
		}
		return WalkContinue
	})
	assert.Equal(t, []NodeType{NodeDocument, NodeParagraph, NodeAlignedBlock, NodeParagraph, NodeOrderedList}, types)
}

func TestContent(t *testing.T) {
	doc := &Node{Type: NodeDocument}
	p := &Node{Type: NodeParagraph}
	p.AppendChild(&Node{Type: NodeText, Text: "a"})
	p.AppendChild(&Node{Type: NodeHardBreak})
	p.AppendChild(&Node{Type: NodeText, Text: "b"})
	doc.AppendChild(p)
	q := &Node{Type: NodeParagraph}
	q.AppendChild(&Node{Type: NodeText, Text: "c"})
	doc.AppendChild(q)
	assert.Equal(t, "a\nb\nc", doc.Content())
}

func TestCloneAndEqual(t *testing.T) {
	doc := sampleTree()
	clone := doc.Clone()
	assert.True(t, Equal(doc, clone))

	clone.FirstChild.FirstChild.Marks[0].Color = "blue"
	assert.False(t, Equal(doc, clone))
	assert.Equal(t, "red", doc.FirstChild.FirstChild.Mark(MarkTextColor).Color)
}

func TestJSONRoundTrip(t *testing.T) {
	doc := sampleTree()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"alignedBlock"`)
	assert.Contains(t, string(data), `{"type":"textColor","attrs":{"color":"red"}}`)

	decoded := &Node{}
	require.NoError(t, json.Unmarshal(data, decoded))
	assert.True(t, Equal(doc, decoded))
	assert.Equal(t, decoded, decoded.FirstChild.Parent)
}

func TestJSONUnknownType(t *testing.T) {
	decoded := &Node{}
	err := json.Unmarshal([]byte(`{"type":"doc","content":[{"type":"mystery"}]}`), decoded)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"type":"heading","attrs":{"level":9}}`), decoded)
	assert.Error(t, err)
}

func TestNodeTypeNames(t *testing.T) {
	assert.Equal(t, "NodeSpoilerBlock", NodeSpoilerBlock.String())
	assert.Equal(t, NodeSpoilerBlock, Str2NodeType("NodeSpoilerBlock"))
	assert.Equal(t, "blankLine", NodeBlankLine.Name())
	assert.Equal(t, NodeBlankLine, Name2NodeType("blankLine"))
	assert.Equal(t, NodeType(-1), Name2NodeType("nope"))
}
