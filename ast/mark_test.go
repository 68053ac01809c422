package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddMarkSubSupExclusive(t *testing.T) {
	n := &Node{Type: NodeText, Text: "x"}
	n.AddMark(&Mark{Type: MarkSuperscript})
	n.AddMark(&Mark{Type: MarkSubscript})
	assert.True(t, n.HasMark(MarkSubscript))
	assert.False(t, n.HasMark(MarkSuperscript))
	assert.Len(t, n.Marks, 1)

	n.AddMark(&Mark{Type: MarkSuperscript})
	assert.False(t, n.HasMark(MarkSubscript))
	assert.True(t, n.HasMark(MarkSuperscript))
	assert.Len(t, n.Marks, 1)
}

func TestAddMarkKeepsOrderAndReplaces(t *testing.T) {
	n := &Node{Type: NodeText, Text: "x"}
	n.AddMark(&Mark{Type: MarkBold})
	n.AddMark(&Mark{Type: MarkTextColor, Color: "red"})
	n.AddMark(&Mark{Type: MarkLink, Href: "https://example.com"})
	n.AddMark(&Mark{Type: MarkTextColor, Color: "#00ff00"})

	if assert.Len(t, n.Marks, 3) {
		assert.Equal(t, MarkLink, n.Marks[0].Type)
		assert.Equal(t, MarkTextColor, n.Marks[1].Type)
		assert.Equal(t, "#00ff00", n.Marks[1].Color)
		assert.Equal(t, MarkBold, n.Marks[2].Type)
	}
}

func TestRemoveMarkDoesNotTouchSharedMarks(t *testing.T) {
	shared := []*Mark{{Type: MarkBold}, {Type: MarkItalic}}
	a := &Node{Type: NodeText, Marks: shared}
	b := &Node{Type: NodeText, Marks: shared}
	a.RemoveMark(MarkBold)
	assert.Len(t, a.Marks, 1)
	assert.Len(t, b.Marks, 2)
	assert.Equal(t, MarkBold, b.Marks[0].Type)
}

func TestSameMarks(t *testing.T) {
	assert.True(t, SameMarks(nil, nil))
	assert.True(t, SameMarks([]*Mark{{Type: MarkTextSize, Size: 12}}, []*Mark{{Type: MarkTextSize, Size: 12}}))
	assert.False(t, SameMarks([]*Mark{{Type: MarkTextSize, Size: 12}}, []*Mark{{Type: MarkTextSize, Size: 14}}))
	assert.False(t, SameMarks([]*Mark{{Type: MarkBold}}, nil))
}
