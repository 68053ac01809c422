package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLine(t *testing.T) {
	line, n := Line("ab\ncd")
	assert.Equal(t, "ab", line)
	assert.Equal(t, 3, n)

	line, n = Line("tail")
	assert.Equal(t, "tail", line)
	assert.Equal(t, 4, n)
}

func TestIndent(t *testing.T) {
	assert.Equal(t, 0, Indent("x"))
	assert.Equal(t, 3, Indent("   x"))
	assert.Equal(t, 4, Indent("\tx"))
	assert.Equal(t, 6, Indent("  \t  x"))
}

func TestTrimIndent(t *testing.T) {
	assert.Equal(t, "x", TrimIndent("   x", 3))
	assert.Equal(t, " x", TrimIndent("   x", 2))
	assert.Equal(t, "x", TrimIndent(" x", 4))
	assert.Equal(t, "  x", TrimIndent("\tx", 2))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(" \t "))
	assert.False(t, IsBlank("  a"))
}

func TestPunct(t *testing.T) {
	assert.True(t, IsASCIIPunct('!'))
	assert.True(t, IsASCIIPunct('~'))
	assert.False(t, IsASCIIPunct('a'))
	assert.Equal(t, ItemEnd, Peek("ab", 5))
}
