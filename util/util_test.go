//go:build !javascript
// +build !javascript

package util

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordCount(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.util")
	defer teardown()
	//
	runes, words := WordCount("hello  world\n")
	assert.Equal(t, 10, runes)
	assert.Equal(t, 2, words)

	runes, words = WordCount("你好 abc")
	assert.Equal(t, 5, runes)
	assert.Equal(t, 3, words)

	runes, words = WordCount(" \t ")
	assert.Equal(t, 0, runes)
	assert.Equal(t, 0, words)
}

func TestByteStr(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.util")
	defer teardown()
	//
	assert.Equal(t, "abc", BytesToStr([]byte("abc")))
	assert.Equal(t, "", BytesToStr(nil))
	assert.Equal(t, []byte("abc"), StrToBytes("abc"))
	assert.Empty(t, StrToBytes(""))
}

func TestRecoverPanic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.util")
	defer teardown()
	//
	run := func(v interface{}) (err error) {
		defer RecoverPanic(&err)
		panic(v)
	}
	err := run("boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PANIC RECOVERED: boom")

	err = run(errors.New("bad"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")

	err = run(42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown panic")
}
