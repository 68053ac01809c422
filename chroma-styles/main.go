package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chromahtml "github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/styles"
	"github.com/pafthang/lbmd/editor"
)

// 生成预览代码高亮使用的 Chroma 样式，类名前缀与预览渲染器一致。
func main() {
	dir := "chroma-styles"
	if 1 < len(os.Args) {
		dir = os.Args[1]
	}
	formatter := chromahtml.New(chromahtml.WithClasses(true), chromahtml.ClassPrefix(editor.HighlightClassPrefix))
	var b bytes.Buffer
	names := styles.Names()
	for _, name := range names {
		if err := formatter.WriteCSS(&b, styles.Get(name)); nil != err {
			fmt.Fprintf(os.Stderr, "write css [%s] failed: %s\n", name, err)
			os.Exit(1)
		}
		if err := os.WriteFile(filepath.Join(dir, name)+".css", b.Bytes(), 0644); nil != err {
			fmt.Fprintf(os.Stderr, "write css [%s] failed: %s\n", name, err)
			os.Exit(1)
		}
		b.Reset()
	}

	fmt.Println("[\"" + strings.Join(names, "\", \"") + "\"]")
}
