//go:build !javascript
// +build !javascript

package render

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma"
	chromahtml "github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	"github.com/pafthang/lbmd/ast"
	"golang.org/x/net/html"
)

// renderCodeBlock 进行代码块 HTML 渲染，开启语法高亮时使用 chroma 输出带 CSS 类名的 HTML。
func (r *HtmlRenderer) renderCodeBlock(node *ast.Node, entering bool) ast.WalkStatus {
	if !entering {
		return ast.WalkSkipChildren
	}

	r.Newline()
	language := strings.ToLower(node.Language)
	if r.Options.CodeSyntaxHighlight && "" != language {
		if highlighted, ok := r.highlight(language, node.Text); ok {
			r.Tag("pre", [][]string{{"class", r.Options.CodeSyntaxHighlightClassPrefix + "chroma"}}, false)
			r.Tag("code", [][]string{{"class", "language-" + language}}, false)
			r.Write(highlighted)
			r.WriteString("</code></pre>")
			r.Newline()
			return ast.WalkSkipChildren
		}
	}

	r.WriteString("<pre>")
	var attrs [][]string
	if "" != language {
		attrs = append(attrs, []string{"class", "language-" + language})
	}
	r.Tag("code", attrs, false)
	r.WriteString(html.EscapeString(node.Text))
	r.WriteString("</code></pre>")
	r.Newline()
	return ast.WalkSkipChildren
}

func (r *HtmlRenderer) highlight(language, code string) (ret []byte, ok bool) {
	lexer := lexers.Get(language)
	if nil == lexer {
		return
	}
	lexer = chroma.Coalesce(lexer)
	iterator, err := lexer.Tokenise(nil, code)
	if nil != err {
		tracer().Debugf("tokenise [%s] code failed: %s", language, err)
		return
	}

	formatter := chromahtml.New(chromahtml.PreventSurroundingPre(true), chromahtml.WithClasses(true),
		chromahtml.ClassPrefix(r.Options.CodeSyntaxHighlightClassPrefix))
	style := styles.Get(r.Options.CodeSyntaxHighlightStyleName)
	var b bytes.Buffer
	if err = formatter.Format(&b, style, iterator); nil != err {
		tracer().Debugf("highlight [%s] code failed: %s", language, err)
		return
	}
	return b.Bytes(), true
}
