//go:build javascript
// +build javascript

package render

import (
	"strings"

	"github.com/pafthang/lbmd/ast"
	"golang.org/x/net/html"
)

// renderCodeBlock 进行代码块 HTML 渲染，不实现语法高亮，由浏览器端的高亮脚本处理。
func (r *HtmlRenderer) renderCodeBlock(node *ast.Node, entering bool) ast.WalkStatus {
	if !entering {
		return ast.WalkSkipChildren
	}

	r.Newline()
	r.WriteString("<pre>")
	if language := strings.ToLower(node.Language); "" != language {
		r.WriteString("<code class=\"language-" + html.EscapeString(language) + "\">")
	} else {
		r.WriteString("<code>")
	}
	r.WriteString(html.EscapeString(node.Text))
	r.WriteString("</code></pre>")
	r.Newline()
	return ast.WalkSkipChildren
}
