package render

import (
	"strconv"
	"strings"

	"github.com/pafthang/lbmd/ast"
	"github.com/pafthang/lbmd/editor"
	"golang.org/x/net/html"
)

// HtmlRenderer 描述了预览 HTML 渲染器。
type HtmlRenderer struct {
	*BaseRenderer
}

// NewHtmlRenderer 创建一个预览 HTML 渲染器。
func NewHtmlRenderer(root *ast.Node, options *Options) *HtmlRenderer {
	ret := &HtmlRenderer{NewBaseRenderer(root, options)}
	ret.RendererFuncs[ast.NodeDocument] = ret.renderDocument
	ret.RendererFuncs[ast.NodeParagraph] = ret.renderParagraph
	ret.RendererFuncs[ast.NodeHeading] = ret.renderHeading
	ret.RendererFuncs[ast.NodeBulletList] = ret.renderList
	ret.RendererFuncs[ast.NodeOrderedList] = ret.renderList
	ret.RendererFuncs[ast.NodeListItem] = ret.renderListItem
	ret.RendererFuncs[ast.NodeBlockquote] = ret.renderBlockquote
	ret.RendererFuncs[ast.NodeCodeBlock] = ret.renderCodeBlock
	ret.RendererFuncs[ast.NodeTable] = ret.renderTable
	ret.RendererFuncs[ast.NodeTableRow] = ret.renderTableRow
	ret.RendererFuncs[ast.NodeTableCell] = ret.renderTableCell
	ret.RendererFuncs[ast.NodeSpoilerBlock] = ret.renderSpoilerBlock
	ret.RendererFuncs[ast.NodeAlignedBlock] = ret.renderAlignedBlock
	ret.RendererFuncs[ast.NodeBlankLine] = ret.renderBlankLine
	ret.RendererFuncs[ast.NodeHorizontalRule] = ret.renderHorizontalRule
	ret.RendererFuncs[ast.NodeText] = ret.renderText
	ret.RendererFuncs[ast.NodeHardBreak] = ret.renderHardBreak
	ret.RendererFuncs[ast.NodeImage] = ret.renderImage
	ret.RendererFuncs[ast.NodeLbIndent] = ret.renderLbIndent
	return ret
}

func (r *HtmlRenderer) renderDocument(node *ast.Node, entering bool) ast.WalkStatus {
	return ast.WalkContinue
}

func (r *HtmlRenderer) renderParagraph(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.Newline()
		r.Tag("p", nil, false)
	} else {
		r.Tag("/p", nil, false)
		r.Newline()
	}
	return ast.WalkContinue
}

func (r *HtmlRenderer) renderHeading(node *ast.Node, entering bool) ast.WalkStatus {
	tag := "h" + strconv.Itoa(min(max(node.Level, 1), 6))
	if entering {
		r.Newline()
		r.Tag(tag, nil, false)
	} else {
		r.Tag("/"+tag, nil, false)
		r.Newline()
	}
	return ast.WalkContinue
}

func (r *HtmlRenderer) renderList(node *ast.Node, entering bool) ast.WalkStatus {
	tag := "ul"
	if ast.NodeOrderedList == node.Type {
		tag = "ol"
	}
	if entering {
		r.Newline()
		var attrs [][]string
		if ast.NodeOrderedList == node.Type && 1 != node.Start {
			attrs = append(attrs, []string{"start", strconv.Itoa(node.Start)})
		}
		r.Tag(tag, attrs, false)
		r.Newline()
	} else {
		r.Newline()
		r.Tag("/"+tag, nil, false)
		r.Newline()
	}
	return ast.WalkContinue
}

func (r *HtmlRenderer) renderListItem(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		if !node.Task {
			r.Tag("li", nil, false)
			return ast.WalkContinue
		}

		r.Tag("li", [][]string{{"class", "task-list-item"}}, false)
		attrs := [][]string{{"type", "checkbox"}, {"disabled", ""}}
		if node.Checked {
			attrs = append(attrs, []string{"checked", ""})
		}
		r.Tag("input", attrs, true)
		r.WriteByte(' ')
	} else {
		r.Tag("/li", nil, false)
		r.Newline()
	}
	return ast.WalkContinue
}

func (r *HtmlRenderer) renderBlockquote(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.Newline()
		r.Tag("blockquote", nil, false)
		r.Newline()
	} else {
		r.Newline()
		r.Tag("/blockquote", nil, false)
		r.Newline()
	}
	return ast.WalkContinue
}

func (r *HtmlRenderer) renderSpoilerBlock(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.Newline()
		r.Tag("div", [][]string{{"class", editor.SpoilerClass}}, false)
		r.Newline()
	} else {
		r.Newline()
		r.Tag("/div", nil, false)
		r.Newline()
	}
	return ast.WalkContinue
}

func (r *HtmlRenderer) renderAlignedBlock(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		align := node.Align
		if "right" != align {
			align = "center"
		}
		r.Newline()
		r.Tag("div", [][]string{{"style", "text-align: " + align}}, false)
		r.Newline()
	} else {
		r.Newline()
		r.Tag("/div", nil, false)
		r.Newline()
	}
	return ast.WalkContinue
}

func (r *HtmlRenderer) renderBlankLine(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.Newline()
		r.Tag("p", [][]string{{"class", "blank-line"}}, false)
		r.Tag("br", nil, true)
		r.Tag("/p", nil, false)
		r.Newline()
	}
	return ast.WalkSkipChildren
}

func (r *HtmlRenderer) renderHorizontalRule(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.Newline()
		r.Tag("hr", nil, true)
		r.Newline()
	}
	return ast.WalkSkipChildren
}

func (r *HtmlRenderer) renderTable(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.Newline()
		r.Tag("table", nil, false)
		r.Newline()
	} else {
		if nil != node.FirstChild && nil != node.FirstChild.Next {
			r.Tag("/tbody", nil, false)
			r.Newline()
		}
		r.Tag("/table", nil, false)
		r.Newline()
	}
	return ast.WalkContinue
}

func (r *HtmlRenderer) renderTableRow(node *ast.Node, entering bool) ast.WalkStatus {
	header := nil == node.Previous
	if entering {
		if header {
			r.Tag("thead", nil, false)
			r.Newline()
		} else if nil == node.Previous.Previous {
			r.Tag("tbody", nil, false)
			r.Newline()
		}
		r.Tag("tr", nil, false)
		r.Newline()
	} else {
		r.Tag("/tr", nil, false)
		r.Newline()
		if header {
			r.Tag("/thead", nil, false)
			r.Newline()
		}
	}
	return ast.WalkContinue
}

func (r *HtmlRenderer) renderTableCell(node *ast.Node, entering bool) ast.WalkStatus {
	tag := "td"
	if node.Header {
		tag = "th"
	}
	if entering {
		var attrs [][]string
		if align := r.cellAlign(node); "" != align {
			attrs = append(attrs, []string{"align", align})
		}
		r.Tag(tag, attrs, false)
	} else {
		r.Tag("/"+tag, nil, false)
		r.Newline()
	}
	return ast.WalkContinue
}

func (r *HtmlRenderer) cellAlign(cell *ast.Node) string {
	i := 0
	for prev := cell.Previous; nil != prev; prev = prev.Previous {
		i++
	}
	if row := cell.Parent; nil != row && nil != row.Parent && i < len(row.Parent.Aligns) {
		return row.Parent.Aligns[i]
	}
	return ""
}

func (r *HtmlRenderer) renderText(node *ast.Node, entering bool) ast.WalkStatus {
	if !entering {
		return ast.WalkContinue
	}

	var closers []string
	for _, m := range node.Marks {
		tag, attrs := r.markTag(m)
		if "" == tag {
			continue
		}
		r.Tag(tag, attrs, false)
		closers = append(closers, "/"+tag)
	}
	r.WriteString(html.EscapeString(node.Text))
	for i := len(closers) - 1; i >= 0; i-- {
		r.Tag(closers[i], nil, false)
	}
	return ast.WalkContinue
}

// markTag 返回标记对应的标签和属性。颜色不在允许范围内时不输出样式，文字大小限制在配置的范围内。
func (r *HtmlRenderer) markTag(m *ast.Mark) (tag string, attrs [][]string) {
	switch m.Type {
	case ast.MarkLink:
		if r.allowURL(m.Href, false) {
			attrs = append(attrs, []string{"href", m.Href})
		}
		if "" != m.Title {
			attrs = append(attrs, []string{"title", m.Title})
		}
		return "a", attrs
	case ast.MarkSpoilerInline:
		return "span", [][]string{{"class", editor.SpoilerClass}}
	case ast.MarkTextColor:
		if nil != r.Options.TextColorPattern && !r.Options.TextColorPattern.MatchString(m.Color) {
			tracer().Debugf("text color [%s] is not allowed", m.Color)
			return "span", nil
		}
		return "span", [][]string{{"style", "color: " + m.Color}}
	case ast.MarkTextSize:
		size := m.Size
		if 0 < r.Options.TextSizeMin {
			size = max(size, r.Options.TextSizeMin)
		}
		if 0 < r.Options.TextSizeMax {
			size = min(size, r.Options.TextSizeMax)
		}
		return "span", [][]string{{"style", "font-size: " + strconv.Itoa(size) + "px"}}
	case ast.MarkBold:
		return "strong", nil
	case ast.MarkItalic:
		return "em", nil
	case ast.MarkStrike:
		return "del", nil
	case ast.MarkSubscript:
		return "sub", nil
	case ast.MarkSuperscript:
		return "sup", nil
	case ast.MarkCode:
		return "code", nil
	}
	return "", nil
}

func (r *HtmlRenderer) renderHardBreak(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.Tag("br", nil, true)
		r.Newline()
	}
	return ast.WalkSkipChildren
}

func (r *HtmlRenderer) renderImage(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		var attrs [][]string
		if r.allowURL(node.Src, true) {
			attrs = append(attrs, []string{"src", node.Src})
		}
		attrs = append(attrs, []string{"alt", node.Alt})
		if "" != node.Title {
			attrs = append(attrs, []string{"title", node.Title})
		}
		r.Tag("img", attrs, true)
	}
	return ast.WalkSkipChildren
}

func (r *HtmlRenderer) renderLbIndent(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.WriteString("&nbsp;")
	}
	return ast.WalkSkipChildren
}

// allowURL 判断地址的协议是否允许，图片额外允许 data:image/ 地址。判断前和浏览器一样去掉空白和控制字符。
func (r *HtmlRenderer) allowURL(u string, image bool) bool {
	u = strings.Map(func(c rune) rune {
		if ' ' >= c {
			return -1
		}
		return c
	}, u)
	colon := strings.IndexByte(u, ':')
	if 0 > colon || strings.ContainsAny(u[:colon], "/?#") {
		return true
	}

	scheme := u[:colon]
	if image && strings.EqualFold("data", scheme) {
		return strings.HasPrefix(strings.ToLower(u), "data:image/")
	}
	if nil != r.Options.URLSchemePattern && !r.Options.URLSchemePattern.MatchString(scheme) {
		tracer().Debugf("url scheme [%s] is not allowed", scheme)
		return false
	}
	return true
}

// Tag 输出 HTML 标签，属性值会被转义。
func (r *HtmlRenderer) Tag(name string, attrs [][]string, selfclosing bool) {
	r.WriteString("<")
	r.WriteString(name)
	for _, attr := range attrs {
		r.WriteString(" " + attr[0] + "=\"" + html.EscapeString(attr[1]) + "\"")
	}
	if selfclosing {
		r.WriteString(" /")
	}
	r.WriteString(">")
}
