package render

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/pafthang/lbmd/ast"
	"github.com/pafthang/lbmd/editor"
	"github.com/pafthang/lbmd/lex"
)

// FormatRenderer 描述了格式化渲染器，输出的文本再次解析后得到相同的文档树。
//
// 块之间使用一个空行分隔，输出结尾没有换行。
type FormatRenderer struct {
	*BaseRenderer
}

// NewFormatRenderer 创建一个格式化渲染器。
func NewFormatRenderer(root *ast.Node, options *Options) *FormatRenderer {
	ret := &FormatRenderer{NewBaseRenderer(root, options)}
	ret.RendererFuncs[ast.NodeDocument] = ret.renderDocument
	ret.RendererFuncs[ast.NodeParagraph] = ret.renderParagraph
	ret.RendererFuncs[ast.NodeHeading] = ret.renderHeading
	ret.RendererFuncs[ast.NodeBulletList] = ret.renderList
	ret.RendererFuncs[ast.NodeOrderedList] = ret.renderList
	ret.RendererFuncs[ast.NodeListItem] = ret.renderListItem
	ret.RendererFuncs[ast.NodeBlockquote] = ret.renderBlockquote
	ret.RendererFuncs[ast.NodeCodeBlock] = ret.renderCodeBlock
	ret.RendererFuncs[ast.NodeTable] = ret.renderTable
	ret.RendererFuncs[ast.NodeTableRow] = ret.renderInlineOnly
	ret.RendererFuncs[ast.NodeTableCell] = ret.renderInlineOnly
	ret.RendererFuncs[ast.NodeSpoilerBlock] = ret.renderSpoilerBlock
	ret.RendererFuncs[ast.NodeAlignedBlock] = ret.renderAlignedBlock
	ret.RendererFuncs[ast.NodeBlankLine] = ret.renderBlankLine
	ret.RendererFuncs[ast.NodeHorizontalRule] = ret.renderHorizontalRule
	ret.RendererFuncs[ast.NodeText] = ret.renderInline
	ret.RendererFuncs[ast.NodeHardBreak] = ret.renderInline
	ret.RendererFuncs[ast.NodeImage] = ret.renderInline
	ret.RendererFuncs[ast.NodeLbIndent] = ret.renderInline
	return ret
}

func (r *FormatRenderer) renderDocument(node *ast.Node, entering bool) ast.WalkStatus {
	return ast.WalkContinue
}

// blockSeparator 在 node 前输出块分隔符：紧凑列表中为换行，其他情况为一个空行。
func (r *FormatRenderer) blockSeparator(node *ast.Node) {
	prev := node.Previous
	if nil == prev {
		return
	}

	parent := node.Parent
	switch {
	case ast.NodeListItem == node.Type && parent.Tight:
		r.WriteByte(lex.ItemNewline)
	case ast.NodeListItem == parent.Type && nil != parent.Parent && parent.Parent.Tight && interruptsParagraph(node):
		// 紧凑列表项中能打断段落的块直接换行，其他块仍然需要空行分隔，否则会被合并
		r.WriteByte(lex.ItemNewline)
	default:
		r.WriteString("\n\n")
	}
}

// interruptsParagraph 判断 node 渲染后的首行是否能打断前面的段落。
func interruptsParagraph(node *ast.Node) bool {
	switch node.Type {
	case ast.NodeBulletList, ast.NodeOrderedList, ast.NodeCodeBlock, ast.NodeBlockquote, ast.NodeHeading,
		ast.NodeHorizontalRule, ast.NodeSpoilerBlock, ast.NodeAlignedBlock, ast.NodeBlankLine:
		return true
	}
	return false
}

func (r *FormatRenderer) renderParagraph(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.blockSeparator(node)
		r.WriteString(r.inlines(node, false))
	}
	return ast.WalkSkipChildren
}

func (r *FormatRenderer) renderHeading(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.blockSeparator(node)
		level := min(max(node.Level, 1), 6)
		r.WriteString(strings.Repeat("#", level))
		if content := r.inlines(node, true); "" != content {
			r.WriteByte(lex.ItemSpace)
			r.WriteString(content)
		}
	}
	return ast.WalkSkipChildren
}

func (r *FormatRenderer) renderCodeBlock(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.blockSeparator(node)
		fence := strings.Repeat("`", max(3, longestRun(node.Text, lex.ItemBacktick)+1))
		r.WriteString(fence + node.Language + "\n")
		if "" != node.Text {
			r.WriteString(node.Text + "\n")
		}
		r.WriteString(fence)
	}
	return ast.WalkSkipChildren
}

func (r *FormatRenderer) renderHorizontalRule(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.blockSeparator(node)
		if ast.NodeListItem == node.Parent.Type && nil == node.Previous {
			// - --- 会被解析为分隔线
			r.WriteString("***")
		} else {
			r.WriteString("---")
		}
	}
	return ast.WalkSkipChildren
}

// renderBlankLine 输出两行空行标记，连续空行在 Markdown 中会被压缩，解析时一到两行标记作为一个空行。
func (r *FormatRenderer) renderBlankLine(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.blockSeparator(node)
		r.WriteString(editor.BlankLine + "\n" + editor.BlankLine)
	}
	return ast.WalkSkipChildren
}

func (r *FormatRenderer) renderBlockquote(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.blockSeparator(node)
		r.PushWriter()
		return ast.WalkContinue
	}

	body := r.PopWriter()
	r.Write(prefixLines(body, "> ", ">", "> "))
	return ast.WalkContinue
}

func (r *FormatRenderer) renderSpoilerBlock(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.blockSeparator(node)
		r.PushWriter()
		return ast.WalkContinue
	}

	// 首行必须是 ">! "，否则会被解析为以行级剧透开头的段落
	body := r.PopWriter()
	r.Write(prefixLines(body, ">! ", ">!", ">! "))
	return ast.WalkContinue
}

func (r *FormatRenderer) renderAlignedBlock(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.blockSeparator(node)
		r.PushWriter()
		return ast.WalkContinue
	}

	align := node.Align
	if "right" != align {
		align = "center"
	}
	body := r.PopWriter()
	r.WriteString("[" + align + "]")
	if 0 < len(bytes.TrimSpace(body)) {
		r.WriteByte(lex.ItemNewline)
		r.Write(body)
		r.WriteByte(lex.ItemNewline)
	}
	r.WriteString("[/" + align + "]")
	return ast.WalkContinue
}

func (r *FormatRenderer) renderList(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.blockSeparator(node)
	}
	return ast.WalkContinue
}

func (r *FormatRenderer) renderListItem(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		r.blockSeparator(node)
		r.PushWriter()
		return ast.WalkContinue
	}

	marker := listItemMarker(node)
	body := r.PopWriter()
	first := marker
	if node.Task {
		if node.Checked {
			first += "[x] "
		} else {
			first += "[ ] "
		}
	}
	indent := strings.Repeat(" ", len(marker))
	body = prefixLines(body, first, "", indent)
	if 0 < len(body) && lex.ItemSpace == body[len(body)-1] {
		// 空列表项不输出结尾空格
		body = bytes.TrimRight(body, " ")
	}
	r.Write(body)
	return ast.WalkContinue
}

// listItemMarker 返回列表项标记。同级相邻的同类列表交替使用不同的标记符，否则再次解析时会合并为一个列表。
func listItemMarker(item *ast.Node) string {
	list := item.Parent
	alternate := false
	for prev := list.Previous; nil != prev && list.Type == prev.Type; prev = prev.Previous {
		alternate = !alternate
	}

	if ast.NodeOrderedList == list.Type {
		num := list.Start
		for prev := item.Previous; nil != prev; prev = prev.Previous {
			num++
		}
		if alternate {
			return strconv.Itoa(num) + ") "
		}
		return strconv.Itoa(num) + ". "
	}
	if alternate {
		return "* "
	}
	return "- "
}

func (r *FormatRenderer) renderTable(node *ast.Node, entering bool) ast.WalkStatus {
	if !entering {
		return ast.WalkContinue
	}
	r.blockSeparator(node)

	var rows [][]string
	cols := len(node.Aligns)
	for row := node.FirstChild; nil != row; row = row.Next {
		var cells []string
		for cell := row.FirstChild; nil != cell; cell = cell.Next {
			cells = append(cells, r.inlines(cell, true))
		}
		cols = max(cols, len(cells))
		rows = append(rows, cells)
	}
	if 1 > len(rows) || 1 > cols {
		return ast.WalkSkipChildren
	}

	writeRow := func(cells []string) {
		r.WriteByte(lex.ItemPipe)
		for i := 0; i < cols; i++ {
			r.WriteByte(lex.ItemSpace)
			if i < len(cells) {
				r.WriteString(cells[i])
			}
			r.WriteString(" |")
		}
	}

	writeRow(rows[0])
	r.WriteByte(lex.ItemNewline)
	r.WriteByte(lex.ItemPipe)
	for i := 0; i < cols; i++ {
		align := ""
		if i < len(node.Aligns) {
			align = node.Aligns[i]
		}
		switch align {
		case "left":
			r.WriteString(" :--- |")
		case "center":
			r.WriteString(" :---: |")
		case "right":
			r.WriteString(" ---: |")
		default:
			r.WriteString(" --- |")
		}
	}
	for _, row := range rows[1:] {
		r.WriteByte(lex.ItemNewline)
		writeRow(row)
	}
	return ast.WalkSkipChildren
}

// renderInlineOnly 渲染单独的表格行或者单元格。
func (r *FormatRenderer) renderInlineOnly(node *ast.Node, entering bool) ast.WalkStatus {
	if !entering {
		return ast.WalkContinue
	}
	if ast.NodeTableCell == node.Type {
		r.WriteString(r.inlines(node, true))
		return ast.WalkSkipChildren
	}
	if nil != node.Previous {
		r.WriteByte(lex.ItemNewline)
	}
	r.WriteByte(lex.ItemPipe)
	for cell := node.FirstChild; nil != cell; cell = cell.Next {
		r.WriteString(" " + r.inlines(cell, true) + " |")
	}
	return ast.WalkSkipChildren
}

// renderInline 渲染不在文本块中的行级节点。
func (r *FormatRenderer) renderInline(node *ast.Node, entering bool) ast.WalkStatus {
	if entering {
		s := &inlineSerializer{}
		s.serialize([]*ast.Node{node})
		r.WriteString(s.String())
	}
	return ast.WalkSkipChildren
}

// inlines 序列化 node 的行级子节点，flat 为 true 时换行输出为空格（标题和表格单元格中不能换行）。
func (r *FormatRenderer) inlines(node *ast.Node, flat bool) string {
	s := &inlineSerializer{flat: flat, table: ast.NodeTableCell == node.Type}
	s.serialize(node.Children())
	return s.String()
}

// prefixLines 为 body 的每一行加上前缀：首行使用 first，后续非空行使用 rest，空行使用 empty。
func prefixLines(body []byte, first, empty, rest string) []byte {
	lines := bytes.Split(body, []byte("\n"))
	buf := &bytes.Buffer{}
	for i, line := range lines {
		if 0 < i {
			buf.WriteByte(lex.ItemNewline)
		}
		switch {
		case 0 == i:
			buf.WriteString(first)
		case 0 == len(line):
			buf.WriteString(empty)
			continue
		default:
			buf.WriteString(rest)
		}
		buf.Write(line)
	}
	return buf.Bytes()
}

func longestRun(s string, c byte) (ret int) {
	run := 0
	for i := 0; i < len(s); i++ {
		if c == s[i] {
			run++
			ret = max(ret, run)
		} else {
			run = 0
		}
	}
	return
}
