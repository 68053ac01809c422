package render

import (
	"strconv"
	"strings"

	"github.com/pafthang/lbmd/ast"
	"github.com/pafthang/lbmd/editor"
	"github.com/pafthang/lbmd/lex"
)

// openMark 是序列化时已经输出开始定界符的标记。
type openMark struct {
	mark  *ast.Mark
	close string
}

// inlineSerializer 将文本块的行级节点序列化为文本。
//
// 标记按栈维护：相邻文本节点共有的标记保持打开，其余标记按嵌套顺序关闭和打开。
// 加粗、斜体和删除线两端的空白移到定界符外面，否则再次解析时定界符不成立。
type inlineSerializer struct {
	strings.Builder
	flat  bool // 换行输出为空格
	table bool // 表格单元格
	stack []*openMark
}

func (s *inlineSerializer) serialize(nodes []*ast.Node) {
	for i, n := range nodes {
		if ast.NodeText != n.Type {
			s.atom(n)
			continue
		}

		var next *ast.Node
		if i+1 < len(nodes) {
			next = nodes[i+1]
		}
		if s.autolink(nodes, i) {
			continue
		}

		marks := stackMarks(n.Marks)
		text := n.Text
		if s.flat {
			text = strings.ReplaceAll(text, "\n", " ")
		}
		text = trimSpaceBeforeNewline(text)

		var lead, trail string
		if expels(marks) {
			body := strings.TrimLeft(text, " \t\n")
			lead, text = text[:len(text)-len(body)], body
			if "" == text {
				// 只有空白的文本不打开新的标记
				s.closeTo(s.keep(marks))
				s.escape(lead, firstByte(next))
				continue
			}
			if nil == next || ast.NodeText == next.Type {
				body = strings.TrimRight(text, " \t\n")
				trail, text = text[len(body):], body
			}
		}

		s.closeTo(s.keep(marks))
		if "" != lead {
			s.escape(lead, text[0])
		}
		s.open(nodes, i, marks)
		if nil != n.Mark(ast.MarkCode) {
			s.code(text)
		} else {
			nextByte := firstByte(next)
			if "" != trail {
				nextByte = trail[0]
			}
			s.escape(text, nextByte)
		}
		if "" != trail {
			var nextMarks []*ast.Mark
			if nil != next {
				nextMarks = stackMarks(next.Marks)
			}
			s.closeTo(s.keep(nextMarks))
			s.escape(trail, firstByte(next))
		}
	}
	s.closeTo(0)
}

// stackMarks 返回需要入栈的标记，行级代码按文本节点单独包裹，不入栈。
func stackMarks(marks []*ast.Mark) (ret []*ast.Mark) {
	for _, m := range marks {
		if ast.MarkCode != m.Type {
			ret = append(ret, m)
		}
	}
	return
}

func expels(marks []*ast.Mark) bool {
	for _, m := range marks {
		switch m.Type {
		case ast.MarkBold, ast.MarkItalic, ast.MarkStrike:
			return true
		}
	}
	return false
}

// keep 返回栈底开始连续包含在 marks 中的标记个数。
func (s *inlineSerializer) keep(marks []*ast.Mark) (ret int) {
	for ; ret < len(s.stack); ret++ {
		if !containsMark(marks, s.stack[ret].mark) {
			return
		}
	}
	return
}

func containsMark(marks []*ast.Mark, m *ast.Mark) bool {
	for _, mark := range marks {
		if mark.Equal(m) {
			return true
		}
	}
	return false
}

// closeTo 关闭栈中 keep 以上的标记。
func (s *inlineSerializer) closeTo(keep int) {
	for i := len(s.stack) - 1; i >= keep; i-- {
		s.WriteString(s.stack[i].close)
	}
	s.stack = s.stack[:keep]
}

// open 打开 marks 中还没有打开的标记。
func (s *inlineSerializer) open(nodes []*ast.Node, i int, marks []*ast.Mark) {
	for _, m := range marks {
		opened := false
		for _, om := range s.stack {
			if om.mark.Equal(m) {
				opened = true
				break
			}
		}
		if opened {
			continue
		}

		open, closer := s.delimiters(nodes, i, m)
		s.WriteString(open)
		s.stack = append(s.stack, &openMark{mark: m, close: closer})
	}
}

// delimiters 返回标记的开始和结束定界符。
func (s *inlineSerializer) delimiters(nodes []*ast.Node, i int, m *ast.Mark) (open, closer string) {
	switch m.Type {
	case ast.MarkBold:
		return "**", "**"
	case ast.MarkItalic:
		// _ 紧邻单词字符时不成立
		if isWordChar(s.lastByte()) || isWordChar(byteAfterRun(nodes, i, m)) {
			return "*", "*"
		}
		return "_", "_"
	case ast.MarkStrike:
		return "~~", "~~"
	case ast.MarkSubscript:
		return "~", "~"
	case ast.MarkSuperscript:
		return "^", "^"
	case ast.MarkSpoilerInline:
		text := runText(nodes, i, m)
		if strings.Contains(text, "!") || (0 == s.Len() && strings.HasPrefix(text, " ")) {
			return "||", "||"
		}
		return ">!", "!<"
	case ast.MarkTextColor:
		return "[color=" + m.Color + "]", "[/color]"
	case ast.MarkTextSize:
		return "[size=" + strconv.Itoa(m.Size) + "]", "[/size]"
	case ast.MarkLink:
		return "[", "](" + linkDest(m.Href, m.Title) + ")"
	}
	return "", ""
}

// autolink 将文本与地址相同的链接输出为 <href>。
func (s *inlineSerializer) autolink(nodes []*ast.Node, i int) bool {
	n := nodes[i]
	link := n.Mark(ast.MarkLink)
	if 1 != len(n.Marks) || nil == link || "" != link.Title || n.Text != link.Href || !isAutolinkURL(link.Href) {
		return false
	}
	if 0 < i && nodes[i-1].HasMark(ast.MarkLink) || i+1 < len(nodes) && nodes[i+1].HasMark(ast.MarkLink) {
		return false
	}

	s.closeTo(0)
	s.WriteString("<" + link.Href + ">")
	return true
}

func isAutolinkURL(href string) bool {
	colon := strings.IndexByte(href, lex.ItemColon)
	if 2 > colon || strings.ContainsAny(href, " \t\n<>") {
		return false
	}
	for i := 0; i < colon; i++ {
		if c := href[i]; !lex.IsASCIILetterNum(c) && '+' != c && '.' != c && '-' != c {
			return false
		}
	}
	return !lex.IsDigit(href[0])
}

// atom 输出非文本的行级节点，当前打开的标记保持打开。
func (s *inlineSerializer) atom(n *ast.Node) {
	switch n.Type {
	case ast.NodeHardBreak:
		if s.flat {
			s.WriteByte(lex.ItemSpace)
		} else {
			s.WriteString("\\\n")
		}
	case ast.NodeImage:
		s.WriteString("![" + escapeBrackets(n.Alt) + "](" + linkDest(n.Src, n.Title) + ")")
	case ast.NodeLbIndent:
		s.WriteString(editor.IndentMarker)
	default:
		tracer().Debugf("unexpected inline node [%s], skipped", n.Type)
	}
}

// code 输出行级代码，定界符比内容中最长的反引号串更长。
func (s *inlineSerializer) code(text string) {
	text = strings.ReplaceAll(text, "\n", " ")
	fence := strings.Repeat("`", longestRun(text, lex.ItemBacktick)+1)
	pad := strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") ||
		(strings.HasPrefix(text, " ") && strings.HasSuffix(text, " ") && "" != strings.TrimSpace(text))
	s.WriteString(fence)
	if pad {
		s.WriteByte(lex.ItemSpace)
	}
	s.WriteString(text)
	if pad {
		s.WriteByte(lex.ItemSpace)
	}
	s.WriteString(fence)
}

func (s *inlineSerializer) lastByte() byte {
	if 0 == s.Len() {
		return 0
	}
	str := s.String()
	return str[len(str)-1]
}

// escape 转义文本中会被解析为语法的字符，next 是文本之后的第一个字节。
func (s *inlineSerializer) escape(text string, next byte) {
	for i := 0; i < len(text); i++ {
		c := text[i]
		prev := s.lastByte()
		after := next
		if i+1 < len(text) {
			after = text[i+1]
		}
		lineStart := 0 == prev || lex.ItemNewline == prev

		switch c {
		case lex.ItemBackslash, lex.ItemAsterisk, lex.ItemBacktick, lex.ItemTilde, lex.ItemCaret,
			lex.ItemOpenBracket, lex.ItemCloseBracket, lex.ItemPipe:
			s.WriteByte(lex.ItemBackslash)
		case lex.ItemUnderscore:
			if !isWordChar(prev) || !isWordChar(after) {
				s.WriteByte(lex.ItemBackslash)
			}
		case lex.ItemBang:
			if lex.ItemGreater == prev || lex.ItemLess == after {
				s.WriteByte(lex.ItemBackslash)
			}
		case lex.ItemLess:
			if lex.IsASCIILetterNum(after) {
				s.WriteByte(lex.ItemBackslash)
			}
		case lex.ItemCrosshatch, lex.ItemGreater, lex.ItemHyphen, lex.ItemPlus:
			if lineStart {
				s.WriteByte(lex.ItemBackslash)
			}
		default:
			if lineStart && lex.IsDigit(c) {
				// 1. 和 1) 在行首会被解析为有序列表
				j := i
				for j < len(text) && lex.IsDigit(text[j]) {
					j++
				}
				if d := lex.Peek(text, j); lex.ItemDot == d || lex.ItemCloseParen == d {
					s.WriteString(text[i:j])
					s.WriteByte(lex.ItemBackslash)
					i = j - 1
					continue
				}
			}
		}
		s.WriteByte(c)
	}
}

func trimSpaceBeforeNewline(text string) string {
	if !strings.Contains(text, " \n") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines)-1; i++ {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.Join(lines, "\n")
}

// linkDest 输出链接地址和可选的标题。
func linkDest(href, title string) string {
	dest := href
	if "" == href || strings.ContainsAny(href, " \t\n<>") || !balancedParens(href) {
		dest = "<" + strings.NewReplacer("<", "\\<", ">", "\\>").Replace(href) + ">"
	}
	if "" != title {
		dest += " \"" + strings.NewReplacer("\\", "\\\\", "\"", "\\\"").Replace(title) + "\""
	}
	return dest
}

func balancedParens(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case lex.ItemOpenParen:
			depth++
		case lex.ItemCloseParen:
			if depth--; 0 > depth {
				return false
			}
		}
	}
	return 0 == depth
}

func escapeBrackets(s string) string {
	return strings.NewReplacer("\\", "\\\\", "[", "\\[", "]", "\\]").Replace(s)
}

// runText 返回从 i 开始连续带有标记 m 的文本。
func runText(nodes []*ast.Node, i int, m *ast.Mark) string {
	buf := &strings.Builder{}
	for ; i < len(nodes); i++ {
		n := nodes[i]
		if ast.NodeText == n.Type {
			if !containsMark(n.Marks, m) {
				break
			}
			buf.WriteString(n.Text)
		}
	}
	return buf.String()
}

// byteAfterRun 返回从 i 开始连续带有标记 m 的节点之后的第一个字节。
func byteAfterRun(nodes []*ast.Node, i int, m *ast.Mark) byte {
	for ; i < len(nodes); i++ {
		n := nodes[i]
		if ast.NodeText == n.Type && !containsMark(n.Marks, m) {
			return firstByte(n)
		}
	}
	return 0
}

func firstByte(n *ast.Node) byte {
	if nil == n {
		return 0
	}
	switch n.Type {
	case ast.NodeText:
		return lex.Peek(n.Text, 0)
	case ast.NodeImage:
		return lex.ItemBang
	case ast.NodeLbIndent:
		return lex.ItemOpenBracket
	}
	return 0
}

func isWordChar(c byte) bool {
	return lex.IsASCIILetterNum(c) || 0x80 <= c
}
