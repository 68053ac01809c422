package parse

import (
	"strconv"
	"strings"

	"github.com/pafthang/lbmd/lex"
)

// listMarker 描述了列表项标记。
type listMarker struct {
	ordered   bool
	bullet    byte // - * +，有序列表时为分隔符 . )
	start     int
	indent    int    // 标记前的缩进列数
	width     int    // 缩进加上标记本身的列数
	after     string // 标记之后的内容
	padding   int    // 内容相对行首的列数
	blankItem bool
}

// ListRule 匹配无序列表（- * +）和有序列表（1. 1)），列表项内容按块级解析，所以列表项中可以使用所有语法。
var ListRule = Rule{
	Name:  "list",
	Level: LevelBlock,
	Tokenize: func(context *Context, src string) *lex.Token {
		first, ok := parseListMarker(src)
		if !ok {
			return nil
		}

		ret := &lex.Token{Type: lex.TokenList, Ordered: first.ordered, Start: first.start}
		pos := 0
		blankBefore := false
		for pos < len(src) {
			marker, ok := parseListMarker(src[pos:])
			if !ok || !sameList(first, marker) {
				break
			}
			if blankBefore {
				// 列表项之间有空行
				ret.Loose = true
			}

			item, length, endsWithBlank := context.listItem(src[pos:], marker)
			ret.Tokens = append(ret.Tokens, item)
			pos += length
			blankBefore = endsWithBlank
		}
		if 0 == pos {
			return nil
		}
		if blankBefore {
			// 结尾的空行不属于列表
			pos -= trailingBlankLen(src[:pos])
		}

		for _, item := range ret.Tokens {
			if item.Loose {
				ret.Loose = true
			}
		}
		ret.Raw = src[:pos]
		return ret
	},
	Interrupt: true,
	Opens:     firstLine(listInterruptsParagraph),
}

// listItem 消费一个列表项，返回列表项单元、消费的长度以及结尾是否有空行。
func (context *Context) listItem(src string, marker listMarker) (ret *lex.Token, length int, endsWithBlank bool) {
	_, pos := lex.Line(src)
	// 标记所在的列替换为空格后再按内容列去掉缩进
	lines := []string{lex.TrimIndent(strings.Repeat(" ", marker.width)+marker.after, marker.padding)}
	if marker.blankItem {
		lines[0] = ""
	}

	blank := marker.blankItem
	for pos < len(src) {
		line, n := lex.Line(src[pos:])
		if lex.IsBlank(line) {
			if marker.blankItem && 1 == len(lines) {
				// 标记后为空的列表项最多只能以一个空行开头
				break
			}
			lines = append(lines, "")
			blank = true
			pos += n
			continue
		}

		if lex.Indent(line) >= marker.padding {
			lines = append(lines, lex.TrimIndent(line, marker.padding))
			blank = false
			pos += n
			continue
		}

		// 段落的懒惰延续行
		if blank || context.interrupts(src[pos:]) {
			break
		}
		if _, ok := parseListMarker(line); ok {
			break
		}
		lines = append(lines, strings.TrimLeft(line, " \t"))
		pos += n
	}

	// 去掉结尾的空行
	end := len(lines)
	for 0 < end && lex.IsBlank(lines[end-1]) {
		end--
	}
	endsWithBlank = end < len(lines)
	lines = lines[:end]

	ret = &lex.Token{Type: lex.TokenListItem, Raw: src[:pos]}
	if 0 < len(lines) && context.ParseOption.GFMTaskListItem {
		ret.Task, ret.Checked, lines[0] = parseTaskMarker(lines[0])
	}
	ret.Text = strings.Join(lines, "\n")
	ret.Tokens = context.BlockTokens(ret.Text)
	for i := 1; i < len(ret.Tokens)-1; i++ {
		if lex.TokenSpace == ret.Tokens[i].Type {
			ret.Loose = true
		}
	}
	return ret, pos, endsWithBlank
}

// parseTaskMarker 解析任务列表项标记 [ ] 和 [x]。
func parseTaskMarker(line string) (task, checked bool, rest string) {
	rest = line
	if 3 > len(line) || lex.ItemOpenBracket != line[0] || lex.ItemCloseBracket != line[2] {
		return
	}
	switch line[1] {
	case ' ':
	case 'x', 'X':
		checked = true
	default:
		return
	}
	if 3 < len(line) && lex.ItemSpace != line[3] && lex.ItemTab != line[3] {
		return false, false, line
	}
	task = true
	rest = strings.TrimLeft(line[3:], " \t")
	return
}

// parseListMarker 解析 src 第一行的列表项标记。
func parseListMarker(src string) (ret listMarker, ok bool) {
	line, _ := lex.Line(src)
	ret.indent = lex.Indent(line)
	if 3 < ret.indent {
		return
	}
	rest := strings.TrimLeft(line, " \t")
	if isThematicBreak(line) {
		return
	}

	markerLen := 0
	switch token := lex.Peek(rest, 0); token {
	case lex.ItemHyphen, lex.ItemAsterisk, lex.ItemPlus:
		ret.bullet = token
		markerLen = 1
	default:
		for markerLen < len(rest) && 9 > markerLen && lex.IsDigit(rest[markerLen]) {
			markerLen++
		}
		if 1 > markerLen {
			return
		}
		delim := lex.Peek(rest, markerLen)
		if lex.ItemDot != delim && lex.ItemCloseParen != delim {
			return
		}
		ret.start, _ = strconv.Atoi(rest[:markerLen])
		ret.ordered = true
		ret.bullet = delim
		markerLen++
	}

	after := rest[markerLen:]
	if "" != after && lex.ItemSpace != after[0] && lex.ItemTab != after[0] {
		return
	}

	width := ret.indent + markerLen
	ret.width, ret.after = width, after
	spaces := lex.Indent(strings.Repeat(" ", width)+after) - width
	switch {
	case lex.IsBlank(after):
		ret.blankItem = true
		ret.padding = width + 1
	case 4 < spaces:
		ret.padding = width + 1
	default:
		ret.padding = width + spaces
	}
	ok = true
	return
}

func sameList(a, b listMarker) bool {
	return a.ordered == b.ordered && a.bullet == b.bullet
}

// listInterruptsParagraph 判断 line 是否是能打断段落的列表项开始：标记后必须有内容。
func listInterruptsParagraph(line string) bool {
	marker, ok := parseListMarker(line)
	return ok && !marker.blankItem
}

// trailingBlankLen 返回 src 结尾空行的总长度。
func trailingBlankLen(src string) (ret int) {
	for end := len(src); 0 < end; {
		start := strings.LastIndexByte(src[:end-1], lex.ItemNewline) + 1
		if !lex.IsBlank(src[start:end]) {
			break
		}
		ret = len(src) - start
		end = start
	}
	return
}
