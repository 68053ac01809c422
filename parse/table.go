package parse

import (
	"strings"

	"github.com/pafthang/lbmd/lex"
)

// TableRule 匹配 GFM 表格：表头行、分隔行以及后续的数据行。
var TableRule = Rule{
	Name:  "table",
	Level: LevelBlock,
	Tokenize: func(context *Context, src string) *lex.Token {
		if !context.ParseOption.GFMTable {
			return nil
		}

		headLine, pos := lex.Line(src)
		if 3 < lex.Indent(headLine) || 0 > strings.IndexByte(headLine, lex.ItemPipe) {
			return nil
		}
		delimLine, length := lex.Line(src[pos:])
		aligns := parseTableAligns(delimLine)
		if nil == aligns {
			return nil
		}
		head := splitTableRow(headLine)
		if len(head) != len(aligns) {
			return nil
		}
		pos += length

		ret := &lex.Token{Type: lex.TokenTable, Aligns: aligns}
		ret.Tokens = context.tableCells(head, len(aligns))
		for pos < len(src) {
			line, n := lex.Line(src[pos:])
			if lex.IsBlank(line) || context.interrupts(src[pos:]) {
				break
			}
			ret.Rows = append(ret.Rows, context.tableCells(splitTableRow(line), len(aligns)))
			pos += n
		}
		ret.Raw = src[:pos]
		return ret
	},
}

// tableCells 将单元格内容补齐或截断为 cols 列，每个单元格的内容推迟进行行级解析。
func (context *Context) tableCells(cells []string, cols int) (ret []*lex.Token) {
	for i := 0; i < cols; i++ {
		cell := &lex.Token{Type: lex.TokenTableCell}
		if i < len(cells) {
			cell.Raw, cell.Text = cells[i], strings.TrimSpace(cells[i])
		}
		context.Defer(cell)
		ret = append(ret, cell)
	}
	return
}

// parseTableAligns 解析分隔行，返回每列的对齐方式（left、center、right 或者空），不是分隔行时返回 nil。
func parseTableAligns(line string) (ret []string) {
	if 3 < lex.Indent(line) || 0 > strings.IndexByte(line, lex.ItemHyphen) {
		return nil
	}
	cells := splitTableRow(line)
	ret = make([]string, 0, len(cells))
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")
		dashes := strings.Trim(cell, ":")
		if "" == dashes || "" != strings.Trim(dashes, "-") {
			return nil
		}

		switch {
		case left && right:
			ret = append(ret, "center")
		case left:
			ret = append(ret, "left")
		case right:
			ret = append(ret, "right")
		default:
			ret = append(ret, "")
		}
	}
	return
}

// splitTableRow 按未转义的 | 切分表格行，去掉首尾的可选 |。
func splitTableRow(line string) (ret []string) {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, "\\|") {
		line = line[:len(line)-1]
	}

	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case lex.ItemBackslash:
			i++
		case lex.ItemPipe:
			ret = append(ret, line[start:i])
			start = i + 1
		}
	}
	return append(ret, line[start:])
}
