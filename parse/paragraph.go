package parse

import (
	"strings"

	"github.com/pafthang/lbmd/lex"
)

// space 匹配一个或多个连续空行。
func space(src string) *lex.Token {
	pos := 0
	for pos < len(src) {
		line, length := lex.Line(src[pos:])
		if !lex.IsBlank(line) {
			break
		}
		pos += length
	}
	if 0 == pos {
		return nil
	}
	return &lex.Token{Type: lex.TokenSpace, Raw: src[:pos]}
}

// paragraph 从 src 开头消费一个段落：直到空行、输入结束或者能打断段落的块开始。
func (context *Context) paragraph(src string) (ret *lex.Token) {
	pos := context.paragraphEnd(src)
	ret = &lex.Token{Type: lex.TokenParagraph, Raw: src[:pos], Text: paragraphText(src[:pos])}
	context.Defer(ret)
	return
}

// paragraphEnd 返回从 src 开头开始的段落的结束位置。
func (context *Context) paragraphEnd(src string) (pos int) {
	_, pos = lex.Line(src)
	for pos < len(src) {
		line, length := lex.Line(src[pos:])
		if lex.IsBlank(line) || context.interrupts(src[pos:]) {
			break
		}
		pos += length
	}
	return
}

// paragraphText 去掉段落每行的首尾空白，但保留用于硬换行的行尾空格。
func paragraphText(raw string) string {
	lines := lex.Lines(lex.TrimRightNewlines(raw))
	for i, line := range lines {
		line = strings.TrimLeft(line, " \t")
		if i == len(lines)-1 {
			line = strings.TrimRight(line, " \t")
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
