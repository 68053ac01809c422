package parse

import (
	"strings"

	"github.com/pafthang/lbmd/lex"
)

// BlockquoteRule 匹配块引用（>）。>! 开头的行是剧透语法，不作为块引用。
var BlockquoteRule = Rule{
	Name:  "blockquote",
	Level: LevelBlock,
	Tokenize: func(context *Context, src string) *lex.Token {
		var body []string
		pos := 0
		lazy := false // 上一行是否是可以延续的段落行
		for pos < len(src) {
			line, length := lex.Line(src[pos:])
			if content, ok := blockquoteLine(line); ok {
				body = append(body, content)
				lazy = !lex.IsBlank(content) && !isFence(content)
				pos += length
				continue
			}

			// > 后面的段落允许懒惰延续
			if 0 == pos || !lazy || lex.IsBlank(line) || context.interrupts(src[pos:]) {
				break
			}
			body = append(body, line)
			pos += length
		}
		if 0 == pos {
			return nil
		}

		text := strings.Join(body, "\n")
		return &lex.Token{Type: lex.TokenBlockquote, Raw: src[:pos], Text: text, Tokens: context.BlockTokens(text)}
	},
	Interrupt: true,
	Opens: firstLine(func(line string) bool {
		_, ok := blockquoteLine(line)
		return ok
	}),
}

// blockquoteLine 去掉块引用行的 > 标记以及后面可选的一个空格。
func blockquoteLine(line string) (content string, ok bool) {
	if 3 < lex.Indent(line) {
		return
	}
	line = strings.TrimLeft(line, " ")
	if lex.ItemGreater != lex.Peek(line, 0) || lex.ItemBang == lex.Peek(line, 1) {
		return
	}

	line = line[1:]
	if token := lex.Peek(line, 0); lex.ItemSpace == token || lex.ItemTab == token {
		line = line[1:]
	}
	return line, true
}
