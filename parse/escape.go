package parse

import (
	"strings"

	"github.com/pafthang/lbmd/lex"
)

// EscapeRule 匹配反斜杠转义的 ASCII 标点符号。
var EscapeRule = Rule{
	Name:  "escape",
	Level: LevelInline,
	Start: func(src string) int {
		return strings.IndexByte(src, lex.ItemBackslash)
	},
	Tokenize: func(context *Context, src string) *lex.Token {
		if lex.ItemBackslash != src[0] || !lex.IsASCIIPunct(lex.Peek(src, 1)) {
			return nil
		}
		return &lex.Token{Type: lex.TokenEscape, Raw: src[:2], Text: src[1:2]}
	},
}

// BrRule 匹配硬换行：行尾的反斜杠或者两个以上空格。
var BrRule = Rule{
	Name:  "br",
	Level: LevelInline,
	Start: func(src string) int {
		i := strings.Index(src, "  \n")
		for 0 < i && lex.ItemSpace == src[i-1] {
			i--
		}
		return minIndex(strings.Index(src, "\\\n"), i)
	},
	Tokenize: func(context *Context, src string) *lex.Token {
		if strings.HasPrefix(src, "\\\n") {
			return &lex.Token{Type: lex.TokenBr, Raw: src[:2]}
		}

		spaces := 0
		for spaces < len(src) && lex.ItemSpace == src[spaces] {
			spaces++
		}
		if 2 > spaces || lex.ItemNewline != lex.Peek(src, spaces) {
			return nil
		}
		return &lex.Token{Type: lex.TokenBr, Raw: src[:spaces+1]}
	},
}
