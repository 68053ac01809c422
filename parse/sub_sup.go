package parse

import (
	"strings"

	"github.com/pafthang/lbmd/lex"
)

// SubRule 匹配下标 ~text~，内容中不能有 ~，~~ 留给删除线。
var SubRule = Rule{
	Name:  "sub",
	Level: LevelInline,
	Start: func(src string) int {
		return strings.IndexByte(src, lex.ItemTilde)
	},
	Tokenize: func(context *Context, src string) *lex.Token {
		return context.parseSubSup(src, lex.ItemTilde, lex.TokenSub)
	},
}

// SupRule 匹配上标 ^text^，内容中不能有 ^。
var SupRule = Rule{
	Name:  "sup",
	Level: LevelInline,
	Start: func(src string) int {
		return strings.IndexByte(src, lex.ItemCaret)
	},
	Tokenize: func(context *Context, src string) *lex.Token {
		return context.parseSubSup(src, lex.ItemCaret, lex.TokenSup)
	},
}

func (context *Context) parseSubSup(src string, marker byte, typ lex.TokenType) *lex.Token {
	if 3 > len(src) || marker != src[0] || marker == src[1] {
		return nil
	}

	end := strings.IndexByte(src[1:], marker)
	if 1 > end {
		return nil
	}
	end++
	if marker == lex.Peek(src, end+1) {
		// ~a~~ 这样的情况交给删除线或者文本
		return nil
	}

	content := src[1:end]
	if strings.Contains(content, "\n\n") || "" == strings.TrimSpace(content) {
		return nil
	}
	return &lex.Token{Type: typ, Raw: src[:end+1], Text: content, Tokens: context.InlineTokens(content)}
}
