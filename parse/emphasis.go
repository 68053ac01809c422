package parse

import (
	"strings"

	"github.com/pafthang/lbmd/lex"
)

// StrongRule 匹配加粗 **text** 和 __text__。
var StrongRule = Rule{
	Name:  "strong",
	Level: LevelInline,
	Start: func(src string) int {
		return minIndex(strings.Index(src, "**"), strings.Index(src, "__"))
	},
	Tokenize: func(context *Context, src string) *lex.Token {
		return context.parseDelimited(src, 2, lex.TokenStrong)
	},
}

// EmRule 匹配强调 *text* 和 _text_。
var EmRule = Rule{
	Name:  "em",
	Level: LevelInline,
	Start: func(src string) int {
		return strings.IndexAny(src, "*_")
	},
	Tokenize: func(context *Context, src string) *lex.Token {
		return context.parseDelimited(src, 1, lex.TokenEm)
	},
}

// DelRule 匹配删除线 ~~text~~。
var DelRule = Rule{
	Name:  "del",
	Level: LevelInline,
	Start: func(src string) int {
		return strings.Index(src, "~~")
	},
	Tokenize: func(context *Context, src string) *lex.Token {
		if !context.ParseOption.GFMStrikethrough {
			return nil
		}
		return context.parseDelimited(src, 2, lex.TokenDel)
	},
}

// parseDelimited 解析由 n 个相同定界符包裹的行级元素，闭合定界符取第一个满足条件的。
func (context *Context) parseDelimited(src string, n int, typ lex.TokenType) *lex.Token {
	marker := src[0]
	switch typ {
	case lex.TokenDel:
		if lex.ItemTilde != marker {
			return nil
		}
	default:
		if lex.ItemAsterisk != marker && lex.ItemUnderscore != marker {
			return nil
		}
	}

	// ***a*** 中多出的定界符属于内容
	opener := delimiterRun(src, 0)
	if n != opener && (3 != opener || lex.TokenDel == typ) {
		return nil
	}
	start := n
	if lex.IsWhitespace(lex.Peek(src, opener)) || lex.ItemEnd == lex.Peek(src, opener) {
		return nil
	}
	if lex.ItemUnderscore == marker && isWordChar(context.PrevChar()) {
		return nil
	}

	for i := opener; i < len(src); {
		switch token := src[i]; {
		case lex.ItemBackslash == token:
			i += 2
			continue
		case lex.ItemBacktick == token:
			i = skipCodeSpan(src, i)
			continue
		case marker != token:
			i++
			continue
		}

		closer := delimiterRun(src, i)
		if lex.IsWhitespace(src[i-1]) || (lex.ItemUnderscore == marker && isWordChar(lex.Peek(src, i+closer))) {
			i += closer
			continue
		}

		contentEnd := -1
		switch {
		case closer == n:
			contentEnd = i
		case 3 == closer && lex.TokenDel != typ:
			contentEnd = i + 3 - n
		}
		if 0 > contentEnd || contentEnd <= start {
			i += closer
			continue
		}

		content := src[start:contentEnd]
		if "" == strings.TrimSpace(content) {
			return nil
		}
		return &lex.Token{Type: typ, Raw: src[:i+closer], Text: content, Tokens: context.InlineTokens(content)}
	}
	return nil
}

func delimiterRun(src string, i int) (ret int) {
	for i+ret < len(src) && src[i] == src[i+ret] {
		ret++
	}
	return
}

func isWordChar(token byte) bool {
	return lex.IsASCIILetterNum(token) || 0x80 <= token
}
