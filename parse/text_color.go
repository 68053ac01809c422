package parse

import (
	"strconv"
	"strings"

	"github.com/pafthang/lbmd/lex"
)

// TextColorRule 匹配 [color=X]text[/color]，X 原样保留。
var TextColorRule = Rule{
	Name:  "textColor",
	Level: LevelInline,
	Start: func(src string) int {
		return strings.Index(src, "[color=")
	},
	Tokenize: func(context *Context, src string) *lex.Token {
		attr, content, length := matchBracketTag(src, "color")
		if 1 > length || strings.ContainsAny(attr, "\n") {
			return nil
		}
		return &lex.Token{Type: lex.TokenTextColor, Raw: src[:length], Text: content, Color: attr, Tokens: context.InlineTokens(content)}
	},
}

// TextSizeRule 匹配 [size=N]text[/size]，N 为十进制整数。
var TextSizeRule = Rule{
	Name:  "textSize",
	Level: LevelInline,
	Start: func(src string) int {
		return strings.Index(src, "[size=")
	},
	Tokenize: func(context *Context, src string) *lex.Token {
		attr, content, length := matchBracketTag(src, "size")
		if 1 > length {
			return nil
		}
		for i := 0; i < len(attr); i++ {
			if !lex.IsDigit(attr[i]) {
				return nil
			}
		}
		size, err := strconv.Atoi(attr)
		if nil != err {
			// 超出 int 范围
			return nil
		}
		return &lex.Token{Type: lex.TokenTextSize, Raw: src[:length], Text: content, Size: size, Tokens: context.InlineTokens(content)}
	},
}

// matchBracketTag 在 src 开头匹配 [name=attr]content[/name]，content 取到第一个闭合标签为止。
func matchBracketTag(src, name string) (attr, content string, length int) {
	open := "[" + name + "="
	if !strings.HasPrefix(src, open) {
		return
	}
	attrEnd := strings.IndexByte(src[len(open):], lex.ItemCloseBracket)
	if 1 > attrEnd {
		return
	}
	attr = src[len(open) : len(open)+attrEnd]
	contentStart := len(open) + attrEnd + 1

	closer := "[/" + name + "]"
	contentEnd := strings.Index(src[contentStart:], closer)
	if 1 > contentEnd { // 内容为空时不匹配，保留为文本
		return "", "", 0
	}
	content = src[contentStart : contentStart+contentEnd]
	if strings.Contains(content, "\n\n") {
		return "", "", 0
	}
	length = contentStart + contentEnd + len(closer)
	return
}
