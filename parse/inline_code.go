package parse

import (
	"strings"

	"github.com/pafthang/lbmd/lex"
)

// CodeSpanRule 匹配行级代码。没有闭合的反引号串整体作为文本。
var CodeSpanRule = Rule{
	Name:  "codespan",
	Level: LevelInline,
	Start: func(src string) int {
		return strings.IndexByte(src, lex.ItemBacktick)
	},
	Tokenize: func(context *Context, src string) *lex.Token {
		if lex.ItemBacktick != src[0] {
			return nil
		}
		n := backtickRun(src, 0)
		end := skipCodeSpan(src, 0)
		if n == end {
			return &lex.Token{Type: lex.TokenText, Raw: src[:n], Text: src[:n]}
		}
		return &lex.Token{Type: lex.TokenCodeSpan, Raw: src[:end], Text: codeSpanText(src[n : end-n])}
	},
}

func backtickRun(src string, i int) (ret int) {
	for i+ret < len(src) && lex.ItemBacktick == src[i+ret] {
		ret++
	}
	return
}

// skipCodeSpan 返回从 i 开始的行级代码结束后的位置，没有闭合时返回反引号串结束后的位置。
func skipCodeSpan(src string, i int) int {
	n := backtickRun(src, i)
	for j := i + n; j < len(src); {
		if lex.ItemBacktick != src[j] {
			j++
			continue
		}
		m := backtickRun(src, j)
		if m == n {
			return j + m
		}
		j += m
	}
	return i + n
}

// codeSpanText 将换行转为空格，内容两端都有空格且不全是空格时各去掉一个。
func codeSpanText(code string) string {
	code = strings.ReplaceAll(code, "\n", " ")
	if 2 < len(code) && ' ' == code[0] && ' ' == code[len(code)-1] && "" != strings.TrimSpace(code) {
		code = code[1 : len(code)-1]
	}
	return code
}
