package parse

import (
	"strings"

	"github.com/pafthang/lbmd/lex"
)

// FenceCodeBlockRule 匹配围栏代码块（``` 或者 ~~~），没有闭合围栏时代码块延续到输入结束。
var FenceCodeBlockRule = Rule{
	Name:  "fences",
	Level: LevelBlock,
	Tokenize: func(context *Context, src string) *lex.Token {
		line, pos := lex.Line(src)
		indent, marker, fenceLen, info, ok := parseFenceOpen(line)
		if !ok {
			return nil
		}

		var code []string
		for pos < len(src) {
			line, length := lex.Line(src[pos:])
			pos += length
			if isFenceClose(line, marker, fenceLen) {
				break
			}
			code = append(code, lex.TrimIndent(line, indent))
		}

		lang := info
		if i := strings.IndexAny(lang, " \t"); 0 < i {
			lang = lang[:i]
		}
		return &lex.Token{Type: lex.TokenCode, Raw: src[:pos], Text: strings.Join(code, "\n"), Lang: lang}
	},
	Interrupt: true,
	Opens:     firstLine(isFence),
}

// parseFenceOpen 解析围栏代码块开始行。
func parseFenceOpen(line string) (indent int, marker byte, fenceLen int, info string, ok bool) {
	indent = lex.Indent(line)
	if 3 < indent {
		return
	}
	line = strings.TrimLeft(line, " ")
	marker = lex.Peek(line, 0)
	if lex.ItemBacktick != marker && lex.ItemTilde != marker {
		return
	}
	for fenceLen < len(line) && marker == line[fenceLen] {
		fenceLen++
	}
	if 3 > fenceLen {
		return
	}

	info = strings.TrimSpace(line[fenceLen:])
	if lex.ItemBacktick == marker && strings.IndexByte(info, lex.ItemBacktick) >= 0 {
		// 反引号围栏的信息字符串中不能有反引号
		return
	}
	ok = true
	return
}

func isFenceClose(line string, marker byte, fenceLen int) bool {
	if 3 < lex.Indent(line) {
		return false
	}
	line = strings.TrimSpace(line)
	if len(line) < fenceLen {
		return false
	}
	for i := 0; i < len(line); i++ {
		if marker != line[i] {
			return false
		}
	}
	return true
}

func isFence(line string) bool {
	_, _, _, _, ok := parseFenceOpen(line)
	return ok
}
