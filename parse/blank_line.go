package parse

import (
	"strings"

	"github.com/pafthang/lbmd/editor"
	"github.com/pafthang/lbmd/lex"
)

// BlankLineRule 匹配空行标记 [lb-blank][/lb-blank]，标记之间的内容忽略。
//
// 渲染时一个空行节点输出两行标记，以免连续空行被 Markdown 压缩后丢失，所以这里把一到两行连续标记解析为一个单元。
var BlankLineRule = Rule{
	Name:  "blankLine",
	Level: LevelBlock,
	Start: func(src string) int {
		return lineStartIndex(src, editor.BlankLineOpen)
	},
	Tokenize: func(context *Context, src string) *lex.Token {
		length := blankLineMarker(src)
		if 1 > length {
			return nil
		}
		if second := blankLineMarker(src[length:]); 0 < second {
			length += second
		}
		return &lex.Token{Type: lex.TokenBlankLine, Raw: src[:length]}
	},
	Interrupt: true,
	Opens: func(src string) bool {
		return 0 < blankLineMarker(src)
	},
}

// blankLineMarker 在 src 开头匹配一行空行标记，返回连同换行符的长度。
func blankLineMarker(src string) int {
	line, length := lex.Line(src)
	if !strings.HasPrefix(line, editor.BlankLineOpen) {
		return 0
	}
	closeAt := strings.Index(line, editor.BlankLineClose)
	if 0 > closeAt || !lex.IsBlank(line[closeAt+len(editor.BlankLineClose):]) {
		return 0
	}
	return length
}

// LbIndentRule 匹配缩进标记 [lb-i]。
var LbIndentRule = Rule{
	Name:  "lbIndent",
	Level: LevelInline,
	Start: func(src string) int {
		return strings.Index(src, editor.IndentMarker)
	},
	Tokenize: func(context *Context, src string) *lex.Token {
		if !strings.HasPrefix(src, editor.IndentMarker) {
			return nil
		}
		return &lex.Token{Type: lex.TokenLbIndent, Raw: editor.IndentMarker}
	},
}
