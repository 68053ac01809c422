package parse

import (
	"strings"

	"github.com/pafthang/lbmd/lex"
)

// aligns 是对齐块支持的对齐方式，left 是默认值，不使用标签。
var aligns = []string{"center", "right"}

// AlignBlockRule 匹配对齐块 [center]...[/center] 和 [right]...[/right]，内容按块级解析。
var AlignBlockRule = Rule{
	Name:  "alignBlock",
	Level: LevelBlock,
	Start: func(src string) int {
		return minIndex(lineStartIndex(src, "[center]"), lineStartIndex(src, "[right]"))
	},
	Tokenize: func(context *Context, src string) *lex.Token {
		for _, align := range aligns {
			if token := context.parseAlignBlock(src, align); nil != token {
				return token
			}
		}
		return nil
	},
	Interrupt: true,
	Opens: func(src string) bool {
		for _, align := range aligns {
			if _, _, _, ok := alignBlockSpan(src, "["+align+"]", "[/"+align+"]"); ok {
				return true
			}
		}
		return false
	},
}

func (context *Context) parseAlignBlock(src, align string) *lex.Token {
	contentStart, contentEnd, end, ok := alignBlockSpan(src, "["+align+"]", "[/"+align+"]")
	if !ok {
		return nil
	}

	content := strings.TrimSuffix(src[contentStart:contentEnd], "\n")
	return &lex.Token{Type: lex.TokenAlignBlock, Raw: src[:end], Text: content, Align: align, Tokens: context.BlockTokens(content)}
}

// alignBlockSpan 返回对齐块内容的起止位置和整个块的结束位置。行首的同名开始标签增加一层嵌套，
// 开始和闭合标签按层级配对，最外层的闭合标签后只允许空白直到行尾。
func alignBlockSpan(src, open, closer string) (contentStart, contentEnd, end int, ok bool) {
	if !strings.HasPrefix(src, open) {
		return
	}
	contentStart = len(open)
	if lex.ItemNewline == lex.Peek(src, contentStart) {
		contentStart++
	}

	depth := 1
	for pos := contentStart; pos < len(src); {
		line, length := lex.Line(src[pos:])
		from := 0
		if len(open) < pos && strings.HasPrefix(line, open) {
			depth++
			from = len(open)
		}
		for {
			i := strings.Index(line[from:], closer)
			if 0 > i {
				break
			}
			from += i + len(closer)
			if depth--; 0 < depth {
				continue
			}
			if !lex.IsBlank(line[from:]) {
				return
			}
			return contentStart, pos + from - len(closer), pos + length, true
		}
		pos += length
	}
	return
}
