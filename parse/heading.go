package parse

import (
	"strings"

	"github.com/pafthang/lbmd/lex"
)

// ATXHeadingRule 匹配 ATX 标题（# 到 ######）。
var ATXHeadingRule = Rule{
	Name:  "heading",
	Level: LevelBlock,
	Tokenize: func(context *Context, src string) *lex.Token {
		line, length := lex.Line(src)
		level, content, ok := atxHeading(line)
		if !ok {
			return nil
		}

		ret := &lex.Token{Type: lex.TokenHeading, Raw: src[:length], Depth: level, Text: headingText(content)}
		context.Defer(ret)
		return ret
	},
	Interrupt: true,
	Opens: firstLine(func(line string) bool {
		_, _, ok := atxHeading(line)
		return ok
	}),
}

// atxHeading 解析标题行开头的 # 序列，返回级别和之后的内容。
func atxHeading(line string) (level int, content string, ok bool) {
	if 3 < lex.Indent(line) {
		return
	}
	line = strings.TrimLeft(line, " ")

	for level < len(line) && lex.ItemCrosshatch == line[level] {
		level++
	}
	if 1 > level || 6 < level {
		return
	}
	if token := lex.Peek(line, level); lex.ItemEnd != token && lex.ItemSpace != token && lex.ItemTab != token {
		return
	}
	return level, line[level:], true
}

// headingText 去掉标题内容首尾空白以及可选的闭合 # 序列。
func headingText(content string) string {
	content = strings.TrimSpace(content)
	closing := strings.TrimRight(content, "#")
	if "" == closing {
		return ""
	}
	if len(closing) < len(content) && (lex.ItemSpace == closing[len(closing)-1] || lex.ItemTab == closing[len(closing)-1]) {
		content = strings.TrimSpace(closing)
	}
	return content
}
