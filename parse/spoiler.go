package parse

import (
	"strings"

	"github.com/pafthang/lbmd/lex"
)

// SpoilerInlineRule 匹配行级剧透 >!text!< 和 ||text||。
var SpoilerInlineRule = Rule{
	Name:  "spoilerInline",
	Level: LevelInline,
	Start: func(src string) int {
		return minIndex(strings.Index(src, ">!"), strings.Index(src, "||"))
	},
	Tokenize: func(context *Context, src string) *lex.Token {
		length, content := matchSpoilerInline(src)
		if 1 > length {
			return nil
		}
		return &lex.Token{Type: lex.TokenSpoilerInline, Raw: src[:length], Text: content, Tokens: context.InlineTokens(content)}
	},
}

// matchSpoilerInline 在 src 开头匹配行级剧透，返回匹配长度和内容。>!x!< 中不能包含 !，||x|| 中不能包含 |。
func matchSpoilerInline(src string) (length int, content string) {
	var marker byte
	var closer string
	switch {
	case strings.HasPrefix(src, ">!"):
		marker, closer = lex.ItemBang, "!<"
	case strings.HasPrefix(src, "||"):
		marker, closer = lex.ItemPipe, "||"
	default:
		return
	}

	end := strings.IndexByte(src[2:], marker)
	if 1 > end { // 内容不能为空
		return
	}
	end += 2
	if !strings.HasPrefix(src[end:], closer) {
		return
	}
	content = src[2:end]
	if strings.Contains(content, "\n\n") {
		return
	}
	return end + 2, content
}

// SpoilerBlockRule 匹配剧透块：首行以 ">! " 开头，后续行以 ">! " 开头或者仅为 ">!"。
var SpoilerBlockRule = Rule{
	Name:  "spoilerBlock",
	Level: LevelBlock,
	Start: func(src string) int {
		return lineStartIndex(src, ">! ")
	},
	Tokenize: func(context *Context, src string) *lex.Token {
		var body []string
		pos := 0
		for pos < len(src) {
			line, length := lex.Line(src[pos:])
			content, ok := spoilerBlockLine(line, 0 == pos)
			if !ok {
				break
			}
			body = append(body, content)
			pos += length
		}
		if 0 == pos {
			return nil
		}
		return &lex.Token{Type: lex.TokenSpoilerBlock, Raw: src[:pos], Text: strings.Join(body, "\n"),
			Tokens: context.BlockTokens(strings.Join(body, "\n"))}
	},
	Interrupt: true,
	Opens: firstLine(func(line string) bool {
		_, ok := spoilerBlockLine(line, true)
		return ok
	}),
}

// spoilerBlockLine 去掉剧透块行的前缀。首行必须是 ">! "，后续行允许仅为 ">!"（渲染时去掉了行尾空白）。
func spoilerBlockLine(line string, first bool) (content string, ok bool) {
	if strings.HasPrefix(line, ">! ") {
		return line[3:], true
	}
	if !first && ">!" == strings.TrimRight(line, " \t") {
		return "", true
	}
	return
}

// SpoilerParagraphRule 匹配以行级剧透开头的段落，避免 >!text!< 被当作块引用解析。
//
// 行首为 ">!" 且紧跟非空白字符时匹配，段落内容按 >!...!< 和 ||...|| 反复扫描切分为普通片段和剧透片段。
// 剧透块行（">! " 带空格）不匹配，由 SpoilerBlockRule 处理。
var SpoilerParagraphRule = Rule{
	Name:  "spoilerParagraph",
	Level: LevelBlock,
	Start: func(src string) int {
		return lineStartIndex(src, ">!")
	},
	Tokenize: func(context *Context, src string) *lex.Token {
		line, _ := lex.Line(src)
		if !strings.HasPrefix(line, ">!") || 3 > len(line) || lex.IsWhitespace(line[2]) {
			return nil
		}

		// 后续行和普通段落一样延续
		length := context.paragraphEnd(src)
		text := paragraphText(src[:length])
		return &lex.Token{Type: lex.TokenParagraph, Raw: src[:length], Text: text, Tokens: context.spoilerSegments(text)}
	},
}

// spoilerSegments 将 line 切分为普通片段和剧透片段，普通片段使用完整语法进行行级解析。
func (context *Context) spoilerSegments(line string) (ret []*lex.Token) {
	plainStart := 0
	for i := 0; i < len(line); {
		length, content := matchSpoilerInline(line[i:])
		if 1 > length {
			i++
			continue
		}

		if plainStart < i {
			ret = append(ret, context.InlineTokens(line[plainStart:i])...)
		}
		ret = append(ret, &lex.Token{Type: lex.TokenSpoilerInline, Raw: line[i : i+length], Text: content,
			Tokens: context.InlineTokens(content)})
		i += length
		plainStart = i
	}
	if plainStart < len(line) {
		ret = append(ret, context.InlineTokens(line[plainStart:])...)
	}
	return
}

// lineStartIndex 返回 src 中以 prefix 开头的第一行的偏移，没有的话返回 -1。
func lineStartIndex(src, prefix string) int {
	for pos := 0; pos < len(src); {
		if strings.HasPrefix(src[pos:], prefix) {
			return pos
		}
		i := strings.IndexByte(src[pos:], lex.ItemNewline)
		if 0 > i {
			break
		}
		pos += i + 1
	}
	return -1
}

func minIndex(indexes ...int) (ret int) {
	ret = -1
	for _, i := range indexes {
		if 0 <= i && (0 > ret || i < ret) {
			ret = i
		}
	}
	return
}
