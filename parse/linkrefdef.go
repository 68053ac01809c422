package parse

import (
	"strings"

	"github.com/pafthang/lbmd/lex"
)

// linkDef 描述了一个链接引用定义 [label]: href "title"。
type linkDef struct {
	label string
	href  string
	title string
}

// linkDefs 是一次解析中收集到的链接引用定义，按出现顺序排列，同名时前面的优先。
type linkDefs []*linkDef

// LinkRefDefRule 匹配链接引用定义。定义在解析开始前已经收集好，这里只负责消费定义行。
var LinkRefDefRule = Rule{
	Name:  "def",
	Level: LevelBlock,
	Tokenize: func(context *Context, src string) *lex.Token {
		if !context.ParseOption.LinkRef {
			return nil
		}
		def, length := parseLinkRefDef(src)
		if nil == def {
			return nil
		}
		return &lex.Token{Type: lex.TokenDef, Raw: src[:length], Label: def.label, Href: def.href, Title: def.title}
	},
}

// collectLinkDefs 收集 src 中的链接引用定义，跳过围栏代码块中的内容。
func collectLinkDefs(src string) (ret linkDefs) {
	var fence byte
	var fenceLen int
	for pos := 0; pos < len(src); {
		line, length := lex.Line(src[pos:])
		switch {
		case 0 != fence:
			if isFenceClose(line, fence, fenceLen) {
				fence = 0
			}
		case isFence(line):
			_, fence, fenceLen, _, _ = parseFenceOpen(line)
		default:
			if def, _ := parseLinkRefDef(src[pos:]); nil != def && nil == ret.find(def.label) {
				ret = append(ret, def)
			}
		}
		pos += length
	}
	return
}

// parseLinkRefDef 解析 src 第一行的链接引用定义。
func parseLinkRefDef(src string) (ret *linkDef, length int) {
	line, length := lex.Line(src)
	if 3 < lex.Indent(line) {
		return nil, 0
	}
	line = strings.TrimLeft(line, " ")
	labelEnd := matchBracket(line)
	if 1 > labelEnd || lex.ItemColon != lex.Peek(line, labelEnd+1) {
		return nil, 0
	}
	label := normalizeLabel(line[1:labelEnd])
	if "" == label {
		return nil, 0
	}

	rest := line[labelEnd+2:]
	href, title, n, ok := parseDestTitle(rest)
	if !ok || "" == href || !lex.IsBlank(rest[n:]) {
		return nil, 0
	}
	return &linkDef{label: label, href: href, title: title}, length
}

func normalizeLabel(label string) string {
	return strings.Join(strings.Fields(label), " ")
}
