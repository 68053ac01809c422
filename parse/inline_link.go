package parse

import (
	"strings"

	"github.com/pafthang/lbmd/lex"
)

// LinkRule 匹配链接 [text](href "title")、图片 ![alt](src "title")、引用链接 [text][label] 以及自动链接 <http://...>。
var LinkRule = Rule{
	Name:  "link",
	Level: LevelInline,
	Start: func(src string) int {
		return minIndex(strings.IndexByte(src, lex.ItemOpenBracket), strings.Index(src, "!["), strings.IndexByte(src, lex.ItemLess))
	},
	Tokenize: func(context *Context, src string) *lex.Token {
		switch src[0] {
		case lex.ItemLess:
			return autolink(src)
		case lex.ItemBang:
			if lex.ItemOpenBracket != lex.Peek(src, 1) {
				return nil
			}
			return context.parseLink(src, 1)
		case lex.ItemOpenBracket:
			return context.parseLink(src, 0)
		}
		return nil
	},
}

// parseLink 解析 src[offset:] 开头的 [text]...，offset 为 1 时解析图片。
func (context *Context) parseLink(src string, offset int) *lex.Token {
	image := 1 == offset
	bracket := src[offset:]
	labelEnd := matchBracket(bracket)
	if 0 > labelEnd {
		return nil
	}
	text := bracket[1:labelEnd]
	rest := bracket[labelEnd+1:]

	href, title, length := inlineLinkTail(rest)
	if 0 <= length {
		length += offset + labelEnd + 1
	}

	if 0 > length && 0 < len(context.links) {
		label, refLength := text, labelEnd+1
		if lex.ItemOpenBracket == lex.Peek(rest, 0) {
			if end := matchBracket(rest); 0 < end {
				if "" != rest[1:end] {
					label = rest[1:end]
				}
				refLength += end + 1
			}
		}
		def := context.links.find(label)
		if nil == def {
			return nil
		}
		href, title, length = def.href, def.title, offset+refLength
	}
	if 0 > length {
		return nil
	}

	if image {
		return context.image(src[:length], unescape(text), href, title)
	}
	return &lex.Token{Type: lex.TokenLink, Raw: src[:length], Text: text, Href: href, Title: title, Tokens: context.InlineTokens(text)}
}

// inlineLinkTail 解析 [text] 后面的 (href "title")，不匹配时 length 为 -1。
func inlineLinkTail(rest string) (href, title string, length int) {
	length = -1
	if lex.ItemOpenParen != lex.Peek(rest, 0) {
		return
	}
	href, title, n, ok := parseDestTitle(rest[1:])
	if !ok {
		return
	}
	closeAt := skipSpaces(rest, 1+n)
	if lex.ItemCloseParen != lex.Peek(rest, closeAt) {
		return
	}
	length = closeAt + 1
	return
}

// autolink 匹配 <scheme:...> 和 <user@example.com>。
func autolink(src string) *lex.Token {
	end := strings.IndexByte(src, lex.ItemGreater)
	if 3 > end {
		return nil
	}
	url := src[1:end]
	if strings.ContainsAny(url, " \t\n<") {
		return nil
	}

	href := url
	switch {
	case isURIScheme(url):
	case isEmail(url):
		href = "mailto:" + url
	default:
		return nil
	}
	return &lex.Token{Type: lex.TokenLink, Raw: src[:end+1], Text: url, Href: href,
		Tokens: []*lex.Token{{Type: lex.TokenText, Raw: url, Text: url}}}
}

func isURIScheme(url string) bool {
	colon := strings.IndexByte(url, lex.ItemColon)
	if 2 > colon || 32 < colon {
		return false
	}
	for i := 0; i < colon; i++ {
		c := url[i]
		if !lex.IsASCIILetterNum(c) && '+' != c && '.' != c && '-' != c {
			return false
		}
	}
	return !lex.IsDigit(url[0])
}

func isEmail(url string) bool {
	at := strings.IndexByte(url, '@')
	return 0 < at && at < len(url)-1 && !strings.ContainsAny(url, "\\[]()") && strings.Contains(url[at:], ".")
}

// matchBracket 返回与 src[0] 处 [ 匹配的 ] 的位置，没有的话返回 -1。
func matchBracket(src string) int {
	depth := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case lex.ItemBackslash:
			i++
		case lex.ItemBacktick:
			i = skipCodeSpan(src, i) - 1
		case lex.ItemOpenBracket:
			depth++
		case lex.ItemCloseBracket:
			depth--
			if 0 == depth {
				return i
			}
		}
	}
	return -1
}

// parseDestTitle 解析链接地址以及可选的标题，返回消费的长度。
func parseDestTitle(s string) (href, title string, length int, ok bool) {
	i := skipSpaces(s, 0)
	if lex.ItemLess == lex.Peek(s, i) {
		end := strings.IndexAny(s[i+1:], ">\n")
		if 0 > end || lex.ItemGreater != s[i+1+end] {
			return
		}
		href = s[i+1 : i+1+end]
		i += end + 2
	} else {
		start := i
		parens := 0
	dest:
		for ; i < len(s); i++ {
			token := s[i]
			switch {
			case lex.ItemBackslash == token && lex.IsASCIIPunct(lex.Peek(s, i+1)):
				i++
			case lex.ItemSpace >= token:
				break dest
			case lex.ItemOpenParen == token:
				parens++
			case lex.ItemCloseParen == token:
				if 0 == parens {
					break dest
				}
				parens--
			}
		}
		if 0 != parens {
			return
		}
		href = s[start:i]
	}

	// 标题前面必须有空白
	if j := skipSpaces(s, i); j > i {
		if closer := titleCloser(lex.Peek(s, j)); 0 != closer {
			if end := indexUnescaped(s[j+1:], closer); 0 <= end {
				title = s[j+1 : j+1+end]
				i = j + 1 + end + 1
			}
		}
	}
	return unescape(href), unescape(title), i, true
}

func titleCloser(opener byte) byte {
	switch opener {
	case lex.ItemDoublequote, lex.ItemSinglequote:
		return opener
	case lex.ItemOpenParen:
		return lex.ItemCloseParen
	}
	return 0
}

// indexUnescaped 返回 s 中第一个未转义的 c 的位置。
func indexUnescaped(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if lex.ItemBackslash == s[i] {
			i++
			continue
		}
		if c == s[i] {
			return i
		}
	}
	return -1
}

func skipSpaces(s string, i int) int {
	for i < len(s) && lex.IsWhitespace(s[i]) {
		i++
	}
	return i
}

// unescape 去掉反斜杠转义。
func unescape(s string) string {
	if 0 > strings.IndexByte(s, lex.ItemBackslash) {
		return s
	}

	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		if lex.ItemBackslash == s[i] && lex.IsASCIIPunct(lex.Peek(s, i+1)) {
			i++
		}
		buf.WriteByte(s[i])
	}
	return buf.String()
}
