package parse

import (
	"strings"

	"github.com/pafthang/lbmd/lex"
)

// image 构造图片单元。没有开启 DataImage 时不接受 data: 地址，这样的图片保留为文本。
func (context *Context) image(raw, alt, src, title string) *lex.Token {
	if !context.ParseOption.DataImage && isDataURI(src) {
		tracer().Debugf("data image [%.32s] is not allowed", src)
		return nil
	}
	return &lex.Token{Type: lex.TokenImage, Raw: raw, Text: alt, Href: src, Title: title}
}

// isDataURI 判断 src 是否是 data: 地址，忽略浏览器解析地址时会去掉的控制字符。
func isDataURI(src string) bool {
	src = strings.Map(func(r rune) rune {
		if ' ' > r {
			return -1
		}
		return r
	}, src)
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(src)), "data:")
}
