// Package paste 处理粘贴的富文本：去掉不允许的内嵌内容并将 HTML 转换为文档树。
package paste

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer 返回粘贴处理使用的跟踪器。
func tracer() tracing.Trace {
	return tracing.Select("lbmd.paste")
}

// dataURIPattern 匹配 data:<mime>[;param=value]*[;base64],<payload> 格式的地址。
var dataURIPattern = regexp.MustCompile(`(?i)^data:(?:[a-z]+/[a-z0-9.+-]+)?(?:;[a-z0-9.-]+=[^;,]*)*(?:;base64)?,`)

var imgSelector = cascadia.MustCompile("img[src]")

// Sanitize 去掉 src 中地址为 data: 的图片，返回处理后的 HTML。没有需要去掉的图片时原样返回。
//
// 格式不正确的 data: 地址同样会被去掉。是否去掉按解析后的属性值判断，属性中的字符引用（&#100;ata:）已经解码。
func Sanitize(src string) string {
	nodes, err := parseFragment(src)
	if nil != err {
		tracer().Errorf("parse pasted html failed: %s", err)
		return src
	}

	removed := 0
	var roots []*html.Node
	for _, n := range nodes {
		for _, img := range imgSelector.MatchAll(n) {
			if !isDataImage(img) {
				continue
			}
			removed++
			if img == n {
				continue
			}
			img.Parent.RemoveChild(img)
		}
		if !isDataImage(n) {
			roots = append(roots, n)
		}
	}
	if 1 > removed {
		return src
	}
	tracer().Debugf("removed [%d] data images from pasted html", removed)

	buf := &bytes.Buffer{}
	for _, n := range roots {
		if err = html.Render(buf, n); nil != err {
			tracer().Errorf("render sanitized html failed: %s", err)
			return ""
		}
	}
	return buf.String()
}

// urlNoise 是浏览器解析地址时忽略的字符。
var urlNoise = strings.NewReplacer("\t", "", "\n", "", "\r", "")

// IsDataURI 判断 src 是否是 data: 地址。和浏览器一样先去掉首尾的控制字符和空格以及其中的制表符和换行符。
func IsDataURI(src string) bool {
	src = normalizeURL(src)
	if !strings.HasPrefix(strings.ToLower(src), "data:") {
		return false
	}
	if !dataURIPattern.MatchString(src) {
		tracer().Debugf("malformed data uri [%.32s]", src)
	}
	return true
}

func normalizeURL(src string) string {
	src = urlNoise.Replace(src)
	return strings.TrimFunc(src, func(r rune) bool { return ' ' >= r })
}

func isDataImage(n *html.Node) bool {
	if html.ElementNode != n.Type || atom.Img != n.DataAtom {
		return false
	}
	return IsDataURI(attr(n, "src"))
}

// parseFragment 按 body 中的内容解析 HTML 片段。
func parseFragment(src string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return html.ParseFragment(strings.NewReader(src), body)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if key == a.Key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if key == a.Key {
			return true
		}
	}
	return false
}
