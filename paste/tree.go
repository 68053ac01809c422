package paste

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/pafthang/lbmd/ast"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	checkboxSelector = cascadia.MustCompile(`input[type="checkbox"]`)
	codeSelector     = cascadia.MustCompile("code[class]")

	whitespace    = regexp.MustCompile(`[ \t\r\n\f]+`)
	cssColor      = regexp.MustCompile(`(?i)(?:^|;)\s*color\s*:\s*([^;]+)`)
	cssFontSize   = regexp.MustCompile(`(?i)(?:^|;)\s*font-size\s*:\s*(\d+)(?:\.\d+)?px`)
	cssTextAlign  = regexp.MustCompile(`(?i)(?:^|;)\s*text-align\s*:\s*([a-z-]+)`)
	languageClass = regexp.MustCompile(`(?:^|\s)(?:language|lang)-(\S+)`)
)

// Tree 将粘贴的 HTML 转换为文档树，data: 图片会先被去掉。
func Tree(src string) (ret *ast.Node) {
	ret = &ast.Node{Type: ast.NodeDocument}
	nodes, err := parseFragment(Sanitize(src))
	if nil != err {
		tracer().Errorf("parse pasted html failed: %s", err)
		ensureChild(ret)
		return
	}

	c := &converter{}
	c.blocks(ret, nodes)
	ensureChild(ret)
	return
}

// converter 将 HTML 节点转换为文档树节点，行级内容收集到当前段落中。
type converter struct {
	paragraph *ast.Node
}

// blocks 将 nodes 转换为 parent 的块级子节点。
func (c *converter) blocks(parent *ast.Node, nodes []*html.Node) {
	saved := c.paragraph
	c.paragraph = nil
	for _, n := range nodes {
		c.block(parent, n)
	}
	c.flush()
	c.paragraph = saved
}

func children(n *html.Node) (ret []*html.Node) {
	for child := n.FirstChild; nil != child; child = child.NextSibling {
		ret = append(ret, child)
	}
	return
}

func (c *converter) block(parent *ast.Node, n *html.Node) {
	if html.ElementNode != n.Type {
		if html.TextNode == n.Type {
			c.inline(parent, n, nil)
		}
		return
	}

	if isBlank(n) {
		c.flush()
		c.appendBlock(parent, &ast.Node{Type: ast.NodeBlankLine})
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Head, atom.Title, atom.Meta, atom.Template:
		return
	case atom.P:
		c.flush()
		node := &ast.Node{Type: ast.NodeParagraph}
		c.inlines(node, children(n), nil)
		c.appendBlock(parent, c.aligned(n, trimParagraph(node)))
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		c.flush()
		level, _ := strconv.Atoi(n.Data[1:])
		node := &ast.Node{Type: ast.NodeHeading, Level: level}
		c.inlines(node, children(n), nil)
		c.appendBlock(parent, c.aligned(n, trimParagraph(node)))
	case atom.Ul, atom.Ol:
		c.flush()
		c.appendBlock(parent, c.list(n))
	case atom.Li:
		// 列表外的列表项
		c.flush()
		list := &ast.Node{Type: ast.NodeBulletList, Tight: true}
		list.AppendChild(c.listItem(n))
		c.appendBlock(parent, list)
	case atom.Blockquote:
		c.flush()
		node := &ast.Node{Type: ast.NodeBlockquote}
		c.blocks(node, children(n))
		ensureChild(node)
		c.appendBlock(parent, node)
	case atom.Pre:
		c.flush()
		node := &ast.Node{Type: ast.NodeCodeBlock, Text: strings.TrimSuffix(textContent(n), "\n")}
		if code := codeSelector.MatchFirst(n); nil != code {
			if m := languageClass.FindStringSubmatch(attr(code, "class")); nil != m {
				node.Language = m[1]
			}
		}
		c.appendBlock(parent, node)
	case atom.Table:
		c.flush()
		c.appendBlock(parent, c.table(n))
	case atom.Hr:
		c.flush()
		c.appendBlock(parent, &ast.Node{Type: ast.NodeHorizontalRule})
	case atom.Details:
		c.flush()
		node := &ast.Node{Type: ast.NodeSpoilerBlock}
		var body []*html.Node
		for _, child := range children(n) {
			if atom.Summary != child.DataAtom {
				body = append(body, child)
			}
		}
		c.blocks(node, body)
		ensureChild(node)
		c.appendBlock(parent, node)
	case atom.Div, atom.Section, atom.Article, atom.Main, atom.Header, atom.Footer, atom.Aside, atom.Nav, atom.Center,
		atom.Body, atom.Html, atom.Form, atom.Figure:
		c.flush()
		container := parent
		var wrapper *ast.Node
		switch {
		case hasClass(n, "spoiler"):
			wrapper = &ast.Node{Type: ast.NodeSpoilerBlock}
		case atom.Center == n.DataAtom:
			wrapper = &ast.Node{Type: ast.NodeAlignedBlock, Align: "center"}
		default:
			if align, ok := alignOf(n); ok {
				wrapper = &ast.Node{Type: ast.NodeAlignedBlock, Align: align}
			}
		}
		if nil != wrapper {
			container = wrapper
		}
		c.blocks(container, children(n))
		if nil != wrapper {
			ensureChild(wrapper)
			c.appendBlock(parent, wrapper)
		}
	default:
		c.inline(parent, n, nil)
	}
}

// appendBlock 添加块级节点，空段落被丢弃。
func (c *converter) appendBlock(parent, node *ast.Node) {
	if nil == node {
		return
	}
	if ast.NodeParagraph == node.Type && nil == node.FirstChild {
		return
	}
	parent.AppendChild(node)
}

// flush 结束当前正在收集的段落。
func (c *converter) flush() {
	if nil == c.paragraph {
		return
	}
	paragraph := c.paragraph
	c.paragraph = nil
	if trimParagraph(paragraph); nil == paragraph.FirstChild {
		paragraph.Unlink()
	}
}

// aligned 按 n 的对齐属性将 node 包裹为对齐块。
func (c *converter) aligned(n *html.Node, node *ast.Node) *ast.Node {
	align, ok := alignOf(n)
	if !ok || nil == node.FirstChild {
		return node
	}
	ret := &ast.Node{Type: ast.NodeAlignedBlock, Align: align}
	ret.AppendChild(node)
	return ret
}

// alignOf 返回 n 的对齐方式：left 和没有对齐属性时不对齐，right 右对齐，其他值默认居中。
func alignOf(n *html.Node) (align string, ok bool) {
	value, present := "", false
	switch {
	case hasAttr(n, "data-align"):
		value, present = attr(n, "data-align"), true
	case hasAttr(n, "align"):
		value, present = attr(n, "align"), true
	default:
		if m := cssTextAlign.FindStringSubmatch(attr(n, "style")); nil != m {
			value, present = m[1], true
		}
	}
	if !present {
		return
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "left", "start":
		return "", false
	case "right", "end":
		return "right", true
	}
	return "center", true
}

// inline 将行级 HTML 节点添加到当前段落，没有段落时先创建一个。
func (c *converter) inline(parent *ast.Node, n *html.Node, marks []*ast.Mark) {
	if html.TextNode == n.Type && "" == strings.TrimSpace(n.Data) && nil == c.paragraph {
		return
	}
	if nil == c.paragraph {
		c.paragraph = &ast.Node{Type: ast.NodeParagraph}
		parent.AppendChild(c.paragraph)
	}
	c.inlines(c.paragraph, []*html.Node{n}, marks)
}

// inlines 将 nodes 转换为 parent 的行级子节点，块级元素的内容也按行级处理。
func (c *converter) inlines(parent *ast.Node, nodes []*html.Node, marks []*ast.Mark) {
	for _, n := range nodes {
		switch n.Type {
		case html.TextNode:
			if text := whitespace.ReplaceAllString(n.Data, " "); "" != text {
				parent.AppendChild(&ast.Node{Type: ast.NodeText, Text: text, Marks: marks})
			}
			continue
		case html.ElementNode:
		default:
			continue
		}

		childMarks := marks
		switch n.DataAtom {
		case atom.Script, atom.Style:
			continue
		case atom.Br:
			parent.AppendChild(&ast.Node{Type: ast.NodeHardBreak})
			continue
		case atom.Img:
			if isDataImage(n) {
				tracer().Debugf("data image skipped")
				continue
			}
			parent.AppendChild(&ast.Node{Type: ast.NodeImage, Src: attr(n, "src"), Alt: attr(n, "alt"), Title: attr(n, "title")})
			continue
		case atom.Input:
			continue
		case atom.Strong, atom.B:
			childMarks = ast.WithMark(marks, &ast.Mark{Type: ast.MarkBold})
		case atom.Em, atom.I:
			childMarks = ast.WithMark(marks, &ast.Mark{Type: ast.MarkItalic})
		case atom.S, atom.Del, atom.Strike:
			childMarks = ast.WithMark(marks, &ast.Mark{Type: ast.MarkStrike})
		case atom.Code, atom.Kbd, atom.Samp:
			childMarks = ast.WithMark(marks, &ast.Mark{Type: ast.MarkCode})
		case atom.Sub:
			childMarks = ast.WithMark(marks, &ast.Mark{Type: ast.MarkSubscript})
		case atom.Sup:
			childMarks = ast.WithMark(marks, &ast.Mark{Type: ast.MarkSuperscript})
		case atom.A:
			if href := attr(n, "href"); "" != href {
				childMarks = ast.WithMark(marks, &ast.Mark{Type: ast.MarkLink, Href: href, Title: attr(n, "title")})
			}
		default:
			childMarks = spanMarks(n, marks)
		}
		c.inlines(parent, children(n), childMarks)
		if isBlockElement(n) {
			// 行级位置上的块级元素用换行分隔
			parent.AppendChild(&ast.Node{Type: ast.NodeHardBreak})
		}
	}
}

// spanMarks 从 class 和 style 中读取剧透、颜色和文字大小。
func spanMarks(n *html.Node, marks []*ast.Mark) []*ast.Mark {
	if hasClass(n, "spoiler") {
		marks = ast.WithMark(marks, &ast.Mark{Type: ast.MarkSpoilerInline})
	}
	style := attr(n, "style")
	if m := cssColor.FindStringSubmatch(style); nil != m {
		marks = ast.WithMark(marks, &ast.Mark{Type: ast.MarkTextColor, Color: strings.TrimSpace(m[1])})
	} else if color := attr(n, "color"); atom.Font == n.DataAtom && "" != color {
		marks = ast.WithMark(marks, &ast.Mark{Type: ast.MarkTextColor, Color: color})
	}
	if m := cssFontSize.FindStringSubmatch(style); nil != m {
		if size, err := strconv.Atoi(m[1]); nil == err {
			marks = ast.WithMark(marks, &ast.Mark{Type: ast.MarkTextSize, Size: size})
		}
	}
	return marks
}

func (c *converter) list(n *html.Node) (ret *ast.Node) {
	ret = &ast.Node{Type: ast.NodeBulletList, Tight: true}
	if atom.Ol == n.DataAtom {
		ret.Type, ret.Start = ast.NodeOrderedList, 1
		if start, err := strconv.Atoi(attr(n, "start")); nil == err {
			ret.Start = start
		}
	}
	for _, child := range children(n) {
		if atom.Li == child.DataAtom {
			ret.AppendChild(c.listItem(child))
		}
	}
	if nil == ret.FirstChild {
		return nil
	}
	return
}

func (c *converter) listItem(n *html.Node) (ret *ast.Node) {
	ret = &ast.Node{Type: ast.NodeListItem}
	if checkbox := checkboxSelector.MatchFirst(n); nil != checkbox {
		ret.Task, ret.Checked = true, hasAttr(checkbox, "checked")
	}
	c.blocks(ret, children(n))
	ensureChild(ret)
	return
}

func (c *converter) table(n *html.Node) (ret *ast.Node) {
	ret = &ast.Node{Type: ast.NodeTable}
	var rows []*html.Node
	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		for _, child := range children(n) {
			switch child.DataAtom {
			case atom.Tr:
				rows = append(rows, child)
			case atom.Thead, atom.Tbody, atom.Tfoot:
				collect(child)
			}
		}
	}
	collect(n)

	for i, tr := range rows {
		row := &ast.Node{Type: ast.NodeTableRow}
		for _, td := range children(tr) {
			if atom.Td != td.DataAtom && atom.Th != td.DataAtom {
				continue
			}
			cell := &ast.Node{Type: ast.NodeTableCell, Header: 0 == i}
			c.inlines(cell, children(td), nil)
			trimParagraph(cell)
			row.AppendChild(cell)
			if 0 == i {
				align, _ := alignOf(td)
				if "" == align && hasAttr(td, "align") {
					align = "left"
				}
				ret.Aligns = append(ret.Aligns, align)
			}
		}
		ret.AppendChild(row)
	}
	if nil == ret.FirstChild {
		return nil
	}
	return
}

// trimParagraph 合并文本节点并去掉行级内容首尾的空白和换行。
func trimParagraph(n *ast.Node) *ast.Node {
	for first := n.FirstChild; nil != first && ast.NodeHardBreak == first.Type; first = n.FirstChild {
		first.Unlink()
	}
	for last := n.LastChild; nil != last && ast.NodeHardBreak == last.Type; last = n.LastChild {
		last.Unlink()
	}
	if first := n.FirstChild; nil != first && ast.NodeText == first.Type {
		first.Text = strings.TrimLeft(first.Text, " ")
	}
	if last := n.LastChild; nil != last && ast.NodeText == last.Type {
		last.Text = strings.TrimRight(last.Text, " ")
	}
	n.MergeTexts()
	return n
}

func ensureChild(n *ast.Node) {
	if nil == n.FirstChild {
		n.AppendChild(&ast.Node{Type: ast.NodeParagraph})
	}
}

func textContent(n *html.Node) string {
	buf := &strings.Builder{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
		case html.ElementNode:
			if atom.Br == n.DataAtom {
				buf.WriteByte('\n')
			}
		}
		for child := n.FirstChild; nil != child; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return buf.String()
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if class == c {
			return true
		}
	}
	return false
}

// isBlank 判断 n 是否是编辑器输出的空行。
func isBlank(n *html.Node) bool {
	return hasClass(n, "blank-line")
}

func isBlockElement(n *html.Node) bool {
	switch n.DataAtom {
	case atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Li, atom.Blockquote, atom.Pre,
		atom.Tr:
		return true
	}
	return false
}
