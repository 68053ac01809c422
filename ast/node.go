// Package ast 定义了编辑器文档树。
//
// 块级节点通过 FirstChild/Next 链接子节点，行级文本节点通过 Marks 携带样式标记。
package ast

import (
	"strings"
)

// Node 描述了文档树节点。
type Node struct {
	Type NodeType // 节点类型

	Parent     *Node // 父节点
	Previous   *Node // 前一个兄弟节点
	Next       *Node // 后一个兄弟节点
	FirstChild *Node // 第一个子节点
	LastChild  *Node // 最后一个子节点

	Text  string  // 文本节点和代码块的内容
	Marks []*Mark // 文本节点上的标记，按 MarkType 排序且每种类型至多一个

	// 标题

	Level int // 1 ~ 6

	// 列表

	Start int  // 有序列表起始序号
	Tight bool // 紧凑列表

	// 列表项

	Task    bool // 是否是任务列表项
	Checked bool // 任务是否已完成

	// 代码块

	Language string

	// 对齐块

	Align string // center 或者 right

	// 表格

	Aligns []string // 列对齐方式，取值 ""、left、center、right
	Header bool     // 是否是表头单元格

	// 图片

	Src   string
	Alt   string
	Title string
}

// IsBlock 判断节点是否是块级节点。
func (n *Node) IsBlock() bool {
	switch n.Type {
	case NodeText, NodeHardBreak, NodeImage, NodeLbIndent:
		return false
	}
	return true
}

// IsAtom 判断节点是否是原子节点（作为整体被选中和删除）。
func (n *Node) IsAtom() bool {
	switch n.Type {
	case NodeBlankLine, NodeLbIndent, NodeHorizontalRule, NodeImage, NodeHardBreak:
		return true
	}
	return false
}

// IsTextblock 判断节点是否直接包含行级内容。
func (n *Node) IsTextblock() bool {
	switch n.Type {
	case NodeParagraph, NodeHeading, NodeTableCell:
		return true
	}
	return false
}

// AppendChild 在 n 的子节点最后再添加一个子节点。
func (n *Node) AppendChild(child *Node) {
	child.Unlink()
	child.Parent = n
	if nil != n.LastChild {
		n.LastChild.Next = child
		child.Previous = n.LastChild
		n.LastChild = child
	} else {
		n.FirstChild = child
		n.LastChild = child
	}
}

// PrependChild 在 n 的子节点最前添加一个子节点。
func (n *Node) PrependChild(child *Node) {
	child.Unlink()
	child.Parent = n
	if nil != n.FirstChild {
		n.FirstChild.Previous = child
		child.Next = n.FirstChild
		n.FirstChild = child
	} else {
		n.FirstChild = child
		n.LastChild = child
	}
}

// InsertBefore 在 n 前面插入一个兄弟节点 sibling。
func (n *Node) InsertBefore(sibling *Node) {
	sibling.Unlink()
	sibling.Previous = n.Previous
	if nil != sibling.Previous {
		sibling.Previous.Next = sibling
	}
	sibling.Next = n
	n.Previous = sibling
	sibling.Parent = n.Parent
	if nil == sibling.Previous && nil != sibling.Parent {
		sibling.Parent.FirstChild = sibling
	}
}

// InsertAfter 在 n 后面插入一个兄弟节点 sibling。
func (n *Node) InsertAfter(sibling *Node) {
	sibling.Unlink()
	sibling.Next = n.Next
	if nil != sibling.Next {
		sibling.Next.Previous = sibling
	}
	sibling.Previous = n
	n.Next = sibling
	sibling.Parent = n.Parent
	if nil == sibling.Next && nil != sibling.Parent {
		sibling.Parent.LastChild = sibling
	}
}

// Unlink 将节点从树上摘除。
func (n *Node) Unlink() {
	if nil != n.Previous {
		n.Previous.Next = n.Next
	} else if nil != n.Parent {
		n.Parent.FirstChild = n.Next
	}
	if nil != n.Next {
		n.Next.Previous = n.Previous
	} else if nil != n.Parent {
		n.Parent.LastChild = n.Previous
	}
	n.Parent = nil
	n.Next = nil
	n.Previous = nil
}

// Children 返回 n 的所有子节点。
func (n *Node) Children() (ret []*Node) {
	for c := n.FirstChild; nil != c; c = c.Next {
		ret = append(ret, c)
	}
	return
}

// ChildCount 返回 n 的子节点数。
func (n *Node) ChildCount() (ret int) {
	for c := n.FirstChild; nil != c; c = c.Next {
		ret++
	}
	return
}

// ChildrenByType 返回 n 下所有类型为 nodeType 的子节点。
func (n *Node) ChildrenByType(nodeType NodeType) (ret []*Node) {
	Walk(n, func(child *Node, entering bool) WalkStatus {
		if entering && nodeType == child.Type && child != n {
			ret = append(ret, child)
		}
		return WalkContinue
	})
	return
}

// Content 返回 n 及其子节点的纯文本内容。
func (n *Node) Content() string {
	buf := &strings.Builder{}
	Walk(n, func(child *Node, entering bool) WalkStatus {
		if !entering {
			if child.IsBlock() && child != n && nil != child.Next {
				buf.WriteByte('\n')
			}
			return WalkContinue
		}

		switch child.Type {
		case NodeText, NodeCodeBlock:
			buf.WriteString(child.Text)
		case NodeHardBreak:
			buf.WriteByte('\n')
		case NodeLbIndent:
			buf.WriteString(" ")
		case NodeImage:
			buf.WriteString(child.Alt)
		}
		return WalkContinue
	})
	return buf.String()
}

// Clone 深拷贝 n 及其子节点，返回的节点没有父节点和兄弟节点。
func (n *Node) Clone() (ret *Node) {
	ret = &Node{}
	*ret = *n
	ret.Parent, ret.Previous, ret.Next, ret.FirstChild, ret.LastChild = nil, nil, nil, nil, nil
	ret.Marks = nil
	for _, m := range n.Marks {
		mm := *m
		ret.Marks = append(ret.Marks, &mm)
	}
	if nil != n.Aligns {
		ret.Aligns = append([]string{}, n.Aligns...)
	}
	for c := n.FirstChild; nil != c; c = c.Next {
		ret.AppendChild(c.Clone())
	}
	return
}

// Equal 判断两棵树在结构和属性上是否相同。
func Equal(a, b *Node) bool {
	if nil == a || nil == b {
		return a == b
	}

	if a.Type != b.Type || a.Text != b.Text || a.Level != b.Level || a.Start != b.Start || a.Tight != b.Tight ||
		a.Task != b.Task || a.Checked != b.Checked || a.Language != b.Language || a.Align != b.Align ||
		a.Header != b.Header || a.Src != b.Src || a.Alt != b.Alt || a.Title != b.Title {
		return false
	}
	if len(a.Aligns) != len(b.Aligns) {
		return false
	}
	for i := range a.Aligns {
		if a.Aligns[i] != b.Aligns[i] {
			return false
		}
	}
	if !SameMarks(a.Marks, b.Marks) {
		return false
	}

	ca, cb := a.FirstChild, b.FirstChild
	for ; nil != ca && nil != cb; ca, cb = ca.Next, cb.Next {
		if !Equal(ca, cb) {
			return false
		}
	}
	return nil == ca && nil == cb
}

// MergeTexts 合并 n 下相邻的同标记文本节点，去掉空文本节点。
func (n *Node) MergeTexts() {
	for child := n.FirstChild; nil != child; {
		next := child.Next
		if NodeText != child.Type {
			child = next
			continue
		}
		if "" == child.Text {
			child.Unlink()
			child = next
			continue
		}
		if nil != next && NodeText == next.Type && SameMarks(child.Marks, next.Marks) {
			child.Text += next.Text
			next.Unlink()
			continue
		}
		child = next
	}
}
