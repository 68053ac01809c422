package ast

import (
	"sort"
	"strconv"
)

// MarkType 描述了标记类型。类型值的顺序即序列化时由外到内的嵌套顺序。
type MarkType int

const (
	MarkLink          MarkType = iota // 链接
	MarkSpoilerInline                 // 行级剧透 >!x!< ||x||
	MarkTextColor                     // 文字颜色 [color=x]
	MarkTextSize                      // 文字大小 [size=n]
	MarkBold                          // 粗体
	MarkItalic                        // 斜体
	MarkStrike                        // 删除线
	MarkSubscript                     // 下标 ~x~
	MarkSuperscript                   // 上标 ^x^
	MarkCode                          // 行级代码

	markTypeCount
)

var markTypeNames = [...]string{
	MarkLink:          "link",
	MarkSpoilerInline: "spoilerInline",
	MarkTextColor:     "textColor",
	MarkTextSize:      "textSize",
	MarkBold:          "bold",
	MarkItalic:        "italic",
	MarkStrike:        "strike",
	MarkSubscript:     "subscript",
	MarkSuperscript:   "superscript",
	MarkCode:          "code",
}

func (typ MarkType) String() string {
	if 0 > typ || markTypeCount <= typ {
		return "unknown"
	}
	return markTypeNames[typ]
}

// Name2MarkType 将 JSON 标记名转换为标记类型，找不到时返回 -1。
func Name2MarkType(name string) MarkType {
	for i, s := range markTypeNames {
		if s == name {
			return MarkType(i)
		}
	}
	return -1
}

// excludes 记录了互斥的标记。
var excludes = map[MarkType]MarkType{
	MarkSubscript:   MarkSuperscript,
	MarkSuperscript: MarkSubscript,
}

// Mark 描述了应用在文本上的标记。
type Mark struct {
	Type MarkType

	Href  string // 链接地址
	Title string // 链接标题
	Color string // 颜色，原样保留
	Size  int    // 字号
}

// Equal 判断两个标记类型和属性是否都相同。
func (m *Mark) Equal(other *Mark) bool {
	if nil == m || nil == other {
		return m == other
	}
	return m.Type == other.Type && m.Href == other.Href && m.Title == other.Title && m.Color == other.Color && m.Size == other.Size
}

func (m *Mark) String() string {
	switch m.Type {
	case MarkLink:
		return "link(" + m.Href + ")"
	case MarkTextColor:
		return "textColor(" + m.Color + ")"
	case MarkTextSize:
		return "textSize(" + strconv.Itoa(m.Size) + ")"
	}
	return m.Type.String()
}

// SameMarks 判断两组标记是否相同。
func SameMarks(a, b []*Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// AddMark 为文本节点添加标记 m。同类型标记会被替换，互斥的标记会被移除。
func (n *Node) AddMark(m *Mark) {
	if excluded, ok := excludes[m.Type]; ok {
		n.RemoveMark(excluded)
	}
	n.RemoveMark(m.Type)
	n.Marks = append(n.Marks, m)
	sort.SliceStable(n.Marks, func(i, j int) bool { return n.Marks[i].Type < n.Marks[j].Type })
}

// RemoveMark 移除文本节点上类型为 typ 的标记。
func (n *Node) RemoveMark(typ MarkType) {
	var marks []*Mark // 标记切片可能与其他节点共享底层数组，这里不原地修改
	for _, m := range n.Marks {
		if typ != m.Type {
			marks = append(marks, m)
		}
	}
	n.Marks = marks
}

// Mark 返回文本节点上类型为 typ 的标记，没有的话返回 nil。
func (n *Node) Mark(typ MarkType) *Mark {
	for _, m := range n.Marks {
		if typ == m.Type {
			return m
		}
	}
	return nil
}

// HasMark 判断文本节点是否带有类型为 typ 的标记。
func (n *Node) HasMark(typ MarkType) bool {
	return nil != n.Mark(typ)
}

// WithMark 返回 marks 加上 m 后的标记集合，marks 本身不会被修改。
func WithMark(marks []*Mark, m *Mark) []*Mark {
	n := &Node{Marks: marks}
	n.AddMark(m)
	return n.Marks
}
