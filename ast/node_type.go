package ast

// NodeType 描述了节点类型。
type NodeType int

const (
	NodeDocument NodeType = iota // 根

	// 块级节点

	NodeParagraph      // 段落
	NodeHeading        // 标题
	NodeBulletList     // 无序列表
	NodeOrderedList    // 有序列表
	NodeListItem       // 列表项
	NodeBlockquote     // 块引用
	NodeCodeBlock      // 代码块
	NodeTable          // 表格
	NodeTableRow       // 表格行
	NodeTableCell      // 表格单元格
	NodeSpoilerBlock   // 剧透块 >!
	NodeAlignedBlock   // 对齐块 [center] [right]
	NodeBlankLine      // 空行 [lb-blank][/lb-blank]
	NodeHorizontalRule // 分隔线

	// 行级节点

	NodeText      // 文本
	NodeHardBreak // 硬换行
	NodeImage     // 图片
	NodeLbIndent  // 缩进 [lb-i]

	nodeTypeCount
)

var nodeTypeStrs = [...]string{
	NodeDocument:       "NodeDocument",
	NodeParagraph:      "NodeParagraph",
	NodeHeading:        "NodeHeading",
	NodeBulletList:     "NodeBulletList",
	NodeOrderedList:    "NodeOrderedList",
	NodeListItem:       "NodeListItem",
	NodeBlockquote:     "NodeBlockquote",
	NodeCodeBlock:      "NodeCodeBlock",
	NodeTable:          "NodeTable",
	NodeTableRow:       "NodeTableRow",
	NodeTableCell:      "NodeTableCell",
	NodeSpoilerBlock:   "NodeSpoilerBlock",
	NodeAlignedBlock:   "NodeAlignedBlock",
	NodeBlankLine:      "NodeBlankLine",
	NodeHorizontalRule: "NodeHorizontalRule",
	NodeText:           "NodeText",
	NodeHardBreak:      "NodeHardBreak",
	NodeImage:          "NodeImage",
	NodeLbIndent:       "NodeLbIndent",
}

// 编辑器文档 JSON 中使用的类型名。
var nodeTypeNames = [...]string{
	NodeDocument:       "doc",
	NodeParagraph:      "paragraph",
	NodeHeading:        "heading",
	NodeBulletList:     "bulletList",
	NodeOrderedList:    "orderedList",
	NodeListItem:       "listItem",
	NodeBlockquote:     "blockquote",
	NodeCodeBlock:      "codeBlock",
	NodeTable:          "table",
	NodeTableRow:       "tableRow",
	NodeTableCell:      "tableCell",
	NodeSpoilerBlock:   "spoilerBlock",
	NodeAlignedBlock:   "alignedBlock",
	NodeBlankLine:      "blankLine",
	NodeHorizontalRule: "horizontalRule",
	NodeText:           "text",
	NodeHardBreak:      "hardBreak",
	NodeImage:          "image",
	NodeLbIndent:       "lbIndent",
}

func (typ NodeType) String() string {
	if 0 > typ || nodeTypeCount <= typ {
		return "NodeUnknown"
	}
	return nodeTypeStrs[typ]
}

// Name 返回节点类型在编辑器文档 JSON 中的名称。
func (typ NodeType) Name() string {
	if 0 > typ || nodeTypeCount <= typ {
		return ""
	}
	return nodeTypeNames[typ]
}

// Str2NodeType 将 NodeParagraph 这样的字符串转换为节点类型，找不到时返回 -1。
func Str2NodeType(nodeTypeStr string) NodeType {
	for i, s := range nodeTypeStrs {
		if s == nodeTypeStr {
			return NodeType(i)
		}
	}
	return -1
}

// Name2NodeType 将 paragraph 这样的 JSON 类型名转换为节点类型，找不到时返回 -1。
func Name2NodeType(name string) NodeType {
	for i, s := range nodeTypeNames {
		if s == name {
			return NodeType(i)
		}
	}
	return -1
}
