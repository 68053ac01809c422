package lex

// TokenType 描述了词法单元类型。
type TokenType int

const (
	// 块级

	TokenSpace        TokenType = iota // 空行
	TokenParagraph                     // 段落
	TokenHeading                       // ATX 标题
	TokenCode                          // 围栏代码块
	TokenHr                            // 分隔线
	TokenBlockquote                    // 块引用
	TokenList                          // 列表
	TokenListItem                      // 列表项
	TokenTable                         // 表格
	TokenTableCell                     // 表格单元格
	TokenDef                           // 链接引用定义
	TokenSpoilerBlock                  // 剧透块
	TokenAlignBlock                    // 对齐块
	TokenBlankLine                     // 空行标记

	// 行级

	TokenText          // 文本
	TokenEscape        // 转义字符
	TokenCodeSpan      // 行级代码
	TokenLink          // 链接
	TokenImage         // 图片
	TokenStrong        // 粗体
	TokenEm            // 斜体
	TokenDel           // 删除线
	TokenBr            // 硬换行
	TokenSpoilerInline // 行级剧透
	TokenTextColor     // 文字颜色
	TokenTextSize      // 文字大小
	TokenSub           // 下标
	TokenSup           // 上标
	TokenLbIndent      // 缩进标记

	tokenTypeCount
)

var tokenTypeStrs = [...]string{
	TokenSpace:         "space",
	TokenParagraph:     "paragraph",
	TokenHeading:       "heading",
	TokenCode:          "code",
	TokenHr:            "hr",
	TokenBlockquote:    "blockquote",
	TokenList:          "list",
	TokenListItem:      "list_item",
	TokenTable:         "table",
	TokenTableCell:     "table_cell",
	TokenDef:           "def",
	TokenSpoilerBlock:  "spoiler_block",
	TokenAlignBlock:    "align_block",
	TokenBlankLine:     "blank_line",
	TokenText:          "text",
	TokenEscape:        "escape",
	TokenCodeSpan:      "codespan",
	TokenLink:          "link",
	TokenImage:         "image",
	TokenStrong:        "strong",
	TokenEm:            "em",
	TokenDel:           "del",
	TokenBr:            "br",
	TokenSpoilerInline: "spoiler_inline",
	TokenTextColor:     "text_color",
	TokenTextSize:      "text_size",
	TokenSub:           "sub",
	TokenSup:           "sup",
	TokenLbIndent:      "lb_indent",
}

func (typ TokenType) String() string {
	if 0 > typ || tokenTypeCount <= typ {
		return "unknown"
	}
	return tokenTypeStrs[typ]
}

// Token 描述了词法单元。Raw 总是源码中被消费掉的那段前缀。
type Token struct {
	Type TokenType

	Raw    string   // 匹配到的源码
	Text   string   // 提取出的内部文本
	Tokens []*Token // 子词法单元，块级容器为块级单元，文本块为行级单元

	Depth   int    // 标题级别
	Lang    string // 代码块语言
	Ordered bool   // 有序列表
	Start   int    // 有序列表起始序号
	Loose   bool   // 松散列表
	Task    bool   // 任务列表项
	Checked bool   // 任务列表项已勾选
	Label   string // 链接引用定义的标签
	Href    string // 链接/图片地址
	Title   string // 链接/图片标题
	Color   string // 文字颜色
	Size    int    // 文字大小
	Align   string // 对齐方式

	Rows   [][]*Token // 表格行，第一行为表头，单元格类型为 TokenTableCell
	Aligns []string   // 表格列对齐
}

// IsBlock 判断词法单元是否是块级单元。
func (typ TokenType) IsBlock() bool {
	return TokenBlankLine >= typ
}
