package parse

import (
	"strings"

	"github.com/pafthang/lbmd/ast"
	"github.com/pafthang/lbmd/lex"
)

// Tokens2Tree 将块级单元构建为文档树。
//
// 构建总是成功：无法构建的单元降级为纯文本或者空段落。需要子节点的容器节点没有内容时会补上一个空段落。
func Tokens2Tree(tokens []*lex.Token) (ret *ast.Node) {
	ret = &ast.Node{Type: ast.NodeDocument}
	appendBlocks(ret, tokens)
	ensureChild(ret)
	return
}

func appendBlocks(parent *ast.Node, tokens []*lex.Token) {
	for _, token := range tokens {
		if nil == token {
			continue
		}
		if n := block2Node(token); nil != n {
			parent.AppendChild(n)
		}
	}
}

func block2Node(token *lex.Token) (ret *ast.Node) {
	switch token.Type {
	case lex.TokenSpace, lex.TokenDef:
		return nil
	case lex.TokenParagraph:
		ret = &ast.Node{Type: ast.NodeParagraph}
		appendInlines(ret, token.Tokens)
	case lex.TokenHeading:
		ret = &ast.Node{Type: ast.NodeHeading, Level: token.Depth}
		if 1 > ret.Level || 6 < ret.Level {
			tracer().Debugf("heading depth [%d] out of range", token.Depth)
			ret.Level = min(max(ret.Level, 1), 6)
		}
		appendInlines(ret, token.Tokens)
	case lex.TokenCode:
		ret = &ast.Node{Type: ast.NodeCodeBlock, Language: token.Lang, Text: token.Text}
	case lex.TokenHr:
		ret = &ast.Node{Type: ast.NodeHorizontalRule}
	case lex.TokenBlockquote:
		ret = &ast.Node{Type: ast.NodeBlockquote}
		appendBlocks(ret, token.Tokens)
		ensureChild(ret)
	case lex.TokenList:
		ret = &ast.Node{Type: ast.NodeBulletList, Tight: !token.Loose}
		if token.Ordered {
			ret.Type, ret.Start = ast.NodeOrderedList, token.Start
		}
		for _, item := range token.Tokens {
			ret.AppendChild(listItem2Node(item))
		}
		if nil == ret.FirstChild {
			ret.AppendChild(listItem2Node(&lex.Token{Type: lex.TokenListItem}))
		}
	case lex.TokenListItem:
		// 列表外的列表项
		ret = &ast.Node{Type: ast.NodeBulletList, Tight: true}
		ret.AppendChild(listItem2Node(token))
	case lex.TokenTable:
		ret = &ast.Node{Type: ast.NodeTable, Aligns: append([]string{}, token.Aligns...)}
		ret.AppendChild(tableRow2Node(token.Tokens, true))
		for _, row := range token.Rows {
			ret.AppendChild(tableRow2Node(row, false))
		}
	case lex.TokenSpoilerBlock:
		ret = &ast.Node{Type: ast.NodeSpoilerBlock}
		appendBlocks(ret, token.Tokens)
		ensureChild(ret)
	case lex.TokenAlignBlock:
		ret = &ast.Node{Type: ast.NodeAlignedBlock, Align: alignment(token.Align)}
		appendBlocks(ret, token.Tokens)
		ensureChild(ret)
	case lex.TokenBlankLine:
		ret = &ast.Node{Type: ast.NodeBlankLine}
	default:
		ret = &ast.Node{Type: ast.NodeParagraph}
		if !token.Type.IsBlock() {
			// 块级位置上的行级单元
			appendInlines(ret, []*lex.Token{token})
			return
		}
		tracer().Debugf("unexpected block token [%s], degrade to an empty paragraph", token.Type)
	}
	return
}

func listItem2Node(token *lex.Token) (ret *ast.Node) {
	ret = &ast.Node{Type: ast.NodeListItem}
	if nil == token {
		ensureChild(ret)
		return
	}
	if lex.TokenListItem != token.Type {
		tracer().Debugf("unexpected list child [%s], wrap as a list item", token.Type)
		appendBlocks(ret, []*lex.Token{token})
		ensureChild(ret)
		return
	}

	ret.Task, ret.Checked = token.Task, token.Checked
	appendBlocks(ret, token.Tokens)
	ensureChild(ret)
	return
}

func tableRow2Node(cells []*lex.Token, header bool) (ret *ast.Node) {
	ret = &ast.Node{Type: ast.NodeTableRow}
	for _, cell := range cells {
		n := &ast.Node{Type: ast.NodeTableCell, Header: header}
		if nil != cell {
			appendInlines(n, cell.Tokens)
		}
		ret.AppendChild(n)
	}
	return
}

// alignment 返回对齐块的对齐方式，无法识别时默认居中。
func alignment(align string) string {
	if "right" == strings.ToLower(align) {
		return "right"
	}
	return "center"
}

// ensureChild 为没有子节点的容器节点补上一个空段落。
func ensureChild(n *ast.Node) {
	if nil == n.FirstChild {
		n.AppendChild(&ast.Node{Type: ast.NodeParagraph})
	}
}

// appendInlines 将行级单元展开为带标记的文本节点，相邻的同标记文本节点会被合并。
func appendInlines(parent *ast.Node, tokens []*lex.Token) {
	inline2Nodes(parent, tokens, nil)
	parent.MergeTexts()
}

func inline2Nodes(parent *ast.Node, tokens []*lex.Token, marks []*ast.Mark) {
	for _, token := range tokens {
		if nil == token {
			continue
		}

		switch token.Type {
		case lex.TokenText, lex.TokenEscape:
			appendText(parent, token.Text, marks)
		case lex.TokenCodeSpan:
			appendText(parent, token.Text, ast.WithMark(marks, &ast.Mark{Type: ast.MarkCode}))
		case lex.TokenStrong:
			inline2Nodes(parent, token.Tokens, ast.WithMark(marks, &ast.Mark{Type: ast.MarkBold}))
		case lex.TokenEm:
			inline2Nodes(parent, token.Tokens, ast.WithMark(marks, &ast.Mark{Type: ast.MarkItalic}))
		case lex.TokenDel:
			inline2Nodes(parent, token.Tokens, ast.WithMark(marks, &ast.Mark{Type: ast.MarkStrike}))
		case lex.TokenSpoilerInline:
			inline2Nodes(parent, token.Tokens, ast.WithMark(marks, &ast.Mark{Type: ast.MarkSpoilerInline}))
		case lex.TokenTextColor:
			inline2Nodes(parent, token.Tokens, ast.WithMark(marks, &ast.Mark{Type: ast.MarkTextColor, Color: token.Color}))
		case lex.TokenTextSize:
			inline2Nodes(parent, token.Tokens, ast.WithMark(marks, &ast.Mark{Type: ast.MarkTextSize, Size: token.Size}))
		case lex.TokenSub:
			inline2Nodes(parent, token.Tokens, ast.WithMark(marks, &ast.Mark{Type: ast.MarkSubscript}))
		case lex.TokenSup:
			inline2Nodes(parent, token.Tokens, ast.WithMark(marks, &ast.Mark{Type: ast.MarkSuperscript}))
		case lex.TokenLink:
			inline2Nodes(parent, token.Tokens, ast.WithMark(marks, &ast.Mark{Type: ast.MarkLink, Href: token.Href, Title: token.Title}))
		case lex.TokenImage:
			parent.AppendChild(&ast.Node{Type: ast.NodeImage, Src: token.Href, Alt: token.Text, Title: token.Title})
		case lex.TokenBr:
			if last := parent.LastChild; nil != last && ast.NodeText == last.Type {
				last.Text = strings.TrimRight(last.Text, " ")
			}
			parent.AppendChild(&ast.Node{Type: ast.NodeHardBreak})
		case lex.TokenLbIndent:
			parent.AppendChild(&ast.Node{Type: ast.NodeLbIndent})
		default:
			tracer().Debugf("unexpected inline token [%s], degrade to text", token.Type)
			appendText(parent, token.Raw, marks)
		}
	}
}

func appendText(parent *ast.Node, text string, marks []*ast.Mark) {
	if "" == text {
		return
	}
	parent.AppendChild(&ast.Node{Type: ast.NodeText, Text: text, Marks: marks})
}
