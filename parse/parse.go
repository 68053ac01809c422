// Package parse 实现了文本到文档树的解析：由语法规则驱动的两阶段词法分析以及单元到文档树的构建。
package parse

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pafthang/lbmd/ast"
	"github.com/pafthang/lbmd/lex"
	"github.com/pafthang/lbmd/util"
)

// tracer 返回解析使用的跟踪器。
func tracer() tracing.Trace {
	return tracing.Select("lbmd.parse")
}

// Tree 描述了解析结果。
type Tree struct {
	Name string    // 名称，可以为空
	Root *ast.Node // 根节点
}

// Options 描述了解析选项。
type Options struct {
	// GFMTable 设置是否打开“GFM 表”支持。
	GFMTable bool
	// GFMTaskListItem 设置是否打开“GFM 任务列表项”支持。
	GFMTaskListItem bool
	// GFMStrikethrough 设置是否打开“GFM 删除线”支持。
	GFMStrikethrough bool
	// LinkRef 设置是否打开“链接引用”支持。
	LinkRef bool
	// DataImage 设置是否允许 data: 地址的图片。
	DataImage bool
	// Grammar 是解析使用的语法，为 nil 时使用默认语法。
	Grammar *Grammar
}

// NewOptions 创建默认的解析选项。
func NewOptions() *Options {
	return &Options{
		GFMTable:         true,
		GFMTaskListItem:  true,
		GFMStrikethrough: true,
		LinkRef:          true,
	}
}

// Parse 会将 markdown 原始文本字节数组解析为一颗文档树。解析总是成功：无法识别的语法作为纯文本保留。
func Parse(name string, markdown []byte, options *Options) (ret *Tree) {
	src := normalize(util.BytesToStr(markdown))
	ret = &Tree{Name: name}

	var err error
	func() {
		defer util.RecoverPanic(&err)
		ret.Root = Tokens2Tree(Tokenize(src, options))
	}()
	if nil != err {
		tracer().Errorf("parse [%s] failed, fall back to plain text: %s", name, err)
		ret.Root = plainTree(src)
	}
	return
}

// Tokenize 对 src 进行完整的词法分析，返回块级单元，文本块单元的行级单元已经解析好。
func Tokenize(src string, options *Options) []*lex.Token {
	if nil == options {
		options = NewOptions()
	}
	grammar := options.Grammar
	if nil == grammar {
		grammar = DefaultGrammar()
	}

	var links linkDefs
	if options.LinkRef {
		links = collectLinkDefs(src)
	}
	context := newContext(options, grammar, links, 0)
	ret := context.blockTokens(src)
	context.drain()
	return ret
}

// normalize 统一换行符，替换 NUL 字符并去掉结尾的换行。
func normalize(src string) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	src = strings.ReplaceAll(src, "\u0000", "�")
	return strings.TrimRight(src, "\n")
}

// plainTree 将 src 作为一个纯文本段落构建文档树。
func plainTree(src string) (ret *ast.Node) {
	ret = &ast.Node{Type: ast.NodeDocument}
	paragraph := &ast.Node{Type: ast.NodeParagraph}
	if "" != src {
		paragraph.AppendChild(&ast.Node{Type: ast.NodeText, Text: src})
	}
	ret.AppendChild(paragraph)
	return
}
