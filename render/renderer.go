// Package render 实现了文档树的渲染：格式化渲染器输出可以再次解析的文本，HTML 渲染器输出预览。
package render

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pafthang/lbmd/ast"
	"github.com/pafthang/lbmd/editor"
	"github.com/pafthang/lbmd/lex"
	"github.com/pafthang/lbmd/util"
)

// tracer 返回渲染使用的跟踪器。
func tracer() tracing.Trace {
	return tracing.Select("lbmd.render")
}

// Options 描述了渲染选项。
type Options struct {
	// CodeSyntaxHighlight 设置预览是否对代码块进行语法高亮。
	CodeSyntaxHighlight bool
	// CodeSyntaxHighlightStyleName 指定语法高亮的样式名。
	CodeSyntaxHighlightStyleName string
	// CodeSyntaxHighlightClassPrefix 是语法高亮 CSS 类名的前缀。
	CodeSyntaxHighlightClassPrefix string
	// TextSizeMin 和 TextSizeMax 是预览中文字大小的范围，超出时取边界值。
	TextSizeMin int
	TextSizeMax int
	// TextColorPattern 是预览中允许的文字颜色，不匹配的颜色不输出样式。
	TextColorPattern *regexp.Regexp
	// URLSchemePattern 是预览中链接和图片地址允许的协议，不匹配的地址不输出。
	URLSchemePattern *regexp.Regexp
}

// DefaultTextColorPattern 匹配颜色名、#rgb/#rrggbb 以及 rgb()/rgba()。
var DefaultTextColorPattern = regexp.MustCompile(`^(?i:[a-z]{3,20}|#[0-9a-f]{3}|#[0-9a-f]{6}|rgba?\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*(,\s*(0|1|0?\.\d+)\s*)?\))$`)

// DefaultURLSchemePattern 匹配 http、https、mailto、ftp 和 tel，没有协议的相对地址不受限制。
var DefaultURLSchemePattern = regexp.MustCompile(`^(?i:https?|mailto|ftp|tel)$`)

// NewOptions 创建默认的渲染选项。
func NewOptions() *Options {
	return &Options{
		CodeSyntaxHighlight:            true,
		CodeSyntaxHighlightStyleName:   "github",
		CodeSyntaxHighlightClassPrefix: editor.HighlightClassPrefix,
		TextSizeMin:                    8,
		TextSizeMax:                    72,
		TextColorPattern:               DefaultTextColorPattern,
		URLSchemePattern:               DefaultURLSchemePattern,
	}
}

// RendererFunc 描述了节点渲染函数，entering 为 true 时表示进入节点，false 时表示离开节点。
type RendererFunc func(n *ast.Node, entering bool) ast.WalkStatus

// ExtRendererFunc 描述了用户自定义的节点渲染函数，返回的内容直接输出。
type ExtRendererFunc func(n *ast.Node, entering bool) (string, ast.WalkStatus)

// Renderer 描述了渲染器接口。
type Renderer interface {
	// Render 渲染输出。
	Render() (output []byte, err error)
}

// BaseRenderer 描述了渲染器结构。
type BaseRenderer struct {
	Options          *Options                         // 渲染选项
	RendererFuncs    map[ast.NodeType]RendererFunc    // 渲染器
	ExtRendererFuncs map[ast.NodeType]ExtRendererFunc // 用户自定义的渲染器，优先于 RendererFuncs
	Root             *ast.Node                        // 待渲染的根节点
	Writer           *bytes.Buffer                    // 输出缓冲
	LastOut          byte                             // 最新输出的一个字节
	NodeWriterStack  []*bytes.Buffer                  // 节点输出缓冲栈，容器节点先输出到自己的缓冲中再整体处理
}

// NewBaseRenderer 构造一个 BaseRenderer。
func NewBaseRenderer(root *ast.Node, options *Options) *BaseRenderer {
	if nil == options {
		options = NewOptions()
	}
	ret := &BaseRenderer{Options: options, RendererFuncs: map[ast.NodeType]RendererFunc{}, ExtRendererFuncs: map[ast.NodeType]ExtRendererFunc{}, Root: root}
	ret.Writer = &bytes.Buffer{}
	ret.Writer.Grow(4096)
	return ret
}

// ErrMissingRendererFunc 表示没有节点类型对应的渲染函数。
var ErrMissingRendererFunc = errors.New("missing renderer func")

// Render 从根节点开始遍历并渲染。
func (r *BaseRenderer) Render() (output []byte, err error) {
	defer util.RecoverPanic(&err)

	if nil == r.Root {
		return nil, errors.New("nothing to render")
	}
	r.LastOut = lex.ItemNewline
	ast.Walk(r.Root, func(n *ast.Node, entering bool) ast.WalkStatus {
		if extRender := r.ExtRendererFuncs[n.Type]; nil != extRender {
			out, status := extRender(n, entering)
			r.WriteString(out)
			return status
		}
		render := r.RendererFuncs[n.Type]
		if nil == render {
			err = fmt.Errorf("%w for node type [%s]", ErrMissingRendererFunc, n.Type)
			return ast.WalkStop
		}
		return render(n, entering)
	})
	if nil != err {
		tracer().Errorf("render failed: %s", err)
		return nil, err
	}
	output = r.Writer.Bytes()
	return
}

// WriteByte 输出一个字节。
func (r *BaseRenderer) WriteByte(c byte) {
	r.Writer.WriteByte(c)
	r.LastOut = c
}

// Write 输出指定的字节数组。
func (r *BaseRenderer) Write(content []byte) {
	if length := len(content); 0 < length {
		r.Writer.Write(content)
		r.LastOut = content[length-1]
	}
}

// WriteString 输出指定的字符串。
func (r *BaseRenderer) WriteString(content string) {
	if length := len(content); 0 < length {
		r.Writer.WriteString(content)
		r.LastOut = content[length-1]
	}
}

// Newline 会在最新内容不是换行符 \n 时输出一个换行符。
func (r *BaseRenderer) Newline() {
	if lex.ItemNewline != r.LastOut {
		r.Writer.WriteByte(lex.ItemNewline)
		r.LastOut = lex.ItemNewline
	}
}

// PushWriter 将当前输出缓冲入栈，之后的输出写入新的缓冲。
func (r *BaseRenderer) PushWriter() {
	r.NodeWriterStack = append(r.NodeWriterStack, r.Writer)
	r.Writer = &bytes.Buffer{}
	r.LastOut = lex.ItemNewline
}

// PopWriter 恢复上一个输出缓冲，返回当前缓冲中的内容。
func (r *BaseRenderer) PopWriter() (ret []byte) {
	ret = r.Writer.Bytes()
	last := len(r.NodeWriterStack) - 1
	r.Writer = r.NodeWriterStack[last]
	r.NodeWriterStack = r.NodeWriterStack[:last]
	r.LastOut = lex.ItemNewline
	if buf := r.Writer.Bytes(); 0 < len(buf) {
		r.LastOut = buf[len(buf)-1]
	}
	return
}
