// Package lbmd 提供了编辑器使用的 Markdown 引擎：自定义语法文本与文档树之间的相互转换，支持 Go 和 JavaScript。
package lbmd

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gopherjs/gopherjs/js"
	"github.com/pafthang/lbmd/ast"
	"github.com/pafthang/lbmd/parse"
	"github.com/pafthang/lbmd/paste"
	"github.com/pafthang/lbmd/render"
	"github.com/pafthang/lbmd/util"
)

const Version = "0.3.0"

// Engine 描述了引擎的顶层使用入口。
type Engine struct {
	ParseOptions  *parse.Options  // 解析选项
	RenderOptions *render.Options // 渲染选项

	FormatRendererFuncs  map[ast.NodeType]render.ExtRendererFunc // 用户自定义的文本渲染器函数
	PreviewRendererFuncs map[ast.NodeType]render.ExtRendererFunc // 用户自定义的预览渲染器函数
}

// Option 描述了引擎选项设置函数签名。
type Option func(engine *Engine)

// WithGrammar 使用 grammar 代替默认语法。
func WithGrammar(grammar *parse.Grammar) Option {
	return func(engine *Engine) {
		engine.ParseOptions.Grammar = grammar
	}
}

// New 创建一个新的引擎。
//
// 默认启用的解析选项：
//   - GFM 表格、任务列表和删除线
//   - 链接引用
//
// 默认启用的渲染选项：
//   - 预览代码块语法高亮
//   - 预览文字大小限制在 8 ~ 72 之间
func New(opts ...Option) (ret *Engine) {
	ret = &Engine{ParseOptions: parse.NewOptions(), RenderOptions: render.NewOptions()}
	ret.FormatRendererFuncs = map[ast.NodeType]render.ExtRendererFunc{}
	ret.PreviewRendererFuncs = map[ast.NodeType]render.ExtRendererFunc{}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Parse 将文本解析为文档树。解析总是成功，无法识别的语法作为纯文本保留。
func (engine *Engine) Parse(text string) *ast.Node {
	tree := parse.Parse("", util.StrToBytes(text), engine.ParseOptions)
	return tree.Root
}

// Render 将文档树渲染为文本，渲染结果再次解析后得到相同的文档树。
func (engine *Engine) Render(node *ast.Node) (ret string, err error) {
	renderer := render.NewFormatRenderer(node, engine.RenderOptions)
	for nodeType, rendererFunc := range engine.FormatRendererFuncs {
		renderer.ExtRendererFuncs[nodeType] = rendererFunc
	}
	output, err := renderer.Render()
	if nil != err {
		return
	}
	ret = util.BytesToStr(output)
	return
}

// Format 将文本解析后再渲染为文本。
func (engine *Engine) Format(text string) (string, error) {
	return engine.Render(engine.Parse(text))
}

// Sanitize 去掉粘贴的 HTML 中地址为 data: 的图片。
func (engine *Engine) Sanitize(html string) string {
	return paste.Sanitize(html)
}

// PasteHTML 将粘贴的 HTML 转换为文档树。
func (engine *Engine) PasteHTML(html string) *ast.Node {
	return paste.Tree(html)
}

// PasteHTML2Text 将粘贴的 HTML 转换为文本。
func (engine *Engine) PasteHTML2Text(html string) (string, error) {
	return engine.Render(engine.PasteHTML(html))
}

// Preview 将文本渲染为预览 HTML。
func (engine *Engine) Preview(text string) (ret string, err error) {
	renderer := render.NewHtmlRenderer(engine.Parse(text), engine.RenderOptions)
	for nodeType, rendererFunc := range engine.PreviewRendererFuncs {
		renderer.ExtRendererFuncs[nodeType] = rendererFunc
	}
	output, err := renderer.Render()
	if nil != err {
		return
	}
	ret = util.BytesToStr(output)
	return
}

// ParseJSON 将文本解析为编辑器文档 JSON。
func (engine *Engine) ParseJSON(text string) ([]byte, error) {
	return json.Marshal(engine.Parse(text))
}

// RenderJSON 将编辑器文档 JSON 渲染为文本。
func (engine *Engine) RenderJSON(data string) (ret string, err error) {
	root := &ast.Node{}
	if err = json.Unmarshal(util.StrToBytes(data), root); nil != err {
		err = fmt.Errorf("decode document json failed: %w", err)
		return
	}
	return engine.Render(root)
}

// WordCount 统计文本解析后内容的字数和单词数。
func (engine *Engine) WordCount(text string) (runeCount, wordCount int) {
	return util.WordCount(engine.Parse(text).Content())
}

// 以下 Setters 主要是给 JavaScript 端导出方法用。

func (engine *Engine) SetGFMTable(b bool) {
	engine.ParseOptions.GFMTable = b
}

func (engine *Engine) SetGFMTaskListItem(b bool) {
	engine.ParseOptions.GFMTaskListItem = b
}

func (engine *Engine) SetGFMStrikethrough(b bool) {
	engine.ParseOptions.GFMStrikethrough = b
}

func (engine *Engine) SetLinkRef(b bool) {
	engine.ParseOptions.LinkRef = b
}

func (engine *Engine) SetDataImage(b bool) {
	engine.ParseOptions.DataImage = b
}

func (engine *Engine) SetCodeSyntaxHighlight(b bool) {
	engine.RenderOptions.CodeSyntaxHighlight = b
}

func (engine *Engine) SetCodeSyntaxHighlightStyleName(name string) {
	engine.RenderOptions.CodeSyntaxHighlightStyleName = name
}

func (engine *Engine) SetCodeSyntaxHighlightClassPrefix(prefix string) {
	engine.RenderOptions.CodeSyntaxHighlightClassPrefix = prefix
}

// SetTextSizeRange 设置预览中文字大小的范围。
func (engine *Engine) SetTextSizeRange(min, max int) {
	if min > max {
		min, max = max, min
	}
	engine.RenderOptions.TextSizeMin, engine.RenderOptions.TextSizeMax = min, max
}

// SetTextColorPattern 设置预览中允许的文字颜色，pattern 为空时恢复默认值。
func (engine *Engine) SetTextColorPattern(pattern string) error {
	if "" == pattern {
		engine.RenderOptions.TextColorPattern = render.DefaultTextColorPattern
		return nil
	}
	re, err := regexp.Compile(pattern)
	if nil != err {
		return fmt.Errorf("invalid text color pattern [%s]: %w", pattern, err)
	}
	engine.RenderOptions.TextColorPattern = re
	return nil
}

// SetJSRenderers 设置 JavaScript 端自定义的渲染器，options["renderers"] 的键为 Format 或者 Preview，
// 值为包含 renderParagraph 这样的方法的对象。
func (engine *Engine) SetJSRenderers(options map[string]map[string]*js.Object) {
	for rendererType, extRenderer := range options["renderers"] {
		switch extRenderer.Interface().(type) { // 稍微进行一点格式校验
		case map[string]interface{}:
		default:
			panic("invalid type [" + rendererType + "]")
		}

		var rendererFuncs map[ast.NodeType]render.ExtRendererFunc
		switch rendererType {
		case "Format":
			rendererFuncs = engine.FormatRendererFuncs
		case "Preview":
			rendererFuncs = engine.PreviewRendererFuncs
		default:
			panic("unknown ext renderer func [" + rendererType + "]")
		}

		renderFuncs := extRenderer.Interface().(map[string]interface{})
		for funcName := range renderFuncs {
			if !strings.HasPrefix(funcName, "render") {
				continue
			}
			nodeType := ast.Str2NodeType("Node" + funcName[len("render"):])
			if 0 > nodeType {
				continue
			}
			rendererFuncs[nodeType] = func(node *ast.Node, entering bool) (string, ast.WalkStatus) {
				ret := extRenderer.Call(funcName, js.MakeWrapper(node), entering).Interface().([]interface{})
				return ret[0].(string), ast.WalkStatus(ret[1].(float64))
			}
		}
	}
}
