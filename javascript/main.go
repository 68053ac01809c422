package main

import (
	"github.com/gopherjs/gopherjs/js"
	"github.com/pafthang/lbmd"
	"github.com/pafthang/lbmd/ast"
	"github.com/pafthang/lbmd/editor"
	"github.com/pafthang/lbmd/paste"
)

func main() {
	js.Global.Set("LBMD", map[string]interface{}{
		"Version":          lbmd.Version,
		"New":              New,
		"WalkStop":         ast.WalkStop,
		"WalkSkipChildren": ast.WalkSkipChildren,
		"WalkContinue":     ast.WalkContinue,
		"BlankLine":        editor.BlankLine,
		"IndentMarker":     editor.IndentMarker,
		"Sanitize":         paste.Sanitize,
		"IsDataURI":        paste.IsDataURI,
		"Markdown2JSON":    Markdown2JSON,
		"JSON2Markdown":    JSON2Markdown,
	})
}

// New 创建引擎，options["renderers"] 中可以设置自定义渲染器。
func New(options map[string]map[string]*js.Object) *js.Object {
	engine := lbmd.New()
	engine.SetJSRenderers(options)
	return js.MakeWrapper(engine)
}

// Markdown2JSON 使用默认选项将文本解析为编辑器文档 JSON，失败时返回空字符串。
func Markdown2JSON(text string) string {
	data, err := lbmd.New().ParseJSON(text)
	if nil != err {
		return ""
	}
	return string(data)
}

// JSON2Markdown 使用默认选项将编辑器文档 JSON 渲染为文本，失败时返回空字符串。
func JSON2Markdown(data string) string {
	ret, err := lbmd.New().RenderJSON(data)
	if nil != err {
		return ""
	}
	return ret
}
