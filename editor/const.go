// Package editor 定义了解析器和渲染器共用的编辑器标记常量。
package editor

const (
	// BlankLineOpen 空行标记开始。
	BlankLineOpen = "[lb-blank]"
	// BlankLineClose 空行标记结束。
	BlankLineClose = "[/lb-blank]"
	// BlankLine 一个完整的空行标记。
	BlankLine = BlankLineOpen + BlankLineClose

	// IndentMarker 缩进标记，两个连续的缩进标记表示首行缩进。
	IndentMarker = "[lb-i]"
)

const (
	// Nbsp 不换行空格，缩进标记在预览中渲染为该字符。
	Nbsp = "\u00a0"

	// Zwsp 零宽空格。
	Zwsp = "\u200b"
)

// SpoilerClass 是预览中剧透元素的 CSS 类名。
const SpoilerClass = "spoiler"

// HighlightClassPrefix 是预览中代码高亮 CSS 类名的前缀，chroma-styles 生成的样式表使用同样的前缀。
const HighlightClassPrefix = "highlight-"
