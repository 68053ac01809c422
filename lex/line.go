package lex

import (
	"strings"
)

// Line 返回 src 的第一行（不含换行符）以及该行连同换行符的长度。
func Line(src string) (line string, length int) {
	if i := strings.IndexByte(src, ItemNewline); 0 <= i {
		return src[:i], i + 1
	}
	return src, len(src)
}

// Lines 将 s 按换行符切分为行。
func Lines(s string) []string {
	return strings.Split(s, "\n")
}

// IsBlank 判断 line 是否是空行。
func IsBlank(line string) bool {
	for i := 0; i < len(line); i++ {
		if !IsWhitespace(line[i]) {
			return false
		}
	}
	return true
}

// Indent 计算 line 的缩进列数，制表符按 4 列对齐。
func Indent(line string) (ret int) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ItemSpace:
			ret++
		case ItemTab:
			ret += 4 - ret%4
		default:
			return
		}
	}
	return
}

// TrimIndent 去掉 line 开头最多 n 列的缩进。
func TrimIndent(line string, n int) string {
	col := 0
	i := 0
	for ; i < len(line) && col < n; i++ {
		switch line[i] {
		case ItemSpace:
			col++
		case ItemTab:
			width := 4 - col%4
			if col+width > n {
				// 制表符跨过了截断位置，用空格补齐剩余列
				return strings.Repeat(" ", col+width-n) + line[i+1:]
			}
			col += width
		default:
			return line[i:]
		}
	}
	return line[i:]
}

// TrimRightNewlines 去掉 s 结尾的换行符。
func TrimRightNewlines(s string) string {
	return strings.TrimRight(s, "\n")
}
