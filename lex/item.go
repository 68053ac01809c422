// Package lex 定义了词法单元以及逐字节扫描时使用的辅助函数。
package lex

const (
	ItemEnd          = byte(0)
	ItemNewline      = byte('\n')
	ItemTab          = byte('\t')
	ItemSpace        = byte(' ')
	ItemBang         = byte('!')
	ItemCrosshatch   = byte('#')
	ItemAsterisk     = byte('*')
	ItemPlus         = byte('+')
	ItemHyphen       = byte('-')
	ItemDot          = byte('.')
	ItemSlash        = byte('/')
	ItemColon        = byte(':')
	ItemLess         = byte('<')
	ItemEqual        = byte('=')
	ItemGreater      = byte('>')
	ItemOpenBracket  = byte('[')
	ItemBackslash    = byte('\\')
	ItemCloseBracket = byte(']')
	ItemCaret        = byte('^')
	ItemUnderscore   = byte('_')
	ItemBacktick     = byte('`')
	ItemPipe         = byte('|')
	ItemTilde        = byte('~')
	ItemOpenParen    = byte('(')
	ItemCloseParen   = byte(')')
	ItemDoublequote  = byte('"')
	ItemSinglequote  = byte('\'')
)

// Peek 获取 s 中 pos 位置上的字节，越界时返回 ItemEnd。
func Peek(s string, pos int) byte {
	if 0 > pos || len(s) <= pos {
		return ItemEnd
	}
	return s[pos]
}

// IsWhitespace 判断 token 是否是空白字符。
func IsWhitespace(token byte) bool {
	return ItemSpace == token || ItemTab == token || ItemNewline == token || '\r' == token || '\f' == token || '\v' == token
}

// IsDigit 判断 token 是否是十进制数字。
func IsDigit(token byte) bool {
	return '0' <= token && '9' >= token
}

// IsASCIILetterNum 判断 token 是否是 ASCII 字母或数字。
func IsASCIILetterNum(token byte) bool {
	return IsDigit(token) || ('a' <= token && 'z' >= token) || ('A' <= token && 'Z' >= token)
}

// IsASCIIPunct 判断 token 是否是 ASCII 标点符号。
func IsASCIIPunct(token byte) bool {
	return (0x21 <= token && 0x2F >= token) || (0x3A <= token && 0x40 >= token) ||
		(0x5B <= token && 0x60 >= token) || (0x7B <= token && 0x7E >= token)
}
