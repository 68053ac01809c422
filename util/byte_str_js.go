//go:build javascript
// +build javascript

package util

// BytesToStr 转换 []byte 为 string，GopherJS 下不能使用 unsafe 转换。
func BytesToStr(bytes []byte) string {
	return string(bytes)
}

// StrToBytes 转换 string 为 []byte。
func StrToBytes(str string) []byte {
	return []byte(str)
}
