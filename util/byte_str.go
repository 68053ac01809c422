//go:build !javascript
// +build !javascript

package util

import "unsafe"

// BytesToStr 不复制地将 []byte 转换为 string，转换后 bytes 不能再被修改。
func BytesToStr(bytes []byte) string {
	if 1 > len(bytes) {
		return ""
	}
	return unsafe.String(unsafe.SliceData(bytes), len(bytes))
}

// StrToBytes 不复制地将 string 转换为 []byte，返回的切片只读。
func StrToBytes(str string) []byte {
	if "" == str {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(str), len(str))
}
