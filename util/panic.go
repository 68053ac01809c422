//go:build !javascript
// +build !javascript

package util

import (
	"errors"
	"runtime/debug"

	"github.com/npillmayer/schuko/tracing"
)

// RecoverPanic 恢复 panic 并将其转换为 err，转换后的错误带有调用栈。
func RecoverPanic(err *error) {
	if e := recover(); nil != e {
		stack := debug.Stack()
		errMsg := ""
		switch x := e.(type) {
		case error:
			errMsg = x.Error()
		case string:
			errMsg = x
		default:
			errMsg = "unknown panic"
		}
		tracing.Select("lbmd.util").Errorf("panic recovered: %s", errMsg)
		if nil != err {
			*err = errors.New("PANIC RECOVERED: " + errMsg + "\n\t" + string(stack) + "\n")
		}
	}
}
