//go:build javascript
// +build javascript

package util

import (
	"errors"
	"fmt"
)

// RecoverPanic 恢复 panic 并将其转换为 err。
func RecoverPanic(err *error) {
	if e := recover(); nil != e {
		if nil != err {
			*err = errors.New("PANIC RECOVERED: " + fmt.Sprint(e))
		}
	}
}
