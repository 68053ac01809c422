//go:build javascript
// +build javascript

package parse

import (
	"strings"
)

// find 查找 label 对应的链接引用定义。
func (defs linkDefs) find(label string) *linkDef {
	label = normalizeLabel(label)
	for _, def := range defs {
		// JS 版不支持 Unicode case fold，因为引入 golang.org/x/text/cases 后打包体积太大
		if strings.EqualFold(def.label, label) {
			return def
		}
	}
	return nil
}
