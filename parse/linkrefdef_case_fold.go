//go:build !javascript
// +build !javascript

package parse

import (
	"strings"

	"golang.org/x/text/cases"
)

// find 按 Unicode case fold 查找 label 对应的链接引用定义。
func (defs linkDefs) find(label string) *linkDef {
	label = normalizeLabel(label)
	c := cases.Fold()
	folded := c.String(label)
	for _, def := range defs {
		if strings.EqualFold(def.label, label) {
			return def
		}
		if strings.EqualFold(c.String(def.label), folded) {
			return def
		}
	}
	return nil
}
