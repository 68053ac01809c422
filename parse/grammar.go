package parse

import (
	"sync"

	"github.com/pafthang/lbmd/lex"
)

// Level 描述了语法规则的级别。
type Level int

const (
	LevelBlock  Level = iota // 块级
	LevelInline              // 行级
)

// StartFunc 返回 src 中规则可能匹配的最早位置，没有的话返回 -1。
//
// 返回值是下界：规则不会在该位置之前匹配。行级文本单元据此截断，报告得比实际匹配位置晚会导致漏匹配。
type StartFunc func(src string) int

// TokenizeFunc 尝试在 src 开头进行匹配，不匹配时返回 nil。返回单元的 Raw 必须是 src 的前缀。
type TokenizeFunc func(context *Context, src string) *lex.Token

// Rule 描述了一条语法规则，注册后不可变。
type Rule struct {
	Name     string
	Level    Level
	Start    StartFunc
	Tokenize TokenizeFunc

	// Interrupt 为 true 的块级规则可以打断正在进行的段落。
	Interrupt bool
	// Opens 判断 src 开头是否能开始该规则的块，只检查标记，不解析嵌套内容。
	// 段落打断检查使用它，为 nil 时退回到用 Tokenize 试探匹配。
	Opens func(src string) bool
}

// Grammar 描述了一组有序的语法规则。Grammar 创建后不再修改，可以在多个解析调用间共享。
type Grammar struct {
	block  []Rule
	inline []Rule
}

// NewGrammar 使用 rules 创建语法，规则按给定顺序尝试。
func NewGrammar(rules ...Rule) (ret *Grammar) {
	ret = &Grammar{}
	for _, rule := range rules {
		ret.add(rule)
	}
	return
}

func (g *Grammar) add(rule Rule) {
	if nil == rule.Tokenize {
		tracer().Errorf("rule [%s] has no tokenize func, ignored", rule.Name)
		return
	}
	if LevelBlock == rule.Level {
		g.block = append(g.block, rule)
	} else {
		g.inline = append(g.inline, rule)
	}
}

// With 返回一个新语法，rules 先于 g 中已有的规则尝试。g 本身不会被修改。
func (g *Grammar) With(rules ...Rule) (ret *Grammar) {
	ret = NewGrammar(rules...)
	ret.block = append(ret.block, g.block...)
	ret.inline = append(ret.inline, g.inline...)
	return
}

// Rules 返回语法中的所有规则，块级在前。
func (g *Grammar) Rules() (ret []Rule) {
	ret = make([]Rule, 0, len(g.block)+len(g.inline))
	ret = append(ret, g.block...)
	ret = append(ret, g.inline...)
	return
}

// Rule 按名称查找规则。
func (g *Grammar) Rule(name string) (ret Rule, ok bool) {
	for _, rule := range g.Rules() {
		if name == rule.Name {
			return rule, true
		}
	}
	return
}

var (
	defaultGrammar     *Grammar
	defaultGrammarOnce sync.Once
)

// DefaultGrammar 返回进程内共享的默认语法，包含标准 Markdown 规则和所有扩展规则。
func DefaultGrammar() *Grammar {
	defaultGrammarOnce.Do(func() {
		rules := blockRules()
		rules = append(rules, inlineRules()...)
		defaultGrammar = NewGrammar(rules...)
	})
	return defaultGrammar
}
