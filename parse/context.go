package parse

import (
	"strings"

	"github.com/pafthang/lbmd/lex"
)

// maxNesting 是容器块和行级元素允许的最大嵌套深度，超出部分按纯文本处理。
const maxNesting = 64

// Context 描述了一次词法分析调用的状态。
//
// 每个 Context 拥有自己的行级解析队列，只在创建它的那次调用中使用，不在调用间共享。
type Context struct {
	ParseOption *Options // 解析选项

	grammar *Grammar
	links   linkDefs // 链接引用定义，解析开始前收集好，之后只读
	depth   int      // 嵌套深度

	queue    []*lex.Token // 等待行级解析的文本块单元
	prevChar byte         // 行级解析时当前位置之前的字符
}

func newContext(options *Options, grammar *Grammar, links linkDefs, depth int) *Context {
	return &Context{ParseOption: options, grammar: grammar, links: links, depth: depth}
}

// child 创建一个共享语法和链接定义、但拥有独立队列的子上下文。
func (context *Context) child() *Context {
	return newContext(context.ParseOption, context.grammar, context.links, context.depth+1)
}

// InlineTokens 使用完整语法对 src 进行行级词法分析。
//
// 每次调用都会创建新的上下文，所以规则在 Tokenize 中可以安全地重入调用，嵌套的扩展语法也能看到全部规则。
func (context *Context) InlineTokens(src string) []*lex.Token {
	if maxNesting <= context.depth {
		tracer().Debugf("inline nesting exceeds %d, keep as text", maxNesting)
		return []*lex.Token{{Type: lex.TokenText, Raw: src, Text: src}}
	}
	return context.child().inlineTokens(src)
}

// BlockTokens 使用完整语法对 src 进行块级词法分析，返回前排空本次调用产生的行级解析队列。
func (context *Context) BlockTokens(src string) []*lex.Token {
	if maxNesting <= context.depth {
		tracer().Debugf("block nesting exceeds %d, keep as text", maxNesting)
		return []*lex.Token{{Type: lex.TokenParagraph, Raw: src, Text: src,
			Tokens: []*lex.Token{{Type: lex.TokenText, Raw: src, Text: src}}}}
	}

	c := context.child()
	ret := c.blockTokens(src)
	c.drain()
	return ret
}

// Defer 将文本块单元放入行级解析队列，队列排空时 token.Text 的行级解析结果会写入 token.Tokens。
func (context *Context) Defer(token *lex.Token) {
	context.queue = append(context.queue, token)
}

// PrevChar 返回行级解析时当前位置之前的字符，位于开头时返回 0。
func (context *Context) PrevChar() byte {
	return context.prevChar
}

// IsLinkDef 判断 label 是否是已定义的链接引用。
func (context *Context) IsLinkDef(label string) bool {
	return nil != context.links.find(label)
}

func (context *Context) drain() {
	// 行级解析只会调用子上下文，不会再向本队列追加
	for _, token := range context.queue {
		token.Tokens = context.inlineTokens(token.Text)
	}
	context.queue = nil
}

func (context *Context) blockTokens(src string) (tokens []*lex.Token) {
	for "" != src {
		token := context.blockToken(src)
		src = src[len(token.Raw):]
		if lex.TokenSpace == token.Type && 0 < len(tokens) && lex.TokenSpace == tokens[len(tokens)-1].Type {
			tokens[len(tokens)-1].Raw += token.Raw
			continue
		}
		tokens = append(tokens, token)
	}
	return
}

func (context *Context) blockToken(src string) *lex.Token {
	for _, rule := range context.grammar.block {
		if token := context.tryRule(rule, src); nil != token {
			return token
		}
	}

	if token := space(src); nil != token {
		return token
	}
	return context.paragraph(src)
}

// tryRule 调用规则进行匹配，丢弃不满足约定的结果。
func (context *Context) tryRule(rule Rule, src string) (ret *lex.Token) {
	ret = rule.Tokenize(context, src)
	if nil == ret {
		return
	}
	if 1 > len(ret.Raw) || !strings.HasPrefix(src, ret.Raw) {
		tracer().Debugf("rule [%s] returned a raw that is not a prefix of the source, ignored", rule.Name)
		return nil
	}
	return
}

// interrupts 判断 src 开头是否能打断段落。段落的每一行都会检查，所以优先使用规则的 Opens。
func (context *Context) interrupts(src string) bool {
	line, _ := lex.Line(src)
	var trial *Context
	for _, rule := range context.grammar.block {
		if !rule.Interrupt {
			continue
		}
		if nil != rule.Start && 0 != rule.Start(line) {
			continue
		}
		if nil != rule.Opens {
			if rule.Opens(src) {
				return true
			}
			continue
		}

		// 试探匹配使用独立的上下文，匹配结果丢弃，不能进入当前队列
		if nil == trial {
			trial = newContext(context.ParseOption, context.grammar, context.links, context.depth)
		}
		if nil != trial.tryRule(rule, src) {
			return true
		}
	}
	return false
}

// firstLine 将行判断函数包装为 Opens。
func firstLine(opens func(line string) bool) func(src string) bool {
	return func(src string) bool {
		line, _ := lex.Line(src)
		return opens(line)
	}
}

func (context *Context) inlineTokens(src string) (tokens []*lex.Token) {
	context.prevChar = 0
	for "" != src {
		token := context.inlineToken(src)
		src = src[len(token.Raw):]
		context.prevChar = token.Raw[len(token.Raw)-1]
		if lex.TokenText == token.Type && 0 < len(tokens) && lex.TokenText == tokens[len(tokens)-1].Type {
			last := tokens[len(tokens)-1]
			last.Raw += token.Raw
			last.Text += token.Text
			continue
		}
		tokens = append(tokens, token)
	}
	return
}

func (context *Context) inlineToken(src string) *lex.Token {
	for _, rule := range context.grammar.inline {
		if token := context.tryRule(rule, src); nil != token {
			return token
		}
	}
	return context.text(src)
}

// text 消费 src 开头的纯文本，直到某条行级规则可能匹配的位置。
func (context *Context) text(src string) *lex.Token {
	end := len(src)
	rest := src[1:]
	for _, rule := range context.grammar.inline {
		if nil == rule.Start {
			continue
		}
		if i := rule.Start(rest); 0 <= i && i+1 < end {
			end = i + 1
		}
	}
	// 多字节字符不能被截断
	for end < len(src) && 0x80 == src[end]&0xC0 {
		end++
	}
	return &lex.Token{Type: lex.TokenText, Raw: src[:end], Text: src[:end]}
}
