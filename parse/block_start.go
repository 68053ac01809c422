package parse

// blockRules 返回默认的块级规则，按顺序尝试。扩展规则排在前面，前缀重叠时扩展优先。
func blockRules() []Rule {
	return []Rule{
		BlankLineRule,
		AlignBlockRule,
		SpoilerBlockRule,
		SpoilerParagraphRule,
		FenceCodeBlockRule,
		ATXHeadingRule,
		ThematicBreakRule,
		BlockquoteRule,
		ListRule,
		TableRule,
		LinkRefDefRule,
	}
}

// inlineRules 返回默认的行级规则，按顺序尝试。
func inlineRules() []Rule {
	return []Rule{
		LbIndentRule,
		SpoilerInlineRule,
		TextColorRule,
		TextSizeRule,
		SubRule,
		SupRule,
		EscapeRule,
		CodeSpanRule,
		BrRule,
		LinkRule,
		StrongRule,
		EmRule,
		DelRule,
	}
}
