package parse

import (
	"github.com/pafthang/lbmd/lex"
)

// ThematicBreakRule 匹配分隔线（--- *** ___）。
var ThematicBreakRule = Rule{
	Name:  "hr",
	Level: LevelBlock,
	Tokenize: func(context *Context, src string) *lex.Token {
		line, length := lex.Line(src)
		if !isThematicBreak(line) {
			return nil
		}
		return &lex.Token{Type: lex.TokenHr, Raw: src[:length]}
	},
	Interrupt: true,
	Opens:     firstLine(isThematicBreak),
}

func isThematicBreak(line string) bool {
	if 3 < lex.Indent(line) {
		return false
	}

	markerCnt := 0
	var marker byte
	for i := 0; i < len(line); i++ {
		token := line[i]
		if lex.ItemSpace == token || lex.ItemTab == token {
			continue
		}

		if lex.ItemHyphen != token && lex.ItemUnderscore != token && lex.ItemAsterisk != token {
			return false
		}

		if 0 != marker {
			if marker != token {
				return false
			}
		} else {
			marker = token
		}
		markerCnt++
	}
	return 3 <= markerCnt
}
