package merge

import (
	"strconv"

	"casemerge/internal/source"
	"casemerge/internal/syntax"
	"casemerge/internal/token"
)

// integerValue extracts the item's value when its pattern is exactly one
// integer literal token. Base prefixes (0x/0o/0b) and '_' separators are
// understood; anything else reports failure and the caller falls back to the
// comma-join mode.
func integerValue(item syntax.CaseItem) (int64, bool) {
	if len(item.Pattern) != 1 {
		return 0, false
	}
	t := item.Pattern[0]
	if t.Kind != token.IntLit {
		return 0, false
	}
	v, err := strconv.ParseInt(t.Text, 0, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func intToken(v int64, host *syntax.CaseClause, leading []token.Trivia) token.Token {
	return token.Token{
		Kind:    token.IntLit,
		Span:    synthSpan(host),
		Text:    strconv.FormatInt(v, 10),
		Leading: leading,
	}
}

func punctToken(kind token.Kind, text string, host *syntax.CaseClause) token.Token {
	return token.Token{
		Kind: kind,
		Span: synthSpan(host),
		Text: text,
	}
}

// synthSpan is a zero-length span at the host label so synthesized tokens
// still point at a sensible location.
func synthSpan(host *syntax.CaseClause) source.Span {
	sp := host.Keyword.Span
	return source.Span{File: sp.File, Start: sp.End, End: sp.End}
}

func spaceLeading() []token.Trivia {
	return []token.Trivia{{Kind: token.TriviaSpace, Text: " "}}
}
