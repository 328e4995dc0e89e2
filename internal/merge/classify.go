package merge

import (
	"casemerge/internal/syntax"
	"casemerge/internal/token"
)

// isFallthroughOnly reports whether a clause is eligible for deletion-by-merge.
// followingTrivia is the leading trivia of the token right after the clause's
// body (the next element's first token, or the switch's closing brace).
//
// A clause qualifies only when its body is exactly one `fallthrough` token and
// no comment is attached to the clause itself: a comment anywhere around the
// clause could carry meaning the author wants visible at that spot, so such
// clauses are left alone.
func isFallthroughOnly(c *syntax.CaseClause, followingTrivia []token.Trivia) bool {
	// Only `case` labels can be folded into another label.
	if c.Keyword.Kind != token.KwCase {
		return false
	}

	ft, ok := fallthroughToken(c)
	if !ok {
		return false
	}

	// A comment below the `case` line belongs to this clause.
	if token.HasCommentAfterFirstNewline(c.Keyword.Leading) {
		return false
	}
	// Same for a comment attached above the fallthrough statement.
	if token.HasCommentAfterFirstNewline(ft.Leading) {
		return false
	}
	// An inline comment trailing the fallthrough line lives in the leading
	// trivia of the next token, before its first line break.
	if token.HasCommentBeforeFirstNewline(followingTrivia) {
		return false
	}
	return true
}

// fallthroughToken returns the body's single token when the body is exactly
// one `fallthrough` statement.
func fallthroughToken(c *syntax.CaseClause) (token.Token, bool) {
	if len(c.Body) != 1 {
		return token.Token{}, false
	}
	bn := c.Body[0]
	if bn.Switch != nil || len(bn.Tokens) != 1 {
		return token.Token{}, false
	}
	t := bn.Tokens[0]
	if t.Kind != token.KwFallthrough {
		return token.Token{}, false
	}
	return t, true
}
