package token

import "casemerge/internal/source"

// TriviaKind classifies a single piece of non-semantic source text.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine
	TriviaDocBlock
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaDocLine:
		return "DocLine"
	case TriviaDocBlock:
		return "DocBlock"
	}
	return "TriviaKind(?)"
}

// IsComment reports whether the trivia kind carries comment text.
func (k TriviaKind) IsComment() bool {
	switch k {
	case TriviaLineComment, TriviaBlockComment, TriviaDocLine, TriviaDocBlock:
		return true
	default:
		return false
	}
}

// Trivia is one piece of whitespace or comment text. Consecutive spaces/tabs
// coalesce into one TriviaSpace piece and consecutive newlines into one
// TriviaNewline piece, mirroring how the lexer collects them.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// HasCommentAfterFirstNewline reports whether any comment piece appears
// strictly after the first newline piece. Comments on the same line as the
// previous token (before the first break) do not count.
func HasCommentAfterFirstNewline(trivia []Trivia) bool {
	seenNewline := false
	for _, tv := range trivia {
		if tv.Kind == TriviaNewline {
			seenNewline = true
			continue
		}
		if seenNewline && tv.Kind.IsComment() {
			return true
		}
	}
	return false
}

// HasCommentBeforeFirstNewline reports whether a comment piece appears before
// the first newline piece, i.e. an inline comment trailing the previous
// token's line.
func HasCommentBeforeFirstNewline(trivia []Trivia) bool {
	for _, tv := range trivia {
		if tv.Kind == TriviaNewline {
			return false
		}
		if tv.Kind.IsComment() {
			return true
		}
	}
	return false
}

// WithoutLastLine returns the trivia with its final line removed: trailing
// pieces after the last newline are dropped, and one '\n' is peeled off the
// final newline piece so that prepending the result to another token's
// leading trivia does not duplicate the line break before it. Trivia without
// any newline reduces to nothing.
func WithoutLastLine(trivia []Trivia) []Trivia {
	last := -1
	for i, tv := range trivia {
		if tv.Kind == TriviaNewline {
			last = i
		}
	}
	if last < 0 {
		return nil
	}

	out := make([]Trivia, 0, last+1)
	out = append(out, trivia[:last]...)

	tail := trivia[last]
	if len(tail.Text) > 1 {
		tail.Text = tail.Text[:len(tail.Text)-1]
		tail.Span.End--
		out = append(out, tail)
	}
	return out
}
