package token

import (
	"casemerge/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwSwitch, KwCase, KwDefault, KwFallthrough, KwWhere:
		return true
	default:
		return false
	}
}

// IsPound reports whether the token is a '#' conditional-compilation directive.
func (t Token) IsPound() bool {
	switch t.Kind {
	case PoundIf, PoundElseif, PoundElse, PoundEndif, PoundOther:
		return true
	default:
		return false
	}
}

// LeadingText concatenates the raw text of all leading trivia.
func (t Token) LeadingText() string {
	if len(t.Leading) == 0 {
		return ""
	}
	n := 0
	for _, tv := range t.Leading {
		n += len(tv.Text)
	}
	out := make([]byte, 0, n)
	for _, tv := range t.Leading {
		out = append(out, tv.Text...)
	}
	return string(out)
}
