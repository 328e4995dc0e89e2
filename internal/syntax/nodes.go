package syntax

import (
	"strings"

	"casemerge/internal/source"
	"casemerge/internal/token"
)

// File is a parsed source file: a flat sequence of nodes that together carry
// every token of the input, plus the EOF token holding trailing trivia.
type File struct {
	Nodes []Node
	EOF   token.Token
}

// Node is either a raw token run or a parsed switch statement.
// Exactly one field is set.
type Node struct {
	Tokens []token.Token
	Switch *SwitchStmt
}

// SwitchStmt is one switch statement with its parsed clause list.
type SwitchStmt struct {
	SwitchTok token.Token
	Subject   []token.Token
	LBrace    token.Token
	Elements  []Element
	RBrace    token.Token
	Closed    bool // false when EOF was hit before '}'
}

// Element is one entry of a clause list: a case clause, an opaque
// conditional-compilation block, or an unrecognized raw run.
// Exactly one field is set.
type Element struct {
	Clause *CaseClause
	Opaque *OpaqueBlock
	Other  []token.Token
}

// FirstToken returns the element's first token, used to inspect the leading
// trivia that follows the previous clause's body.
func (e Element) FirstToken() (token.Token, bool) {
	switch {
	case e.Clause != nil:
		return e.Clause.Keyword, true
	case e.Opaque != nil && len(e.Opaque.Tokens) > 0:
		return e.Opaque.Tokens[0], true
	case len(e.Other) > 0:
		return e.Other[0], true
	}
	return token.Token{}, false
}

// OpaqueBlock is a #if/#endif region captured verbatim. Its interior is never
// inspected; merging cannot cross it.
type OpaqueBlock struct {
	Tokens []token.Token
	Closed bool
}

// CaseClause is one `case …:` or `default:` clause.
type CaseClause struct {
	Keyword token.Token // 'case' or 'default'; its Leading is the clause's leading trivia
	Items   []CaseItem  // empty for 'default'
	Colon   token.Token
	Body    []BodyNode
}

// IsDefault reports whether the clause is a `default:` clause.
func (c *CaseClause) IsDefault() bool {
	return c.Keyword.Kind == token.KwDefault
}

// Span covers the clause from its keyword through its last body token.
func (c *CaseClause) Span() source.Span {
	sp := c.Keyword.Span
	sp = sp.Cover(c.Colon.Span)
	for _, bn := range c.Body {
		for _, t := range bn.Tokens {
			sp = sp.Cover(t.Span)
		}
		if bn.Switch != nil {
			sp = sp.Cover(bn.Switch.SwitchTok.Span)
			if bn.Switch.Closed {
				sp = sp.Cover(bn.Switch.RBrace.Span)
			}
		}
	}
	return sp
}

// LabelText renders the label's patterns for diagnostics: token texts joined
// with single spaces where the source had any separation.
func (c *CaseClause) LabelText() string {
	if c.IsDefault() {
		return "default"
	}
	var b strings.Builder
	for _, item := range c.Items {
		for _, t := range item.AllTokens() {
			if b.Len() > 0 && len(t.Leading) > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(t.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

// CaseItem is one match pattern of a label, with an optional `where` guard
// and the comma separating it from the next item.
type CaseItem struct {
	Pattern  []token.Token
	WhereTok *token.Token
	Guard    []token.Token
	CommaTok *token.Token
}

// AllTokens returns the item's tokens in source order.
func (it CaseItem) AllTokens() []token.Token {
	out := make([]token.Token, 0, len(it.Pattern)+len(it.Guard)+2)
	out = append(out, it.Pattern...)
	if it.WhereTok != nil {
		out = append(out, *it.WhereTok)
	}
	out = append(out, it.Guard...)
	if it.CommaTok != nil {
		out = append(out, *it.CommaTok)
	}
	return out
}

// BodyNode is one piece of a clause body: a raw token run or a nested switch.
// Exactly one field is set.
type BodyNode struct {
	Tokens []token.Token
	Switch *SwitchStmt
}
