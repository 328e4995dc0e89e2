package syntax

import (
	"bytes"

	"casemerge/internal/token"
)

// Render serializes a File back to bytes. An unmodified tree reproduces the
// original input exactly; merged clauses are printed from their synthesized
// tokens.
func Render(f *File) []byte {
	var buf bytes.Buffer
	for _, n := range f.Nodes {
		renderNode(&buf, n)
	}
	writeTrivia(&buf, f.EOF.Leading)
	return buf.Bytes()
}

func renderNode(buf *bytes.Buffer, n Node) {
	if n.Switch != nil {
		renderSwitch(buf, n.Switch)
		return
	}
	writeTokens(buf, n.Tokens)
}

func renderSwitch(buf *bytes.Buffer, sw *SwitchStmt) {
	writeToken(buf, sw.SwitchTok)
	writeTokens(buf, sw.Subject)
	writeToken(buf, sw.LBrace)
	for _, el := range sw.Elements {
		renderElement(buf, el)
	}
	if sw.Closed {
		writeToken(buf, sw.RBrace)
	}
}

func renderElement(buf *bytes.Buffer, el Element) {
	switch {
	case el.Clause != nil:
		renderClause(buf, el.Clause)
	case el.Opaque != nil:
		writeTokens(buf, el.Opaque.Tokens)
	default:
		writeTokens(buf, el.Other)
	}
}

func renderClause(buf *bytes.Buffer, c *CaseClause) {
	writeToken(buf, c.Keyword)
	for _, item := range c.Items {
		writeTokens(buf, item.AllTokens())
	}
	writeToken(buf, c.Colon)
	for _, bn := range c.Body {
		if bn.Switch != nil {
			renderSwitch(buf, bn.Switch)
			continue
		}
		writeTokens(buf, bn.Tokens)
	}
}

func writeTokens(buf *bytes.Buffer, toks []token.Token) {
	for _, t := range toks {
		writeToken(buf, t)
	}
}

func writeToken(buf *bytes.Buffer, t token.Token) {
	writeTrivia(buf, t.Leading)
	buf.WriteString(t.Text)
}

func writeTrivia(buf *bytes.Buffer, trivia []token.Trivia) {
	for _, tv := range trivia {
		buf.WriteString(tv.Text)
	}
}
