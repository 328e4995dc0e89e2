package syntax

import (
	"casemerge/internal/diag"
	"casemerge/internal/lexer"
	"casemerge/internal/source"
	"casemerge/internal/token"
)

// ParseFile lexes and parses one source file. It never fails: regions that do
// not parse degrade to raw token runs so rendering stays lossless.
func ParseFile(file *source.File, r diag.Reporter) *File {
	lx := lexer.New(file, lexer.Options{Reporter: r})
	return Parse(lx.All(), r)
}

// Parse builds a File from a token stream ending in EOF.
func Parse(toks []token.Token, r diag.Reporter) *File {
	p := &parser{toks: toks, reporter: r}
	return p.parseFile()
}

type parser struct {
	toks     []token.Token
	pos      int
	reporter diag.Reporter
}

func (p *parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *parser) advance() token.Token {
	t := p.peek()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *parser) report(code diag.Code, sp source.Span, msg string) {
	if p.reporter != nil {
		p.reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func (p *parser) parseFile() *File {
	f := &File{}
	var run []token.Token

	flush := func() {
		if len(run) > 0 {
			f.Nodes = append(f.Nodes, Node{Tokens: run})
			run = nil
		}
	}

	for {
		t := p.peek()
		switch t.Kind {
		case token.EOF:
			flush()
			f.EOF = t
			return f

		case token.KwSwitch:
			start := p.pos
			sw := p.parseSwitch()
			if sw == nil {
				run = append(run, p.toks[start:p.pos]...)
				continue
			}
			flush()
			f.Nodes = append(f.Nodes, Node{Switch: sw})

		default:
			run = append(run, p.advance())
		}
	}
}

// parseSwitch parses `switch <subject> { <elements> }`. It returns nil when
// no clause-list brace is found; the caller then keeps the tokens raw.
func (p *parser) parseSwitch() *SwitchStmt {
	sw := &SwitchStmt{SwitchTok: p.advance()}

	depth := 0
	for {
		t := p.peek()
		switch {
		case t.Kind == token.EOF:
			p.report(diag.SynUnclosedSwitch, sw.SwitchTok.Span, "switch statement is never closed")
			return nil
		case t.Kind == token.LBrace && depth == 0:
			sw.LBrace = p.advance()
			return p.parseClauseList(sw)
		case t.Kind == token.LParen || t.Kind == token.LBracket || t.Kind == token.LBrace:
			depth++
		case t.Kind == token.RParen || t.Kind == token.RBracket:
			if depth > 0 {
				depth--
			}
		case t.Kind == token.RBrace:
			if depth == 0 {
				p.report(diag.SynUnexpectedToken, t.Span, "expected '{' to start switch clauses")
				return nil
			}
			depth--
		}
		sw.Subject = append(sw.Subject, p.advance())
	}
}

func (p *parser) parseClauseList(sw *SwitchStmt) *SwitchStmt {
	for {
		t := p.peek()
		switch {
		case t.Kind == token.RBrace:
			sw.RBrace = p.advance()
			sw.Closed = true
			return sw

		case t.Kind == token.EOF:
			p.report(diag.SynUnclosedSwitch, sw.SwitchTok.Span, "switch statement is never closed")
			return sw

		case t.Kind == token.KwCase || t.Kind == token.KwDefault:
			sw.Elements = append(sw.Elements, p.parseClause())

		case t.Kind == token.PoundIf:
			sw.Elements = append(sw.Elements, Element{Opaque: p.parseOpaque()})

		default:
			sw.Elements = append(sw.Elements, Element{Other: p.parseOtherRun()})
		}
	}
}

// parseClause parses one `case …:` or `default:` clause. A label that never
// reaches its colon degrades to a raw Other element.
func (p *parser) parseClause() Element {
	start := p.pos
	clause := &CaseClause{Keyword: p.advance()}

	items, colon, ok := p.parseLabel(clause.Keyword)
	if !ok {
		return Element{Other: p.toks[start:p.pos]}
	}
	clause.Items = items
	clause.Colon = colon
	clause.Body = p.parseBody()
	return Element{Clause: clause}
}

func (p *parser) parseLabel(kw token.Token) ([]CaseItem, token.Token, bool) {
	var items []CaseItem
	var cur CaseItem
	inGuard := false
	depth := 0

	finishItem := func(comma *token.Token) {
		cur.CommaTok = comma
		if len(cur.Pattern) > 0 || cur.WhereTok != nil || comma != nil {
			items = append(items, cur)
		}
		cur = CaseItem{}
		inGuard = false
	}

	appendTok := func(t token.Token) {
		if inGuard {
			cur.Guard = append(cur.Guard, t)
		} else {
			cur.Pattern = append(cur.Pattern, t)
		}
	}

	for {
		t := p.peek()
		switch {
		case t.Kind == token.EOF:
			p.report(diag.SynMissingColon, kw.Span, "case label is missing ':'")
			return nil, token.Token{}, false

		case t.Kind == token.Colon && depth == 0:
			colon := p.advance()
			finishItem(nil)
			return items, colon, true

		case t.Kind == token.Comma && depth == 0:
			comma := p.advance()
			finishItem(&comma)

		case t.Kind == token.KwWhere && depth == 0:
			where := p.advance()
			cur.WhereTok = &where
			inGuard = true

		case (t.Kind == token.KwCase || t.Kind == token.KwDefault) && depth == 0:
			// The previous label never closed; keep everything raw.
			p.report(diag.SynMissingColon, kw.Span, "case label is missing ':'")
			return nil, token.Token{}, false

		case t.Kind == token.LParen || t.Kind == token.LBracket || t.Kind == token.LBrace:
			depth++
			appendTok(p.advance())

		case t.Kind == token.RParen || t.Kind == token.RBracket:
			if depth > 0 {
				depth--
			}
			appendTok(p.advance())

		case t.Kind == token.RBrace:
			if depth == 0 {
				p.report(diag.SynMissingColon, kw.Span, "case label is missing ':'")
				return nil, token.Token{}, false
			}
			depth--
			appendTok(p.advance())

		default:
			appendTok(p.advance())
		}
	}
}

// parseBody collects clause body nodes until the next clause, a clause-level
// #if block, or the switch's closing brace.
func (p *parser) parseBody() []BodyNode {
	var nodes []BodyNode
	var run []token.Token
	depth := 0

	flush := func() {
		if len(run) > 0 {
			nodes = append(nodes, BodyNode{Tokens: run})
			run = nil
		}
	}

	for {
		t := p.peek()
		switch {
		case t.Kind == token.EOF:
			flush()
			return nodes

		case depth == 0 && (t.Kind == token.KwCase || t.Kind == token.KwDefault || t.Kind == token.RBrace):
			flush()
			return nodes

		case depth == 0 && t.Kind == token.PoundIf && p.poundWrapsClauses():
			flush()
			return nodes

		case t.Kind == token.PoundIf:
			// Conditional code inside the body; keep the whole block raw.
			run = append(run, p.consumePoundBlock()...)

		case t.Kind == token.KwSwitch:
			start := p.pos
			sw := p.parseSwitch()
			if sw == nil {
				run = append(run, p.toks[start:p.pos]...)
				continue
			}
			flush()
			nodes = append(nodes, BodyNode{Switch: sw})

		case t.Kind == token.LBrace:
			depth++
			run = append(run, p.advance())

		case t.Kind == token.RBrace:
			// depth > 0 here; depth == 0 is handled above.
			depth--
			run = append(run, p.advance())

		default:
			run = append(run, p.advance())
		}
	}
}

// poundWrapsClauses looks past the #if condition line to decide whether the
// block wraps whole clauses (opaque boundary) or statements inside a body.
func (p *parser) poundWrapsClauses() bool {
	for i := p.pos + 1; i < len(p.toks); i++ {
		t := p.toks[i]
		if t.Kind == token.EOF {
			return false
		}
		for _, tv := range t.Leading {
			if tv.Kind == token.TriviaNewline {
				return t.Kind == token.KwCase || t.Kind == token.KwDefault
			}
		}
	}
	return false
}

// parseOpaque captures a #if/#endif region verbatim, nesting included.
func (p *parser) parseOpaque() *OpaqueBlock {
	block := &OpaqueBlock{}
	first := p.peek()
	block.Tokens = p.consumePoundBlock()
	block.Closed = len(block.Tokens) > 0 && block.Tokens[len(block.Tokens)-1].Kind == token.PoundEndif
	if !block.Closed {
		p.report(diag.SynUnclosedConditional, first.Span, "conditional-compilation block is never closed")
	}
	return block
}

func (p *parser) consumePoundBlock() []token.Token {
	var out []token.Token
	depth := 0
	for {
		t := p.peek()
		if t.Kind == token.EOF {
			return out
		}
		out = append(out, p.advance())
		switch t.Kind {
		case token.PoundIf:
			depth++
		case token.PoundEndif:
			depth--
			if depth == 0 {
				return out
			}
		}
	}
}

// parseOtherRun collects unrecognized clause-list tokens until something the
// clause parser understands. At least one token is always consumed.
func (p *parser) parseOtherRun() []token.Token {
	first := p.advance()
	run := []token.Token{first}
	depth := 0
	switch first.Kind {
	case token.LParen, token.LBracket, token.LBrace:
		depth = 1
	}
	for {
		t := p.peek()
		if t.Kind == token.EOF {
			return run
		}
		if depth == 0 {
			switch t.Kind {
			case token.KwCase, token.KwDefault, token.RBrace, token.PoundIf:
				return run
			}
		}
		switch t.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth > 0 {
				depth--
			}
		}
		run = append(run, p.advance())
	}
}
