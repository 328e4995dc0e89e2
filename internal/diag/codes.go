package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Structural
	SynUnexpectedToken     Code = 2001
	SynUnclosedSwitch      Code = 2002
	SynUnclosedClause      Code = 2003
	SynUnclosedConditional Code = 2004
	SynMissingColon        Code = 2005

	// Lint / rewrite
	LintFallthroughOnlyCase Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "unknown diagnostic",
	LexUnknownChar:              "unknown character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexBadNumber:                "malformed numeric literal",
	SynUnexpectedToken:          "unexpected token",
	SynUnclosedSwitch:           "switch statement is never closed",
	SynUnclosedClause:           "case clause is never closed",
	SynUnclosedConditional:      "conditional-compilation block is never closed",
	SynMissingColon:             "case label is missing ':'",
	LintFallthroughOnlyCase:     "fallthrough-only case should be merged into the next case",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("LINT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
