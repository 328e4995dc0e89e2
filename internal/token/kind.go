package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwSwitch represents the 'switch' keyword.
	KwSwitch // switch
	// KwCase represents the 'case' keyword.
	KwCase // case
	// KwDefault represents the 'default' keyword.
	KwDefault // default
	// KwFallthrough represents the 'fallthrough' keyword.
	KwFallthrough // fallthrough
	// KwWhere represents the 'where' keyword.
	KwWhere // where

	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating-point literal.
	FloatLit
	// StringLit represents a string literal (single or multiline).
	StringLit

	// Punctuation and operators that the clause parser must recognize.
	Colon     // :
	Comma     // ,
	Semicolon // ;
	Question  // ?
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Ellipsis  // ...

	// Conditional-compilation directives.
	PoundIf     // #if
	PoundElseif // #elseif
	PoundElse   // #else
	PoundEndif  // #endif
	// PoundOther represents any other '#' directive or literal (#available, ...).
	PoundOther

	// Operator covers contiguous operator characters not listed above.
	Operator
	// Unknown covers any byte sequence the lexer has no rule for.
	Unknown
)

var kindNames = map[Kind]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	KwSwitch:      "KwSwitch",
	KwCase:        "KwCase",
	KwDefault:     "KwDefault",
	KwFallthrough: "KwFallthrough",
	KwWhere:       "KwWhere",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	Colon:         "Colon",
	Comma:         "Comma",
	Semicolon:     "Semicolon",
	Question:      "Question",
	LParen:        "LParen",
	RParen:        "RParen",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	LBracket:      "LBracket",
	RBracket:      "RBracket",
	Ellipsis:      "Ellipsis",
	PoundIf:       "PoundIf",
	PoundElseif:   "PoundElseif",
	PoundElse:     "PoundElse",
	PoundEndif:    "PoundEndif",
	PoundOther:    "PoundOther",
	Operator:      "Operator",
	Unknown:       "Unknown",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(?)"
}
