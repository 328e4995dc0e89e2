package token

var keywords = map[string]Kind{
	"switch":      KwSwitch,
	"case":        KwCase,
	"default":     KwDefault,
	"fallthrough": KwFallthrough,
	"where":       KwWhere,
}

// LookupKeyword returns the kind for a keyword identifier.
// Keywords are case-sensitive; only lowercase forms are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

var poundDirectives = map[string]Kind{
	"#if":     PoundIf,
	"#elseif": PoundElseif,
	"#else":   PoundElse,
	"#endif":  PoundEndif,
}

// LookupPound returns the kind for a '#' directive spelling, falling back to
// PoundOther for directives the clause parser does not care about.
func LookupPound(text string) Kind {
	if k, ok := poundDirectives[text]; ok {
		return k
	}
	return PoundOther
}
