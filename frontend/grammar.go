package frontend

import (
	"sort"
)

// keywords maps every reserved word to its token kind. The table is filled
// once when the package loads and only ever read afterwards
var keywords = map[string]TokenKind{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// lookupKeyword classifies a word as either one of the keywords or as a
// generic identifier
func lookupKeyword(word string) TokenKind {
	if kind, ok := keywords[word]; ok {
		return kind
	}

	return Identifier
}

// Keywords returns the reserved words in alphabetical order
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for word := range keywords {
		words = append(words, word)
	}

	sort.Strings(words)
	return words
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}

// startsStatement reports whether a token of the given kind can begin a new
// statement. The parser resumes at these tokens after a syntax error
func startsStatement(kind TokenKind) bool {
	switch kind {
	case Class, Fun, Var, For, If, While, Print, Return:
		return true
	}

	return false
}
