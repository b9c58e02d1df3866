package frontend

import (
	"fmt"

	"github.com/isaacev/Lox/source"
)

// TokenKind is the classification system for tokens. Operator, punctuation
// and keyword kinds each stand for exactly one lexeme while Identifier, String
// and Number kinds cover whole families of lexemes
type TokenKind int

// The complete set of token kinds recognized by the lexer
const (
	// Single-character tokens
	LeftParen TokenKind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character tokens
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals
	Identifier
	String
	Number

	// Keywords
	And
	Class
	Else
	False
	For
	Fun
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	EOF
)

var kindNames = [...]string{
	LeftParen:    "(",
	RightParen:   ")",
	LeftBrace:    "{",
	RightBrace:   "}",
	Comma:        ",",
	Dot:          ".",
	Minus:        "-",
	Plus:         "+",
	Semicolon:    ";",
	Slash:        "/",
	Star:         "*",
	Bang:         "!",
	BangEqual:    "!=",
	Equal:        "=",
	EqualEqual:   "==",
	Greater:      ">",
	GreaterEqual: ">=",
	Less:         "<",
	LessEqual:    "<=",
	Identifier:   "Identifier",
	String:       "String",
	Number:       "Number",
	And:          "and",
	Class:        "class",
	Else:         "else",
	False:        "false",
	For:          "for",
	Fun:          "fun",
	If:           "if",
	Nil:          "nil",
	Or:           "or",
	Print:        "print",
	Return:       "return",
	Super:        "super",
	This:         "this",
	True:         "true",
	Var:          "var",
	While:        "while",
	EOF:          "EOF",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token structs represent a lexical atom. Each is tagged with its kind, the
// raw lexeme it was read from, a decoded literal value (a float64 for numbers,
// a string for strings, nil otherwise) and its position in the source. Tokens
// are never modified after the lexer emits them
type Token struct {
	Kind    TokenKind
	Lexeme  string
	Literal interface{}
	Line    int
	Span    source.Span
}

func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%d %s %q %v", t.Line, t.Kind, t.Lexeme, t.Literal)
	}

	return fmt.Sprintf("%d %s %q", t.Line, t.Kind, t.Lexeme)
}
