package frontend

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/isaacev/Lox/source"
)

// Reporter is the diagnostics sink the lexer and parser report into. Neither
// stage aborts when it reports, both keep going so that one pass over a file
// can surface several mistakes. The source line of each report is the line of
// the span's start
type Reporter interface {
	ReportLexError(span source.Span, message string)
	ReportSyntaxError(span source.Span, where string, message string)
}

// Scan converts the contents of a file into the complete sequence of tokens
// terminated by a single EOF token. Character level errors are sent to the
// reporter and never stop the scan
func Scan(file *source.File, reporter Reporter) []Token {
	return NewLexer(file, reporter).ScanTokens()
}

// Lexer structs maintain state during the lexical analysis of a chunk of source
// code, generating a sequence of Tokens
type Lexer struct {
	Scanner  *Scanner
	Reporter Reporter
	tokens   []Token

	// byte offset and position of the first rune in the current lexeme
	start    int
	startPos source.Pos

	// position of the last rune consumed
	lastPos source.Pos
}

// NewLexer is a constructor function that takes a File and a Reporter and
// returns a reference to a newly minted Lexer struct
func NewLexer(file *source.File, reporter Reporter) *Lexer {
	return &Lexer{
		Scanner:  NewScanner(file),
		Reporter: reporter,
	}
}

// ScanTokens runs the lexer over the whole file. Every call starts again from
// the beginning of the file so scanning the same file twice yields the same
// tokens
func (l *Lexer) ScanTokens() []Token {
	l.Scanner = NewScanner(l.Scanner.File)
	l.tokens = nil

	for !l.Scanner.AtEnd() {
		// at the beginning of the next lexeme
		l.start = l.Scanner.Offset()
		l.startPos = l.Scanner.Pos()
		l.scanToken()
	}

	eofPos := l.Scanner.Pos()
	l.tokens = append(l.tokens, Token{
		Kind:   EOF,
		Lexeme: "",
		Line:   eofPos.Line,
		Span:   source.Span{Start: eofPos, End: eofPos},
	})

	return l.tokens
}

func (l *Lexer) next() rune {
	r, pos := l.Scanner.Next()
	l.lastPos = pos
	return r
}

func (l *Lexer) match(expected rune) bool {
	pos := l.Scanner.Pos()
	if !l.Scanner.Match(expected) {
		return false
	}

	l.lastPos = pos
	return true
}

func (l *Lexer) scanToken() {
	r := l.next()

	switch r {
	case '(':
		l.addToken(LeftParen, nil)
	case ')':
		l.addToken(RightParen, nil)
	case '{':
		l.addToken(LeftBrace, nil)
	case '}':
		l.addToken(RightBrace, nil)
	case ',':
		l.addToken(Comma, nil)
	case '.':
		l.addToken(Dot, nil)
	case '-':
		l.addToken(Minus, nil)
	case '+':
		l.addToken(Plus, nil)
	case ';':
		l.addToken(Semicolon, nil)
	case '*':
		l.addToken(Star, nil)
	case '!':
		l.addTwoCharToken('=', BangEqual, Bang)
	case '=':
		l.addTwoCharToken('=', EqualEqual, Equal)
	case '<':
		l.addTwoCharToken('=', LessEqual, Less)
	case '>':
		l.addTwoCharToken('=', GreaterEqual, Greater)
	case '/':
		if l.match('/') {
			l.lexComment()
		} else {
			l.addToken(Slash, nil)
		}
	case ' ', '\r', '\t', '\n':
		// whitespace never produces a token, the scanner already advanced
		// the line counter when it consumed a newline
	case '"':
		l.lexString()
	default:
		if isDigit(r) {
			l.lexNumber()
		} else if isAlpha(r) {
			l.lexWord()
		} else {
			l.Reporter.ReportLexError(l.span(), "Unexpected character.")
		}
	}
}

func (l *Lexer) addTwoCharToken(second rune, double, single TokenKind) {
	if l.match(second) {
		l.addToken(double, nil)
	} else {
		l.addToken(single, nil)
	}
}

// Comments
//  - \/\/[^\n]*
func (l *Lexer) lexComment() {
	// Stop before the newline so the line counter is advanced by the
	// whitespace case like every other newline
	for l.Scanner.Peek() != '\n' && !l.Scanner.AtEnd() {
		l.next()
	}
}

// String literal
//  - match double quoted string, may span lines, no escape sequences
func (l *Lexer) lexString() {
	for l.Scanner.Peek() != '"' && !l.Scanner.AtEnd() {
		l.next()
	}

	if l.Scanner.AtEnd() {
		// The error cites the line the string started on, which is where a
		// reader would look for the missing quote's partner
		l.Reporter.ReportLexError(l.span(), "Unterminated string.")
		return
	}

	// closing quote
	l.next()

	lexeme := l.lexeme()
	l.addToken(String, lexeme[1:len(lexeme)-1])
}

// Number literals
//  - match [0-9]+(\.[0-9]+)?
func (l *Lexer) lexNumber() {
	for isDigit(l.Scanner.Peek()) {
		l.next()
	}

	// A fractional part needs at least one digit after the dot, otherwise the
	// dot is left for the next token
	if l.Scanner.Peek() == '.' && isDigit(l.Scanner.PeekNext()) {
		l.next()

		for isDigit(l.Scanner.Peek()) {
			l.next()
		}
	}

	// Literals beyond the float64 range come back as +Inf along with
	// ErrRange and are kept as such
	value, err := strconv.ParseFloat(l.lexeme(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		panic(fmt.Sprintf("malformed number literal %q", l.lexeme()))
	}

	l.addToken(Number, value)
}

// Identifiers and Keywords
//  - match [A-Za-z_][A-Za-z0-9_]*
func (l *Lexer) lexWord() {
	for isAlphaNumeric(l.Scanner.Peek()) {
		l.next()
	}

	l.addToken(lookupKeyword(l.lexeme()), nil)
}

func (l *Lexer) lexeme() string {
	return l.Scanner.File.Contents[l.start:l.Scanner.Offset()]
}

func (l *Lexer) span() source.Span {
	return source.Span{Start: l.startPos, End: l.lastPos}
}

func (l *Lexer) addToken(kind TokenKind, literal interface{}) {
	l.tokens = append(l.tokens, Token{
		Kind:    kind,
		Lexeme:  l.lexeme(),
		Literal: literal,
		Line:    l.startPos.Line,
		Span:    l.span(),
	})
}
