package frontend

import (
	"unicode/utf8"

	"github.com/isaacev/Lox/source"
)

/**
 * # Handling of Line & File terminations
 *
 * The first character in each line is considered to be in column 1. A newline
 * at the end of a line with `N` characters is considered to be in column
 * `N + 1` and the rune after it starts the next line at column 1.
 *
 * Reading past the end of the document is not an error. `Peek()` and
 * `PeekNext()` return the zero rune once the document is exhausted so the
 * lexer can treat the end of the file like any other non-matching rune.
 */

// Scanner structs hold the state of a scanner instance which consumes source
// code runes one at a time. Since source code documents can be Unicode, the
// scanner must keep track of each rune's byte offset. The scanner also records
// line and column data which it emits along with each rune.
type Scanner struct {
	File     *source.File
	nextByte int // initialized to 0
	nextLine int // ...  ...  ...  1
	nextCol  int // ...  ...  ...  1
}

// NewScanner is a basic constructor function for Scanners which populates
// private fields with the appropriate starting values
func NewScanner(file *source.File) *Scanner {
	return &Scanner{
		File:     file,
		nextByte: 0,
		nextLine: 1,
		nextCol:  1,
	}
}

// AtEnd returns true once every rune in the document has been consumed
func (s *Scanner) AtEnd() bool {
	return s.nextByte >= len(s.File.Contents)
}

// Offset returns the byte offset of the next rune. Lexemes are cut out of the
// document by comparing offsets taken before and after they were scanned
func (s *Scanner) Offset() int {
	return s.nextByte
}

// Pos returns the position of the next rune
func (s *Scanner) Pos() source.Pos {
	return source.Pos{Line: s.nextLine, Col: s.nextCol}
}

// Peek returns the next rune WITHOUT advancing the scanner
func (s *Scanner) Peek() rune {
	if s.AtEnd() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(s.File.Contents[s.nextByte:])
	return r
}

// PeekNext returns the rune after the next rune WITHOUT advancing the scanner.
// If either rune lies beyond the end of the document the zero rune is returned
func (s *Scanner) PeekNext() rune {
	if s.AtEnd() {
		return 0
	}

	_, width := utf8.DecodeRuneInString(s.File.Contents[s.nextByte:])

	if s.nextByte+width >= len(s.File.Contents) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(s.File.Contents[s.nextByte+width:])
	return r
}

// Next returns the next rune and the rune's position. A call to Next will
// advance the Scanner permanently. At the end of the document Next returns
// the zero rune and does not move
func (s *Scanner) Next() (r rune, pos source.Pos) {
	pos = s.Pos()

	if s.AtEnd() {
		return 0, pos
	}

	// Extract the next rune from the document buffer
	r, width := utf8.DecodeRuneInString(s.File.Contents[s.nextByte:])

	// Update `nextLine`, `nextCol`
	if r == '\n' {
		s.nextLine++
		s.nextCol = 1
	} else {
		s.nextCol++
	}

	// Update `nextByte` to account for byte width of this rune
	s.nextByte += width

	return r, pos
}

// Match consumes the next rune only if it equals "expected"
func (s *Scanner) Match(expected rune) bool {
	if s.AtEnd() || s.Peek() != expected {
		return false
	}

	s.Next()
	return true
}
