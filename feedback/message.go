package feedback

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/isaacev/Lox/source"
)

// Message is the interface for all diagnostics that can be emitted by the
// stages of the pipeline
type Message interface {
	Make(withColor bool) string
}

// Selection represents a region of the source code file along with a
// corresponding description that supplies information as to why an error
// occured
type Selection struct {
	Description string
	Span        source.Span
}

// Error classification constants
const (
	LexError     string = "lex error"
	SyntaxError  string = "syntax error"
	RuntimeError string = "runtime error"
)

// Error messages are emitted by the scanner, parser and interpreter. Lex and
// syntax errors stop a file from being run at all, a runtime error stops the
// run where it happened. "Where" locates the error relative to a token, like
// " at 'x'" or " at end", and is empty for lex and runtime errors
type Error struct {
	Classification string
	File           *source.File
	Where          string
	What           Selection
}

// Line returns the source line the error is reported on
func (e Error) Line() int {
	return e.What.Span.Start.Line
}

// Make takes an Error and produces a fully rendered message with the option of
// using colors to make elements of the message more clear. The rendered message
// is returned as a single string and can be then output to stderr or some
// other destination
func (e Error) Make(withColor bool) string {
	p := newPalette(withColor)

	var lines []string

	if e.Classification == RuntimeError {
		lines = append(lines,
			p.redBold(e.What.Description),
			p.blue(fmt.Sprintf("[line %d]", e.Line())))
	} else {
		lines = append(lines, p.redBold(fmt.Sprintf("[line %d] Error%s: %s",
			e.Line(),
			e.Where,
			e.What.Description)))
	}

	return strings.Join(append(lines, sourceCodeSelection(e.File, e.What, p)...), "\n")
}

// palette holds the color functions used while rendering one message. Colors
// are switched on and off per palette instead of through the package level
// `color.NoColor` switch so messages can be rendered concurrently
type palette struct {
	redBold func(a ...interface{}) string
	red     func(a ...interface{}) string
	blue    func(a ...interface{}) string
}

func newPalette(withColor bool) palette {
	redBold := color.New(color.FgRed, color.Bold)
	red := color.New(color.FgRed)
	blue := color.New(color.FgBlue)

	for _, c := range []*color.Color{redBold, red, blue} {
		if withColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return palette{
		redBold: redBold.SprintFunc(),
		red:     red.SprintFunc(),
		blue:    blue.SprintFunc(),
	}
}

// sourceCodeSelection extracts the offending line of source code from the
// source file and renders the line along with its line number and a caret
// underline below the selected columns:
//
//	  |
//	1 | var 1 = 2;
//	  |     ^
//
// Nothing is rendered when the file is unknown or the selection lies outside
// of it, which is the case for errors at the very end of a file
func sourceCodeSelection(file *source.File, sel Selection, p palette) (lines []string) {
	srcLine, ok := file.Line(sel.Span.Start.Line)
	if !ok || sel.Span.Start.Col < 1 {
		return nil
	}

	lineLen := utf8.RuneCountInString(srcLine)
	if sel.Span.Start.Col > lineLen {
		return nil
	}

	// Selections spanning several lines are cut off at the end of the first
	focusEnd := sel.Span.End.Col
	if sel.Span.End.Line != sel.Span.Start.Line || focusEnd > lineLen {
		focusEnd = lineLen
	}

	if focusEnd < sel.Span.Start.Col {
		focusEnd = sel.Span.Start.Col
	}

	// Every line of the selection shares the margin width of the line number
	lineNum := fmt.Sprintf("%d", sel.Span.Start.Line)
	emptyMarg := strings.Repeat(" ", len(lineNum))

	prefix, focus, suffix := highlightSourceLine(srcLine, sel.Span.Start.Col, focusEnd+1)

	leftPad := highlightPadding(prefix)
	underline := strings.Repeat("^", focusEnd-sel.Span.Start.Col+1)

	lines = append(lines, fmt.Sprintf(" %s %s", emptyMarg, p.blue("|")))
	lines = append(lines, fmt.Sprintf(" %s %s %s%s%s", p.blue(lineNum), p.blue("|"), prefix, p.red(focus), suffix))
	lines = append(lines, fmt.Sprintf(" %s %s %s%s", emptyMarg, p.blue("|"), leftPad, p.red(underline)))

	return lines
}

// highlightSourceLine takes a line of source code and 2 column numbers and
// returns the segment before the first column number, the segment between the
// column numbers, and the segment after the last column number. This is used
// to provide color to only the significant segment of a source code line
func highlightSourceLine(line string, start, end int) (prefix, focus, suffix string) {
	nextByte := 0

	for i := 1; i < end && nextByte < len(line); i++ {
		runeValue, runeWidth := utf8.DecodeRuneInString(line[nextByte:])
		nextByte += runeWidth

		if i < start {
			prefix += string(runeValue)
		} else {
			focus += string(runeValue)
		}
	}

	suffix = line[nextByte:]

	return prefix, focus, suffix
}

// highlightPadding returns the whitespace that lines an underline up with the
// text after "prefix". Tabs are kept so the caret lands under the right column
// in a terminal
func highlightPadding(prefix string) string {
	var b strings.Builder

	for _, r := range prefix {
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
	}

	return b.String()
}
