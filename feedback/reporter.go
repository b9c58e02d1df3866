package feedback

import (
	"fmt"
	"io"

	"github.com/isaacev/Lox/source"
)

// Reporter collects every Error emitted while a single source unit moves
// through the pipeline. The HadError and HadRuntimeError flags only ever go
// from false to true so the driver can inspect them after each stage and
// pick an exit status
type Reporter struct {
	File            *source.File
	messages        []Message
	hadError        bool
	hadRuntimeError bool
}

// NewReporter returns a Reporter for diagnostics about the given file. The
// file may be nil in which case messages are rendered without source excerpts
func NewReporter(file *source.File) *Reporter {
	return &Reporter{File: file}
}

// ReportLexError records a malformed character or unterminated string
func (r *Reporter) ReportLexError(span source.Span, message string) {
	r.add(LexError, span, "", message)
	r.hadError = true
}

// ReportSyntaxError records a syntax error. "where" locates the error relative
// to the offending token
func (r *Reporter) ReportSyntaxError(span source.Span, where string, message string) {
	r.add(SyntaxError, span, where, message)
	r.hadError = true
}

// ReportRuntimeError records an error raised while executing the program
func (r *Reporter) ReportRuntimeError(span source.Span, message string) {
	r.add(RuntimeError, span, "", message)
	r.hadRuntimeError = true
}

func (r *Reporter) add(classification string, span source.Span, where, message string) {
	r.messages = append(r.messages, Error{
		Classification: classification,
		File:           r.File,
		Where:          where,
		What: Selection{
			Description: message,
			Span:        span,
		},
	})
}

// HadError is true once any lex or syntax error has been reported
func (r *Reporter) HadError() bool {
	return r.hadError
}

// HadRuntimeError is true once any runtime error has been reported
func (r *Reporter) HadRuntimeError() bool {
	return r.hadRuntimeError
}

// Messages returns every message reported so far in the order they were
// reported
func (r *Reporter) Messages() []Message {
	return r.messages
}

// Flush renders all pending messages to "w", one per paragraph, and forgets
// them. The error flags are left untouched
func (r *Reporter) Flush(w io.Writer, withColor bool) error {
	for _, msg := range r.messages {
		if _, err := fmt.Fprintln(w, msg.Make(withColor)); err != nil {
			return err
		}
	}

	r.messages = nil
	return nil
}
