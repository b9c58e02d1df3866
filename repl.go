package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/isaacev/Lox/backend"
	"github.com/isaacev/Lox/frontend"
	"github.com/isaacev/Lox/source"
	"github.com/peterh/liner"
)

const replInterruptHint = "^C (use 'exit' to quit)"

// inputBuffer collects REPL lines until every opened brace has been closed so
// that a block can be typed over several lines
type inputBuffer struct {
	lines      strings.Builder
	openBraces int
}

// Add appends a line. When the braces typed so far balance, the whole buffered
// source is returned with complete set to true and the buffer is emptied
func (b *inputBuffer) Add(line string) (src string, complete bool) {
	b.lines.WriteString(line)
	b.lines.WriteByte('\n')

	for _, r := range line {
		switch r {
		case '{':
			b.openBraces++
		case '}':
			b.openBraces--
		}
	}

	if b.openBraces > 0 {
		return "", false
	}

	src = b.lines.String()
	b.Reset()
	return src, true
}

// Pending is true while the buffer holds an unfinished block
func (b *inputBuffer) Pending() bool {
	return b.lines.Len() > 0
}

// Reset throws away any buffered lines
func (b *inputBuffer) Reset() {
	b.lines.Reset()
	b.openBraces = 0
}

func isExitCommand(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.EqualFold(trimmed, "exit") || strings.EqualFold(trimmed, "exit();")
}

// completeKeyword offers every keyword that extends the word under the cursor
func completeKeyword(line string) (candidates []string) {
	start := strings.LastIndexFunc(line, func(r rune) bool {
		return !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	}) + 1

	prefix := line[start:]
	if prefix == "" {
		return nil
	}

	for _, keyword := range frontend.Keywords() {
		if strings.HasPrefix(keyword, prefix) {
			candidates = append(candidates, line[:start]+keyword)
		}
	}

	return candidates
}

// evalInteractive runs one complete REPL input. Each input has its own
// reporter so an error in one doesn't stop later inputs, while the
// interpreter and its variables carry over
func (r *runner) evalInteractive(src string, inter *backend.Interpreter) {
	r.digest(source.NewFile("<stdin>", src), inter, true)
}

func (r *runner) repl() error {
	ln := liner.NewLiner()
	defer ln.Close()

	ln.SetCtrlCAborts(true)
	ln.SetCompleter(completeKeyword)

	histPath := r.cfg.historyPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}

		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	inter := backend.NewInterpreter(r.stdout)

	var buf inputBuffer

	for {
		prompt := r.cfg.Prompt
		if buf.Pending() {
			prompt = r.cfg.ContinuationPrompt
		}

		line, err := ln.Prompt(prompt)

		if errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(r.stdout, replInterruptHint)
			buf.Reset()
			continue
		}

		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		if isExitCommand(line) {
			fmt.Fprintln(r.stdout, "Goodbye!")
			return nil
		}

		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}

		if src, ok := buf.Add(line); ok {
			r.evalInteractive(src, inter)
		}
	}
}
