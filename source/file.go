package source

import (
	"strings"
)

// File represents a chunk of source code to be processed by the front-end. The
// "Contents" field is a raw string representation of the file's contents. The
// "Lines" field is a cached slice of the file's contents split by '\n' so that
// error messages aren't required to repeatedly split the contents.
type File struct {
	Filename string
	Contents string
	Lines    []string
}

// NewFile wraps a filename and the text read from it in a File, caching the
// individual lines for later use by diagnostics
func NewFile(filename string, contents string) *File {
	return &File{
		Filename: filename,
		Contents: contents,
		Lines:    strings.SplitAfter(contents, "\n"),
	}
}

// Line returns the text of the 1-indexed line "n" without its trailing line
// break. The second return value is false when the line does not exist
func (f *File) Line(n int) (string, bool) {
	if f == nil || n < 1 || n > len(f.Lines) {
		return "", false
	}

	return strings.TrimRight(f.Lines[n-1], "\r\n"), true
}
