package source

import (
	"testing"
)

func TestFileLine(t *testing.T) {
	file := NewFile("test.lox", "var a = 1;\r\nprint a;\n")

	tests := []struct {
		n    int
		want string
		ok   bool
	}{
		{1, "var a = 1;", true},
		{2, "print a;", true},
		{3, "", true},
		{0, "", false},
		{4, "", false},
	}

	for _, tt := range tests {
		got, ok := file.Line(tt.n)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Line(%d) = (%q, %v), want (%q, %v)", tt.n, got, ok, tt.want, tt.ok)
		}
	}
}
