package backend

import (
	"fmt"

	"github.com/isaacev/Lox/frontend"
)

// Value is any runtime value: nil, bool, float64 or string
type Value interface{}

// RuntimeError is raised while executing a program. Token is the operator or
// name that was being evaluated and locates the error in the source
type RuntimeError struct {
	Token   frontend.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

// isTruthy implements Lox truthiness: nil and false are false, every other
// value is true
func isTruthy(v Value) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	default:
		return true
	}
}

// isEqual compares two values. Values of different types are never equal
func isEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}

	if a == nil || b == nil {
		return false
	}

	return a == b
}

// Stringify renders a value the way the print statement outputs it
func Stringify(v Value) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case bool:
		if x {
			return "true"
		}

		return "false"
	case float64:
		return frontend.FormatNumber(x)
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}
