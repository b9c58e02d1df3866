package backend

import (
	"github.com/isaacev/Lox/frontend"
)

// Environment represents the variables available at a point in a running
// program. All environments (except the global environment) have a parent
// environment for non-local lookup
type Environment struct {
	Parent    *Environment
	variables map[string]Value
}

// NewEnvironment creates an environment nested inside "parent". A nil parent
// creates the global environment
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		Parent:    parent,
		variables: make(map[string]Value),
	}
}

// Define binds a name in this environment. Redefining an existing name in the
// same environment replaces its value
func (e *Environment) Define(name string, value Value) {
	e.variables[name] = value
}

// Get looks a variable up in this environment and then in each enclosing one
func (e *Environment) Get(name frontend.Token) (Value, error) {
	for env := e; env != nil; env = env.Parent {
		if value, ok := env.variables[name.Lexeme]; ok {
			return value, nil
		}
	}

	return nil, undefinedVariable(name)
}

// Assign updates the innermost existing binding of a variable. Assigning to a
// name that was never declared is an error
func (e *Environment) Assign(name frontend.Token, value Value) error {
	for env := e; env != nil; env = env.Parent {
		if _, ok := env.variables[name.Lexeme]; ok {
			env.variables[name.Lexeme] = value
			return nil
		}
	}

	return undefinedVariable(name)
}

func undefinedVariable(name frontend.Token) *RuntimeError {
	return &RuntimeError{
		Token:   name,
		Message: "Undefined variable '" + name.Lexeme + "'.",
	}
}
