package backend

import (
	"fmt"
	"io"

	"github.com/isaacev/Lox/frontend"
)

// Execute is a simple wrapper around the `Interpreter` creation and execution
func Execute(stmts []frontend.Stmt, stdout io.Writer) error {
	return NewInterpreter(stdout).Interpret(stmts)
}

// Interpreter walks statement trees and executes them. The global environment
// lives as long as the Interpreter so a REPL can feed it one line at a time
// and keep every variable defined so far. `print` output goes to Stdout
type Interpreter struct {
	Stdout  io.Writer
	globals *Environment
	env     *Environment
}

// NewInterpreter returns an Interpreter with an empty global environment
func NewInterpreter(stdout io.Writer) *Interpreter {
	globals := NewEnvironment(nil)

	return &Interpreter{
		Stdout:  stdout,
		globals: globals,
		env:     globals,
	}
}

// Globals exposes the global environment
func (inter *Interpreter) Globals() *Environment {
	return inter.globals
}

// Interpret executes statements in order until they are exhausted or one of
// them fails. A failure is always a *RuntimeError
func (inter *Interpreter) Interpret(stmts []frontend.Stmt) error {
	for _, stmt := range stmts {
		if err := inter.execute(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (inter *Interpreter) execute(stmt frontend.Stmt) error {
	switch s := stmt.(type) {
	case *frontend.ExpressionStmt:
		_, err := inter.evaluate(s.Expression)
		return err
	case *frontend.PrintStmt:
		return inter.executePrint(s)
	case *frontend.VarStmt:
		return inter.executeVar(s)
	case *frontend.BlockStmt:
		return inter.executeBlock(s.Statements, NewEnvironment(inter.env))
	case *frontend.IfStmt:
		return inter.executeIf(s)
	case *frontend.WhileStmt:
		return inter.executeWhile(s)
	default:
		panic(fmt.Sprintf("unknown statement node: %T", s))
	}
}

func (inter *Interpreter) executePrint(stmt *frontend.PrintStmt) error {
	value, err := inter.evaluate(stmt.Value)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(inter.Stdout, Stringify(value))
	return err
}

func (inter *Interpreter) executeVar(stmt *frontend.VarStmt) error {
	var value Value

	if stmt.Initializer != nil {
		var err error
		if value, err = inter.evaluate(stmt.Initializer); err != nil {
			return err
		}
	}

	inter.env.Define(stmt.Name.Lexeme, value)
	return nil
}

// executeBlock runs statements inside "env" and restores the enclosing
// environment afterwards, whether or not a statement failed
func (inter *Interpreter) executeBlock(stmts []frontend.Stmt, env *Environment) error {
	previous := inter.env
	inter.env = env
	defer func() { inter.env = previous }()

	for _, stmt := range stmts {
		if err := inter.execute(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (inter *Interpreter) executeIf(stmt *frontend.IfStmt) error {
	condition, err := inter.evaluate(stmt.Condition)
	if err != nil {
		return err
	}

	if isTruthy(condition) {
		return inter.execute(stmt.Then)
	} else if stmt.Else != nil {
		return inter.execute(stmt.Else)
	}

	return nil
}

func (inter *Interpreter) executeWhile(stmt *frontend.WhileStmt) error {
	for {
		condition, err := inter.evaluate(stmt.Condition)
		if err != nil {
			return err
		}

		if !isTruthy(condition) {
			return nil
		}

		if err = inter.execute(stmt.Body); err != nil {
			return err
		}
	}
}

func (inter *Interpreter) evaluate(expr frontend.Expr) (Value, error) {
	switch e := expr.(type) {
	case *frontend.LiteralExpr:
		return e.Value, nil
	case *frontend.GroupingExpr:
		return inter.evaluate(e.Inner)
	case *frontend.VariableExpr:
		return inter.env.Get(e.Name)
	case *frontend.AssignExpr:
		value, err := inter.evaluate(e.Value)
		if err != nil {
			return nil, err
		}

		if err = inter.env.Assign(e.Name, value); err != nil {
			return nil, err
		}

		return value, nil
	case *frontend.LogicalExpr:
		return inter.evaluateLogical(e)
	case *frontend.UnaryExpr:
		return inter.evaluateUnary(e)
	case *frontend.BinaryExpr:
		return inter.evaluateBinary(e)
	default:
		panic(fmt.Sprintf("unknown expression node: %T", e))
	}
}

// evaluateLogical returns whichever operand decided the result, not a bool.
// The right operand is skipped when the left one already decides it
func (inter *Interpreter) evaluateLogical(expr *frontend.LogicalExpr) (Value, error) {
	left, err := inter.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	if expr.Operator.Kind == frontend.Or {
		if isTruthy(left) {
			return left, nil
		}
	} else if !isTruthy(left) {
		return left, nil
	}

	return inter.evaluate(expr.Right)
}

func (inter *Interpreter) evaluateUnary(expr *frontend.UnaryExpr) (Value, error) {
	operand, err := inter.evaluate(expr.Operand)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Kind {
	case frontend.Bang:
		return !isTruthy(operand), nil
	case frontend.Minus:
		n, ok := operand.(float64)
		if !ok {
			return nil, &RuntimeError{Token: expr.Operator, Message: "Operand must be a number."}
		}

		return -n, nil
	}

	panic(fmt.Sprintf("unknown unary operator: %s", expr.Operator.Kind))
}

func (inter *Interpreter) evaluateBinary(expr *frontend.BinaryExpr) (Value, error) {
	left, err := inter.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	right, err := inter.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	op := expr.Operator

	switch op.Kind {
	case frontend.EqualEqual:
		return isEqual(left, right), nil
	case frontend.BangEqual:
		return !isEqual(left, right), nil
	case frontend.Plus:
		if l, ok := left.(float64); ok {
			if r, ok := right.(float64); ok {
				return l + r, nil
			}
		}

		if l, ok := left.(string); ok {
			if r, ok := right.(string); ok {
				return l + r, nil
			}
		}

		return nil, &RuntimeError{Token: op, Message: "Operands must be two numbers or two strings."}
	}

	l, r, err := numberOperands(op, left, right)
	if err != nil {
		return nil, err
	}

	switch op.Kind {
	case frontend.Minus:
		return l - r, nil
	case frontend.Star:
		return l * r, nil
	case frontend.Slash:
		return l / r, nil
	case frontend.Greater:
		return l > r, nil
	case frontend.GreaterEqual:
		return l >= r, nil
	case frontend.Less:
		return l < r, nil
	case frontend.LessEqual:
		return l <= r, nil
	}

	panic(fmt.Sprintf("unknown binary operator: %s", op.Kind))
}

func numberOperands(op frontend.Token, left, right Value) (float64, float64, error) {
	l, lok := left.(float64)
	r, rok := right.(float64)

	if !lok || !rok {
		return 0, 0, &RuntimeError{Token: op, Message: "Operands must be numbers."}
	}

	return l, r, nil
}
