package frontend

import (
	"github.com/isaacev/Lox/source"
)

// Node is a generic node in the abstract syntax tree (AST)
type Node interface {
	Pos() source.Pos
}

// Expr represents a Node that produces a value when evaluated. The set of
// expression nodes is closed: only types in this package implement it
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a Node that is executed for its effect. The set of
// statement nodes is closed: only types in this package implement it
type Stmt interface {
	Node
	stmtNode()
}

// LiteralExpr represents a number, string, boolean or nil literal. Value holds
// a float64, string, bool or nil
type LiteralExpr struct {
	Token Token
	Value interface{}
}

// Pos returns the starting source code position of this node
func (l *LiteralExpr) Pos() source.Pos {
	return l.Token.Span.Start
}

func (l *LiteralExpr) exprNode() {}

// GroupingExpr represents a parenthesized expression
type GroupingExpr struct {
	LeftParen Token
	Inner     Expr
}

// Pos returns the starting source code position of this node
func (g *GroupingExpr) Pos() source.Pos {
	return g.LeftParen.Span.Start
}

func (g *GroupingExpr) exprNode() {}

// UnaryExpr represents a prefix operator applied to a single operand
type UnaryExpr struct {
	Operator Token
	Operand  Expr
}

// Pos returns the starting source code position of this node
func (u *UnaryExpr) Pos() source.Pos {
	return u.Operator.Span.Start
}

func (u *UnaryExpr) exprNode() {}

// BinaryExpr represents a basic expression of the form:
// <left expr> <operator> <right expr>
type BinaryExpr struct {
	Left     Expr
	Operator Token
	Right    Expr
}

// Pos returns the starting source code position of this node
func (b *BinaryExpr) Pos() source.Pos {
	return b.Left.Pos()
}

func (b *BinaryExpr) exprNode() {}

// LogicalExpr represents an `and` or `or` expression. Unlike a BinaryExpr the
// right operand is only evaluated when the left operand doesn't already decide
// the result
type LogicalExpr struct {
	Left     Expr
	Operator Token
	Right    Expr
}

// Pos returns the starting source code position of this node
func (l *LogicalExpr) Pos() source.Pos {
	return l.Left.Pos()
}

func (l *LogicalExpr) exprNode() {}

// VariableExpr represents a read of a named variable
type VariableExpr struct {
	Name Token
}

// Pos returns the starting source code position of this node
func (v *VariableExpr) Pos() source.Pos {
	return v.Name.Span.Start
}

func (v *VariableExpr) exprNode() {}

// AssignExpr represents the assignment of a value to an existing variable
type AssignExpr struct {
	Name  Token
	Value Expr
}

// Pos returns the starting source code position of this node
func (a *AssignExpr) Pos() source.Pos {
	return a.Name.Span.Start
}

func (a *AssignExpr) exprNode() {}

// ExpressionStmt represents an expression evaluated for its side effects
type ExpressionStmt struct {
	Expression Expr
}

// Pos returns the starting source code position of this node
func (e *ExpressionStmt) Pos() source.Pos {
	return e.Expression.Pos()
}

func (e *ExpressionStmt) stmtNode() {}

// PrintStmt represents a print statement which outputs the result of an
// expression followed by a newline
type PrintStmt struct {
	Keyword Token
	Value   Expr
}

// Pos returns the starting source code position of this node
func (p *PrintStmt) Pos() source.Pos {
	return p.Keyword.Span.Start
}

func (p *PrintStmt) stmtNode() {}

// VarStmt represents a variable declaration. Initializer is nil when the
// declaration has no `= <expr>` part
type VarStmt struct {
	Name        Token
	Initializer Expr
}

// Pos returns the starting source code position of this node
func (v *VarStmt) Pos() source.Pos {
	return v.Name.Span.Start
}

func (v *VarStmt) stmtNode() {}

// BlockStmt represents a sequence of statements run in a new lexical scope.
// Blocks created while desugaring a `for` loop use the `for` keyword as their
// LeftBrace token
type BlockStmt struct {
	LeftBrace  Token
	Statements []Stmt
}

// Pos returns the starting source code position of this node
func (b *BlockStmt) Pos() source.Pos {
	return b.LeftBrace.Span.Start
}

func (b *BlockStmt) stmtNode() {}

// IfStmt represents a basic conditional statement. Else is nil when there is
// no else branch
type IfStmt struct {
	Keyword   Token
	Condition Expr
	Then      Stmt
	Else      Stmt
}

// Pos returns the starting source code position of this node
func (i *IfStmt) Pos() source.Pos {
	return i.Keyword.Span.Start
}

func (i *IfStmt) stmtNode() {}

// WhileStmt represents a loop statement. `for` loops are also represented by
// a WhileStmt after the parser desugars them
type WhileStmt struct {
	Keyword   Token
	Condition Expr
	Body      Stmt
}

// Pos returns the starting source code position of this node
func (w *WhileStmt) Pos() source.Pos {
	return w.Keyword.Span.Start
}

func (w *WhileStmt) stmtNode() {}
