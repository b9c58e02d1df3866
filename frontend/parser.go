package frontend

import (
	"github.com/isaacev/Lox/source"
)

// Parse takes the tokens of a file and returns the statements they form. Any
// syntax errors are sent to the reporter. A statement containing a syntax
// error is left out of the result and parsing resumes at the next statement,
// so the returned slice may be shorter than the number of statements written
func Parse(tokens []Token, reporter Reporter) []Stmt {
	return NewParser(tokens, reporter).Parse()
}

// parseError unwinds a parse back to the enclosing declaration. It has
// already been reported by the time it is returned and never leaves this
// package
type parseError struct {
	token   Token
	message string
}

func (e *parseError) Error() string {
	return e.message
}

// Parser instances walk a token slice with a single cursor. The slice must
// end with an EOF token
type Parser struct {
	tokens   []Token
	current  int
	reporter Reporter
}

// NewParser is a Parser factory function. A missing EOF token is added
func NewParser(tokens []Token, reporter Reporter) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		eof := Token{Kind: EOF, Line: 1, Span: source.Span{
			Start: source.Pos{Line: 1, Col: 1},
			End:   source.Pos{Line: 1, Col: 1},
		}}

		// An error at end is reported where the last token is
		if n := len(tokens); n > 0 {
			eof.Line = tokens[n-1].Line
			eof.Span = tokens[n-1].Span
		}

		tokens = append(tokens[:len(tokens):len(tokens)], eof)
	}

	return &Parser{
		tokens:   tokens,
		reporter: reporter,
	}
}

// Parse produces the statements of the program
//
//	program → declaration* EOF
func (p *Parser) Parse() (stmts []Stmt) {
	for !p.isAtEnd() {
		if stmt, ok := p.declaration(); ok {
			stmts = append(stmts, stmt)
		}
	}

	return stmts
}

// declaration is the recovery point for syntax errors. When the declaration
// fails, the tokens up to the next statement boundary are skipped and false
// is returned
//
//	declaration → varDecl | statement
func (p *Parser) declaration() (stmt Stmt, ok bool) {
	var err error

	if p.match(Var) {
		stmt, err = p.varDeclaration()
	} else {
		stmt, err = p.statement()
	}

	if err != nil {
		p.synchronize()
		return nil, false
	}

	return stmt, true
}

// varDecl → "var" IDENT ( "=" expression )? ";"
func (p *Parser) varDeclaration() (Stmt, error) {
	name, err := p.consume(Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer Expr

	if p.match(Equal) {
		if initializer, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err = p.consume(Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}

	return &VarStmt{Name: name, Initializer: initializer}, nil
}

// statement → ifStmt | printStmt | whileStmt | forStmt | block | exprStmt
func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.match(If):
		return p.ifStatement()
	case p.match(Print):
		return p.printStatement()
	case p.match(While):
		return p.whileStatement()
	case p.match(For):
		return p.forStatement()
	case p.match(LeftBrace):
		brace := p.previous()
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}

		return &BlockStmt{LeftBrace: brace, Statements: stmts}, nil
	}

	return p.expressionStatement()
}

// ifStmt → "if" "(" expression ")" statement ( "else" statement )?
func (p *Parser) ifStatement() (Stmt, error) {
	keyword := p.previous()

	if _, err := p.consume(LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}

	condition, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err = p.consume(RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}

	var elseBranch Stmt

	if p.match(Else) {
		if elseBranch, err = p.statement(); err != nil {
			return nil, err
		}
	}

	return &IfStmt{
		Keyword:   keyword,
		Condition: condition,
		Then:      thenBranch,
		Else:      elseBranch,
	}, nil
}

// whileStmt → "while" "(" expression ")" statement
func (p *Parser) whileStatement() (Stmt, error) {
	keyword := p.previous()

	if _, err := p.consume(LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}

	condition, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err = p.consume(RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	return &WhileStmt{Keyword: keyword, Condition: condition, Body: body}, nil
}

// forStmt → "for" "(" ( varDecl | exprStmt | ";" ) expression? ";" expression? ")" statement
//
// There is no for node in the AST. The loop is rewritten as
//
//	{ initializer; while (condition) { body; increment; } }
//
// where a missing condition becomes `true` and the surrounding blocks are
// only created when there is an initializer or an increment to hold
func (p *Parser) forStatement() (Stmt, error) {
	keyword := p.previous()

	if _, err := p.consume(LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer Stmt
	var err error

	switch {
	case p.match(Semicolon):
		initializer = nil
	case p.match(Var):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}

	if err != nil {
		return nil, err
	}

	var condition Expr

	if !p.check(Semicolon) {
		if condition, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err = p.consume(Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment Expr

	if !p.check(RightParen) {
		if increment, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err = p.consume(RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &BlockStmt{
			LeftBrace:  keyword,
			Statements: []Stmt{body, &ExpressionStmt{Expression: increment}},
		}
	}

	if condition == nil {
		condition = &LiteralExpr{Token: keyword, Value: true}
	}

	body = &WhileStmt{Keyword: keyword, Condition: condition, Body: body}

	if initializer != nil {
		body = &BlockStmt{
			LeftBrace:  keyword,
			Statements: []Stmt{initializer, body},
		}
	}

	return body, nil
}

// printStmt → "print" expression ";"
func (p *Parser) printStatement() (Stmt, error) {
	keyword := p.previous()

	value, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err = p.consume(Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}

	return &PrintStmt{Keyword: keyword, Value: value}, nil
}

// exprStmt → expression ";"
func (p *Parser) expressionStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err = p.consume(Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}

	return &ExpressionStmt{Expression: expr}, nil
}

// block → "{" declaration* "}"
//
// Declarations inside the block recover on their own so only a missing
// closing brace fails the block itself
func (p *Parser) block() ([]Stmt, error) {
	stmts := []Stmt{}

	for !p.check(RightBrace) && !p.isAtEnd() {
		if stmt, ok := p.declaration(); ok {
			stmts = append(stmts, stmt)
		}
	}

	if _, err := p.consume(RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}

	return stmts, nil
}

// expression → assignment
func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

// assignment → IDENT "=" assignment | logic_or
//
// The left hand side is parsed as an ordinary expression first and only
// afterwards checked to be a plain variable. An invalid target is reported
// but does not abort the statement
func (p *Parser) assignment() (Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(Equal) {
		equals := p.previous()

		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		if variable, ok := expr.(*VariableExpr); ok {
			return &AssignExpr{Name: variable.Name, Value: value}, nil
		}

		p.error(equals, "Invalid assignment target.")
	}

	return expr, nil
}

// logic_or → logic_and ( "or" logic_and )*
func (p *Parser) or() (Expr, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}

	for p.match(Or) {
		operator := p.previous()

		right, err := p.and()
		if err != nil {
			return nil, err
		}

		expr = &LogicalExpr{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// logic_and → equality ( "and" equality )*
func (p *Parser) and() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}

	for p.match(And) {
		operator := p.previous()

		right, err := p.equality()
		if err != nil {
			return nil, err
		}

		expr = &LogicalExpr{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// equality → comparison ( ( "!=" | "==" ) comparison )*
func (p *Parser) equality() (Expr, error) {
	return p.binaryLevel(p.comparison, BangEqual, EqualEqual)
}

// comparison → term ( ( ">" | ">=" | "<" | "<=" ) term )*
func (p *Parser) comparison() (Expr, error) {
	return p.binaryLevel(p.term, Greater, GreaterEqual, Less, LessEqual)
}

// term → factor ( ( "-" | "+" ) factor )*
func (p *Parser) term() (Expr, error) {
	return p.binaryLevel(p.factor, Minus, Plus)
}

// factor → unary ( ( "/" | "*" ) unary )*
func (p *Parser) factor() (Expr, error) {
	return p.binaryLevel(p.unary, Slash, Star)
}

// binaryLevel parses one left-associative precedence level whose operands are
// parsed by "operand" and whose operators are any of "operators"
func (p *Parser) binaryLevel(operand func() (Expr, error), operators ...TokenKind) (Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}

	for p.match(operators...) {
		operator := p.previous()

		right, err := operand()
		if err != nil {
			return nil, err
		}

		expr = &BinaryExpr{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// unary → ( "!" | "-" ) unary | primary
func (p *Parser) unary() (Expr, error) {
	if p.match(Bang, Minus) {
		operator := p.previous()

		operand, err := p.unary()
		if err != nil {
			return nil, err
		}

		return &UnaryExpr{Operator: operator, Operand: operand}, nil
	}

	return p.primary()
}

// primary → NUMBER | STRING | "true" | "false" | "nil" | IDENT | "(" expression ")"
func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(False):
		return &LiteralExpr{Token: p.previous(), Value: false}, nil
	case p.match(True):
		return &LiteralExpr{Token: p.previous(), Value: true}, nil
	case p.match(Nil):
		return &LiteralExpr{Token: p.previous(), Value: nil}, nil
	case p.match(Number, String):
		tok := p.previous()
		return &LiteralExpr{Token: tok, Value: tok.Literal}, nil
	case p.match(Identifier):
		return &VariableExpr{Name: p.previous()}, nil
	case p.match(LeftParen):
		paren := p.previous()

		inner, err := p.expression()
		if err != nil {
			return nil, err
		}

		if _, err = p.consume(RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}

		return &GroupingExpr{LeftParen: paren, Inner: inner}, nil
	}

	return nil, p.error(p.peek(), "Expect expression.")
}

// synchronize discards tokens until the parser reaches a likely statement
// boundary: just past a semicolon or just before a statement keyword. The
// token that caused the error is always discarded
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Kind == Semicolon {
			return
		}

		if startsStatement(p.peek().Kind) {
			return
		}

		p.advance()
	}
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}

	return false
}

// consume returns the next token if it has the given kind. If the upcoming
// token DOESN'T match, an error is reported and returned instead
func (p *Parser) consume(kind TokenKind, message string) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}

	return Token{}, p.error(p.peek(), message)
}

// error reports a syntax error at the given token and returns the value used
// to unwind to the enclosing declaration
func (p *Parser) error(tok Token, message string) *parseError {
	where := " at '" + tok.Lexeme + "'"
	if tok.Kind == EOF {
		where = " at end"
	}

	p.reporter.ReportSyntaxError(tok.Span, where, message)
	return &parseError{token: tok, message: message}
}

func (p *Parser) check(kind TokenKind) bool {
	if p.isAtEnd() {
		return false
	}

	return p.peek().Kind == kind
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}

	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == EOF
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}
