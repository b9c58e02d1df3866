package frontend_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/isaacev/Lox/feedback"
	"github.com/isaacev/Lox/frontend"
	"github.com/isaacev/Lox/source"
)

func parse(t *testing.T, src string) ([]frontend.Stmt, *feedback.Reporter) {
	t.Helper()

	tokens, reporter := scan(t, src)
	return frontend.Parse(tokens, reporter), reporter
}

func parseClean(t *testing.T, src string) []frontend.Stmt {
	t.Helper()

	stmts, reporter := parse(t, src)
	if reporter.HadError() {
		t.Fatalf("unexpected errors parsing %q: %v", src, errorsOf(t, reporter))
	}

	return stmts
}

func TestParseExpressionPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"8 / 4 / 2", "(/ (/ 8 4) 2)"},
		{"(1 + 2) * 3", "(* (group (+ 1 2)) 3)"},
		{"-1 - -2", "(- (- 1) (- 2))"},
		{"!!true", "(! (! true))"},
		{"1 < 2 == 3 >= 4", "(== (< 1 2) (>= 3 4))"},
		{"a != b == c", "(== (!= a b) c)"},
		{"a or b and c", "(or a (and b c))"},
		{"a and b or c and d", "(or (and a b) (and c d))"},
		{"a or b or c", "(or (or a b) c)"},
		{"a and b and c", "(and (and a b) c)"},
		{"a = b = 3", "(= a (= b 3))"},
		{"a = 1 + 2", "(= a (+ 1 2))"},
		{"x = y or z", "(= x (or y z))"},
		{"1 + 2 < 3 * 4 and !nil", "(and (< (+ 1 2) (* 3 4)) (! nil))"},
		{"\"a\" + \"b\"", "(+ \"a\" \"b\")"},
		{"2.5 * false", "(* 2.5 false)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			stmts := parseClean(t, tt.src+";")

			if len(stmts) != 1 {
				t.Fatalf("expected 1 statement, got %d", len(stmts))
			}

			stmt, ok := stmts[0].(*frontend.ExpressionStmt)
			if !ok {
				t.Fatalf("expected *frontend.ExpressionStmt, got %T", stmts[0])
			}

			if got := frontend.StringifyExpr(stmt.Expression); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseBinaryTree(t *testing.T) {
	stmts := parseClean(t, "1+2*3;")

	expr := stmts[0].(*frontend.ExpressionStmt).Expression

	plus, ok := expr.(*frontend.BinaryExpr)
	if !ok || plus.Operator.Kind != frontend.Plus {
		t.Fatalf("expected + at the root, got %s", frontend.StringifyExpr(expr))
	}

	if lit, ok := plus.Left.(*frontend.LiteralExpr); !ok || lit.Value != 1.0 {
		t.Errorf("expected literal 1 on the left, got %s", frontend.StringifyExpr(plus.Left))
	}

	star, ok := plus.Right.(*frontend.BinaryExpr)
	if !ok || star.Operator.Kind != frontend.Star {
		t.Fatalf("expected * on the right, got %s", frontend.StringifyExpr(plus.Right))
	}

	if star.Operator.Line != 1 || star.Operator.Lexeme != "*" {
		t.Errorf("operator token not kept: %v", star.Operator)
	}
}

func TestParseLogicalNodes(t *testing.T) {
	stmts := parseClean(t, "a or b;")

	if _, ok := stmts[0].(*frontend.ExpressionStmt).Expression.(*frontend.LogicalExpr); !ok {
		t.Errorf("expected a LogicalExpr for `or`")
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"print", "print 1;", "(print 1)"},
		{"var", "var a;", "(var a)"},
		{"var with initializer", "var a = \"x\";", "(var a \"x\")"},
		{"empty block", "{}", "(block)"},
		{"block", "{ var a = 1; print a; }", "(block\n   (var a 1)\n   (print a))"},
		{"if", "if (a) print 1;", "(if a\n   (print 1))"},
		{"if else", "if (a) print 1; else print 2;", "(if a\n   (print 1)\n   (print 2))"},
		{"dangling else", "if (a) if (b) print 1; else print 2;", "(if a\n   (if b\n      (print 1)\n      (print 2)))"},
		{"while", "while (i < 3) i = i + 1;", "(while (< i 3)\n   (expr (= i (+ i 1))))"},
		{"undeclared assignment", "a = 1 + 2;", "(expr (= a (+ 1 2)))"},
		{"several", "var a = 1;\nprint a;", "(var a 1)\n(print a)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frontend.StringifyAST(parseClean(t, tt.src)); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestParseForDesugaring(t *testing.T) {
	stmts := parseClean(t, "for (var i = 0; i < 3; i = i + 1) print i;")

	want := strings.Join([]string{
		"(block",
		"   (var i 0)",
		"   (while (< i 3)",
		"      (block",
		"         (print i)",
		"         (expr (= i (+ i 1))))))",
	}, "\n")

	if got := frontend.StringifyAST(stmts); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}

	outer, ok := stmts[0].(*frontend.BlockStmt)
	if !ok || len(outer.Statements) != 2 {
		t.Fatalf("expected outer block with 2 statements, got %T", stmts[0])
	}

	if _, ok := outer.Statements[0].(*frontend.VarStmt); !ok {
		t.Errorf("expected initializer VarStmt, got %T", outer.Statements[0])
	}

	loop, ok := outer.Statements[1].(*frontend.WhileStmt)
	if !ok {
		t.Fatalf("expected WhileStmt, got %T", outer.Statements[1])
	}

	body, ok := loop.Body.(*frontend.BlockStmt)
	if !ok || len(body.Statements) != 2 {
		t.Fatalf("expected loop body block with 2 statements, got %T", loop.Body)
	}

	if _, ok := body.Statements[0].(*frontend.PrintStmt); !ok {
		t.Errorf("expected original body first, got %T", body.Statements[0])
	}

	if _, ok := body.Statements[1].(*frontend.ExpressionStmt); !ok {
		t.Errorf("expected increment second, got %T", body.Statements[1])
	}
}

func TestParseForClauseVariants(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"no clauses", "for (;;) print 1;", "(while true\n   (print 1))"},
		{"condition only", "for (; a;) print 1;", "(while a\n   (print 1))"},
		{"expression initializer", "for (i = 0; i < 1;) print i;", "(block\n   (expr (= i 0))\n   (while (< i 1)\n      (print i)))"},
		{"increment only", "for (;; i = i + 1) {}", "(while true\n   (block\n      (block)\n      (expr (= i (+ i 1)))))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frontend.StringifyAST(parseClean(t, tt.src)); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantStmts string
		wantErrs  []string
	}{
		{
			name:      "missing initializer recovers next declaration",
			src:       "var a = ; var b = 1;",
			wantStmts: "(var b 1)",
			wantErrs:  []string{"[line 1] Error at ';': Expect expression."},
		},
		{
			name:      "operator missing operand",
			src:       "1 + = 2;\nprint 3;",
			wantStmts: "(print 3)",
			wantErrs:  []string{"[line 1] Error at '=': Expect expression."},
		},
		{
			name:      "invalid assignment target",
			src:       "1 = 2;\nprint 3;",
			wantStmts: "(expr 1)\n(print 3)",
			wantErrs:  []string{"[line 1] Error at '=': Invalid assignment target."},
		},
		{
			name:      "grouped assignment target",
			src:       "(a) = 2;",
			wantStmts: "(expr (group a))",
			wantErrs:  []string{"[line 1] Error at '=': Invalid assignment target."},
		},
		{
			name:      "missing semicolon at end",
			src:       "print 1",
			wantStmts: "",
			wantErrs:  []string{"[line 1] Error at end: Expect ';' after value."},
		},
		{
			name:      "missing variable name",
			src:       "var 1 = 2;\nvar ok;",
			wantStmts: "(var ok)",
			wantErrs:  []string{"[line 1] Error at '1': Expect variable name."},
		},
		{
			name:      "unclosed block",
			src:       "{ print 1;",
			wantStmts: "",
			wantErrs:  []string{"[line 1] Error at end: Expect '}' after block."},
		},
		{
			name:      "error inside block keeps the block",
			src:       "{ print ; print 2; }",
			wantStmts: "(block\n   (print 2))",
			wantErrs:  []string{"[line 1] Error at ';': Expect expression."},
		},
		{
			name:      "unclosed group",
			src:       "print (1 + 2;\nprint 4;",
			wantStmts: "(print 4)",
			wantErrs:  []string{"[line 1] Error at ';': Expect ')' after expression."},
		},
		{
			name:      "resynchronize at keyword",
			src:       "1 2 print 3;",
			wantStmts: "(print 3)",
			wantErrs:  []string{"[line 1] Error at '2': Expect ';' after expression."},
		},
		{
			name:      "if without paren",
			src:       "if a) print 1;\nprint 2;",
			wantStmts: "(print 1)\n(print 2)",
			wantErrs:  []string{"[line 1] Error at 'a': Expect '(' after 'if'."},
		},
		{
			name:      "while without closing paren",
			src:       "while (a print 1;",
			wantStmts: "",
			wantErrs:  []string{"[line 1] Error at 'print': Expect ')' after condition."},
		},
		{
			name:      "for missing condition semicolon",
			src:       "for (var i = 0; i < 1 i = i + 1) print i;",
			wantStmts: "(print i)",
			wantErrs:  []string{"[line 1] Error at 'i': Expect ';' after loop condition."},
		},
		{
			name:      "var as if branch",
			src:       "if (a) var b = 1;",
			wantStmts: "",
			wantErrs:  []string{"[line 1] Error at 'var': Expect expression."},
		},
		{
			name:      "errors on several lines",
			src:       "print;\nvar = 1;\nprint 3;",
			wantStmts: "(print 3)",
			wantErrs: []string{
				"[line 1] Error at ';': Expect expression.",
				"[line 2] Error at '=': Expect variable name.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, reporter := parse(t, tt.src)

			if !reporter.HadError() {
				t.Fatalf("expected the reporter to record an error")
			}

			if got := frontend.StringifyAST(stmts); got != tt.wantStmts {
				t.Errorf("recovered statements:\n%s\nwant:\n%s", got, tt.wantStmts)
			}

			var headers []string
			for _, err := range errorsOf(t, reporter) {
				headers = append(headers, strings.SplitN(err.Make(false), "\n", 2)[0])
			}

			if diff := cmp.Diff(tt.wantErrs, headers); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseEmptyProgram(t *testing.T) {
	if stmts := parseClean(t, "// nothing here\n"); len(stmts) != 0 {
		t.Errorf("expected no statements, got %d", len(stmts))
	}
}

func TestParseWithoutEOFToken(t *testing.T) {
	reporter := feedback.NewReporter(nil)
	tokens := []frontend.Token{
		{Kind: frontend.Print, Lexeme: "print", Line: 1},
		{Kind: frontend.Nil, Lexeme: "nil", Line: 1},
		{Kind: frontend.Semicolon, Lexeme: ";", Line: 1},
	}

	stmts := frontend.Parse(tokens, reporter)

	if reporter.HadError() || frontend.StringifyAST(stmts) != "(print nil)" {
		t.Errorf("unexpected result %q, errors %v", frontend.StringifyAST(stmts), reporter.Messages())
	}
}

func TestParseWithoutEOFTokenReportsAtLastLine(t *testing.T) {
	reporter := feedback.NewReporter(nil)
	tokens := []frontend.Token{
		{Kind: frontend.Print, Lexeme: "print", Line: 3},
		{Kind: frontend.Nil, Lexeme: "nil", Line: 3, Span: source.Span{
			Start: source.Pos{Line: 3, Col: 7},
			End:   source.Pos{Line: 3, Col: 9},
		}},
	}

	frontend.Parse(tokens, reporter)

	errs := errorsOf(t, reporter)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}

	if got, want := errs[0].Make(false), "[line 3] Error at end: Expect ';' after value."; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
