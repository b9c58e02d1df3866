package frontend

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StringifyAST renders statements as S-expressions, one top level statement
// per line. Statement bodies nested in blocks, conditionals and loops are
// placed on their own indented lines
func StringifyAST(stmts []Stmt) string {
	lines := make([]string, len(stmts))

	for i, stmt := range stmts {
		lines[i] = stringifyNode(stmt)
	}

	return strings.Join(lines, "\n")
}

// StringifyExpr renders a single expression as an S-expression
func StringifyExpr(expr Expr) string {
	return stringifyNode(expr)
}

func stringifyNode(generic Node) string {
	const newline = "\n"

	switch node := generic.(type) {
	case *ExpressionStmt:
		return fmt.Sprintf("(expr %s)", stringifyNode(node.Expression))
	case *PrintStmt:
		return fmt.Sprintf("(print %s)", stringifyNode(node.Value))
	case *VarStmt:
		if node.Initializer == nil {
			return fmt.Sprintf("(var %s)", node.Name.Lexeme)
		}

		return fmt.Sprintf("(var %s %s)",
			node.Name.Lexeme,
			stringifyNode(node.Initializer))
	case *BlockStmt:
		block := "(block"

		for _, stmt := range node.Statements {
			block += newline + indentString(stringifyNode(stmt))
		}

		return block + ")"
	case *IfStmt:
		out := fmt.Sprintf("(if %s%s%s",
			stringifyNode(node.Condition),
			newline,
			indentString(stringifyNode(node.Then)))

		if node.Else != nil {
			out += newline + indentString(stringifyNode(node.Else))
		}

		return out + ")"
	case *WhileStmt:
		return fmt.Sprintf("(while %s%s%s)",
			stringifyNode(node.Condition),
			newline,
			indentString(stringifyNode(node.Body)))
	case *AssignExpr:
		return fmt.Sprintf("(= %s %s)",
			node.Name.Lexeme,
			stringifyNode(node.Value))
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)",
			node.Operator.Lexeme,
			stringifyNode(node.Left),
			stringifyNode(node.Right))
	case *LogicalExpr:
		return fmt.Sprintf("(%s %s %s)",
			node.Operator.Lexeme,
			stringifyNode(node.Left),
			stringifyNode(node.Right))
	case *UnaryExpr:
		return fmt.Sprintf("(%s %s)",
			node.Operator.Lexeme,
			stringifyNode(node.Operand))
	case *GroupingExpr:
		return fmt.Sprintf("(group %s)", stringifyNode(node.Inner))
	case *VariableExpr:
		return node.Name.Lexeme
	case *LiteralExpr:
		return stringifyLiteral(node.Value)
	default:
		return fmt.Sprintf("<Unknown %T>", node)
	}
}

func stringifyLiteral(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return FormatNumber(v)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatNumber renders a number the way Lox programs print it. Integral
// values have no fractional part
func FormatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case math.IsNaN(n):
		return "NaN"
	}

	return strconv.FormatFloat(n, 'f', -1, 64)
}

func indentString(s string) string {
	lines := strings.Split(s, "\n")

	for i, l := range lines {
		lines[i] = "   " + l
	}

	return strings.Join(lines, "\n")
}
