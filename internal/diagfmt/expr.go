package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"tongue/internal/lambda"
	"tongue/internal/source"
)

// ExprOutput is the JSON form of a lambda expression.
type ExprOutput struct {
	Type     string      `json:"type"`
	Span     string      `json:"span"`
	Name     string      `json:"name,omitempty"`
	Param    string      `json:"param,omitempty"`
	Function *ExprOutput `json:"function,omitempty"`
	Argument *ExprOutput `json:"argument,omitempty"`
	Body     *ExprOutput `json:"body,omitempty"`
}

// formatSpan renders "startLine:startCol-endLine:endCol", 1-based.
func formatSpan(span source.Span) string {
	start, end := span.Start().LineCol(), span.End().LineCol()
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// FormatExprPretty writes the indented form of expr, every node preceded by
// its span.
func FormatExprPretty(w io.Writer, expr *lambda.Expr) error {
	_, err := expr.WriteTo(w)
	return err
}

// FormatExprTree writes expr as a box-drawn tree.
func FormatExprTree(w io.Writer, expr *lambda.Expr) error {
	fmt.Fprintln(w, exprLabel(expr))
	return writeTreeChildren(w, expr, "")
}

func exprLabel(e *lambda.Expr) string {
	switch k := e.Kind.(type) {
	case *lambda.Variable:
		return fmt.Sprintf("Variable %s (span: %s)", k.Name.Text(), formatSpan(e.Span))
	case *lambda.Application:
		return fmt.Sprintf("Application (span: %s)", formatSpan(e.Span))
	case *lambda.Lambda:
		return fmt.Sprintf("Lambda \\%s (span: %s)", k.Parameter.Text(), formatSpan(e.Span))
	}
	return fmt.Sprintf("<unknown %T>", e.Kind)
}

func exprChildren(e *lambda.Expr) []*lambda.Expr {
	switch k := e.Kind.(type) {
	case *lambda.Application:
		return []*lambda.Expr{k.Function, k.Argument}
	case *lambda.Lambda:
		return []*lambda.Expr{k.Body}
	}
	return nil
}

func writeTreeChildren(w io.Writer, e *lambda.Expr, prefix string) error {
	children := exprChildren(e)
	for i, child := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, exprLabel(child)); err != nil {
			return err
		}
		if err := writeTreeChildren(w, child, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

// BuildExprOutput converts expr to its JSON form.
func BuildExprOutput(e *lambda.Expr) *ExprOutput {
	if e == nil {
		return nil
	}
	out := &ExprOutput{Span: formatSpan(e.Span)}
	switch k := e.Kind.(type) {
	case *lambda.Variable:
		out.Type = "variable"
		out.Name = k.Name.Text()
	case *lambda.Application:
		out.Type = "application"
		out.Function = BuildExprOutput(k.Function)
		out.Argument = BuildExprOutput(k.Argument)
	case *lambda.Lambda:
		out.Type = "lambda"
		out.Param = k.Parameter.Text()
		out.Body = BuildExprOutput(k.Body)
	}
	return out
}

// FormatExprJSON writes expr as indented JSON.
func FormatExprJSON(w io.Writer, expr *lambda.Expr) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildExprOutput(expr))
}
