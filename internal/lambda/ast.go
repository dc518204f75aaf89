package lambda

import (
	"io"
	"strings"

	"tongue/internal/source"
)

// Expr is a lambda calculus expression node.
type Expr struct {
	// Span covers the whole expression, parentheses included.
	Span source.Span
	Kind ExprKind
}

// ExprKind is one of *Variable, *Application, *Lambda.
type ExprKind interface {
	exprKind()
}

// Variable is `foo`.
type Variable struct {
	Name source.Span
	ID   source.StringID
}

// Application is `f x`.
type Application struct {
	Function *Expr
	Argument *Expr
}

// Lambda is `\x. body`.
type Lambda struct {
	Parameter source.Span
	ParamID   source.StringID
	Body      *Expr
}

func (*Variable) exprKind()    {}
func (*Application) exprKind() {}
func (*Lambda) exprKind()      {}

// String renders the expression as an indented tree, every node preceded by
// its span.
func (e *Expr) String() string {
	var sb strings.Builder
	writeExpr(&sb, e, 0)
	return sb.String()
}

// WriteTo writes the indented tree form to w.
func (e *Expr) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, e.String())
	return int64(n), err
}

func writeIndent(sb *strings.Builder, level int) {
	for range level {
		sb.WriteString("    ")
	}
}

func writeExpr(sb *strings.Builder, e *Expr, level int) {
	writeIndent(sb, level)
	sb.WriteString("[")
	sb.WriteString(e.Span.String())
	sb.WriteString("]\n")
	writeKind(sb, e.Kind, level)
}

func writeKind(sb *strings.Builder, kind ExprKind, level int) {
	switch k := kind.(type) {
	case *Variable:
		writeIndent(sb, level)
		sb.WriteString(k.Name.Text())
		sb.WriteString("\n")

	case *Application:
		_, funLambda := k.Function.Kind.(*Lambda)
		writeOperand(sb, k.Function, level, funLambda)
		_, argApp := k.Argument.Kind.(*Application)
		_, argLambda := k.Argument.Kind.(*Lambda)
		writeOperand(sb, k.Argument, level, argApp || argLambda)

	case *Lambda:
		writeIndent(sb, level)
		sb.WriteString("\\")
		sb.WriteString(k.Parameter.Text())
		sb.WriteString(".\n")
		writeExpr(sb, k.Body, level+1)
	}
}

func writeOperand(sb *strings.Builder, e *Expr, level int, parens bool) {
	if !parens {
		writeExpr(sb, e, level+1)
		return
	}
	writeIndent(sb, level+1)
	sb.WriteString("(\n")
	writeExpr(sb, e, level+2)
	writeIndent(sb, level+1)
	sb.WriteString(")\n")
}

// Walk calls fn for e and its descendants in pre-order, stopping a branch
// when fn returns false.
func Walk(e *Expr, fn func(*Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch k := e.Kind.(type) {
	case *Application:
		Walk(k.Function, fn)
		Walk(k.Argument, fn)
	case *Lambda:
		Walk(k.Body, fn)
	}
}
