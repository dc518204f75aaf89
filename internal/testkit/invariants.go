// Package testkit holds checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"tongue/internal/lambda"
	"tongue/internal/source"
)

// CheckExprSpans walks a parsed expression and verifies its spans:
//  1. every node span is non-empty, belongs to src and ends within it
//  2. names, parameters and children lie inside their parent's span
//  3. an application's function ends before its argument starts, and a
//     lambda's parameter ends before its body starts
func CheckExprSpans(e *lambda.Expr, src *source.Source) error {
	if e == nil || src == nil {
		return fmt.Errorf("nil expression or source")
	}
	var failure error
	lambda.Walk(e, func(node *lambda.Expr) bool {
		if failure == nil {
			failure = checkNode(node, src)
		}
		return failure == nil
	})
	return failure
}

func checkNode(node *lambda.Expr, src *source.Source) error {
	sp := node.Span
	if !sp.IsValid() || sp.Source() != src {
		return fmt.Errorf("span %v does not belong to %s", sp, src.Name())
	}
	if sp.IsEmpty() {
		return fmt.Errorf("empty node span %v", sp)
	}
	if sp.End().Position() > src.Len() {
		return fmt.Errorf("span %v ends beyond source length %d", sp, src.Len())
	}

	switch k := node.Kind.(type) {
	case *lambda.Variable:
		return within("variable name", k.Name, sp)
	case *lambda.Application:
		if err := within("function", k.Function.Span, sp); err != nil {
			return err
		}
		if err := within("argument", k.Argument.Span, sp); err != nil {
			return err
		}
		return ordered("function", k.Function.Span, "argument", k.Argument.Span)
	case *lambda.Lambda:
		if err := within("parameter", k.Parameter, sp); err != nil {
			return err
		}
		if err := within("body", k.Body.Span, sp); err != nil {
			return err
		}
		return ordered("parameter", k.Parameter, "body", k.Body.Span)
	default:
		return fmt.Errorf("unknown expression kind %T", node.Kind)
	}
}

func within(what string, inner, outer source.Span) error {
	if inner.Source() != outer.Source() {
		return fmt.Errorf("%s span %v is in another source", what, inner)
	}
	if inner.Start().Position() < outer.Start().Position() || inner.End().Position() > outer.End().Position() {
		return fmt.Errorf("%s span %v is outside %v", what, inner, outer)
	}
	return nil
}

func ordered(firstName string, first source.Span, secondName string, second source.Span) error {
	if first.End().Position() > second.Start().Position() {
		return fmt.Errorf("%s %v overlaps %s %v", firstName, first, secondName, second)
	}
	return nil
}
