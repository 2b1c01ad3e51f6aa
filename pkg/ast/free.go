package ast

import (
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// FreeVariables returns the names referenced in expr that no enclosing let or
// lambda inside expr binds. A nil expression has no free variables.
func FreeVariables(expr Expression) *set.Set[string] {
	free := set.New[string](0)
	collectFree(expr, free)
	return free
}

// SortedFreeVariables is FreeVariables as a sorted slice.
func SortedFreeVariables(expr Expression) []string {
	names := FreeVariables(expr).Slice()
	slices.Sort(names)
	return names
}

func collectFree(expr Expression, into *set.Set[string]) {
	switch n := expr.(type) {
	case nil:
	case *Identifier:
		into.Insert(n.Name)
	case *IntegerLiteral, *BooleanLiteral, *StringLiteral:
	case *BinaryExpression:
		collectFree(n.Left, into)
		collectFree(n.Right, into)
	case *IfExpression:
		collectFree(n.Test, into)
		collectFree(n.Then, into)
		collectFree(n.Else, into)
	case *LetExpression:
		collectFree(n.Value, into)
		into.InsertSet(without(n.Body, n.Name))
	case *LambdaExpression:
		into.InsertSet(without(n.Body, n.Param))
	case *ApplicationExpression:
		collectFree(n.Function, into)
		collectFree(n.Argument, into)
	}
}

func without(body Expression, binder *Identifier) *set.Set[string] {
	inner := FreeVariables(body)
	if binder != nil {
		inner.Remove(binder.Name)
	}
	return inner
}
