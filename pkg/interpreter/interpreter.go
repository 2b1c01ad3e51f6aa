// Package interpreter evaluates minilang expressions to runtime values.
package interpreter

import (
	"fmt"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/runtime"
)

// Error is a runtime failure attached to the node being evaluated.
type Error struct {
	Message string
	Node    ast.Node
}

func (e *Error) Error() string {
	if e.Node != nil && !e.Node.Pos().IsZero() {
		return fmt.Sprintf("%s: %s", e.Node.Pos(), e.Message)
	}
	return e.Message
}

func errorf(node ast.Node, format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...), Node: node}
}

// Interpreter evaluates expressions by direct recursion over the tree. It is
// not safe for concurrent use.
type Interpreter struct {
	global   *runtime.Environment
	maxDepth int
	depth    int
}

// New returns an interpreter with an empty top-level environment and no
// depth limit.
func New() *Interpreter {
	return &Interpreter{global: runtime.NewEnvironment()}
}

// SetMaxDepth bounds evaluation recursion; 0 removes the bound.
func (i *Interpreter) SetMaxDepth(depth int) {
	if depth < 0 {
		depth = 0
	}
	i.maxDepth = depth
}

// Evaluate is shorthand for New().EvaluateIn(env, expr).
func Evaluate(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	return New().EvaluateIn(env, expr)
}

// Evaluate evaluates expr in the interpreter's top-level environment.
func (i *Interpreter) Evaluate(expr ast.Expression) (runtime.Value, error) {
	return i.EvaluateIn(i.global, expr)
}

// EvaluateIn evaluates expr in env. env is never modified.
func (i *Interpreter) EvaluateIn(env *runtime.Environment, expr ast.Expression) (runtime.Value, error) {
	if expr == nil {
		return nil, &Error{Message: "interpreter: expression is nil"}
	}
	i.depth = 0
	return i.evaluate(expr, env)
}

func (i *Interpreter) evaluate(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	i.depth++
	defer func() { i.depth-- }()
	if i.maxDepth > 0 && i.depth > i.maxDepth {
		return nil, errorf(expr, "evaluation depth limit exceeded (%d)", i.maxDepth)
	}

	switch n := expr.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.Identifier:
		if v, ok := env.Lookup(n.Name); ok {
			return v, nil
		}
		return nil, errorf(n, "%s not bound", n.Name)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.IfExpression:
		return i.evaluateIfExpression(n, env)
	case *ast.LetExpression:
		value, err := i.evaluate(n.Value, env)
		if err != nil {
			return nil, err
		}
		return i.evaluate(n.Body, env.Extend(n.Name.Name, value))
	case *ast.LambdaExpression:
		return &runtime.FunctionValue{Declaration: n, Closure: env}, nil
	case *ast.ApplicationExpression:
		return i.evaluateApplication(n, env)
	default:
		return nil, errorf(expr, "unsupported expression %T", expr)
	}
}

func (i *Interpreter) evaluateIfExpression(expr *ast.IfExpression, env *runtime.Environment) (runtime.Value, error) {
	test, err := i.evaluate(expr.Test, env)
	if err != nil {
		return nil, err
	}
	cond, ok := test.(runtime.BoolValue)
	if !ok {
		return nil, errorf(expr.Test, "boolean expected, found %s", runtime.Inspect(test))
	}
	if cond.Val {
		return i.evaluate(expr.Then, env)
	}
	return i.evaluate(expr.Else, env)
}

func (i *Interpreter) evaluateApplication(expr *ast.ApplicationExpression, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluate(expr.Function, env)
	if err != nil {
		return nil, err
	}
	arg, err := i.evaluate(expr.Argument, env)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*runtime.FunctionValue)
	if !ok || fn.Declaration == nil {
		return nil, errorf(expr.Function, "function expected, found %s", runtime.Inspect(callee))
	}
	return i.evaluate(fn.Declaration.Body, fn.Closure.Extend(fn.Param(), arg))
}
