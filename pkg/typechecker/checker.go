// Package typechecker computes the static type of minilang expressions.
package typechecker

import (
	"fmt"

	"minilang/interpreter-go/pkg/ast"
)

// Error is a type error attached to the node that caused it.
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

// InferenceMap records the type computed for each checked node.
type InferenceMap map[ast.Node]Type

func (m InferenceMap) set(node ast.Node, typ Type) {
	if node == nil || typ == nil {
		return
	}
	m[node] = typ
}

// Checker type-checks expressions. The first error aborts a check; types
// inferred before the failure stay available through TypeOf.
type Checker struct {
	infer  InferenceMap
	global *Environment
}

// New returns a checker whose top-level environment is empty.
func New() *Checker {
	return &Checker{
		infer:  make(InferenceMap),
		global: NewEnvironment(),
	}
}

// Check type-checks expr against env. It is shorthand for New().CheckIn.
func Check(expr ast.Expression, env *Environment) (Type, error) {
	return New().CheckIn(env, expr)
}

// Check type-checks expr in the checker's top-level environment.
func (c *Checker) Check(expr ast.Expression) (Type, error) {
	return c.CheckIn(c.global, expr)
}

// CheckIn type-checks expr against env.
func (c *Checker) CheckIn(env *Environment, expr ast.Expression) (Type, error) {
	if expr == nil {
		return nil, &Error{Message: "typechecker: expression is nil"}
	}
	c.infer = make(InferenceMap)
	return c.checkExpression(env, expr)
}

// TypeOf returns the type inferred for node by the most recent check.
func (c *Checker) TypeOf(node ast.Node) (Type, bool) {
	typ, ok := c.infer[node]
	return typ, ok
}

func (c *Checker) checkExpression(env *Environment, expr ast.Expression) (Type, error) {
	var (
		typ Type
		err error
	)
	switch n := expr.(type) {
	case *ast.IntegerLiteral:
		typ = IntType
	case *ast.BooleanLiteral:
		typ = BoolType
	case *ast.StringLiteral:
		typ = StrType
	case *ast.Identifier:
		typ, err = c.checkIdentifier(env, n)
	case *ast.BinaryExpression:
		typ, err = c.checkBinaryExpression(env, n)
	case *ast.IfExpression:
		typ, err = c.checkIfExpression(env, n)
	case *ast.LetExpression:
		typ, err = c.checkLetExpression(env, n)
	case *ast.LambdaExpression:
		typ, err = c.checkLambdaExpression(env, n)
	case *ast.ApplicationExpression:
		typ, err = c.checkApplication(env, n)
	default:
		err = &Error{Message: fmt.Sprintf("unsupported expression %T", expr), Node: expr}
	}
	if err != nil {
		return nil, err
	}
	c.infer.set(expr, typ)
	return typ, nil
}

func (c *Checker) checkIdentifier(env *Environment, id *ast.Identifier) (Type, error) {
	typ, ok := env.Lookup(id.Name)
	if !ok {
		return nil, &Error{Message: fmt.Sprintf("no known type for %s", id.Name), Node: id}
	}
	return typ, nil
}

func (c *Checker) checkIfExpression(env *Environment, expr *ast.IfExpression) (Type, error) {
	testType, err := c.checkExpression(env, expr.Test)
	if err != nil {
		return nil, err
	}
	if !Equal(testType, BoolType) {
		return nil, &Error{Message: fmt.Sprintf("if test must be bool, found %s", testType), Node: expr.Test}
	}
	thenType, err := c.checkExpression(env, expr.Then)
	if err != nil {
		return nil, err
	}
	elseType, err := c.checkExpression(env, expr.Else)
	if err != nil {
		return nil, err
	}
	if !Equal(thenType, elseType) {
		return nil, &Error{
			Message: fmt.Sprintf("then and else branches have different types: %s and %s", thenType, elseType),
			Node:    expr,
		}
	}
	return thenType, nil
}

func (c *Checker) checkLetExpression(env *Environment, expr *ast.LetExpression) (Type, error) {
	valueType, err := c.checkExpression(env, expr.Value)
	if err != nil {
		return nil, err
	}
	c.infer.set(expr.Name, valueType)
	return c.checkExpression(env.Extend(expr.Name.Name, valueType), expr.Body)
}

func (c *Checker) checkLambdaExpression(env *Environment, expr *ast.LambdaExpression) (Type, error) {
	paramType, err := FromTypeExpression(expr.ParamType)
	if err != nil {
		if typeErr, ok := err.(*Error); ok && typeErr.Node == nil {
			typeErr.Node = expr
		}
		return nil, err
	}
	c.infer.set(expr.Param, paramType)
	bodyType, err := c.checkExpression(env.Extend(expr.Param.Name, paramType), expr.Body)
	if err != nil {
		return nil, err
	}
	return Func(paramType, bodyType), nil
}

func (c *Checker) checkApplication(env *Environment, expr *ast.ApplicationExpression) (Type, error) {
	calleeType, err := c.checkExpression(env, expr.Function)
	if err != nil {
		return nil, err
	}
	argType, err := c.checkExpression(env, expr.Argument)
	if err != nil {
		return nil, err
	}
	fnType, ok := calleeType.(FunctionType)
	if !ok {
		return nil, &Error{Message: fmt.Sprintf("function expected, found %s", calleeType), Node: expr.Function}
	}
	if !Equal(fnType.Param, argType) {
		return nil, &Error{
			Message: fmt.Sprintf("argument type mismatch: expected %s, found %s", fnType.Param, argType),
			Node:    expr.Argument,
		}
	}
	return fnType.Result, nil
}
