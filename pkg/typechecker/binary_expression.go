package typechecker

import (
	"fmt"

	"minilang/interpreter-go/pkg/ast"
)

// Operand and result types of each binary operator.
var binaryOperatorTypes = map[ast.BinaryOperator]struct{ operand, result Type }{
	ast.OperatorAdd:      {IntType, IntType},
	ast.OperatorConcat:   {StrType, StrType},
	ast.OperatorLessThan: {IntType, BoolType},
}

func (c *Checker) checkBinaryExpression(env *Environment, expr *ast.BinaryExpression) (Type, error) {
	leftType, err := c.checkExpression(env, expr.Left)
	if err != nil {
		return nil, err
	}
	rightType, err := c.checkExpression(env, expr.Right)
	if err != nil {
		return nil, err
	}

	sig, ok := binaryOperatorTypes[expr.Operator]
	if !ok {
		return nil, &Error{Message: fmt.Sprintf("unsupported binary operator %q", expr.Operator), Node: expr}
	}
	operand, result := sig.operand, sig.result
	if !Equal(leftType, operand) || !Equal(rightType, operand) {
		return nil, &Error{
			Message: fmt.Sprintf("%s expects %s operands, found %s and %s", expr.Operator, operand, leftType, rightType),
			Node:    expr,
		}
	}
	return result, nil
}
