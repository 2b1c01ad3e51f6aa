package interpreter

import (
	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/runtime"
)

// Both operands are evaluated, left first, before any kind check.
func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluate(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator {
	case ast.OperatorAdd:
		l, r, ok := integerOperands(left, right)
		if !ok {
			return nil, operandError(expr, "two integers", left, right)
		}
		// int64 addition wraps on overflow.
		return runtime.IntegerValue{Val: l + r}, nil
	case ast.OperatorLessThan:
		l, r, ok := integerOperands(left, right)
		if !ok {
			return nil, operandError(expr, "two integers", left, right)
		}
		return runtime.BoolValue{Val: l < r}, nil
	case ast.OperatorConcat:
		l, lok := left.(runtime.StringValue)
		r, rok := right.(runtime.StringValue)
		if !lok || !rok {
			return nil, operandError(expr, "two strings", left, right)
		}
		return runtime.StringValue{Val: l.Val + r.Val}, nil
	default:
		return nil, errorf(expr, "unsupported binary operator %q", expr.Operator)
	}
}

func integerOperands(left, right runtime.Value) (int64, int64, bool) {
	l, lok := left.(runtime.IntegerValue)
	r, rok := right.(runtime.IntegerValue)
	if !lok || !rok {
		return 0, 0, false
	}
	return l.Val, r.Val, true
}

func operandError(expr *ast.BinaryExpression, want string, left, right runtime.Value) error {
	return errorf(expr, "%s expects %s, got %s and %s", expr.Operator, want, runtime.Inspect(left), runtime.Inspect(right))
}
