package ast

// Short constructors for building trees by hand, mostly in tests.

func ID(name string) *Identifier { return NewIdentifier(name) }

func Int(value int64) *IntegerLiteral { return NewIntegerLiteral(value) }

func Bool(value bool) *BooleanLiteral { return NewBooleanLiteral(value) }

func Str(value string) *StringLiteral { return NewStringLiteral(value) }

func Add(left, right Expression) *BinaryExpression {
	return NewBinaryExpression(OperatorAdd, left, right)
}

func Concat(left, right Expression) *BinaryExpression {
	return NewBinaryExpression(OperatorConcat, left, right)
}

func Less(left, right Expression) *BinaryExpression {
	return NewBinaryExpression(OperatorLessThan, left, right)
}

func If(test, then, els Expression) *IfExpression { return NewIfExpression(test, then, els) }

func Let(name string, value, body Expression) *LetExpression {
	return NewLetExpression(ID(name), value, body)
}

func Fn(param string, paramType TypeExpression, body Expression) *LambdaExpression {
	return NewLambdaExpression(ID(param), paramType, body)
}

func App(function, argument Expression) *ApplicationExpression {
	return NewApplicationExpression(function, argument)
}

// Ty builds a base type expression: "int", "bool" or "str".
func Ty(name string) *SimpleTypeExpression { return NewSimpleTypeExpression(SimpleTypeName(name)) }

func FnTy(param, result TypeExpression) *FunctionTypeExpression {
	return NewFunctionTypeExpression(param, result)
}
