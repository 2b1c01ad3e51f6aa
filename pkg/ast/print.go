package ast

import (
	"fmt"
	"strconv"
)

// String methods give the fully-parenthesized diagnostic rendering of each
// node. The output resembles source syntax but is not meant to be reparsed.

func (n *Identifier) String() string { return n.Name }

func (n *IntegerLiteral) String() string { return strconv.FormatInt(n.Value, 10) }

func (n *BooleanLiteral) String() string { return strconv.FormatBool(n.Value) }

func (n *StringLiteral) String() string { return `"` + n.Value + `"` }

func (n *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Operator, n.Left, n.Right)
}

func (n *IfExpression) String() string {
	return fmt.Sprintf("(if %s %s %s)", n.Test, n.Then, n.Else)
}

func (n *LetExpression) String() string {
	return fmt.Sprintf("(let %s %s %s)", n.Name, n.Value, n.Body)
}

func (n *LambdaExpression) String() string {
	return fmt.Sprintf("(fn (%s: %s) %s)", n.Param, n.ParamType, n.Body)
}

func (n *ApplicationExpression) String() string {
	return fmt.Sprintf("(%s %s)", n.Function, n.Argument)
}

func (n *SimpleTypeExpression) String() string { return string(n.Name) }

func (n *FunctionTypeExpression) String() string {
	return fmt.Sprintf("(%s -> %s)", n.Param, n.Result)
}
