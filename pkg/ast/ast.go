// Package ast defines the expression tree shared by the parser, the type
// checker and the interpreter.
package ast

import "fmt"

type NodeType string

const (
	NodeIdentifier             NodeType = "Identifier"
	NodeIntegerLiteral         NodeType = "IntegerLiteral"
	NodeBooleanLiteral         NodeType = "BooleanLiteral"
	NodeStringLiteral          NodeType = "StringLiteral"
	NodeBinaryExpression       NodeType = "BinaryExpression"
	NodeIfExpression           NodeType = "IfExpression"
	NodeLetExpression          NodeType = "LetExpression"
	NodeLambdaExpression       NodeType = "LambdaExpression"
	NodeApplicationExpression  NodeType = "ApplicationExpression"
	NodeSimpleTypeExpression   NodeType = "SimpleTypeExpression"
	NodeFunctionTypeExpression NodeType = "FunctionTypeExpression"
)

// Position is a 1-based line/column location in source text.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsZero reports whether the position was never set.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

type Node interface {
	fmt.Stringer
	NodeType() NodeType
	Pos() Position
	setPos(Position)
}

type nodeImpl struct {
	Type     NodeType `json:"type"`
	Location Position `json:"pos"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n *nodeImpl) NodeType() NodeType  { return n.Type }
func (n *nodeImpl) Pos() Position       { return n.Location }
func (n *nodeImpl) setPos(pos Position) { n.Location = pos }

// SetPos records where node starts in the source and returns it.
func SetPos[T Node](node T, pos Position) T {
	node.setPos(pos)
	return node
}

// Marker interfaces close the Expression and TypeExpression sets to the
// node types declared in this package.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type TypeExpression interface {
	Node
	typeExpressionNode()
}

type typeExpressionMarker struct{}

func (typeExpressionMarker) typeExpressionNode() {}

// Identifier is a variable reference.
type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

// Operators

type BinaryOperator string

const (
	OperatorAdd      BinaryOperator = "+"
	OperatorConcat   BinaryOperator = "++"
	OperatorLessThan BinaryOperator = "<"
)

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryExpression(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// Control flow and binding

type IfExpression struct {
	nodeImpl
	expressionMarker

	Test Expression `json:"test"`
	Then Expression `json:"then"`
	Else Expression `json:"else"`
}

func NewIfExpression(test, then, els Expression) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIfExpression), Test: test, Then: then, Else: els}
}

// LetExpression binds Name to Value while evaluating Body.
type LetExpression struct {
	nodeImpl
	expressionMarker

	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
	Body  Expression  `json:"body"`
}

func NewLetExpression(name *Identifier, value, body Expression) *LetExpression {
	return &LetExpression{nodeImpl: newNodeImpl(NodeLetExpression), Name: name, Value: value, Body: body}
}

// LambdaExpression is a single-parameter function with a mandatory
// parameter type annotation.
type LambdaExpression struct {
	nodeImpl
	expressionMarker

	Param     *Identifier    `json:"param"`
	ParamType TypeExpression `json:"paramType"`
	Body      Expression     `json:"body"`
}

func NewLambdaExpression(param *Identifier, paramType TypeExpression, body Expression) *LambdaExpression {
	return &LambdaExpression{nodeImpl: newNodeImpl(NodeLambdaExpression), Param: param, ParamType: paramType, Body: body}
}

type ApplicationExpression struct {
	nodeImpl
	expressionMarker

	Function Expression `json:"function"`
	Argument Expression `json:"argument"`
}

func NewApplicationExpression(function, argument Expression) *ApplicationExpression {
	return &ApplicationExpression{nodeImpl: newNodeImpl(NodeApplicationExpression), Function: function, Argument: argument}
}

// Type expressions

type SimpleTypeName string

const (
	TypeNameInt  SimpleTypeName = "int"
	TypeNameBool SimpleTypeName = "bool"
	TypeNameStr  SimpleTypeName = "str"
)

type SimpleTypeExpression struct {
	nodeImpl
	typeExpressionMarker

	Name SimpleTypeName `json:"name"`
}

func NewSimpleTypeExpression(name SimpleTypeName) *SimpleTypeExpression {
	return &SimpleTypeExpression{nodeImpl: newNodeImpl(NodeSimpleTypeExpression), Name: name}
}

type FunctionTypeExpression struct {
	nodeImpl
	typeExpressionMarker

	Param  TypeExpression `json:"param"`
	Result TypeExpression `json:"result"`
}

func NewFunctionTypeExpression(param, result TypeExpression) *FunctionTypeExpression {
	return &FunctionTypeExpression{nodeImpl: newNodeImpl(NodeFunctionTypeExpression), Param: param, Result: result}
}
