package typechecker

import (
	"fmt"

	"minilang/interpreter-go/pkg/ast"
)

// Type is a static minilang type. The set is closed: PrimitiveType and
// FunctionType are the only implementations.
type Type interface {
	fmt.Stringer
	Name() string
	isType()
}

type PrimitiveKind string

const (
	PrimitiveInt  PrimitiveKind = "int"
	PrimitiveBool PrimitiveKind = "bool"
	PrimitiveStr  PrimitiveKind = "str"
)

type PrimitiveType struct {
	Kind PrimitiveKind
}

func (p PrimitiveType) Name() string   { return string(p.Kind) }
func (p PrimitiveType) String() string { return p.Name() }
func (PrimitiveType) isType()          {}

var (
	IntType  Type = PrimitiveType{Kind: PrimitiveInt}
	BoolType Type = PrimitiveType{Kind: PrimitiveBool}
	StrType  Type = PrimitiveType{Kind: PrimitiveStr}
)

type FunctionType struct {
	Param  Type
	Result Type
}

func (f FunctionType) Name() string   { return fmt.Sprintf("(%s -> %s)", f.Param, f.Result) }
func (f FunctionType) String() string { return f.Name() }
func (FunctionType) isType()          {}

// Func builds the function type param -> result.
func Func(param, result Type) Type {
	return FunctionType{Param: param, Result: result}
}

// Equal is structural type equality, the only compatibility rule.
func Equal(a, b Type) bool {
	switch at := a.(type) {
	case PrimitiveType:
		bt, ok := b.(PrimitiveType)
		return ok && at.Kind == bt.Kind
	case FunctionType:
		bt, ok := b.(FunctionType)
		return ok && Equal(at.Param, bt.Param) && Equal(at.Result, bt.Result)
	default:
		return false
	}
}

// FromTypeExpression resolves a source type annotation.
func FromTypeExpression(expr ast.TypeExpression) (Type, error) {
	switch t := expr.(type) {
	case *ast.SimpleTypeExpression:
		switch t.Name {
		case ast.TypeNameInt:
			return IntType, nil
		case ast.TypeNameBool:
			return BoolType, nil
		case ast.TypeNameStr:
			return StrType, nil
		}
		return nil, &Error{Message: fmt.Sprintf("unknown type %q", t.Name), Node: t}
	case *ast.FunctionTypeExpression:
		param, err := FromTypeExpression(t.Param)
		if err != nil {
			return nil, err
		}
		result, err := FromTypeExpression(t.Result)
		if err != nil {
			return nil, err
		}
		return Func(param, result), nil
	case nil:
		return nil, &Error{Message: "missing type annotation"}
	default:
		return nil, &Error{Message: fmt.Sprintf("unsupported type expression %T", expr)}
	}
}
