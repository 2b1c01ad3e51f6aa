package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"minilang/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindBool
	KindString
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Closures
//-----------------------------------------------------------------------------

// FunctionValue is a closure: the lambda it was built from (parameter name,
// declared type and body, shared with the AST) plus the environment in
// effect where the lambda was evaluated.
type FunctionValue struct {
	Declaration *ast.LambdaExpression
	Closure     *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// Param returns the closure's parameter name.
func (v *FunctionValue) Param() string {
	if v == nil || v.Declaration == nil || v.Declaration.Param == nil {
		return ""
	}
	return v.Declaration.Param.Name
}

//-----------------------------------------------------------------------------
// Rendering
//-----------------------------------------------------------------------------

// Format renders a value for display. Strings print without quotes at the
// top level; closures print their lambda and a dump of the captured
// environment.
func Format(v Value) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case IntegerValue:
		return strconv.FormatInt(val.Val, 10)
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case StringValue:
		return val.Val
	case *FunctionValue:
		return fmt.Sprintf("closure(%s, %s)", val.Declaration, val.Closure)
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}

// Inspect is Format with string values quoted. Environment dumps and error
// messages use it so strings stay distinguishable from other values.
func Inspect(v Value) string {
	if s, ok := v.(StringValue); ok {
		return `"` + s.Val + `"`
	}
	return Format(v)
}

// String dumps the bindings in name order as {name: value, ...}.
func (e *Environment) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range e.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		val, _ := e.Get(name)
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(Inspect(val))
	}
	b.WriteByte('}')
	return b.String()
}
