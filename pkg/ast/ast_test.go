package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpressionRendering(t *testing.T) {
	cases := []struct {
		name string
		expr Expression
		want string
	}{
		{"integer", Int(-3), "-3"},
		{"boolean", Bool(true), "true"},
		{"string", Str("ab"), `"ab"`},
		{"variable", ID("x"), "x"},
		{"add chain", Add(Add(Int(1), Int(2)), Int(3)), "(+ (+ 1 2) 3)"},
		{"concat", Concat(Str("a"), Str("b")), `(++ "a" "b")`},
		{"less", Less(ID("a"), Int(2)), "(< a 2)"},
		{"if", If(Bool(true), Int(1), Int(2)), "(if true 1 2)"},
		{"let", Let("x", Int(1), ID("x")), "(let x 1 x)"},
		{"lambda", Fn("x", Ty("int"), Add(ID("x"), Int(1))), "(fn (x: int) (+ x 1))"},
		{"application chain", App(App(ID("f"), Int(1)), Int(2)), "((f 1) 2)"},
		{
			"higher order annotation",
			Fn("f", FnTy(Ty("int"), FnTy(Ty("bool"), Ty("str"))), App(ID("f"), Int(0))),
			"(fn (f: (int -> (bool -> str))) (f 0))",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.expr.String())
		})
	}
}

func TestNodeTypesAndPositions(t *testing.T) {
	node := SetPos(Add(Int(1), Int(2)), Position{Line: 2, Column: 4})
	assert.Equal(t, NodeBinaryExpression, node.NodeType())
	assert.Equal(t, "2:4", node.Pos().String())
	assert.True(t, Int(1).Pos().IsZero())
	assert.Equal(t, NodeFunctionTypeExpression, FnTy(Ty("int"), Ty("int")).NodeType())
}

func TestExpressionJSON(t *testing.T) {
	data, err := json.Marshal(App(Fn("x", Ty("int"), ID("x")), Int(5)))
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "ApplicationExpression", decoded["type"])
	function := decoded["function"].(map[string]any)
	assert.Equal(t, "LambdaExpression", function["type"])
	assert.Equal(t, "int", function["paramType"].(map[string]any)["name"])
}

func TestFreeVariables(t *testing.T) {
	cases := []struct {
		name string
		expr Expression
		want []string
	}{
		{"closed literal", Int(1), []string{}},
		{"single variable", ID("x"), []string{"x"}},
		{"let binds body only", Let("x", ID("x"), Add(ID("x"), ID("y"))), []string{"x", "y"}},
		{"lambda binds param", Fn("y", Ty("int"), Add(ID("x"), ID("y"))), []string{"x"}},
		{
			"scoping example is closed",
			Let("x", Int(1), Let("f", Fn("y", Ty("int"), Add(ID("x"), ID("y"))), Let("x", Int(2), App(ID("f"), Int(3))))),
			[]string{},
		},
		{"branches", If(ID("c"), ID("a"), ID("b")), []string{"a", "b", "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SortedFreeVariables(tc.expr)
			if len(tc.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
	assert.True(t, FreeVariables(nil).Empty())
}
