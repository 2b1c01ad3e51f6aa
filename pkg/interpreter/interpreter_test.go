package interpreter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/parser"
	"minilang/interpreter-go/pkg/runtime"
	"minilang/interpreter-go/pkg/typechecker"
)

func evalSource(t *testing.T, src string) (runtime.Value, error) {
	t.Helper()
	expr, err := parser.ParseSource(src)
	require.NoError(t, err, "parse %q", src)
	return New().Evaluate(expr)
}

func TestEvaluateScenarios(t *testing.T) {
	cases := []struct {
		src  string
		want runtime.Value
	}{
		{"3 + 4", runtime.IntegerValue{Val: 7}},
		{`"ab" ++ "cd"`, runtime.StringValue{Val: "abcd"}},
		{"if 1 < 2 { 10 } else { 20 }", runtime.IntegerValue{Val: 10}},
		{"if 2 < 1 { 10 } else { 20 }", runtime.IntegerValue{Val: 20}},
		{"let x = true { if x { 1 } else { 2 } }", runtime.IntegerValue{Val: 1}},
		{"(fn (x: int) { x + 1 })(5)", runtime.IntegerValue{Val: 6}},
		{"1 + 2 + 3", runtime.IntegerValue{Val: 6}},
		{"1 + 2 < 4", runtime.BoolValue{Val: true}},
		{"-3 + 5", runtime.IntegerValue{Val: 2}},
		{"let f = fn (a: int) { fn (b: int) { a + b } } { f(1)(2) }", runtime.IntegerValue{Val: 3}},
		{"let x = 1 { let x = x + 1 { x } }", runtime.IntegerValue{Val: 2}},
		{`let greet = fn (s: str) { "hi " ++ s } { greet("bob") }`, runtime.StringValue{Val: "hi bob"}},
		{"(fn (g: (int -> int)) { g(g(2)) })(fn (n: int) { n + n })", runtime.IntegerValue{Val: 8}},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			got, err := evalSource(t, tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLexicalScoping(t *testing.T) {
	got, err := evalSource(t, "let x = 1 { let f = fn(y: int){ x + y } { let x = 2 { f(3) } } }")
	require.NoError(t, err)
	assert.Equal(t, runtime.IntegerValue{Val: 4}, got)
}

func TestClosureCapturesDefinitionEnvironment(t *testing.T) {
	got, err := evalSource(t, "let x = 1 { fn (y: int) { x + y } }")
	require.NoError(t, err)
	fn, ok := got.(*runtime.FunctionValue)
	require.True(t, ok, "expected closure, got %T", got)
	assert.Equal(t, "y", fn.Param())
	assert.Equal(t, []string{"x"}, fn.Closure.Names())
	assert.Equal(t, "closure((fn (y: int) (+ x y)), {x: 1})", runtime.Format(got))
}

func TestShortCircuitConditional(t *testing.T) {
	got, err := evalSource(t, "if true { 1 } else { missing + 1 }")
	require.NoError(t, err)
	assert.Equal(t, runtime.IntegerValue{Val: 1}, got)

	got, err = evalSource(t, `if false { 1(2) } else { "ok" }`)
	require.NoError(t, err)
	assert.Equal(t, runtime.StringValue{Val: "ok"}, got)
}

func TestEvaluateRuntimeErrors(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"x", "x not bound"},
		{"1 + true", "+ expects two integers, got 1 and true"},
		{`"a" ++ 1`, `++ expects two strings, got "a" and 1`},
		{`1 < "b"`, `< expects two integers, got 1 and "b"`},
		{"if 1 { 2 } else { 3 }", "boolean expected, found 1"},
		{"1(2)", "function expected, found 1"},
		{`"f"(2)`, `function expected, found "f"`},
		{"(fn (x: int) { y })(1)", "y not bound"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			_, err := evalSource(t, tc.src)
			require.Error(t, err)
			var runtimeErr *Error
			require.ErrorAs(t, err, &runtimeErr)
			assert.Equal(t, tc.want, runtimeErr.Message)
		})
	}
}

func TestOperandsEvaluateLeftToRight(t *testing.T) {
	_, err := evalSource(t, "a + b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a not bound")

	_, err = evalSource(t, "f(b)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "f not bound")
}

func TestDeterminism(t *testing.T) {
	sources := []string{
		"let x = 1 { let f = fn(y: int){ x + y } { let x = 2 { f(3) } } }",
		"let x = 7 { fn (y: int) { x } }",
		"1 + true",
	}
	for _, src := range sources {
		expr, err := parser.ParseSource(src)
		require.NoError(t, err)
		first, firstErr := Evaluate(expr, nil)
		second, secondErr := Evaluate(expr, runtime.NewEnvironment())
		if firstErr != nil {
			require.Error(t, secondErr)
			assert.Equal(t, firstErr.Error(), secondErr.Error())
			continue
		}
		require.NoError(t, secondErr)
		assert.Equal(t, runtime.Format(first), runtime.Format(second))
	}
}

func TestWellTypedProgramsDoNotGetStuck(t *testing.T) {
	sources := []string{
		"3 + 4",
		`"ab" ++ "cd"`,
		"if 1 < 2 { 10 } else { 20 }",
		"let x = true { if x { 1 } else { 2 } }",
		"(fn (x: int) { x + 1 })(5)",
		"let compose = fn (f: (int -> int)) { fn (g: (int -> int)) { fn (x: int) { f(g(x)) } } } { compose(fn (a: int) { a + 1 })(fn (b: int) { b + b })(5) }",
		"let twice = fn (s: str) { s ++ s } { twice(twice(\"ab\")) }",
		"let lt = fn (a: int) { fn (b: int) { a < b } } { if lt(1)(2) { \"yes\" } else { \"no\" } }",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			expr, err := parser.ParseSource(src)
			require.NoError(t, err)
			_, err = typechecker.Check(expr, typechecker.NewEnvironment())
			require.NoError(t, err)
			_, err = Evaluate(expr, runtime.NewEnvironment())
			require.NoError(t, err)
		})
	}
}

func TestEvaluateInDoesNotMutateEnvironment(t *testing.T) {
	env := runtime.NewEnvironment().Extend("n", runtime.IntegerValue{Val: 10})
	expr := ast.Let("m", ast.Int(1), ast.Add(ast.ID("n"), ast.ID("m")))
	got, err := New().EvaluateIn(env, expr)
	require.NoError(t, err)
	assert.Equal(t, runtime.IntegerValue{Val: 11}, got)
	assert.Equal(t, []string{"n"}, env.Names())
}

func TestIntegerAdditionWraps(t *testing.T) {
	expr := ast.Add(ast.Int(math.MaxInt64), ast.Int(1))
	got, err := Evaluate(expr, nil)
	require.NoError(t, err)
	assert.Equal(t, runtime.IntegerValue{Val: math.MinInt64}, got)
}

func TestMaxDepthStopsRunawayEvaluation(t *testing.T) {
	// Ill-typed, so only reachable when type checking is skipped.
	expr, err := parser.ParseSource("(fn (x: int) { x(x) })(fn (x: int) { x(x) })")
	require.NoError(t, err)

	interp := New()
	interp.SetMaxDepth(500)
	_, err = interp.Evaluate(expr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evaluation depth limit exceeded (500)")

	got, err := interp.Evaluate(ast.Add(ast.Int(1), ast.Int(1)))
	require.NoError(t, err)
	assert.Equal(t, runtime.IntegerValue{Val: 2}, got)
}

func TestEvaluateNil(t *testing.T) {
	_, err := New().Evaluate(nil)
	require.Error(t, err)
}

func TestRuntimeErrorPosition(t *testing.T) {
	_, err := evalSource(t, "let a = 1 {\n  a + \"s\" }")
	require.Error(t, err)
	assert.Equal(t, `2:3: + expects two integers, got 1 and "s"`, err.Error())
}
