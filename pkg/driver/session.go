// Package driver ties the lexer, parser, type checker and interpreter into
// the read-check-evaluate pipeline used by the CLI and the scenario runner.
package driver

import (
	"fmt"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/interpreter"
	"minilang/interpreter-go/pkg/lexer"
	"minilang/interpreter-go/pkg/parser"
	"minilang/interpreter-go/pkg/runtime"
	"minilang/interpreter-go/pkg/typechecker"
)

// Stage names one step of the pipeline.
type Stage string

const (
	StageTokenize  Stage = "tokenize"
	StageParse     Stage = "parse"
	StageTypecheck Stage = "typecheck"
	StageRuntime   Stage = "runtime"
)

// Label returns the heading printed in front of a failure at this stage.
func (s Stage) Label() string {
	switch s {
	case StageTokenize:
		return "Tokenizer error"
	case StageParse:
		return "Parse error"
	case StageTypecheck:
		return "Type check failure"
	case StageRuntime:
		return "Runtime error"
	default:
		return string(s) + " error"
	}
}

// IsValid reports whether s is one of the pipeline stages.
func (s Stage) IsValid() bool {
	switch s {
	case StageTokenize, StageParse, StageTypecheck, StageRuntime:
		return true
	default:
		return false
	}
}

// StageError records which stage rejected the input.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage.Label(), e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Result holds whatever the pipeline produced before it stopped.
type Result struct {
	Source        string
	Tokens        []lexer.Token
	AST           ast.Expression
	Type          typechecker.Type
	Value         runtime.Value
	FreeVariables []string
}

// Session runs source text through the pipeline starting from empty
// top-level environments. A Session is not safe for concurrent use.
type Session struct {
	config  *Config
	checker *typechecker.Checker
	interp  *interpreter.Interpreter
	types   *typechecker.Environment
	values  *runtime.Environment
}

// NewSession builds a session; a nil config means DefaultConfig.
func NewSession(cfg *Config) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	interp := interpreter.New()
	interp.SetMaxDepth(cfg.MaxEvalDepth)
	return &Session{
		config:  cfg,
		checker: typechecker.New(),
		interp:  interp,
		types:   typechecker.NewEnvironment(),
		values:  runtime.NewEnvironment(),
	}
}

// Config returns the session's settings.
func (s *Session) Config() *Config { return s.config }

// Tokenize runs the first stage only.
func (s *Session) Tokenize(source string) (*Result, error) {
	res := &Result{Source: source}
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return res, &StageError{Stage: StageTokenize, Err: err}
	}
	res.Tokens = tokens
	return res, nil
}

// Parse runs the pipeline through parsing.
func (s *Session) Parse(source string) (*Result, error) {
	res, err := s.Tokenize(source)
	if err != nil {
		return res, err
	}
	if limit := s.config.MaxNesting; limit > 0 {
		if depth := MaxNesting(res.Tokens); depth > limit {
			return res, &StageError{Stage: StageParse, Err: &parser.Error{
				Message: fmt.Sprintf("nesting depth %d exceeds limit %d", depth, limit),
			}}
		}
	}
	expr, err := parser.ParseExpression(res.Tokens)
	if err != nil {
		return res, &StageError{Stage: StageParse, Err: err}
	}
	res.AST = expr
	res.FreeVariables = ast.SortedFreeVariables(expr)
	return res, nil
}

// Check runs the pipeline through type checking, whatever the typecheck
// setting says.
func (s *Session) Check(source string) (*Result, error) {
	res, err := s.Parse(source)
	if err != nil {
		return res, err
	}
	return res, s.check(res)
}

// Run runs the whole pipeline. The static check is skipped when the session
// was configured with typecheck: false.
func (s *Session) Run(source string) (*Result, error) {
	res, err := s.Parse(source)
	if err != nil {
		return res, err
	}
	if s.config.Typecheck {
		if err := s.check(res); err != nil {
			return res, err
		}
	}
	value, err := s.interp.EvaluateIn(s.values, res.AST)
	if err != nil {
		return res, &StageError{Stage: StageRuntime, Err: err}
	}
	res.Value = value
	return res, nil
}

func (s *Session) check(res *Result) error {
	typ, err := s.checker.CheckIn(s.types, res.AST)
	if err != nil {
		return &StageError{Stage: StageTypecheck, Err: err}
	}
	res.Type = typ
	return nil
}
