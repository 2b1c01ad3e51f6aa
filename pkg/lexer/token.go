package lexer

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the lexical category of a token.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindString
	KindIdentifier
	KindPlus
	KindConcat
	KindLessThan
	KindLeftParen
	KindRightParen
	KindLeftBrace
	KindRightBrace
	KindColon
	KindArrow
	KindEqual
	KindIf
	KindElse
	KindLet
	KindFn
	KindIntType
	KindBoolType
	KindStrType
)

var kindNames = map[Kind]string{
	KindInt:        "integer",
	KindBool:       "boolean",
	KindString:     "string",
	KindIdentifier: "identifier",
	KindPlus:       "+",
	KindConcat:     "++",
	KindLessThan:   "<",
	KindLeftParen:  "(",
	KindRightParen: ")",
	KindLeftBrace:  "{",
	KindRightBrace: "}",
	KindColon:      ":",
	KindArrow:      "->",
	KindEqual:      "=",
	KindIf:         "if",
	KindElse:       "else",
	KindLet:        "let",
	KindFn:         "fn",
	KindIntType:    "int",
	KindBoolType:   "bool",
	KindStrType:    "str",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown_kind_%d", int(k))
}

// keywords maps reserved words to their token kinds. true/false are handled
// separately because they carry a value.
var keywords = map[string]Kind{
	"if":   KindIf,
	"else": KindElse,
	"let":  KindLet,
	"fn":   KindFn,
	"int":  KindIntType,
	"bool": KindBoolType,
	"str":  KindStrType,
}

// Position locates a token in the source text. Line and Column are 1-based;
// Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit. Only the payload field matching Kind is
// meaningful: Int for KindInt, Bool for KindBool, Text for KindString and
// KindIdentifier.
type Token struct {
	Kind Kind
	Text string
	Int  int64
	Bool bool
	Pos  Position
}

// Equal reports whether two tokens have the same kind and payload, ignoring
// their positions.
func (t Token) Equal(other Token) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindInt:
		return t.Int == other.Int
	case KindBool:
		return t.Bool == other.Bool
	case KindString, KindIdentifier:
		return t.Text == other.Text
	default:
		return true
	}
}

// String renders the token the way it would appear in source.
func (t Token) String() string {
	switch t.Kind {
	case KindInt:
		return strconv.FormatInt(t.Int, 10)
	case KindBool:
		return strconv.FormatBool(t.Bool)
	case KindString:
		return `"` + t.Text + `"`
	case KindIdentifier:
		return t.Text
	default:
		return t.Kind.String()
	}
}

// Render joins the canonical renderings of tokens with single spaces. The
// result lexes back to an equal token sequence.
func Render(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.String()
	}
	return strings.Join(parts, " ")
}

// EqualTokens compares two token sequences with Token.Equal.
func EqualTokens(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
