// Package parser builds minilang expression trees from tokens with a
// recursive descent parser.
//
// Grammar, lowest precedence first:
//
//	expression  := term ( ('+' | '++' | '<') term )*
//	term        := factor ( '(' expression ')' )*
//	factor      := '(' expression ')' | conditional | let1 | lambda
//	             | INT | BOOL | STR | IDENT
//	conditional := 'if' expression '{' expression '}' 'else' '{' expression '}'
//	let1        := 'let' IDENT '=' expression '{' expression '}'
//	lambda      := 'fn' '(' IDENT ':' typeexp ')' '{' expression '}'
//	typeexp     := 'int' | 'bool' | 'str' | '(' typeexp '->' typeexp ')'
package parser

import (
	"fmt"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/lexer"
)

// Error describes the first syntax problem found. Pos is the zero position
// when the input ended early.
type Error struct {
	Message string
	Pos     lexer.Position
}

func (e *Error) Error() string {
	if e.Pos.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

var binaryOperators = map[lexer.Kind]ast.BinaryOperator{
	lexer.KindPlus:     ast.OperatorAdd,
	lexer.KindConcat:   ast.OperatorConcat,
	lexer.KindLessThan: ast.OperatorLessThan,
}

// Parser walks a token slice left to right.
type Parser struct {
	tokens   []lexer.Token
	position int
}

// New returns a parser over tokens.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseExpression parses exactly one expression and fails if tokens remain.
func ParseExpression(tokens []lexer.Token) (ast.Expression, error) {
	return New(tokens).Parse()
}

// ParseSource tokenizes and parses text.
func ParseSource(text string) (ast.Expression, error) {
	tokens, err := lexer.Tokenize(text)
	if err != nil {
		return nil, err
	}
	return ParseExpression(tokens)
}

// Parse consumes the parser's entire input as one expression.
func (p *Parser) Parse() (ast.Expression, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.current(); ok {
		return nil, p.errorAt(tok, "expected end of input, found %s", describe(tok))
	}
	return expr, nil
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.current()
		if !ok {
			return left, nil
		}
		op, isOperator := binaryOperators[tok.Kind]
		if !isOperator {
			return left, nil
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = ast.SetPos(ast.NewBinaryExpression(op, left, right), left.Pos())
	}
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	term, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.KindLeftParen) {
		p.advance()
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.KindRightParen); err != nil {
			return nil, err
		}
		term = ast.SetPos(ast.NewApplicationExpression(term, arg), term.Pos())
	}
	return term, nil
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	tok, ok := p.current()
	if !ok {
		return nil, p.errorAt(tok, "expected a factor, found end of input")
	}
	pos := nodePos(tok)
	switch tok.Kind {
	case lexer.KindLeftParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.KindRightParen); err != nil {
			return nil, err
		}
		return expr, nil
	case lexer.KindIf:
		return p.parseConditional()
	case lexer.KindLet:
		return p.parseLet()
	case lexer.KindFn:
		return p.parseLambda()
	case lexer.KindInt:
		p.advance()
		return ast.SetPos(ast.NewIntegerLiteral(tok.Int), pos), nil
	case lexer.KindBool:
		p.advance()
		return ast.SetPos(ast.NewBooleanLiteral(tok.Bool), pos), nil
	case lexer.KindString:
		p.advance()
		return ast.SetPos(ast.NewStringLiteral(tok.Text), pos), nil
	case lexer.KindIdentifier:
		p.advance()
		return ast.SetPos(ast.NewIdentifier(tok.Text), pos), nil
	default:
		return nil, p.errorAt(tok, "expected a factor, found %s", describe(tok))
	}
}

// if test { then } else { else }
func (p *Parser) parseConditional() (ast.Expression, error) {
	start, _ := p.current()
	p.advance()
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.KindElse); err != nil {
		return nil, err
	}
	els, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.SetPos(ast.NewIfExpression(test, then, els), nodePos(start)), nil
}

// let name = value { body }
func (p *Parser) parseLet() (ast.Expression, error) {
	start, _ := p.current()
	p.advance()
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.KindEqual); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.SetPos(ast.NewLetExpression(name, value, body), nodePos(start)), nil
}

// fn ( name : type ) { body }
func (p *Parser) parseLambda() (ast.Expression, error) {
	start, _ := p.current()
	p.advance()
	if err := p.expect(lexer.KindLeftParen); err != nil {
		return nil, err
	}
	param, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.KindColon); err != nil {
		return nil, err
	}
	paramType, err := p.parseTypeExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.KindRightParen); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.SetPos(ast.NewLambdaExpression(param, paramType, body), nodePos(start)), nil
}

func (p *Parser) parseTypeExpression() (ast.TypeExpression, error) {
	tok, ok := p.current()
	if !ok {
		return nil, p.errorAt(tok, "expected a type, found end of input")
	}
	pos := nodePos(tok)
	switch tok.Kind {
	case lexer.KindIntType:
		p.advance()
		return ast.SetPos(ast.NewSimpleTypeExpression(ast.TypeNameInt), pos), nil
	case lexer.KindBoolType:
		p.advance()
		return ast.SetPos(ast.NewSimpleTypeExpression(ast.TypeNameBool), pos), nil
	case lexer.KindStrType:
		p.advance()
		return ast.SetPos(ast.NewSimpleTypeExpression(ast.TypeNameStr), pos), nil
	case lexer.KindLeftParen:
		p.advance()
		param, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.KindArrow); err != nil {
			return nil, err
		}
		result, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.KindRightParen); err != nil {
			return nil, err
		}
		return ast.SetPos(ast.NewFunctionTypeExpression(param, result), pos), nil
	default:
		return nil, p.errorAt(tok, "expected a type, found %s", describe(tok))
	}
}

func (p *Parser) parseBlock() (ast.Expression, error) {
	if err := p.expect(lexer.KindLeftBrace); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.KindRightBrace); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseIdentifier() (*ast.Identifier, error) {
	tok, ok := p.current()
	if !ok {
		return nil, p.errorAt(tok, "expected an identifier, found end of input")
	}
	if tok.Kind != lexer.KindIdentifier {
		return nil, p.errorAt(tok, "expected an identifier, found %s", describe(tok))
	}
	p.advance()
	return ast.SetPos(ast.NewIdentifier(tok.Text), nodePos(tok)), nil
}

func (p *Parser) expect(kind lexer.Kind) error {
	tok, ok := p.current()
	if !ok {
		return p.errorAt(tok, "expected '%s' token, found end of input", kind)
	}
	if tok.Kind != kind {
		return p.errorAt(tok, "expected '%s' token, found %s", kind, describe(tok))
	}
	p.advance()
	return nil
}

func (p *Parser) current() (lexer.Token, bool) {
	if p.position >= len(p.tokens) {
		return lexer.Token{}, false
	}
	return p.tokens[p.position], true
}

func (p *Parser) at(kind lexer.Kind) bool {
	tok, ok := p.current()
	return ok && tok.Kind == kind
}

func (p *Parser) advance() {
	p.position++
}

func (p *Parser) errorAt(tok lexer.Token, format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...), Pos: tok.Pos}
}

func describe(tok lexer.Token) string {
	return fmt.Sprintf("'%s'", tok)
}

func nodePos(tok lexer.Token) ast.Position {
	return ast.Position{Line: tok.Pos.Line, Column: tok.Pos.Column}
}
