// Package lexer turns minilang source text into tokens.
package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Error reports a lexical failure at a source position.
type Error struct {
	Message string
	Pos     Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

type scanner struct {
	src    string
	offset int
	line   int
	column int
	tokens []Token
}

// Tokenize scans the whole input and returns its tokens in order.
func Tokenize(text string) ([]Token, error) {
	s := &scanner{src: text, line: 1, column: 1}
	for !s.done() {
		if err := s.scan(); err != nil {
			return nil, err
		}
	}
	return s.tokens, nil
}

func (s *scanner) done() bool { return s.offset >= len(s.src) }

func (s *scanner) pos() Position {
	return Position{Offset: s.offset, Line: s.line, Column: s.column}
}

func (s *scanner) peek() (rune, int) {
	if s.done() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s.src[s.offset:])
}

func (s *scanner) peekByte(ahead int) byte {
	if s.offset+ahead >= len(s.src) {
		return 0
	}
	return s.src[s.offset+ahead]
}

func (s *scanner) advance() rune {
	r, size := s.peek()
	s.offset += size
	if r == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return r
}

func (s *scanner) emit(tok Token) {
	s.tokens = append(s.tokens, tok)
}

func (s *scanner) errorf(pos Position, format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...), Pos: pos}
}

func (s *scanner) scan() error {
	start := s.pos()
	r, _ := s.peek()
	switch {
	case r == '-' && s.peekByte(1) == '>':
		s.advance()
		s.advance()
		s.emit(Token{Kind: KindArrow, Pos: start})
	case r == '-' || isDigit(r):
		return s.scanInteger(start)
	case r == '+':
		s.advance()
		if s.peekByte(0) == '+' {
			s.advance()
			s.emit(Token{Kind: KindConcat, Pos: start})
			return nil
		}
		s.emit(Token{Kind: KindPlus, Pos: start})
	case r == '"':
		return s.scanString(start)
	case isIdentStart(r):
		s.scanWord(start)
	case unicode.IsSpace(r):
		s.advance()
	default:
		kind, ok := punctuation[r]
		if !ok {
			return s.errorf(start, "unexpected character: '%c'", r)
		}
		s.advance()
		s.emit(Token{Kind: kind, Pos: start})
	}
	return nil
}

var punctuation = map[rune]Kind{
	'<': KindLessThan,
	'(': KindLeftParen,
	')': KindRightParen,
	'{': KindLeftBrace,
	'}': KindRightBrace,
	':': KindColon,
	'=': KindEqual,
}

func (s *scanner) scanInteger(start Position) error {
	s.advance()
	for !s.done() && isDigit(rune(s.peekByte(0))) {
		s.advance()
	}
	text := s.src[start.Offset:s.offset]
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return s.errorf(start, "invalid integer format: %s", text)
	}
	s.emit(Token{Kind: KindInt, Int: n, Pos: start})
	return nil
}

func (s *scanner) scanString(start Position) error {
	s.advance()
	bodyStart := s.offset
	for !s.done() && s.peekByte(0) != '"' {
		s.advance()
	}
	if s.done() {
		return s.errorf(start, "unterminated string")
	}
	text := s.src[bodyStart:s.offset]
	s.advance()
	s.emit(Token{Kind: KindString, Text: text, Pos: start})
	return nil
}

func (s *scanner) scanWord(start Position) {
	for !s.done() {
		r, _ := s.peek()
		if !isIdentStart(r) && !isDigit(r) {
			break
		}
		s.advance()
	}
	word := s.src[start.Offset:s.offset]
	switch word {
	case "true", "false":
		s.emit(Token{Kind: KindBool, Bool: word == "true", Pos: start})
		return
	}
	if kind, ok := keywords[word]; ok {
		s.emit(Token{Kind: kind, Pos: start})
		return
	}
	s.emit(Token{Kind: KindIdentifier, Text: word, Pos: start})
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
