package driver

import "minilang/interpreter-go/pkg/lexer"

// Nesting returns the net number of unclosed parentheses and braces in
// tokens. Input is complete once this drops to zero or below; a negative
// count is left for the parser to report.
func Nesting(tokens []lexer.Token) int {
	depth := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.KindLeftParen, lexer.KindLeftBrace:
			depth++
		case lexer.KindRightParen, lexer.KindRightBrace:
			depth--
		}
	}
	return depth
}

// MaxNesting returns the deepest bracket level reached in tokens.
func MaxNesting(tokens []lexer.Token) int {
	depth, deepest := 0, 0
	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.KindLeftParen, lexer.KindLeftBrace:
			depth++
			if depth > deepest {
				deepest = depth
			}
		case lexer.KindRightParen, lexer.KindRightBrace:
			depth--
		}
	}
	return deepest
}
