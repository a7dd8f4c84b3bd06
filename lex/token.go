// Package lex implements the embedded longest-match tokenizer: literal
// terminals taken directly from a grammar, optionally overridden by named
// regular expressions, scanned greedily against remaining input.
package lex

import "fmt"

// Token is one lexed unit of input: the grammar symbol it was matched
// against, the exact text matched, and its source position.
type Token struct {
	Symbol string
	Lexeme string
	Line   int
	Col    int
}

func (t Token) String() string {
	return fmt.Sprintf("(%s,%s)@%d:%d", t.Symbol, t.Lexeme, t.Line, t.Col)
}
