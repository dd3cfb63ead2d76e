package formula

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	apperrors "github.com/louisbranch/dice-engine/internal/errors"
)

type scanner struct {
	source string
	pos    int
}

func (s *scanner) atEnd() bool {
	return s.pos >= len(s.source)
}

func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.pos]
}

func (s *scanner) peekAt(offset int) byte {
	p := s.pos + offset
	if p >= len(s.source) {
		return 0
	}
	return s.source[p]
}

func (s *scanner) skipWhitespace() {
	for !s.atEnd() {
		switch s.source[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Tokenize converts a formula into a token sequence terminated by TokenEOF.
//
// Whitespace separates tokens and is otherwise ignored. A maximal run of
// digits, optionally followed by a single '.' and more digits, lexes as one
// number token. The letters 'd' and 'D' lex as the dice marker; assembling
// "12d8" into a dice term is the parser's job, so the marker stays a distinct
// token here. Any other character fails with LEX_UNEXPECTED_CHARACTER.
func Tokenize(input string) ([]Token, error) {
	s := &scanner{source: input}
	var tokens []Token

	for {
		s.skipWhitespace()
		if s.atEnd() {
			tokens = append(tokens, Token{Type: TokenEOF, Pos: s.pos})
			return tokens, nil
		}

		start := s.pos
		c := s.peek()
		switch {
		case c == '+':
			s.pos++
			tokens = append(tokens, Token{Type: TokenPlus, Text: "+", Pos: start})
		case c == '-':
			s.pos++
			tokens = append(tokens, Token{Type: TokenMinus, Text: "-", Pos: start})
		case c == '*':
			s.pos++
			tokens = append(tokens, Token{Type: TokenStar, Text: "*", Pos: start})
		case c == '/':
			s.pos++
			tokens = append(tokens, Token{Type: TokenSlash, Text: "/", Pos: start})
		case c == '(':
			s.pos++
			tokens = append(tokens, Token{Type: TokenLParen, Text: "(", Pos: start})
		case c == ')':
			s.pos++
			tokens = append(tokens, Token{Type: TokenRParen, Text: ")", Pos: start})
		case c == 'd' || c == 'D':
			s.pos++
			tokens = append(tokens, Token{Type: TokenDice, Text: s.source[start:s.pos], Pos: start})
		case isDigit(c):
			token, err := s.scanNumber()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)
		default:
			r, _ := utf8.DecodeRuneInString(s.source[s.pos:])
			return nil, apperrors.WithMetadata(
				apperrors.CodeLexUnexpectedCharacter,
				fmt.Sprintf("unexpected character %q at position %d", r, start),
				map[string]string{
					"Char":     strconv.QuoteRune(r),
					"Position": strconv.Itoa(start),
				},
			)
		}
	}
}

// scanNumber consumes a digit run with an optional fractional part. The dot
// is only taken when a digit follows, so "1." lexes as the number 1 and a
// stray dot surfaces as an unexpected character.
func (s *scanner) scanNumber() (Token, error) {
	start := s.pos
	for !s.atEnd() && isDigit(s.peek()) {
		s.pos++
	}
	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		s.pos++
		for !s.atEnd() && isDigit(s.peek()) {
			s.pos++
		}
	}

	text := s.source[start:s.pos]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, apperrors.Wrap(
			apperrors.CodeUnknown,
			fmt.Sprintf("parse number %q", text),
			err,
		)
	}
	return Token{Type: TokenNumber, Number: value, Text: text, Pos: start}, nil
}
