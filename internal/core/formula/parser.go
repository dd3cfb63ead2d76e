package formula

import (
	"fmt"
	"math"

	apperrors "github.com/louisbranch/dice-engine/internal/errors"
)

// maxDiceOperand caps dice counts and sides at what the platform treats as a
// sane die: anything beyond this is a malformed operand, not a bigger die.
const maxDiceOperand = math.MaxInt32

type parser struct {
	tokens []Token
	pos    int
}

// ParseString tokenizes input and parses it into an expression tree.
func ParseString(input string) (Expr, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Parse builds an expression tree from a token sequence.
//
// The grammar, lowest to highest precedence:
//
//	expression := term (('+' | '-') term)*
//	term       := unary (('*' | '/') unary)*
//	unary      := '-' unary | primary
//	primary    := dice_or_number | '(' expression ')'
//	dice_or_number := Number [ 'd' Number ]
//
// Binary operators are left-associative. The whole token sequence must form
// one expression; leftover tokens fail with PARSE_TRAILING_TOKENS.
func Parse(tokens []Token) (Expr, error) {
	p := &parser{tokens: tokens}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.peek() != TokenEOF {
		return nil, apperrors.New(
			apperrors.CodeParseTrailingTokens,
			fmt.Sprintf("trailing %s at position %d after a complete expression", p.current().Type, p.current().Pos),
		)
	}
	return expr, nil
}

func (p *parser) current() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *parser) peek() TokenType {
	return p.current().Type
}

func (p *parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) parseExpression() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch p.peek() {
		case TokenPlus:
			op = OpAdd
		case TokenMinus:
			op = OpSub
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch p.peek() {
		case TokenStar:
			op = OpMul
		case TokenSlash:
			op = OpDiv
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

// parseUnary handles unary minus, which binds tighter than '*' and '/' and
// may stack: "--5" is double negation.
func (p *parser) parseUnary() (Expr, error) {
	if p.peek() == TokenMinus {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Negate{Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	switch p.peek() {
	case TokenNumber:
		first := p.advance()
		if p.peek() != TokenDice {
			return &Literal{Value: first.Number}, nil
		}
		p.advance()
		return p.parseDice(first)

	case TokenLParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.peek() != TokenRParen {
			if p.peek() == TokenEOF {
				return nil, apperrors.New(
					apperrors.CodeParseUnbalancedParentheses,
					"formula ends with an unclosed parenthesis",
				)
			}
			return nil, p.unexpectedToken()
		}
		p.advance()
		return expr, nil

	case TokenEOF:
		return nil, apperrors.New(
			apperrors.CodeParseUnexpectedEndOfInput,
			"formula ended where a value was expected",
		)

	default:
		return nil, p.unexpectedToken()
	}
}

// parseDice assembles a dice term from its count token (already consumed
// along with the dice marker) and the sides token that must follow.
func (p *parser) parseDice(count Token) (Expr, error) {
	if p.peek() != TokenNumber {
		if p.peek() == TokenEOF {
			return nil, apperrors.New(
				apperrors.CodeParseUnexpectedEndOfInput,
				"formula ended where a dice side count was expected",
			)
		}
		return nil, p.unexpectedToken()
	}
	sides := p.advance()

	countValue, err := diceOperand(count)
	if err != nil {
		return nil, err
	}
	sidesValue, err := diceOperand(sides)
	if err != nil {
		return nil, err
	}
	return &Dice{Count: countValue, Sides: sidesValue}, nil
}

// diceOperand validates that a number token can serve as a dice count or
// side count: a whole, non-negative value within the operand cap.
func diceOperand(tok Token) (int, error) {
	value := tok.Number
	if value != math.Trunc(value) || value < 0 || value > maxDiceOperand {
		return 0, apperrors.WithMetadata(
			apperrors.CodeParseInvalidDiceOperand,
			fmt.Sprintf("dice operand %q is not a whole non-negative number", tok.Text),
			map[string]string{"Operand": tok.Text},
		)
	}
	return int(value), nil
}

func (p *parser) unexpectedToken() error {
	tok := p.current()
	return apperrors.WithMetadata(
		apperrors.CodeParseUnexpectedToken,
		fmt.Sprintf("unexpected %s at position %d", tok.Type, tok.Pos),
		map[string]string{"Token": tok.Type.String()},
	)
}
