package formula

// TokenType identifies the type of a lexer token.
type TokenType int

const (
	TokenNumber TokenType = iota // Decimal literal
	TokenPlus                    // +
	TokenMinus                   // -
	TokenStar                    // *
	TokenSlash                   // /
	TokenLParen                  // (
	TokenRParen                  // )
	TokenDice                    // d or D
	TokenEOF                     // End of input
)

// String returns a display name for error messages.
func (t TokenType) String() string {
	switch t {
	case TokenNumber:
		return "number"
	case TokenPlus:
		return "'+'"
	case TokenMinus:
		return "'-'"
	case TokenStar:
		return "'*'"
	case TokenSlash:
		return "'/'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenDice:
		return "'d'"
	case TokenEOF:
		return "end of input"
	}
	return "unknown token"
}

// Token represents a single lexer token.
type Token struct {
	Type   TokenType
	Number float64 // Parsed value, set for TokenNumber
	Text   string  // Raw source text of the token
	Pos    int     // Byte offset of the token in the input
}
