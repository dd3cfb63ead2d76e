// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Lexer errors
	CodeLexUnexpectedCharacter Code = "LEX_UNEXPECTED_CHARACTER"

	// Parser errors
	CodeParseUnbalancedParentheses Code = "PARSE_UNBALANCED_PARENTHESES"
	CodeParseInvalidDiceOperand    Code = "PARSE_INVALID_DICE_OPERAND"
	CodeParseUnexpectedToken       Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseUnexpectedEndOfInput  Code = "PARSE_UNEXPECTED_END_OF_INPUT"
	CodeParseTrailingTokens        Code = "PARSE_TRAILING_TOKENS"

	// Evaluator errors
	CodeEvalDivisionByZero Code = "EVAL_DIVISION_BY_ZERO"
	CodeEvalInvalidDice    Code = "EVAL_INVALID_DICE"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)
