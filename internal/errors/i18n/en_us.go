package i18n

const (
	CodeUnknown                    = "UNKNOWN"
	CodeLexUnexpectedCharacter     = "LEX_UNEXPECTED_CHARACTER"
	CodeParseUnbalancedParentheses = "PARSE_UNBALANCED_PARENTHESES"
	CodeParseInvalidDiceOperand    = "PARSE_INVALID_DICE_OPERAND"
	CodeParseUnexpectedToken       = "PARSE_UNEXPECTED_TOKEN"
	CodeParseUnexpectedEndOfInput  = "PARSE_UNEXPECTED_END_OF_INPUT"
	CodeParseTrailingTokens        = "PARSE_TRAILING_TOKENS"
	CodeEvalDivisionByZero         = "EVAL_DIVISION_BY_ZERO"
	CodeEvalInvalidDice            = "EVAL_INVALID_DICE"
	CodeNotFound                   = "NOT_FOUND"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeUnknown: "An unexpected error occurred",

		// Lexer errors
		CodeLexUnexpectedCharacter: "Unexpected character {{.Char}} at position {{.Position}}",

		// Parser errors
		CodeParseUnbalancedParentheses: "Formula has an unclosed parenthesis",
		CodeParseInvalidDiceOperand:    "Dice count and sides must be whole non-negative numbers, got {{.Operand}}",
		CodeParseUnexpectedToken:       "Unexpected {{.Token}} in formula",
		CodeParseUnexpectedEndOfInput:  "Formula ended where a value was expected",
		CodeParseTrailingTokens:        "Formula has trailing input after a complete expression",

		// Evaluator errors
		CodeEvalDivisionByZero: "Formula divides by zero",
		CodeEvalInvalidDice:    "Dice term {{.Count}}d{{.Sides}} must have at least one die and one side",

		// Storage errors
		CodeNotFound: "The requested roll was not found",
	},
}
