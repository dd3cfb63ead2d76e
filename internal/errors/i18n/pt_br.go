package i18n

var ptBRCatalog = &Catalog{
	locale: "pt-BR",
	messages: map[Code]string{
		CodeUnknown: "Ocorreu um erro inesperado",

		// Lexer errors
		CodeLexUnexpectedCharacter: "Caractere inesperado {{.Char}} na posição {{.Position}}",

		// Parser errors
		CodeParseUnbalancedParentheses: "A fórmula tem um parêntese sem fechamento",
		CodeParseInvalidDiceOperand:    "A quantidade e os lados dos dados devem ser números inteiros não negativos, recebido {{.Operand}}",
		CodeParseUnexpectedToken:       "{{.Token}} inesperado na fórmula",
		CodeParseUnexpectedEndOfInput:  "A fórmula terminou onde um valor era esperado",
		CodeParseTrailingTokens:        "A fórmula tem conteúdo extra após uma expressão completa",

		// Evaluator errors
		CodeEvalDivisionByZero: "A fórmula divide por zero",
		CodeEvalInvalidDice:    "O termo de dados {{.Count}}d{{.Sides}} precisa de ao menos um dado e um lado",

		// Storage errors
		CodeNotFound: "A rolagem solicitada não foi encontrada",
	},
}
