// Package formula parses and evaluates dice formulas.
//
// A formula is standard infix arithmetic over decimal numbers with +, -, *, /,
// unary minus, and parentheses, extended with dice terms: "2d6" rolls a
// six-sided die twice and sums the outcomes. Parsing produces an immutable
// expression tree; evaluation walks the tree with an injected dice.Roller and
// an optional dice.Logger that records every individual die outcome in roll
// order.
//
// The pipeline is Tokenize -> Parse -> Eval, with ParseString as the usual
// entry point:
//
//	expr, err := formula.ParseString("(12d8 + 34) / 2")
//	if err != nil { ... }
//	logger := dice.NewLogger()
//	value, err := formula.Eval(expr, dice.NewSeeded(seed), logger)
//
// Every failure is a structured domain error from internal/errors; the first
// error aborts the parse or evaluation and records already appended to the
// logger remain.
package formula
