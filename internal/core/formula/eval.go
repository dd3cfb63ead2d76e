package formula

import (
	"fmt"
	"strconv"

	"github.com/louisbranch/dice-engine/internal/core/dice"
	apperrors "github.com/louisbranch/dice-engine/internal/errors"
)

// Eval walks the expression tree and computes its numeric result.
//
// roller supplies die outcomes for dice terms. logger, when non-nil, receives
// one dice.Record per die rolled, in roll order: left operands evaluate
// before right operands and a dice term's rolls run first die to last, so a
// deterministic roller reproduces identical logs. The first error aborts
// evaluation; records already appended to the logger remain, which is the
// intended audit semantic rather than a defect.
func Eval(expr Expr, roller dice.Roller, logger *dice.Logger) (float64, error) {
	switch node := expr.(type) {
	case *Literal:
		return node.Value, nil

	case *Negate:
		value, err := Eval(node.Operand, roller, logger)
		if err != nil {
			return 0, err
		}
		return -value, nil

	case *Binary:
		left, err := Eval(node.Left, roller, logger)
		if err != nil {
			return 0, err
		}
		right, err := Eval(node.Right, roller, logger)
		if err != nil {
			return 0, err
		}
		switch node.Op {
		case OpAdd:
			return left + right, nil
		case OpSub:
			return left - right, nil
		case OpMul:
			return left * right, nil
		case OpDiv:
			if right == 0 {
				return 0, apperrors.New(
					apperrors.CodeEvalDivisionByZero,
					"right operand of division evaluated to zero",
				)
			}
			return left / right, nil
		}
		return 0, apperrors.New(apperrors.CodeUnknown, fmt.Sprintf("unknown operator %v", node.Op))

	case *Dice:
		if node.Count <= 0 || node.Sides <= 0 {
			return 0, apperrors.WithMetadata(
				apperrors.CodeEvalInvalidDice,
				fmt.Sprintf("dice term %dd%d has no dice or no sides", node.Count, node.Sides),
				map[string]string{
					"Count": strconv.Itoa(node.Count),
					"Sides": strconv.Itoa(node.Sides),
				},
			)
		}
		total := 0
		for i := 0; i < node.Count; i++ {
			outcome := roller.Roll(node.Sides)
			logger.Append(dice.Record{Sides: node.Sides, Outcome: outcome})
			total += outcome
		}
		return float64(total), nil
	}

	return 0, apperrors.New(apperrors.CodeUnknown, fmt.Sprintf("unknown expression node %T", expr))
}
