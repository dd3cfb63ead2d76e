package formula

import (
	"reflect"
	"testing"

	"github.com/louisbranch/dice-engine/internal/core/dice"
	apperrors "github.com/louisbranch/dice-engine/internal/errors"
)

// fixedRoller always returns the same outcome regardless of sides.
type fixedRoller struct {
	outcome int
}

func (r fixedRoller) Roll(sides int) int {
	return r.outcome
}

// sequenceRoller replays a fixed outcome sequence.
type sequenceRoller struct {
	outcomes []int
	next     int
}

func (r *sequenceRoller) Roll(sides int) int {
	outcome := r.outcomes[r.next]
	r.next++
	return outcome
}

func mustParse(t *testing.T, input string) Expr {
	t.Helper()
	expr, err := ParseString(input)
	if err != nil {
		t.Fatalf("ParseString(%q) error = %v", input, err)
	}
	return expr
}

func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"42", 42},
		{"2.5", 2.5},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10/2/5", 1},
		{"8-3-2", 3},
		{"--5", 5},
		{"-2*3", -6},
		{"15+30000/(2*10)", 1515},
		{"1/4", 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value, err := Eval(mustParse(t, tt.input), fixedRoller{outcome: 1}, nil)
			if err != nil {
				t.Fatalf("Eval(%q) error = %v", tt.input, err)
			}
			if value != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.input, value, tt.want)
			}
		})
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	inputs := []string{"1/0", "1/(2-2)", "3/(1*0)"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Eval(mustParse(t, input), fixedRoller{outcome: 1}, nil)
			if !apperrors.IsCode(err, apperrors.CodeEvalDivisionByZero) {
				t.Errorf("Eval(%q) error = %v, want EVAL_DIVISION_BY_ZERO", input, err)
			}
		})
	}
}

func TestEvalDiceWithFixedRoller(t *testing.T) {
	logger := dice.NewLogger()
	value, err := Eval(mustParse(t, "2d6"), fixedRoller{outcome: 3}, logger)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}

	if value != 6.0 {
		t.Errorf("Eval(2d6) = %v, want 6.0", value)
	}
	want := []dice.Record{
		{Sides: 6, Outcome: 3},
		{Sides: 6, Outcome: 3},
	}
	if got := logger.Records(); !reflect.DeepEqual(got, want) {
		t.Errorf("logger records = %v, want %v", got, want)
	}
}

func TestEvalInvalidDice(t *testing.T) {
	inputs := []string{"0d6", "2d0", "0d0"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Eval(mustParse(t, input), fixedRoller{outcome: 1}, nil)
			if !apperrors.IsCode(err, apperrors.CodeEvalInvalidDice) {
				t.Errorf("Eval(%q) error = %v, want EVAL_INVALID_DICE", input, err)
			}
		})
	}
}

func TestEvalLogsRollsInOrder(t *testing.T) {
	roller := &sequenceRoller{outcomes: []int{2, 4, 5, 1}}
	logger := dice.NewLogger()

	value, err := Eval(mustParse(t, "1d4 + 2d6 + 1d8"), roller, logger)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if value != 12.0 {
		t.Errorf("Eval() = %v, want 12.0", value)
	}

	want := []dice.Record{
		{Sides: 4, Outcome: 2},
		{Sides: 6, Outcome: 4},
		{Sides: 6, Outcome: 5},
		{Sides: 8, Outcome: 1},
	}
	if got := logger.Records(); !reflect.DeepEqual(got, want) {
		t.Errorf("logger records = %v, want %v", got, want)
	}
}

func TestEvalKeepsPartialRecordsOnFailure(t *testing.T) {
	logger := dice.NewLogger()
	_, err := Eval(mustParse(t, "2d6 + 1/0"), fixedRoller{outcome: 3}, logger)

	if !apperrors.IsCode(err, apperrors.CodeEvalDivisionByZero) {
		t.Fatalf("error = %v, want EVAL_DIVISION_BY_ZERO", err)
	}
	// Rolls made before the failure stay logged.
	if logger.Len() != 2 {
		t.Errorf("logger has %d records after failure, want 2", logger.Len())
	}
}

func TestEvalRangeProperty(t *testing.T) {
	tests := []struct {
		input string
		count int
		sides int
	}{
		{"3d6", 3, 6},
		{"12d8", 12, 8},
		{"1d20", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr := mustParse(t, tt.input)
			for seed := int64(0); seed < 50; seed++ {
				logger := dice.NewLogger()
				value, err := Eval(expr, dice.NewSeeded(seed), logger)
				if err != nil {
					t.Fatalf("Eval() error = %v", err)
				}
				min := float64(tt.count)
				max := float64(tt.count * tt.sides)
				if value < min || value > max {
					t.Fatalf("seed %d: Eval(%s) = %v, out of [%v, %v]", seed, tt.input, value, min, max)
				}
				if logger.Len() != tt.count {
					t.Fatalf("seed %d: logger has %d records, want %d", seed, logger.Len(), tt.count)
				}
			}
		})
	}
}

func TestEvalIsDeterministicPerSeed(t *testing.T) {
	expr := mustParse(t, "(12d8 + 34) / 2")

	firstLogger := dice.NewLogger()
	first, err := Eval(expr, dice.NewSeeded(99), firstLogger)
	if err != nil {
		t.Fatalf("first Eval() error = %v", err)
	}

	secondLogger := dice.NewLogger()
	second, err := Eval(expr, dice.NewSeeded(99), secondLogger)
	if err != nil {
		t.Fatalf("second Eval() error = %v", err)
	}

	if first != second {
		t.Errorf("results differ: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(firstLogger.Records(), secondLogger.Records()) {
		t.Errorf("logger contents differ: %v vs %v", firstLogger.Records(), secondLogger.Records())
	}
	// 12d8 is bounded by [12, 96], so the halved total stays in [23, 65].
	if first < 23 || first > 65 {
		t.Errorf("Eval((12d8 + 34) / 2) = %v, out of [23, 65]", first)
	}
}

func TestEvalWithoutLogger(t *testing.T) {
	value, err := Eval(mustParse(t, "2d6"), fixedRoller{outcome: 4}, nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if value != 8.0 {
		t.Errorf("Eval(2d6) = %v, want 8.0", value)
	}
}
