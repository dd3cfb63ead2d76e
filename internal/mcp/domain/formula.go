package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/dice-engine/internal/engine"
	apperrors "github.com/louisbranch/dice-engine/internal/errors"
)

// RollRecord represents one die outcome in a roll.
type RollRecord struct {
	Sides   int `json:"sides" jsonschema:"number of sides on the die"`
	Outcome int `json:"outcome" jsonschema:"face the die landed on"`
}

// CheckResult represents a difficulty check outcome.
type CheckResult struct {
	Difficulty int     `json:"difficulty" jsonschema:"difficulty target"`
	Success    bool    `json:"success" jsonschema:"whether the total meets the difficulty"`
	Margin     float64 `json:"margin" jsonschema:"total minus difficulty"`
}

// RollFormulaInput represents the MCP tool input for rolling a formula.
type RollFormulaInput struct {
	Expression string `json:"expression" jsonschema:"dice formula, e.g. (2d6 + 3) * 2"`
	Seed       *int64 `json:"seed,omitempty" jsonschema:"optional seed for deterministic rolls"`
	Difficulty *int   `json:"difficulty,omitempty" jsonschema:"optional difficulty target"`
	Locale     string `json:"locale,omitempty" jsonschema:"BCP 47 locale for error messages"`
}

// RollFormulaResult represents the MCP tool output for rolling a formula.
type RollFormulaResult struct {
	ID         string       `json:"id,omitempty" jsonschema:"roll history identifier, when history is enabled"`
	Expression string       `json:"expression" jsonschema:"normalized formula text"`
	Value      float64      `json:"value" jsonschema:"evaluated total"`
	Seed       int64        `json:"seed" jsonschema:"seed used by the roller"`
	Rolls      []RollRecord `json:"rolls" jsonschema:"individual die outcomes in roll order"`
	Check      *CheckResult `json:"check,omitempty" jsonschema:"difficulty check outcome, if requested"`
}

// RollFormulaTool defines the MCP tool schema for rolling a formula.
func RollFormulaTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_formula",
		Description: "Evaluates a dice formula such as (2d6 + 3) * 2 and returns the total with every die outcome. Accepts an optional seed for reproducible rolls and an optional difficulty target.",
	}
}

// RollFormulaHandler executes a formula roll request.
func RollFormulaHandler(svc *engine.Service) mcp.ToolHandlerFor[RollFormulaInput, RollFormulaResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollFormulaInput) (*mcp.CallToolResult, RollFormulaResult, error) {
		if strings.TrimSpace(input.Expression) == "" {
			return nil, RollFormulaResult{}, fmt.Errorf("expression is required")
		}

		result, err := svc.Evaluate(ctx, engine.Request{
			Expression: input.Expression,
			Seed:       input.Seed,
			Difficulty: input.Difficulty,
		})
		if err != nil {
			return nil, RollFormulaResult{}, localizedError(err, input.Locale)
		}

		output := RollFormulaResult{
			ID:         result.ID,
			Expression: result.Expression,
			Value:      result.Value,
			Seed:       result.Seed,
			Rolls:      toRollRecords(result),
		}
		if result.Check != nil {
			output.Check = &CheckResult{
				Difficulty: result.Check.Difficulty,
				Success:    result.Check.Success,
				Margin:     result.Check.Margin,
			}
		}
		return nil, output, nil
	}
}

// ValidateFormulaInput represents the MCP tool input for validating a formula.
type ValidateFormulaInput struct {
	Expression string `json:"expression" jsonschema:"dice formula to validate"`
	Locale     string `json:"locale,omitempty" jsonschema:"BCP 47 locale for error messages"`
}

// ValidateFormulaResult represents the MCP tool output for validating a formula.
type ValidateFormulaResult struct {
	Valid      bool   `json:"valid" jsonschema:"whether the formula parses"`
	Expression string `json:"expression,omitempty" jsonschema:"normalized formula text, when valid"`
	Error      string `json:"error,omitempty" jsonschema:"localized parse error, when invalid"`
}

// ValidateFormulaTool defines the MCP tool schema for validating a formula.
func ValidateFormulaTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "validate_formula",
		Description: "Checks whether a dice formula parses without rolling it. Returns the normalized formula text or a human-readable error.",
	}
}

// ValidateFormulaHandler executes a formula validation request. Parse failures
// are reported inside the result rather than as tool errors so clients can
// surface them to users directly.
func ValidateFormulaHandler(svc *engine.Service) mcp.ToolHandlerFor[ValidateFormulaInput, ValidateFormulaResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ValidateFormulaInput) (*mcp.CallToolResult, ValidateFormulaResult, error) {
		if strings.TrimSpace(input.Expression) == "" {
			return nil, ValidateFormulaResult{}, fmt.Errorf("expression is required")
		}

		normalized, err := svc.Validate(ctx, input.Expression)
		if err != nil {
			return nil, ValidateFormulaResult{
				Valid: false,
				Error: apperrors.Localize(err, input.Locale),
			}, nil
		}
		return nil, ValidateFormulaResult{Valid: true, Expression: normalized}, nil
	}
}

func toRollRecords(result engine.Result) []RollRecord {
	if len(result.Rolls) == 0 {
		return nil
	}
	records := make([]RollRecord, 0, len(result.Rolls))
	for _, roll := range result.Rolls {
		records = append(records, RollRecord{Sides: roll.Sides, Outcome: roll.Outcome})
	}
	return records
}

// localizedError swaps a domain error's message for a localized one so MCP
// clients can show it to users directly.
func localizedError(err error, locale string) error {
	if apperrors.GetCode(err) == apperrors.CodeUnknown {
		return err
	}
	return fmt.Errorf("%s", apperrors.Localize(err, locale))
}
