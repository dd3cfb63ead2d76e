// Package scripting exposes the dice engine to Lua scripts.
//
// Scripts get a global `dice` table with roll, validate, and check functions
// so campaign tooling can automate rolls without going through a transport.
package scripting

import (
	"context"
	"fmt"

	"github.com/Shopify/go-lua"

	"github.com/louisbranch/dice-engine/internal/core/check"
	"github.com/louisbranch/dice-engine/internal/engine"
	apperrors "github.com/louisbranch/dice-engine/internal/errors"
)

// NewState creates a Lua state with the standard libraries and the dice
// bindings loaded.
func NewState(svc *engine.Service) (*lua.State, error) {
	if svc == nil {
		return nil, fmt.Errorf("engine service is required")
	}
	state := lua.NewState()
	lua.OpenLibraries(state)
	Register(state, svc)
	return state, nil
}

// Register installs the global `dice` table into an existing Lua state.
func Register(state *lua.State, svc *engine.Service) {
	state.NewTable()
	lua.SetFunctions(state, []lua.RegistryFunction{
		{Name: "roll", Function: rollFunction(svc)},
		{Name: "validate", Function: validateFunction(svc)},
		{Name: "check", Function: checkFunction},
	}, 0)
	state.SetGlobal("dice")
}

// RunFile executes a Lua script with the dice bindings available.
func RunFile(svc *engine.Service, path string) error {
	state, err := NewState(svc)
	if err != nil {
		return err
	}
	if err := lua.LoadFile(state, path, ""); err != nil {
		return fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		return fmt.Errorf("run lua: %w", err)
	}
	return nil
}

// rollFunction evaluates a formula: dice.roll(expression [, opts]).
// opts accepts seed and difficulty keys. The result table carries value,
// expression, seed, rolls, and check fields matching the engine result.
func rollFunction(svc *engine.Service) lua.Function {
	return func(state *lua.State) int {
		expression := lua.CheckString(state, 1)
		req := engine.Request{Expression: expression}

		if !state.IsNoneOrNil(2) {
			lua.CheckType(state, 2, lua.TypeTable)
			if seed, ok := tableInteger(state, 2, "seed"); ok {
				req.Seed = &seed
			}
			if difficulty, ok := tableInteger(state, 2, "difficulty"); ok {
				value := int(difficulty)
				req.Difficulty = &value
			}
		}

		result, err := svc.Evaluate(context.Background(), req)
		if err != nil {
			lua.Errorf(state, "%s", apperrors.Localize(err, apperrors.DefaultLocale))
			return 0
		}

		pushResult(state, result)
		return 1
	}
}

// validateFunction parses a formula without rolling it:
// dice.validate(expression) returns ok plus the normalized text or an error
// message.
func validateFunction(svc *engine.Service) lua.Function {
	return func(state *lua.State) int {
		expression := lua.CheckString(state, 1)

		normalized, err := svc.Validate(context.Background(), expression)
		if err != nil {
			state.PushBoolean(false)
			state.PushString(apperrors.Localize(err, apperrors.DefaultLocale))
			return 2
		}
		state.PushBoolean(true)
		state.PushString(normalized)
		return 2
	}
}

// checkFunction compares a total against a difficulty:
// dice.check(total, difficulty).
func checkFunction(state *lua.State) int {
	total := lua.CheckNumber(state, 1)
	difficulty := lua.CheckInteger(state, 2)

	pushCheck(state, check.Check(total, difficulty))
	return 1
}

func pushResult(state *lua.State, result engine.Result) {
	state.NewTable()
	if result.ID != "" {
		state.PushString(result.ID)
		state.SetField(-2, "id")
	}
	state.PushString(result.Expression)
	state.SetField(-2, "expression")
	state.PushNumber(result.Value)
	state.SetField(-2, "value")
	state.PushInteger(int(result.Seed))
	state.SetField(-2, "seed")

	state.NewTable()
	for i, roll := range result.Rolls {
		state.NewTable()
		state.PushInteger(roll.Sides)
		state.SetField(-2, "sides")
		state.PushInteger(roll.Outcome)
		state.SetField(-2, "outcome")
		state.RawSetInt(-2, i+1)
	}
	state.SetField(-2, "rolls")

	if result.Check != nil {
		pushCheck(state, *result.Check)
		state.SetField(-2, "check")
	}
}

func pushCheck(state *lua.State, outcome check.Result) {
	state.NewTable()
	state.PushInteger(outcome.Difficulty)
	state.SetField(-2, "difficulty")
	state.PushBoolean(outcome.Success)
	state.SetField(-2, "success")
	state.PushNumber(outcome.Margin)
	state.SetField(-2, "margin")
}

func tableInteger(state *lua.State, index int, key string) (int64, bool) {
	state.Field(index, key)
	defer state.Pop(1)
	if state.IsNil(-1) {
		return 0, false
	}
	value, ok := state.ToInteger(-1)
	if !ok {
		return 0, false
	}
	return int64(value), true
}
