package scripting

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Shopify/go-lua"

	"github.com/louisbranch/dice-engine/internal/engine"
)

func newTestState(t *testing.T) *lua.State {
	t.Helper()
	state, err := NewState(engine.New())
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	return state
}

func globalNumber(t *testing.T, state *lua.State, name string) float64 {
	t.Helper()
	state.Global(name)
	defer state.Pop(1)
	value, ok := state.ToNumber(-1)
	if !ok {
		t.Fatalf("global %q is not a number", name)
	}
	return value
}

func globalString(t *testing.T, state *lua.State, name string) string {
	t.Helper()
	state.Global(name)
	defer state.Pop(1)
	value, ok := state.ToString(-1)
	if !ok {
		t.Fatalf("global %q is not a string", name)
	}
	return value
}

func globalBool(t *testing.T, state *lua.State, name string) bool {
	t.Helper()
	state.Global(name)
	defer state.Pop(1)
	return state.ToBoolean(-1)
}

func TestRollSeededDeterminism(t *testing.T) {
	state := newTestState(t)

	script := `
		local a = dice.roll("2d6 + 3", {seed = 42})
		local b = dice.roll("2d6 + 3", {seed = 42})
		value_a = a.value
		value_b = b.value
		expression = a.expression
		seed = a.seed
		roll_count = #a.rolls
		first_sides = a.rolls[1].sides
	`
	if err := lua.DoString(state, script); err != nil {
		t.Fatalf("run script: %v", err)
	}

	if got, want := globalNumber(t, state, "value_a"), globalNumber(t, state, "value_b"); got != want {
		t.Errorf("seeded rolls differ: %v vs %v", got, want)
	}
	if got := globalString(t, state, "expression"); got != "(2d6 + 3)" {
		t.Errorf("expression = %q, want %q", got, "(2d6 + 3)")
	}
	if got := globalNumber(t, state, "seed"); got != 42 {
		t.Errorf("seed = %v, want 42", got)
	}
	if got := globalNumber(t, state, "roll_count"); got != 2 {
		t.Errorf("roll count = %v, want 2", got)
	}
	if got := globalNumber(t, state, "first_sides"); got != 6 {
		t.Errorf("first die sides = %v, want 6", got)
	}
}

func TestRollWithDifficulty(t *testing.T) {
	state := newTestState(t)

	script := `
		local r = dice.roll("10 + 5", {difficulty = 12})
		success = r.check.success
		margin = r.check.margin
		difficulty = r.check.difficulty
	`
	if err := lua.DoString(state, script); err != nil {
		t.Fatalf("run script: %v", err)
	}

	if !globalBool(t, state, "success") {
		t.Error("expected a successful check")
	}
	if got := globalNumber(t, state, "margin"); got != 3 {
		t.Errorf("margin = %v, want 3", got)
	}
	if got := globalNumber(t, state, "difficulty"); got != 12 {
		t.Errorf("difficulty = %v, want 12", got)
	}
}

func TestRollRaisesOnBadFormula(t *testing.T) {
	state := newTestState(t)

	err := lua.DoString(state, `dice.roll("1 / 0")`)
	if err == nil {
		t.Fatal("expected a Lua error")
	}
	if !strings.Contains(err.Error(), "zero") {
		t.Errorf("error %q does not mention division by zero", err.Error())
	}
}

func TestValidate(t *testing.T) {
	state := newTestState(t)

	script := `
		ok_valid, normalized = dice.validate("2d6+3")
		ok_invalid, message = dice.validate("(1 + 2")
	`
	if err := lua.DoString(state, script); err != nil {
		t.Fatalf("run script: %v", err)
	}

	if !globalBool(t, state, "ok_valid") {
		t.Error("expected a valid formula")
	}
	if got := globalString(t, state, "normalized"); got != "(2d6 + 3)" {
		t.Errorf("normalized = %q, want %q", got, "(2d6 + 3)")
	}
	if globalBool(t, state, "ok_invalid") {
		t.Error("expected an invalid formula")
	}
	if globalString(t, state, "message") == "" {
		t.Error("expected an error message")
	}
}

func TestCheck(t *testing.T) {
	state := newTestState(t)

	script := `
		local win = dice.check(15, 12)
		local lose = dice.check(7, 15)
		win_success = win.success
		win_margin = win.margin
		lose_success = lose.success
		lose_margin = lose.margin
	`
	if err := lua.DoString(state, script); err != nil {
		t.Fatalf("run script: %v", err)
	}

	if !globalBool(t, state, "win_success") {
		t.Error("expected check 15 vs 12 to succeed")
	}
	if got := globalNumber(t, state, "win_margin"); got != 3 {
		t.Errorf("win margin = %v, want 3", got)
	}
	if globalBool(t, state, "lose_success") {
		t.Error("expected check 7 vs 15 to fail")
	}
	if got := globalNumber(t, state, "lose_margin"); got != -8 {
		t.Errorf("lose margin = %v, want -8", got)
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roll.lua")
	script := `
		local r = dice.roll("1d6", {seed = 7})
		if r.value < 1 or r.value > 6 then
			error("value out of range")
		end
	`
	if err := os.WriteFile(path, []byte(script), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}

	if err := RunFile(engine.New(), path); err != nil {
		t.Fatalf("run file: %v", err)
	}
}

func TestRunFileMissing(t *testing.T) {
	err := RunFile(engine.New(), filepath.Join(t.TempDir(), "missing.lua"))
	if err == nil {
		t.Fatal("expected an error for a missing script")
	}
}
