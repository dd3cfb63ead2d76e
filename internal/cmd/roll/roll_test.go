package roll

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func parseArgs(t *testing.T, args []string) Config {
	t.Helper()
	fs := flag.NewFlagSet("roll", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	return cfg
}

func TestParseConfig(t *testing.T) {
	cfg := parseArgs(t, []string{"-seed", "42", "-difficulty", "12", "2d6", "+", "3"})

	if cfg.Expression != "2d6 + 3" {
		t.Errorf("Expression = %q, want %q", cfg.Expression, "2d6 + 3")
	}
	if !cfg.SeedSet || cfg.Seed != 42 {
		t.Errorf("Seed = %d (set=%v), want 42 (set)", cfg.Seed, cfg.SeedSet)
	}
	if !cfg.DifficultySet || cfg.Difficulty != 12 {
		t.Errorf("Difficulty = %d (set=%v), want 12 (set)", cfg.Difficulty, cfg.DifficultySet)
	}
}

func TestParseConfigUnsetOptionals(t *testing.T) {
	cfg := parseArgs(t, []string{"1d20"})

	if cfg.SeedSet {
		t.Error("SeedSet = true, want false")
	}
	if cfg.DifficultySet {
		t.Error("DifficultySet = true, want false")
	}
	if cfg.Expression != "1d20" {
		t.Errorf("Expression = %q, want %q", cfg.Expression, "1d20")
	}
}

func TestRunArithmetic(t *testing.T) {
	var out strings.Builder
	cfg := Config{Expression: "1 + 2 * 3", Locale: "en-US"}

	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := out.String(); got != "(1 + (2 * 3)) = 7\n" {
		t.Errorf("output = %q, want %q", got, "(1 + (2 * 3)) = 7\n")
	}
}

func TestRunSeededRoll(t *testing.T) {
	var first, second strings.Builder
	seed := int64(42)
	cfg := Config{Expression: "2d6 + 3", Locale: "en-US", Seed: seed, SeedSet: true}

	if err := Run(context.Background(), cfg, &first); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Run(context.Background(), cfg, &second); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.String() != second.String() {
		t.Errorf("seeded runs differ: %q vs %q", first.String(), second.String())
	}
	if !strings.Contains(first.String(), "rolls: ") {
		t.Errorf("output %q is missing the roll log", first.String())
	}
	if !strings.Contains(first.String(), "(seed 42)") {
		t.Errorf("output %q is missing the seed", first.String())
	}
}

func TestRunDifficultyCheck(t *testing.T) {
	var out strings.Builder
	cfg := Config{Expression: "10 + 5", Locale: "en-US", Difficulty: 12, DifficultySet: true}

	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "check vs 12: success (margin 3)") {
		t.Errorf("output %q is missing the check verdict", out.String())
	}
}

func TestRunLocalizedError(t *testing.T) {
	var out strings.Builder
	cfg := Config{Expression: "1 / 0", Locale: "pt-BR"}

	err := Run(context.Background(), cfg, &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "zero") {
		t.Errorf("error %q does not mention division by zero", err.Error())
	}
}

func TestRunRequiresFormula(t *testing.T) {
	var out strings.Builder
	if err := Run(context.Background(), Config{Locale: "en-US"}, &out); err == nil {
		t.Fatal("expected error for a missing formula")
	}
}

func TestRunScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roll.lua")
	script := `
		local r = dice.roll("2d6", {seed = 7})
		assert(r.value >= 2 and r.value <= 12, "value out of range")
	`
	if err := os.WriteFile(path, []byte(script), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}

	var out strings.Builder
	cfg := Config{Script: path, Locale: "en-US"}
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run script: %v", err)
	}
}

func TestRunPersistsHistory(t *testing.T) {
	var out strings.Builder
	cfg := Config{
		Expression:  "1d6",
		Locale:      "en-US",
		StoragePath: filepath.Join(t.TempDir(), "rolls.db"),
		Seed:        1,
		SeedSet:     true,
	}

	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(cfg.StoragePath); err != nil {
		t.Errorf("expected history database at %s: %v", cfg.StoragePath, err)
	}
}
