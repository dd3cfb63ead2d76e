// Package roll parses roll command flags and evaluates a formula once.
package roll

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/louisbranch/dice-engine/internal/engine"
	"github.com/louisbranch/dice-engine/internal/engine/storage/sqlite"
	apperrors "github.com/louisbranch/dice-engine/internal/errors"
	entrypoint "github.com/louisbranch/dice-engine/internal/platform/cmd"
	"github.com/louisbranch/dice-engine/internal/scripting"
)

// Config holds roll command configuration.
type Config struct {
	StoragePath string `env:"DICE_ENGINE_STORAGE_PATH"`
	Locale      string `env:"DICE_ENGINE_LOCALE" envDefault:"en-US"`

	// Expression is the formula to evaluate, taken from positional args.
	Expression string
	// Script is a Lua script path to run instead of a single formula.
	Script string

	Seed          int64
	SeedSet       bool
	Difficulty    int
	DifficultySet bool
}

// ParseConfig parses environment and flags into a Config. The formula comes
// from the remaining positional arguments.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.StoragePath, "storage", cfg.StoragePath, "path to the roll history database (empty disables history)")
	fs.StringVar(&cfg.Script, "script", "", "path to a Lua script to run instead of a formula")
	fs.Int64Var(&cfg.Seed, "seed", 0, "seed for deterministic rolls")
	fs.IntVar(&cfg.Difficulty, "difficulty", 0, "difficulty target to check the total against")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.SeedSet = true
		case "difficulty":
			cfg.DifficultySet = true
		}
	})

	cfg.Expression = strings.TrimSpace(strings.Join(fs.Args(), " "))
	return cfg, nil
}

// Run evaluates the configured formula or script and writes the outcome to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRoll, func(ctx context.Context) error {
		opts := []engine.Option{}
		if cfg.StoragePath != "" {
			store, err := sqlite.Open(cfg.StoragePath)
			if err != nil {
				return fmt.Errorf("open roll history: %w", err)
			}
			defer func() { _ = store.Close() }()
			opts = append(opts, engine.WithStore(store))
		}
		svc := engine.New(opts...)

		if cfg.Script != "" {
			return scripting.RunFile(svc, cfg.Script)
		}

		if cfg.Expression == "" {
			return fmt.Errorf("a formula is required, e.g. roll '2d6 + 3'")
		}

		req := engine.Request{Expression: cfg.Expression}
		if cfg.SeedSet {
			seed := cfg.Seed
			req.Seed = &seed
		}
		if cfg.DifficultySet {
			difficulty := cfg.Difficulty
			req.Difficulty = &difficulty
		}

		result, err := svc.Evaluate(ctx, req)
		if err != nil {
			if apperrors.GetCode(err) != apperrors.CodeUnknown {
				return fmt.Errorf("%s", apperrors.Localize(err, cfg.Locale))
			}
			return err
		}

		writeResult(out, result)
		return nil
	})
}

func writeResult(out io.Writer, result engine.Result) {
	fmt.Fprintf(out, "%s = %s\n", result.Expression, formatValue(result.Value))
	if len(result.Rolls) > 0 {
		outcomes := make([]string, 0, len(result.Rolls))
		for _, roll := range result.Rolls {
			outcomes = append(outcomes, strconv.Itoa(roll.Outcome))
		}
		fmt.Fprintf(out, "rolls: %s (seed %d)\n", strings.Join(outcomes, ", "), result.Seed)
	}
	if result.Check != nil {
		verdict := "failure"
		if result.Check.Success {
			verdict = "success"
		}
		fmt.Fprintf(out, "check vs %d: %s (margin %s)\n", result.Check.Difficulty, verdict, formatValue(result.Check.Margin))
	}
}

func formatValue(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
