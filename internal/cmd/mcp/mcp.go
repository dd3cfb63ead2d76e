// Package mcp parses MCP command flags and starts the MCP server.
package mcp

import (
	"context"
	"flag"
	"fmt"

	"github.com/louisbranch/dice-engine/internal/engine"
	"github.com/louisbranch/dice-engine/internal/engine/storage/sqlite"
	mcpservice "github.com/louisbranch/dice-engine/internal/mcp/service"
	entrypoint "github.com/louisbranch/dice-engine/internal/platform/cmd"
)

// Config holds MCP command configuration.
type Config struct {
	StoragePath string `env:"DICE_ENGINE_STORAGE_PATH"`
	Transport   string `env:"DICE_ENGINE_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.StoragePath, "storage", cfg.StoragePath, "path to the roll history database (empty disables history)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "transport type: stdio")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		opts := []engine.Option{}
		if cfg.StoragePath != "" {
			store, err := sqlite.Open(cfg.StoragePath)
			if err != nil {
				return fmt.Errorf("open roll history: %w", err)
			}
			defer func() { _ = store.Close() }()
			opts = append(opts, engine.WithStore(store))
		}

		return mcpservice.Run(ctx, engine.New(opts...), mcpservice.Config{
			Transport: mcpservice.TransportKind(cfg.Transport),
		})
	})
}
