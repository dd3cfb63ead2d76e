package domain

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/dice-engine/internal/engine"
)

// HistoryEntry represents one persisted roll in MCP output.
type HistoryEntry struct {
	ID         string       `json:"id" jsonschema:"roll identifier"`
	Expression string       `json:"expression" jsonschema:"normalized formula text"`
	Value      float64      `json:"value" jsonschema:"evaluated total"`
	Seed       int64        `json:"seed" jsonschema:"seed used by the roller"`
	Rolls      []RollRecord `json:"rolls,omitempty" jsonschema:"individual die outcomes in roll order"`
	CreatedAt  string       `json:"created_at" jsonschema:"RFC3339 timestamp when the roll happened"`
}

// RollHistoryInput represents the MCP tool input for listing roll history.
type RollHistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of rolls to return, newest first"`
}

// RollHistoryResult represents the MCP tool output for listing roll history.
type RollHistoryResult struct {
	Rolls []HistoryEntry `json:"rolls" jsonschema:"persisted rolls, newest first"`
}

// RollHistoryTool defines the MCP tool schema for listing roll history.
func RollHistoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_history",
		Description: "Lists the most recent persisted rolls, newest first. Returns an empty list when history is not enabled.",
	}
}

// RollHistoryHandler executes a roll history request.
func RollHistoryHandler(svc *engine.Service) mcp.ToolHandlerFor[RollHistoryInput, RollHistoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollHistoryInput) (*mcp.CallToolResult, RollHistoryResult, error) {
		entries, err := svc.History(ctx, input.Limit)
		if err != nil {
			return nil, RollHistoryResult{}, err
		}

		result := RollHistoryResult{Rolls: []HistoryEntry{}}
		for _, entry := range entries {
			item := HistoryEntry{
				ID:         entry.ID,
				Expression: entry.Expression,
				Value:      entry.Value,
				Seed:       entry.Seed,
				CreatedAt:  entry.CreatedAt.UTC().Format(time.RFC3339),
			}
			for _, roll := range entry.Rolls {
				item.Rolls = append(item.Rolls, RollRecord{Sides: roll.Sides, Outcome: roll.Outcome})
			}
			result.Rolls = append(result.Rolls, item)
		}
		return nil, result, nil
	}
}
