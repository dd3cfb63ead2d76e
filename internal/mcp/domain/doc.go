// Package domain translates MCP tool calls into dice engine operations.
//
// The package is intentionally explicit about that mapping:
// - decode MCP tool input into an engine request,
// - route the call to the evaluation service,
// - and surface structured outputs that MCP clients can render.
package domain
