package mcp

import (
	"context"
	"database/sql"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/contributorsambhav/portfolio/internal/catalog"
	"github.com/contributorsambhav/portfolio/internal/config"
	"github.com/contributorsambhav/portfolio/internal/ops"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"portfolio_projects": {
		def:     projectsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleProjects },
	},
	"portfolio_project": {
		def:     projectToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleProject },
	},
	"portfolio_activity": {
		def:     activityToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleActivity },
	},
	"portfolio_techs": {
		def:     techsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTechs },
	},
	"portfolio_web3": {
		def:     web3ToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleWeb3 },
	},
}

// AllToolNames returns every valid tool name, sorted.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with the portfolio tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(h *Handlers, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"portfolio",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	disabled := make(map[string]bool)
	for _, name := range h.cfg.DisabledTools {
		disabled[name] = true
	}

	for _, name := range AllToolNames() {
		if disabled[name] {
			continue
		}
		entry := toolRegistry[name]
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(cat *catalog.Catalog, db *sql.DB, src ops.Source, cfg *config.Config, logger *zap.Logger, version string) error {
	if unknown := ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		logger.Warn("unknown tools in disabled_tools", zap.Strings("tools", unknown))
	}
	s := NewServer(NewHandlers(cat, db, src, cfg, logger), version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
