package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/contributorsambhav/portfolio/internal/activity"
	"github.com/contributorsambhav/portfolio/internal/catalog"
	"github.com/contributorsambhav/portfolio/internal/config"
	"github.com/contributorsambhav/portfolio/internal/errors"
	"github.com/contributorsambhav/portfolio/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	cat    *catalog.Catalog
	db     *sql.DB
	src    ops.Source
	cfg    *config.Config
	logger *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cat *catalog.Catalog, db *sql.DB, src ops.Source, cfg *config.Config, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{cat: cat, db: db, src: src, cfg: cfg, logger: logger}
}

// Request types for each tool

// ProjectsRequest represents the arguments for portfolio_projects.
type ProjectsRequest struct {
	Category     string   `json:"category,omitempty"`
	Search       string   `json:"search,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// ProjectRequest represents the arguments for portfolio_project.
type ProjectRequest struct {
	ID string `json:"id"`
}

// ActivityRequest represents the arguments for portfolio_activity.
type ActivityRequest struct {
	Provider string `json:"provider,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`
}

// Web3Request represents the arguments for portfolio_web3.
type Web3Request struct {
	Filter string `json:"filter,omitempty"`
}

// seriesOutput is the portfolio_activity response for a single provider.
type seriesOutput struct {
	Provider  activity.Provider `json:"provider"`
	Days      []activity.Record `json:"days"`
	Total     int               `json:"total"`
	FetchedAt int64             `json:"fetched_at,omitempty"`
}

// Handler implementations

// HandleProjects handles the portfolio_projects tool call.
func (h *Handlers) HandleProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ProjectsRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(ops.Projects(h.cat, ops.ProjectsInput{
		Category:     input.Category,
		Search:       input.Search,
		Technologies: input.Technologies,
	}))
}

// HandleProject handles the portfolio_project tool call.
func (h *Handlers) HandleProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ProjectRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	p, err := ops.Project(h.cat, input.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(p)
}

// HandleActivity handles the portfolio_activity tool call.
func (h *Handlers) HandleActivity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ActivityRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	provider := activity.Provider(input.Provider)
	if input.Provider != "" && !provider.Valid() {
		return errorResult(errors.NewInvalidRequest("provider must be one of: github, leetcode, codeforces, combined")), nil
	}

	out, err := ops.Activity(ctx, h.db, h.src, ops.ActivityInput{
		Refresh:  input.Refresh,
		AutoSync: true,
		TTL:      h.cfg.CacheTTL(),
		Keep:     h.cfg.SnapshotKeep,
	})
	if err != nil {
		h.logger.Error("activity failed", zap.Error(err))
		return errorResult(err), nil
	}

	if input.Provider == "" {
		return successResult(out)
	}
	return successResult(seriesOutput{
		Provider:  provider,
		Days:      out.Series(provider),
		Total:     out.Totals[provider],
		FetchedAt: out.FetchedAt[provider],
	})
}

// HandleTechs handles the portfolio_techs tool call.
func (h *Handlers) HandleTechs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.TechStack(h.cat))
}

// HandleWeb3 handles the portfolio_web3 tool call.
func (h *Handlers) HandleWeb3(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[Web3Request](req)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(ops.Web3(h.cat, input.Filter))
}

// errorResult converts an error to an MCP error result.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if pErr, ok := err.(*errors.PortfolioError); ok {
		errorObj := map[string]any{
			"code":    pErr.Code,
			"message": pErr.Message,
			"status":  pErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if pErr.Code != errors.ErrInternal && pErr.Details != nil {
			errorObj["details"] = pErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult converts data to an MCP success result.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
