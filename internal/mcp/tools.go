package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/contributorsambhav/portfolio/internal/activity"
	"github.com/contributorsambhav/portfolio/internal/catalog"
	"github.com/contributorsambhav/portfolio/internal/ops"
)

var projectsToolDef = mcp.NewTool("portfolio_projects",
	mcp.WithDescription("List portfolio projects. Filters apply in order: category tab, "+
		"then technologies (all must match), then free-text search. "+
		"Results are featured first, then by title."),
	mcp.WithString("category",
		mcp.Description("Category tab. Unknown values show every project."),
		mcp.Enum(ops.Tabs()...),
	),
	mcp.WithString("search",
		mcp.Description("Case-insensitive text matched against title, descriptions, tagline, technologies and category"),
	),
	mcp.WithArray("technologies",
		mcp.Description("Technologies every returned project must use (case-insensitive exact match)"),
		mcp.WithStringItems(),
	),
)

var projectToolDef = mcp.NewTool("portfolio_project",
	mcp.WithDescription("Fetch one project by id, including its long description, highlights and metrics."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Project id, e.g. proj-1"),
	),
)

var activityToolDef = mcp.NewTool("portfolio_activity",
	mcp.WithDescription("Daily coding activity per provider and combined, each day levelled 0-4 "+
		"against its own series maximum. Reads stored snapshots; refresh fetches providers first."),
	mcp.WithString("provider",
		mcp.Description("Limit the response to one series"),
		mcp.Enum(string(activity.GitHub), string(activity.LeetCode), string(activity.Codeforces), string(activity.Combined)),
	),
	mcp.WithBoolean("refresh",
		mcp.Description("Fetch every provider before reading"),
	),
)

var techsToolDef = mcp.NewTool("portfolio_techs",
	mcp.WithDescription("Tech stack by category, with the number of projects using each technology."),
)

var web3ToolDef = mcp.NewTool("portfolio_web3",
	mcp.WithDescription("Web3 projects, grants and grant attempts with summary stats."),
	mcp.WithString("filter",
		mcp.Description("all, projects, grants, or a status"),
		mcp.Enum(append(append([]string{}, catalog.Web3Filters...), catalog.Web3StatusRejected)...),
	),
)
