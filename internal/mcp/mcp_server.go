// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/huangsam/sprintlens/internal/contract"
)

// SuggesterFactory builds the language model client for a request.
type SuggesterFactory func(cfg *contract.Config) contract.Suggester

// withSnapshotOptions adds the arguments every tool shares.
func withSnapshotOptions(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append(opts,
		mcp.WithString("snapshot", mcp.Description("Path to a snapshot JSON file (defaults to the configured snapshot or the demo dataset).")),
		mcp.WithString("project", mcp.Description("Only include issues of this project key.")),
		mcp.WithString("issue_type", mcp.Description("Only include issues of this type (e.g. Story, Bug).")),
		mcp.WithString("status", mcp.Description("Only include issues currently in this status.")),
	)
}

// NewMCPServer initializes and configures the sprintlens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager, newSuggester SuggesterFactory) *server.MCPServer {
	s := server.NewMCPServer(
		"Sprintlens Analytics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:      baseCfg,
		mgr:          mgr,
		newSuggester: newSuggester,
		now:          time.Now,
	}

	// --- 1. Tool: get_cfd ---
	s.AddTool(mcp.NewTool("get_cfd", withSnapshotOptions(
		mcp.WithDescription("Cumulative flow: per-day To Do / In Progress / Done counts over a window ending at 'end'."),
		mcp.WithString("end", mcp.Description("Window end (ISO8601, YYYY-MM-DD or 'N days ago'). Defaults to now.")),
		mcp.WithNumber("days", mcp.Description("Days before the end to include. Defaults to the configured window.")),
	)...), h.handleGetCfd)

	// --- 2. Tool: analyze_sprint ---
	s.AddTool(mcp.NewTool("analyze_sprint", withSnapshotOptions(
		mcp.WithDescription("Committed vs completed work, status split and daily burndown of one sprint."),
		mcp.WithNumber("sprint_id", mcp.Description("The numeric sprint id."), mcp.Required()),
		mcp.WithString("unit", mcp.Description("Estimation unit."), mcp.Enum("points", "count")),
		mcp.WithString("assignee", mcp.Description("Account id for an extra per-assignee burndown.")),
	)...), h.handleAnalyzeSprint)

	// --- 3. Tool: get_velocity ---
	s.AddTool(mcp.NewTool("get_velocity", withSnapshotOptions(
		mcp.WithDescription("Completed work per closed sprint and the average."),
		mcp.WithString("unit", mcp.Description("Estimation unit."), mcp.Enum("points", "count")),
	)...), h.handleGetVelocity)

	// --- 4. Tool: get_workload ---
	s.AddTool(mcp.NewTool("get_workload", withSnapshotOptions(
		mcp.WithDescription("Estimated vs logged hours per user with the variance."),
	)...), h.handleGetWorkload)

	// --- 5. Tool: get_overview ---
	s.AddTool(mcp.NewTool("get_overview", withSnapshotOptions(
		mcp.WithDescription("Project-wide KPIs, issues by status and type, and the most recent issues."),
	)...), h.handleGetOverview)

	// --- 6. Tool: get_helicopter ---
	s.AddTool(mcp.NewTool("get_helicopter", withSnapshotOptions(
		mcp.WithDescription("Portfolio view: projects by type and by lead."),
	)...), h.handleGetHelicopter)

	// --- 7. Tool: get_my_dashboard ---
	s.AddTool(mcp.NewTool("get_my_dashboard", withSnapshotOptions(
		mcp.WithDescription("Personal dashboard: completed work, hours logged, leave and weekly hours of one user."),
		mcp.WithString("user", mcp.Description("Account id. Defaults to the configured user.")),
	)...), h.handleGetMyDashboard)

	// --- 8. Tool: suggest_improvements ---
	s.AddTool(mcp.NewTool("suggest_improvements", withSnapshotOptions(
		mcp.WithDescription("Ask the language model for tracker configuration suggestions."),
		mcp.WithString("summary", mcp.Description("Summary of current usage. Built from the snapshot when empty.")),
	)...), h.handleSuggestImprovements)

	return s
}

// StartMCPServer starts the sprintlens MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager, newSuggester SuggesterFactory) error {
	s := NewMCPServer(baseCfg, mgr, newSuggester)
	return server.ServeStdio(s)
}
