package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/huangsam/sprintlens/core"
	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg      *contract.Config
	mgr          contract.CacheManager
	newSuggester SuggesterFactory
	now          func() time.Time
}

// requestConfig re-anchors the base config on the current time and applies
// the shared arguments.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg, err := h.baseCfg.At(h.now())
	if err != nil {
		return nil, err
	}
	if p := request.GetString("snapshot", ""); p != "" {
		cfg.SnapshotPath = p
	}
	if p := request.GetString("project", ""); p != "" {
		cfg.Filter.ProjectKey = strings.ToUpper(strings.TrimSpace(p))
	}
	if t := request.GetString("issue_type", ""); t != "" {
		cfg.Filter.IssueType = strings.TrimSpace(t)
	}
	if s := request.GetString("status", ""); s != "" {
		cfg.Filter.Status = strings.TrimSpace(s)
	}
	if u := request.GetString("unit", ""); u != "" {
		unit := schema.EstimationUnit(strings.ToLower(u))
		if _, ok := schema.ValidEstimationUnits[unit]; !ok {
			return nil, fmt.Errorf("invalid unit '%s'. must be points, count", u)
		}
		cfg.Unit = unit
	}
	if cfg.Unit == "" {
		cfg.Unit = schema.PointsUnit
	}
	return cfg, nil
}

// jsonResult marshals a view into a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCfd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if e := request.GetString("end", ""); e != "" {
		t, err := contract.ParseDate(e, cfg.Now)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid end date '%s': %v", e, err)), nil
		}
		cfg.WindowEnd = t
	}
	if cfg.WindowEnd.IsZero() {
		cfg.WindowEnd = cfg.Now
	}
	if d := request.GetInt("days", -1); d >= 0 {
		if d > contract.MaxWindowDays {
			return mcp.NewToolResultError(fmt.Sprintf("days must be between 0 and %d", contract.MaxWindowDays)), nil
		}
		cfg.WindowDays = d
	}

	result, _, err := core.GetCfdResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cumulative flow failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleAnalyzeSprint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	cfg.SprintID = request.GetInt("sprint_id", 0)
	cfg.Assignee = strings.TrimSpace(request.GetString("assignee", ""))

	result, _, err := core.GetSprintResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("sprint analysis failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetVelocity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	result, _, err := core.GetVelocityResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("velocity failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetWorkload(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	rows, _, err := core.GetWorkloadResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("workload failed: %v", err)), nil
	}
	return jsonResult(rows)
}

func (h *toolHandler) handleGetOverview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	result, _, err := core.GetOverviewResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("overview failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetHelicopter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	result, _, err := core.GetHelicopterResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("helicopter view failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetMyDashboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if u := strings.TrimSpace(request.GetString("user", "")); u != "" {
		cfg.User = u
	}
	result, _, err := core.GetDashboardResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dashboard failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleSuggestImprovements(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if s := request.GetString("summary", ""); s != "" {
		cfg.Summary = s
	}
	var suggester contract.Suggester
	if h.newSuggester != nil {
		suggester = h.newSuggester(cfg)
	}
	result, _, err := core.GetSuggestionResults(core.WithSuppressHeader(ctx), cfg, h.mgr, suggester)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("suggestion failed: %v", err)), nil
	}
	return jsonResult(result)
}
