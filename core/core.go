// Package core has the aggregation engine and the command orchestration around it.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/internal/outwriter"
	"github.com/huangsam/sprintlens/internal/snapshot"
	"github.com/huangsam/sprintlens/internal/suggest"
	"github.com/huangsam/sprintlens/schema"
)

// ExecutorFunc defines the function signature for executing the different views.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// View names, shared by headers and the run history.
const (
	ViewCfd        = "cfd"
	ViewSprint     = "sprint"
	ViewVelocity   = "velocity"
	ViewWorkload   = "workload"
	ViewOverview   = "overview"
	ViewHelicopter = "helicopter"
	ViewDashboard  = "dashboard"
	ViewSuggest    = "suggest"
)

// loadSnapshot resolves the configured snapshot and applies the issue filter.
func loadSnapshot(ctx context.Context, cfg *contract.Config, view string) (*schema.Snapshot, error) {
	snap, err := snapshot.Resolve(cfg.SnapshotPath, cfg.Now)
	if err != nil {
		return nil, err
	}
	snap = snapshot.Apply(snap, cfg.Filter)
	if !shouldSuppressHeader(ctx) {
		logHeader(cfg, view, snap)
	}
	return snap, nil
}

// GetCfdResults computes the cumulative flow over the configured window.
func GetCfdResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.CfdResult, time.Duration, error) {
	start := time.Now()
	snap, err := loadSnapshot(ctx, cfg, ViewCfd)
	if err != nil {
		return schema.CfdResult{}, 0, err
	}
	result, err := cachedCfd(cfg, snap, mgr)
	if err != nil {
		return schema.CfdResult{}, 0, err
	}
	if !shouldSuppressHeader(ctx) && len(result.Points) > 0 {
		logWindowHeader(result.Start, result.End)
	}
	recordRun(mgr, ViewCfd, cfg, start, cfdMetrics(result))
	return result, time.Since(start), nil
}

// ExecuteCfd runs the cumulative flow view and prints the result.
func ExecuteCfd(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, duration, err := GetCfdResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCfd(result, cfg, duration)
}

// GetSprintResults analyzes the configured sprint and, when an assignee is
// set, adds that person's burndown.
func GetSprintResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.SprintAnalysis, time.Duration, error) {
	start := time.Now()
	if cfg.SprintID <= 0 {
		return nil, 0, errors.New("--sprint is required")
	}
	snap, err := loadSnapshot(ctx, cfg, ViewSprint)
	if err != nil {
		return nil, 0, err
	}
	analysis := AnalyzeSprint(cfg.SprintID, snap.Sprints, snap.Issues, cfg.Unit)
	if analysis == nil {
		return nil, 0, fmt.Errorf("sprint %d not found", cfg.SprintID)
	}
	if cfg.Assignee != "" {
		analysis.Assignee = cfg.Assignee
		analysis.AssigneeBurndown = AssigneeBurndown(analysis.Sprint, snap.Issues, cfg.Assignee, cfg.Unit)
	}
	recordRun(mgr, ViewSprint, cfg, start, sprintMetrics(analysis))
	return analysis, time.Since(start), nil
}

// ExecuteSprint runs the sprint view and prints the result.
func ExecuteSprint(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, duration, err := GetSprintResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSprint(result, cfg, duration)
}

// GetVelocityResults computes the completed amount of every closed sprint.
func GetVelocityResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.VelocityResult, time.Duration, error) {
	start := time.Now()
	snap, err := loadSnapshot(ctx, cfg, ViewVelocity)
	if err != nil {
		return schema.VelocityResult{}, 0, err
	}
	points := HistoricalVelocity(snap.Sprints, snap.Issues, cfg.Unit)
	result := schema.VelocityResult{
		Unit:    cfg.Unit,
		Points:  points,
		Average: AverageVelocity(points),
	}
	recordRun(mgr, ViewVelocity, cfg, start, velocityMetrics(result))
	return result, time.Since(start), nil
}

// ExecuteVelocity runs the velocity view and prints the result.
func ExecuteVelocity(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, duration, err := GetVelocityResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteVelocity(result, cfg, duration)
}

// GetWorkloadResults computes estimated vs logged hours per user.
func GetWorkloadResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.WorkloadRow, time.Duration, error) {
	start := time.Now()
	snap, err := loadSnapshot(ctx, cfg, ViewWorkload)
	if err != nil {
		return nil, 0, err
	}
	rows := WorkloadByUser(snap.Users, snap.Issues)
	recordRun(mgr, ViewWorkload, cfg, start, workloadMetrics(rows))
	return rows, time.Since(start), nil
}

// ExecuteWorkload runs the workload view and prints the result.
func ExecuteWorkload(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	rows, duration, err := GetWorkloadResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteWorkload(rows, cfg, duration)
}

// GetOverviewResults computes the headline numbers and issue breakdowns.
func GetOverviewResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.OverviewResult, time.Duration, error) {
	start := time.Now()
	snap, err := loadSnapshot(ctx, cfg, ViewOverview)
	if err != nil {
		return schema.OverviewResult{}, 0, err
	}
	result := BuildOverview(snap.Issues)
	recordRun(mgr, ViewOverview, cfg, start, overviewMetrics(result))
	return result, time.Since(start), nil
}

// ExecuteOverview runs the overview and prints the result.
func ExecuteOverview(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, duration, err := GetOverviewResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteOverview(result, cfg, duration)
}

// GetHelicopterResults summarizes the project portfolio.
func GetHelicopterResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.HelicopterResult, time.Duration, error) {
	start := time.Now()
	snap, err := loadSnapshot(ctx, cfg, ViewHelicopter)
	if err != nil {
		return schema.HelicopterResult{}, 0, err
	}
	result := BuildHelicopterView(snap.Projects)
	recordRun(mgr, ViewHelicopter, cfg, start, helicopterMetrics(result))
	return result, time.Since(start), nil
}

// ExecuteHelicopter runs the helicopter view and prints the result.
func ExecuteHelicopter(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, duration, err := GetHelicopterResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteHelicopter(result, cfg, duration)
}

// GetDashboardResults builds the personal dashboard of the configured user.
func GetDashboardResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.DashboardResult, time.Duration, error) {
	start := time.Now()
	if cfg.User == "" {
		return schema.DashboardResult{}, 0, errors.New("--user is required")
	}
	snap, err := loadSnapshot(ctx, cfg, ViewDashboard)
	if err != nil {
		return schema.DashboardResult{}, 0, err
	}
	user, ok := snap.FindUser(cfg.User)
	if !ok {
		return schema.DashboardResult{}, 0, fmt.Errorf("user %q not found", cfg.User)
	}
	result := BuildDashboard(user, snap.Issues, snap.HR)
	recordRun(mgr, ViewDashboard, cfg, start, dashboardMetrics(result))
	return result, time.Since(start), nil
}

// ExecuteDashboard runs the personal dashboard and prints the result.
func ExecuteDashboard(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, duration, err := GetDashboardResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteDashboard(result, cfg, duration)
}

// GetSuggestionResults asks the suggester for configuration advice. An empty
// summary is replaced by one built from the snapshot. Validation failures
// come back as *suggest.FieldError; model failures as a generic message.
func GetSuggestionResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, suggester contract.Suggester) (schema.SuggestionResult, time.Duration, error) {
	start := time.Now()
	summary := cfg.Summary
	if summary == "" {
		snap, err := loadSnapshot(ctx, cfg, ViewSuggest)
		if err != nil {
			return schema.SuggestionResult{}, 0, err
		}
		summary = suggest.BuildDefaultSummary(snap.Projects, snap.Issues)
	}
	if err := suggest.ValidateSummary(summary); err != nil {
		return schema.SuggestionResult{}, 0, err
	}
	if suggester == nil {
		return schema.SuggestionResult{}, 0, errors.New("no suggestion client configured")
	}

	text, err := suggester.Suggest(ctx, summary)
	if err != nil {
		contract.LogWarn("Suggestion request failed", err)
		return schema.SuggestionResult{}, 0, errors.New(suggest.GenericErrorMessage)
	}
	recordRun(mgr, ViewSuggest, cfg, start, nil)
	return schema.SuggestionResult{Summary: summary, Suggestions: text}, time.Since(start), nil
}

// ExecuteSuggest runs the configuration assistant and prints the result.
func ExecuteSuggest(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, suggester contract.Suggester) error {
	result, duration, err := GetSuggestionResults(ctx, cfg, mgr, suggester)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSuggestion(result, cfg, duration)
}
