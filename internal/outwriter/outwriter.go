// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteCfd prints the cumulative flow using the configured output format.
func (ow *OutWriter) WriteCfd(result schema.CfdResult, cfg *contract.Config, duration time.Duration) error {
	return PrintCfdResults(result, cfg, duration)
}

// WriteSprint prints a sprint analysis using the configured output format.
func (ow *OutWriter) WriteSprint(result *schema.SprintAnalysis, cfg *contract.Config, duration time.Duration) error {
	return PrintSprintResults(result, cfg, duration)
}

// WriteVelocity prints the velocity series using the configured output format.
func (ow *OutWriter) WriteVelocity(result schema.VelocityResult, cfg *contract.Config, duration time.Duration) error {
	return PrintVelocityResults(result, cfg, duration)
}

// WriteWorkload prints per-user workload rows using the configured output format.
func (ow *OutWriter) WriteWorkload(rows []schema.WorkloadRow, cfg *contract.Config, duration time.Duration) error {
	return PrintWorkloadResults(rows, cfg, duration)
}

// WriteOverview prints the project overview using the configured output format.
func (ow *OutWriter) WriteOverview(result schema.OverviewResult, cfg *contract.Config, duration time.Duration) error {
	return PrintOverviewResults(result, cfg, duration)
}

// WriteHelicopter prints the portfolio view using the configured output format.
func (ow *OutWriter) WriteHelicopter(result schema.HelicopterResult, cfg *contract.Config, duration time.Duration) error {
	return PrintHelicopterResults(result, cfg, duration)
}

// WriteDashboard prints a personal dashboard using the configured output format.
func (ow *OutWriter) WriteDashboard(result schema.DashboardResult, cfg *contract.Config, duration time.Duration) error {
	return PrintDashboardResults(result, cfg, duration)
}

// WriteSuggestion prints configuration suggestions using the configured output format.
func (ow *OutWriter) WriteSuggestion(result schema.SuggestionResult, cfg *contract.Config, duration time.Duration) error {
	return PrintSuggestionResults(result, cfg, duration)
}
