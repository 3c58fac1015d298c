package core

import (
	"strconv"
	"time"

	"github.com/huangsam/sprintlens/schema"
)

// Metric names stored in the run history.
const (
	metricCfdToDo         = "cfd_todo"
	metricCfdInProgress   = "cfd_in_progress"
	metricCfdDone         = "cfd_done"
	metricCommitted       = "committed"
	metricCompleted       = "completed"
	metricRemaining       = "remaining"
	metricVelocity        = "velocity"
	metricVelocityAverage = "velocity_average"
	metricEstimatedHours  = "estimated_hours"
	metricLoggedHours     = "logged_hours"
	metricIssuesByStatus  = "issues_by_status"
	metricIssuesByType    = "issues_by_type"
	metricCompletionRate  = "completion_rate"
	metricAvgResolution   = "avg_resolution_days"
	metricProjectsByType  = "projects_by_type"
	metricProjectsByLead  = "projects_by_lead"
	metricHoursLogged     = "hours_logged"
	metricCompletedCount  = "completed_count"
)

func cfdMetrics(result schema.CfdResult) []schema.MetricValue {
	values := make([]schema.MetricValue, 0, 3*len(result.Points))
	for _, p := range result.Points {
		d := p.Date.Format(time.DateOnly)
		values = append(values,
			schema.MetricValue{Metric: metricCfdToDo, Dimension: d, Value: float64(p.ToDo)},
			schema.MetricValue{Metric: metricCfdInProgress, Dimension: d, Value: float64(p.InProgress)},
			schema.MetricValue{Metric: metricCfdDone, Dimension: d, Value: float64(p.Done)},
		)
	}
	return values
}

func sprintMetrics(a *schema.SprintAnalysis) []schema.MetricValue {
	name := sprintDimension(a.Sprint)
	values := []schema.MetricValue{
		{Metric: metricCommitted, Dimension: name, Value: a.Committed},
		{Metric: metricCompleted, Dimension: name, Value: a.Completed},
	}
	for _, p := range a.Burndown {
		values = append(values, schema.MetricValue{Metric: metricRemaining, Dimension: p.Date.Format(time.DateOnly), Value: p.Remaining})
	}
	return values
}

func velocityMetrics(result schema.VelocityResult) []schema.MetricValue {
	values := make([]schema.MetricValue, 0, len(result.Points)+1)
	for _, p := range result.Points {
		values = append(values, schema.MetricValue{Metric: metricVelocity, Dimension: p.SprintName, Value: p.Completed})
	}
	return append(values, schema.MetricValue{Metric: metricVelocityAverage, Value: result.Average})
}

func workloadMetrics(rows []schema.WorkloadRow) []schema.MetricValue {
	values := make([]schema.MetricValue, 0, 2*len(rows))
	for _, r := range rows {
		values = append(values,
			schema.MetricValue{Metric: metricEstimatedHours, Dimension: r.AccountID, Value: r.EstimatedHours},
			schema.MetricValue{Metric: metricLoggedHours, Dimension: r.AccountID, Value: r.LoggedHours},
		)
	}
	return values
}

func countMetrics(metric string, entries []schema.CountEntry) []schema.MetricValue {
	values := make([]schema.MetricValue, 0, len(entries))
	for _, e := range entries {
		values = append(values, schema.MetricValue{Metric: metric, Dimension: e.Name, Value: float64(e.Count)})
	}
	return values
}

func overviewMetrics(result schema.OverviewResult) []schema.MetricValue {
	values := []schema.MetricValue{
		{Metric: metricCompletionRate, Value: result.KPIs.CompletionRate},
		{Metric: metricAvgResolution, Value: result.KPIs.AvgResolutionDays},
	}
	values = append(values, countMetrics(metricIssuesByStatus, result.ByStatus)...)
	return append(values, countMetrics(metricIssuesByType, result.ByType)...)
}

func helicopterMetrics(result schema.HelicopterResult) []schema.MetricValue {
	values := countMetrics(metricProjectsByType, result.ByType)
	return append(values, countMetrics(metricProjectsByLead, result.ByLead)...)
}

func dashboardMetrics(result schema.DashboardResult) []schema.MetricValue {
	return []schema.MetricValue{
		{Metric: metricCompletedCount, Dimension: result.User.AccountID, Value: float64(result.CompletedCount)},
		{Metric: metricHoursLogged, Dimension: result.User.AccountID, Value: result.HoursLogged},
	}
}

// sprintDimension labels a sprint by id when it has no name.
func sprintDimension(s schema.Sprint) string {
	if s.Name != "" {
		return s.Name
	}
	return strconv.Itoa(s.ID)
}
