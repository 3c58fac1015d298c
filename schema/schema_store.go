package schema

import "time"

// MetricValue is one emitted number of a run, e.g. ("velocity", "PHX Sprint 1", 5).
type MetricValue struct {
	Metric    string
	Dimension string
	Value     float64
}

// AnalysisRunRecord represents a row from the sprintlens_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID           int64
	Command              string
	StartTime            time.Time
	EndTime              *time.Time
	RunDurationMs        *int32
	TotalMetricsRecorded int32
	ConfigParams         *string
}

// MetricRecord represents a row from the sprintlens_metric_values table.
type MetricRecord struct {
	AnalysisID int64
	Metric     string
	Dimension  string
	Value      float64
	RecordedAt time.Time
}
