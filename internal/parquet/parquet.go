// Package parquet provides row types and writers for exporting sprintlens
// data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/sprintlens/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single command run with metadata.
// This struct maps to the sprintlens_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// Command is the view that was computed, e.g. "cfd"
	Command string `parquet:"command,snappy,dict"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalMetricsRecorded is the number of metric values the run emitted
	TotalMetricsRecorded int32 `parquet:"total_metrics_recorded,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// MetricValue is one recorded number of a run.
// This struct maps to the sprintlens_metric_values database table.
type MetricValue struct {
	AnalysisID int64     `parquet:"analysis_id,snappy"`
	Metric     string    `parquet:"metric,snappy,dict"`
	Dimension  string    `parquet:"dimension,snappy"`
	Value      float64   `parquet:"value,snappy"`
	RecordedAt time.Time `parquet:"recorded_at,snappy"`
}

// CfdRow is one day of a cumulative flow diagram.
type CfdRow struct {
	Date       time.Time `parquet:"date,snappy"`
	ToDo       int32     `parquet:"todo,snappy"`
	InProgress int32     `parquet:"in_progress,snappy"`
	Done       int32     `parquet:"done,snappy"`
}

// BurndownRow is one day of a sprint burndown. Series is "team" or the
// assignee account id.
type BurndownRow struct {
	SprintID  int32     `parquet:"sprint_id,snappy"`
	Series    string    `parquet:"series,snappy,dict"`
	Date      time.Time `parquet:"date,snappy"`
	Ideal     float64   `parquet:"ideal,snappy"`
	Remaining float64   `parquet:"remaining,snappy"`
}

// VelocityRow is the completed amount of one closed sprint.
type VelocityRow struct {
	SprintID   int32   `parquet:"sprint_id,snappy"`
	SprintName string  `parquet:"sprint_name,snappy"`
	Unit       string  `parquet:"unit,snappy,dict"`
	Completed  float64 `parquet:"completed,snappy"`
}

// WorkloadRow is estimated vs logged hours for one user.
type WorkloadRow struct {
	AccountID      string  `parquet:"account_id,snappy"`
	DisplayName    string  `parquet:"display_name,snappy"`
	EstimatedHours float64 `parquet:"estimated_hours,snappy"`
	LoggedHours    float64 `parquet:"logged_hours,snappy"`
	Variance       float64 `parquet:"variance,snappy"`
	IssueCount     int32   `parquet:"issue_count,snappy"`
}

// CountRow is one named count of a breakdown, e.g. ("status", "Done", 5).
type CountRow struct {
	Category string `parquet:"category,snappy,dict"`
	Name     string `parquet:"name,snappy"`
	Count    int32  `parquet:"count,snappy"`
}

// DayHoursRow is logged vs target hours for one weekday of one user.
type DayHoursRow struct {
	AccountID string  `parquet:"account_id,snappy"`
	Day       string  `parquet:"day,snappy,dict"`
	Logged    float64 `parquet:"logged,snappy"`
	Target    float64 `parquet:"target,snappy"`
}

// WriteRows writes rows to w using the schema inferred from the struct tags of T.
func WriteRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteFile writes rows to a new Parquet file at outputPath.
func WriteFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return WriteRows(file, rows)
}

// WriteAnalysisRunsParquet writes run rows to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return WriteFile(data, outputPath)
}

// WriteMetricValuesParquet writes metric rows to a Parquet file.
func WriteMetricValuesParquet(data []MetricValue, outputPath string) error {
	return WriteFile(data, outputPath)
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to AnalysisRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			AnalysisID:           record.AnalysisID,
			Command:              record.Command,
			StartTime:            record.StartTime,
			EndTime:              record.EndTime,
			RunDurationMs:        record.RunDurationMs,
			TotalMetricsRecorded: record.TotalMetricsRecorded,
			ConfigParams:         record.ConfigParams,
		}
	}
	return result
}

// ConvertMetricRecords converts schema.MetricRecord to MetricValue for Parquet export.
func ConvertMetricRecords(records []schema.MetricRecord) []MetricValue {
	result := make([]MetricValue, len(records))
	for i, record := range records {
		result[i] = MetricValue(record)
	}
	return result
}

// ConvertCfdPoints converts cumulative flow points to rows.
func ConvertCfdPoints(points []schema.CfdPoint) []CfdRow {
	result := make([]CfdRow, len(points))
	for i, p := range points {
		result[i] = CfdRow{Date: p.Date, ToDo: int32(p.ToDo), InProgress: int32(p.InProgress), Done: int32(p.Done)}
	}
	return result
}

// ConvertSprintAnalysis flattens the team burndown and, when present, the
// assignee burndown into rows.
func ConvertSprintAnalysis(a *schema.SprintAnalysis) []BurndownRow {
	result := make([]BurndownRow, 0, len(a.Burndown)+len(a.AssigneeBurndown))
	add := func(series string, points []schema.BurndownPoint) {
		for _, p := range points {
			result = append(result, BurndownRow{
				SprintID:  int32(a.Sprint.ID),
				Series:    series,
				Date:      p.Date,
				Ideal:     p.Ideal,
				Remaining: p.Remaining,
			})
		}
	}
	add("team", a.Burndown)
	if a.Assignee != "" {
		add(a.Assignee, a.AssigneeBurndown)
	}
	return result
}

// ConvertVelocity converts a velocity series to rows.
func ConvertVelocity(v schema.VelocityResult) []VelocityRow {
	result := make([]VelocityRow, len(v.Points))
	for i, p := range v.Points {
		result[i] = VelocityRow{SprintID: int32(p.SprintID), SprintName: p.SprintName, Unit: string(v.Unit), Completed: p.Completed}
	}
	return result
}

// ConvertWorkload converts workload rows.
func ConvertWorkload(rows []schema.WorkloadRow) []WorkloadRow {
	result := make([]WorkloadRow, len(rows))
	for i, r := range rows {
		result[i] = WorkloadRow{
			AccountID:      r.AccountID,
			DisplayName:    r.DisplayName,
			EstimatedHours: r.EstimatedHours,
			LoggedHours:    r.LoggedHours,
			Variance:       r.Variance,
			IssueCount:     int32(r.IssueCount),
		}
	}
	return result
}

// ConvertCounts converts a named breakdown to rows under one category.
func ConvertCounts(category string, entries []schema.CountEntry) []CountRow {
	result := make([]CountRow, len(entries))
	for i, e := range entries {
		result[i] = CountRow{Category: category, Name: e.Name, Count: int32(e.Count)}
	}
	return result
}

// ConvertWeeklyHours converts the weekly hours of one user to rows.
func ConvertWeeklyHours(accountID string, days []schema.DayHours) []DayHoursRow {
	result := make([]DayHoursRow, len(days))
	for i, d := range days {
		result[i] = DayHoursRow{AccountID: accountID, Day: d.Day, Logged: d.Logged, Target: d.Target}
	}
	return result
}
