package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/internal/parquet"
	"github.com/huangsam/sprintlens/schema"
)

// PrintWorkloadResults outputs per-user workload, dispatching based on the output format configured.
func PrintWorkloadResults(rows []schema.WorkloadRow, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON workload"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVRows(w, workloadHeader(), workloadCSVRows(rows, fmtFloat))
		}, "Wrote CSV workload"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetRows(cfg.OutputFile, parquet.ConvertWorkload(rows), "Wrote Parquet workload"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWorkloadTable(w, rows, cfg, fmtFloat, duration)
		}, "Wrote workload table"); err != nil {
			return fmt.Errorf("error writing workload table output: %w", err)
		}
	}
	return nil
}

func workloadHeader() []string {
	return []string{"account_id", "display_name", "estimated_hours", "logged_hours", "variance", "label", "issue_count"}
}

func workloadCSVRows(rows []schema.WorkloadRow, fmtFloat func(float64) string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.AccountID,
			r.DisplayName,
			fmtFloat(r.EstimatedHours),
			fmtFloat(r.LoggedHours),
			fmtFloat(r.Variance),
			schema.GetVarianceLabel(r.Variance),
			itoa(r.IssueCount),
		})
	}
	return out
}

// writeWorkloadTable prints one row per user with the variance label and team totals.
func writeWorkloadTable(w io.Writer, rows []schema.WorkloadRow, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	var data [][]string
	var estimated, logged float64
	for _, r := range rows {
		estimated += r.EstimatedHours
		logged += r.LoggedHours
		data = append(data, []string{
			r.DisplayName,
			itoa(r.IssueCount),
			fmtFloat(r.EstimatedHours),
			fmtFloat(r.LoggedHours),
			fmtFloat(r.Variance),
			varianceLabel(cfg, r.Variance),
		})
	}
	if err := renderTable(w, []string{"User", "Issues", "Estimated (h)", "Logged (h)", "Variance (h)", "Label"}, data); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Team: %s h estimated, %s h logged\n", fmtFloat(estimated), fmtFloat(logged))
	writeFooter(w, fmt.Sprintf("Workload for %d users", len(rows)), cfg, duration)
	return nil
}
