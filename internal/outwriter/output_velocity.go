package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/internal/parquet"
	"github.com/huangsam/sprintlens/schema"
)

// PrintVelocityResults outputs the velocity series, dispatching based on the output format configured.
func PrintVelocityResults(result schema.VelocityResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON velocity"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			rows := make([][]string, 0, len(result.Points))
			for _, p := range result.Points {
				rows = append(rows, []string{itoa(p.SprintID), p.SprintName, string(result.Unit), fmtFloat(p.Completed)})
			}
			return writeCSVRows(w, []string{"sprint_id", "sprint_name", "unit", "completed"}, rows)
		}, "Wrote CSV velocity"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetRows(cfg.OutputFile, parquet.ConvertVelocity(result), "Wrote Parquet velocity"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeVelocityTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote velocity table"); err != nil {
			return fmt.Errorf("error writing velocity table output: %w", err)
		}
	}
	return nil
}

func writeVelocityTable(w io.Writer, result schema.VelocityResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if len(result.Points) == 0 {
		_, _ = fmt.Fprintln(w, "No closed sprints to report.")
		writeFooter(w, "Velocity", cfg, duration)
		return nil
	}
	var data [][]string
	for _, p := range result.Points {
		data = append(data, []string{p.SprintName, fmtFloat(p.Completed)})
	}
	if err := renderTable(w, []string{"Sprint", "Completed (" + string(result.Unit) + ")"}, data); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Average: %s %s per sprint\n", fmtFloat(result.Average), result.Unit)
	writeFooter(w, fmt.Sprintf("Velocity over %d sprints", len(result.Points)), cfg, duration)
	return nil
}
