package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/internal/parquet"
	"github.com/huangsam/sprintlens/schema"
)

// PrintCfdResults outputs the cumulative flow, dispatching based on the output format configured.
func PrintCfdResults(result schema.CfdResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON cumulative flow"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVRows(w, cfdHeader(), cfdRows(result.Points))
		}, "Wrote CSV cumulative flow"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetRows(cfg.OutputFile, parquet.ConvertCfdPoints(result.Points), "Wrote Parquet cumulative flow"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCfdTable(w, result, cfg, duration)
		}, "Wrote cumulative flow table"); err != nil {
			return fmt.Errorf("error writing cumulative flow table output: %w", err)
		}
	}
	return nil
}

func cfdHeader() []string {
	return []string{"date", "todo", "in_progress", "done", "total"}
}

func cfdRows(points []schema.CfdPoint) [][]string {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{formatDay(p.Date), itoa(p.ToDo), itoa(p.InProgress), itoa(p.Done), itoa(p.Total())})
	}
	return rows
}

// writeCfdTable prints one row per day followed by the window summary.
func writeCfdTable(w io.Writer, result schema.CfdResult, cfg *contract.Config, duration time.Duration) error {
	if len(result.Points) == 0 {
		_, _ = fmt.Fprintln(w, "No issues in the selected window.")
		writeFooter(w, "Cumulative flow", cfg, duration)
		return nil
	}
	headers := []string{"Date", string(schema.BucketToDo), string(schema.BucketInProgress), string(schema.BucketDone), "Total"}
	if err := renderTable(w, headers, cfdRows(result.Points)); err != nil {
		return err
	}
	writeFooter(w, fmt.Sprintf("Cumulative flow over %d days", len(result.Points)), cfg, duration)
	return nil
}
