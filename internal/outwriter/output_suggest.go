package outwriter

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/schema"
)

// ErrNoParquetSuggestion is returned when suggestions are requested as Parquet.
var ErrNoParquetSuggestion = errors.New("suggestions have no parquet form; use text, csv or json")

// PrintSuggestionResults outputs configuration suggestions, dispatching based on the output format configured.
func PrintSuggestionResults(result schema.SuggestionResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON suggestions"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVRows(w, []string{"summary", "suggestions"}, [][]string{{result.Summary, result.Suggestions}})
		}, "Wrote CSV suggestions"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return ErrNoParquetSuggestion
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, _ = fmt.Fprintf(w, "💡 Suggestions\n\n%s\n\n", result.Suggestions)
			writeFooter(w, "Suggestion", cfg, duration)
			return nil
		}, "Wrote suggestions"); err != nil {
			return fmt.Errorf("error writing suggestions: %w", err)
		}
	}
	return nil
}
