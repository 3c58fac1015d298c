package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/internal/parquet"
)

// ExecuteAnalysisExport writes the run history to two Parquet files next to
// outputFile and reports progress to w.
func ExecuteAnalysisExport(w io.Writer, store contract.AnalysisStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("analysis store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total analysis runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total metric records: %d\n", status.TableSizes[metricValuesTable])

	analysisRuns, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}
	metricRecords, err := store.GetAllMetricRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve metric values: %w", err)
	}

	parquetAnalysisRuns := parquet.ConvertAnalysisRunRecords(analysisRuns)
	parquetMetricValues := parquet.ConvertMetricRecords(metricRecords)

	analysisRunsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetAnalysisRuns, analysisRunsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d analysis runs to: %s\n", len(parquetAnalysisRuns), analysisRunsFile)

	metricValuesFile := outputFile + ".metric_values.parquet"
	if err := parquet.WriteMetricValuesParquet(parquetMetricValues, metricValuesFile); err != nil {
		return fmt.Errorf("failed to write metric values: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d metric values to: %s\n", len(parquetMetricValues), metricValuesFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be used with:")
	_, _ = fmt.Fprintln(w, "  - Apache Spark")
	_, _ = fmt.Fprintln(w, "  - Pandas (via pyarrow)")
	_, _ = fmt.Fprintln(w, "  - DuckDB")

	return nil
}
