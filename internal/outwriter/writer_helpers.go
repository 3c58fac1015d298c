package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/internal/parquet"
	"github.com/huangsam/sprintlens/schema"
)

// dateLayout is how calendar days are shown in tables and CSV rows.
const dateLayout = "2006-01-02"

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	return writeRows(csvWriter)
}

// writeCSVRows writes a header and a prepared set of rows.
func writeCSVRows(w io.Writer, header []string, rows [][]string) error {
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		return csvWriter.WriteAll(rows)
	})
}

// writeParquetRows writes rows to the configured output file.
func writeParquetRows[T any](outputFile string, rows []T, successMsg string) error {
	return writeWithFile(outputFile, func(w io.Writer) error {
		return parquet.WriteRows(w, rows)
	}, successMsg)
}

// renderTable writes a right-aligned table with the given headers and rows.
func renderTable(w io.Writer, headers []string, data [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeFooter prints the one-line completion summary below a table.
func writeFooter(w io.Writer, view string, cfg *contract.Config, duration time.Duration) {
	_, _ = fmt.Fprintf(w, "%s completed in %v. Cache backend: %s\n", view, duration, cfg.CacheBackend)
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// formatDay renders a calendar day in its own location.
func formatDay(t time.Time) string {
	return t.Format(dateLayout)
}

// varianceLabel labels a workload variance, colored when colors are enabled.
func varianceLabel(cfg *contract.Config, variance float64) string {
	if cfg.UseColors {
		return contract.GetVarianceColorLabel(variance)
	}
	return schema.GetVarianceLabel(variance)
}

// statusLabel colors a raw status by bucket when colors are enabled.
func statusLabel(cfg *contract.Config, status string) string {
	if cfg.UseColors {
		return contract.GetBucketColorLabel(status)
	}
	return status
}

// itoa is shorthand for table cells.
func itoa(n int) string {
	return strconv.Itoa(n)
}
