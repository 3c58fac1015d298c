package outwriter

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/internal/parquet"
	"github.com/huangsam/sprintlens/schema"
)

// Breakdown categories used in CSV and Parquet rows.
const (
	statusCategory = "status"
	typeCategory   = "type"
	leadCategory   = "lead"
)

// recentFixedWidth is the room taken by every recent-issue column except the summary.
const recentFixedWidth = 60

// PrintOverviewResults outputs the project overview, dispatching based on the output format configured.
func PrintOverviewResults(result schema.OverviewResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	counts := slices.Concat(
		parquet.ConvertCounts(statusCategory, result.ByStatus),
		parquet.ConvertCounts(typeCategory, result.ByType),
	)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON overview"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVRows(w, countHeader(), countCSVRows(counts))
		}, "Wrote CSV overview"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetRows(cfg.OutputFile, counts, "Wrote Parquet overview"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOverviewTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote overview table"); err != nil {
			return fmt.Errorf("error writing overview table output: %w", err)
		}
	}
	return nil
}

// PrintHelicopterResults outputs the portfolio view, dispatching based on the output format configured.
func PrintHelicopterResults(result schema.HelicopterResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	counts := slices.Concat(
		parquet.ConvertCounts(typeCategory, result.ByType),
		parquet.ConvertCounts(leadCategory, result.ByLead),
	)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON helicopter view"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVRows(w, countHeader(), countCSVRows(counts))
		}, "Wrote CSV helicopter view"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetRows(cfg.OutputFile, counts, "Wrote Parquet helicopter view"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHelicopterTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote helicopter table"); err != nil {
			return fmt.Errorf("error writing helicopter table output: %w", err)
		}
	}
	return nil
}

func countHeader() []string {
	return []string{"category", "name", "count"}
}

func countCSVRows(rows []parquet.CountRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Category, r.Name, itoa(int(r.Count))})
	}
	return out
}

func countTableRows(entries []schema.CountEntry, label func(string) string) [][]string {
	out := make([][]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, []string{label(e.Name), itoa(e.Count)})
	}
	return out
}

func plain(s string) string { return s }

// referenceTime is the instant issue ages are measured against.
func referenceTime(cfg *contract.Config) time.Time {
	if cfg.Now.IsZero() {
		return time.Now()
	}
	return cfg.Now
}

// writeRecentTable lists issues with a truncated summary and a humanized age.
func writeRecentTable(w io.Writer, issues []schema.IssueSummary, cfg *contract.Config) error {
	now := referenceTime(cfg)
	summaryWidth := GetMaxSummaryWidth(cfg, recentFixedWidth)
	var data [][]string
	for _, is := range issues {
		data = append(data, []string{
			is.Key,
			contract.TruncateText(is.Summary, summaryWidth),
			is.Type,
			statusLabel(cfg, is.Status),
			is.Priority,
			humanize.RelTime(is.Created, now, "ago", "from now"),
		})
	}
	return renderTable(w, []string{"Key", "Summary", "Type", "Status", "Priority", "Created"}, data)
}

func writeOverviewTable(w io.Writer, result schema.OverviewResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	k := result.KPIs
	_, _ = fmt.Fprintf(w, "Issues: %s (%d done, %d in progress, %d to do)\n",
		humanize.Comma(int64(k.TotalIssues)), k.Completed, k.InProgress, k.ToDo)
	_, _ = fmt.Fprintf(w, "Completion rate: %s%%, average resolution: %s days\n\n",
		fmtFloat(k.CompletionRate), fmtFloat(k.AvgResolutionDays))

	if err := renderTable(w, []string{"Status", "Issues"}, countTableRows(result.ByStatus, func(s string) string {
		return statusLabel(cfg, s)
	})); err != nil {
		return err
	}
	if err := renderTable(w, []string{"Type", "Issues"}, countTableRows(result.ByType, plain)); err != nil {
		return err
	}
	if len(result.Recent) > 0 {
		if err := writeRecentTable(w, result.Recent, cfg); err != nil {
			return err
		}
	}
	writeFooter(w, "Overview", cfg, duration)
	return nil
}

func writeHelicopterTable(w io.Writer, result schema.HelicopterResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	_, _ = fmt.Fprintf(w, "Projects: %d, average per lead: %s\n\n", result.TotalProjects, fmtFloat(result.AvgProjectsPerLead))

	var data [][]string
	for _, p := range result.Projects {
		data = append(data, []string{p.Key, p.Name, p.Type, p.Lead})
	}
	if err := renderTable(w, []string{"Key", "Name", "Type", "Lead"}, data); err != nil {
		return err
	}
	if err := renderTable(w, []string{"Type", "Projects"}, countTableRows(result.ByType, plain)); err != nil {
		return err
	}
	if err := renderTable(w, []string{"Lead", "Projects"}, countTableRows(result.ByLead, plain)); err != nil {
		return err
	}
	writeFooter(w, "Helicopter view", cfg, duration)
	return nil
}
