package outwriter

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/internal/parquet"
	"github.com/huangsam/sprintlens/schema"
)

// PrintSprintResults outputs a sprint analysis, dispatching based on the output format configured.
func PrintSprintResults(result *schema.SprintAnalysis, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON sprint analysis"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVRows(w, []string{"series", "date", "ideal", "remaining"}, burndownCSVRows(result, fmtFloat))
		}, "Wrote CSV sprint burndown"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetRows(cfg.OutputFile, parquet.ConvertSprintAnalysis(result), "Wrote Parquet sprint burndown"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSprintTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote sprint table"); err != nil {
			return fmt.Errorf("error writing sprint table output: %w", err)
		}
	}
	return nil
}

// burndownCSVRows flattens the team series and the optional assignee series.
func burndownCSVRows(result *schema.SprintAnalysis, fmtFloat func(float64) string) [][]string {
	var rows [][]string
	add := func(series string, points []schema.BurndownPoint) {
		for _, p := range points {
			rows = append(rows, []string{series, formatDay(p.Date), fmtFloat(p.Ideal), fmtFloat(p.Remaining)})
		}
	}
	add("team", result.Burndown)
	if result.Assignee != "" {
		add(result.Assignee, result.AssigneeBurndown)
	}
	return rows
}

// sortedStatuses returns the distribution keys ordered by count, then name.
func sortedStatuses(dist map[string]int) []string {
	names := make([]string, 0, len(dist))
	for name := range dist {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if dist[names[i]] != dist[names[j]] {
			return dist[names[i]] > dist[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// writeSprintTable prints the sprint summary, the status split and the burndown.
func writeSprintTable(w io.Writer, result *schema.SprintAnalysis, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	sp := result.Sprint
	_, _ = fmt.Fprintf(w, "%s (%s) %s → %s\n", sp.Name, sp.State, formatDay(sp.StartDate), formatDay(sp.EndDate))
	_, _ = fmt.Fprintf(w, "Committed: %s %s, Completed: %s %s\n\n",
		fmtFloat(result.Committed), result.Unit, fmtFloat(result.Completed), result.Unit)

	var statusRows [][]string
	for _, name := range sortedStatuses(result.StatusDistribution) {
		statusRows = append(statusRows, []string{statusLabel(cfg, name), itoa(result.StatusDistribution[name])})
	}
	if err := renderTable(w, []string{"Status", "Issues"}, statusRows); err != nil {
		return err
	}

	headers := []string{"Date", "Ideal", "Remaining"}
	if result.Assignee != "" {
		headers = append(headers, "Remaining ("+result.Assignee+")")
	}
	var data [][]string
	for i, p := range result.Burndown {
		row := []string{formatDay(p.Date), fmtFloat(p.Ideal), fmtFloat(p.Remaining)}
		if result.Assignee != "" {
			cell := ""
			if i < len(result.AssigneeBurndown) {
				cell = fmtFloat(result.AssigneeBurndown[i].Remaining)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	if err := renderTable(w, headers, data); err != nil {
		return err
	}
	writeFooter(w, "Sprint analysis", cfg, duration)
	return nil
}
