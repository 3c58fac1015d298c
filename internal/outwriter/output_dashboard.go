package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/internal/parquet"
	"github.com/huangsam/sprintlens/schema"
)

// PrintDashboardResults outputs a personal dashboard, dispatching based on the output format configured.
func PrintDashboardResults(result schema.DashboardResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON dashboard"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			rows := make([][]string, 0, len(result.WeeklyHours))
			for _, d := range result.WeeklyHours {
				rows = append(rows, []string{result.User.AccountID, d.Day, fmtFloat(d.Logged), fmtFloat(d.Target)})
			}
			return writeCSVRows(w, []string{"account_id", "day", "logged", "target"}, rows)
		}, "Wrote CSV dashboard"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		rows := parquet.ConvertWeeklyHours(result.User.AccountID, result.WeeklyHours)
		if err := writeParquetRows(cfg.OutputFile, rows, "Wrote Parquet dashboard"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDashboardTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote dashboard table"); err != nil {
			return fmt.Errorf("error writing dashboard table output: %w", err)
		}
	}
	return nil
}

func writeDashboardTable(w io.Writer, result schema.DashboardResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	p := result.Profile
	_, _ = fmt.Fprintf(w, "👤 %s\n", result.User.DisplayName)
	_, _ = fmt.Fprintf(w, "Completed: %d issues, logged: %s h\n", result.CompletedCount, fmtFloat(result.HoursLogged))
	_, _ = fmt.Fprintf(w, "Vacation days: %d, sick days: %d, target: %d h/week\n\n", p.VacationDays, p.SickDaysTaken, p.TargetHours)

	var data [][]string
	for _, d := range result.WeeklyHours {
		data = append(data, []string{d.Day, fmtFloat(d.Logged), fmtFloat(d.Target)})
	}
	if err := renderTable(w, []string{"Day", "Logged (h)", "Target (h)"}, data); err != nil {
		return err
	}
	if len(result.RecentCompleted) > 0 {
		if err := writeRecentTable(w, result.RecentCompleted, cfg); err != nil {
			return err
		}
	}
	writeFooter(w, "Dashboard", cfg, duration)
	return nil
}
