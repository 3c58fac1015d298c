package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/huangsam/sprintlens/internal/contract"
)

// Bounds for the free-text summary column.
const (
	minSummaryWidth = 15
	maxSummaryWidth = 70
)

// getTerminalWidth returns the width override or the detected terminal width.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// GetMaxSummaryWidth calculates the maximum width for issue summaries in
// recent-issue tables, given how much room the fixed columns take.
func GetMaxSummaryWidth(cfg *contract.Config, fixedWidth int) int {
	// Borders, separators and padding
	available := getTerminalWidth(cfg) - fixedWidth - 20
	if available < minSummaryWidth {
		return minSummaryWidth
	}
	if available > maxSummaryWidth {
		return maxSummaryWidth
	}
	return available
}
