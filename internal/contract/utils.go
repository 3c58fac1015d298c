package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/huangsam/sprintlens/schema"
)

// Color variables for console output.
var (
	OverColor     = color.New(color.FgRed, color.Bold) // logged well past the estimate
	UnderColor    = color.New(color.FgCyan)
	OnTrackColor  = color.New(color.FgGreen)
	DoneColor     = color.New(color.FgGreen, color.Bold)
	ProgressColor = color.New(color.FgYellow)
)

// GetVarianceColorLabel returns a colored variance label for table output.
func GetVarianceColorLabel(variance float64) string {
	text := schema.GetVarianceLabel(variance)
	switch text {
	case schema.OverLabel:
		return OverColor.Sprint(text)
	case schema.UnderLabel:
		return UnderColor.Sprint(text)
	default:
		return OnTrackColor.Sprint(text)
	}
}

// GetBucketColorLabel colors a raw status by the bucket it falls in.
func GetBucketColorLabel(status string) string {
	switch schema.BucketFor(status) {
	case schema.BucketDone:
		return DoneColor.Sprint(status)
	case schema.BucketInProgress:
		return ProgressColor.Sprint(status)
	default:
		return status
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the result cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".sprintlens_cache.db"
	}
	return filepath.Join(homeDir, ".sprintlens_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for run history.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".sprintlens_analysis.db"
	}
	return filepath.Join(homeDir, ".sprintlens_analysis.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
