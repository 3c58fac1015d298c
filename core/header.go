package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/internal/snapshot"
	"github.com/huangsam/sprintlens/schema"
)

// sourceName is the label of the snapshot a run reads from.
func sourceName(cfg *contract.Config) string {
	if cfg.SnapshotPath == "" {
		return "demo"
	}
	return filepath.Base(cfg.SnapshotPath)
}

// logHeader prints a concise header to stderr, so piped output stays clean.
func logHeader(cfg *contract.Config, view string, snap *schema.Snapshot) {
	_, _ = fmt.Fprintf(os.Stderr, "🔎 Source: %s (View: %s, %d issues)\n", sourceName(cfg), view, len(snap.Issues))
	if !cfg.Filter.IsZero() {
		_, _ = fmt.Fprintf(os.Stderr, "🧭 Filter: %s\n", snapshot.JQL(cfg.Filter))
	}
	if cfg.Session != nil {
		_, _ = fmt.Fprintf(os.Stderr, "👤 Session: %s @ %s\n", cfg.Session.Email, cfg.Session.InstanceURL)
	}
}

// logWindowHeader adds the resolved day range of a windowed view.
func logWindowHeader(start, end time.Time) {
	_, _ = fmt.Fprintf(os.Stderr, "📅 Range: %s → %s\n", start.Format(time.DateOnly), end.Format(time.DateOnly))
}
