package core

import (
	"time"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/internal/snapshot"
	"github.com/huangsam/sprintlens/schema"
)

// recordRun stores one run and the values it emitted in the run history.
// Tracking failures never fail the command.
func recordRun(mgr contract.CacheManager, command string, cfg *contract.Config, start time.Time, values []schema.MetricValue) {
	if mgr == nil {
		return
	}
	store := mgr.GetAnalysisStore()
	if store == nil {
		return
	}

	configParams := map[string]any{
		"snapshot":   sourceName(cfg),
		"window_end": cfg.WindowEnd.Format(contract.DateTimeFormat),
		"days":       cfg.WindowDays,
		"unit":       string(cfg.Unit),
	}
	if cfg.SprintID > 0 {
		configParams["sprint"] = cfg.SprintID
	}
	if !cfg.Filter.IsZero() {
		configParams["filter"] = snapshot.JQL(cfg.Filter)
	}

	analysisID, err := store.BeginAnalysis(command, start, configParams)
	if err != nil {
		contract.LogWarn("Analysis tracking initialization failed", err)
		return
	}

	if len(values) > 0 {
		if err := store.RecordMetrics(analysisID, time.Now(), values); err != nil {
			contract.LogWarn("Failed to record metric values", err)
		}
	}

	if err := store.EndAnalysis(analysisID, time.Now(), len(values)); err != nil {
		contract.LogWarn("Failed to finalize analysis tracking", err)
	}
}
