package core

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/internal/iocache"
	"github.com/huangsam/sprintlens/internal/suggest"
	"github.com/huangsam/sprintlens/schema"
)

var demoNow = time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)

// demoConfig returns a validated-looking config over the built-in dataset.
func demoConfig() *contract.Config {
	return &contract.Config{
		Now:        demoNow,
		WindowEnd:  demoNow,
		WindowDays: contract.DefaultWindowDays,
		Unit:       schema.PointsUnit,
		Precision:  contract.DefaultPrecision,
		Output:     schema.JSONOut,
	}
}

func quietCtx() context.Context {
	return WithSuppressHeader(context.Background())
}

// noStores is a manager with both stores disabled.
func noStores() *iocache.MockCacheManager {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetResultStore").Return(nil)
	mgr.On("GetAnalysisStore").Return(nil)
	return mgr
}

type fakeSuggester struct {
	reply   string
	err     error
	summary string
}

func (f *fakeSuggester) Suggest(_ context.Context, summary string) (string, error) {
	f.summary = summary
	return f.reply, f.err
}

func TestGetCfdResults(t *testing.T) {
	result, _, err := GetCfdResults(quietCtx(), demoConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, contract.DefaultWindowDays, result.Days)
	require.Len(t, result.Points, 31)
	assert.Equal(t, result.Start, result.Points[0].Date)
	assert.Equal(t, result.End, result.Points[30].Date)
	assert.Equal(t, 10, result.Points[30].Total())
}

func TestGetCfdResultsFiltered(t *testing.T) {
	cfg := demoConfig()
	cfg.Filter.ProjectKey = "PHX"
	result, _, err := GetCfdResults(quietCtx(), cfg, noStores())
	require.NoError(t, err)
	require.NotEmpty(t, result.Points)
	assert.Equal(t, 5, result.Points[len(result.Points)-1].Total())
}

func TestGetCfdResultsEmptyWindow(t *testing.T) {
	cfg := demoConfig()
	cfg.Filter.ProjectKey = "NOPE"
	result, _, err := GetCfdResults(quietCtx(), cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Points)
	assert.True(t, result.Start.IsZero())
}

func TestCachedCfd(t *testing.T) {
	cfg := demoConfig()
	snap, err := loadSnapshot(quietCtx(), cfg, ViewCfd)
	require.NoError(t, err)
	key, err := generateCacheKey(cfg, snap)
	require.NoError(t, err)

	t.Run("miss computes and stores", func(t *testing.T) {
		store := &iocache.MockCacheStore{}
		store.On("Get", key).Return(nil, 0, int64(0), errors.New("miss"))
		store.On("Set", key, mock.Anything, currentCacheVersion, cfg.Now.Unix()).Return(nil)
		mgr := &iocache.MockCacheManager{}
		mgr.On("GetResultStore").Return(store)

		result, err := cachedCfd(cfg, snap, mgr)
		require.NoError(t, err)
		assert.Len(t, result.Points, 31)
		store.AssertExpectations(t)
	})

	t.Run("fresh hit skips computation", func(t *testing.T) {
		cached, err := json.Marshal(schema.CfdResult{Days: 99})
		require.NoError(t, err)
		store := &iocache.MockCacheStore{}
		store.On("Get", key).Return(cached, currentCacheVersion, cfg.Now.Add(-time.Hour).Unix(), nil)
		mgr := &iocache.MockCacheManager{}
		mgr.On("GetResultStore").Return(store)

		result, err := cachedCfd(cfg, snap, mgr)
		require.NoError(t, err)
		assert.Equal(t, 99, result.Days)
		store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stale or old version recomputes", func(t *testing.T) {
		cached, err := json.Marshal(schema.CfdResult{Days: 99})
		require.NoError(t, err)
		for _, entry := range []struct {
			version int
			ts      int64
		}{
			{currentCacheVersion, cfg.Now.Add(-8 * 24 * time.Hour).Unix()},
			{currentCacheVersion + 1, cfg.Now.Unix()},
		} {
			store := &iocache.MockCacheStore{}
			store.On("Get", key).Return(cached, entry.version, entry.ts, nil)
			store.On("Set", key, mock.Anything, currentCacheVersion, cfg.Now.Unix()).Return(nil)
			mgr := &iocache.MockCacheManager{}
			mgr.On("GetResultStore").Return(store)

			result, err := cachedCfd(cfg, snap, mgr)
			require.NoError(t, err)
			assert.Equal(t, contract.DefaultWindowDays, result.Days)
			store.AssertExpectations(t)
		}
	})

	t.Run("set failure still returns the result", func(t *testing.T) {
		store := &iocache.MockCacheStore{}
		store.On("Get", key).Return(nil, 0, int64(0), errors.New("miss"))
		store.On("Set", key, mock.Anything, currentCacheVersion, cfg.Now.Unix()).Return(errors.New("disk full"))
		mgr := &iocache.MockCacheManager{}
		mgr.On("GetResultStore").Return(store)

		result, err := cachedCfd(cfg, snap, mgr)
		require.NoError(t, err)
		assert.Len(t, result.Points, 31)
	})
}

func TestGenerateCacheKey(t *testing.T) {
	cfg := demoConfig()
	snap, err := loadSnapshot(quietCtx(), cfg, ViewCfd)
	require.NoError(t, err)
	base, err := generateCacheKey(cfg, snap)
	require.NoError(t, err)

	sameHour := demoConfig()
	sameHour.WindowEnd = demoNow.Add(20 * time.Minute)
	k, err := generateCacheKey(sameHour, snap)
	require.NoError(t, err)
	assert.Equal(t, base, k, "ends within the same hour share a key")

	otherDays := demoConfig()
	otherDays.WindowDays = 7
	k, err = generateCacheKey(otherDays, snap)
	require.NoError(t, err)
	assert.NotEqual(t, base, k)

	otherHour := demoConfig()
	otherHour.WindowEnd = demoNow.Add(time.Hour)
	k, err = generateCacheKey(otherHour, snap)
	require.NoError(t, err)
	assert.NotEqual(t, base, k)
}

func TestRecordRun(t *testing.T) {
	cfg := demoConfig()
	values := []schema.MetricValue{{Metric: "velocity", Dimension: "PHX Sprint 1", Value: 5}}

	t.Run("begin record end", func(t *testing.T) {
		store := &iocache.MockAnalysisStore{}
		store.On("BeginAnalysis", ViewVelocity, demoNow, mock.MatchedBy(func(p map[string]any) bool {
			return p["snapshot"] == "demo" && p["days"] == contract.DefaultWindowDays
		})).Return(int64(7), nil)
		store.On("RecordMetrics", int64(7), mock.Anything, values).Return(nil)
		store.On("EndAnalysis", int64(7), mock.Anything, 1).Return(nil)
		mgr := &iocache.MockCacheManager{}
		mgr.On("GetAnalysisStore").Return(store)

		recordRun(mgr, ViewVelocity, cfg, demoNow, values)
		store.AssertExpectations(t)
	})

	t.Run("begin failure skips the rest", func(t *testing.T) {
		store := &iocache.MockAnalysisStore{}
		store.On("BeginAnalysis", ViewVelocity, demoNow, mock.Anything).Return(int64(0), errors.New("locked"))
		mgr := &iocache.MockCacheManager{}
		mgr.On("GetAnalysisStore").Return(store)

		recordRun(mgr, ViewVelocity, cfg, demoNow, values)
		store.AssertNotCalled(t, "RecordMetrics", mock.Anything, mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "EndAnalysis", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty values skip recording", func(t *testing.T) {
		store := &iocache.MockAnalysisStore{}
		store.On("BeginAnalysis", ViewSuggest, demoNow, mock.Anything).Return(int64(3), nil)
		store.On("EndAnalysis", int64(3), mock.Anything, 0).Return(nil)
		mgr := &iocache.MockCacheManager{}
		mgr.On("GetAnalysisStore").Return(store)

		recordRun(mgr, ViewSuggest, cfg, demoNow, nil)
		store.AssertExpectations(t)
		store.AssertNotCalled(t, "RecordMetrics", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("nil manager", func(t *testing.T) {
		assert.NotPanics(t, func() { recordRun(nil, ViewCfd, cfg, demoNow, values) })
	})
}

func TestGetSprintResults(t *testing.T) {
	t.Run("sprint required", func(t *testing.T) {
		_, _, err := GetSprintResults(quietCtx(), demoConfig(), nil)
		assert.ErrorContains(t, err, "--sprint is required")
	})

	t.Run("unknown sprint", func(t *testing.T) {
		cfg := demoConfig()
		cfg.SprintID = 99
		_, _, err := GetSprintResults(quietCtx(), cfg, nil)
		assert.ErrorContains(t, err, "sprint 99 not found")
	})

	t.Run("with assignee", func(t *testing.T) {
		cfg := demoConfig()
		cfg.SprintID = 3
		cfg.Assignee = "u1"
		analysis, _, err := GetSprintResults(quietCtx(), cfg, noStores())
		require.NoError(t, err)
		assert.Equal(t, "PHX Sprint 3", analysis.Sprint.Name)
		assert.Equal(t, 8.0, analysis.Committed)
		assert.Equal(t, "u1", analysis.Assignee)
		assert.Len(t, analysis.Burndown, 14)
	})
}

func TestGetVelocityResults(t *testing.T) {
	result, _, err := GetVelocityResults(quietCtx(), demoConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, schema.PointsUnit, result.Unit)
	require.Len(t, result.Points, 3)
	assert.InDelta(t, 26.0/3, result.Average, 1e-9)
}

func TestGetWorkloadResults(t *testing.T) {
	rows, _, err := GetWorkloadResults(quietCtx(), demoConfig(), nil)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "u1", rows[0].AccountID)
}

func TestGetOverviewAndHelicopter(t *testing.T) {
	cfg := demoConfig()
	cfg.Filter.ProjectKey = "PHX"
	overview, _, err := GetOverviewResults(quietCtx(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, overview.KPIs.TotalIssues)

	heli, _, err := GetHelicopterResults(quietCtx(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, heli.TotalProjects, "filters narrow issues, not projects")
}

func TestGetDashboardResults(t *testing.T) {
	_, _, err := GetDashboardResults(quietCtx(), demoConfig(), nil)
	assert.ErrorContains(t, err, "--user is required")

	cfg := demoConfig()
	cfg.User = "u9"
	_, _, err = GetDashboardResults(quietCtx(), cfg, nil)
	assert.ErrorContains(t, err, `user "u9" not found`)

	cfg.User = "u1"
	result, _, err := GetDashboardResults(quietCtx(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", result.User.DisplayName)
}

func TestGetSuggestionResults(t *testing.T) {
	t.Run("default summary", func(t *testing.T) {
		s := &fakeSuggester{reply: "Add a Spike issue type."}
		result, _, err := GetSuggestionResults(quietCtx(), demoConfig(), nil, s)
		require.NoError(t, err)
		assert.Equal(t, "Add a Spike issue type.", result.Suggestions)
		assert.Contains(t, s.summary, "3 Story(s), 2 Bug(s), 5 Task(s)")
		assert.Equal(t, s.summary, result.Summary)
	})

	t.Run("short summary", func(t *testing.T) {
		cfg := demoConfig()
		cfg.Summary = "too short"
		s := &fakeSuggester{}
		_, _, err := GetSuggestionResults(quietCtx(), cfg, nil, s)
		var fieldErr *suggest.FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "summary", fieldErr.Field)
		assert.Equal(t, "Summary must be at least 10 characters long.", fieldErr.Message)
		assert.Empty(t, s.summary, "model is not called")
	})

	t.Run("model failure", func(t *testing.T) {
		cfg := demoConfig()
		cfg.Summary = "We track bugs and stories in two projects."
		_, _, err := GetSuggestionResults(quietCtx(), cfg, nil, &fakeSuggester{err: errors.New("429")})
		assert.EqualError(t, err, suggest.GenericErrorMessage)
	})

	t.Run("no client", func(t *testing.T) {
		cfg := demoConfig()
		cfg.Summary = "We track bugs and stories in two projects."
		_, _, err := GetSuggestionResults(quietCtx(), cfg, nil, nil)
		assert.Error(t, err)
	})
}

func TestExecuteOverviewWritesJSON(t *testing.T) {
	cfg := demoConfig()
	cfg.OutputFile = filepath.Join(t.TempDir(), "overview.json")
	require.NoError(t, ExecuteOverview(quietCtx(), cfg, nil))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var got schema.OverviewResult
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 10, got.KPIs.TotalIssues)
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	cfg := demoConfig()
	cfg.SnapshotPath = filepath.Join(t.TempDir(), "missing.json")
	_, _, err := GetOverviewResults(quietCtx(), cfg, nil)
	assert.Error(t, err)
}
