//go:build integration

// Package integration contains end-to-end tests for the sprintlens binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/sprintlens/schema"
)

var noStorage = map[string]string{
	"SPRINTLENS_CACHE_BACKEND": "none",
}

// writeDemoSnapshot materializes the demo dataset so every command sees the same data.
func writeDemoSnapshot(t *testing.T) (string, *schema.Snapshot) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.json")
	_, err := runSprintlens(t, noStorage, "snapshot", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var snap schema.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	return path, &snap
}

// TestCfdVerification checks the last cumulative flow day against the issues in the snapshot.
func TestCfdVerification(t *testing.T) {
	path, snap := writeDemoSnapshot(t)

	out, err := runSprintlens(t, withSession(t, noStorage), "cfd", "--snapshot", path, "--output", "json", "--days", "7")
	require.NoError(t, err)

	var result schema.CfdResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotEmpty(t, result.Points)

	last := result.Points[len(result.Points)-1]
	var existing int
	for _, issue := range snap.Issues {
		if !issue.Fields.Created.After(result.End.AddDate(0, 0, 1)) {
			existing++
		}
	}
	assert.Equal(t, existing, last.Total(), "every issue created by the last day is counted once")

	for i := 1; i < len(result.Points); i++ {
		assert.Equal(t, 24*time.Hour, result.Points[i].Date.Sub(result.Points[i-1].Date), "points are consecutive days")
	}
}

// TestVelocityVerification checks the reported average against the reported points.
func TestVelocityVerification(t *testing.T) {
	path, snap := writeDemoSnapshot(t)

	out, err := runSprintlens(t, withSession(t, noStorage), "velocity", "--snapshot", path, "--output", "json")
	require.NoError(t, err)

	var result schema.VelocityResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	var closed int
	for _, sp := range snap.Sprints {
		if sp.State == schema.SprintClosed {
			closed++
		}
	}
	require.Len(t, result.Points, closed)

	var sum float64
	for _, p := range result.Points {
		sum += p.Completed
	}
	assert.InDelta(t, sum/float64(closed), result.Average, 1e-9)
}

// TestFilterVerification checks that a project filter narrows the overview.
func TestFilterVerification(t *testing.T) {
	path, snap := writeDemoSnapshot(t)

	out, err := runSprintlens(t, withSession(t, noStorage), "overview", "--snapshot", path, "--project", "PHX", "--output", "json")
	require.NoError(t, err)

	var result schema.OverviewResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	var phx int
	for _, issue := range snap.Issues {
		if issue.Fields.Project.Key == "PHX" {
			phx++
		}
	}
	assert.Equal(t, phx, result.KPIs.TotalIssues)
}

// TestSessionLifecycle runs login, whoami and logout against an isolated HOME.
func TestSessionLifecycle(t *testing.T) {
	sessionFile := filepath.Join(t.TempDir(), "session.yaml")
	env := map[string]string{
		"SPRINTLENS_SESSION_FILE": sessionFile,
		"SPRINTLENS_API_TOKEN":    "secret-token-1234",
	}

	_, err := runSprintlens(t, env, "login", "--url", "https://example.atlassian.net/", "--email", "me@example.com")
	require.NoError(t, err)

	out, err := runSprintlens(t, env, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "me@example.com")
	assert.Contains(t, out, "https://example.atlassian.net")
	assert.Contains(t, out, "1234")
	assert.NotContains(t, out, "secret-token")

	_, err = runSprintlens(t, env, "logout")
	require.NoError(t, err)
	out, err = runSprintlens(t, env, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")
}

// TestViewsRequireLogin checks that views refuse to run until login and stop again after logout.
func TestViewsRequireLogin(t *testing.T) {
	path, _ := writeDemoSnapshot(t)
	env := map[string]string{
		"SPRINTLENS_CACHE_BACKEND": "none",
		"SPRINTLENS_SESSION_FILE":  filepath.Join(t.TempDir(), "session.yaml"),
		"SPRINTLENS_API_TOKEN":     "secret-token-1234",
	}

	for _, view := range []string{"cfd", "velocity", "workload", "overview", "helicopter"} {
		_, err := runSprintlens(t, env, view, "--snapshot", path)
		assert.Error(t, err, "%s should fail before login", view)
	}

	_, err := runSprintlens(t, env, "login", "--url", "https://example.atlassian.net", "--email", "me@example.com")
	require.NoError(t, err)

	out, err := runSprintlens(t, env, "workload", "--snapshot", path, "--output", "json")
	require.NoError(t, err)
	var rows []schema.WorkloadRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.NotEmpty(t, rows)

	_, err = runSprintlens(t, env, "logout")
	require.NoError(t, err)
	_, err = runSprintlens(t, env, "workload", "--snapshot", path)
	assert.Error(t, err, "logout closes the views again")
}
