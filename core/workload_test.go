package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/sprintlens/internal/snapshot"
	"github.com/huangsam/sprintlens/schema"
)

func TestWorkloadByUser(t *testing.T) {
	snap := snapshot.Demo(at(2025, 6, 15, 12))
	rows := WorkloadByUser(snap.Users, snap.Issues)
	require.Len(t, rows, 4)

	ids := []string{rows[0].AccountID, rows[1].AccountID, rows[2].AccountID, rows[3].AccountID}
	assert.Equal(t, []string{"u1", "u2", "u3", "u4"}, ids)

	// Alice: NOA-2 (8h est, 3h spent) and BIZ-1 (12h, 12h)
	assert.Equal(t, schema.WorkloadRow{AccountID: "u1", DisplayName: "Alice Johnson", EstimatedHours: 20, LoggedHours: 15, Variance: -5, IssueCount: 2}, rows[0])

	// Charlie: PHX-2 (16h, 60000s) and PHX-4 (8h, none)
	assert.Equal(t, 2, rows[2].IssueCount)
	assert.InDelta(t, 24.0, rows[2].EstimatedHours, 1e-9)
	assert.InDelta(t, 60000.0/3600, rows[2].LoggedHours, 1e-9)
	assert.InDelta(t, 60000.0/3600-24, rows[2].Variance, 1e-9)

	// Diana has HR-1 with no time fields at all
	assert.Equal(t, 3, rows[3].IssueCount)
	assert.InDelta(t, (86400.0+14400)/3600, rows[3].EstimatedHours, 1e-9)
}

func TestWorkloadIdleUser(t *testing.T) {
	users := []schema.User{{AccountID: "u9", DisplayName: "Idle"}}
	issues := []schema.Issue{newIssue("X-1", "To Do", day(2025, 3, 1))}

	rows := WorkloadByUser(users, issues)
	assert.Equal(t, []schema.WorkloadRow{{AccountID: "u9", DisplayName: "Idle"}}, rows)
}

func TestWorkloadNoUsers(t *testing.T) {
	assert.Empty(t, WorkloadByUser(nil, snapshot.Demo(at(2025, 6, 15, 12)).Issues))
}
