package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/sprintlens/internal/snapshot"
	"github.com/huangsam/sprintlens/schema"
)

func member(key, status string, points *float64, sprint schema.Sprint, assignee string, resolved *time.Time) schema.Issue {
	issue := newIssue(key, status, sprint.StartDate)
	issue.Fields.StoryPoints = points
	issue.Fields.Sprints = []schema.Sprint{sprint}
	issue.Fields.ResolutionDate = resolved
	if assignee != "" {
		issue.Fields.Assignee = &schema.User{AccountID: assignee}
	}
	return issue
}

func ptr[T any](v T) *T { return &v }

func TestAnalyzeSprintUnknownID(t *testing.T) {
	sprints := []schema.Sprint{{ID: 1, StartDate: day(2025, 3, 1), EndDate: day(2025, 3, 14)}}
	assert.Nil(t, AnalyzeSprint(99, sprints, nil, schema.PointsUnit))
}

func TestAnalyzeSprintActiveScenario(t *testing.T) {
	now := at(2025, 6, 15, 12)
	sprint := schema.Sprint{ID: 3, Name: "PHX Sprint 3", State: schema.SprintActive, StartDate: now.AddDate(0, 0, -10), EndDate: now.AddDate(0, 0, 3)}
	issues := []schema.Issue{member("PHX-9", "In Progress", ptr(5.0), sprint, "", nil)}

	a := AnalyzeSprint(3, []schema.Sprint{sprint}, issues, schema.PointsUnit)
	require.NotNil(t, a)
	assert.Equal(t, 5.0, a.Committed)
	assert.Equal(t, 0.0, a.Completed)
	assert.Equal(t, map[string]int{"In Progress": 1}, a.StatusDistribution)

	require.Len(t, a.Burndown, 14)
	for i, p := range a.Burndown {
		assert.Equal(t, 5.0, p.Remaining)
		assert.Equal(t, day(2025, 6, 5).AddDate(0, 0, i), p.Date)
		if i > 0 {
			assert.Less(t, p.Ideal, a.Burndown[i-1].Ideal)
		}
	}
	assert.Equal(t, 5.0, a.Burndown[0].Ideal)
	assert.InDelta(t, 0.0, a.Burndown[13].Ideal, 1e-9)
}

func TestBurndownResolvedOnDayTwo(t *testing.T) {
	sprint := schema.Sprint{ID: 1, StartDate: at(2025, 3, 3, 9), EndDate: at(2025, 3, 7, 17)}
	issues := []schema.Issue{
		member("A-1", "In Progress", ptr(5.0), sprint, "", nil),
		member("A-2", "Done", ptr(1.0), sprint, "", ptr(at(2025, 3, 5, 15))),
	}

	points := Burndown(sprint, issues, schema.PointsUnit)
	require.Len(t, points, 5)

	remaining := make([]float64, len(points))
	for i, p := range points {
		remaining[i] = p.Remaining
	}
	assert.Equal(t, []float64{6, 6, 5, 5, 5}, remaining)

	ideal := make([]float64, len(points))
	for i, p := range points {
		ideal[i] = p.Ideal
	}
	assert.InDeltaSlice(t, []float64{6, 4.5, 3, 1.5, 0}, ideal, 1e-9)
}

func TestBurndownEdgeCases(t *testing.T) {
	sprint := schema.Sprint{ID: 1, StartDate: at(2025, 3, 3, 9), EndDate: at(2025, 3, 7, 17)}

	t.Run("zero committed is empty", func(t *testing.T) {
		issues := []schema.Issue{member("A-1", "To Do", nil, sprint, "", nil)}
		assert.Empty(t, Burndown(sprint, issues, schema.PointsUnit))
		assert.Empty(t, Burndown(sprint, nil, schema.CountUnit))
	})

	t.Run("one day sprint keeps ideal at committed", func(t *testing.T) {
		short := schema.Sprint{ID: 2, StartDate: at(2025, 3, 3, 9), EndDate: at(2025, 3, 3, 17)}
		points := Burndown(short, []schema.Issue{member("A-1", "To Do", ptr(3.0), short, "", nil)}, schema.PointsUnit)
		require.Len(t, points, 1)
		assert.Equal(t, schema.BurndownPoint{Date: day(2025, 3, 3), Ideal: 3, Remaining: 3}, points[0])
	})

	t.Run("resolution outside the range is ignored", func(t *testing.T) {
		issues := []schema.Issue{member("A-1", "Done", ptr(2.0), sprint, "", ptr(at(2025, 3, 20, 9)))}
		for _, p := range Burndown(sprint, issues, schema.PointsUnit) {
			assert.Equal(t, 2.0, p.Remaining)
		}
	})

	t.Run("remaining never increases", func(t *testing.T) {
		issues := []schema.Issue{
			member("A-1", "Done", ptr(3.0), sprint, "", ptr(at(2025, 3, 4, 9))),
			member("A-2", "Done", ptr(2.0), sprint, "", ptr(at(2025, 3, 4, 18))),
			member("A-3", "Done", ptr(1.0), sprint, "", ptr(at(2025, 3, 7, 9))),
		}
		points := Burndown(sprint, issues, schema.PointsUnit)
		require.Len(t, points, 5)
		assert.Equal(t, 6.0, points[0].Remaining)
		for i := 1; i < len(points); i++ {
			assert.LessOrEqual(t, points[i].Remaining, points[i-1].Remaining)
		}
		assert.Equal(t, 0.0, points[4].Remaining)
	})
}

func TestAnalyzeSprintCountUnit(t *testing.T) {
	sprint := schema.Sprint{ID: 1, StartDate: day(2025, 3, 3), EndDate: day(2025, 3, 7)}
	other := schema.Sprint{ID: 2, StartDate: day(2025, 3, 10), EndDate: day(2025, 3, 14)}
	issues := []schema.Issue{
		member("A-1", "Done", ptr(5.0), sprint, "u1", ptr(at(2025, 3, 4, 9))),
		member("A-2", "To Do", nil, sprint, "u2", nil),
		member("A-3", "To Do", ptr(8.0), sprint, "u1", nil),
		member("B-1", "Done", ptr(2.0), other, "u1", nil),
		newIssue("C-1", "Done", day(2025, 3, 3)), // no sprint
	}

	a := AnalyzeSprint(1, []schema.Sprint{sprint, other}, issues, schema.CountUnit)
	require.NotNil(t, a)
	assert.Equal(t, 3.0, a.Committed)
	assert.Equal(t, 1.0, a.Completed)
	assert.Equal(t, map[string]int{"Done": 1, "To Do": 2}, a.StatusDistribution)

	p := AnalyzeSprint(1, []schema.Sprint{sprint, other}, issues, schema.PointsUnit)
	assert.Equal(t, 13.0, p.Committed)
	assert.Equal(t, 5.0, p.Completed)
}

func TestAssigneeBurndown(t *testing.T) {
	sprint := schema.Sprint{ID: 1, StartDate: day(2025, 3, 3), EndDate: day(2025, 3, 5)}
	issues := []schema.Issue{
		member("A-1", "Done", ptr(5.0), sprint, "u1", ptr(at(2025, 3, 4, 9))),
		member("A-2", "To Do", ptr(3.0), sprint, "u2", nil),
		member("A-3", "To Do", ptr(1.0), sprint, "u1", nil),
	}

	points := AssigneeBurndown(sprint, issues, "u1", schema.PointsUnit)
	require.Len(t, points, 3)
	assert.Equal(t, 6.0, points[0].Remaining)
	assert.Equal(t, 6.0, points[0].Ideal)
	assert.Equal(t, 1.0, points[1].Remaining)
	assert.Equal(t, 0.0, points[2].Ideal)

	assert.Empty(t, AssigneeBurndown(sprint, issues, "nobody", schema.PointsUnit))
}

func TestAnalyzeSprintDemo(t *testing.T) {
	now := at(2025, 6, 15, 12)
	snap := snapshot.Demo(now)

	a := AnalyzeSprint(3, snap.Sprints, snap.Issues, schema.PointsUnit)
	require.NotNil(t, a)
	assert.Equal(t, 8.0, a.Committed) // PHX-3 (3) + PHX-4 (5)
	assert.Equal(t, 0.0, a.Completed)
	assert.Len(t, a.Burndown, 14)

	a = AnalyzeSprint(4, snap.Sprints, snap.Issues, schema.PointsUnit)
	require.NotNil(t, a)
	assert.Equal(t, 13.0, a.Committed)
	assert.Equal(t, 13.0, a.Completed)
	// NOA-1 resolved 8 days ago, 12 days into the sprint
	assert.Equal(t, 13.0, a.Burndown[11].Remaining)
	assert.Equal(t, 0.0, a.Burndown[12].Remaining)
}
