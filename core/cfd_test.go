package core

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/sprintlens/internal/snapshot"
	"github.com/huangsam/sprintlens/schema"
)

// refilterCfd recomputes every day from scratch with StatusAsOf.
func refilterCfd(issues []schema.Issue, windowEnd time.Time, days int) []schema.CfdPoint {
	start, end, ok := CfdWindow(issues, windowEnd, days)
	if !ok {
		return nil
	}
	var points []schema.CfdPoint
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		p := schema.CfdPoint{Date: d}
		for i := range issues {
			if b, ok := BucketAsOf(&issues[i], d); ok {
				p.Add(b)
			}
		}
		points = append(points, p)
	}
	return points
}

func TestBuildCfdEmpty(t *testing.T) {
	assert.Empty(t, BuildCfd(nil, day(2025, 3, 1), DefaultCfdDays))

	// window ends before anything was created
	issues := []schema.Issue{newIssue("X-1", "To Do", at(2025, 3, 10, 9))}
	assert.Empty(t, BuildCfd(issues, day(2025, 3, 1), DefaultCfdDays))
}

func TestBuildCfdWindow(t *testing.T) {
	issues := []schema.Issue{
		newIssue("X-1", "Done", at(2025, 1, 1, 9), transition(at(2025, 3, 5, 9), "To Do", "Done")),
		newIssue("X-2", "To Do", at(2025, 3, 3, 9)),
	}

	tests := []struct {
		name      string
		end       time.Time
		days      int
		wantLen   int
		wantStart time.Time
	}{
		{"full window", at(2025, 3, 10, 15), 30, 31, day(2025, 2, 8)},
		{"single day", at(2025, 3, 10, 15), 0, 1, day(2025, 3, 10)},
		{"clamped to earliest creation", at(2025, 1, 5, 15), 30, 5, day(2025, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := BuildCfd(issues, tt.end, tt.days)
			require.Len(t, points, tt.wantLen)
			assert.Equal(t, tt.wantStart, points[0].Date)
			assert.Equal(t, dayIn(tt.end, time.UTC), points[len(points)-1].Date)
			for i := 1; i < len(points); i++ {
				assert.True(t, points[i].Date.After(points[i-1].Date))
			}
		})
	}
}

func TestBuildCfdCounts(t *testing.T) {
	issues := []schema.Issue{
		newIssue("X-1", "Done", at(2025, 3, 1, 9),
			transition(at(2025, 3, 4, 17), "In Progress", "Done"),
			transition(at(2025, 3, 2, 11), "To Do", "In Progress"),
		),
		newIssue("X-2", "In Progress", at(2025, 3, 3, 9)),
	}

	points := BuildCfd(issues, at(2025, 3, 5, 12), 4)
	require.Len(t, points, 5)

	want := []schema.CfdPoint{
		{Date: day(2025, 3, 1), ToDo: 0, InProgress: 0, Done: 1}, // creation day uses stored Done
		{Date: day(2025, 3, 2), ToDo: 0, InProgress: 1, Done: 0},
		{Date: day(2025, 3, 3), ToDo: 0, InProgress: 2, Done: 0}, // X-2 created in progress
		{Date: day(2025, 3, 4), ToDo: 1, InProgress: 0, Done: 1}, // X-2 back to default To Do
		{Date: day(2025, 3, 5), ToDo: 1, InProgress: 0, Done: 1},
	}
	assert.Equal(t, want, points)
}

func TestBuildCfdSkipsEmptyTargetStatus(t *testing.T) {
	issues := []schema.Issue{
		newIssue("X-1", "In Review", at(2025, 3, 1, 9), transition(at(2025, 3, 2, 10), "To Do", "")),
	}

	points := BuildCfd(issues, at(2025, 3, 3, 12), 2)
	want := []schema.CfdPoint{
		{Date: day(2025, 3, 1), InProgress: 1}, // creation day uses stored status
		{Date: day(2025, 3, 2), ToDo: 1},
		{Date: day(2025, 3, 3), ToDo: 1},
	}
	assert.Equal(t, want, points)
}

func TestBuildCfdMatchesRefilter(t *testing.T) {
	t.Run("demo dataset", func(t *testing.T) {
		now := at(2025, 6, 15, 12)
		issues := snapshot.Demo(now).Issues
		for _, days := range []int{0, 7, 30, 60} {
			assert.Equal(t, refilterCfd(issues, now, days), BuildCfd(issues, now, days), "days=%d", days)
		}
	})

	t.Run("random histories", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(7, 11))
		statuses := []string{"To Do", "Backlog", "In Progress", "In Review", "Done", "Closed", "Blocked"}
		base := at(2025, 1, 1, 0)

		var issues []schema.Issue
		for i := range 60 {
			created := base.Add(time.Duration(rng.IntN(40*24)) * time.Hour)
			var hs []schema.ChangelogHistory
			for range rng.IntN(6) {
				when := created.Add(time.Duration(rng.IntN(30*24)) * time.Hour)
				hs = append(hs, transition(when, "", statuses[rng.IntN(len(statuses))]))
			}
			issue := newIssue("R-"+string(rune('A'+i%26)), statuses[rng.IntN(len(statuses))], created, hs...)
			issues = append(issues, issue)
		}

		end := base.AddDate(0, 0, 75)
		points := BuildCfd(issues, end, 90)
		assert.Equal(t, refilterCfd(issues, end, 90), points)

		for _, p := range points {
			existing := 0
			for i := range issues {
				if _, ok := StatusAsOf(&issues[i], p.Date); ok {
					existing++
				}
			}
			assert.Equal(t, existing, p.Total(), "day %s", p.Date.Format(time.DateOnly))
		}
	})
}

func BenchmarkBuildCfd(b *testing.B) {
	now := at(2025, 6, 15, 12)
	issues := snapshot.Demo(now).Issues
	for b.Loop() {
		BuildCfd(issues, now, 90)
	}
}
