package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huangsam/sprintlens/internal/snapshot"
	"github.com/huangsam/sprintlens/schema"
)

func TestHistoricalVelocity(t *testing.T) {
	snap := snapshot.Demo(at(2025, 6, 15, 12))

	tests := []struct {
		name string
		unit schema.EstimationUnit
		want []schema.VelocityPoint
	}{
		{
			name: "points",
			unit: schema.PointsUnit,
			want: []schema.VelocityPoint{
				{SprintID: 4, SprintName: "NOA Sprint 1", Completed: 13},
				{SprintID: 1, SprintName: "PHX Sprint 1", Completed: 5},
				{SprintID: 2, SprintName: "PHX Sprint 2", Completed: 8},
			},
		},
		{
			name: "count",
			unit: schema.CountUnit,
			want: []schema.VelocityPoint{
				{SprintID: 4, SprintName: "NOA Sprint 1", Completed: 1},
				{SprintID: 1, SprintName: "PHX Sprint 1", Completed: 1},
				{SprintID: 2, SprintName: "PHX Sprint 2", Completed: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HistoricalVelocity(snap.Sprints, snap.Issues, tt.unit))
		})
	}
}

func TestHistoricalVelocityOmitsOpenSprints(t *testing.T) {
	sprints := []schema.Sprint{
		{ID: 1, Name: "B", State: schema.SprintActive},
		{ID: 2, Name: "A", State: schema.SprintFuture},
		{ID: 3, Name: "C", State: schema.SprintClosed},
	}
	points := HistoricalVelocity(sprints, nil, schema.PointsUnit)
	assert.Equal(t, []schema.VelocityPoint{{SprintID: 3, SprintName: "C", Completed: 0}}, points)
}

func TestHistoricalVelocityNameOrder(t *testing.T) {
	sprints := []schema.Sprint{
		{ID: 1, Name: "alpha", State: schema.SprintClosed},
		{ID: 2, Name: "Gamma", State: schema.SprintClosed},
		{ID: 3, Name: "Beta", State: schema.SprintClosed},
		{ID: 4, Name: "Beta", State: schema.SprintClosed},
	}

	points := HistoricalVelocity(sprints, nil, schema.PointsUnit)

	var ids []int
	for _, p := range points {
		ids = append(ids, p.SprintID)
	}
	// uppercase before lowercase; equal names keep input order
	assert.Equal(t, []int{3, 4, 2, 1}, ids)
}

func TestAverageVelocity(t *testing.T) {
	assert.Equal(t, 0.0, AverageVelocity(nil))
	assert.InDelta(t, 26.0/3, AverageVelocity([]schema.VelocityPoint{{Completed: 13}, {Completed: 5}, {Completed: 8}}), 1e-9)
}
