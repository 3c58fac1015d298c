package core

import (
	"sort"

	"github.com/huangsam/sprintlens/schema"
)

// HistoricalVelocity sums the Done members of every closed sprint.
// Points are ordered by sprint name.
func HistoricalVelocity(sprints []schema.Sprint, issues []schema.Issue, unit schema.EstimationUnit) []schema.VelocityPoint {
	var points []schema.VelocityPoint
	for _, sprint := range sprints {
		if sprint.State != schema.SprintClosed {
			continue
		}
		completed := 0.0
		for _, issue := range SprintMembers(sprint.ID, issues) {
			if issue.Fields.Status.Name == schema.StatusDone {
				completed += contribution(&issue, unit)
			}
		}
		points = append(points, schema.VelocityPoint{
			SprintID:   sprint.ID,
			SprintName: sprint.Name,
			Completed:  completed,
		})
	}
	// Byte order, so "Zeta" sorts before "alpha".
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].SprintName < points[j].SprintName
	})
	return points
}

// AverageVelocity is the mean completed amount, or 0 for an empty series.
func AverageVelocity(points []schema.VelocityPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range points {
		total += p.Completed
	}
	return total / float64(len(points))
}
