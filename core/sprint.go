package core

import (
	"github.com/huangsam/sprintlens/schema"
)

// contribution is the amount one issue adds to sprint sums.
func contribution(issue *schema.Issue, unit schema.EstimationUnit) float64 {
	if unit == schema.CountUnit {
		return 1
	}
	if issue.Fields.StoryPoints == nil {
		return 0
	}
	return *issue.Fields.StoryPoints
}

// SprintMembers returns the issues that belong to the sprint, in input order.
func SprintMembers(sprintID int, issues []schema.Issue) []schema.Issue {
	var members []schema.Issue
	for i := range issues {
		if issues[i].InSprint(sprintID) {
			members = append(members, issues[i])
		}
	}
	return members
}

func committedOf(members []schema.Issue, unit schema.EstimationUnit) float64 {
	total := 0.0
	for i := range members {
		total += contribution(&members[i], unit)
	}
	return total
}

// AnalyzeSprint computes committed and completed amounts, the raw status
// distribution and the burndown of one sprint. It returns nil when the
// sprint id is unknown.
func AnalyzeSprint(sprintID int, sprints []schema.Sprint, issues []schema.Issue, unit schema.EstimationUnit) *schema.SprintAnalysis {
	var sprint *schema.Sprint
	for i := range sprints {
		if sprints[i].ID == sprintID {
			sprint = &sprints[i]
			break
		}
	}
	if sprint == nil {
		return nil
	}

	members := SprintMembers(sprintID, issues)
	analysis := &schema.SprintAnalysis{
		Sprint:             *sprint,
		Unit:               unit,
		StatusDistribution: make(map[string]int),
	}
	for i := range members {
		c := contribution(&members[i], unit)
		analysis.Committed += c
		status := members[i].Fields.Status.Name
		if status == schema.StatusDone {
			analysis.Completed += c
		}
		analysis.StatusDistribution[status]++
	}
	analysis.Burndown = Burndown(*sprint, members, unit)
	return analysis
}

// AssigneeBurndown is Burndown restricted to members assigned to accountID.
func AssigneeBurndown(sprint schema.Sprint, issues []schema.Issue, accountID string, unit schema.EstimationUnit) []schema.BurndownPoint {
	var subset []schema.Issue
	for _, issue := range SprintMembers(sprint.ID, issues) {
		if issue.AssigneeID() == accountID {
			subset = append(subset, issue)
		}
	}
	return Burndown(sprint, subset, unit)
}

// Burndown builds one point per calendar day of the sprint. Ideal falls
// linearly from committed to zero and Remaining drops on the day each member
// was resolved. Day boundaries follow the location of the sprint start.
func Burndown(sprint schema.Sprint, members []schema.Issue, unit schema.EstimationUnit) []schema.BurndownPoint {
	committed := committedOf(members, unit)
	if committed <= 0 {
		return nil
	}
	loc := sprint.StartDate.Location()
	start := dayIn(sprint.StartDate, loc)
	end := dayIn(sprint.EndDate, loc)
	if start.After(end) {
		return nil
	}

	resolvedOn := make(map[string]float64)
	for i := range members {
		if rd := members[i].Fields.ResolutionDate; rd != nil {
			resolvedOn[dayKey(dayIn(*rd, loc))] += contribution(&members[i], unit)
		}
	}

	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		n++
	}

	points := make([]schema.BurndownPoint, 0, n)
	remaining := committed
	i := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		ideal := committed
		if n > 1 {
			ideal = committed - committed/float64(n-1)*float64(i)
		}
		remaining -= resolvedOn[dayKey(d)]
		points = append(points, schema.BurndownPoint{Date: d, Ideal: ideal, Remaining: remaining})
		i++
	}
	return points
}
