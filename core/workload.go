package core

import "github.com/huangsam/sprintlens/schema"

const secondsPerHour = 3600.0

// WorkloadByUser compares estimated and logged hours per user.
// Rows follow the order of users.
func WorkloadByUser(users []schema.User, issues []schema.Issue) []schema.WorkloadRow {
	rows := make([]schema.WorkloadRow, 0, len(users))
	for _, user := range users {
		var est, spent int64
		count := 0
		for i := range issues {
			if issues[i].AssigneeID() != user.AccountID || user.AccountID == "" {
				continue
			}
			count++
			if v := issues[i].Fields.TimeOriginalEstimate; v != nil {
				est += *v
			}
			if v := issues[i].Fields.TimeSpent; v != nil {
				spent += *v
			}
		}
		estimated := float64(est) / secondsPerHour
		logged := float64(spent) / secondsPerHour
		rows = append(rows, schema.WorkloadRow{
			AccountID:      user.AccountID,
			DisplayName:    user.DisplayName,
			EstimatedHours: estimated,
			LoggedHours:    logged,
			Variance:       logged - estimated,
			IssueCount:     count,
		})
	}
	return rows
}
