package schema

// Variance labels for workload rows.
const (
	OverLabel    = "Over"
	UnderLabel   = "Under"
	OnTrackLabel = "On Track"
)

// GetVarianceLabel returns a plain label for a logged-minus-estimated variance in hours.
// Anything within half an hour either way counts as on track.
func GetVarianceLabel(variance float64) string {
	switch {
	case variance > 0.5:
		return OverLabel
	case variance < -0.5:
		return UnderLabel
	default:
		return OnTrackLabel
	}
}

// SummarizeIssue converts an issue into its compact list form.
func SummarizeIssue(i Issue) IssueSummary {
	s := IssueSummary{
		Key:      i.Key,
		Summary:  i.Fields.Summary,
		Type:     i.Fields.IssueType.Name,
		Status:   i.Fields.Status.Name,
		Priority: i.Fields.Priority.Name,
		Created:  i.Fields.Created,
		Resolved: i.Fields.ResolutionDate,
	}
	if i.Fields.Assignee != nil {
		s.Assignee = i.Fields.Assignee.DisplayName
	}
	return s
}
