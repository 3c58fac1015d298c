package schema_test

import (
	"testing"
	"time"

	"github.com/huangsam/sprintlens/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetVarianceLabel(t *testing.T) {
	tests := []struct {
		name     string
		variance float64
		expected string
	}{
		{"Well over", 4.0, "Over"},
		{"Just over", 0.51, "Over"},
		{"Upper edge", 0.5, "On Track"},
		{"Zero", 0.0, "On Track"},
		{"Lower edge", -0.5, "On Track"},
		{"Just under", -0.51, "Under"},
		{"Well under", -12.0, "Under"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.GetVarianceLabel(tt.variance))
		})
	}
}

func TestSummarizeIssue(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	resolved := created.Add(48 * time.Hour)

	t.Run("assigned and resolved", func(t *testing.T) {
		issue := schema.Issue{
			Key: "PHX-1",
			Fields: schema.IssueFields{
				Summary:        "Login page",
				IssueType:      schema.NamedRef{Name: "Story"},
				Status:         schema.NamedRef{Name: "Done"},
				Priority:       schema.NamedRef{Name: "High"},
				Assignee:       &schema.User{AccountID: "u2", DisplayName: "Bob Williams"},
				Created:        created,
				ResolutionDate: &resolved,
			},
		}
		s := schema.SummarizeIssue(issue)
		assert.Equal(t, "PHX-1", s.Key)
		assert.Equal(t, "Story", s.Type)
		assert.Equal(t, "Done", s.Status)
		assert.Equal(t, "High", s.Priority)
		assert.Equal(t, "Bob Williams", s.Assignee)
		assert.Equal(t, &resolved, s.Resolved)
	})

	t.Run("unassigned", func(t *testing.T) {
		s := schema.SummarizeIssue(schema.Issue{Key: "PHX-5"})
		assert.Empty(t, s.Assignee)
		assert.Nil(t, s.Resolved)
	})
}
