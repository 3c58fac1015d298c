// Package suggest builds the tracker usage summary and asks a language model
// for configuration suggestions.
package suggest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/huangsam/sprintlens/schema"
)

// MinSummaryLength is the shortest summary accepted.
const MinSummaryLength = 10

// GenericErrorMessage is what users see when the model call fails.
const GenericErrorMessage = "An unexpected error occurred. Please try again."

const systemPrompt = "You are an expert Jira administrator specializing in optimizing Jira configurations."

// FieldError is a validation failure tied to one input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// ValidateSummary rejects summaries shorter than MinSummaryLength characters.
func ValidateSummary(summary string) error {
	if utf8.RuneCountInString(summary) < MinSummaryLength {
		return &FieldError{
			Field:   "summary",
			Message: fmt.Sprintf("Summary must be at least %d characters long.", MinSummaryLength),
		}
	}
	return nil
}

// BuildDefaultSummary describes the project mix and issue type distribution.
// Issue types are listed in first-seen order.
func BuildDefaultSummary(projects []schema.Project, issues []schema.Issue) string {
	software := 0
	for _, p := range projects {
		if p.ProjectTypeKey == schema.SoftwareProject {
			software++
		}
	}
	business := len(projects) - software

	var order []string
	counts := make(map[string]int)
	for _, issue := range issues {
		name := issue.Fields.IssueType.Name
		if _, ok := counts[name]; !ok {
			order = append(order, name)
		}
		counts[name]++
	}
	parts := make([]string, 0, len(order))
	for _, name := range order {
		parts = append(parts, fmt.Sprintf("%d %s(s)", counts[name], name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "We have %d projects in total: %d software and %d business.\n", len(projects), software, business)
	fmt.Fprintf(&b, "Our issue distribution is: %s.\n", strings.Join(parts, ", "))
	b.WriteString("We use story points for estimation in software projects.\n")
	b.WriteString("Analyze our setup for potential improvements in workflow, custom fields, and issue type usage.")
	return b.String()
}

func userPrompt(summary string) string {
	return "You will use the following summary of Jira data to suggest improvements to the Jira configuration.\n\n" +
		"Summary: " + summary + "\n\n" +
		"Based on this information, provide a list of specific, actionable suggestions for improving the Jira configuration. " +
		"Consider suggesting new issue types, identifying underutilized custom fields, and recommending changes to workflow.\n\n" +
		"Suggestions:"
}

// BuildPrompt renders the full prompt sent for a summary.
func BuildPrompt(summary string) string {
	return systemPrompt + "\n\n" + userPrompt(summary)
}
