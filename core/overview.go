package core

import (
	"sort"
	"strings"

	"github.com/huangsam/sprintlens/schema"
)

const (
	recentIssueLimit     = 10
	recentCompletedLimit = 5
)

// counter keeps counts in first-seen order.
type counter struct {
	index   map[string]int
	entries []schema.CountEntry
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(name string) {
	if i, ok := c.index[name]; ok {
		c.entries[i].Count++
		return
	}
	c.index[name] = len(c.entries)
	c.entries = append(c.entries, schema.CountEntry{Name: name, Count: 1})
}

func (c *counter) list() []schema.CountEntry {
	if c.entries == nil {
		return []schema.CountEntry{}
	}
	return c.entries
}

// BuildOverview summarizes the issue set: KPIs, counts by status and type,
// and the most recently created issues.
func BuildOverview(issues []schema.Issue) schema.OverviewResult {
	var kpis schema.OverviewKPIs
	kpis.TotalIssues = len(issues)

	byStatus, byType := newCounter(), newCounter()
	var resolvedDays, resolvedCount int
	for i := range issues {
		f := &issues[i].Fields
		switch f.Status.Name {
		case schema.StatusDone:
			kpis.Completed++
		case schema.StatusInProgress:
			kpis.InProgress++
		case schema.StatusToDo, schema.StatusBacklog:
			kpis.ToDo++
		}
		byStatus.add(f.Status.Name)
		byType.add(f.IssueType.Name)

		if f.ResolutionDate != nil {
			resolvedDays += int(f.ResolutionDate.Sub(f.Created).Hours() / 24)
			resolvedCount++
		}
	}
	if kpis.TotalIssues > 0 {
		kpis.CompletionRate = float64(kpis.Completed) / float64(kpis.TotalIssues) * 100
	}
	if resolvedCount > 0 {
		kpis.AvgResolutionDays = float64(resolvedDays) / float64(resolvedCount)
	}

	sorted := make([]schema.Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Fields.Created.After(sorted[j].Fields.Created)
	})
	recent := make([]schema.IssueSummary, 0, recentIssueLimit)
	for i := 0; i < len(sorted) && i < recentIssueLimit; i++ {
		recent = append(recent, schema.SummarizeIssue(sorted[i]))
	}

	return schema.OverviewResult{
		KPIs:     kpis,
		ByStatus: byStatus.list(),
		ByType:   byType.list(),
		Recent:   recent,
	}
}

// capitalize upper-cases the first letter of a project type key.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// BuildHelicopterView summarizes the project portfolio.
func BuildHelicopterView(projects []schema.Project) schema.HelicopterResult {
	byType, byLead := newCounter(), newCounter()
	list := make([]schema.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		typ := capitalize(string(p.ProjectTypeKey))
		byType.add(typ)
		byLead.add(p.Lead.DisplayName)
		list = append(list, schema.ProjectSummary{
			Key:  p.Key,
			Name: p.Name,
			Type: typ,
			Lead: p.Lead.DisplayName,
		})
	}

	result := schema.HelicopterResult{
		TotalProjects: len(projects),
		ByType:        byType.list(),
		ByLead:        byLead.list(),
		Projects:      list,
	}
	if leads := len(result.ByLead); leads > 0 {
		result.AvgProjectsPerLead = float64(len(projects)) / float64(leads)
	}
	return result
}

// BuildDashboard is the personal view of one user. Users without an HR
// record get the default profile and no weekly hours.
func BuildDashboard(user schema.User, issues []schema.Issue, hr schema.HRData) schema.DashboardResult {
	result := schema.DashboardResult{
		User:            user,
		Profile:         schema.DefaultHRProfile,
		WeeklyHours:     []schema.DayHours{},
		RecentCompleted: []schema.IssueSummary{},
	}
	if p, ok := hr.Profiles[user.AccountID]; ok {
		result.Profile = p
	}
	if w, ok := hr.WeeklyHours[user.AccountID]; ok {
		result.WeeklyHours = w
	}

	var spent int64
	var resolved []schema.Issue
	for i := range issues {
		if issues[i].AssigneeID() != user.AccountID {
			continue
		}
		if v := issues[i].Fields.TimeSpent; v != nil {
			spent += *v
		}
		if issues[i].Fields.Status.Name != schema.StatusDone {
			continue
		}
		result.CompletedCount++
		if issues[i].Fields.ResolutionDate != nil {
			resolved = append(resolved, issues[i])
		}
	}
	result.HoursLogged = float64(spent) / secondsPerHour

	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].Fields.ResolutionDate.After(*resolved[j].Fields.ResolutionDate)
	})
	for i := 0; i < len(resolved) && i < recentCompletedLimit; i++ {
		result.RecentCompleted = append(result.RecentCompleted, schema.SummarizeIssue(resolved[i]))
	}
	return result
}
