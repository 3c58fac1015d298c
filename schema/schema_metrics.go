package schema

import "time"

// CfdPoint is one day of the cumulative flow diagram.
type CfdPoint struct {
	Date       time.Time `json:"date"`
	ToDo       int       `json:"todo"`
	InProgress int       `json:"inProgress"`
	Done       int       `json:"done"`
}

// Total returns the number of issues that existed on the day.
func (p CfdPoint) Total() int {
	return p.ToDo + p.InProgress + p.Done
}

// Add increments the counter of the given bucket.
func (p *CfdPoint) Add(b StatusBucket) {
	switch b {
	case BucketToDo:
		p.ToDo++
	case BucketDone:
		p.Done++
	default:
		p.InProgress++
	}
}

// CfdResult is the cumulative flow over an inclusive day window.
type CfdResult struct {
	Start  time.Time  `json:"start"`
	End    time.Time  `json:"end"`
	Days   int        `json:"days"`
	Points []CfdPoint `json:"points"`
}

// BurndownPoint is one calendar day of a burndown series.
type BurndownPoint struct {
	Date      time.Time `json:"date"`
	Ideal     float64   `json:"ideal"`
	Remaining float64   `json:"remaining"`
}

// SprintAnalysis is the derived view of one sprint.
type SprintAnalysis struct {
	Sprint             Sprint          `json:"sprint"`
	Unit               EstimationUnit  `json:"unit"`
	Committed          float64         `json:"committed"`
	Completed          float64         `json:"completed"`
	StatusDistribution map[string]int  `json:"statusDistribution"`
	Burndown           []BurndownPoint `json:"burndown"`
	Assignee           string          `json:"assignee,omitempty"`
	AssigneeBurndown   []BurndownPoint `json:"assigneeBurndown,omitempty"`
}

// VelocityPoint is the completed amount of one closed sprint.
type VelocityPoint struct {
	SprintID   int     `json:"sprintId"`
	SprintName string  `json:"sprintName"`
	Completed  float64 `json:"completed"`
}

// VelocityResult wraps the velocity series with the unit it was measured in.
type VelocityResult struct {
	Unit    EstimationUnit  `json:"unit"`
	Points  []VelocityPoint `json:"points"`
	Average float64         `json:"average"`
}

// WorkloadRow is estimated vs logged hours for one user.
type WorkloadRow struct {
	AccountID      string  `json:"accountId"`
	DisplayName    string  `json:"displayName"`
	EstimatedHours float64 `json:"estimatedHours"`
	LoggedHours    float64 `json:"loggedHours"`
	Variance       float64 `json:"variance"`
	IssueCount     int     `json:"issueCount"`
}

// CountEntry is a named count. Lists keep first-seen order.
type CountEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// IssueSummary is the compact row used in recent-issue lists.
type IssueSummary struct {
	Key      string     `json:"key"`
	Summary  string     `json:"summary"`
	Type     string     `json:"type"`
	Status   string     `json:"status"`
	Priority string     `json:"priority"`
	Assignee string     `json:"assignee,omitempty"`
	Created  time.Time  `json:"created"`
	Resolved *time.Time `json:"resolved,omitempty"`
}

// OverviewKPIs are the headline numbers of the overview.
type OverviewKPIs struct {
	TotalIssues       int     `json:"totalIssues"`
	Completed         int     `json:"completed"`
	InProgress        int     `json:"inProgress"`
	ToDo              int     `json:"todo"`
	CompletionRate    float64 `json:"completionRate"`
	AvgResolutionDays float64 `json:"avgResolutionDays"`
}

// OverviewResult is the project-wide summary view.
type OverviewResult struct {
	KPIs     OverviewKPIs   `json:"kpis"`
	ByStatus []CountEntry   `json:"byStatus"`
	ByType   []CountEntry   `json:"byType"`
	Recent   []IssueSummary `json:"recent"`
}

// ProjectSummary is one row of the project list.
type ProjectSummary struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Type string `json:"type"`
	Lead string `json:"lead"`
}

// HelicopterResult is the portfolio view across projects.
type HelicopterResult struct {
	TotalProjects      int              `json:"totalProjects"`
	ByType             []CountEntry     `json:"byType"`
	ByLead             []CountEntry     `json:"byLead"`
	Projects           []ProjectSummary `json:"projects"`
	AvgProjectsPerLead float64          `json:"avgProjectsPerLead"`
}

// DashboardResult is the personal view of one user.
type DashboardResult struct {
	User            User           `json:"user"`
	CompletedCount  int            `json:"completedCount"`
	HoursLogged     float64        `json:"hoursLogged"`
	Profile         HRProfile      `json:"profile"`
	WeeklyHours     []DayHours     `json:"weeklyHours"`
	RecentCompleted []IssueSummary `json:"recentCompleted"`
}

// SuggestionResult is the output of the configuration assistant.
type SuggestionResult struct {
	Summary     string `json:"summary"`
	Suggestions string `json:"suggestions"`
}
