// Package schema has the snapshot entities and derived models for all parts of sprintlens.
package schema

import "time"

// User is a tracker account.
type User struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// Project groups issues under a key.
type Project struct {
	ID             string      `json:"id"`
	Key            string      `json:"key"`
	Name           string      `json:"name"`
	ProjectTypeKey ProjectType `json:"projectTypeKey"`
	Lead           User        `json:"lead"`
}

// Sprint is a time-boxed iteration. StartDate <= EndDate is assumed.
type Sprint struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	State        SprintState `json:"state"`
	StartDate    time.Time   `json:"startDate"`
	EndDate      time.Time   `json:"endDate"`
	CompleteDate *time.Time  `json:"completeDate,omitempty"`
}

// NamedRef is the id/name pair used for issue type, status and priority.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProjectRef is the project reference embedded in an issue.
type ProjectRef struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// ChangeItem is a single field transition inside a changelog entry.
type ChangeItem struct {
	Field      string `json:"field"`
	FromString string `json:"fromString"`
	ToString   string `json:"toString"`
}

// ChangelogHistory is one transition event. Histories are not sorted.
type ChangelogHistory struct {
	ID      string       `json:"id"`
	Author  User         `json:"author"`
	Created time.Time    `json:"created"`
	Items   []ChangeItem `json:"items"`
}

// Changelog wraps the histories of an issue.
type Changelog struct {
	Histories []ChangelogHistory `json:"histories"`
}

// IssueFields holds the tracker fields of an issue.
type IssueFields struct {
	Summary              string     `json:"summary"`
	Project              ProjectRef `json:"project"`
	IssueType            NamedRef   `json:"issuetype"`
	Status               NamedRef   `json:"status"`
	Priority             NamedRef   `json:"priority"`
	Creator              User       `json:"creator"`
	Reporter             User       `json:"reporter"`
	Assignee             *User      `json:"assignee"`
	Created              time.Time  `json:"created"`
	Updated              time.Time  `json:"updated"`
	ResolutionDate       *time.Time `json:"resolutiondate"`
	StoryPoints          *float64   `json:"customfield_10004"`
	Sprints              []Sprint   `json:"customfield_10007"`
	TimeOriginalEstimate *int64     `json:"timeoriginalestimate"`
	TimeSpent            *int64     `json:"timespent"`
}

// Issue is a single work item with its changelog.
type Issue struct {
	ID        string      `json:"id"`
	Key       string      `json:"key"`
	Fields    IssueFields `json:"fields"`
	Changelog *Changelog  `json:"changelog,omitempty"`
}

// InSprint reports whether the issue is a member of the given sprint.
func (i *Issue) InSprint(sprintID int) bool {
	for _, s := range i.Fields.Sprints {
		if s.ID == sprintID {
			return true
		}
	}
	return false
}

// AssigneeID returns the assignee account id or "" when unassigned.
func (i *Issue) AssigneeID() string {
	if i.Fields.Assignee == nil {
		return ""
	}
	return i.Fields.Assignee.AccountID
}

// StatusHistories returns the changelog entries that contain a status item.
func (i *Issue) StatusHistories() []ChangelogHistory {
	if i.Changelog == nil {
		return nil
	}
	var out []ChangelogHistory
	for _, h := range i.Changelog.Histories {
		if _, ok := h.StatusItem(); ok {
			out = append(out, h)
		}
	}
	return out
}

// StatusItem returns the first status item of the entry that names a target
// status. Items with an empty target are malformed and skipped.
func (h ChangelogHistory) StatusItem() (ChangeItem, bool) {
	for _, it := range h.Items {
		if it.Field == StatusField && it.ToString != "" {
			return it, true
		}
	}
	return ChangeItem{}, false
}

// HRProfile is the per-user leave and capacity record.
type HRProfile struct {
	VacationDays  int `json:"vacationDays"`
	SickDaysTaken int `json:"sickDaysTaken"`
	TargetHours   int `json:"targetHours"`
}

// DefaultHRProfile is used for users without an HR record.
var DefaultHRProfile = HRProfile{VacationDays: 0, SickDaysTaken: 0, TargetHours: 40}

// DayHours is logged vs target hours for one weekday.
type DayHours struct {
	Day    string  `json:"day"`
	Logged float64 `json:"logged"`
	Target float64 `json:"target"`
}

// HRData carries the people data that lives outside the tracker.
type HRData struct {
	Profiles    map[string]HRProfile  `json:"profiles,omitempty"`
	WeeklyHours map[string][]DayHours `json:"weeklyHours,omitempty"`
}

// Snapshot is the immutable input of every aggregation.
type Snapshot struct {
	Users    []User    `json:"users"`
	Projects []Project `json:"projects"`
	Sprints  []Sprint  `json:"sprints"`
	Issues   []Issue   `json:"issues"`
	HR       HRData    `json:"hr"`
}

// FindUser returns the user with the given account id.
func (s *Snapshot) FindUser(accountID string) (User, bool) {
	for _, u := range s.Users {
		if u.AccountID == accountID {
			return u, true
		}
	}
	return User{}, false
}

// FindSprint returns the sprint with the given id.
func (s *Snapshot) FindSprint(id int) (Sprint, bool) {
	for _, sp := range s.Sprints {
		if sp.ID == id {
			return sp, true
		}
	}
	return Sprint{}, false
}
