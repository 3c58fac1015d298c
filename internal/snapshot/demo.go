package snapshot

import (
	"time"

	"github.com/huangsam/sprintlens/schema"
)

// Demo builds the sample workspace: four users, four projects, five sprints
// and ten issues, all dated relative to anchor.
func Demo(anchor time.Time) *schema.Snapshot {
	ago := func(days int) time.Time { return anchor.AddDate(0, 0, -days) }
	agoPtr := func(days int) *time.Time { t := ago(days); return &t }
	pts := func(v float64) *float64 { return &v }
	secs := func(v int64) *int64 { return &v }

	users := []schema.User{
		{AccountID: "u1", DisplayName: "Alice Johnson", AvatarURL: "https://placehold.co/48x48"},
		{AccountID: "u2", DisplayName: "Bob Williams", AvatarURL: "https://placehold.co/48x48"},
		{AccountID: "u3", DisplayName: "Charlie Brown", AvatarURL: "https://placehold.co/48x48"},
		{AccountID: "u4", DisplayName: "Diana Prince", AvatarURL: "https://placehold.co/48x48"},
	}
	alice, bob, charlie, diana := users[0], users[1], users[2], users[3]

	projects := []schema.Project{
		{ID: "p1", Key: "PHX", Name: "Project Phoenix", ProjectTypeKey: schema.SoftwareProject, Lead: alice},
		{ID: "p2", Key: "NOA", Name: "Operation Nova", ProjectTypeKey: schema.SoftwareProject, Lead: bob},
		{ID: "p3", Key: "BIZ", Name: "Business Onboarding", ProjectTypeKey: schema.BusinessProject, Lead: alice},
		{ID: "p4", Key: "HR", Name: "HR System Upgrade", ProjectTypeKey: schema.BusinessProject, Lead: diana},
	}
	ref := func(p schema.Project) schema.ProjectRef {
		return schema.ProjectRef{ID: p.ID, Key: p.Key, Name: p.Name}
	}

	sprints := []schema.Sprint{
		{ID: 1, Name: "PHX Sprint 1", State: schema.SprintClosed, StartDate: ago(40), EndDate: ago(26), CompleteDate: agoPtr(26)},
		{ID: 2, Name: "PHX Sprint 2", State: schema.SprintClosed, StartDate: ago(25), EndDate: ago(11), CompleteDate: agoPtr(11)},
		{ID: 3, Name: "PHX Sprint 3", State: schema.SprintActive, StartDate: ago(10), EndDate: ago(-3)},
		{ID: 4, Name: "NOA Sprint 1", State: schema.SprintClosed, StartDate: ago(20), EndDate: ago(6), CompleteDate: agoPtr(6)},
		{ID: 5, Name: "NOA Sprint 2", State: schema.SprintActive, StartDate: ago(5), EndDate: ago(-8)},
	}

	story := schema.NamedRef{ID: "it1", Name: schema.IssueTypeStory}
	bug := schema.NamedRef{ID: "it2", Name: schema.IssueTypeBug}
	task := schema.NamedRef{ID: "it3", Name: schema.IssueTypeTask}

	toDo := schema.NamedRef{ID: "s1", Name: schema.StatusToDo}
	inProgress := schema.NamedRef{ID: "s2", Name: schema.StatusInProgress}
	done := schema.NamedRef{ID: "s3", Name: schema.StatusDone}
	backlog := schema.NamedRef{ID: "s4", Name: schema.StatusBacklog}

	high := schema.NamedRef{ID: "pr1", Name: "High"}
	medium := schema.NamedRef{ID: "pr2", Name: "Medium"}
	low := schema.NamedRef{ID: "pr3", Name: "Low"}

	move := func(id string, author schema.User, days int, from, to string) schema.ChangelogHistory {
		return schema.ChangelogHistory{
			ID:      id,
			Author:  author,
			Created: ago(days),
			Items:   []schema.ChangeItem{{Field: schema.StatusField, FromString: from, ToString: to}},
		}
	}
	histories := func(h ...schema.ChangelogHistory) *schema.Changelog {
		if h == nil {
			h = []schema.ChangelogHistory{}
		}
		return &schema.Changelog{Histories: h}
	}
	assignee := func(u schema.User) *schema.User { return &u }

	issues := []schema.Issue{
		{
			ID: "1", Key: "PHX-1",
			Fields: schema.IssueFields{
				Summary: "Set up database schema", Project: ref(projects[0]),
				IssueType: story, Status: done, Priority: high,
				Creator: alice, Reporter: alice, Assignee: assignee(bob),
				Created: ago(38), Updated: ago(35), ResolutionDate: agoPtr(35),
				StoryPoints: pts(5), Sprints: []schema.Sprint{sprints[0]},
				TimeOriginalEstimate: secs(28800), TimeSpent: secs(30000),
			},
			Changelog: histories(
				move("ch1", bob, 37, schema.StatusToDo, schema.StatusInProgress),
				move("ch2", bob, 35, schema.StatusInProgress, schema.StatusDone),
			),
		},
		{
			ID: "2", Key: "PHX-2",
			Fields: schema.IssueFields{
				Summary: "User authentication API endpoint", Project: ref(projects[0]),
				IssueType: story, Status: done, Priority: high,
				Creator: alice, Reporter: alice, Assignee: assignee(charlie),
				Created: ago(24), Updated: ago(15), ResolutionDate: agoPtr(15),
				StoryPoints: pts(8), Sprints: []schema.Sprint{sprints[1]},
				TimeOriginalEstimate: secs(57600), TimeSpent: secs(60000),
			},
			Changelog: histories(
				move("ch3", charlie, 23, schema.StatusToDo, schema.StatusInProgress),
				move("ch4", charlie, 15, schema.StatusInProgress, schema.StatusDone),
			),
		},
		{
			ID: "3", Key: "PHX-3",
			Fields: schema.IssueFields{
				Summary: "UI button has incorrect color", Project: ref(projects[0]),
				IssueType: bug, Status: inProgress, Priority: medium,
				Creator: diana, Reporter: diana, Assignee: assignee(bob),
				Created: ago(8), Updated: ago(2),
				StoryPoints: pts(3), Sprints: []schema.Sprint{sprints[2]},
				TimeOriginalEstimate: secs(14400), TimeSpent: secs(7200),
			},
			Changelog: histories(
				move("ch5", bob, 7, schema.StatusToDo, schema.StatusInProgress),
			),
		},
		{
			ID: "4", Key: "PHX-4",
			Fields: schema.IssueFields{
				Summary: "Develop user profile page", Project: ref(projects[0]),
				IssueType: story, Status: toDo, Priority: medium,
				Creator: alice, Reporter: alice, Assignee: assignee(charlie),
				Created: ago(5), Updated: ago(5),
				StoryPoints: pts(5), Sprints: []schema.Sprint{sprints[2]},
				TimeOriginalEstimate: secs(28800),
			},
			Changelog: histories(),
		},
		{
			ID: "5", Key: "NOA-1",
			Fields: schema.IssueFields{
				Summary: "Integrate with third-party payment gateway", Project: ref(projects[1]),
				IssueType: task, Status: done, Priority: high,
				Creator: bob, Reporter: bob, Assignee: assignee(diana),
				Created: ago(18), Updated: ago(8), ResolutionDate: agoPtr(8),
				StoryPoints: pts(13), Sprints: []schema.Sprint{sprints[3]},
				TimeOriginalEstimate: secs(86400), TimeSpent: secs(90000),
			},
			Changelog: histories(
				move("ch6", diana, 15, schema.StatusBacklog, schema.StatusToDo),
				move("ch7", diana, 14, schema.StatusToDo, schema.StatusInProgress),
				move("ch8", diana, 8, schema.StatusInProgress, schema.StatusDone),
			),
		},
		{
			ID: "6", Key: "NOA-2",
			Fields: schema.IssueFields{
				Summary: "Documentation for API endpoints", Project: ref(projects[1]),
				IssueType: task, Status: inProgress, Priority: low,
				Creator: bob, Reporter: bob, Assignee: assignee(alice),
				Created: ago(4), Updated: ago(1),
				StoryPoints: pts(5), Sprints: []schema.Sprint{sprints[4]},
				TimeOriginalEstimate: secs(28800), TimeSpent: secs(10800),
			},
			Changelog: histories(
				move("ch9", alice, 3, schema.StatusToDo, schema.StatusInProgress),
			),
		},
		{
			ID: "7", Key: "BIZ-1",
			Fields: schema.IssueFields{
				Summary: "Draft Q3 marketing plan", Project: ref(projects[2]),
				IssueType: task, Status: done, Priority: medium,
				Creator: alice, Reporter: alice, Assignee: assignee(alice),
				Created: ago(20), Updated: ago(15), ResolutionDate: agoPtr(15),
				TimeOriginalEstimate: secs(43200), TimeSpent: secs(43200),
			},
			Changelog: histories(
				move("ch10", alice, 18, schema.StatusBacklog, schema.StatusInProgress),
				move("ch11", alice, 15, schema.StatusInProgress, schema.StatusDone),
			),
		},
		{
			ID: "8", Key: "HR-1",
			Fields: schema.IssueFields{
				Summary: "Interview candidates for engineering role", Project: ref(projects[3]),
				IssueType: task, Status: toDo, Priority: high,
				Creator: diana, Reporter: diana, Assignee: assignee(diana),
				Created: ago(2), Updated: ago(2),
			},
			Changelog: histories(),
		},
		{
			ID: "9", Key: "PHX-5",
			Fields: schema.IssueFields{
				Summary: "Refactor legacy code module", Project: ref(projects[0]),
				IssueType: task, Status: backlog, Priority: low,
				Creator: alice, Reporter: alice,
				Created: ago(50), Updated: ago(50),
				StoryPoints: pts(8),
			},
			Changelog: histories(),
		},
		{
			ID: "10", Key: "NOA-3",
			Fields: schema.IssueFields{
				Summary: "Login page vulnerability", Project: ref(projects[1]),
				IssueType: bug, Status: done, Priority: high,
				Creator: diana, Reporter: diana, Assignee: assignee(diana),
				Created: ago(28), Updated: ago(26), ResolutionDate: agoPtr(26),
				TimeOriginalEstimate: secs(14400), TimeSpent: secs(12000),
			},
			Changelog: histories(
				move("ch12", diana, 28, schema.StatusToDo, schema.StatusInProgress),
				move("ch13", diana, 26, schema.StatusInProgress, schema.StatusDone),
			),
		},
	}

	return &schema.Snapshot{
		Users:    users,
		Projects: projects,
		Sprints:  sprints,
		Issues:   issues,
		HR:       demoHR(),
	}
}

func week(target float64, logged ...float64) []schema.DayHours {
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri"}
	out := make([]schema.DayHours, len(logged))
	for i, l := range logged {
		out[i] = schema.DayHours{Day: days[i], Logged: l, Target: target}
	}
	return out
}

func demoHR() schema.HRData {
	return schema.HRData{
		Profiles: map[string]schema.HRProfile{
			"u1": {VacationDays: 12, SickDaysTaken: 3, TargetHours: 40},
			"u2": {VacationDays: 5, SickDaysTaken: 1, TargetHours: 40},
			"u3": {VacationDays: 8, SickDaysTaken: 5, TargetHours: 35},
			"u4": {VacationDays: 20, SickDaysTaken: 0, TargetHours: 40},
		},
		WeeklyHours: map[string][]schema.DayHours{
			"u1": week(8, 8, 7, 9, 8, 6),
			"u2": week(8, 8, 8, 8, 8, 8),
			"u3": week(7, 7, 7, 6, 7, 8),
			"u4": week(8, 9, 9, 9, 9, 5),
		},
	}
}
