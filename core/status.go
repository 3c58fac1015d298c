package core

import (
	"time"

	"github.com/huangsam/sprintlens/schema"
)

// dayIn truncates t to midnight of its calendar day in loc.
func dayIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// dayKey is the calendar-date key used for per-day lookups.
func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// StatusAsOf reconstructs the status of an issue at the end of the given day.
// Day boundaries are taken in the location of date. The second return value
// is false when the issue was created after that day.
func StatusAsOf(issue *schema.Issue, date time.Time) (string, bool) {
	loc := date.Location()
	target := dayIn(date, loc)
	created := dayIn(issue.Fields.Created, loc)
	if created.After(target) {
		return "", false
	}

	var latest *schema.ChangelogHistory
	histories := issue.StatusHistories()
	for i := range histories {
		h := &histories[i]
		if dayIn(h.Created, loc).After(target) {
			continue
		}
		// ties keep the entry seen first
		if latest == nil || h.Created.After(latest.Created) {
			latest = h
		}
	}
	if latest != nil {
		item, _ := latest.StatusItem()
		return item.ToString, true
	}

	if created.Equal(target) {
		return issue.Fields.Status.Name, true
	}
	return schema.StatusToDo, true
}

// BucketAsOf is StatusAsOf folded into a cumulative flow bucket.
func BucketAsOf(issue *schema.Issue, date time.Time) (schema.StatusBucket, bool) {
	status, ok := StatusAsOf(issue, date)
	if !ok {
		return "", false
	}
	return schema.BucketFor(status), true
}
