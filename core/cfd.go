package core

import (
	"sort"
	"time"

	"github.com/huangsam/sprintlens/schema"
)

// DefaultCfdDays is the default window length of the cumulative flow diagram.
const DefaultCfdDays = 30

// statusChange is a pre-parsed status transition.
type statusChange struct {
	day time.Time
	at  time.Time
	to  string
}

// issueTimeline replays the status history of one issue day by day.
// Days passed to advance must be non-decreasing.
type issueTimeline struct {
	created   time.Time
	current   string
	changes   []statusChange
	next      int
	latest    statusChange
	hasLatest bool
}

func newIssueTimeline(issue *schema.Issue, loc *time.Location) issueTimeline {
	histories := issue.StatusHistories()
	changes := make([]statusChange, 0, len(histories))
	for _, h := range histories {
		item, _ := h.StatusItem()
		changes = append(changes, statusChange{day: dayIn(h.Created, loc), at: h.Created, to: item.ToString})
	}
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].at.Before(changes[j].at)
	})
	return issueTimeline{
		created: dayIn(issue.Fields.Created, loc),
		current: issue.Fields.Status.Name,
		changes: changes,
	}
}

// advance moves the cursor to day and returns the bucket on that day.
func (tl *issueTimeline) advance(day time.Time) (schema.StatusBucket, bool) {
	if tl.created.After(day) {
		return "", false
	}
	for tl.next < len(tl.changes) && !tl.changes[tl.next].day.After(day) {
		c := tl.changes[tl.next]
		if !tl.hasLatest || c.at.After(tl.latest.at) {
			tl.latest = c
			tl.hasLatest = true
		}
		tl.next++
	}
	switch {
	case tl.hasLatest:
		return schema.BucketFor(tl.latest.to), true
	case tl.created.Equal(day):
		return schema.BucketFor(tl.current), true
	default:
		return schema.BucketToDo, true
	}
}

// CfdWindow resolves the inclusive day range of a cumulative flow diagram.
// The range ends on the day of windowEnd, starts days earlier and is clamped
// so it never starts before the earliest creation day. ok is false when there
// is nothing to plot.
func CfdWindow(issues []schema.Issue, windowEnd time.Time, days int) (start, end time.Time, ok bool) {
	if len(issues) == 0 || days < 0 {
		return time.Time{}, time.Time{}, false
	}
	loc := windowEnd.Location()
	end = dayIn(windowEnd, loc)
	start = end.AddDate(0, 0, -days)

	earliest := dayIn(issues[0].Fields.Created, loc)
	for i := range issues[1:] {
		if c := dayIn(issues[i+1].Fields.Created, loc); c.Before(earliest) {
			earliest = c
		}
	}
	if earliest.After(start) {
		start = earliest
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// BuildCfd computes one cumulative flow point per day, ascending.
// Each issue's history is sorted once and replayed with a cursor.
func BuildCfd(issues []schema.Issue, windowEnd time.Time, days int) []schema.CfdPoint {
	start, end, ok := CfdWindow(issues, windowEnd, days)
	if !ok {
		return nil
	}
	loc := windowEnd.Location()

	timelines := make([]issueTimeline, len(issues))
	for i := range issues {
		timelines[i] = newIssueTimeline(&issues[i], loc)
	}

	var points []schema.CfdPoint
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		p := schema.CfdPoint{Date: day}
		for i := range timelines {
			if b, ok := timelines[i].advance(day); ok {
				p.Add(b)
			}
		}
		points = append(points, p)
	}
	return points
}
