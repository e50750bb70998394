package schedule

import (
	"sort"
	"time"

	"tasktracker/internal/core/domain"
)

// Bucket holds the tasks sharing one calendar key ("2006-01" for months,
// "2006-01-02" for days), keys ascending across a slice of buckets.
type Bucket struct {
	Key   string
	Tasks []domain.Task
}

// MonthGroup is one month of the calendar view: its day buckets ascending,
// each day's tasks already in canonical order.
type MonthGroup struct {
	Key  string
	Days []Bucket
}

// Calendar is the render-ready dashboard partition: the scheduled tasks
// grouped month by month, plus the always-visible draft section.
type Calendar struct {
	Months []MonthGroup
	Drafts []domain.Task
}

func groupBy(tasks []domain.Task, loc *time.Location, layout string) []Bucket {
	if loc == nil {
		loc = time.Local
	}
	byKey := make(map[string][]domain.Task)
	keys := make([]string, 0)
	for _, t := range tasks {
		if t.RemindAt == nil {
			continue
		}
		key := t.RemindAt.In(loc).Format(layout)
		if _, seen := byKey[key]; !seen {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], t)
	}
	sort.Strings(keys)
	buckets := make([]Bucket, 0, len(keys))
	for _, key := range keys {
		buckets = append(buckets, Bucket{Key: key, Tasks: byKey[key]})
	}
	return buckets
}

// GroupByMonth partitions the scheduled tasks into YYYY-MM buckets by the
// local calendar month of their reminder, chronological. Drafts are not in
// any bucket.
func GroupByMonth(tasks []domain.Task, loc *time.Location) []Bucket {
	return groupBy(tasks, loc, monthKeyLayout)
}

// GroupByDate is the same partition at YYYY-MM-DD granularity.
func GroupByDate(tasks []domain.Task, loc *time.Location) []Bucket {
	return groupBy(tasks, loc, dateLayout)
}

// Drafts returns the tasks with no reminder, input order preserved.
func Drafts(tasks []domain.Task) []domain.Task {
	drafts := make([]domain.Task, 0)
	for _, t := range tasks {
		if t.RemindAt == nil {
			drafts = append(drafts, t)
		}
	}
	return drafts
}

// BuildCalendar runs the canonical pipeline: group by month, group each
// month's tasks by date, sort each day with Compare. Every scheduled task
// lands in exactly one month and exactly one day.
func BuildCalendar(tasks []domain.Task, loc *time.Location) Calendar {
	months := GroupByMonth(tasks, loc)
	out := Calendar{
		Months: make([]MonthGroup, 0, len(months)),
		Drafts: Drafts(tasks),
	}
	for _, month := range months {
		days := GroupByDate(month.Tasks, loc)
		for i := range days {
			days[i].Tasks = SortTasks(days[i].Tasks, loc)
		}
		out.Months = append(out.Months, MonthGroup{Key: month.Key, Days: days})
	}
	return out
}
