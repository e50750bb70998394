package schedule

import (
	"slices"
	"time"

	"tasktracker/internal/core/domain"
)

type dateInfo struct {
	hasDate bool
	day     time.Time // local midnight of the reminder's calendar day
	hasTime bool
	at      time.Time
}

func taskDateInfo(t domain.Task, loc *time.Location) dateInfo {
	if t.RemindAt == nil {
		return dateInfo{}
	}
	local := t.RemindAt.In(loc)
	info := dateInfo{
		hasDate: true,
		day:     time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc),
		at:      *t.RemindAt,
	}
	if t.RemindHasTime != nil {
		info.hasTime = *t.RemindHasTime
	} else {
		// Legacy records without the flag: exactly midnight is taken as
		// date-only. A genuine midnight reminder is indistinguishable here.
		info.hasTime = local.Hour() != 0 || local.Minute() != 0 || local.Second() != 0
	}
	return info
}

// Compare is the canonical three-way task order: drafts after scheduled
// tasks, earlier calendar day first, whole-day entries before timed ones on
// the same day, then earlier instant first. Equal keys compare as 0 so a
// stable sort preserves input order.
func Compare(a, b domain.Task, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	ai := taskDateInfo(a, loc)
	bi := taskDateInfo(b, loc)

	if ai.hasDate != bi.hasDate {
		if ai.hasDate {
			return -1
		}
		return 1
	}
	if !ai.hasDate {
		return 0
	}
	if c := ai.day.Compare(bi.day); c != 0 {
		return c
	}
	if ai.hasTime != bi.hasTime {
		if ai.hasTime {
			return 1
		}
		return -1
	}
	if !ai.hasTime {
		return 0
	}
	return ai.at.Compare(bi.at)
}

// SortTasks sorts a copy of tasks with Compare under a stable sort and
// returns it. The input slice is never reordered in place.
func SortTasks(tasks []domain.Task, loc *time.Location) []domain.Task {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b domain.Task) int {
		return Compare(a, b, loc)
	})
	return sorted
}
