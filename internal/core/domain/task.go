package domain

import "time"

// Task is the central entity. RemindAt is always a canonical instant (UTC);
// wall-clock conversion happens at the adapter boundary. RemindHasTime is
// only meaningful when RemindAt is set: false marks a whole-day reminder,
// nil means the flag was never recorded and the time component decides.
type Task struct {
	ID            string
	Name          string
	Completed     bool
	RemindAt      *time.Time
	RemindHasTime *bool
	Note          *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Scheduled reports whether the task carries a reminder. Tasks without one
// are drafts: excluded from calendar buckets and never armed.
func (t Task) Scheduled() bool {
	return t.RemindAt != nil
}

type CreateTaskInput struct {
	Name          string
	RemindAt      *time.Time
	RemindHasTime *bool
	Note          *string
}

// UpdateTaskInput carries only the fields the client explicitly sent.
// The *Set flags distinguish "leave untouched" from "clear" for fields
// where JSON null is a meaningful value.
type UpdateTaskInput struct {
	ID            string
	Name          *string
	Completed     *bool
	RemindAt      *time.Time
	RemindAtSet   bool
	RemindHasTime *bool
	Note          *string
	NoteSet       bool
}
