package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"go.uber.org/zap"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
	"tasktracker/internal/core/schedule"
)

// storedTask is the persisted wire shape: one JSON array holding the whole
// collection, reminder stamps as RFC3339 strings.
type storedTask struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Completed     bool    `json:"completed"`
	RemindAt      *string `json:"remindAt,omitempty"`
	RemindHasTime *bool   `json:"remindHasTime,omitempty"`
	Note          *string `json:"note,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}

// File keeps the collection in memory and mirrors every change to a single
// JSON snapshot on disk: read once at construction, rewritten whole on each
// mutation. Unreadable or corrupt content means "no saved tasks", and a
// failed write is logged and otherwise ignored.
type File struct {
	path string
	loc  *time.Location
	mem  *Memory
}

var _ ports.TaskRepository = (*File)(nil)

func NewFile(path string, loc *time.Location) *File {
	f := &File{path: path, loc: loc}
	f.mem = NewMemory(f.load())
	return f
}

func (f *File) load() []domain.Task {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			zap.L().Warn("could not read tasks file, starting empty",
				zap.String("path", f.path), zap.Error(err))
		}
		return nil
	}

	var records []storedTask
	if err := json.Unmarshal(data, &records); err != nil {
		zap.L().Warn("corrupt tasks file, starting empty",
			zap.String("path", f.path), zap.Error(err))
		return nil
	}

	tasks := make([]domain.Task, 0, len(records))
	migrated := false
	for _, r := range records {
		if r.RemindAt != nil {
			if s, changed := schedule.MigrateStamp(*r.RemindAt, f.loc); changed {
				r.RemindAt = &s
				migrated = true
			}
		}
		tasks = append(tasks, toDomain(r, f.loc))
	}

	if migrated {
		// Eradicate the bare local form from disk right away.
		f.write(tasks)
	}
	return tasks
}

func (f *File) persist(ctx context.Context) {
	tasks, err := f.mem.List(ctx)
	if err != nil {
		return
	}
	f.write(tasks)
}

func (f *File) write(tasks []domain.Task) {
	records := make([]storedTask, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, fromDomain(t))
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		zap.L().Warn("could not encode tasks", zap.Error(err))
		return
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		zap.L().Warn("could not write tasks file",
			zap.String("path", f.path), zap.Error(err))
	}
}

func (f *File) List(ctx context.Context) ([]domain.Task, error) {
	return f.mem.List(ctx)
}

func (f *File) Get(ctx context.Context, id string) (domain.Task, error) {
	return f.mem.Get(ctx, id)
}

func (f *File) Create(ctx context.Context, task domain.Task) error {
	if err := f.mem.Create(ctx, task); err != nil {
		return err
	}
	f.persist(ctx)
	return nil
}

func (f *File) Update(ctx context.Context, task domain.Task) error {
	if err := f.mem.Update(ctx, task); err != nil {
		return err
	}
	f.persist(ctx)
	return nil
}

func (f *File) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := f.mem.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	f.persist(ctx)
	return true, nil
}

func toDomain(r storedTask, loc *time.Location) domain.Task {
	task := domain.Task{
		ID:        r.ID,
		Name:      r.Name,
		Completed: r.Completed,
		Note:      r.Note,
	}
	if r.RemindAt != nil {
		if at, ok := schedule.ParseStamp(*r.RemindAt, loc); ok {
			task.RemindAt = &at
			task.RemindHasTime = r.RemindHasTime
		}
		// Unparseable stamps degrade to a draft; the record itself stays.
	}
	if t, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
		task.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, r.UpdatedAt); err == nil {
		task.UpdatedAt = t
	}
	return task
}

func fromDomain(t domain.Task) storedTask {
	r := storedTask{
		ID:        t.ID,
		Name:      t.Name,
		Completed: t.Completed,
		Note:      t.Note,
	}
	if t.RemindAt != nil {
		s := t.RemindAt.UTC().Format(time.RFC3339)
		r.RemindAt = &s
		r.RemindHasTime = t.RemindHasTime
	}
	if !t.CreatedAt.IsZero() {
		r.CreatedAt = t.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !t.UpdatedAt.IsZero() {
		r.UpdatedAt = t.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return r
}
