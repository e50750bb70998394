package ports

import (
	"context"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/schedule"
)

// TaskRepository owns the canonical collection. List returns a snapshot;
// callers never mutate what they hold, they go back through the repository.
type TaskRepository interface {
	List(ctx context.Context) ([]domain.Task, error)
	Get(ctx context.Context, id string) (domain.Task, error)
	Create(ctx context.Context, task domain.Task) error
	Update(ctx context.Context, task domain.Task) error
	Delete(ctx context.Context, id string) (bool, error)
}

type TaskService interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, input domain.UpdateTaskInput) (domain.Task, error)
	ToggleTask(ctx context.Context, id string) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) (bool, error)
	Calendar(ctx context.Context) (schedule.Calendar, error)
}

// Notifier surfaces a fired reminder. How it is delivered is entirely the
// implementation's concern.
type Notifier interface {
	Notify(title, body string)
}
