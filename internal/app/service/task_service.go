package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
	"tasktracker/internal/core/schedule"
)

// TaskService owns the mutation pipeline: every successful repository change
// is followed by a fresh snapshot and a full scheduler rearm. The previous
// handle is always cancelled first, so a task never fires twice and an edit
// that clears a reminder also clears its timer.
type TaskService struct {
	repo      ports.TaskRepository
	scheduler *schedule.Scheduler
	notifier  ports.Notifier
	loc       *time.Location

	mu     sync.Mutex
	handle *schedule.Handle
}

var _ ports.TaskService = (*TaskService)(nil)

func NewTaskService(repo ports.TaskRepository, scheduler *schedule.Scheduler, notifier ports.Notifier, loc *time.Location) *TaskService {
	if loc == nil {
		loc = time.Local
	}
	return &TaskService{
		repo:      repo,
		scheduler: scheduler,
		notifier:  notifier,
		loc:       loc,
	}
}

// Start arms reminders for whatever the repository already holds. Called
// once at boot.
func (s *TaskService) Start(ctx context.Context) error {
	return s.rearm(ctx)
}

// Stop cancels every pending reminder.
func (s *TaskService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != nil {
		s.handle.CancelAll()
		s.handle = nil
	}
}

func (s *TaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return schedule.SortTasks(tasks, s.loc), nil
}

func (s *TaskService) Calendar(ctx context.Context) (schedule.Calendar, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return schedule.Calendar{}, err
	}
	return schedule.BuildCalendar(tasks, s.loc), nil
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	now := time.Now().UTC()
	task := domain.Task{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Completed: false,
		Note:      input.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.RemindAt != nil {
		task.RemindAt = input.RemindAt
		task.RemindHasTime = input.RemindHasTime
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return domain.Task{}, err
	}
	if err := s.rearm(ctx); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, input domain.UpdateTaskInput) (domain.Task, error) {
	task, err := s.repo.Get(ctx, input.ID)
	if err != nil {
		return domain.Task{}, err
	}

	if input.Name != nil {
		task.Name = *input.Name
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}
	if input.RemindAtSet {
		task.RemindAt = input.RemindAt
		if input.RemindAt == nil {
			// Cleared reminder never keeps a dangling time flag.
			task.RemindHasTime = nil
		} else {
			task.RemindHasTime = input.RemindHasTime
		}
	} else if input.RemindHasTime != nil && task.RemindAt != nil {
		task.RemindHasTime = input.RemindHasTime
	}
	if input.NoteSet {
		task.Note = input.Note
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		return domain.Task{}, err
	}
	if err := s.rearm(ctx); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) ToggleTask(ctx context.Context, id string) (domain.Task, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	task.Completed = !task.Completed
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		return domain.Task{}, err
	}
	if err := s.rearm(ctx); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	if err := s.rearm(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *TaskService) rearm(ctx context.Context) error {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != nil {
		s.handle.CancelAll()
	}
	s.handle = s.scheduler.Arm(tasks, s.notifier.Notify)
	return nil
}

// PendingReminders reports how many timers are currently armed.
func (s *TaskService) PendingReminders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle == nil {
		return 0
	}
	return s.handle.Pending()
}
