package store

import (
	"context"
	"slices"
	"sync"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

// Memory keeps the collection in process memory, insertion order preserved.
// Initial state is injected so tests construct exactly the collection they
// need; nothing lives at package level.
type Memory struct {
	mu    sync.RWMutex
	tasks []domain.Task
}

var _ ports.TaskRepository = (*Memory)(nil)

func NewMemory(initial []domain.Task) *Memory {
	return &Memory{tasks: slices.Clone(initial)}
}

// List returns a snapshot; mutating it never touches the repository.
func (m *Memory) List(ctx context.Context) ([]domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.tasks), nil
}

func (m *Memory) Get(ctx context.Context, id string) (domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Task{}, domain.ErrTaskNotFound
}

func (m *Memory) Create(ctx context.Context, task domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *Memory) Update(ctx context.Context, task domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tasks {
		if t.ID == task.ID {
			m.tasks[i] = task
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (m *Memory) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tasks {
		if t.ID == id {
			m.tasks = slices.Delete(m.tasks, i, i+1)
			return true, nil
		}
	}
	return false, nil
}

// Reset replaces the whole collection. Test hook.
func (m *Memory) Reset(tasks []domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = slices.Clone(tasks)
}
