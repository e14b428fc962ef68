package services

import (
	"context"
	"fmt"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

// TaskStore is the storage surface the task service needs.
type TaskStore interface {
	CreateTask(ctx context.Context, t core.Task) (int64, error)
	ListTasksInWindow(ctx context.Context, entityID int64, start, end core.Date) ([]core.Task, error)
	SetTaskCompleted(ctx context.Context, id int64, completed bool) error
	SoftDeleteTask(ctx context.Context, id int64) error
}

// TaskService handles one-off task operations.
type TaskService struct {
	store TaskStore
}

func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

// Create validates and saves a task. A zero end date collapses to a
// single-day task.
func (s *TaskService) Create(ctx context.Context, t core.Task) (int64, error) {
	if t.EndDate.IsZero() {
		t.EndDate = t.StartDate
	}
	if err := t.Validate(); err != nil {
		return 0, fmt.Errorf("validate task: %w", err)
	}

	id, err := s.store.CreateTask(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("save task: %w", err)
	}
	return id, nil
}

func (s *TaskService) ListWindow(ctx context.Context, entityID int64, start, end core.Date) ([]core.Task, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("list tasks: %w", core.ErrInvalidRange)
	}
	return s.store.ListTasksInWindow(ctx, entityID, start, end)
}

func (s *TaskService) SetCompleted(ctx context.Context, id int64, completed bool) error {
	if err := s.store.SetTaskCompleted(ctx, id, completed); err != nil {
		return fmt.Errorf("set task completed: %w", err)
	}
	return nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.store.SoftDeleteTask(ctx, id); err != nil {
		return fmt.Errorf("soft delete task: %w", err)
	}
	return nil
}
