package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/walletflow-backend/internal/domain"
)

// CreateTaskInput represents the input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
}

// UpdateTaskInput represents an edit of a task. Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TaskService handles to-do task operations
type TaskService struct {
	Store  domain.Store
	Logger logrus.FieldLogger
	Now    func() time.Time
}

// NewTaskService creates a new TaskService instance
func NewTaskService(store domain.Store, logger logrus.FieldLogger) *TaskService {
	return &TaskService{
		Store:  store,
		Logger: logger,
		Now:    time.Now,
	}
}

// CreateTask creates an open task
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	task := &domain.Task{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		CreatedAt:   s.Now().UTC(),
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.Store.Tasks().Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// GetTask retrieves a task by its ID
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.Store.Tasks().GetByID(ctx, id)
}

// ListTasks retrieves every task in creation order
func (s *TaskService) ListTasks(ctx context.Context) domain.Result[[]*domain.Task] {
	tasks, err := s.Store.Tasks().List(ctx)
	if err != nil {
		s.Logger.WithError(err).Warn("failed to list tasks, returning empty list")
		return domain.Degraded([]*domain.Task{}, err)
	}
	return domain.Ok(tasks)
}

// UpdateTask edits a task
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*domain.Task, error) {
	var updated *domain.Task
	err := s.Store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		task, err := repos.Tasks().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Title != nil {
			task.Title = *input.Title
		}
		if input.Description != nil {
			task.Description = *input.Description
		}
		if input.Completed != nil {
			task.Completed = *input.Completed
		}

		if err := task.Validate(); err != nil {
			return err
		}
		if err := repos.Tasks().Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ToggleTask flips the completion of a task and returns it
func (s *TaskService) ToggleTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var toggled *domain.Task
	err := s.Store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if err := repos.Tasks().ToggleCompleted(ctx, id); err != nil {
			return err
		}
		task, err := repos.Tasks().GetByID(ctx, id)
		if err != nil {
			return err
		}
		toggled = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toggled, nil
}

// DeleteTask removes a task
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return s.Store.Tasks().Delete(ctx, id)
}
