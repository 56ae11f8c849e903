package services

import (
	"context"

	"github.com/taskapp/apiserver/types"
)

// TaskRepository defines persistence operations for per-user tasks.
type TaskRepository interface {
	ListByUser(ctx context.Context, userID string) ([]types.Task, error)
	Create(ctx context.Context, userID string, task types.Task) (types.Task, error)
	Update(ctx context.Context, userID, taskID string, task types.Task) error
	Delete(ctx context.Context, userID, taskID string) error
}

// TaskService encapsulates task use-cases.
type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) ListByUser(ctx context.Context, userID string) ([]types.Task, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *TaskService) Create(ctx context.Context, userID string, task types.Task) (types.Task, error) {
	return s.repo.Create(ctx, userID, task)
}

func (s *TaskService) Update(ctx context.Context, userID, taskID string, task types.Task) error {
	return s.repo.Update(ctx, userID, taskID, task)
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	return s.repo.Delete(ctx, userID, taskID)
}
