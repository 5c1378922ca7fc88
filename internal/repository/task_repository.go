package repository

import (
	"context"
	"sync"

	"github.com/devfolio/portfolio-api/internal/domain"
)

// TaskRepository stores task-board cards per user.
type TaskRepository interface {
	List(ctx context.Context, userID string, projectID string) ([]domain.Task, error)
	Create(ctx context.Context, userID string, task domain.Task) error
	Update(ctx context.Context, userID, taskID string, patch domain.TaskPatch, updatedAt string) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

// memoryTaskRepository is the process-wide task board. Tasks keep insertion order per user.
type memoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string][]domain.Task
}

// NewMemoryTaskRepository builds an empty board.
func NewMemoryTaskRepository() TaskRepository {
	return &memoryTaskRepository{tasks: make(map[string][]domain.Task)}
}

func (r *memoryTaskRepository) List(_ context.Context, userID string, projectID string) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.Task{}
	for _, t := range r.tasks[userID] {
		if projectID != "" && (t.ProjectID == nil || *t.ProjectID != projectID) {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (r *memoryTaskRepository) Create(_ context.Context, userID string, task domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[userID] = append(r.tasks[userID], task)
	return nil
}

func (r *memoryTaskRepository) Update(_ context.Context, userID, taskID string, patch domain.TaskPatch, updatedAt string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userTasks := r.tasks[userID]
	for i := range userTasks {
		if userTasks[i].ID != taskID {
			continue
		}
		patch.Apply(&userTasks[i])
		userTasks[i].UpdatedAt = updatedAt
		out := userTasks[i]
		return &out, nil
	}
	return nil, ErrNotFound
}

// Delete removes the task if present; deleting an unknown id is not an error.
func (r *memoryTaskRepository) Delete(_ context.Context, userID, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	userTasks := r.tasks[userID]
	filtered := userTasks[:0]
	for _, t := range userTasks {
		if t.ID != taskID {
			filtered = append(filtered, t)
		}
	}
	r.tasks[userID] = filtered
	return nil
}
