package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/internal/domain"
	"github.com/devfolio/portfolio-api/internal/events"
	"github.com/devfolio/portfolio-api/internal/repository"
	apperrors "github.com/devfolio/portfolio-api/pkg/util/errorutil"
)

// isoMillis matches the timestamp layout browsers produce for Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z"

// TaskInput is the payload for creating a task. Empty strings mean "not provided".
type TaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	ProjectID   string
	AssigneeID  string
	DueDate     string
	Tags        []string
}

// TaskService runs the per-user task board.
type TaskService struct {
	tasks      repository.TaskRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func NewTaskService(tasks repository.TaskRepository, dispatcher events.Dispatcher, logger *zap.Logger) *TaskService {
	return &TaskService{tasks: tasks, dispatcher: dispatcher, logger: logger, now: time.Now}
}

// List returns the user's tasks, optionally limited to one project.
func (s *TaskService) List(ctx context.Context, userID, projectID string) ([]domain.Task, error) {
	tasks, err := s.tasks.List(ctx, userID, strings.TrimSpace(projectID))
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to fetch tasks", err)
	}
	return tasks, nil
}

// Create adds a task to the user's board with todo/medium defaults.
func (s *TaskService) Create(ctx context.Context, userID string, in TaskInput) (*domain.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperrors.NewValidationError("Title is required", nil)
	}

	status := domain.TaskStatusTodo
	if in.Status != "" {
		status = domain.TaskStatus(in.Status)
	}
	priority := domain.TaskPriorityMedium
	if in.Priority != "" {
		priority = domain.TaskPriority(in.Priority)
	}
	if err := validateTaskEnums(&status, &priority); err != nil {
		return nil, err
	}

	stamp := s.now().UTC().Format(isoMillis)
	task := domain.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		ProjectID:   optional(in.ProjectID),
		DueDate:     optional(in.DueDate),
		Tags:        in.Tags,
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}
	if in.AssigneeID != "" {
		task.Assignee = &domain.TeamMember{ID: in.AssigneeID, Name: "User"}
	}

	if err := s.tasks.Create(ctx, userID, task); err != nil {
		return nil, apperrors.NewInternalError("Failed to create task", err)
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:    events.EventTaskCreated,
		UserID:  userID,
		Payload: events.TaskCreatedPayload{TaskID: task.ID, Title: task.Title, ProjectID: task.ProjectID},
	})
	return &task, nil
}

// Update merges patch into an existing task and bumps updatedAt.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	if strings.TrimSpace(taskID) == "" {
		return nil, apperrors.NewValidationError("Task ID is required", nil)
	}
	if err := validateTaskEnums(patch.Status, patch.Priority); err != nil {
		return nil, err
	}

	task, err := s.tasks.Update(ctx, userID, taskID, patch, s.now().UTC().Format(isoMillis))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("Task not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to update task", err)
	}
	return task, nil
}

// Delete removes a task. Unknown ids succeed silently.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if strings.TrimSpace(taskID) == "" {
		return apperrors.NewValidationError("Task ID is required", nil)
	}
	if err := s.tasks.Delete(ctx, userID, taskID); err != nil {
		return apperrors.NewInternalError("Failed to delete task", err)
	}
	return nil
}

func validateTaskEnums(status *domain.TaskStatus, priority *domain.TaskPriority) error {
	if status != nil && !status.Valid() {
		return apperrors.NewValidationError("Invalid status", map[string]any{"status": *status})
	}
	if priority != nil && !priority.Valid() {
		return apperrors.NewValidationError("Invalid priority", map[string]any{"priority": *priority})
	}
	return nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// SampleTasks is the demo board shown to visitors who are not signed in.
func SampleTasks() []domain.Task {
	member := func(name string) *domain.TeamMember { return &domain.TeamMember{Name: name} }
	project := func(id string) *string { return &id }
	due := func(d string) *string { return &d }

	return []domain.Task{
		{
			ID:          "1",
			Title:       "Design homepage mockup",
			Description: "Create wireframes and high-fidelity mockups for the new homepage",
			Status:      domain.TaskStatusInProgress,
			Priority:    domain.TaskPriorityHigh,
			ProjectID:   project("1"),
			Assignee:    member("Mohamed Wael"),
			DueDate:     due("2024-01-20"),
			Tags:        []string{"design", "ui"},
			CreatedAt:   "2024-01-10",
		},
		{
			ID:          "2",
			Title:       "Implement authentication",
			Description: "Add JWT-based authentication with refresh tokens",
			Status:      domain.TaskStatusTodo,
			Priority:    domain.TaskPriorityHigh,
			ProjectID:   project("1"),
			Assignee:    member("John Doe"),
			DueDate:     due("2024-01-22"),
			Tags:        []string{"backend", "security"},
			CreatedAt:   "2024-01-11",
		},
		{
			ID:          "3",
			Title:       "Write API documentation",
			Description: "Document all REST endpoints using OpenAPI spec",
			Status:      domain.TaskStatusDone,
			Priority:    domain.TaskPriorityMedium,
			ProjectID:   project("1"),
			Assignee:    member("Jane Smith"),
			DueDate:     due("2024-01-15"),
			Tags:        []string{"docs"},
			CreatedAt:   "2024-01-08",
		},
		{
			ID:          "4",
			Title:       "Setup CI/CD pipeline",
			Description: "Configure GitHub Actions for automated testing and deployment",
			Status:      domain.TaskStatusReview,
			Priority:    domain.TaskPriorityMedium,
			ProjectID:   project("2"),
			Assignee:    member("Mohamed Wael"),
			DueDate:     due("2024-01-25"),
			Tags:        []string{"devops"},
			CreatedAt:   "2024-01-12",
		},
	}
}
