package dto

import (
	"github.com/devfolio/portfolio-api/internal/domain"
)

// CreateTaskRequest is the body of POST /api/tasks.
type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	ProjectID   string   `json:"projectId"`
	AssigneeID  string   `json:"assigneeId"`
	DueDate     string   `json:"dueDate"`
	Tags        []string `json:"tags"`
}

// UpdateTaskRequest is the body of PUT /api/tasks. Absent fields are left unchanged.
type UpdateTaskRequest struct {
	ID          string               `json:"id"`
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Status      *domain.TaskStatus   `json:"status"`
	Priority    *domain.TaskPriority `json:"priority"`
	ProjectID   *string              `json:"projectId"`
	Assignee    *domain.TeamMember   `json:"assignee"`
	AssigneeID  *string              `json:"assigneeId"`
	DueDate     *string              `json:"dueDate"`
	Tags        []string             `json:"tags"`
}

// Patch converts the request into a domain patch.
func (r UpdateTaskRequest) Patch() domain.TaskPatch {
	patch := domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		ProjectID:   r.ProjectID,
		Assignee:    r.Assignee,
		DueDate:     r.DueDate,
		Tags:        r.Tags,
	}
	if patch.Assignee == nil && r.AssigneeID != nil && *r.AssigneeID != "" {
		patch.Assignee = &domain.TeamMember{ID: *r.AssigneeID, Name: "User"}
	}
	return patch
}

// TaskListResponse wraps a task list.
type TaskListResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Task *domain.Task `json:"task"`
}

// SuccessResponse is the bare acknowledgement body.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
