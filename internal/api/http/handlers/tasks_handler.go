package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devfolio/portfolio-api/internal/api/dto"
	"github.com/devfolio/portfolio-api/internal/domain"
	"github.com/devfolio/portfolio-api/internal/service"
	apperrors "github.com/devfolio/portfolio-api/pkg/util/errorutil"
)

const msgAuthRequired = "Authentication required"

// TasksHandler exposes the task board. Anonymous visitors can read a demo board only.
type TasksHandler struct {
	tasks *service.TaskService
}

func NewTasksHandler(tasks *service.TaskService) *TasksHandler {
	return &TasksHandler{tasks: tasks}
}

// List handles GET /api/tasks?projectId=.
func (h *TasksHandler) List(c *fiber.Ctx) error {
	session := mustSession(c)
	if session == nil {
		return c.JSON(dto.TaskListResponse{Tasks: service.SampleTasks()})
	}

	tasks, err := h.tasks.List(c.UserContext(), session.UserID, c.Query("projectId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.TaskListResponse{Tasks: tasks})
}

// Create handles POST /api/tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	session, err := requireTaskSession(c)
	if err != nil {
		return err
	}

	var req dto.CreateTaskRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	task, err := h.tasks.Create(c.UserContext(), session.UserID, service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TaskResponse{Task: task})
}

// Update handles PUT /api/tasks.
func (h *TasksHandler) Update(c *fiber.Ctx) error {
	session, err := requireTaskSession(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	task, err := h.tasks.Update(c.UserContext(), session.UserID, req.ID, req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(dto.TaskResponse{Task: task})
}

// Delete handles DELETE /api/tasks?id=.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	session, err := requireTaskSession(c)
	if err != nil {
		return err
	}
	if err := h.tasks.Delete(c.UserContext(), session.UserID, c.Query("id")); err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func requireTaskSession(c *fiber.Ctx) (*domain.Session, error) {
	session := mustSession(c)
	if session == nil {
		return nil, apperrors.NewUnauthorized(msgAuthRequired)
	}
	return session, nil
}
