package domain

// TaskStatus is the board column a task sits in.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether the status is a known board column.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority ranks urgency on the board.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Valid reports whether the priority is known.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// TeamMember is the assignee shown on a task card.
type TeamMember struct {
	ID     string  `json:"id,omitempty"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// Task is a card on the task board.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	ProjectID   *string      `json:"projectId"`
	Assignee    *TeamMember  `json:"assignee"`
	DueDate     *string      `json:"dueDate"`
	Tags        []string     `json:"tags"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt,omitempty"`
}

// TaskPatch carries the fields of a partial task update; nil means unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	ProjectID   *string
	Assignee    *TeamMember
	DueDate     *string
	Tags        []string
}

// Apply merges the patch into t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.ProjectID != nil {
		t.ProjectID = p.ProjectID
	}
	if p.Assignee != nil {
		t.Assignee = p.Assignee
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.Tags != nil {
		t.Tags = p.Tags
	}
}
