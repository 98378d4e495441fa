package dto

import (
	"time"

	"kanban_backend/internal/feature/board/domain/entity"
)

// CreateTaskReq is the body of POST /tasks.
type CreateTaskReq struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Column      uint         `json:"column"`
	Labels      []string     `json:"labels"`
	Priority    string       `json:"priority"`
	DueDate     NullableTime `json:"dueDate,omitzero"`
}

// UpdateTaskReq is the body of PUT /tasks/:id. Only fields present in the body are applied.
type UpdateTaskReq struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Completed   *bool          `json:"completed,omitempty"`
	Column      *uint          `json:"column,omitempty"`
	Labels      NullableLabels `json:"labels,omitzero"`
	Priority    *string        `json:"priority,omitempty"`
	DueDate     NullableTime   `json:"dueDate,omitzero"`
	Position    *int           `json:"position,omitempty"`
}

// MoveTaskReq is the body of POST /tasks/move.
type MoveTaskReq struct {
	TaskID              uint `json:"taskId" binding:"required"`
	SourceColumnID      uint `json:"sourceColumnId" binding:"required"`
	DestinationColumnID uint `json:"destinationColumnId" binding:"required"`
	NewPosition         *int `json:"newPosition" binding:"required"`
}

// TaskRes is the JSON view of a task.
type TaskRes struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Labels      []string   `json:"labels"`
	Position    int        `json:"position"`
	Column      uint       `json:"column"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskResFromEntity converts a task to its JSON view. Labels are never null.
func TaskResFromEntity(t *entity.Task) TaskRes {
	labels := t.Labels
	if labels == nil {
		labels = []string{}
	}
	return TaskRes{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Labels:      labels,
		Position:    t.Position,
		Column:      t.ColumnID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TaskResList converts tasks, always returning a non-nil slice.
func TaskResList(tasks []entity.Task) []TaskRes {
	out := make([]TaskRes, 0, len(tasks))
	for i := range tasks {
		out = append(out, TaskResFromEntity(&tasks[i]))
	}
	return out
}

// PriorityStatRes is one row of GET /analytics.
type PriorityStatRes struct {
	Priority  string `json:"priority"`
	Count     int64  `json:"count"`
	Completed int64  `json:"completed"`
}

// PriorityStatResList converts stats, always returning a non-nil slice.
func PriorityStatResList(stats []entity.PriorityStat) []PriorityStatRes {
	out := make([]PriorityStatRes, 0, len(stats))
	for _, s := range stats {
		out = append(out, PriorityStatRes{Priority: string(s.Priority), Count: s.Count, Completed: s.Completed})
	}
	return out
}
