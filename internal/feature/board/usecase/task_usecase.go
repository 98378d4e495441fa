package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kanban_backend/internal/feature/board/domain/entity"
)

// TaskRepository abstracts task persistence. Every method is scoped to userID.
type TaskRepository interface {
	// List returns the user's tasks ordered by ascending position.
	List(ctx context.Context, userID uint) ([]entity.Task, error)
	// ListByColumn returns the user's tasks in one column ordered by ascending position.
	ListByColumn(ctx context.Context, userID, columnID uint) ([]entity.Task, error)
	// FindByID returns ErrTaskNotFound when no task matches id and userID.
	FindByID(ctx context.Context, userID, id uint) (*entity.Task, error)
	// NextPosition returns the highest position in the column plus one, or 0 for an empty column.
	NextPosition(ctx context.Context, userID, columnID uint) (int, error)
	Create(ctx context.Context, task *entity.Task) error
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, userID, id uint) error
	// Move applies m atomically and returns ErrTaskNotFound when the task is not the user's.
	Move(ctx context.Context, userID uint, m entity.Move) error
	// Stats groups the user's tasks by priority.
	Stats(ctx context.Context, userID uint) ([]entity.PriorityStat, error)
}

// ColumnLookup resolves a column owned by a user.
type ColumnLookup interface {
	FindByID(ctx context.Context, userID, id uint) (*entity.Column, error)
}

// TaskInput holds the fields of a new task. Empty Priority means medium.
type TaskInput struct {
	Title       string
	Description string
	ColumnID    uint
	Labels      []string
	Priority    entity.Priority
	DueDate     *time.Time
}

// TaskPatch holds a partial task update; nil fields are left unchanged.
// DueDate is applied when DueDateSet is true, so a nil DueDate clears it.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	ColumnID    *uint
	Labels      *[]string
	Priority    *entity.Priority
	DueDateSet  bool
	DueDate     *time.Time
	Position    *int
}

// taskUsecase implements the task operations of the board.
type taskUsecase struct {
	tasks   TaskRepository
	columns ColumnLookup
}

// NewTaskUsecase creates a taskUsecase.
func NewTaskUsecase(tasks TaskRepository, columns ColumnLookup) *taskUsecase {
	return &taskUsecase{tasks: tasks, columns: columns}
}

// List returns all of the caller's tasks.
func (u *taskUsecase) List(ctx context.Context, userID uint) ([]entity.Task, error) {
	return u.tasks.List(ctx, userID)
}

// ListByColumn returns the caller's tasks in one column. An unknown column yields an empty list.
func (u *taskUsecase) ListByColumn(ctx context.Context, userID, columnID uint) ([]entity.Task, error) {
	return u.tasks.ListByColumn(ctx, userID, columnID)
}

// Create appends a task to the bottom of its column.
func (u *taskUsecase) Create(ctx context.Context, userID uint, in TaskInput) (*entity.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if in.ColumnID == 0 {
		return nil, ErrColumnRequired
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if _, err := u.columns.FindByID(ctx, userID, in.ColumnID); err != nil {
		return nil, err
	}

	pos, err := u.tasks.NextPosition(ctx, userID, in.ColumnID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute task position: %w", err)
	}
	labels := in.Labels
	if labels == nil {
		labels = []string{}
	}
	task := &entity.Task{
		UserID:      userID,
		ColumnID:    in.ColumnID,
		Title:       title,
		Description: in.Description,
		Priority:    priority,
		DueDate:     in.DueDate,
		Labels:      labels,
		Position:    pos,
	}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies the present fields of patch.
func (u *taskUsecase) Update(ctx context.Context, userID, id uint, patch TaskPatch) (*entity.Task, error) {
	task, err := u.tasks.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, ErrTitleRequired
		}
		task.Title = t
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	if patch.ColumnID != nil && *patch.ColumnID != task.ColumnID {
		if _, err := u.columns.FindByID(ctx, userID, *patch.ColumnID); err != nil {
			return nil, err
		}
		task.ColumnID = *patch.ColumnID
	}
	if patch.Labels != nil {
		task.Labels = *patch.Labels
		if task.Labels == nil {
			task.Labels = []string{}
		}
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *patch.Priority
	}
	if patch.DueDateSet {
		task.DueDate = patch.DueDate
	}
	if patch.Position != nil {
		if *patch.Position < 0 {
			return nil, ErrInvalidPosition
		}
		task.Position = *patch.Position
	}

	if err := u.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task.
func (u *taskUsecase) Delete(ctx context.Context, userID, id uint) error {
	return u.tasks.Delete(ctx, userID, id)
}

// Move relocates a task. Siblings at or after the new position are shifted
// down only for a move within one column.
func (u *taskUsecase) Move(ctx context.Context, userID uint, m entity.Move) error {
	if m.NewPosition < 0 {
		return ErrInvalidPosition
	}
	if !m.SameColumn() {
		if _, err := u.columns.FindByID(ctx, userID, m.DestinationColumnID); err != nil {
			return err
		}
	}
	return u.tasks.Move(ctx, userID, m)
}

// Stats returns per-priority totals for the caller's tasks.
func (u *taskUsecase) Stats(ctx context.Context, userID uint) ([]entity.PriorityStat, error) {
	return u.tasks.Stats(ctx, userID)
}
