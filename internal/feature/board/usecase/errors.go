// Package usecase implements column and task management for a user's board.
package usecase

import "errors"

var (
	// ErrColumnNotFound is returned when a column does not exist or belongs to another user.
	ErrColumnNotFound = errors.New("column not found")
	// ErrTaskNotFound is returned when a task does not exist or belongs to another user.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTitleRequired is returned when a column or task is created without a title.
	ErrTitleRequired = errors.New("title is required")
	// ErrColumnRequired is returned when a task is created without a column.
	ErrColumnRequired = errors.New("column is required")
	// ErrInvalidPriority is returned for a priority other than low, medium or high.
	ErrInvalidPriority = errors.New("priority must be low, medium or high")
	// ErrInvalidPosition is returned for a negative position.
	ErrInvalidPosition = errors.New("position must not be negative")
)
