package entity

import "time"

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities from low (1) to high (3). Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}
	return 0
}

// Task is a card on the board. Position orders it within its column.
type Task struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	ColumnID    uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Completed   bool     `gorm:"not null"`
	Priority    Priority `gorm:"type:varchar(10);not null"`
	DueDate     *time.Time
	Labels      []string `gorm:"type:text;serializer:json"`
	Position    int      `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Move relocates a task. Siblings are only shifted when the source and
// destination columns are the same; a cross-column move leaves the
// destination column's positions untouched.
type Move struct {
	TaskID              uint
	SourceColumnID      uint
	DestinationColumnID uint
	NewPosition         int
}

// SameColumn reports whether the move reorders within one column.
func (m Move) SameColumn() bool {
	return m.SourceColumnID == m.DestinationColumnID
}

// PriorityStat aggregates a user's tasks of one priority.
type PriorityStat struct {
	Priority  Priority
	Count     int64
	Completed int64
}
