// Package entity defines the board's columns and tasks.
package entity

import "time"

// Column is a named, ordered bucket of tasks owned by one user.
type Column struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Title     string `gorm:"not null"`
	Position  int    `gorm:"not null"`
	CreatedAt time.Time
}

// TableName overrides the default "columns", which is a reserved word in several SQL dialects.
func (Column) TableName() string { return "task_columns" }
