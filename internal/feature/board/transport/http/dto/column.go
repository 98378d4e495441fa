// Package dto defines data transfer objects for the board's HTTP transport layer.
package dto

import (
	"time"

	"kanban_backend/internal/feature/board/domain/entity"
)

// MessageResponse carries a human-readable status or error message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ColumnReq is the body of POST /columns and PUT /columns/:id.
type ColumnReq struct {
	Title    *string `json:"title,omitempty"`
	Position *int    `json:"position,omitempty"`
}

// ReorderItem identifies one column in a reorder request.
type ReorderItem struct {
	ID uint `json:"id" binding:"required"`
}

// ReorderReq is the body of POST /columns/reorder. Positions are taken from list order.
type ReorderReq struct {
	ColumnOrder []ReorderItem `json:"columnOrder" binding:"required,dive"`
}

// ColumnRes is the JSON view of a column.
type ColumnRes struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

// ColumnResFromEntity converts a column to its JSON view.
func ColumnResFromEntity(c *entity.Column) ColumnRes {
	return ColumnRes{ID: c.ID, Title: c.Title, Position: c.Position, CreatedAt: c.CreatedAt}
}

// ColumnResList converts columns, always returning a non-nil slice.
func ColumnResList(cols []entity.Column) []ColumnRes {
	out := make([]ColumnRes, 0, len(cols))
	for i := range cols {
		out = append(out, ColumnResFromEntity(&cols[i]))
	}
	return out
}
