package usecase

import (
	"context"
	"fmt"
	"strings"

	"kanban_backend/internal/feature/board/domain/entity"
)

// ColumnRepository abstracts column persistence. Every method is scoped to userID;
// a column owned by someone else behaves exactly like a missing one.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ColumnRepository interface {
	// List returns the user's columns ordered by ascending position.
	List(ctx context.Context, userID uint) ([]entity.Column, error)
	// FindByID returns ErrColumnNotFound when no column matches id and userID.
	FindByID(ctx context.Context, userID, id uint) (*entity.Column, error)
	// NextPosition returns the highest column position plus one, or 0 for an empty board.
	NextPosition(ctx context.Context, userID uint) (int, error)
	Create(ctx context.Context, col *entity.Column) error
	Update(ctx context.Context, col *entity.Column) error
	// Delete removes the column and every task in it atomically.
	Delete(ctx context.Context, userID, id uint) error
	// Reorder sets each listed column's position to its index. Ids the user does not own are skipped.
	Reorder(ctx context.Context, userID uint, ids []uint) error
}

// ColumnPatch holds a partial column update; nil fields are left unchanged.
type ColumnPatch struct {
	Title    *string
	Position *int
}

// columnUsecase implements the column operations of the board.
type columnUsecase struct {
	columns ColumnRepository
}

// NewColumnUsecase creates a columnUsecase.
func NewColumnUsecase(columns ColumnRepository) *columnUsecase {
	return &columnUsecase{columns: columns}
}

// List returns the caller's columns in board order.
func (u *columnUsecase) List(ctx context.Context, userID uint) ([]entity.Column, error) {
	return u.columns.List(ctx, userID)
}

// Create appends a column to the right end of the board.
func (u *columnUsecase) Create(ctx context.Context, userID uint, title string) (*entity.Column, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	pos, err := u.columns.NextPosition(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute column position: %w", err)
	}
	col := &entity.Column{UserID: userID, Title: title, Position: pos}
	if err := u.columns.Create(ctx, col); err != nil {
		return nil, err
	}
	return col, nil
}

// Update applies the present fields of patch. A blank title is ignored.
func (u *columnUsecase) Update(ctx context.Context, userID, id uint, patch ColumnPatch) (*entity.Column, error) {
	col, err := u.columns.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		if t := strings.TrimSpace(*patch.Title); t != "" {
			col.Title = t
		}
	}
	if patch.Position != nil {
		if *patch.Position < 0 {
			return nil, ErrInvalidPosition
		}
		col.Position = *patch.Position
	}
	if err := u.columns.Update(ctx, col); err != nil {
		return nil, err
	}
	return col, nil
}

// Delete removes a column together with its tasks.
func (u *columnUsecase) Delete(ctx context.Context, userID, id uint) error {
	if _, err := u.columns.FindByID(ctx, userID, id); err != nil {
		return err
	}
	return u.columns.Delete(ctx, userID, id)
}

// Reorder positions the columns by their index in ids.
func (u *columnUsecase) Reorder(ctx context.Context, userID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return u.columns.Reorder(ctx, userID, ids)
}
