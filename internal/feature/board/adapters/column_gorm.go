// Package adapters provides GORM repositories for the board feature.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kanban_backend/internal/feature/board/domain/entity"
	"kanban_backend/internal/feature/board/usecase"
)

// columnGorm is the GORM implementation of usecase.ColumnRepository.
type columnGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure columnGorm implements ColumnRepository.
var _ usecase.ColumnRepository = (*columnGorm)(nil)

// NewColumnRepository creates a columnGorm backed by db.
func NewColumnRepository(db *gorm.DB) *columnGorm {
	return &columnGorm{db: db}
}

func (r *columnGorm) List(ctx context.Context, userID uint) ([]entity.Column, error) {
	out := make([]entity.Column, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *columnGorm) FindByID(ctx context.Context, userID, id uint) (*entity.Column, error) {
	var col entity.Column
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&col).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrColumnNotFound
		}
		return nil, err
	}
	return &col, nil
}

func (r *columnGorm) NextPosition(ctx context.Context, userID uint) (int, error) {
	var next int
	err := r.db.WithContext(ctx).Model(&entity.Column{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(position), -1) + 1").
		Scan(&next).Error
	return next, err
}

func (r *columnGorm) Create(ctx context.Context, col *entity.Column) error {
	if col == nil {
		return errors.New("column is nil")
	}
	return r.db.WithContext(ctx).Create(col).Error
}

func (r *columnGorm) Update(ctx context.Context, col *entity.Column) error {
	return r.db.WithContext(ctx).Save(col).Error
}

// Delete removes the column's tasks and then the column in one transaction.
func (r *columnGorm) Delete(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("column_id = ? AND user_id = ?", id, userID).Delete(&entity.Task{}).Error; err != nil {
			return fmt.Errorf("failed to delete column tasks: %w", err)
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Column{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrColumnNotFound
		}
		return nil
	})
}

// Reorder writes every position in one transaction so a failure leaves the old order intact.
func (r *columnGorm) Reorder(ctx context.Context, userID uint, ids []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			err := tx.Model(&entity.Column{}).
				Where("id = ? AND user_id = ?", id, userID).
				UpdateColumn("position", i).Error
			if err != nil {
				return fmt.Errorf("failed to set position of column %d: %w", id, err)
			}
		}
		return nil
	})
}

// DeleteAllByUser removes every task and column the user owns in one transaction.
func (r *columnGorm) DeleteAllByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&entity.Task{}).Error; err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&entity.Column{}).Error; err != nil {
			return fmt.Errorf("failed to delete columns: %w", err)
		}
		return nil
	})
}
