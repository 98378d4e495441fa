package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kanban_backend/internal/feature/board/domain/entity"
	"kanban_backend/internal/feature/board/usecase"
)

// taskGorm is the GORM implementation of usecase.TaskRepository.
type taskGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure taskGorm implements TaskRepository.
var _ usecase.TaskRepository = (*taskGorm)(nil)

// NewTaskRepository creates a taskGorm backed by db.
func NewTaskRepository(db *gorm.DB) *taskGorm {
	return &taskGorm{db: db}
}

func (r *taskGorm) List(ctx context.Context, userID uint) ([]entity.Task, error) {
	out := make([]entity.Task, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *taskGorm) ListByColumn(ctx context.Context, userID, columnID uint) ([]entity.Task, error) {
	out := make([]entity.Task, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND column_id = ?", userID, columnID).
		Order("position ASC").Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *taskGorm) FindByID(ctx context.Context, userID, id uint) (*entity.Task, error) {
	return findTask(r.db.WithContext(ctx), userID, id)
}

func findTask(db *gorm.DB, userID, id uint) (*entity.Task, error) {
	var t entity.Task
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *taskGorm) NextPosition(ctx context.Context, userID, columnID uint) (int, error) {
	var next int
	err := r.db.WithContext(ctx).Model(&entity.Task{}).
		Where("user_id = ? AND column_id = ?", userID, columnID).
		Select("COALESCE(MAX(position), -1) + 1").
		Scan(&next).Error
	return next, err
}

func (r *taskGorm) Create(ctx context.Context, t *entity.Task) error {
	if t == nil {
		return errors.New("task is nil")
	}
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *taskGorm) Update(ctx context.Context, t *entity.Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *taskGorm) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}

// Move writes the task's new column and position and, for a move inside one
// column, shifts the other tasks at or after the new position by one.
// All writes share a transaction.
func (r *taskGorm) Move(ctx context.Context, userID uint, m entity.Move) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := findTask(tx, userID, m.TaskID)
		if err != nil {
			return err
		}

		updates := map[string]any{"position": m.NewPosition}
		if !m.SameColumn() {
			updates["column_id"] = m.DestinationColumnID
		}
		if err := tx.Model(task).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to move task: %w", err)
		}

		if !m.SameColumn() {
			return nil
		}
		err = tx.Model(&entity.Task{}).
			Where("user_id = ? AND column_id = ? AND id <> ? AND position >= ?",
				userID, m.SourceColumnID, m.TaskID, m.NewPosition).
			UpdateColumn("position", gorm.Expr("position + 1")).Error
		if err != nil {
			return fmt.Errorf("failed to shift sibling tasks: %w", err)
		}
		return nil
	})
}

func (r *taskGorm) Stats(ctx context.Context, userID uint) ([]entity.PriorityStat, error) {
	out := make([]entity.PriorityStat, 0)
	err := r.db.WithContext(ctx).Model(&entity.Task{}).
		Select("priority, COUNT(*) AS count, SUM(CASE WHEN completed THEN 1 ELSE 0 END) AS completed").
		Where("user_id = ?", userID).
		Group("priority").
		Order("priority").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
