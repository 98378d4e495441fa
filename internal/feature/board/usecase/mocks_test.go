package usecase

import (
	"context"

	"kanban_backend/internal/feature/board/domain/entity"
)

// mockColumnRepository is a func-field mock of ColumnRepository.
type mockColumnRepository struct {
	ListFunc         func(ctx context.Context, userID uint) ([]entity.Column, error)
	FindByIDFunc     func(ctx context.Context, userID, id uint) (*entity.Column, error)
	NextPositionFunc func(ctx context.Context, userID uint) (int, error)
	CreateFunc       func(ctx context.Context, col *entity.Column) error
	UpdateFunc       func(ctx context.Context, col *entity.Column) error
	DeleteFunc       func(ctx context.Context, userID, id uint) error
	ReorderFunc      func(ctx context.Context, userID uint, ids []uint) error
}

func (m *mockColumnRepository) List(ctx context.Context, userID uint) ([]entity.Column, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return []entity.Column{}, nil
}

func (m *mockColumnRepository) FindByID(ctx context.Context, userID, id uint) (*entity.Column, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, userID, id)
	}
	return nil, ErrColumnNotFound
}

func (m *mockColumnRepository) NextPosition(ctx context.Context, userID uint) (int, error) {
	if m.NextPositionFunc != nil {
		return m.NextPositionFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockColumnRepository) Create(ctx context.Context, col *entity.Column) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, col)
	}
	return nil
}

func (m *mockColumnRepository) Update(ctx context.Context, col *entity.Column) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, col)
	}
	return nil
}

func (m *mockColumnRepository) Delete(ctx context.Context, userID, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

func (m *mockColumnRepository) Reorder(ctx context.Context, userID uint, ids []uint) error {
	if m.ReorderFunc != nil {
		return m.ReorderFunc(ctx, userID, ids)
	}
	return nil
}

// mockTaskRepository is a func-field mock of TaskRepository.
type mockTaskRepository struct {
	ListFunc         func(ctx context.Context, userID uint) ([]entity.Task, error)
	ListByColumnFunc func(ctx context.Context, userID, columnID uint) ([]entity.Task, error)
	FindByIDFunc     func(ctx context.Context, userID, id uint) (*entity.Task, error)
	NextPositionFunc func(ctx context.Context, userID, columnID uint) (int, error)
	CreateFunc       func(ctx context.Context, task *entity.Task) error
	UpdateFunc       func(ctx context.Context, task *entity.Task) error
	DeleteFunc       func(ctx context.Context, userID, id uint) error
	MoveFunc         func(ctx context.Context, userID uint, m entity.Move) error
	StatsFunc        func(ctx context.Context, userID uint) ([]entity.PriorityStat, error)
}

func (m *mockTaskRepository) List(ctx context.Context, userID uint) ([]entity.Task, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return []entity.Task{}, nil
}

func (m *mockTaskRepository) ListByColumn(ctx context.Context, userID, columnID uint) ([]entity.Task, error) {
	if m.ListByColumnFunc != nil {
		return m.ListByColumnFunc(ctx, userID, columnID)
	}
	return []entity.Task{}, nil
}

func (m *mockTaskRepository) FindByID(ctx context.Context, userID, id uint) (*entity.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, userID, id)
	}
	return nil, ErrTaskNotFound
}

func (m *mockTaskRepository) NextPosition(ctx context.Context, userID, columnID uint) (int, error) {
	if m.NextPositionFunc != nil {
		return m.NextPositionFunc(ctx, userID, columnID)
	}
	return 0, nil
}

func (m *mockTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepository) Update(ctx context.Context, task *entity.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepository) Delete(ctx context.Context, userID, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

func (m *mockTaskRepository) Move(ctx context.Context, userID uint, mv entity.Move) error {
	if m.MoveFunc != nil {
		return m.MoveFunc(ctx, userID, mv)
	}
	return nil
}

func (m *mockTaskRepository) Stats(ctx context.Context, userID uint) ([]entity.PriorityStat, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, userID)
	}
	return []entity.PriorityStat{}, nil
}

// ownedColumns returns a FindByID func that accepts only the listed column ids for user 1.
func ownedColumns(ids ...uint) func(ctx context.Context, userID, id uint) (*entity.Column, error) {
	return func(ctx context.Context, userID, id uint) (*entity.Column, error) {
		if userID != 1 {
			return nil, ErrColumnNotFound
		}
		for _, owned := range ids {
			if owned == id {
				return &entity.Column{ID: id, UserID: userID, Title: "col"}, nil
			}
		}
		return nil, ErrColumnNotFound
	}
}
