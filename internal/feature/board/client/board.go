package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"kanban_backend/internal/feature/board/transport/http/dto"
	httpclient "kanban_backend/internal/platform/http"
)

// Board mirrors one user's columns and tasks. Mutations are applied locally
// first and then sent to the API; when the API call fails the affected lists
// are refetched from the server and the API error is returned.
// A Board is safe for concurrent use.
type Board struct {
	api *api

	mu      sync.RWMutex
	columns []dto.ColumnRes
	tasks   []dto.TaskRes
}

// New creates a Board talking to baseURL (for example http://localhost:3001/api) with a bearer token.
// A nil hc uses a client with a 10 second timeout.
func New(baseURL, token string, hc *http.Client) *Board {
	if hc == nil {
		hc = httpclient.NewHTTPClient(10 * time.Second)
	}
	return &Board{api: &api{baseURL: baseURL, token: token, hc: hc}}
}

// Load replaces the local state with the server's columns and tasks.
func (b *Board) Load(ctx context.Context) error {
	cols, err := b.api.listColumns(ctx)
	if err != nil {
		return err
	}
	tasks, err := b.api.listTasks(ctx)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.columns, b.tasks = cols, tasks
	b.mu.Unlock()
	return nil
}

// Columns returns a copy of the columns ordered by position.
func (b *Board) Columns() []dto.ColumnRes {
	b.mu.RLock()
	out := slices.Clone(b.columns)
	b.mu.RUnlock()
	slices.SortStableFunc(out, func(x, y dto.ColumnRes) int { return x.Position - y.Position })
	return out
}

// Tasks returns a copy of every task in server order.
func (b *Board) Tasks() []dto.TaskRes {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cloneTasks(b.tasks)
}

// TasksIn returns a copy of one column's tasks ordered by position.
func (b *Board) TasksIn(columnID uint) []dto.TaskRes {
	b.mu.RLock()
	out := make([]dto.TaskRes, 0)
	for _, t := range b.tasks {
		if t.Column == columnID {
			out = append(out, cloneTask(t))
		}
	}
	b.mu.RUnlock()
	slices.SortStableFunc(out, func(x, y dto.TaskRes) int { return x.Position - y.Position })
	return out
}

// AddColumn creates a column and appends the server's copy.
func (b *Board) AddColumn(ctx context.Context, title string) (dto.ColumnRes, error) {
	var col dto.ColumnRes
	if err := b.api.do(ctx, http.MethodPost, "/columns", dto.ColumnReq{Title: &title}, &col); err != nil {
		return dto.ColumnRes{}, err
	}
	b.mu.Lock()
	b.columns = append(b.columns, col)
	b.mu.Unlock()
	return col, nil
}

// RenameColumn changes a column title.
func (b *Board) RenameColumn(ctx context.Context, id uint, title string) error {
	b.mu.Lock()
	snap := b.snapshot()
	for i := range b.columns {
		if b.columns[i].ID == id {
			b.columns[i].Title = title
		}
	}
	b.mu.Unlock()

	var col dto.ColumnRes
	if err := b.api.do(ctx, http.MethodPut, fmt.Sprintf("/columns/%d", id), dto.ColumnReq{Title: &title}, &col); err != nil {
		return b.rollback(ctx, snap, err, true)
	}
	b.mu.Lock()
	for i := range b.columns {
		if b.columns[i].ID == id {
			b.columns[i] = col
		}
	}
	b.mu.Unlock()
	return nil
}

// DeleteColumn removes a column and its tasks.
func (b *Board) DeleteColumn(ctx context.Context, id uint) error {
	b.mu.Lock()
	snap := b.snapshot()
	b.columns = slices.DeleteFunc(b.columns, func(c dto.ColumnRes) bool { return c.ID == id })
	b.tasks = slices.DeleteFunc(b.tasks, func(t dto.TaskRes) bool { return t.Column == id })
	b.mu.Unlock()

	if err := b.api.do(ctx, http.MethodDelete, fmt.Sprintf("/columns/%d", id), nil, nil); err != nil {
		return b.rollback(ctx, snap, err, true)
	}
	return nil
}

// ReorderColumns positions the columns by their index in ids.
func (b *Board) ReorderColumns(ctx context.Context, ids []uint) error {
	b.mu.Lock()
	snap := b.snapshot()
	for pos, id := range ids {
		for i := range b.columns {
			if b.columns[i].ID == id {
				b.columns[i].Position = pos
			}
		}
	}
	b.mu.Unlock()

	req := dto.ReorderReq{ColumnOrder: make([]dto.ReorderItem, 0, len(ids))}
	for _, id := range ids {
		req.ColumnOrder = append(req.ColumnOrder, dto.ReorderItem{ID: id})
	}
	if err := b.api.do(ctx, http.MethodPost, "/columns/reorder", req, nil); err != nil {
		return b.rollback(ctx, snap, err, true)
	}
	return nil
}

// AddTask creates a task in columnID and appends the server's copy.
func (b *Board) AddTask(ctx context.Context, columnID uint, in dto.CreateTaskReq) (dto.TaskRes, error) {
	in.Column = columnID
	var task dto.TaskRes
	if err := b.api.do(ctx, http.MethodPost, "/tasks", in, &task); err != nil {
		return dto.TaskRes{}, err
	}
	b.mu.Lock()
	b.tasks = append(b.tasks, task)
	b.mu.Unlock()
	return task, nil
}

// UpdateTask applies patch locally, sends it and keeps the server's copy.
func (b *Board) UpdateTask(ctx context.Context, id uint, patch dto.UpdateTaskReq) error {
	b.mu.Lock()
	snap := b.snapshot()
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			applyPatch(&b.tasks[i], patch)
		}
	}
	b.mu.Unlock()

	var task dto.TaskRes
	if err := b.api.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), patch, &task); err != nil {
		return b.rollback(ctx, snap, err, false)
	}
	b.replaceTask(task)
	return nil
}

// DeleteTask removes a task.
func (b *Board) DeleteTask(ctx context.Context, id uint) error {
	b.mu.Lock()
	snap := b.snapshot()
	b.tasks = slices.DeleteFunc(b.tasks, func(t dto.TaskRes) bool { return t.ID == id })
	b.mu.Unlock()

	if err := b.api.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil); err != nil {
		return b.rollback(ctx, snap, err, false)
	}
	return nil
}

// MoveTask relocates a task. Locally it mirrors the server: followers are
// shifted only for a move within one column.
func (b *Board) MoveTask(ctx context.Context, taskID, sourceColumnID, destinationColumnID uint, newPosition int) error {
	b.mu.Lock()
	snap := b.snapshot()
	for i := range b.tasks {
		t := &b.tasks[i]
		switch {
		case t.ID == taskID:
			if sourceColumnID != destinationColumnID {
				t.Column = destinationColumnID
			}
			t.Position = newPosition
		case sourceColumnID == destinationColumnID && t.Column == sourceColumnID && t.Position >= newPosition:
			t.Position++
		}
	}
	b.mu.Unlock()

	req := dto.MoveTaskReq{
		TaskID:              taskID,
		SourceColumnID:      sourceColumnID,
		DestinationColumnID: destinationColumnID,
		NewPosition:         &newPosition,
	}
	if err := b.api.do(ctx, http.MethodPost, "/tasks/move", req, nil); err != nil {
		return b.rollback(ctx, snap, err, false)
	}
	return nil
}

// refetchTimeout bounds the rollback refetch, which outlives the caller's context.
const refetchTimeout = 5 * time.Second

// state is a copy of the local lists taken before an optimistic edit.
type state struct {
	columns []dto.ColumnRes
	tasks   []dto.TaskRes
}

// snapshot copies the local lists. Caller holds mu.
func (b *Board) snapshot() state {
	return state{columns: slices.Clone(b.columns), tasks: cloneTasks(b.tasks)}
}

// rollback discards optimistic changes by refetching the tasks, and the columns
// too when withColumns is set. The refetch runs even if ctx is already done,
// since a cancelled or timed out call is the usual reason to get here. If the
// refetch fails as well, snap is restored. It returns cause, joined with any
// refetch error.
func (b *Board) rollback(ctx context.Context, snap state, cause error, withColumns bool) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refetchTimeout)
	defer cancel()

	tasks, err := b.api.listTasks(ctx)
	if err != nil {
		b.restore(snap)
		return errors.Join(cause, fmt.Errorf("refetch tasks: %w", err))
	}
	var cols []dto.ColumnRes
	if withColumns {
		if cols, err = b.api.listColumns(ctx); err != nil {
			b.restore(snap)
			return errors.Join(cause, fmt.Errorf("refetch columns: %w", err))
		}
	}
	b.mu.Lock()
	b.tasks = tasks
	if withColumns {
		b.columns = cols
	}
	b.mu.Unlock()
	return cause
}

func (b *Board) restore(snap state) {
	b.mu.Lock()
	b.columns, b.tasks = snap.columns, snap.tasks
	b.mu.Unlock()
}

func (b *Board) replaceTask(task dto.TaskRes) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.tasks {
		if b.tasks[i].ID == task.ID {
			b.tasks[i] = task
			return
		}
	}
}

func applyPatch(t *dto.TaskRes, p dto.UpdateTaskReq) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Column != nil {
		t.Column = *p.Column
	}
	if p.Labels.Set {
		t.Labels = slices.Clone(p.Labels.Value)
		if t.Labels == nil {
			t.Labels = []string{}
		}
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate.Set {
		t.DueDate = p.DueDate.Value
	}
	if p.Position != nil {
		t.Position = *p.Position
	}
}

func cloneTask(t dto.TaskRes) dto.TaskRes {
	t.Labels = slices.Clone(t.Labels)
	return t
}

func cloneTasks(in []dto.TaskRes) []dto.TaskRes {
	out := make([]dto.TaskRes, 0, len(in))
	for _, t := range in {
		out = append(out, cloneTask(t))
	}
	return out
}
