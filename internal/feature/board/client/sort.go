package client

import (
	"cmp"
	"slices"
	"strings"

	"kanban_backend/internal/feature/board/domain/entity"
	"kanban_backend/internal/feature/board/transport/http/dto"
)

// SortMode selects a display order. It never changes persisted positions.
type SortMode string

const (
	SortCreatedDesc      SortMode = "createdAt-desc"
	SortCreatedAsc       SortMode = "createdAt-asc"
	SortDueDateAsc       SortMode = "dueDate-asc"
	SortAlphabeticalAsc  SortMode = "alphabetical-asc"
	SortAlphabeticalDesc SortMode = "alphabetical-desc"
	SortPriorityDesc     SortMode = "priority-desc"
	SortPriorityAsc      SortMode = "priority-asc"
)

// Sort returns a sorted copy of tasks; the input slice is left untouched.
// Tasks without a due date come last under SortDueDateAsc. An unknown mode
// returns the tasks in their original order.
func Sort(tasks []dto.TaskRes, mode SortMode) []dto.TaskRes {
	out := cloneTasks(tasks)
	var less func(a, b dto.TaskRes) int
	switch mode {
	case SortCreatedDesc:
		less = func(a, b dto.TaskRes) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case SortCreatedAsc:
		less = func(a, b dto.TaskRes) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortDueDateAsc:
		less = func(a, b dto.TaskRes) int {
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return 0
			case a.DueDate == nil:
				return 1
			case b.DueDate == nil:
				return -1
			}
			return a.DueDate.Compare(*b.DueDate)
		}
	case SortAlphabeticalAsc:
		less = func(a, b dto.TaskRes) int { return compareTitles(a.Title, b.Title) }
	case SortAlphabeticalDesc:
		less = func(a, b dto.TaskRes) int { return compareTitles(b.Title, a.Title) }
	case SortPriorityDesc:
		less = func(a, b dto.TaskRes) int { return cmp.Compare(rank(b), rank(a)) }
	case SortPriorityAsc:
		less = func(a, b dto.TaskRes) int { return cmp.Compare(rank(a), rank(b)) }
	default:
		return out
	}
	slices.SortStableFunc(out, less)
	return out
}

func compareTitles(a, b string) int {
	if c := cmp.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

func rank(t dto.TaskRes) int {
	return entity.Priority(t.Priority).Rank()
}
