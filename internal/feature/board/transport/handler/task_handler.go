package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"kanban_backend/internal/feature/board/domain/entity"
	"kanban_backend/internal/feature/board/transport/http/dto"
	"kanban_backend/internal/feature/board/usecase"
)

// TaskUsecase defines the task operations used by the handler.
type TaskUsecase interface {
	List(ctx context.Context, userID uint) ([]entity.Task, error)
	ListByColumn(ctx context.Context, userID, columnID uint) ([]entity.Task, error)
	Create(ctx context.Context, userID uint, in usecase.TaskInput) (*entity.Task, error)
	Update(ctx context.Context, userID, id uint, patch usecase.TaskPatch) (*entity.Task, error)
	Delete(ctx context.Context, userID, id uint) error
	Move(ctx context.Context, userID uint, m entity.Move) error
	Stats(ctx context.Context, userID uint) ([]entity.PriorityStat, error)
}

// TaskHandler handles the /tasks and /analytics endpoints.
type TaskHandler struct {
	uc TaskUsecase
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(uc TaskUsecase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// List handles GET /tasks.
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tasks, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskResList(tasks))
}

// ListByColumn handles GET /tasks/column/:id.
func (h *TaskHandler) ListByColumn(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	columnID, ok := pathID(c, "id")
	if !ok {
		return
	}
	tasks, err := h.uc.ListByColumn(c.Request.Context(), userID, columnID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskResList(tasks))
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid request"})
		return
	}
	task, err := h.uc.Create(c.Request.Context(), userID, usecase.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		ColumnID:    req.Column,
		Labels:      req.Labels,
		Priority:    entity.Priority(req.Priority),
		DueDate:     req.DueDate.Value,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TaskResFromEntity(task))
}

// Update handles PUT /tasks/:id.
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid request"})
		return
	}
	patch := usecase.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		ColumnID:    req.Column,
		DueDateSet:  req.DueDate.Set,
		DueDate:     req.DueDate.Value,
		Position:    req.Position,
	}
	if req.Labels.Set {
		patch.Labels = &req.Labels.Value
	}
	if req.Priority != nil {
		p := entity.Priority(*req.Priority)
		patch.Priority = &p
	}
	task, err := h.uc.Update(c.Request.Context(), userID, id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskResFromEntity(task))
}

// Delete handles DELETE /tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "task deleted"})
}

// Move handles POST /tasks/move.
func (h *TaskHandler) Move(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.MoveTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "taskId, sourceColumnId, destinationColumnId and newPosition are required"})
		return
	}
	err := h.uc.Move(c.Request.Context(), userID, entity.Move{
		TaskID:              req.TaskID,
		SourceColumnID:      req.SourceColumnID,
		DestinationColumnID: req.DestinationColumnID,
		NewPosition:         *req.NewPosition,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "task moved"})
}

// Analytics handles GET /analytics.
func (h *TaskHandler) Analytics(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	stats, err := h.uc.Stats(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PriorityStatResList(stats))
}
