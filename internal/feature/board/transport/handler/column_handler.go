package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"kanban_backend/internal/feature/board/domain/entity"
	"kanban_backend/internal/feature/board/transport/http/dto"
	"kanban_backend/internal/feature/board/usecase"
)

// ColumnUsecase defines the column operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type ColumnUsecase interface {
	List(ctx context.Context, userID uint) ([]entity.Column, error)
	Create(ctx context.Context, userID uint, title string) (*entity.Column, error)
	Update(ctx context.Context, userID, id uint, patch usecase.ColumnPatch) (*entity.Column, error)
	Delete(ctx context.Context, userID, id uint) error
	Reorder(ctx context.Context, userID uint, ids []uint) error
}

// ColumnHandler handles the /columns endpoints.
type ColumnHandler struct {
	uc ColumnUsecase
}

// NewColumnHandler creates a ColumnHandler.
func NewColumnHandler(uc ColumnUsecase) *ColumnHandler {
	return &ColumnHandler{uc: uc}
}

// List handles GET /columns.
func (h *ColumnHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cols, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ColumnResList(cols))
}

// Create handles POST /columns.
func (h *ColumnHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.ColumnReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid request"})
		return
	}
	title := ""
	if req.Title != nil {
		title = *req.Title
	}
	col, err := h.uc.Create(c.Request.Context(), userID, title)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ColumnResFromEntity(col))
}

// Update handles PUT /columns/:id.
func (h *ColumnHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ColumnReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid request"})
		return
	}
	col, err := h.uc.Update(c.Request.Context(), userID, id, usecase.ColumnPatch{Title: req.Title, Position: req.Position})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ColumnResFromEntity(col))
}

// Delete handles DELETE /columns/:id. Tasks in the column are deleted with it.
func (h *ColumnHandler) Delete(c *gin.Context) {
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
	slog.Info("column deleted", "user_id", userID, "column_id", id)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "column deleted"})
}

// Reorder handles POST /columns/reorder.
func (h *ColumnHandler) Reorder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.ReorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "columnOrder is required"})
		return
	}
	ids := make([]uint, 0, len(req.ColumnOrder))
	for _, item := range req.ColumnOrder {
		ids = append(ids, item.ID)
	}
	if err := h.uc.Reorder(c.Request.Context(), userID, ids); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "columns reordered"})
}
