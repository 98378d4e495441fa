// Package handler provides HTTP handlers for the board feature.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"kanban_backend/internal/feature/board/transport/http/dto"
	"kanban_backend/internal/feature/board/usecase"
	jwtmw "kanban_backend/internal/platform/jwt"
)

// currentUser returns the authenticated caller or writes a 401.
func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "invalid credential"})
		return 0, false
	}
	return userID, true
}

// pathID binds a positive integer path parameter or writes a 400.
func pathID(c *gin.Context, name string) (uint, bool) {
	var id uint
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Required:      true,
	})
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid " + name})
		return 0, false
	}
	return id, true
}

// writeError maps usecase errors to HTTP responses. Unknown errors become an opaque 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrTitleRequired),
		errors.Is(err, usecase.ErrColumnRequired),
		errors.Is(err, usecase.ErrInvalidPriority),
		errors.Is(err, usecase.ErrInvalidPosition):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: err.Error()})
	case errors.Is(err, usecase.ErrColumnNotFound), errors.Is(err, usecase.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, dto.MessageResponse{Message: err.Error()})
	default:
		slog.Error("board request failed", "error", err, "method", c.Request.Method, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "server error"})
	}
}
