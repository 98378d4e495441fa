// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"kanban_backend/internal/feature/auth/domain/entity"
	"kanban_backend/internal/feature/auth/transport/http/dto"
	"kanban_backend/internal/feature/auth/usecase"
	jwtmw "kanban_backend/internal/platform/jwt"
)

// AuthUsecase defines the account operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Signup(ctx context.Context, in usecase.SignupInput) error
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	Me(ctx context.Context, userID uint) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uint, in usecase.ProfileInput) (*entity.User, error)
	ChangePassword(ctx context.Context, userID uint, current, next string) error
	DeleteAccount(ctx context.Context, userID uint) error
	GoogleAuthURL(ctx context.Context) (string, error)
	LoginWithGoogle(ctx context.Context, state, code string) (string, error)
}

// AuthHandler handles the /auth endpoints.
type AuthHandler struct {
	auth        AuthUsecase
	frontendURL string
}

// NewAuthHandler creates an AuthHandler. frontendURL is where the Google callback sends the browser.
func NewAuthHandler(auth AuthUsecase, frontendURL string) *AuthHandler {
	return &AuthHandler{auth: auth, frontendURL: frontendURL}
}

// Register handles POST /auth/register.
//   - 400 when email or password is missing, the password is too short or the picture is rejected
//   - 409 when the email is taken
//   - 201 on success
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("register binding failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid request"})
		return
	}

	avatar, closeAvatar, err := openAvatar(req.ProfilePicture)
	if err != nil {
		slog.Error("failed to open uploaded picture", "error", err)
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid profile picture"})
		return
	}
	defer closeAvatar()

	in := usecase.SignupInput{Email: req.Email, Password: req.Password, FullName: req.FullName, Avatar: avatar}
	if err := h.auth.Signup(c.Request.Context(), in); err != nil {
		slog.Warn("register failed", "error", err, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("user registered", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "user created"})
}

// Login handles POST /auth/login.
// The same 401 message is used for unknown emails and wrong passwords.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login binding failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid request"})
		return
	}
	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginRes{Token: token, User: dto.UserResFromEntity(user)})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "invalid credential"})
		return
	}
	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserResFromEntity(user))
}

// UpdateProfile handles PUT /auth/profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "invalid credential"})
		return
	}
	var req dto.ProfileReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid request"})
		return
	}

	avatar, closeAvatar, err := openAvatar(req.ProfilePicture)
	if err != nil {
		slog.Error("failed to open uploaded picture", "error", err)
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid profile picture"})
		return
	}
	defer closeAvatar()

	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, usecase.ProfileInput{FullName: req.FullName, Avatar: avatar})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserResFromEntity(user))
}

// ChangePassword handles PUT /auth/password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "invalid credential"})
		return
	}
	var req dto.PasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "current and new password are required"})
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	slog.Info("password changed", "user_id", userID)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "password updated"})
}

// DeleteAccount handles DELETE /auth/account.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "invalid credential"})
		return
	}
	if err := h.auth.DeleteAccount(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}
	slog.Info("account deleted", "user_id", userID)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "account deleted"})
}

// GoogleLogin handles GET /auth/google by redirecting to the consent page.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	target, err := h.auth.GoogleAuthURL(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, target)
}

// GoogleCallback handles GET /auth/google/callback and redirects the browser back to the front end,
// either to /auth-success?token=... or to /login?error=authentication_failed.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		slog.Warn("google sign-in cancelled", "error", errParam)
		c.Redirect(http.StatusFound, h.frontendURL+"/login?error=authentication_failed")
		return
	}

	token, err := h.auth.LoginWithGoogle(c.Request.Context(), c.Query("state"), c.Query("code"))
	if err != nil {
		if errors.Is(err, usecase.ErrOAuthDisabled) {
			writeError(c, err)
			return
		}
		slog.Error("google callback failed", "error", err)
		c.Redirect(http.StatusFound, h.frontendURL+"/login?error=authentication_failed")
		return
	}
	c.Redirect(http.StatusFound, h.frontendURL+"/auth-success?token="+url.QueryEscape(token))
}

// openAvatar opens an uploaded file. The returned func closes it and is safe to call when fh is nil.
func openAvatar(fh *multipart.FileHeader) (*usecase.Avatar, func(), error) {
	if fh == nil {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	closeFn := func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close uploaded file", "error", err)
		}
	}
	return &usecase.Avatar{Filename: fh.Filename, Content: f}, closeFn, nil
}

// writeError maps usecase errors to HTTP responses. Unknown errors become an opaque 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrMissingCredentials):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "email and password are required"})
	case errors.Is(err, usecase.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "password must be at least 8 characters long"})
	case errors.Is(err, usecase.ErrIncorrectPassword):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "current password is incorrect"})
	case errors.Is(err, usecase.ErrInvalidAvatar):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid profile picture"})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "invalid email or password"})
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "user not found"})
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, dto.MessageResponse{Message: "email already in use"})
	case errors.Is(err, usecase.ErrOAuthDisabled):
		c.JSON(http.StatusServiceUnavailable, dto.MessageResponse{Message: "google sign-in is not configured"})
	default:
		slog.Error("auth request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "server error"})
	}
}
