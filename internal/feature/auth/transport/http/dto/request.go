// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import "mime/multipart"

// RegisterReq is the body of POST /auth/register (JSON or multipart form).
// Presence of email and password is checked by the usecase so both encodings report the same error.
type RegisterReq struct {
	Email          string                `json:"email" form:"email"`
	Password       string                `json:"password" form:"password"`
	FullName       string                `json:"fullName" form:"fullName"`
	ProfilePicture *multipart.FileHeader `json:"-" form:"profilePicture"`
}

// LoginReq is the body of POST /auth/login.
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileReq is the body of PUT /auth/profile (multipart form or JSON).
type ProfileReq struct {
	FullName       *string               `json:"fullName" form:"fullName"`
	ProfilePicture *multipart.FileHeader `json:"-" form:"profilePicture"`
}

// PasswordReq is the body of PUT /auth/password.
type PasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}
