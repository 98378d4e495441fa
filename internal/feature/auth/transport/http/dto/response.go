package dto

import "kanban_backend/internal/feature/auth/domain/entity"

// MessageResponse carries a human-readable status or error message.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserRes is the public view of a user. The password hash never leaves the server.
type UserRes struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
}

// LoginRes is the body returned by a successful login.
type LoginRes struct {
	Token string  `json:"token"`
	User  UserRes `json:"user"`
}

// UserResFromEntity converts a user to its public view.
func UserResFromEntity(u *entity.User) UserRes {
	return UserRes{
		FullName:       u.FullName,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
	}
}
