// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`
	// Email must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`
	// Password is the bcrypt hash. Google accounts get a random one that is never disclosed.
	Password string `gorm:"size:255;not null"`
	// FullName is the optional display name.
	FullName string `gorm:"size:255"`
	// ProfilePicture is a public URL, either under /uploads or an external provider URL.
	ProfilePicture string `gorm:"size:1024"`
	// GoogleID is the Google account subject for users who signed in with Google.
	GoogleID string `gorm:"size:64;index"`
	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
