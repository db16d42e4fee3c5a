package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents the users table
type User struct {
	ID           uint64  `gorm:"primaryKey;autoIncrement"`
	Name         string  `gorm:"type:varchar(64);not null"`
	Email        *string `gorm:"type:varchar(255);uniqueIndex"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	Avatar       *string `gorm:"type:varchar(512)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}

// Profile is the public projection of a user shown next to rooms and messages.
type Profile struct {
	ID     uint64  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

func (u User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}

// UserSession represents the user_sessions table
type UserSession struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	UserID    uint64    `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	IsRevoked bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (UserSession) TableName() string {
	return "user_sessions"
}

func (s UserSession) Active(now time.Time) bool {
	return !s.IsRevoked && now.Before(s.ExpiresAt)
}
