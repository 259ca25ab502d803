// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account on the platform, with the profile fields
// surfaced on the public job board and in connection/message responses.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	UserType  string         `gorm:"type:varchar(30);default:'player'" json:"user_type"`
	GamerTag  string         `json:"gamer_tag"`
	Bio       string         `json:"bio"`
	AvatarURL string         `json:"avatar_url"`
	Verified  bool           `gorm:"default:false" json:"verified"`
	IsAdmin   bool           `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Known user types. UserType is free-form in the database; these are the
// values the clients present in the profile picker.
const (
	UserTypePlayer    = "player"
	UserTypeCoach     = "coach"
	UserTypeRecruiter = "recruiter"
	UserTypeCaster    = "caster"
)
