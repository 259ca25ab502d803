// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Job is a single listing on the public job board.
type Job struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Slug        string         `gorm:"unique;not null" json:"slug"`
	OrgName     string         `gorm:"not null" json:"org_name"`
	Location    string         `json:"location"`
	Category    string         `gorm:"type:varchar(40);index" json:"category"`
	SalaryMin   int            `json:"salary_min"`
	SalaryMax   int            `json:"salary_max"`
	Description string         `gorm:"type:text" json:"description"`
	Tags        string         `json:"tags"` // comma-separated
	Published   bool           `gorm:"default:true;index" json:"published"`
	PostedByID  uint           `json:"posted_by_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	PostedBy *User `gorm:"foreignKey:PostedByID" json:"posted_by,omitempty"`
}

// Job categories shown as board filters.
const (
	JobCategoryPlayer     = "player"
	JobCategoryCoaching   = "coaching"
	JobCategoryProduction = "production"
	JobCategoryMarketing  = "marketing"
	JobCategoryOperations = "operations"
)
