// Package validation contains input validation helpers for user-supplied data.
package validation

import (
	"regexp"
	"strings"

	"questboard/internal/models"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidateUsername checks username format: 3-30 chars, alphanumeric and underscore.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return models.NewValidationError("Username must be 3-30 characters, letters, numbers and underscores only")
	}
	return nil
}

// ValidateEmail checks basic email format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return models.NewValidationError("Invalid email address")
	}
	return nil
}

// ValidatePassword enforces the minimum password policy.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return models.NewValidationError("Password must be at least 8 characters")
	}
	return nil
}

// ValidateUserType checks the profile type against the known set.
func ValidateUserType(userType string) error {
	switch userType {
	case "", models.UserTypePlayer, models.UserTypeCoach, models.UserTypeRecruiter, models.UserTypeCaster:
		return nil
	}
	return models.NewValidationError("Unknown user type")
}

// ValidateMessageContent rejects empty or oversized message bodies.
func ValidateMessageContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return models.NewValidationError("Message content cannot be empty")
	}
	if len(content) > 5000 {
		return models.NewValidationError("Message content exceeds 5000 characters")
	}
	return nil
}
