package service

import (
	"context"

	"questboard/internal/cache"
	"questboard/internal/models"
	"questboard/internal/repository"
	"questboard/internal/validation"
)

// ProfileCompletion scores how filled-out a profile is, with hints for
// the missing pieces.
type ProfileCompletion struct {
	Score   int      `json:"score"`
	Missing []string `json:"missing,omitempty"`
}

// ProfileUpdate carries the mutable profile fields. Nil pointers leave
// the current value untouched.
type ProfileUpdate struct {
	GamerTag  *string `json:"gamer_tag"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	UserType  *string `json:"user_type"`
}

// ProfileService handles user profile reads and updates.
type ProfileService struct {
	userRepo repository.UserRepository
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// Get returns a user's profile, served cache-aside.
func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := cache.CacheAside(ctx, cache.UserKey(userID), &user, cache.UserTTL, func() error {
		u, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		user = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies a partial profile update and invalidates the cache.
func (s *ProfileService) Update(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.UserType != nil {
		if err := validation.ValidateUserType(*update.UserType); err != nil {
			return nil, err
		}
		if *update.UserType != "" {
			user.UserType = *update.UserType
		}
	}
	if update.GamerTag != nil {
		user.GamerTag = *update.GamerTag
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	cache.InvalidateUser(ctx, userID)
	return user, nil
}

// Completion scores a profile out of 100, cached for a short window.
func (s *ProfileService) Completion(ctx context.Context, userID uint) (*ProfileCompletion, error) {
	var completion ProfileCompletion
	err := cache.CacheAside(ctx, cache.CompletionKey(userID), &completion, cache.CompletionTTL, func() error {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		completion = scoreProfile(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &completion, nil
}

// scoreProfile weights the profile fields that matter most for getting
// noticed on the board.
func scoreProfile(user *models.User) ProfileCompletion {
	completion := ProfileCompletion{}
	add := func(filled bool, weight int, hint string) {
		if filled {
			completion.Score += weight
		} else {
			completion.Missing = append(completion.Missing, hint)
		}
	}

	add(user.Username != "", 20, "username")
	add(user.GamerTag != "", 20, "gamer_tag")
	add(user.Bio != "", 25, "bio")
	add(user.AvatarURL != "", 15, "avatar_url")
	add(user.UserType != "", 10, "user_type")
	add(user.Verified, 10, "verification")
	return completion
}
