package service

import (
	"context"
	"regexp"
	"strings"

	"questboard/internal/cache"
	"questboard/internal/models"
	"questboard/internal/repository"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// JobService handles the public job board: listing, search, and
// admin-managed postings.
type JobService struct {
	jobRepo  repository.JobRepository
	userRepo repository.UserRepository
}

// NewJobService creates a new job service
func NewJobService(jobRepo repository.JobRepository, userRepo repository.UserRepository) *JobService {
	return &JobService{jobRepo: jobRepo, userRepo: userRepo}
}

// List returns published jobs matching the filter with the total count.
func (s *JobService) List(ctx context.Context, filter repository.JobFilter) ([]models.Job, int64, error) {
	return s.jobRepo.List(ctx, filter)
}

// GetBySlug returns one published job, served cache-aside.
func (s *JobService) GetBySlug(ctx context.Context, slug string) (*models.Job, error) {
	var job models.Job
	err := cache.CacheAside(ctx, cache.JobKey(slug), &job, cache.JobTTL, func() error {
		j, err := s.jobRepo.GetBySlug(ctx, slug)
		if err != nil {
			return err
		}
		job = *j
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Create posts a new listing. Only admins may post.
func (s *JobService) Create(ctx context.Context, actorID uint, job *models.Job) (*models.Job, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(job.Title) == "" || strings.TrimSpace(job.OrgName) == "" {
		return nil, models.NewValidationError("Title and organization name are required")
	}
	if job.SalaryMin < 0 || (job.SalaryMax > 0 && job.SalaryMax < job.SalaryMin) {
		return nil, models.NewValidationError("Invalid salary range")
	}

	job.Slug = Slugify(job.OrgName + " " + job.Title)
	job.PostedByID = actorID
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Update edits an existing listing. Only admins may edit.
func (s *JobService) Update(ctx context.Context, actorID, jobID uint, apply func(*models.Job)) (*models.Job, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	apply(job)
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	cache.InvalidateJob(ctx, job.Slug)
	return job, nil
}

// Delete removes a listing. Only admins may delete.
func (s *JobService) Delete(ctx context.Context, actorID, jobID uint) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return err
	}
	cache.InvalidateJob(ctx, job.Slug)
	return nil
}

func (s *JobService) requireAdmin(ctx context.Context, actorID uint) error {
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !user.IsAdmin {
		return models.NewForbiddenError("Admin access required")
	}
	return nil
}

// Slugify converts a title into a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
