package repository

import (
	"context"
	"errors"

	"questboard/internal/models"
	"questboard/internal/observability"

	"gorm.io/gorm"
)

// JobFilter narrows job board listings.
type JobFilter struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// JobRepository defines the interface for job board data operations
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id uint) (*models.Job, error)
	GetBySlug(ctx context.Context, slug string) (*models.Job, error)
	List(ctx context.Context, filter JobFilter) ([]models.Job, int64, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id uint) error
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Job", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &job, nil
}

// GetBySlug serves the public detail page, so unpublished drafts stay
// invisible here. Admin edits go through GetByID.
func (r *jobRepository) GetBySlug(ctx context.Context, slug string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Where("slug = ? AND published = ?", slug, true).
		Preload("PostedBy").
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Job", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &job, nil
}

// List returns published jobs matching the filter plus the total match
// count for pagination.
func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]models.Job, int64, error) {
	defer observability.TrackQuery("list", "jobs")()

	query := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("published = ?", true)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR org_name LIKE ? OR tags LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var jobs []models.Job
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return jobs, total, nil
}

func (r *jobRepository) Update(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Job{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Job", id)
	}
	return nil
}
