package repository

import (
	"context"
	"errors"

	"questboard/internal/models"
	"questboard/internal/observability"

	"gorm.io/gorm"
)

// ConnectionRepository defines the interface for connection data operations
type ConnectionRepository interface {
	Create(ctx context.Context, conn *models.Connection) error
	GetByID(ctx context.Context, id uint) (*models.Connection, error)
	GetBetweenUsers(ctx context.Context, userA, userB uint) (*models.Connection, error)
	ListForUser(ctx context.Context, userID uint, status models.ConnectionStatus) ([]models.Connection, error)
	ListIncomingPending(ctx context.Context, userID uint) ([]models.Connection, error)
	UpdateStatus(ctx context.Context, id uint, status models.ConnectionStatus) error
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context, userID uint) (*models.ConnectionCounts, error)
}

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new connection repository
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(ctx context.Context, conn *models.Connection) error {
	defer observability.TrackQuery("create", "connections")()
	if err := r.db.WithContext(ctx).Create(conn).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) GetByID(ctx context.Context, id uint) (*models.Connection, error) {
	var conn models.Connection
	if err := r.db.WithContext(ctx).First(&conn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Connection", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &conn, nil
}

// GetBetweenUsers looks up the single canonical row for an unordered pair.
// Returns (nil, nil) when no connection exists between the two users.
func (r *connectionRepository) GetBetweenUsers(ctx context.Context, userA, userB uint) (*models.Connection, error) {
	if userA > userB {
		userA, userB = userB, userA
	}
	var conn models.Connection
	err := r.db.WithContext(ctx).
		Where("user_a_id = ? AND user_b_id = ?", userA, userB).
		First(&conn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &conn, nil
}

// ListForUser returns connections involving userID, newest first. An empty
// status matches all statuses.
func (r *connectionRepository) ListForUser(ctx context.Context, userID uint, status models.ConnectionStatus) ([]models.Connection, error) {
	defer observability.TrackQuery("list", "connections")()
	query := r.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var conns []models.Connection
	if err := query.Order("updated_at DESC").Find(&conns).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return conns, nil
}

// ListIncomingPending returns pending requests awaiting userID's decision,
// i.e. pending rows the user did not initiate.
func (r *connectionRepository) ListIncomingPending(ctx context.Context, userID uint) ([]models.Connection, error) {
	var conns []models.Connection
	err := r.db.WithContext(ctx).
		Where("(user_a_id = ? OR user_b_id = ?) AND status = ? AND initiated_by != ?",
			userID, userID, models.ConnectionStatusPending, userID).
		Order("created_at DESC").
		Find(&conns).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return conns, nil
}

func (r *connectionRepository) UpdateStatus(ctx context.Context, id uint, status models.ConnectionStatus) error {
	defer observability.TrackQuery("update", "connections")()
	result := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Connection", id)
	}
	observability.ConnectionTransitions.WithLabelValues(string(status)).Inc()
	return nil
}

func (r *connectionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Connection{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) CountByStatus(ctx context.Context, userID uint) (*models.ConnectionCounts, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.Connection{}).
			Where("user_a_id = ? OR user_b_id = ?", userID, userID)
	}

	var counts models.ConnectionCounts
	if err := base().Count(&counts.Total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := base().Where("status = ?", models.ConnectionStatusPending).Count(&counts.Pending).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := base().Where("status = ?", models.ConnectionStatusAccepted).Count(&counts.Accepted).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &counts, nil
}
