package repository

import (
	"context"
	"errors"
	"time"

	"questboard/internal/models"
	"questboard/internal/observability"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	// CreateConnected inserts msg only if an accepted connection exists
	// between sender and recipient, inside a single transaction.
	CreateConnected(ctx context.Context, msg *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	// ListConversation returns the most recent messages of a conversation,
	// oldest first within the window. When markRead is true, messages
	// addressed to viewerID are stamped read in the same transaction and
	// the returned slice reflects the new read state.
	ListConversation(ctx context.Context, conversationID string, viewerID uint, limit int, markRead bool) ([]models.Message, error)
	MarkRead(ctx context.Context, recipientID uint, messageIDs []uint) (int64, error)
	// MarkConversationRead stamps every unread message in the conversation
	// addressed to recipientID. Returns the number of rows updated.
	MarkConversationRead(ctx context.Context, conversationID string, recipientID uint) (int64, error)
	ListSummaries(ctx context.Context, userID uint) ([]models.ConversationSummary, error)
	UnreadTotal(ctx context.Context, userID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) CreateConnected(ctx context.Context, msg *models.Message) error {
	defer observability.TrackQuery("create", "messages")()

	a, b := msg.SenderID, msg.RecipientID
	if a > b {
		a, b = b, a
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Connection{}).
			Where("user_a_id = ? AND user_b_id = ? AND status = ?", a, b, models.ConnectionStatusAccepted).
			Count(&count).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		if count == 0 {
			return models.NewForbiddenError("You can only message users you are connected with")
		}

		msg.ConversationID = models.ConversationID(msg.SenderID, msg.RecipientID)
		if err := tx.Create(msg).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	observability.MessagesSent.Inc()
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &msg, nil
}

func (r *messageRepository) ListConversation(ctx context.Context, conversationID string, viewerID uint, limit int, markRead bool) ([]models.Message, error) {
	defer observability.TrackQuery("list", "messages")()

	var messages []models.Message
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if markRead {
			result := tx.Model(&models.Message{}).
				Where("conversation_id = ? AND recipient_id = ? AND read_at IS NULL", conversationID, viewerID).
				Update("read_at", time.Now())
			if result.Error != nil {
				return models.NewInternalError(result.Error)
			}
			if result.RowsAffected > 0 {
				observability.MessagesMarkedRead.Add(float64(result.RowsAffected))
			}
		}

		err := tx.Where("conversation_id = ?", conversationID).
			Order("created_at DESC").
			Limit(limit).
			Preload("Sender").
			Find(&messages).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// reverse to chronological order for display
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// MarkRead stamps the given messages read, but only those addressed to
// recipientID and still unread. Returns the number of rows updated.
func (r *messageRepository) MarkRead(ctx context.Context, recipientID uint, messageIDs []uint) (int64, error) {
	if len(messageIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id IN ? AND recipient_id = ? AND read_at IS NULL", messageIDs, recipientID).
		Update("read_at", time.Now())
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		observability.MessagesMarkedRead.Add(float64(result.RowsAffected))
	}
	return result.RowsAffected, nil
}

func (r *messageRepository) MarkConversationRead(ctx context.Context, conversationID string, recipientID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND recipient_id = ? AND read_at IS NULL", conversationID, recipientID).
		Update("read_at", time.Now())
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		observability.MessagesMarkedRead.Add(float64(result.RowsAffected))
	}
	return result.RowsAffected, nil
}

// ListSummaries builds the inbox: one row per conversation the user is
// part of, with unread counts, ordered by most recent activity.
func (r *messageRepository) ListSummaries(ctx context.Context, userID uint) ([]models.ConversationSummary, error) {
	defer observability.TrackQuery("summaries", "messages")()

	type convRow struct {
		ConversationID string
		LastActivity   time.Time
		UnreadCount    int64
	}
	var rows []convRow
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Select("conversation_id, MAX(created_at) AS last_activity, "+
			"SUM(CASE WHEN recipient_id = ? AND read_at IS NULL THEN 1 ELSE 0 END) AS unread_count", userID).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Group("conversation_id").
		Order("last_activity DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	summaries := make([]models.ConversationSummary, 0, len(rows))
	for _, row := range rows {
		var last models.Message
		err := r.db.WithContext(ctx).
			Where("conversation_id = ?", row.ConversationID).
			Order("created_at DESC").
			First(&last).Error
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		peerID := last.SenderID
		if peerID == userID {
			peerID = last.RecipientID
		}
		summaries = append(summaries, models.ConversationSummary{
			ConversationID: row.ConversationID,
			LastMessage:    last.Content,
			LastActivity:   row.LastActivity,
			UnreadCount:    row.UnreadCount,
			PeerID:         peerID,
		})
	}
	return summaries, nil
}

func (r *messageRepository) UnreadTotal(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("recipient_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Message{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
