package service

import (
	"context"

	"questboard/internal/featureflags"
	"questboard/internal/models"
	"questboard/internal/repository"
	"questboard/internal/validation"
)

const (
	defaultConversationLimit = 50
	maxConversationLimit     = 100
)

// MessageService handles direct messaging between connected users.
type MessageService struct {
	msgRepo  repository.MessageRepository
	userRepo repository.UserRepository
	flags    *featureflags.Manager
}

// NewMessageService creates a new message service
func NewMessageService(msgRepo repository.MessageRepository, userRepo repository.UserRepository, flags *featureflags.Manager) *MessageService {
	return &MessageService{msgRepo: msgRepo, userRepo: userRepo, flags: flags}
}

// Send delivers a message from sender to recipient. Delivery requires an
// accepted connection between the two; the check and the insert run in
// one transaction inside the repository.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID uint, content string) (*models.Message, error) {
	if recipientID == 0 {
		return nil, models.NewValidationError("recipientId is required")
	}
	if senderID == recipientID {
		return nil, models.NewValidationError("You cannot message yourself")
	}
	if err := validation.ValidateMessageContent(content); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}
	if err := s.msgRepo.CreateConnected(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Conversation returns the recent messages of one conversation, provided
// the viewer is a participant. When the fetch_marks_read flag is enabled
// for the viewer, their unread messages in the conversation are marked
// read as a side effect of the fetch.
func (s *MessageService) Conversation(ctx context.Context, viewerID uint, conversationID string, limit int) ([]models.Message, error) {
	if conversationID == "" {
		return nil, models.NewValidationError("conversationId is required")
	}
	if !conversationIncludes(conversationID, viewerID) {
		return nil, models.NewForbiddenError("You are not part of this conversation")
	}
	if limit < 1 || limit > maxConversationLimit {
		limit = defaultConversationLimit
	}

	markRead := s.flags.Enabled("fetch_marks_read", viewerID)
	return s.msgRepo.ListConversation(ctx, conversationID, viewerID, limit, markRead)
}

// Inbox returns one summary row per conversation plus the total unread
// count, with peer profiles attached.
func (s *MessageService) Inbox(ctx context.Context, viewerID uint) (*models.Inbox, error) {
	summaries, err := s.msgRepo.ListSummaries(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	peerIDs := make([]uint, 0, len(summaries))
	for i := range summaries {
		peerIDs = append(peerIDs, summaries[i].PeerID)
	}
	peers, err := s.userRepo.GetByIDs(ctx, peerIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.User, len(peers))
	for i := range peers {
		byID[peers[i].ID] = &peers[i]
	}
	for i := range summaries {
		summaries[i].Peer = byID[summaries[i].PeerID]
	}

	total, err := s.msgRepo.UnreadTotal(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return &models.Inbox{Conversations: summaries, UnreadTotal: total}, nil
}

// MarkRead stamps messages as read for the viewer. Exactly one selector
// must be supplied: a conversation id (marks everything unread in it) or
// an explicit list of message ids.
func (s *MessageService) MarkRead(ctx context.Context, viewerID uint, conversationID string, messageIDs []uint) (int64, error) {
	if conversationID == "" && len(messageIDs) == 0 {
		return 0, models.NewValidationError("Provide conversationId or messageIds")
	}

	if conversationID != "" {
		if !conversationIncludes(conversationID, viewerID) {
			return 0, models.NewForbiddenError("You are not part of this conversation")
		}
		return s.msgRepo.MarkConversationRead(ctx, conversationID, viewerID)
	}

	return s.msgRepo.MarkRead(ctx, viewerID, messageIDs)
}

// Delete removes a message. Only the sender may delete their own message;
// deleting a message that no longer exists succeeds silently.
func (s *MessageService) Delete(ctx context.Context, actorID, messageID uint) error {
	msg, err := s.msgRepo.GetByID(ctx, messageID)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
			return nil
		}
		return err
	}
	if msg.SenderID != actorID {
		return models.NewForbiddenError("You can only delete messages you sent")
	}
	return s.msgRepo.Delete(ctx, messageID)
}

// conversationIncludes reports whether userID is one of the two ids
// encoded in a conversation identifier.
func conversationIncludes(conversationID string, userID uint) bool {
	a, b, ok := models.ParseConversationID(conversationID)
	if !ok {
		return false
	}
	return a == userID || b == userID
}
