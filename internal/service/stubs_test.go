package service

import (
	"context"

	"questboard/internal/models"
	"questboard/internal/repository"
)

// Hand-written stubs with overridable behavior per test.

type stubUserRepo struct {
	getByID       func(ctx context.Context, id uint) (*models.User, error)
	getByIDs      func(ctx context.Context, ids []uint) ([]models.User, error)
	getByEmail    func(ctx context.Context, email string) (*models.User, error)
	getByUsername func(ctx context.Context, username string) (*models.User, error)
	create        func(ctx context.Context, user *models.User) error
	update        func(ctx context.Context, user *models.User) error
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return &models.User{ID: id, Username: "stub"}, nil
}

func (s *stubUserRepo) GetByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	if s.getByIDs != nil {
		return s.getByIDs(ctx, ids)
	}
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, models.User{ID: id, Username: "stub"})
	}
	return users, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmail != nil {
		return s.getByEmail(ctx, email)
	}
	return nil, nil
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsername != nil {
		return s.getByUsername(ctx, username)
	}
	return nil, nil
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.create != nil {
		return s.create(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if s.update != nil {
		return s.update(ctx, user)
	}
	return nil
}

type stubConnectionRepo struct {
	create              func(ctx context.Context, conn *models.Connection) error
	getByID             func(ctx context.Context, id uint) (*models.Connection, error)
	getBetweenUsers     func(ctx context.Context, a, b uint) (*models.Connection, error)
	listForUser         func(ctx context.Context, userID uint, status models.ConnectionStatus) ([]models.Connection, error)
	listIncomingPending func(ctx context.Context, userID uint) ([]models.Connection, error)
	updateStatus        func(ctx context.Context, id uint, status models.ConnectionStatus) error
	delete              func(ctx context.Context, id uint) error
	countByStatus       func(ctx context.Context, userID uint) (*models.ConnectionCounts, error)
}

func (s *stubConnectionRepo) Create(ctx context.Context, conn *models.Connection) error {
	if s.create != nil {
		return s.create(ctx, conn)
	}
	conn.ID = 1
	return nil
}

func (s *stubConnectionRepo) GetByID(ctx context.Context, id uint) (*models.Connection, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, models.NewNotFoundError("Connection", id)
}

func (s *stubConnectionRepo) GetBetweenUsers(ctx context.Context, a, b uint) (*models.Connection, error) {
	if s.getBetweenUsers != nil {
		return s.getBetweenUsers(ctx, a, b)
	}
	return nil, nil
}

func (s *stubConnectionRepo) ListForUser(ctx context.Context, userID uint, status models.ConnectionStatus) ([]models.Connection, error) {
	if s.listForUser != nil {
		return s.listForUser(ctx, userID, status)
	}
	return nil, nil
}

func (s *stubConnectionRepo) ListIncomingPending(ctx context.Context, userID uint) ([]models.Connection, error) {
	if s.listIncomingPending != nil {
		return s.listIncomingPending(ctx, userID)
	}
	return nil, nil
}

func (s *stubConnectionRepo) UpdateStatus(ctx context.Context, id uint, status models.ConnectionStatus) error {
	if s.updateStatus != nil {
		return s.updateStatus(ctx, id, status)
	}
	return nil
}

func (s *stubConnectionRepo) Delete(ctx context.Context, id uint) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return nil
}

func (s *stubConnectionRepo) CountByStatus(ctx context.Context, userID uint) (*models.ConnectionCounts, error) {
	if s.countByStatus != nil {
		return s.countByStatus(ctx, userID)
	}
	return &models.ConnectionCounts{}, nil
}

type stubMessageRepo struct {
	createConnected  func(ctx context.Context, msg *models.Message) error
	getByID          func(ctx context.Context, id uint) (*models.Message, error)
	listConversation func(ctx context.Context, conversationID string, viewerID uint, limit int, markRead bool) ([]models.Message, error)
	markRead         func(ctx context.Context, recipientID uint, messageIDs []uint) (int64, error)
	markConvRead     func(ctx context.Context, conversationID string, recipientID uint) (int64, error)
	listSummaries    func(ctx context.Context, userID uint) ([]models.ConversationSummary, error)
	unreadTotal      func(ctx context.Context, userID uint) (int64, error)
	delete           func(ctx context.Context, id uint) error
}

func (s *stubMessageRepo) CreateConnected(ctx context.Context, msg *models.Message) error {
	if s.createConnected != nil {
		return s.createConnected(ctx, msg)
	}
	msg.ID = 1
	msg.ConversationID = models.ConversationID(msg.SenderID, msg.RecipientID)
	return nil
}

func (s *stubMessageRepo) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, models.NewNotFoundError("Message", id)
}

func (s *stubMessageRepo) ListConversation(ctx context.Context, conversationID string, viewerID uint, limit int, markRead bool) ([]models.Message, error) {
	if s.listConversation != nil {
		return s.listConversation(ctx, conversationID, viewerID, limit, markRead)
	}
	return nil, nil
}

func (s *stubMessageRepo) MarkRead(ctx context.Context, recipientID uint, messageIDs []uint) (int64, error) {
	if s.markRead != nil {
		return s.markRead(ctx, recipientID, messageIDs)
	}
	return 0, nil
}

func (s *stubMessageRepo) MarkConversationRead(ctx context.Context, conversationID string, recipientID uint) (int64, error) {
	if s.markConvRead != nil {
		return s.markConvRead(ctx, conversationID, recipientID)
	}
	return 0, nil
}

func (s *stubMessageRepo) ListSummaries(ctx context.Context, userID uint) ([]models.ConversationSummary, error) {
	if s.listSummaries != nil {
		return s.listSummaries(ctx, userID)
	}
	return nil, nil
}

func (s *stubMessageRepo) UnreadTotal(ctx context.Context, userID uint) (int64, error) {
	if s.unreadTotal != nil {
		return s.unreadTotal(ctx, userID)
	}
	return 0, nil
}

func (s *stubMessageRepo) Delete(ctx context.Context, id uint) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return nil
}

type stubJobRepo struct {
	create    func(ctx context.Context, job *models.Job) error
	getByID   func(ctx context.Context, id uint) (*models.Job, error)
	getBySlug func(ctx context.Context, slug string) (*models.Job, error)
	list      func(ctx context.Context, filter repository.JobFilter) ([]models.Job, int64, error)
	update    func(ctx context.Context, job *models.Job) error
	delete    func(ctx context.Context, id uint) error
}

func (s *stubJobRepo) Create(ctx context.Context, job *models.Job) error {
	if s.create != nil {
		return s.create(ctx, job)
	}
	job.ID = 1
	return nil
}

func (s *stubJobRepo) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, models.NewNotFoundError("Job", id)
}

func (s *stubJobRepo) GetBySlug(ctx context.Context, slug string) (*models.Job, error) {
	if s.getBySlug != nil {
		return s.getBySlug(ctx, slug)
	}
	return nil, models.NewNotFoundError("Job", slug)
}

func (s *stubJobRepo) List(ctx context.Context, filter repository.JobFilter) ([]models.Job, int64, error) {
	if s.list != nil {
		return s.list(ctx, filter)
	}
	return nil, 0, nil
}

func (s *stubJobRepo) Update(ctx context.Context, job *models.Job) error {
	if s.update != nil {
		return s.update(ctx, job)
	}
	return nil
}

func (s *stubJobRepo) Delete(ctx context.Context, id uint) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return nil
}

func appErrCode(err error) string {
	if appErr, ok := err.(*models.AppError); ok {
		return appErr.Code
	}
	return ""
}
