// Package service contains the business logic layer sitting between
// handlers and repositories.
package service

import (
	"context"
	"fmt"

	"questboard/internal/models"
	"questboard/internal/repository"
)

// Connection actions accepted by Transition.
const (
	ConnectionActionAccept = "accept"
	ConnectionActionReject = "reject"
	ConnectionActionBlock  = "block"
)

// AlreadyConnectedError signals that a connection between the two users
// already exists. Existing carries the current row so handlers can echo
// it back alongside the conflict.
type AlreadyConnectedError struct {
	Existing *models.Connection
}

func (e *AlreadyConnectedError) Error() string {
	return fmt.Sprintf("connection already exists with status %s", e.Existing.Status)
}

// ConnectionService handles connection request lifecycle
type ConnectionService struct {
	connRepo repository.ConnectionRepository
	userRepo repository.UserRepository
}

// NewConnectionService creates a new connection service
func NewConnectionService(connRepo repository.ConnectionRepository, userRepo repository.UserRepository) *ConnectionService {
	return &ConnectionService{connRepo: connRepo, userRepo: userRepo}
}

// Request creates a pending connection from requester to target.
func (s *ConnectionService) Request(ctx context.Context, requesterID, targetID uint, connectionType string) (*models.Connection, error) {
	if targetID == 0 {
		return nil, models.NewValidationError("targetUserId is required")
	}
	if requesterID == targetID {
		return nil, models.NewValidationError("You cannot connect with yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	existing, err := s.connRepo.GetBetweenUsers(ctx, requesterID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &AlreadyConnectedError{Existing: existing}
	}

	conn := &models.Connection{
		UserAID:     requesterID,
		UserBID:     targetID,
		InitiatedBy: requesterID,
		Status:      models.ConnectionStatusPending,
	}
	if connectionType != "" {
		conn.ConnectionType = connectionType
	}
	if err := s.connRepo.Create(ctx, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Transition applies accept/reject/block to an existing connection.
// Accept and reject are decisions reserved for the non-initiating party;
// block is available to either participant. Re-applying the current
// status is a no-op success.
func (s *ConnectionService) Transition(ctx context.Context, actorID, connectionID uint, action string) (*models.Connection, error) {
	var target models.ConnectionStatus
	switch action {
	case ConnectionActionAccept:
		target = models.ConnectionStatusAccepted
	case ConnectionActionReject:
		target = models.ConnectionStatusRejected
	case ConnectionActionBlock:
		target = models.ConnectionStatusBlocked
	default:
		return nil, models.NewValidationError("action must be one of accept, reject, block")
	}

	conn, err := s.connRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if !conn.Involves(actorID) {
		return nil, models.NewForbiddenError("You are not part of this connection")
	}
	if conn.Status == target {
		return conn, nil
	}
	if target != models.ConnectionStatusBlocked {
		if conn.InitiatedBy == actorID {
			return nil, models.NewForbiddenError("Only the recipient can respond to a connection request")
		}
		if conn.Status != models.ConnectionStatusPending {
			return nil, models.NewConflictError("Connection request has already been resolved")
		}
	}

	if err := s.connRepo.UpdateStatus(ctx, conn.ID, target); err != nil {
		return nil, err
	}
	conn.Status = target
	return conn, nil
}

// List returns the actor's connections enriched with peer profiles.
func (s *ConnectionService) List(ctx context.Context, actorID uint, status models.ConnectionStatus) ([]models.ConnectionView, error) {
	switch status {
	case "", models.ConnectionStatusPending, models.ConnectionStatusAccepted,
		models.ConnectionStatusRejected, models.ConnectionStatusBlocked:
	default:
		return nil, models.NewValidationError("Unknown connection status")
	}

	conns, err := s.connRepo.ListForUser(ctx, actorID, status)
	if err != nil {
		return nil, err
	}

	peerIDs := make([]uint, 0, len(conns))
	for i := range conns {
		peerIDs = append(peerIDs, conns[i].PeerID(actorID))
	}
	peers, err := s.userRepo.GetByIDs(ctx, peerIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.User, len(peers))
	for i := range peers {
		byID[peers[i].ID] = &peers[i]
	}

	views := make([]models.ConnectionView, 0, len(conns))
	for i := range conns {
		views = append(views, models.ConnectionView{
			Connection: conns[i],
			Peer:       byID[conns[i].PeerID(actorID)],
		})
	}
	return views, nil
}

// IncomingRequests returns pending requests awaiting the actor's decision.
func (s *ConnectionService) IncomingRequests(ctx context.Context, actorID uint) ([]models.Connection, error) {
	return s.connRepo.ListIncomingPending(ctx, actorID)
}

// Counts summarizes the actor's connections by status.
func (s *ConnectionService) Counts(ctx context.Context, actorID uint) (*models.ConnectionCounts, error) {
	return s.connRepo.CountByStatus(ctx, actorID)
}

// Delete removes a connection. Only a participant may delete; deleting a
// connection that no longer exists succeeds silently.
func (s *ConnectionService) Delete(ctx context.Context, actorID, connectionID uint) error {
	conn, err := s.connRepo.GetByID(ctx, connectionID)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
			return nil
		}
		return err
	}
	if !conn.Involves(actorID) {
		return models.NewForbiddenError("You are not part of this connection")
	}
	return s.connRepo.Delete(ctx, conn.ID)
}
