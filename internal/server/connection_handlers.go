// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"errors"

	"questboard/internal/middleware"
	"questboard/internal/models"
	"questboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetConnections handles GET /api/connections?status=. One response
// carries the user's connections, the incoming requests awaiting their
// decision, and the per-status counts.
func (s *Server) GetConnections(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := middleware.UserID(c)
	status := models.ConnectionStatus(c.Query("status"))

	views, err := s.connectionService.List(ctx, userID, status)
	if err != nil {
		return respondServiceError(c, err)
	}
	pending, err := s.connectionService.IncomingRequests(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	counts, err := s.connectionService.Counts(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"connections":     views,
		"pendingRequests": pending,
		"counts":          counts,
	})
}

// GetIncomingConnectionRequests handles GET /api/connections/requests
func (s *Server) GetIncomingConnectionRequests(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	requests, err := s.connectionService.IncomingRequests(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"requests": requests,
		"count":    len(requests),
	})
}

// GetConnectionCounts handles GET /api/connections/counts
func (s *Server) GetConnectionCounts(c *fiber.Ctx) error {
	counts, err := s.connectionService.Counts(c.Context(), middleware.UserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(counts)
}

// CreateConnection handles POST /api/connections
func (s *Server) CreateConnection(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req struct {
		TargetUserID   uint   `json:"targetUserId"`
		ConnectionType string `json:"connectionType"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	conn, err := s.connectionService.Request(c.Context(), userID, req.TargetUserID, req.ConnectionType)
	if err != nil {
		var dup *service.AlreadyConnectedError
		if errors.As(err, &dup) {
			// echo the existing row so clients can render current state
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":      "Connection already exists",
				"code":       "CONFLICT",
				"connection": dup.Existing,
			})
		}
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(conn)
}

// UpdateConnection handles PATCH /api/connections
func (s *Server) UpdateConnection(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req struct {
		ConnectionID uint   `json:"connectionId"`
		Action       string `json:"action"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ConnectionID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("connectionId is required"))
	}

	conn, err := s.connectionService.Transition(c.Context(), userID, req.ConnectionID, req.Action)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(conn)
}

// DeleteConnection handles DELETE /api/connections?connectionId=
func (s *Server) DeleteConnection(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	connectionID, err := s.parseQueryID(c, "connectionId")
	if err != nil {
		return nil
	}

	if err := s.connectionService.Delete(c.Context(), userID, connectionID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"deleted": true})
}
