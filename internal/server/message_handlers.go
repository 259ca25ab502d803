// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"questboard/internal/middleware"
	"questboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMessages handles GET /api/messages. With a conversationId query
// parameter it returns that conversation's recent messages; without one
// it returns the inbox view.
func (s *Server) GetMessages(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	conversationID := c.Query("conversationId")
	if conversationID == "" {
		inbox, err := s.messageService.Inbox(c.Context(), userID)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(inbox)
	}

	limit := c.QueryInt("limit")
	messages, err := s.messageService.Conversation(c.Context(), userID, conversationID, limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"conversation_id": conversationID,
		"messages":        messages,
		"count":           len(messages),
	})
}

// SendMessage handles POST /api/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req struct {
		RecipientID uint   `json:"recipientId"`
		Content     string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.messageService.Send(c.Context(), userID, req.RecipientID, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}

// MarkMessagesRead handles PATCH /api/messages
func (s *Server) MarkMessagesRead(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req struct {
		ConversationID string `json:"conversationId"`
		MessageIDs     []uint `json:"messageIds"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.messageService.MarkRead(c.Context(), userID, req.ConversationID, req.MessageIDs)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"updated": updated})
}

// DeleteMessage handles DELETE /api/messages?messageId=
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	messageID, err := s.parseQueryID(c, "messageId")
	if err != nil {
		return nil
	}

	if err := s.messageService.Delete(c.Context(), userID, messageID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"deleted": true})
}
