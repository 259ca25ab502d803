package server

import (
	"fmt"
	"net/http"
	"testing"

	"questboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedMessage(t *testing.T, db *gorm.DB, sender, recipient uint, content string) *models.Message {
	t.Helper()
	msg := &models.Message{
		ConversationID: models.ConversationID(sender, recipient),
		SenderID:       sender,
		RecipientID:    recipient,
		Content:        content,
	}
	require.NoError(t, db.Create(msg).Error)
	return msg
}

func TestSendMessage(t *testing.T) {
	srv, app, db := newTestServer(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	seedConnection(t, db, alice.ID, bob.ID, models.ConnectionStatusAccepted)
	token := authToken(t, srv, alice)

	resp := doJSON(t, app, http.MethodPost, "/api/messages/", token, map[string]any{
		"recipientId": bob.ID,
		"content":     "gg wp",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var msg models.Message
	decodeBody(t, resp, &msg)
	assert.Equal(t, alice.ID, msg.SenderID)
	assert.Equal(t, models.ConversationID(alice.ID, bob.ID), msg.ConversationID)
}

func TestSendMessageNotConnected(t *testing.T) {
	srv, app, db := newTestServer(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	token := authToken(t, srv, alice)

	resp := doJSON(t, app, http.MethodPost, "/api/messages/", token, map[string]any{
		"recipientId": bob.ID,
		"content":     "hello stranger",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// pending is not enough either
	seedConnection(t, db, alice.ID, bob.ID, models.ConnectionStatusPending)
	resp = doJSON(t, app, http.MethodPost, "/api/messages/", token, map[string]any{
		"recipientId": bob.ID,
		"content":     "hello stranger",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetMessagesConversationMarksRead(t *testing.T) {
	srv, app, db := newTestServer(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	seedConnection(t, db, alice.ID, bob.ID, models.ConnectionStatusAccepted)
	seedMessage(t, db, bob.ID, alice.ID, "ping")
	convID := models.ConversationID(alice.ID, bob.ID)
	token := authToken(t, srv, alice)

	resp := doJSON(t, app, http.MethodGet, "/api/messages/?conversationId="+convID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Messages []models.Message `json:"messages"`
		Count    int              `json:"count"`
	}
	decodeBody(t, resp, &body)
	require.Equal(t, 1, body.Count)
	assert.NotNil(t, body.Messages[0].ReadAt)

	// the fetch stamped the message; the inbox now shows zero unread
	var unread int64
	require.NoError(t, db.Model(&models.Message{}).
		Where("recipient_id = ? AND read_at IS NULL", alice.ID).
		Count(&unread).Error)
	assert.Zero(t, unread)
}

func TestGetMessagesConversationAccessDenied(t *testing.T) {
	srv, app, db := newTestServer(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	seedConnection(t, db, alice.ID, bob.ID, models.ConnectionStatusAccepted)
	seedMessage(t, db, alice.ID, bob.ID, "private")
	convID := models.ConversationID(alice.ID, bob.ID)

	resp := doJSON(t, app, http.MethodGet, "/api/messages/?conversationId="+convID,
		authToken(t, srv, carol), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetMessagesInbox(t *testing.T) {
	srv, app, db := newTestServer(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	seedConnection(t, db, alice.ID, bob.ID, models.ConnectionStatusAccepted)
	seedConnection(t, db, alice.ID, carol.ID, models.ConnectionStatusAccepted)
	seedMessage(t, db, bob.ID, alice.ID, "from bob")
	seedMessage(t, db, carol.ID, alice.ID, "from carol")
	token := authToken(t, srv, alice)

	resp := doJSON(t, app, http.MethodGet, "/api/messages/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var inbox models.Inbox
	decodeBody(t, resp, &inbox)
	assert.Equal(t, int64(2), inbox.UnreadTotal)
	assert.Len(t, inbox.Conversations, 2)
}

func TestMarkMessagesRead(t *testing.T) {
	srv, app, db := newTestServer(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	seedConnection(t, db, alice.ID, bob.ID, models.ConnectionStatusAccepted)
	msg := seedMessage(t, db, bob.ID, alice.ID, "unread")
	token := authToken(t, srv, alice)

	// no selector
	resp := doJSON(t, app, http.MethodPatch, "/api/messages/", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPatch, "/api/messages/", token, map[string]any{
		"messageIds": []uint{msg.ID},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Updated int64 `json:"updated"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, int64(1), body.Updated)
}

func TestDeleteMessageSenderOnly(t *testing.T) {
	srv, app, db := newTestServer(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	seedConnection(t, db, alice.ID, bob.ID, models.ConnectionStatusAccepted)
	msg := seedMessage(t, db, alice.ID, bob.ID, "sent by alice")

	// recipient cannot delete
	resp := doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/messages/?messageId=%d", msg.ID), authToken(t, srv, bob), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// sender can
	resp = doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/messages/?messageId=%d", msg.ID), authToken(t, srv, alice), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// gone now, repeat delete is a silent success
	resp = doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/messages/?messageId=%d", msg.ID), authToken(t, srv, alice), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
