package repository

import (
	"testing"
	"time"

	"questboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_CreateConnected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createAcceptedConnection(t, db, alice.ID, bob.ID)

	msg := &models.Message{
		SenderID:    alice.ID,
		RecipientID: bob.ID,
		Content:     "gg, want to scrim this weekend?",
	}
	require.NoError(t, repo.CreateConnected(testContext(), msg))

	assert.NotZero(t, msg.ID)
	assert.Equal(t, models.ConversationID(alice.ID, bob.ID), msg.ConversationID)
	assert.Nil(t, msg.ReadAt)
}

func TestMessageRepository_CreateConnectedRequiresAcceptance(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	// pending is not enough
	require.NoError(t, db.Create(&models.Connection{
		UserAID: alice.ID, UserBID: bob.ID, InitiatedBy: alice.ID,
		Status: models.ConnectionStatusPending,
	}).Error)

	err := repo.CreateConnected(testContext(), &models.Message{
		SenderID: alice.ID, RecipientID: bob.ID, Content: "hey",
	})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	// no connection at all
	err = repo.CreateConnected(testContext(), &models.Message{
		SenderID: alice.ID, RecipientID: carol.ID, Content: "hey",
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Message{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMessageRepository_ListConversationMarksRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createAcceptedConnection(t, db, alice.ID, bob.ID)

	convID := models.ConversationID(alice.ID, bob.ID)
	for _, content := range []string{"first", "second", "third"} {
		require.NoError(t, repo.CreateConnected(testContext(), &models.Message{
			SenderID: bob.ID, RecipientID: alice.ID, Content: content,
		}))
	}

	// alice views with markRead: all her unread messages get stamped
	messages, err := repo.ListConversation(testContext(), convID, alice.ID, 50, true)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "third", messages[2].Content)
	for _, m := range messages {
		assert.NotNil(t, m.ReadAt)
	}

	total, err := repo.UnreadTotal(testContext(), alice.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestMessageRepository_ListConversationWithoutMarking(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createAcceptedConnection(t, db, alice.ID, bob.ID)

	convID := models.ConversationID(alice.ID, bob.ID)
	require.NoError(t, repo.CreateConnected(testContext(), &models.Message{
		SenderID: bob.ID, RecipientID: alice.ID, Content: "hello",
	}))

	messages, err := repo.ListConversation(testContext(), convID, alice.ID, 50, false)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Nil(t, messages[0].ReadAt)

	total, err := repo.UnreadTotal(testContext(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestMessageRepository_ListConversationLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createAcceptedConnection(t, db, alice.ID, bob.ID)

	convID := models.ConversationID(alice.ID, bob.ID)
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.Message{
			ConversationID: convID,
			SenderID:       alice.ID,
			RecipientID:    bob.ID,
			Content:        "msg",
			CreatedAt:      time.Now().Add(time.Duration(i) * time.Second),
		}).Error)
	}

	messages, err := repo.ListConversation(testContext(), convID, bob.ID, 2, false)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestMessageRepository_MarkRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createAcceptedConnection(t, db, alice.ID, bob.ID)

	toAlice := &models.Message{SenderID: bob.ID, RecipientID: alice.ID, Content: "one"}
	require.NoError(t, repo.CreateConnected(testContext(), toAlice))
	toBob := &models.Message{SenderID: alice.ID, RecipientID: bob.ID, Content: "two"}
	require.NoError(t, repo.CreateConnected(testContext(), toBob))

	// alice can only mark messages addressed to her
	updated, err := repo.MarkRead(testContext(), alice.ID, []uint{toAlice.ID, toBob.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	// idempotent: already-read rows are not counted again
	updated, err = repo.MarkRead(testContext(), alice.ID, []uint{toAlice.ID})
	require.NoError(t, err)
	assert.Zero(t, updated)

	updated, err = repo.MarkRead(testContext(), alice.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestMessageRepository_MarkConversationRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createAcceptedConnection(t, db, alice.ID, bob.ID)

	convID := models.ConversationID(alice.ID, bob.ID)
	for _, content := range []string{"one", "two"} {
		msg := &models.Message{SenderID: bob.ID, RecipientID: alice.ID, Content: content}
		require.NoError(t, repo.CreateConnected(testContext(), msg))
	}
	fromAlice := &models.Message{SenderID: alice.ID, RecipientID: bob.ID, Content: "three"}
	require.NoError(t, repo.CreateConnected(testContext(), fromAlice))

	// only the two messages addressed to alice get stamped
	updated, err := repo.MarkConversationRead(testContext(), convID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	updated, err = repo.MarkConversationRead(testContext(), convID, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, updated)

	var unreadToBob int64
	require.NoError(t, db.Model(&models.Message{}).
		Where("recipient_id = ? AND read_at IS NULL", bob.ID).
		Count(&unreadToBob).Error)
	assert.Equal(t, int64(1), unreadToBob)
}

func TestMessageRepository_ListSummaries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	createAcceptedConnection(t, db, alice.ID, bob.ID)
	createAcceptedConnection(t, db, alice.ID, carol.ID)

	require.NoError(t, repo.CreateConnected(testContext(), &models.Message{
		SenderID: bob.ID, RecipientID: alice.ID, Content: "from bob",
	}))
	require.NoError(t, repo.CreateConnected(testContext(), &models.Message{
		SenderID: carol.ID, RecipientID: alice.ID, Content: "from carol",
	}))
	require.NoError(t, repo.CreateConnected(testContext(), &models.Message{
		SenderID: alice.ID, RecipientID: carol.ID, Content: "reply to carol",
	}))

	summaries, err := repo.ListSummaries(testContext(), alice.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byPeer := map[uint]models.ConversationSummary{}
	for _, s := range summaries {
		byPeer[s.PeerID] = s
	}
	require.Contains(t, byPeer, bob.ID)
	require.Contains(t, byPeer, carol.ID)

	assert.Equal(t, "from bob", byPeer[bob.ID].LastMessage)
	assert.Equal(t, int64(1), byPeer[bob.ID].UnreadCount)
	// alice's own reply is the latest in the carol conversation and does
	// not count toward her unread
	assert.Equal(t, "reply to carol", byPeer[carol.ID].LastMessage)
	assert.Equal(t, int64(1), byPeer[carol.ID].UnreadCount)

	total, err := repo.UnreadTotal(testContext(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestMessageRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createAcceptedConnection(t, db, alice.ID, bob.ID)

	msg := &models.Message{SenderID: alice.ID, RecipientID: bob.ID, Content: "oops"}
	require.NoError(t, repo.CreateConnected(testContext(), msg))

	require.NoError(t, repo.Delete(testContext(), msg.ID))

	_, err := repo.GetByID(testContext(), msg.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
