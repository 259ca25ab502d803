package repository

import (
	"context"
	"testing"

	"questboard/internal/database"
	"questboard/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed-password",
		UserType: models.UserTypePlayer,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createAcceptedConnection(t *testing.T, db *gorm.DB, initiator, target uint) *models.Connection {
	t.Helper()
	conn := &models.Connection{
		UserAID:     initiator,
		UserBID:     target,
		InitiatedBy: initiator,
		Status:      models.ConnectionStatusAccepted,
	}
	require.NoError(t, db.Create(conn).Error)
	return conn
}

func testContext() context.Context {
	return context.Background()
}
