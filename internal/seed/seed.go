// Package seed populates a development database with realistic demo data.
package seed

import (
	"errors"
	"fmt"
	"log/slog"

	"questboard/internal/models"
	"questboard/internal/service"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data is generated.
type Options struct {
	Users    int
	Jobs     int
	Password string
}

// DefaultOptions returns sensible defaults for a local dev database.
func DefaultOptions() Options {
	return Options{
		Users:    12,
		Jobs:     15,
		Password: "password123",
	}
}

// Run seeds users, connections, messages and job listings. It is
// idempotent in the sense that it refuses to run against a database
// that already has users.
func Run(db *gorm.DB, opts Options) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed precheck: %w", err)
	}
	if count > 0 {
		return errors.New("database already contains users, refusing to seed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users, err := seedUsers(db, opts.Users, string(hash))
	if err != nil {
		return err
	}
	if err := seedConnections(db, users); err != nil {
		return err
	}
	if err := seedMessages(db, users); err != nil {
		return err
	}
	if err := seedJobs(db, users, opts.Jobs); err != nil {
		return err
	}

	slog.Info("seed complete", "users", len(users), "jobs", opts.Jobs)
	return nil
}

func seedUsers(db *gorm.DB, n int, passwordHash string) ([]models.User, error) {
	users := make([]models.User, 0, n+1)

	admin := models.User{
		Username: "admin",
		Email:    "admin@questboard.local",
		Password: passwordHash,
		UserType: models.UserTypeRecruiter,
		IsAdmin:  true,
		Verified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	users = append(users, admin)

	generated, err := FakeUsers(n, passwordHash)
	if err != nil {
		return nil, err
	}
	for i := range generated {
		if err := db.Create(&generated[i]).Error; err != nil {
			return nil, fmt.Errorf("seed user %q: %w", generated[i].Username, err)
		}
		users = append(users, generated[i])
	}
	return users, nil
}

// seedConnections links each user to a couple of neighbors, mixing
// accepted and pending rows so every inbox has something to show.
func seedConnections(db *gorm.DB, users []models.User) error {
	for i := 1; i < len(users); i++ {
		status := models.ConnectionStatusAccepted
		if i%3 == 0 {
			status = models.ConnectionStatusPending
		}
		conn := models.Connection{
			UserAID:     users[i-1].ID,
			UserBID:     users[i].ID,
			InitiatedBy: users[i-1].ID,
			Status:      status,
		}
		if err := db.Create(&conn).Error; err != nil {
			return fmt.Errorf("seed connection: %w", err)
		}
	}
	return nil
}

func seedMessages(db *gorm.DB, users []models.User) error {
	var conns []models.Connection
	if err := db.Where("status = ?", models.ConnectionStatusAccepted).Find(&conns).Error; err != nil {
		return err
	}
	for _, conn := range conns {
		for _, msg := range FakeConversation(conn.UserAID, conn.UserBID) {
			if err := db.Create(&msg).Error; err != nil {
				return fmt.Errorf("seed message: %w", err)
			}
		}
	}
	return nil
}

func seedJobs(db *gorm.DB, users []models.User, n int) error {
	admin := users[0]
	jobs := FakeJobs(n, admin.ID)
	for i := range jobs {
		jobs[i].Slug = fmt.Sprintf("%s-%d", service.Slugify(jobs[i].OrgName+" "+jobs[i].Title), i+1)
		if err := db.Create(&jobs[i]).Error; err != nil {
			return fmt.Errorf("seed job %q: %w", jobs[i].Title, err)
		}
	}
	return nil
}
