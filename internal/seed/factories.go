package seed

import (
	"fmt"
	"strings"

	"questboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

var userTypes = []string{
	models.UserTypePlayer,
	models.UserTypePlayer,
	models.UserTypeCoach,
	models.UserTypeRecruiter,
	models.UserTypeCaster,
}

var jobCategories = []string{
	models.JobCategoryPlayer,
	models.JobCategoryCoaching,
	models.JobCategoryProduction,
	models.JobCategoryMarketing,
	models.JobCategoryOperations,
}

// FakeUsers generates n users with distinct usernames and emails.
func FakeUsers(n int, passwordHash string) ([]models.User, error) {
	users := make([]models.User, 0, n)
	seen := map[string]bool{}

	for i := 0; i < n; i++ {
		username := strings.ToLower(gofakeit.Gamertag())
		username = strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
				return r
			}
			return -1
		}, username)
		if len(username) < 3 {
			username = gofakeit.Username()
		}
		if seen[username] {
			username = fmt.Sprintf("%s_%d", username, i)
		}
		seen[username] = true

		users = append(users, models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			Password: passwordHash,
			UserType: userTypes[i%len(userTypes)],
			GamerTag: gofakeit.Gamertag(),
			Bio:      gofakeit.Sentence(12),
			Verified: gofakeit.Bool(),
		})
	}
	return users, nil
}

// FakeConversation generates a short exchange between two users, with the
// last message left unread.
func FakeConversation(userA, userB uint) []models.Message {
	count := gofakeit.Number(2, 6)
	messages := make([]models.Message, 0, count)
	convID := models.ConversationID(userA, userB)

	for i := 0; i < count; i++ {
		sender, recipient := userA, userB
		if i%2 == 1 {
			sender, recipient = userB, userA
		}
		msg := models.Message{
			ConversationID: convID,
			SenderID:       sender,
			RecipientID:    recipient,
			Content:        gofakeit.HipsterSentence(gofakeit.Number(4, 14)),
		}
		if i < count-1 {
			readAt := gofakeit.PastDate()
			msg.ReadAt = &readAt
		}
		messages = append(messages, msg)
	}
	return messages
}

// FakeJobs generates n published job listings posted by postedBy.
func FakeJobs(n int, postedBy uint) []models.Job {
	jobs := make([]models.Job, 0, n)
	for i := 0; i < n; i++ {
		category := jobCategories[i%len(jobCategories)]
		salaryMin := gofakeit.Number(30, 90) * 1000
		jobs = append(jobs, models.Job{
			Title:       gofakeit.JobTitle(),
			OrgName:     gofakeit.Company(),
			Location:    gofakeit.City() + ", " + gofakeit.StateAbr(),
			Category:    category,
			SalaryMin:   salaryMin,
			SalaryMax:   salaryMin + gofakeit.Number(10, 60)*1000,
			Description: gofakeit.Paragraph(2, 4, 10, " "),
			Tags:        strings.Join([]string{category, gofakeit.BuzzWord(), gofakeit.BuzzWord()}, ","),
			Published:   true,
			PostedByID:  postedBy,
		})
	}
	return jobs
}
