// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Message is a single directed message between two connected users.
// ReadAt is nil until the recipient has seen the message; once set it is
// never cleared.
type Message struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ConversationID string     `gorm:"type:varchar(50);not null;index" json:"conversation_id"`
	SenderID       uint       `gorm:"not null;index" json:"sender_id"`
	RecipientID    uint       `gorm:"not null;index" json:"recipient_id"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`

	Sender    *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"-"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}

// ConversationID derives the identifier grouping all messages between two
// users. The pair is ordered numerically before formatting, so the result
// is the same regardless of who is sending, and distinct unordered pairs
// never collide.
func ConversationID(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d_%d", a, b)
}

// ParseConversationID is the inverse of ConversationID. ok is false when
// the string is not two underscore-separated numeric ids in order.
func ParseConversationID(id string) (a, b uint, ok bool) {
	sep := strings.IndexByte(id, '_')
	if sep < 1 || sep == len(id)-1 {
		return 0, 0, false
	}
	x, err := strconv.ParseUint(id[:sep], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	y, err := strconv.ParseUint(id[sep+1:], 10, 64)
	if err != nil || x > y {
		return 0, 0, false
	}
	return uint(x), uint(y), true
}

// ConversationSummary is one inbox row: the latest message in a
// conversation plus the unread count and the other participant.
type ConversationSummary struct {
	ConversationID string    `json:"conversation_id"`
	LastMessage    string    `json:"last_message"`
	LastActivity   time.Time `json:"last_activity"`
	UnreadCount    int64     `json:"unread_count"`
	PeerID         uint      `json:"peer_id"`
	Peer           *User     `json:"peer,omitempty"`
}

// Inbox aggregates a user's conversations with the total unread count.
type Inbox struct {
	Conversations []ConversationSummary `json:"conversations"`
	UnreadTotal   int64                 `json:"unread_total"`
}
