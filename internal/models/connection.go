// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// ConnectionStatus represents the negotiated state of a connection.
type ConnectionStatus string

const (
	// ConnectionStatusPending indicates a request awaiting the counterpart's decision.
	ConnectionStatusPending ConnectionStatus = "pending"
	// ConnectionStatusAccepted indicates an established connection.
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	// ConnectionStatusRejected indicates a declined request.
	ConnectionStatusRejected ConnectionStatus = "rejected"
	// ConnectionStatusBlocked indicates one party blocked the other.
	ConnectionStatusBlocked ConnectionStatus = "blocked"
)

// Connection represents a relationship between two users as a single
// canonical row per unordered pair: UserAID < UserBID always holds, so
// queries match either column and the pair can never diverge.
// InitiatedBy records which of the two proposed the connection.
type Connection struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	UserAID        uint             `gorm:"not null;uniqueIndex:idx_connection_pair" json:"user_a_id"`
	UserBID        uint             `gorm:"not null;uniqueIndex:idx_connection_pair" json:"user_b_id"`
	InitiatedBy    uint             `gorm:"not null" json:"initiated_by"`
	Status         ConnectionStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ConnectionType string           `gorm:"type:varchar(40);default:'network'" json:"connection_type"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	UserA User `gorm:"foreignKey:UserAID" json:"-"`
	UserB User `gorm:"foreignKey:UserBID" json:"-"`
}

// TableName specifies the table name for GORM
func (Connection) TableName() string {
	return "connections"
}

// BeforeCreate ensures UserAID < UserBID for consistent ordering
func (c *Connection) BeforeCreate(_ *gorm.DB) error {
	if c.UserAID > c.UserBID {
		c.UserAID, c.UserBID = c.UserBID, c.UserAID
	}
	return nil
}

// Involves reports whether userID is one of the two participants.
func (c *Connection) Involves(userID uint) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// PeerID returns the other participant relative to userID.
func (c *Connection) PeerID(userID uint) uint {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

// ConnectionView is a connection as seen from one user's perspective,
// enriched with the counterpart's profile for display.
type ConnectionView struct {
	Connection
	Peer *User `json:"peer,omitempty"`
}

// ConnectionCounts summarizes a user's connections by status.
type ConnectionCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Accepted int64 `json:"accepted"`
}
