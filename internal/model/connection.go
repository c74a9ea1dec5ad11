package model

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ConnectionPending  = "PENDING"
	ConnectionAccepted = "ACCEPTED"
)

// Connection is a directed request from requester to addressee. Uniqueness is
// enforced on the unordered pair: BeforeCreate stores the pair in normalized
// order in PairMinID/PairMaxID, so concurrent requests in opposite directions
// collide on the same unique index.
type Connection struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index" json:"requester_id"`
	Requester   User      `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE" json:"requester,omitempty"`
	AddresseeID uuid.UUID `gorm:"type:uuid;not null;index" json:"addressee_id"`
	Addressee   User      `gorm:"foreignKey:AddresseeID;constraint:OnDelete:CASCADE" json:"addressee,omitempty"`
	PairMinID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_connection_pair" json:"-"`
	PairMaxID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_connection_pair" json:"-"`
	Status      string    `gorm:"size:20;not null;default:PENDING" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Connection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.PairMinID, c.PairMaxID = NormalizePair(c.RequesterID, c.AddresseeID)
	return nil
}

// NormalizePair orders two user ids by their byte representation.
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) > 0 {
		return b, a
	}
	return a, b
}

// Involves reports whether the given user is one of the two parties.
func (c *Connection) Involves(userID uuid.UUID) bool {
	return c.RequesterID == userID || c.AddresseeID == userID
}
