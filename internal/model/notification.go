package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationLike               = "LIKE"
	NotificationComment            = "COMMENT"
	NotificationConnectionRequest  = "CONNECTION_REQUEST"
	NotificationConnectionAccepted = "CONNECTION_ACCEPTED"
)

type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`  // recipient
	ActorID   uuid.UUID  `gorm:"type:uuid;not null" json:"actor_id"`       // user who triggered it
	PostID    *uuid.UUID `gorm:"type:uuid" json:"post_id,omitempty"`       // set for LIKE/COMMENT
	Type      string     `gorm:"size:50;not null" json:"type"`
	Read      bool       `gorm:"default:false" json:"read"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Pointers to avoid recursion when User embeds notifications
	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	Post  *Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
