package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type User struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string      `gorm:"size:100;not null" json:"name"`
	Email        string      `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"size:255;not null" json:"-"`
	Role         string      `gorm:"size:20;not null;default:user" json:"role"`
	Status       string      `gorm:"size:20;not null;default:pending" json:"status"`
	PassingYear  int         `gorm:"not null" json:"passing_year"`
	BatchGroupID *uuid.UUID  `gorm:"type:uuid" json:"batch_group_id,omitempty"`
	BatchGroup   *BatchGroup `gorm:"constraint:OnDelete:SET NULL" json:"batch_group,omitempty"`
	StudentID    *string     `gorm:"size:50" json:"student_id,omitempty"`
	Bio          *string     `gorm:"type:text" json:"bio,omitempty"`
	Occupation   *string     `gorm:"size:100" json:"occupation,omitempty"`
	Location     *string     `gorm:"size:100" json:"location,omitempty"`
	PhotoURL     *string     `gorm:"type:text" json:"photo_url,omitempty"`
	SocialLinks  *string     `gorm:"type:text" json:"social_links,omitempty"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsApproved() bool {
	return u.Status == StatusApproved
}

// BatchGroup is a graduation-year cohort. At most one group exists per year;
// lookups go through the find-or-create path in the batch repository.
type BatchGroup struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Year      int       `gorm:"uniqueIndex;not null" json:"year"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (b *BatchGroup) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
