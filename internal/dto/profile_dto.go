package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpdateProfileInput struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Bio         *string `json:"bio"`
	Occupation  *string `json:"occupation" binding:"omitempty,max=100"`
	Location    *string `json:"location" binding:"omitempty,max=100"`
	SocialLinks *string `json:"social_links"`
}

// PublicProfileResponse is the view other members get: no role, status or
// credential fields.
type PublicProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	Occupation  *string   `json:"occupation,omitempty"`
	Location    *string   `json:"location,omitempty"`
	PassingYear int       `json:"passing_year"`
	CreatedAt   time.Time `json:"created_at"`
}
