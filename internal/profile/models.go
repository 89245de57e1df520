//internals/profile/models.go

package profile

import (
	"time"

	"github.com/lib/pq"
)

// Profile is the part of a user record that feeds date card generation.
type Profile struct {
	ID             int64          `json:"id" db:"id"`
	Username       string         `json:"username" db:"username"`
	DisplayName    string         `json:"display_name" db:"display_name"`
	ProfilePicture *string        `json:"profile_picture,omitempty" db:"profile_picture"`
	Bio            *string        `json:"bio,omitempty" db:"bio"`
	Interests      pq.StringArray `json:"interests" db:"interests"`
	LocationName   string         `json:"location_name" db:"location_name"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// PublicProfile is what other users see.
type PublicProfile struct {
	ID             int64    `json:"id"`
	Username       string   `json:"username"`
	DisplayName    string   `json:"display_name"`
	ProfilePicture *string  `json:"profile_picture,omitempty"`
	Bio            *string  `json:"bio,omitempty"`
	Interests      []string `json:"interests"`
	LocationName   string   `json:"location_name"`
}

func (p *Profile) Public() *PublicProfile {
	interests := []string(p.Interests)
	if interests == nil {
		interests = []string{}
	}
	return &PublicProfile{
		ID:             p.ID,
		Username:       p.Username,
		DisplayName:    p.DisplayName,
		ProfilePicture: p.ProfilePicture,
		Bio:            p.Bio,
		Interests:      interests,
		LocationName:   p.LocationName,
	}
}

// UpdateProfileRequest is a partial update; nil fields are left unchanged.
type UpdateProfileRequest struct {
	DisplayName  *string  `json:"display_name,omitempty" validate:"omitempty,min=1,max=50"`
	Bio          *string  `json:"bio,omitempty" validate:"omitempty,max=500"`
	Interests    []string `json:"interests,omitempty" validate:"omitempty,dive,max=40"`
	LocationName *string  `json:"location_name,omitempty" validate:"omitempty,max=120"`
}
