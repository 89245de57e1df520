// internal/datecard/models.go

package datecard

import (
	"time"
)

// DateCard is the suggested activity generated for a match.
// A card is written once and never updated; it is removed when the match is dissolved.
type DateCard struct {
	ID               int64     `json:"id" db:"id"`
	MatchID          int64     `json:"match_id" db:"match_id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	LocationName     string    `json:"location_name" db:"location_name"`
	LocationAddress  string    `json:"location_address" db:"location_address"`
	Latitude         *float64  `json:"latitude" db:"latitude"`
	Longitude        *float64  `json:"longitude" db:"longitude"`
	ScheduledDate    time.Time `json:"scheduled_date" db:"scheduled_date"`
	ImageURL         string    `json:"image_url" db:"image_url"`
	InterestCategory string    `json:"interest_category" db:"interest_category"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// Venue is a resolved physical location. Coordinates are nil when the
// venue could not be looked up.
type Venue struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   string   `json:"address"`
}

// HasCoordinates reports whether the venue was resolved to a point.
func (v *Venue) HasCoordinates() bool {
	return v.Latitude != nil && v.Longitude != nil
}

// Profile is the slice of a user profile the engine reads.
type Profile struct {
	ID           int64    `json:"id" db:"id"`
	Interests    []string `json:"interests" db:"interests"`
	LocationName string   `json:"location_name" db:"location_name"`
}

// Participants identifies the two users of a match.
type Participants struct {
	MatchID int64 `json:"match_id" db:"id"`
	UserA   int64 `json:"user_a" db:"user1_id"`
	UserB   int64 `json:"user_b" db:"user2_id"`
}

// Includes reports whether userID is one of the two participants.
func (p *Participants) Includes(userID int64) bool {
	return p.UserA == userID || p.UserB == userID
}
