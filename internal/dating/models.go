package dating

import (
	"time"

	"github.com/imadgeboyega/kiekky-datecards/internal/datecard"
)

// Swipe is one user's decision about another.
type Swipe struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	TargetID  int64     `json:"target_id" db:"target_id"`
	Liked     bool      `json:"liked" db:"liked"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Match is an unordered pair of users who liked each other.
// User1ID is always the smaller id.
type Match struct {
	ID          int64      `json:"id" db:"id"`
	User1ID     int64      `json:"user1_id" db:"user1_id"`
	User2ID     int64      `json:"user2_id" db:"user2_id"`
	MatchType   string     `json:"match_type" db:"match_type"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	UnmatchedBy *int64     `json:"unmatched_by,omitempty" db:"unmatched_by"`
	UnmatchedAt *time.Time `json:"unmatched_at,omitempty" db:"unmatched_at"`
	MatchedAt   time.Time  `json:"matched_at" db:"matched_at"`
	MatchedUser *UserInfo  `json:"matched_user,omitempty" db:"-"`
}

// Includes reports whether userID is one of the two participants.
func (m *Match) Includes(userID int64) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// Other returns the participant that is not userID.
func (m *Match) Other(userID int64) int64 {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}

type UserInfo struct {
	ID             int64   `json:"id" db:"id"`
	Username       string  `json:"username" db:"username"`
	DisplayName    string  `json:"display_name" db:"display_name"`
	ProfilePicture *string `json:"profile_picture,omitempty" db:"profile_picture"`
}

// LikeResult is returned from a right swipe.
// NewMatch is false when the pair was already matched.
type LikeResult struct {
	Matched  bool               `json:"matched"`
	NewMatch bool               `json:"new_match"`
	Match    *Match             `json:"match,omitempty"`
	DateCard *datecard.DateCard `json:"date_card,omitempty"`
}

// NewMatchEvent is the payload pushed to each participant of a new match.
type NewMatchEvent struct {
	MatchID  int64              `json:"match_id"`
	User     *UserInfo          `json:"user"`
	DateCard *datecard.DateCard `json:"date_card,omitempty"`
}

const EventNewMatch = "newMatch"
