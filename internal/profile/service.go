// internal/profile/service.go

package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrTooManyInterests = errors.New("too many interests")
)

const DefaultMaxInterests = 10

// Service defines the profile service interface
type Service interface {
	GetMyProfile(ctx context.Context, userID int64) (*Profile, error)
	GetProfile(ctx context.Context, userID int64) (*PublicProfile, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error)
}

type service struct {
	repo         Repository
	maxInterests int
	now          func() time.Time
	logger       *zap.Logger
}

// NewService creates a new profile service
func NewService(repo Repository, maxInterests int, logger *zap.Logger) Service {
	if maxInterests <= 0 {
		maxInterests = DefaultMaxInterests
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:         repo,
		maxInterests: maxInterests,
		now:          time.Now,
		logger:       logger,
	}
}

func (s *service) GetMyProfile(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.GetProfileByUserID(ctx, userID)
}

func (s *service) GetProfile(ctx context.Context, userID int64) (*PublicProfile, error) {
	profile, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profile.Public(), nil
}

// UpdateProfile cleans the interest list and location before storing them.
func (s *service) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error) {
	if req.Interests != nil {
		req.Interests = NormalizeInterests(req.Interests)
		if len(req.Interests) > s.maxInterests {
			return nil, fmt.Errorf("%w: at most %d allowed", ErrTooManyInterests, s.maxInterests)
		}
	}
	if req.LocationName != nil {
		location := strings.TrimSpace(*req.LocationName)
		req.LocationName = &location
	}
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		req.DisplayName = &name
	}

	profile, err := s.repo.UpdateProfile(ctx, userID, req, s.now())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("profile updated",
		zap.Int64("user_id", userID),
		zap.Int("interests", len(profile.Interests)),
		zap.String("location_name", profile.LocationName))

	return profile, nil
}

// NormalizeInterests trims entries, drops blanks and removes case-insensitive
// duplicates. The first spelling of each interest wins.
func NormalizeInterests(interests []string) []string {
	seen := make(map[string]struct{}, len(interests))
	out := make([]string, 0, len(interests))

	for _, interest := range interests {
		interest = strings.TrimSpace(interest)
		if interest == "" {
			continue
		}
		key := strings.ToLower(interest)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, interest)
	}

	return out
}
