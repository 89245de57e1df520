// internal/datecard/service.go

package datecard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrDateCardNotFound = errors.New("date card not found")
	ErrDateCardExists   = errors.New("date card already exists for this match")
)

type Service interface {
	// CreateDateCard generates and stores a new card. It does not check for an
	// existing card; use EnsureDateCard for get-or-create.
	CreateDateCard(ctx context.Context, matchID int64) (*DateCard, error)
	// GetDateCard returns ErrDateCardNotFound when the match has no card.
	GetDateCard(ctx context.Context, matchID int64) (*DateCard, error)
	EnsureDateCard(ctx context.Context, matchID int64) (card *DateCard, created bool, err error)
	DeleteDateCards(ctx context.Context, matchID int64) error

	GetMatchParticipants(ctx context.Context, matchID int64) (*Participants, error)

	// BackfillMissing creates cards for up to limit active matches that have none.
	BackfillMissing(ctx context.Context, limit int) (int, error)
}

type Config struct {
	DefaultCity string
}

type service struct {
	repo        Repository
	categories  *CategoryTable
	venues      *VenueResolver
	rng         Rand
	now         func() time.Time
	defaultCity string
	logger      *zap.Logger
}

func NewService(repo Repository, categories *CategoryTable, venues *VenueResolver, rng Rand, cfg Config, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultCity == "" {
		cfg.DefaultCity = DefaultCity
	}

	return &service{
		repo:        repo,
		categories:  categories,
		venues:      venues,
		rng:         rng,
		now:         time.Now,
		defaultCity: cfg.DefaultCity,
		logger:      logger,
	}
}

func (s *service) CreateDateCard(ctx context.Context, matchID int64) (*DateCard, error) {
	participants, err := s.repo.GetMatchParticipants(ctx, matchID)
	if err != nil {
		RecordDateCardFailure("match_lookup")
		return nil, fmt.Errorf("create date card: %w", err)
	}

	profileA, err := s.repo.GetProfile(ctx, participants.UserA)
	if err != nil {
		RecordDateCardFailure("profile_lookup")
		return nil, fmt.Errorf("create date card: user %d: %w", participants.UserA, err)
	}

	profileB, err := s.repo.GetProfile(ctx, participants.UserB)
	if err != nil {
		RecordDateCardFailure("profile_lookup")
		return nil, fmt.Errorf("create date card: user %d: %w", participants.UserB, err)
	}

	common := CommonInterests(profileA.Interests, profileB.Interests)
	category := s.categories.SelectCategory(common)
	location := SharedLocation(profileA.LocationName, profileB.LocationName, s.defaultCity, s.rng)

	// Never fails; a broken lookup yields the fallback venue.
	venue := s.venues.ResolveVenue(ctx, location, category.VenueType)

	card := &DateCard{
		MatchID:          matchID,
		Title:            category.Title,
		Description:      category.Description,
		LocationName:     venue.Name,
		LocationAddress:  venue.Address,
		Latitude:         venue.Latitude,
		Longitude:        venue.Longitude,
		ScheduledDate:    GenerateSchedule(s.now(), s.rng),
		ImageURL:         category.Image,
		InterestCategory: category.VenueType,
	}

	if err := s.repo.InsertDateCard(ctx, card); err != nil {
		RecordDateCardFailure("persist")
		return nil, fmt.Errorf("create date card: %w", err)
	}

	RecordDateCardCreated(category.ID)
	s.logger.Info("date card created",
		zap.Int64("match_id", matchID),
		zap.Int64("date_card_id", card.ID),
		zap.String("category", category.ID),
		zap.Strings("common_interests", common),
		zap.String("location", location),
		zap.Bool("venue_resolved", venue.HasCoordinates()))

	return card, nil
}

func (s *service) GetDateCard(ctx context.Context, matchID int64) (*DateCard, error) {
	return s.repo.FindDateCardByMatch(ctx, matchID)
}

func (s *service) EnsureDateCard(ctx context.Context, matchID int64) (*DateCard, bool, error) {
	card, err := s.repo.FindDateCardByMatch(ctx, matchID)
	if err == nil {
		return card, false, nil
	}
	if !errors.Is(err, ErrDateCardNotFound) {
		// Safe to go on: UNIQUE (match_id) turns a duplicate insert into ErrDateCardExists.
		s.logger.Warn("date card lookup failed, creating a new one",
			zap.Int64("match_id", matchID), zap.Error(err))
	}

	card, err = s.CreateDateCard(ctx, matchID)
	if errors.Is(err, ErrDateCardExists) {
		// Lost a race with a concurrent creator; return the winner's card.
		card, err = s.repo.FindDateCardByMatch(ctx, matchID)
		return card, false, err
	}
	if err != nil {
		return nil, false, err
	}

	return card, true, nil
}

func (s *service) DeleteDateCards(ctx context.Context, matchID int64) error {
	n, err := s.repo.DeleteDateCardsByMatch(ctx, matchID)
	if err != nil {
		return err
	}

	s.logger.Debug("date cards deleted", zap.Int64("match_id", matchID), zap.Int64("count", n))
	return nil
}

func (s *service) GetMatchParticipants(ctx context.Context, matchID int64) (*Participants, error) {
	return s.repo.GetMatchParticipants(ctx, matchID)
}

func (s *service) BackfillMissing(ctx context.Context, limit int) (int, error) {
	ids, err := s.repo.FindMatchesWithoutDateCard(ctx, limit)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, matchID := range ids {
		if ctx.Err() != nil {
			return created, ctx.Err()
		}

		_, isNew, err := s.EnsureDateCard(ctx, matchID)
		if err != nil {
			s.logger.Warn("backfill: date card creation failed",
				zap.Int64("match_id", matchID), zap.Error(err))
			continue
		}
		if isNew {
			created++
		}
	}

	return created, nil
}
