// internal/dating/service.go

package dating

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/imadgeboyega/kiekky-datecards/internal/datecard"
)

var (
	ErrCannotLikeSelf = errors.New("cannot swipe on yourself")
	ErrMatchNotFound  = errors.New("match not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrUnauthorized   = errors.New("unauthorized to perform this action")
)

const MatchTypeMutual = "mutual_like"

// DateCards is the slice of the date card service the match flow needs.
type DateCards interface {
	EnsureDateCard(ctx context.Context, matchID int64) (*datecard.DateCard, bool, error)
	DeleteDateCards(ctx context.Context, matchID int64) error
	BackfillMissing(ctx context.Context, limit int) (int, error)
}

// Notifier pushes realtime events to connected users.
type Notifier interface {
	Publish(userID int64, eventType string, payload interface{}) bool
}

type Service interface {
	Like(ctx context.Context, userID, targetID int64) (*LikeResult, error)
	Pass(ctx context.Context, userID, targetID int64) error
	GetMatches(ctx context.Context, userID int64) ([]*Match, error)
	Unmatch(ctx context.Context, matchID, userID int64) error
}

type service struct {
	repo      Repository
	dateCards DateCards
	notifier  Notifier
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(repo Repository, dateCards DateCards, notifier Notifier, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:      repo,
		dateCards: dateCards,
		notifier:  notifier,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *service) Like(ctx context.Context, userID, targetID int64) (*LikeResult, error) {
	if userID == targetID {
		return nil, ErrCannotLikeSelf
	}

	if _, err := s.repo.GetUserInfo(ctx, targetID); err != nil {
		return nil, err
	}

	if err := s.repo.RecordSwipe(ctx, userID, targetID, true); err != nil {
		return nil, err
	}
	swipesTotal.WithLabelValues("like").Inc()

	mutual, err := s.repo.HasLiked(ctx, targetID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check reciprocal like: %w", err)
	}
	if !mutual {
		return &LikeResult{Matched: false}, nil
	}

	match := &Match{
		User1ID:   userID,
		User2ID:   targetID,
		MatchType: MatchTypeMutual,
	}
	created, err := s.repo.CreateMatch(ctx, match)
	if err != nil {
		return nil, err
	}

	// The match stands even when the card cannot be built; the backfill retries it.
	card, _, err := s.dateCards.EnsureDateCard(ctx, match.ID)
	if err != nil {
		s.logger.Warn("date card creation failed for match",
			zap.Int64("match_id", match.ID), zap.Error(err))
		card = nil
	}

	// A repeat like on an active match is answered without new events
	if created {
		matchesTotal.Inc()
		s.logger.Info("match created",
			zap.Int64("match_id", match.ID),
			zap.Int64("user1_id", match.User1ID),
			zap.Int64("user2_id", match.User2ID))

		s.notifyMatch(ctx, match, card)
	}

	match.MatchedUser, _ = s.repo.GetUserInfo(ctx, targetID)
	return &LikeResult{Matched: true, NewMatch: created, Match: match, DateCard: card}, nil
}

// notifyMatch sends newMatch to both participants, each seeing the other user.
func (s *service) notifyMatch(ctx context.Context, match *Match, card *datecard.DateCard) {
	if s.notifier == nil {
		return
	}

	for _, recipient := range []int64{match.User1ID, match.User2ID} {
		counterpart, err := s.repo.GetUserInfo(ctx, match.Other(recipient))
		if err != nil {
			s.logger.Warn("skipping match notification",
				zap.Int64("match_id", match.ID), zap.Int64("user_id", recipient), zap.Error(err))
			continue
		}

		s.notifier.Publish(recipient, EventNewMatch, &NewMatchEvent{
			MatchID:  match.ID,
			User:     counterpart,
			DateCard: card,
		})
	}
}

func (s *service) Pass(ctx context.Context, userID, targetID int64) error {
	if userID == targetID {
		return ErrCannotLikeSelf
	}

	if err := s.repo.RecordSwipe(ctx, userID, targetID, false); err != nil {
		return err
	}
	swipesTotal.WithLabelValues("pass").Inc()
	return nil
}

func (s *service) GetMatches(ctx context.Context, userID int64) ([]*Match, error) {
	return s.repo.GetUserMatches(ctx, userID)
}

func (s *service) Unmatch(ctx context.Context, matchID, userID int64) error {
	match, err := s.repo.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}

	if !match.Includes(userID) {
		return ErrUnauthorized
	}
	if !match.IsActive {
		return ErrMatchNotFound
	}

	if err := s.repo.DeactivateMatch(ctx, match, userID, s.now()); err != nil {
		return err
	}
	unmatchesTotal.Inc()

	if err := s.dateCards.DeleteDateCards(ctx, matchID); err != nil {
		// Cards of inactive matches are unreachable; a leftover row is harmless.
		s.logger.Warn("failed to delete date cards for unmatched pair",
			zap.Int64("match_id", matchID), zap.Error(err))
	}

	s.logger.Info("match deactivated", zap.Int64("match_id", matchID), zap.Int64("user_id", userID))
	return nil
}
