package dating

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewPostgresRepository(sqlx.NewDb(mockDB, "postgres")), mock
}

func TestRepository_RecordSwipe(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO swipes (user_id, target_id, liked)")).
		WithArgs(int64(1), int64(2), true).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.RecordSwipe(context.Background(), 1, 2, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_HasLiked(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(")).
		WithArgs(int64(2), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	liked, err := repo.HasLiked(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestRepository_CreateMatchOrdersPair(t *testing.T) {
	repo, mock := newMockRepository(t)
	matchedAt := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE matches.is_active = FALSE")).
		WithArgs(int64(2), int64(5), MatchTypeMutual).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_active", "matched_at"}).AddRow(7, true, matchedAt))

	match := &Match{User1ID: 5, User2ID: 2, MatchType: MatchTypeMutual}
	created, err := repo.CreateMatch(context.Background(), match)
	require.NoError(t, err)

	assert.True(t, created)
	assert.Equal(t, int64(7), match.ID)
	assert.Equal(t, int64(2), match.User1ID)
	assert.Equal(t, int64(5), match.User2ID)
	assert.True(t, match.IsActive)
	assert.Equal(t, matchedAt, match.MatchedAt)
}

func TestRepository_CreateMatchAlreadyActive(t *testing.T) {
	repo, mock := newMockRepository(t)
	matchedAt := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

	// The guarded upsert returns no row when the pair is active
	mock.ExpectQuery(regexp.QuoteMeta("WHERE matches.is_active = FALSE")).
		WithArgs(int64(2), int64(5), MatchTypeMutual).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_active", "matched_at"}))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE user1_id = $1 AND user2_id = $2")).
		WithArgs(int64(2), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user1_id", "user2_id", "match_type", "is_active", "unmatched_by", "unmatched_at", "matched_at",
		}).AddRow(7, 2, 5, MatchTypeMutual, true, nil, nil, matchedAt))

	match := &Match{User1ID: 2, User2ID: 5, MatchType: MatchTypeMutual}
	created, err := repo.CreateMatch(context.Background(), match)
	require.NoError(t, err)

	assert.False(t, created)
	assert.Equal(t, int64(7), match.ID)
	assert.Equal(t, matchedAt, match.MatchedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetMatch(t *testing.T) {
	columns := []string{"id", "user1_id", "user2_id", "match_type", "is_active", "unmatched_by", "unmatched_at", "matched_at"}

	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM matches")).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(7, 2, 5, MatchTypeMutual, true, nil, nil, time.Now()))

		match, err := repo.GetMatch(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(2), match.User1ID)
		assert.Nil(t, match.UnmatchedBy)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM matches")).
			WithArgs(int64(7)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetMatch(context.Background(), 7)
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})
}

func TestRepository_GetUserMatches(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "user1_id", "user2_id", "match_type", "is_active", "matched_at",
		"id", "username", "display_name", "profile_picture",
	}).
		AddRow(9, 2, 8, MatchTypeMutual, true, now, 8, "cy", "Cy", nil).
		AddRow(7, 2, 5, MatchTypeMutual, true, now.Add(-time.Hour), 5, "al", "Al", "https://cdn/al.jpg")

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY m.matched_at DESC")).
		WithArgs(int64(2)).
		WillReturnRows(rows)

	matches, err := repo.GetUserMatches(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, int64(9), matches[0].ID)
	assert.Equal(t, "cy", matches[0].MatchedUser.Username)
	assert.Nil(t, matches[0].MatchedUser.ProfilePicture)
	require.NotNil(t, matches[1].MatchedUser.ProfilePicture)
	assert.Equal(t, "https://cdn/al.jpg", *matches[1].MatchedUser.ProfilePicture)
}

func TestRepository_DeactivateMatch(t *testing.T) {
	at := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	match := &Match{ID: 7, User1ID: 2, User2ID: 5, IsActive: true}

	t.Run("deactivates and withdraws the like", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE matches")).
			WithArgs(int64(7), int64(5), at).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE swipes")).
			WithArgs(int64(5), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.DeactivateMatch(context.Background(), match, 5, at))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE matches")).
			WithArgs(int64(7), int64(5), at).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.DeactivateMatch(context.Background(), match, 5, at), ErrMatchNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("swipe update failure rolls back", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE matches")).
			WithArgs(int64(7), int64(2), at).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE swipes")).
			WithArgs(int64(2), int64(5)).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		err := repo.DeactivateMatch(context.Background(), match, 2, at)
		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetUserInfo(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(display_name, username)")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "display_name", "profile_picture"}).
			AddRow(5, "al", "al", nil))

	user, err := repo.GetUserInfo(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "al", user.DisplayName)

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(display_name, username)")).
		WithArgs(int64(6)).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetUserInfo(context.Background(), 6)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
