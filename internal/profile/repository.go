// internal/profile/repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines profile data access
type Repository interface {
	GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest, at time.Time) (*Profile, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error) {
	var profile Profile
	query := `
		SELECT
			u.id, u.username, COALESCE(u.display_name, u.username) AS display_name,
			u.profile_picture, u.bio,
			COALESCE(u.interests, '{}') AS interests,
			COALESCE(u.location_name, '') AS location_name,
			u.updated_at
		FROM users u
		WHERE u.id = $1`

	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// UpdateProfile writes the non-nil fields of req and returns the stored profile.
func (r *postgresRepository) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest, at time.Time) (*Profile, error) {
	var setClauses []string
	var args []interface{}

	set := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.DisplayName != nil {
		set("display_name", *req.DisplayName)
	}
	if req.Bio != nil {
		set("bio", *req.Bio)
	}
	if req.Interests != nil {
		set("interests", pq.Array(req.Interests))
	}
	if req.LocationName != nil {
		set("location_name", *req.LocationName)
	}
	set("updated_at", at)

	args = append(args, userID)
	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d`,
		strings.Join(setClauses, ", "),
		len(args),
	)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrProfileNotFound
	}

	return r.GetProfileByUserID(ctx, userID)
}
