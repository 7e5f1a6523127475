package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/pkg/apperrors"
	"github.com/yigit/hostelmess/internal/pkg/dberrors"
	"github.com/yigit/hostelmess/internal/pkg/logger"
)

// UserRepository records the session users that have logged in.
type UserRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Upsert inserts the user or refreshes name and role for an existing email.
// The stored id and created_at are written back into u.
func (r *UserRepository) Upsert(ctx context.Context, u *models.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns("name", "role", "email").
		Values(u.Name, string(u.Role), u.Email).
		Suffix("ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert user SQL")
		return fmt.Errorf("failed to build upsert user query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&u.ID, &u.CreatedAt); err != nil {
		logger.Error().Err(err).Str("email", u.Email).Msg("Error executing upsert user query")
		return fmt.Errorf("error upserting user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select("id", "name", "role", "email", "created_at").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by email SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	u := &models.User{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&u.ID, &u.Name, &u.Role, &u.Email, &u.CreatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.NewResourceNotFoundError("user not found")
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}

	return u, nil
}
