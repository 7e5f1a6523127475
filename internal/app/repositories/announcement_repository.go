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

var announcementColumns = []string{"id", "title", "content", "priority", "created_at"}

// AnnouncementRepository handles announcements database operations
type AnnouncementRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db DBTX) *AnnouncementRepository {
	return &AnnouncementRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanAnnouncement(row interface{ Scan(dest ...any) error }) (*models.Announcement, error) {
	a := &models.Announcement{}
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Priority, &a.Timestamp); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns announcements newest first.
func (r *AnnouncementRepository) List(ctx context.Context) ([]*models.Announcement, error) {
	sql, args, err := r.sb.Select(announcementColumns...).
		From("announcements").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list announcements SQL")
		return nil, fmt.Errorf("failed to build list announcements query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list announcements query")
		return nil, fmt.Errorf("error querying announcements: %w", err)
	}
	defer rows.Close()

	announcements := []*models.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning announcement row")
			return nil, fmt.Errorf("error scanning announcement row: %w", err)
		}
		announcements = append(announcements, a)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating announcement rows")
		return nil, fmt.Errorf("error iterating announcement rows: %w", err)
	}

	return announcements, nil
}

// Create inserts an announcement and reads back id and created_at. A preset
// Timestamp is stored as is; otherwise the database clock is used.
func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	insert := r.sb.Insert("announcements")
	if a.Timestamp.IsZero() {
		insert = insert.Columns("title", "content", "priority").
			Values(a.Title, a.Content, string(a.Priority))
	} else {
		insert = insert.Columns("title", "content", "priority", "created_at").
			Values(a.Title, a.Content, string(a.Priority), a.Timestamp)
	}

	sql, args, err := insert.Suffix("RETURNING id, created_at").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create announcement SQL")
		return fmt.Errorf("failed to build create announcement query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.Timestamp); err != nil {
		if dberrors.IsCheckViolation(err) {
			return fmt.Errorf("%w: invalid priority %q", apperrors.ErrValidationFailed, a.Priority)
		}
		logger.Error().Err(err).Msg("Error executing create announcement query")
		return fmt.Errorf("error creating announcement: %w", err)
	}

	return nil
}

// CountAll is used by the seeder to skip populated tables.
func (r *AnnouncementRepository) CountAll(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, r.sb, "announcements")
}
