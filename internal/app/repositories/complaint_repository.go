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

var complaintColumns = []string{"id", "student_id", "student_name", "category", "description", "image_url", "status", "created_at"}

// ComplaintRepository handles complaints database operations. Complaints are
// never deleted, only toggled between pending and resolved.
type ComplaintRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewComplaintRepository creates a new ComplaintRepository
func NewComplaintRepository(db DBTX) *ComplaintRepository {
	return &ComplaintRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanComplaint(row interface{ Scan(dest ...any) error }) (*models.Complaint, error) {
	c := &models.Complaint{}
	err := row.Scan(
		&c.ID,
		&c.StudentID,
		&c.StudentName,
		&c.Category,
		&c.Description,
		&c.Image,
		&c.Status,
		&c.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns complaints newest first, optionally narrowed by status and student.
func (r *ComplaintRepository) List(ctx context.Context, filter models.ComplaintFilter) ([]*models.Complaint, error) {
	query := r.sb.Select(complaintColumns...).
		From("complaints").
		OrderBy("created_at DESC")

	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": string(filter.Status)})
	}
	if filter.StudentID != "" {
		query = query.Where(squirrel.Eq{"student_id": filter.StudentID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list complaints SQL")
		return nil, fmt.Errorf("failed to build list complaints query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list complaints query")
		return nil, fmt.Errorf("error querying complaints: %w", err)
	}
	defer rows.Close()

	complaints := []*models.Complaint{}
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning complaint row")
			return nil, fmt.Errorf("error scanning complaint row: %w", err)
		}
		complaints = append(complaints, c)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating complaint rows")
		return nil, fmt.Errorf("error iterating complaint rows: %w", err)
	}

	return complaints, nil
}

// GetByID retrieves a complaint by ID
func (r *ComplaintRepository) GetByID(ctx context.Context, id string) (*models.Complaint, error) {
	sql, args, err := r.sb.Select(complaintColumns...).
		From("complaints").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get complaint SQL")
		return nil, fmt.Errorf("failed to build get complaint query: %w", err)
	}

	c, err := scanComplaint(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) || dberrors.IsInvalidInput(err) {
			return nil, apperrors.ErrComplaintNotFound
		}
		logger.Error().Err(err).Str("complaintID", id).Msg("Error scanning complaint row")
		return nil, fmt.Errorf("error getting complaint: %w", err)
	}

	return c, nil
}

// Create inserts a complaint. The status column is left to its 'pending'
// default; id, status and created_at are read back into c.
func (r *ComplaintRepository) Create(ctx context.Context, c *models.Complaint) error {
	sql, args, err := r.sb.Insert("complaints").
		Columns("student_id", "student_name", "category", "description", "image_url").
		Values(c.StudentID, c.StudentName, c.Category, c.Description, c.Image).
		Suffix("RETURNING id, status, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create complaint SQL")
		return fmt.Errorf("failed to build create complaint query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Status, &c.Timestamp); err != nil {
		logger.Error().Err(err).Str("studentID", c.StudentID).Msg("Error executing create complaint query")
		return fmt.Errorf("error creating complaint: %w", err)
	}

	return nil
}

// UpdateStatus sets the status and returns the updated row.
func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) (*models.Complaint, error) {
	sql, args, err := r.sb.Update("complaints").
		Set("status", string(status)).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(complaintColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update complaint status SQL")
		return nil, fmt.Errorf("failed to build update complaint status query: %w", err)
	}

	c, err := scanComplaint(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) || dberrors.IsInvalidInput(err) {
			return nil, apperrors.ErrComplaintNotFound
		}
		if dberrors.IsCheckViolation(err) {
			return nil, fmt.Errorf("%w: invalid status %q", apperrors.ErrValidationFailed, status)
		}
		logger.Error().Err(err).Str("complaintID", id).Msg("Error executing update complaint status query")
		return nil, fmt.Errorf("error updating complaint status: %w", err)
	}

	return c, nil
}

// SetImage records the stored image URL of a complaint.
func (r *ComplaintRepository) SetImage(ctx context.Context, id, imageURL string) error {
	sql, args, err := r.sb.Update("complaints").
		Set("image_url", imageURL).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set complaint image SQL")
		return fmt.Errorf("failed to build set complaint image query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsInvalidInput(err) {
			return apperrors.ErrComplaintNotFound
		}
		logger.Error().Err(err).Str("complaintID", id).Msg("Error executing set complaint image query")
		return fmt.Errorf("error setting complaint image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrComplaintNotFound
	}

	return nil
}
