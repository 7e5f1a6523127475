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

var workerColumns = []string{"id", "name", "photo", "upi_id", "role", "created_at"}

// WorkerRepository handles workers database operations
type WorkerRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewWorkerRepository creates a new WorkerRepository
func NewWorkerRepository(db DBTX) *WorkerRepository {
	return &WorkerRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanWorker(row interface{ Scan(dest ...any) error }) (*models.Worker, error) {
	w := &models.Worker{}
	if err := row.Scan(&w.ID, &w.Name, &w.Photo, &w.UpiID, &w.Role, &w.CreatedAt); err != nil {
		return nil, err
	}
	return w, nil
}

// List returns the roster ordered by name.
func (r *WorkerRepository) List(ctx context.Context) ([]*models.Worker, error) {
	sql, args, err := r.sb.Select(workerColumns...).
		From("workers").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list workers SQL")
		return nil, fmt.Errorf("failed to build list workers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list workers query")
		return nil, fmt.Errorf("error querying workers: %w", err)
	}
	defer rows.Close()

	workers := []*models.Worker{}
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning worker row")
			return nil, fmt.Errorf("error scanning worker row: %w", err)
		}
		workers = append(workers, w)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating worker rows")
		return nil, fmt.Errorf("error iterating worker rows: %w", err)
	}

	return workers, nil
}

// GetByID retrieves a worker by ID
func (r *WorkerRepository) GetByID(ctx context.Context, id string) (*models.Worker, error) {
	sql, args, err := r.sb.Select(workerColumns...).
		From("workers").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get worker SQL")
		return nil, fmt.Errorf("failed to build get worker query: %w", err)
	}

	w, err := scanWorker(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) || dberrors.IsInvalidInput(err) {
			return nil, apperrors.ErrWorkerNotFound
		}
		logger.Error().Err(err).Str("workerID", id).Msg("Error scanning worker row")
		return nil, fmt.Errorf("error getting worker: %w", err)
	}

	return w, nil
}

// Create inserts a worker; a duplicate UPI handle is reported as ErrResourceAlreadyExists.
func (r *WorkerRepository) Create(ctx context.Context, w *models.Worker) error {
	sql, args, err := r.sb.Insert("workers").
		Columns("name", "photo", "upi_id", "role").
		Values(w.Name, w.Photo, w.UpiID, w.Role).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create worker SQL")
		return fmt.Errorf("failed to build create worker query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&w.ID, &w.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "workers_upi_id_key") {
			return apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Str("upiID", w.UpiID).Msg("Error executing create worker query")
		return fmt.Errorf("error creating worker: %w", err)
	}

	return nil
}

// CountAll is used by the seeder to skip populated tables.
func (r *WorkerRepository) CountAll(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, r.sb, "workers")
}
