package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	MenuRepository         *MenuRepository
	WorkerRepository       *WorkerRepository
	ComplaintRepository    *ComplaintRepository
	AnnouncementRepository *AnnouncementRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		MenuRepository:         NewMenuRepository(db),
		WorkerRepository:       NewWorkerRepository(db),
		ComplaintRepository:    NewComplaintRepository(db),
		AnnouncementRepository: NewAnnouncementRepository(db),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Weekdays in calendar order, used as the natural key for menu rows.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// weekdayOrder sorts menu rows Monday first instead of alphabetically.
func weekdayOrder() string {
	return "array_position(ARRAY['" + strings.Join(Weekdays, "','") + "']::text[], day)"
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

func countRows(ctx context.Context, db DBTX, sb squirrel.StatementBuilderType, table string) (int, error) {
	sql, args, err := sb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}
	return count, nil
}
