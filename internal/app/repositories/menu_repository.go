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

var menuColumns = []string{"id", "day", "breakfast", "lunch", "snacks", "dinner", "updated_at"}

// MenuRepository handles menu_items database operations
type MenuRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewMenuRepository creates a new MenuRepository
func NewMenuRepository(db DBTX) *MenuRepository {
	return &MenuRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanMenuItem(row interface{ Scan(dest ...any) error }) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	err := row.Scan(
		&item.ID,
		&item.Day,
		&item.Breakfast,
		&item.Lunch,
		&item.Snacks,
		&item.Dinner,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Normalize()
	return item, nil
}

// List returns the weekly menu, Monday first.
func (r *MenuRepository) List(ctx context.Context) ([]*models.MenuItem, error) {
	sql, args, err := r.sb.Select(menuColumns...).
		From("menu_items").
		OrderBy(weekdayOrder(), "day ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list menu SQL")
		return nil, fmt.Errorf("failed to build list menu query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list menu query")
		return nil, fmt.Errorf("error querying menu: %w", err)
	}
	defer rows.Close()

	items := []*models.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning menu row")
			return nil, fmt.Errorf("error scanning menu row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating menu rows")
		return nil, fmt.Errorf("error iterating menu rows: %w", err)
	}

	return items, nil
}

// GetByID retrieves one menu day.
func (r *MenuRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	sql, args, err := r.sb.Select(menuColumns...).
		From("menu_items").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get menu item SQL")
		return nil, fmt.Errorf("failed to build get menu item query: %w", err)
	}

	item, err := scanMenuItem(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) || dberrors.IsInvalidInput(err) {
			return nil, apperrors.ErrMenuItemNotFound
		}
		logger.Error().Err(err).Str("menuItemID", id).Msg("Error scanning menu item row")
		return nil, fmt.Errorf("error getting menu item: %w", err)
	}

	return item, nil
}

// Create inserts a menu day. Used by the seeder; the API only updates.
func (r *MenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	item.Normalize()
	sql, args, err := r.sb.Insert("menu_items").
		Columns("day", "breakfast", "lunch", "snacks", "dinner").
		Values(item.Day, item.Breakfast, item.Lunch, item.Snacks, item.Dinner).
		Suffix("RETURNING id, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create menu item SQL")
		return fmt.Errorf("failed to build create menu item query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&item.ID, &item.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "menu_items_day_key") {
			return apperrors.ErrDuplicateMenuDay
		}
		logger.Error().Err(err).Str("day", item.Day).Msg("Error executing create menu item query")
		return fmt.Errorf("error creating menu item: %w", err)
	}

	return nil
}

// Update replaces the four meal lists of a day and bumps updated_at.
func (r *MenuRepository) Update(ctx context.Context, id string, meals models.Meals) (*models.MenuItem, error) {
	meals.Normalize()
	sql, args, err := r.sb.Update("menu_items").
		SetMap(map[string]interface{}{
			"breakfast":  meals.Breakfast,
			"lunch":      meals.Lunch,
			"snacks":     meals.Snacks,
			"dinner":     meals.Dinner,
			"updated_at": squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(menuColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update menu item SQL")
		return nil, fmt.Errorf("failed to build update menu item query: %w", err)
	}

	item, err := scanMenuItem(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) || dberrors.IsInvalidInput(err) {
			return nil, apperrors.ErrMenuItemNotFound
		}
		logger.Error().Err(err).Str("menuItemID", id).Msg("Error executing update menu item query")
		return nil, fmt.Errorf("error updating menu item: %w", err)
	}

	return item, nil
}

// CountAll is used by the seeder to skip populated tables.
func (r *MenuRepository) CountAll(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, r.sb, "menu_items")
}
