package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/pkg/apperrors"
	"github.com/yigit/hostelmess/internal/pkg/websocket"
)

// MenuService reads and edits the weekly menu.
type MenuService interface {
	GetWeeklyMenu(ctx context.Context) ([]*models.MenuItem, error)
	// GetMenuForDay returns the menu of day, today when day is empty. When
	// no row matches, the first day of the week is returned instead.
	GetMenuForDay(ctx context.Context, day string) (*models.MenuItem, error)
	UpdateMenu(ctx context.Context, id string, meals models.Meals) (*models.MenuItem, error)
}

type menuServiceImpl struct {
	menuRepo  menuRepository
	publisher websocket.Publisher
	now       func() time.Time
	logger    zerolog.Logger
}

// NewMenuService creates a new MenuService
func NewMenuService(menuRepo menuRepository, publisher websocket.Publisher, logger zerolog.Logger) MenuService {
	return &menuServiceImpl{
		menuRepo:  menuRepo,
		publisher: publisherOrNop(publisher),
		now:       time.Now,
		logger:    logger,
	}
}

func (s *menuServiceImpl) GetWeeklyMenu(ctx context.Context) ([]*models.MenuItem, error) {
	items, err := s.menuRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch menu: %w", err)
	}
	return items, nil
}

func (s *menuServiceImpl) GetMenuForDay(ctx context.Context, day string) (*models.MenuItem, error) {
	day = strings.TrimSpace(day)
	if day == "" {
		day = s.now().Weekday().String()
	}

	items, err := s.GetWeeklyMenu(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.ErrMenuItemNotFound
	}

	for _, item := range items {
		if strings.EqualFold(item.Day, day) {
			return item, nil
		}
	}

	s.logger.Debug().Str("day", day).Str("fallback", items[0].Day).Msg("No menu for day, using first entry")
	return items[0], nil
}

func (s *menuServiceImpl) UpdateMenu(ctx context.Context, id string, meals models.Meals) (*models.MenuItem, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: menu id is required", apperrors.ErrValidationFailed)
	}

	cleaned := CleanMeals(meals)
	for _, mt := range models.MealTypes {
		for _, dish := range cleaned.Meal(mt) {
			if len(dish) > 100 {
				return nil, fmt.Errorf("%w: %s item %q is too long", apperrors.ErrValidationFailed, mt, dish)
			}
		}
	}

	item, err := s.menuRepo.Update(ctx, id, cleaned)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("menuItemID", item.ID).Str("day", item.Day).Msg("Menu updated")
	s.publisher.Publish(websocket.Event{
		Table:  TableMenuItems,
		Action: websocket.ActionUpdate,
		ID:     item.ID,
		Record: item,
	})

	return item, nil
}

// CleanMeals trims every dish and drops blank ones. The editor appends empty
// rows as placeholders, so they never reach the table.
func CleanMeals(meals models.Meals) models.Meals {
	out := models.Meals{}
	for _, mt := range models.MealTypes {
		dishes := []string{}
		for _, dish := range meals.Meal(mt) {
			if dish = strings.TrimSpace(dish); dish != "" {
				dishes = append(dishes, dish)
			}
		}
		out.SetMeal(mt, dishes)
	}
	return out
}
