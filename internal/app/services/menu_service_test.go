package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/pkg/apperrors"
	"github.com/yigit/hostelmess/internal/pkg/websocket"
)

func week() []*models.MenuItem {
	mk := func(id, day, breakfast string) *models.MenuItem {
		it := &models.MenuItem{ID: id, Day: day}
		it.Breakfast = []string{breakfast}
		it.Normalize()
		return it
	}
	return []*models.MenuItem{mk("m1", "Monday", "Poha"), mk("m3", "Wednesday", "Paratha")}
}

func TestGetMenuForDay(t *testing.T) {
	svc := NewMenuService(&fakeMenuRepo{items: week()}, nil, zerolog.Nop()).(*menuServiceImpl)
	// 2024-01-17 is a Wednesday
	svc.now = func() time.Time { return time.Date(2024, 1, 17, 8, 0, 0, 0, time.UTC) }

	item, err := svc.GetMenuForDay(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Wednesday", item.Day)

	item, err = svc.GetMenuForDay(context.Background(), "monday")
	require.NoError(t, err)
	assert.Equal(t, "Monday", item.Day)

	item, err = svc.GetMenuForDay(context.Background(), "Sunday")
	require.NoError(t, err)
	assert.Equal(t, "Monday", item.Day, "falls back to the first entry")
}

func TestGetMenuForDayEmptyWeek(t *testing.T) {
	svc := NewMenuService(&fakeMenuRepo{}, nil, zerolog.Nop())
	_, err := svc.GetMenuForDay(context.Background(), "Monday")
	assert.ErrorIs(t, err, apperrors.ErrMenuItemNotFound)
}

func TestUpdateMenuCleansAndPublishes(t *testing.T) {
	repo := &fakeMenuRepo{items: week()}
	pub := &recordingPublisher{}
	svc := NewMenuService(repo, pub, zerolog.Nop())

	item, err := svc.UpdateMenu(context.Background(), "m1", models.Meals{
		Breakfast: []string{"  Poha ", "", "Tea"},
		Dinner:    []string{"   "},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Poha", "Tea"}, item.Breakfast)
	assert.Equal(t, []string{}, repo.updated.Dinner)
	assert.Equal(t, []string{}, repo.updated.Snacks)

	require.Len(t, pub.events, 1)
	assert.Equal(t, TableMenuItems, pub.events[0].Table)
	assert.Equal(t, websocket.ActionUpdate, pub.events[0].Action)
}

func TestUpdateMenuNotFound(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewMenuService(&fakeMenuRepo{items: week()}, pub, zerolog.Nop())

	_, err := svc.UpdateMenu(context.Background(), "missing", models.Meals{})
	assert.ErrorIs(t, err, apperrors.ErrMenuItemNotFound)
	assert.Empty(t, pub.events)
}

func TestCleanMeals(t *testing.T) {
	out := CleanMeals(models.Meals{Lunch: []string{"Rice", " ", "Dal "}})
	assert.Equal(t, []string{"Rice", "Dal"}, out.Lunch)
	for _, mt := range models.MealTypes {
		assert.NotNil(t, out.Meal(mt))
	}
}
