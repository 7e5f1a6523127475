package flows

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yigit/hostelmess/internal/app/models"
)

var (
	ErrNotEditing      = errors.New("no menu day is being edited")
	ErrUnknownMeal     = errors.New("unknown meal")
	ErrIndexOutOfRange = errors.New("menu entry index out of range")
)

// MenuUpdater persists one day's meals. *hooks.MenuHook satisfies it.
type MenuUpdater interface {
	UpdateMenu(ctx context.Context, id string, meals models.Meals) error
}

// MenuEditor edits one menu day at a time in a scratch copy. Nothing reaches
// the server until Save.
type MenuEditor struct {
	updater MenuUpdater

	mu      sync.Mutex
	scratch *models.MenuItem
}

func NewMenuEditor(updater MenuUpdater) *MenuEditor {
	return &MenuEditor{updater: updater}
}

// Start begins editing item, discarding any unsaved edit.
func (e *MenuEditor) Start(item models.MenuItem) {
	e.mu.Lock()
	defer e.mu.Unlock()
	clone := item.Clone()
	clone.Normalize()
	e.scratch = &clone
}

// Editing returns the scratch copy.
func (e *MenuEditor) Editing() (models.MenuItem, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.scratch == nil {
		return models.MenuItem{}, false
	}
	return e.scratch.Clone(), true
}

// Add appends an empty entry to meal.
func (e *MenuEditor) Add(meal models.MealType) error {
	return e.edit(meal, func(items []string) ([]string, error) {
		return append(items, ""), nil
	})
}

// Remove drops the entry at index from meal.
func (e *MenuEditor) Remove(meal models.MealType, index int) error {
	return e.edit(meal, func(items []string) ([]string, error) {
		if index < 0 || index >= len(items) {
			return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
		}
		return append(items[:index:index], items[index+1:]...), nil
	})
}

// Edit replaces the entry at index in meal.
func (e *MenuEditor) Edit(meal models.MealType, index int, value string) error {
	return e.edit(meal, func(items []string) ([]string, error) {
		if index < 0 || index >= len(items) {
			return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
		}
		items[index] = value
		return items, nil
	})
}

func (e *MenuEditor) edit(meal models.MealType, fn func(items []string) ([]string, error)) error {
	if !meal.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMeal, meal)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.scratch == nil {
		return ErrNotEditing
	}

	items, err := fn(e.scratch.Meal(meal))
	if err != nil {
		return err
	}
	e.scratch.SetMeal(meal, items)
	return nil
}

// Cancel discards the scratch copy.
func (e *MenuEditor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scratch = nil
}

// Save persists the scratch copy. On failure the edit stays open.
func (e *MenuEditor) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.scratch == nil {
		e.mu.Unlock()
		return ErrNotEditing
	}
	item := e.scratch.Clone()
	e.mu.Unlock()

	if err := e.updater.UpdateMenu(ctx, item.ID, item.Meals); err != nil {
		return err
	}

	e.mu.Lock()
	e.scratch = nil
	e.mu.Unlock()
	return nil
}
