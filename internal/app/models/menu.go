package models

import "time"

// MealType names one of the four meal lists of a menu day.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealSnacks    MealType = "snacks"
	MealDinner    MealType = "dinner"
)

// MealTypes lists the meals in serving order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealSnacks, MealDinner}

// Valid reports whether m is one of the four meals.
func (m MealType) Valid() bool {
	for _, t := range MealTypes {
		if t == m {
			return true
		}
	}
	return false
}

// Meals holds the four ordered meal lists of one day.
type Meals struct {
	Breakfast []string `json:"breakfast"`
	Lunch     []string `json:"lunch"`
	Snacks    []string `json:"snacks"`
	Dinner    []string `json:"dinner"`
}

// MenuItem is the menu of one weekday.
type MenuItem struct {
	ID   string `json:"id" db:"id"`
	Day  string `json:"day" db:"day"`
	Meals
	UpdatedAt time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// Normalize replaces nil meal lists with empty ones so all four are always present.
func (m *Meals) Normalize() {
	if m.Breakfast == nil {
		m.Breakfast = []string{}
	}
	if m.Lunch == nil {
		m.Lunch = []string{}
	}
	if m.Snacks == nil {
		m.Snacks = []string{}
	}
	if m.Dinner == nil {
		m.Dinner = []string{}
	}
}

// Meal returns the list for t.
func (m *Meals) Meal(t MealType) []string {
	switch t {
	case MealBreakfast:
		return m.Breakfast
	case MealLunch:
		return m.Lunch
	case MealSnacks:
		return m.Snacks
	case MealDinner:
		return m.Dinner
	}
	return nil
}

// SetMeal replaces the list for t.
func (m *Meals) SetMeal(t MealType, items []string) {
	switch t {
	case MealBreakfast:
		m.Breakfast = items
	case MealLunch:
		m.Lunch = items
	case MealSnacks:
		m.Snacks = items
	case MealDinner:
		m.Dinner = items
	}
}

// Clone deep-copies the meal lists.
func (m Meals) Clone() Meals {
	c := Meals{}
	for _, t := range MealTypes {
		src := m.Meal(t)
		dst := make([]string, len(src))
		copy(dst, src)
		c.SetMeal(t, dst)
	}
	return c
}

// Clone deep-copies the menu item.
func (m MenuItem) Clone() MenuItem {
	m.Meals = m.Meals.Clone()
	return m
}
