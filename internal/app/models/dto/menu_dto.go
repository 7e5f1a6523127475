package dto

import "github.com/yigit/hostelmess/internal/app/models"

// UpdateMenuRequest replaces all four meal lists of one day. Omitted lists
// are stored empty.
type UpdateMenuRequest struct {
	Breakfast []string `json:"breakfast" binding:"omitempty,max=30,dive,max=100"`
	Lunch     []string `json:"lunch" binding:"omitempty,max=30,dive,max=100"`
	Snacks    []string `json:"snacks" binding:"omitempty,max=30,dive,max=100"`
	Dinner    []string `json:"dinner" binding:"omitempty,max=30,dive,max=100"`
}

// Meals converts the request into the model lists.
func (r UpdateMenuRequest) Meals() models.Meals {
	return models.Meals{
		Breakfast: r.Breakfast,
		Lunch:     r.Lunch,
		Snacks:    r.Snacks,
		Dinner:    r.Dinner,
	}
}

// TodayMenuResponse is the menu of the requested day.
type TodayMenuResponse struct {
	Day  string           `json:"day"`
	Menu *models.MenuItem `json:"menu"`
}
