package dto

import "github.com/yigit/hostelmess/internal/app/models"

// CreateAnnouncementRequest posts a committee notice. Content is Markdown.
type CreateAnnouncementRequest struct {
	Title    string          `json:"title" binding:"required,max=200"`
	Content  string          `json:"content" binding:"required,max=5000"`
	Priority models.Priority `json:"priority" binding:"required,priority"`
}
