package models

import "time"

// Announcement is a committee notice shown on the student dashboard.
type Announcement struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Content     string    `json:"content" db:"content"`
	ContentHTML string    `json:"contentHtml,omitempty" db:"-"`
	Timestamp   time.Time `json:"timestamp" db:"created_at"`
	Priority    Priority  `json:"priority" db:"priority"`
}
