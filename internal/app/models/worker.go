package models

import "time"

// Worker is a member of the mess staff shown on the tipping roster.
type Worker struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Photo     string    `json:"photo" db:"photo"`
	UpiID     string    `json:"upiId" db:"upi_id"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt,omitempty" db:"created_at"`
}
