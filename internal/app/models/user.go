package models

import "time"

// User is the session user. The app fabricates it from the selected role;
// the users table only records who has logged in.
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Role      Role      `json:"role" db:"role"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"createdAt,omitempty" db:"created_at"`
}
