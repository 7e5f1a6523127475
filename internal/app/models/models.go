package models

// Role is the session role picked on the login screen.
type Role string

const (
	RoleStudent   Role = "student"
	RoleCommittee Role = "committee"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleCommittee
}

// ComplaintStatus is binary: complaints are toggled, never deleted.
type ComplaintStatus string

const (
	StatusPending  ComplaintStatus = "pending"
	StatusResolved ComplaintStatus = "resolved"
)

// Valid reports whether s is pending or resolved.
func (s ComplaintStatus) Valid() bool {
	return s == StatusPending || s == StatusResolved
}

// Toggle returns the other status.
func (s ComplaintStatus) Toggle() ComplaintStatus {
	if s == StatusResolved {
		return StatusPending
	}
	return StatusResolved
}

// Priority of an announcement
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is low, medium or high.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ComplaintCategories is the fixed list offered on the complaint form.
var ComplaintCategories = []string{
	"Taste Issues",
	"Hair/Bugs Found",
	"Quality Issues",
	"Temperature Issues",
	"Hygiene Issues",
	"Portion Size",
	"Service Issues",
	"Other",
}

// IsComplaintCategory reports whether category is one of ComplaintCategories.
func IsComplaintCategory(category string) bool {
	for _, c := range ComplaintCategories {
		if c == category {
			return true
		}
	}
	return false
}
