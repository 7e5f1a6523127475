package models

import "time"

// Complaint is raised by a student and triaged by the committee.
type Complaint struct {
	ID          string          `json:"id" db:"id"`
	StudentID   string          `json:"studentId" db:"student_id"`
	StudentName string          `json:"studentName" db:"student_name"`
	Category    string          `json:"category" db:"category"`
	Description string          `json:"description" db:"description"`
	Image       *string         `json:"image,omitempty" db:"image_url"`
	Timestamp   time.Time       `json:"timestamp" db:"created_at"`
	Status      ComplaintStatus `json:"status" db:"status"`
}

// ComplaintFilter narrows a complaint listing. Zero values mean "all".
type ComplaintFilter struct {
	Status    ComplaintStatus
	StudentID string
}
