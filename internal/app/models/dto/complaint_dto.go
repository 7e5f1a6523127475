package dto

import "github.com/yigit/hostelmess/internal/app/models"

// CreateComplaintRequest is the complaint form. Multipart submissions carry
// the same fields as form values plus an "image" file.
type CreateComplaintRequest struct {
	Category    string `json:"category" form:"category" binding:"required,complaint_category"`
	Description string `json:"description" form:"description" binding:"required,max=2000"`
	// Image is an already hosted photo URL; uploads use the multipart field instead.
	Image string `json:"image" form:"-" binding:"omitempty,url"`
}

// UpdateComplaintStatusRequest sets a complaint to pending or resolved.
type UpdateComplaintStatusRequest struct {
	Status models.ComplaintStatus `json:"status" binding:"required,complaint_status"`
}

// CategoriesResponse lists the complaint categories offered by the form.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
