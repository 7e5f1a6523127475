package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/app/models/dto"
	"github.com/yigit/hostelmess/internal/app/services"
	"github.com/yigit/hostelmess/internal/middleware"
	"github.com/yigit/hostelmess/internal/pkg/apperrors"
)

const imageFormField = "image"

// ComplaintController handles complaint submission and resolution
type ComplaintController struct {
	complaintService services.ComplaintService
}

// NewComplaintController creates a new ComplaintController
func NewComplaintController(complaintService services.ComplaintService) *ComplaintController {
	return &ComplaintController{
		complaintService: complaintService,
	}
}

// GetCategories lists the fixed complaint categories
// @Summary Complaint categories
// @Tags complaints
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CategoriesResponse}
// @Router /complaints/categories [get]
func (c *ComplaintController) GetCategories(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CategoriesResponse{
		Categories: c.complaintService.Categories(),
	}))
}

// GetComplaints lists complaints, newest first
// @Summary Complaints
// @Description Committee members see every complaint. ?mine=true limits the list to the caller's own.
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending or resolved"
// @Param mine query bool false "only the caller's complaints"
// @Success 200 {object} dto.APIResponse{data=[]models.Complaint}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /complaints [get]
func (c *ComplaintController) GetComplaints(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	filter := models.ComplaintFilter{
		Status: models.ComplaintStatus(ctx.Query("status")),
	}

	if ctx.Query("mine") == "true" {
		filter.StudentID = user.ID
	} else if user.Role != models.RoleCommittee {
		middleware.HandleAPIError(ctx, apperrors.NewForbiddenError("only the committee can list every complaint"))
		return
	}

	complaints, err := c.complaintService.ListComplaints(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(complaints))
}

// CreateComplaint files a complaint as the current student
// @Summary Submit a complaint
// @Description Accepts JSON, or multipart/form-data with an optional "image" file.
// @Tags complaints
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateComplaintRequest true "Complaint"
// @Success 201 {object} dto.APIResponse{data=models.Complaint}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse "Photo attached but no storage configured"
// @Router /complaints [post]
func (c *ComplaintController) CreateComplaint(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	var req dto.CreateComplaintRequest
	if !middleware.Bind(ctx, &req) {
		return
	}

	image, err := optionalImage(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	complaint, err := c.complaintService.CreateComplaint(ctx.Request.Context(), user, &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(complaint))
}

// AttachImage uploads a photo for one of the caller's complaints
// @Summary Attach a complaint photo
// @Tags complaints
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Complaint ID"
// @Param image formData file true "Photo"
// @Success 200 {object} dto.APIResponse{data=models.Complaint}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /complaints/{id}/image [post]
func (c *ComplaintController) AttachImage(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	image, err := optionalImage(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	complaint, err := c.complaintService.AttachImage(ctx.Request.Context(), user, ctx.Param("id"), image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(complaint))
}

// UpdateStatus sets a complaint to pending or resolved
// @Summary Set complaint status
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Complaint ID"
// @Param request body dto.UpdateComplaintStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Complaint}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /complaints/{id}/status [patch]
func (c *ComplaintController) UpdateStatus(ctx *gin.Context) {
	var req dto.UpdateComplaintStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	complaint, err := c.complaintService.UpdateStatus(ctx.Request.Context(), ctx.Param("id"), req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(complaint))
}

// ToggleStatus flips a complaint between pending and resolved
// @Summary Toggle complaint status
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param id path string true "Complaint ID"
// @Success 200 {object} dto.APIResponse{data=models.Complaint}
// @Failure 404 {object} dto.ErrorResponse
// @Router /complaints/{id}/toggle [post]
func (c *ComplaintController) ToggleStatus(ctx *gin.Context) {
	complaint, err := c.complaintService.ToggleStatus(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(complaint))
}

// optionalImage returns the multipart "image" file, or nil for JSON bodies
// and forms without one.
func optionalImage(ctx *gin.Context) (*multipart.FileHeader, error) {
	if !strings.HasPrefix(ctx.ContentType(), "multipart/form-data") {
		return nil, nil
	}

	fh, err := ctx.FormFile(imageFormField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(apperrors.ErrBadRequest, err)
	}
	return fh, nil
}
