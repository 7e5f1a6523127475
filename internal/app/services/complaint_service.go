package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/app/models/dto"
	"github.com/yigit/hostelmess/internal/pkg/apperrors"
	"github.com/yigit/hostelmess/internal/pkg/validation"
	"github.com/yigit/hostelmess/internal/pkg/websocket"
)

const complaintImageFolder = "complaints"

// ImageUploader stores complaint photos and returns their public URL.
type ImageUploader interface {
	UploadMultipart(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, url string) error
}

// ComplaintService handles the complaint lifecycle: students file them,
// the committee flips them between pending and resolved. There is no delete.
type ComplaintService interface {
	Categories() []string
	ListComplaints(ctx context.Context, filter models.ComplaintFilter) ([]*models.Complaint, error)
	CreateComplaint(ctx context.Context, student *models.User, req *dto.CreateComplaintRequest, image *multipart.FileHeader) (*models.Complaint, error)
	AttachImage(ctx context.Context, student *models.User, id string, image *multipart.FileHeader) (*models.Complaint, error)
	UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) (*models.Complaint, error)
	ToggleStatus(ctx context.Context, id string) (*models.Complaint, error)
}

type complaintServiceImpl struct {
	complaintRepo complaintRepository
	uploader      ImageUploader
	publisher     websocket.Publisher
	logger        zerolog.Logger
}

// NewComplaintService creates a new ComplaintService. uploader may be nil,
// in which case photo uploads fail with ErrStorageUnavailable.
func NewComplaintService(
	complaintRepo complaintRepository,
	uploader ImageUploader,
	publisher websocket.Publisher,
	logger zerolog.Logger,
) ComplaintService {
	return &complaintServiceImpl{
		complaintRepo: complaintRepo,
		uploader:      uploader,
		publisher:     publisherOrNop(publisher),
		logger:        logger,
	}
}

func (s *complaintServiceImpl) Categories() []string {
	out := make([]string, len(models.ComplaintCategories))
	copy(out, models.ComplaintCategories)
	return out
}

func (s *complaintServiceImpl) ListComplaints(ctx context.Context, filter models.ComplaintFilter) ([]*models.Complaint, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status filter %q", apperrors.ErrValidationFailed, filter.Status)
	}

	complaints, err := s.complaintRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch complaints: %w", err)
	}
	return complaints, nil
}

func (s *complaintServiceImpl) validate(req *dto.CreateComplaintRequest) error {
	req.Category = strings.TrimSpace(req.Category)
	req.Description = strings.TrimSpace(req.Description)
	req.Image = strings.TrimSpace(req.Image)

	if !models.IsComplaintCategory(req.Category) {
		return fmt.Errorf("%w: %w %q", apperrors.ErrValidationFailed, apperrors.ErrUnknownCategory, req.Category)
	}

	if err := validation.Get().Struct(req); err != nil {
		verr := &apperrors.CustomError{Err: apperrors.ErrValidationFailed, Message: "complaint is invalid"}
		return verr.WithDetails(toDetails(validation.FieldErrors(err)))
	}
	return nil
}

func toDetails(fields map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// CreateComplaint files a complaint for student. The row always starts
// pending. An attached photo is stored first and removed again if the
// insert fails.
func (s *complaintServiceImpl) CreateComplaint(
	ctx context.Context,
	student *models.User,
	req *dto.CreateComplaintRequest,
	image *multipart.FileHeader,
) (*models.Complaint, error) {
	if student == nil || student.ID == "" {
		return nil, apperrors.NewForbiddenError("a student session is required")
	}

	if err := s.validate(req); err != nil {
		return nil, err
	}

	complaint := &models.Complaint{
		StudentID:   student.ID,
		StudentName: student.Name,
		Category:    req.Category,
		Description: req.Description,
		Status:      models.StatusPending,
	}
	if req.Image != "" {
		complaint.Image = &req.Image
	}

	uploaded := ""
	if image != nil {
		url, err := s.upload(ctx, image)
		if err != nil {
			return nil, err
		}
		complaint.Image = &url
		uploaded = url
	}

	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		s.logger.Error().Err(err).Str("studentID", student.ID).Msg("Failed to create complaint")
		if uploaded != "" {
			s.discard(ctx, uploaded)
		}
		return nil, fmt.Errorf("failed to submit complaint: %w", err)
	}

	s.logger.Info().
		Str("complaintID", complaint.ID).
		Str("category", complaint.Category).
		Msg("Complaint submitted")

	s.publisher.Publish(websocket.Event{
		Table:  TableComplaints,
		Action: websocket.ActionInsert,
		ID:     complaint.ID,
		Record: complaint,
	})

	return complaint, nil
}

// AttachImage uploads a photo for an existing complaint owned by student.
func (s *complaintServiceImpl) AttachImage(ctx context.Context, student *models.User, id string, image *multipart.FileHeader) (*models.Complaint, error) {
	if image == nil {
		return nil, fmt.Errorf("%w: image file is required", apperrors.ErrValidationFailed)
	}

	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil || complaint.StudentID != student.ID {
		return nil, apperrors.NewForbiddenError("complaint belongs to another student")
	}

	url, err := s.upload(ctx, image)
	if err != nil {
		return nil, err
	}

	if err := s.complaintRepo.SetImage(ctx, id, url); err != nil {
		s.discard(ctx, url)
		return nil, err
	}
	complaint.Image = &url

	s.publisher.Publish(websocket.Event{
		Table:  TableComplaints,
		Action: websocket.ActionUpdate,
		ID:     complaint.ID,
		Record: complaint,
	})

	return complaint, nil
}

func (s *complaintServiceImpl) upload(ctx context.Context, image *multipart.FileHeader) (string, error) {
	if s.uploader == nil {
		return "", apperrors.ErrStorageUnavailable
	}

	url, err := s.uploader.UploadMultipart(ctx, complaintImageFolder, image)
	if err != nil {
		s.logger.Error().Err(err).Str("filename", image.Filename).Msg("Failed to store complaint image")
		return "", fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	return url, nil
}

func (s *complaintServiceImpl) discard(ctx context.Context, url string) {
	if err := s.uploader.Remove(ctx, url); err != nil {
		s.logger.Warn().Err(err).Str("url", url).Msg("Failed to remove orphaned complaint image")
	}
}

func (s *complaintServiceImpl) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) (*models.Complaint, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status must be pending or resolved", apperrors.ErrValidationFailed)
	}

	complaint, err := s.complaintRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("complaintID", id).
		Str("status", string(status)).
		Msg("Complaint status updated")

	s.publisher.Publish(websocket.Event{
		Table:  TableComplaints,
		Action: websocket.ActionUpdate,
		ID:     complaint.ID,
		Record: complaint,
	})

	return complaint, nil
}

// ToggleStatus flips pending and resolved.
func (s *complaintServiceImpl) ToggleStatus(ctx context.Context, id string) (*models.Complaint, error) {
	current, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.UpdateStatus(ctx, id, current.Status.Toggle())
}
