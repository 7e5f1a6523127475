package services

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/app/models/dto"
	"github.com/yigit/hostelmess/internal/pkg/apperrors"
	"github.com/yigit/hostelmess/internal/pkg/validation"
	"github.com/yigit/hostelmess/internal/pkg/websocket"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in announcement bodies is escaped (WithUnsafe is not set).
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// AnnouncementService lists and posts committee notices.
type AnnouncementService interface {
	ListAnnouncements(ctx context.Context) ([]*models.Announcement, error)
	CreateAnnouncement(ctx context.Context, req *dto.CreateAnnouncementRequest) (*models.Announcement, error)
}

type announcementServiceImpl struct {
	announcementRepo announcementRepository
	publisher        websocket.Publisher
	logger           zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(announcementRepo announcementRepository, publisher websocket.Publisher, logger zerolog.Logger) AnnouncementService {
	return &announcementServiceImpl{
		announcementRepo: announcementRepo,
		publisher:        publisherOrNop(publisher),
		logger:           logger,
	}
}

func (s *announcementServiceImpl) ListAnnouncements(ctx context.Context) ([]*models.Announcement, error) {
	list, err := s.announcementRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch announcements: %w", err)
	}

	for _, a := range list {
		a.ContentHTML = s.render(a.Content)
	}
	return list, nil
}

func (s *announcementServiceImpl) CreateAnnouncement(ctx context.Context, req *dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)

	if err := validation.Get().Struct(req); err != nil {
		verr := &apperrors.CustomError{Err: apperrors.ErrValidationFailed, Message: "announcement is invalid"}
		return nil, verr.WithDetails(toDetails(validation.FieldErrors(err)))
	}

	a := &models.Announcement{
		Title:    req.Title,
		Content:  req.Content,
		Priority: req.Priority,
	}
	if err := s.announcementRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	a.ContentHTML = s.render(a.Content)

	s.logger.Info().Str("announcementID", a.ID).Str("priority", string(a.Priority)).Msg("Announcement posted")
	s.publisher.Publish(websocket.Event{
		Table:  TableAnnouncements,
		Action: websocket.ActionInsert,
		ID:     a.ID,
		Record: a,
	})

	return a, nil
}

func (s *announcementServiceImpl) render(content string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to render announcement markdown")
		return "<p>" + html.EscapeString(content) + "</p>"
	}
	return buf.String()
}
