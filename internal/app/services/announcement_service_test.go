package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/app/models/dto"
	"github.com/yigit/hostelmess/internal/pkg/apperrors"
	"github.com/yigit/hostelmess/internal/pkg/websocket"
)

func TestCreateAnnouncement(t *testing.T) {
	repo := &fakeAnnouncementRepo{}
	pub := &recordingPublisher{}
	svc := NewAnnouncementService(repo, pub, zerolog.Nop())

	a, err := svc.CreateAnnouncement(context.Background(), &dto.CreateAnnouncementRequest{
		Title:    " Mess closed Sunday ",
		Content:  "Dinner moves to the **canteen**.",
		Priority: models.PriorityHigh,
	})
	require.NoError(t, err)

	assert.Equal(t, "Mess closed Sunday", a.Title)
	assert.Contains(t, a.ContentHTML, "<strong>canteen</strong>")
	require.Len(t, pub.events, 1)
	assert.Equal(t, TableAnnouncements, pub.events[0].Table)
	assert.Equal(t, websocket.ActionInsert, pub.events[0].Action)
}

func TestCreateAnnouncementValidation(t *testing.T) {
	svc := NewAnnouncementService(&fakeAnnouncementRepo{}, nil, zerolog.Nop())

	_, err := svc.CreateAnnouncement(context.Background(), &dto.CreateAnnouncementRequest{Title: "t", Content: "c", Priority: "urgent"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateAnnouncement(context.Background(), &dto.CreateAnnouncementRequest{Title: "  ", Content: "c", Priority: models.PriorityLow})
	var custom *apperrors.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Contains(t, custom.Details, "title")
}

func TestListAnnouncementsEscapesRawHTML(t *testing.T) {
	repo := &fakeAnnouncementRepo{rows: []*models.Announcement{
		{ID: "a1", Title: "x", Content: "<script>alert(1)</script>\nhello", Priority: models.PriorityLow},
	}}
	svc := NewAnnouncementService(repo, nil, zerolog.Nop())

	list, err := svc.ListAnnouncements(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotContains(t, list[0].ContentHTML, "<script>")
	assert.Contains(t, list[0].ContentHTML, "hello")
}
