package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/app/models/dto"
	"github.com/yigit/hostelmess/internal/pkg/apperrors"
	"github.com/yigit/hostelmess/internal/pkg/websocket"
)

var student = &models.User{ID: "student1", Name: "Arjun Singh", Role: models.RoleStudent}

func TestCreateComplaintStartsPending(t *testing.T) {
	repo := newFakeComplaintRepo()
	pub := &recordingPublisher{}
	svc := NewComplaintService(repo, nil, pub, zerolog.Nop())

	c, err := svc.CreateComplaint(context.Background(), student, &dto.CreateComplaintRequest{
		Category:    "Taste Issues",
		Description: "  Dal was too salty  ",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, c.Status)
	assert.Equal(t, "student1", c.StudentID)
	assert.Equal(t, "Arjun Singh", c.StudentName)
	assert.Equal(t, "Dal was too salty", c.Description)
	assert.Nil(t, c.Image)

	require.Len(t, pub.events, 1)
	assert.Equal(t, TableComplaints, pub.events[0].Table)
	assert.Equal(t, websocket.ActionInsert, pub.events[0].Action)
	assert.Equal(t, c.ID, pub.events[0].ID)
}

func TestCreateComplaintValidation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateComplaintRequest
		want error
	}{
		{"unknown category", dto.CreateComplaintRequest{Category: "Noise", Description: "loud"}, apperrors.ErrUnknownCategory},
		{"blank description", dto.CreateComplaintRequest{Category: "Other", Description: "   "}, apperrors.ErrValidationFailed},
		{"bad image url", dto.CreateComplaintRequest{Category: "Other", Description: "x", Image: "not a url"}, apperrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeComplaintRepo()
			svc := NewComplaintService(repo, nil, nil, zerolog.Nop())

			_, err := svc.CreateComplaint(context.Background(), student, &tt.req, nil)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Empty(t, repo.rows)
		})
	}
}

func TestCreateComplaintRequiresStudent(t *testing.T) {
	svc := NewComplaintService(newFakeComplaintRepo(), nil, nil, zerolog.Nop())
	_, err := svc.CreateComplaint(context.Background(), nil, &dto.CreateComplaintRequest{Category: "Other", Description: "x"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCreateComplaintWithPhoto(t *testing.T) {
	repo := newFakeComplaintRepo()
	uploader := &fakeUploader{}
	svc := NewComplaintService(repo, uploader, nil, zerolog.Nop())

	c, err := svc.CreateComplaint(context.Background(), student, &dto.CreateComplaintRequest{
		Category:    "Hair/Bugs Found",
		Description: "found a fly",
	}, &multipart.FileHeader{Filename: "fly.jpg"})
	require.NoError(t, err)
	require.NotNil(t, c.Image)
	assert.Equal(t, "https://cdn.example.com/complaints/fly.jpg", *c.Image)
	assert.Equal(t, 1, uploader.n)
}

func TestCreateComplaintPhotoWithoutStorage(t *testing.T) {
	repo := newFakeComplaintRepo()
	svc := NewComplaintService(repo, nil, nil, zerolog.Nop())

	_, err := svc.CreateComplaint(context.Background(), student, &dto.CreateComplaintRequest{
		Category:    "Other",
		Description: "x",
	}, &multipart.FileHeader{Filename: "a.png"})
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	assert.Empty(t, repo.rows)
}

func TestCreateComplaintRepoFailure(t *testing.T) {
	repo := newFakeComplaintRepo()
	repo.createErr = errors.New("insert failed")
	pub := &recordingPublisher{}
	svc := NewComplaintService(repo, nil, pub, zerolog.Nop())

	_, err := svc.CreateComplaint(context.Background(), student, &dto.CreateComplaintRequest{Category: "Other", Description: "x"}, nil)
	assert.Error(t, err)
	assert.Empty(t, pub.events)
}

func TestCreateComplaintRemovesPhotoWhenInsertFails(t *testing.T) {
	repo := newFakeComplaintRepo()
	repo.createErr = errors.New("insert failed")
	uploader := &fakeUploader{url: "https://cdn/orphan.jpg"}
	svc := NewComplaintService(repo, uploader, nil, zerolog.Nop())

	_, err := svc.CreateComplaint(context.Background(), student, &dto.CreateComplaintRequest{Category: "Other", Description: "x"}, &multipart.FileHeader{Filename: "a.jpg"})
	assert.Error(t, err)
	assert.Equal(t, []string{"https://cdn/orphan.jpg"}, uploader.removed)
}

func TestToggleStatusTwiceRestores(t *testing.T) {
	repo := newFakeComplaintRepo()
	pub := &recordingPublisher{}
	svc := NewComplaintService(repo, nil, pub, zerolog.Nop())

	c, err := svc.CreateComplaint(context.Background(), student, &dto.CreateComplaintRequest{Category: "Other", Description: "x"}, nil)
	require.NoError(t, err)

	toggled, err := svc.ToggleStatus(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, toggled.Status)

	toggled, err = svc.ToggleStatus(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, toggled.Status)

	assert.Len(t, pub.events, 3)
	assert.Equal(t, websocket.ActionUpdate, pub.events[2].Action)
}

func TestUpdateStatus(t *testing.T) {
	svc := NewComplaintService(newFakeComplaintRepo(), nil, nil, zerolog.Nop())

	_, err := svc.UpdateStatus(context.Background(), "c1", "closed")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.UpdateStatus(context.Background(), "missing", models.StatusResolved)
	assert.ErrorIs(t, err, apperrors.ErrComplaintNotFound)
}

func TestListComplaintsFilters(t *testing.T) {
	repo := newFakeComplaintRepo()
	svc := NewComplaintService(repo, nil, nil, zerolog.Nop())
	other := &models.User{ID: "student2", Name: "Priya"}

	for _, u := range []*models.User{student, other, student} {
		_, err := svc.CreateComplaint(context.Background(), u, &dto.CreateComplaintRequest{Category: "Other", Description: "x"}, nil)
		require.NoError(t, err)
	}

	all, err := svc.ListComplaints(context.Background(), models.ComplaintFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "c3", all[0].ID, "newest first")

	mine, err := svc.ListComplaints(context.Background(), models.ComplaintFilter{StudentID: "student1"})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = svc.ListComplaints(context.Background(), models.ComplaintFilter{Status: "open"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAttachImage(t *testing.T) {
	repo := newFakeComplaintRepo()
	svc := NewComplaintService(repo, &fakeUploader{url: "https://cdn/x.jpg"}, nil, zerolog.Nop())

	c, err := svc.CreateComplaint(context.Background(), student, &dto.CreateComplaintRequest{Category: "Other", Description: "x"}, nil)
	require.NoError(t, err)

	_, err = svc.AttachImage(context.Background(), &models.User{ID: "student2"}, c.ID, &multipart.FileHeader{Filename: "x.jpg"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.AttachImage(context.Background(), student, c.ID, &multipart.FileHeader{Filename: "x.jpg"})
	require.NoError(t, err)
	require.NotNil(t, updated.Image)
	assert.Equal(t, "https://cdn/x.jpg", *repo.rows[c.ID].Image)

	_, err = svc.AttachImage(context.Background(), student, c.ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCategoriesIsACopy(t *testing.T) {
	svc := NewComplaintService(newFakeComplaintRepo(), nil, nil, zerolog.Nop())
	cats := svc.Categories()
	require.Len(t, cats, 8)
	cats[0] = "changed"
	assert.Equal(t, "Taste Issues", svc.Categories()[0])
}
