package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"sync"
	"time"

	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/pkg/apperrors"
	"github.com/yigit/hostelmess/internal/pkg/websocket"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []websocket.Event
}

func (p *recordingPublisher) Publish(e websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

type fakeMenuRepo struct {
	items   []*models.MenuItem
	updated models.Meals
	err     error
}

func (f *fakeMenuRepo) List(context.Context) ([]*models.MenuItem, error) {
	return f.items, f.err
}

func (f *fakeMenuRepo) GetByID(_ context.Context, id string) (*models.MenuItem, error) {
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, apperrors.ErrMenuItemNotFound
}

func (f *fakeMenuRepo) Update(ctx context.Context, id string, meals models.Meals) (*models.MenuItem, error) {
	it, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.updated = meals
	it.Meals = meals
	it.UpdatedAt = time.Now()
	return it, nil
}

type fakeWorkerRepo struct {
	workers map[string]*models.Worker
}

func (f *fakeWorkerRepo) List(context.Context) ([]*models.Worker, error) {
	out := []*models.Worker{}
	for _, w := range f.workers {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id string) (*models.Worker, error) {
	if w, ok := f.workers[id]; ok {
		return w, nil
	}
	return nil, apperrors.ErrWorkerNotFound
}

type fakeComplaintRepo struct {
	rows      map[string]*models.Complaint
	seq       int
	createErr error
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{rows: map[string]*models.Complaint{}}
}

func (f *fakeComplaintRepo) List(_ context.Context, filter models.ComplaintFilter) ([]*models.Complaint, error) {
	out := []*models.Complaint{}
	for _, c := range f.rows {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.StudentID != "" && c.StudentID != filter.StudentID {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (f *fakeComplaintRepo) GetByID(_ context.Context, id string) (*models.Complaint, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrComplaintNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeComplaintRepo) Create(_ context.Context, c *models.Complaint) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	c.ID = fmt.Sprintf("c%d", f.seq)
	c.Status = models.StatusPending
	c.Timestamp = time.Date(2024, 1, 1, 0, 0, f.seq, 0, time.UTC)
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeComplaintRepo) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) (*models.Complaint, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrComplaintNotFound
	}
	c.Status = status
	return f.GetByID(ctx, id)
}

func (f *fakeComplaintRepo) SetImage(_ context.Context, id, imageURL string) error {
	c, ok := f.rows[id]
	if !ok {
		return apperrors.ErrComplaintNotFound
	}
	c.Image = &imageURL
	return nil
}

type fakeUploader struct {
	url     string
	err     error
	n       int
	removed []string
}

func (f *fakeUploader) Remove(_ context.Context, url string) error {
	f.removed = append(f.removed, url)
	return nil
}

func (f *fakeUploader) UploadMultipart(_ context.Context, folder string, fh *multipart.FileHeader) (string, error) {
	f.n++
	if f.err != nil {
		return "", f.err
	}
	if f.url != "" {
		return f.url, nil
	}
	return "https://cdn.example.com/" + folder + "/" + fh.Filename, nil
}

type fakeAnnouncementRepo struct {
	rows []*models.Announcement
}

func (f *fakeAnnouncementRepo) List(context.Context) ([]*models.Announcement, error) {
	return f.rows, nil
}

func (f *fakeAnnouncementRepo) Create(_ context.Context, a *models.Announcement) error {
	a.ID = fmt.Sprintf("a%d", len(f.rows)+1)
	a.Timestamp = time.Now()
	f.rows = append([]*models.Announcement{a}, f.rows...)
	return nil
}

type fakeUserRepo struct {
	upserted []models.User
	err      error
}

func (f *fakeUserRepo) Upsert(_ context.Context, u *models.User) error {
	if f.err != nil {
		return f.err
	}
	u.ID = "uuid-1"
	u.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f.upserted = append(f.upserted, *u)
	return nil
}
