package services

import (
	"context"

	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/pkg/websocket"
)

// Repository contracts the services depend on. The pgx repositories in
// internal/app/repositories satisfy them.

type menuRepository interface {
	List(ctx context.Context) ([]*models.MenuItem, error)
	GetByID(ctx context.Context, id string) (*models.MenuItem, error)
	Update(ctx context.Context, id string, meals models.Meals) (*models.MenuItem, error)
}

type workerRepository interface {
	List(ctx context.Context) ([]*models.Worker, error)
	GetByID(ctx context.Context, id string) (*models.Worker, error)
}

type complaintRepository interface {
	List(ctx context.Context, filter models.ComplaintFilter) ([]*models.Complaint, error)
	GetByID(ctx context.Context, id string) (*models.Complaint, error)
	Create(ctx context.Context, c *models.Complaint) error
	UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) (*models.Complaint, error)
	SetImage(ctx context.Context, id, imageURL string) error
}

type announcementRepository interface {
	List(ctx context.Context) ([]*models.Announcement, error)
	Create(ctx context.Context, a *models.Announcement) error
}

type userRepository interface {
	Upsert(ctx context.Context, u *models.User) error
}

// Table names carried by change events.
const (
	TableMenuItems     = "menu_items"
	TableWorkers       = "workers"
	TableComplaints    = "complaints"
	TableAnnouncements = "announcements"
)

type nopPublisher struct{}

func (nopPublisher) Publish(websocket.Event) {}

func publisherOrNop(p websocket.Publisher) websocket.Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
