package hooks

import (
	"context"

	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/client"
)

// MenuAPI is the part of the client the menu hook uses.
type MenuAPI interface {
	Menu(ctx context.Context) ([]models.MenuItem, error)
	UpdateMenu(ctx context.Context, id string, meals models.Meals) (*models.MenuItem, error)
}

// MenuHook is the weekly menu, Monday first.
type MenuHook struct {
	*Resource[models.MenuItem]
	api MenuAPI
}

// UseMenu creates the menu resource. Call Mount to load it.
func UseMenu(api MenuAPI) *MenuHook {
	return &MenuHook{
		Resource: NewResource("menu", api.Menu),
		api:      api,
	}
}

// UpdateMenu replaces one day's meals and reloads the week.
func (h *MenuHook) UpdateMenu(ctx context.Context, id string, meals models.Meals) error {
	return h.Mutate(ctx, "Failed to update menu", func(ctx context.Context) error {
		_, err := h.api.UpdateMenu(ctx, id, meals)
		return err
	})
}

// Today picks day's entry, or the first entry when none matches.
func (h *MenuHook) Today(day string) (models.MenuItem, bool) {
	items := h.State().Data
	for _, it := range items {
		if it.Day == day {
			return it, true
		}
	}
	if len(items) == 0 {
		return models.MenuItem{}, false
	}
	return items[0], true
}

// WorkersAPI is the part of the client the workers hook uses.
type WorkersAPI interface {
	Workers(ctx context.Context) ([]models.Worker, error)
}

// WorkersHook is the tipping roster, by name.
type WorkersHook struct {
	*Resource[models.Worker]
}

// UseWorkers creates the workers resource.
func UseWorkers(api WorkersAPI) *WorkersHook {
	return &WorkersHook{Resource: NewResource("workers", api.Workers)}
}

// Find returns the worker with id from the loaded roster.
func (h *WorkersHook) Find(id string) (models.Worker, bool) {
	for _, w := range h.State().Data {
		if w.ID == id {
			return w, true
		}
	}
	return models.Worker{}, false
}

// ComplaintsAPI is the part of the client the complaints hook uses.
type ComplaintsAPI interface {
	Complaints(ctx context.Context, q client.ComplaintQuery) ([]models.Complaint, error)
	CreateComplaint(ctx context.Context, in client.NewComplaint) (*models.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, id string, status models.ComplaintStatus) (*models.Complaint, error)
	ToggleComplaint(ctx context.Context, id string) (*models.Complaint, error)
}

// ComplaintsHook is a complaint list, newest first.
type ComplaintsHook struct {
	*Resource[models.Complaint]
	api ComplaintsAPI
}

// UseComplaints creates the complaints resource for query.
func UseComplaints(api ComplaintsAPI, query client.ComplaintQuery) *ComplaintsHook {
	return &ComplaintsHook{
		Resource: NewResource("complaints", func(ctx context.Context) ([]models.Complaint, error) {
			return api.Complaints(ctx, query)
		}),
		api: api,
	}
}

// CreateComplaint files a complaint and reloads the list.
func (h *ComplaintsHook) CreateComplaint(ctx context.Context, in client.NewComplaint) error {
	return h.Mutate(ctx, "Failed to create complaint", func(ctx context.Context) error {
		_, err := h.api.CreateComplaint(ctx, in)
		return err
	})
}

// UpdateComplaintStatus sets a complaint's status and reloads the list.
func (h *ComplaintsHook) UpdateComplaintStatus(ctx context.Context, id string, status models.ComplaintStatus) error {
	return h.Mutate(ctx, "Failed to update complaint", func(ctx context.Context) error {
		_, err := h.api.UpdateComplaintStatus(ctx, id, status)
		return err
	})
}

// Toggle flips complaint id between pending and resolved. The server reads
// the current status, so id need not be in the loaded list.
func (h *ComplaintsHook) Toggle(ctx context.Context, id string) error {
	return h.Mutate(ctx, "Failed to update complaint", func(ctx context.Context) error {
		_, err := h.api.ToggleComplaint(ctx, id)
		return err
	})
}

// Counts returns the number of pending and resolved complaints loaded.
func (h *ComplaintsHook) Counts() (pending, resolved int) {
	for _, c := range h.State().Data {
		if c.Status == models.StatusResolved {
			resolved++
		} else {
			pending++
		}
	}
	return pending, resolved
}

// AnnouncementsAPI is the part of the client the announcements hook uses.
type AnnouncementsAPI interface {
	Announcements(ctx context.Context) ([]models.Announcement, error)
	CreateAnnouncement(ctx context.Context, title, content string, priority models.Priority) (*models.Announcement, error)
}

// AnnouncementsHook is the notice board, newest first.
type AnnouncementsHook struct {
	*Resource[models.Announcement]
	api AnnouncementsAPI
}

// UseAnnouncements creates the announcements resource.
func UseAnnouncements(api AnnouncementsAPI) *AnnouncementsHook {
	return &AnnouncementsHook{
		Resource: NewResource("announcements", api.Announcements),
		api:      api,
	}
}

// CreateAnnouncement posts a notice and reloads the board.
func (h *AnnouncementsHook) CreateAnnouncement(ctx context.Context, title, content string, priority models.Priority) error {
	return h.Mutate(ctx, "Failed to create announcement", func(ctx context.Context) error {
		_, err := h.api.CreateAnnouncement(ctx, title, content, priority)
		return err
	})
}
