package hooks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/client"
)

type fakeAPI struct {
	menu          []models.MenuItem
	workers       []models.Worker
	complaints    []models.Complaint
	announcements []models.Announcement

	fetchErr error
	writeErr error
	fetches  int
	queries  []client.ComplaintQuery
}

func (f *fakeAPI) Menu(context.Context) ([]models.MenuItem, error) {
	f.fetches++
	return f.menu, f.fetchErr
}

func (f *fakeAPI) UpdateMenu(_ context.Context, id string, meals models.Meals) (*models.MenuItem, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	for i := range f.menu {
		if f.menu[i].ID == id {
			f.menu[i].Meals = meals
			return &f.menu[i], nil
		}
	}
	return nil, errors.New("menu item not found")
}

func (f *fakeAPI) Workers(context.Context) ([]models.Worker, error) {
	f.fetches++
	return f.workers, f.fetchErr
}

func (f *fakeAPI) Complaints(_ context.Context, q client.ComplaintQuery) ([]models.Complaint, error) {
	f.fetches++
	f.queries = append(f.queries, q)
	return f.complaints, f.fetchErr
}

func (f *fakeAPI) CreateComplaint(_ context.Context, in client.NewComplaint) (*models.Complaint, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	c := models.Complaint{ID: "new", Category: in.Category, Description: in.Description, Status: models.StatusPending}
	f.complaints = append([]models.Complaint{c}, f.complaints...)
	return &c, nil
}

func (f *fakeAPI) UpdateComplaintStatus(_ context.Context, id string, status models.ComplaintStatus) (*models.Complaint, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	for i := range f.complaints {
		if f.complaints[i].ID == id {
			f.complaints[i].Status = status
			return &f.complaints[i], nil
		}
	}
	return nil, errors.New("complaint not found")
}

func (f *fakeAPI) ToggleComplaint(_ context.Context, id string) (*models.Complaint, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	for i := range f.complaints {
		if f.complaints[i].ID == id {
			f.complaints[i].Status = f.complaints[i].Status.Toggle()
			return &f.complaints[i], nil
		}
	}
	return nil, errors.New("complaint not found")
}

func (f *fakeAPI) Announcements(context.Context) ([]models.Announcement, error) {
	f.fetches++
	return f.announcements, f.fetchErr
}

func (f *fakeAPI) CreateAnnouncement(_ context.Context, title, content string, priority models.Priority) (*models.Announcement, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	a := models.Announcement{ID: "a-new", Title: title, Content: content, Priority: priority}
	f.announcements = append([]models.Announcement{a}, f.announcements...)
	return &a, nil
}

type emptyErr struct{}

func (emptyErr) Error() string { return "" }

func TestResourceStartsLoading(t *testing.T) {
	r := NewResource("menu", (&fakeAPI{}).Menu)
	assert.True(t, r.State().Loading)
}

func TestMountLoadsData(t *testing.T) {
	api := &fakeAPI{menu: []models.MenuItem{{ID: "m1", Day: "Monday"}}}
	h := UseMenu(api)

	var seen []bool
	h.OnChange(func(s State[models.MenuItem]) { seen = append(seen, s.Loading) })

	state := h.Mount(context.Background())
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
	require.Len(t, state.Data, 1)
	assert.Equal(t, []bool{true, false}, seen)
}

func TestMountEmptyIsNotNil(t *testing.T) {
	state := UseWorkers(&fakeAPI{}).Mount(context.Background())
	assert.NotNil(t, state.Data)
	assert.Empty(t, state.Data)
}

func TestFetchErrorKeepsData(t *testing.T) {
	api := &fakeAPI{workers: []models.Worker{{ID: "w1", Name: "Ravi"}}}
	h := UseWorkers(api)
	h.Mount(context.Background())

	api.fetchErr = errors.New("network down")
	state := h.Refetch(context.Background())
	assert.Equal(t, "network down", state.Err)
	assert.Len(t, state.Data, 1)

	api.fetchErr = nil
	state = h.Refetch(context.Background())
	assert.Empty(t, state.Err)
}

func TestFetchErrorFallback(t *testing.T) {
	api := &fakeAPI{fetchErr: emptyErr{}}
	state := UseAnnouncements(api).Mount(context.Background())
	assert.Equal(t, "Failed to fetch announcements", state.Err)
}

func TestUpdateMenuRefetches(t *testing.T) {
	api := &fakeAPI{menu: []models.MenuItem{{ID: "m1", Day: "Monday"}}}
	h := UseMenu(api)
	h.Mount(context.Background())

	meals := models.Meals{Breakfast: []string{"Poha"}}
	require.NoError(t, h.UpdateMenu(context.Background(), "m1", meals))
	assert.Equal(t, 2, api.fetches)
	assert.Equal(t, []string{"Poha"}, h.State().Data[0].Breakfast)
}

func TestMutationFailureSetsErrorWithoutRefetch(t *testing.T) {
	api := &fakeAPI{menu: []models.MenuItem{{ID: "m1", Day: "Monday"}}}
	h := UseMenu(api)
	h.Mount(context.Background())

	api.writeErr = emptyErr{}
	err := h.UpdateMenu(context.Background(), "m1", models.Meals{})
	assert.Error(t, err)
	assert.Equal(t, "Failed to update menu", h.State().Err)
	assert.Equal(t, 1, api.fetches)
}

func TestMenuToday(t *testing.T) {
	api := &fakeAPI{menu: []models.MenuItem{{ID: "m1", Day: "Monday"}, {ID: "m2", Day: "Tuesday"}}}
	h := UseMenu(api)

	_, ok := h.Today("Tuesday")
	assert.False(t, ok)

	h.Mount(context.Background())
	item, ok := h.Today("Tuesday")
	require.True(t, ok)
	assert.Equal(t, "m2", item.ID)

	item, ok = h.Today("Sunday")
	require.True(t, ok)
	assert.Equal(t, "m1", item.ID)
}

func TestComplaintsHook(t *testing.T) {
	api := &fakeAPI{complaints: []models.Complaint{
		{ID: "c1", Status: models.StatusPending},
		{ID: "c2", Status: models.StatusResolved},
	}}
	query := client.ComplaintQuery{Mine: true}
	h := UseComplaints(api, query)
	h.Mount(context.Background())

	pending, resolved := h.Counts()
	assert.Equal(t, 1, pending)
	assert.Equal(t, 1, resolved)

	require.NoError(t, h.Toggle(context.Background(), "c1"))
	pending, resolved = h.Counts()
	assert.Equal(t, 0, pending)
	assert.Equal(t, 2, resolved)

	require.NoError(t, h.CreateComplaint(context.Background(), client.NewComplaint{Category: "Food Quality", Description: "cold"}))
	assert.Len(t, h.State().Data, 3)
	assert.Equal(t, "new", h.State().Data[0].ID)

	for _, q := range api.queries {
		assert.Equal(t, query, q)
	}
}

func TestToggleUnknownComplaintFails(t *testing.T) {
	api := &fakeAPI{complaints: []models.Complaint{{ID: "c1", Status: models.StatusPending}}}
	h := UseComplaints(api, client.ComplaintQuery{})
	h.Mount(context.Background())

	err := h.Toggle(context.Background(), "c9")
	assert.EqualError(t, err, "complaint not found")
	assert.Equal(t, "complaint not found", h.State().Err)
	assert.Equal(t, 1, api.fetches)
	assert.Equal(t, models.StatusPending, api.complaints[0].Status)
}

func TestToggleTwiceRestoresStatus(t *testing.T) {
	api := &fakeAPI{complaints: []models.Complaint{{ID: "c1", Status: models.StatusPending}}}
	h := UseComplaints(api, client.ComplaintQuery{})

	require.NoError(t, h.Toggle(context.Background(), "c1"))
	assert.Equal(t, models.StatusResolved, h.State().Data[0].Status)
	require.NoError(t, h.Toggle(context.Background(), "c1"))
	assert.Equal(t, models.StatusPending, h.State().Data[0].Status)
}

func TestCreateComplaintFailure(t *testing.T) {
	api := &fakeAPI{writeErr: errors.New("category is required")}
	h := UseComplaints(api, client.ComplaintQuery{})
	h.Mount(context.Background())

	err := h.CreateComplaint(context.Background(), client.NewComplaint{})
	assert.EqualError(t, err, "category is required")
	assert.Equal(t, "category is required", h.State().Err)
}

func TestCreateAnnouncementRefetches(t *testing.T) {
	api := &fakeAPI{}
	h := UseAnnouncements(api)
	h.Mount(context.Background())

	require.NoError(t, h.CreateAnnouncement(context.Background(), "Water", "No water 2-4pm", models.PriorityHigh))
	require.Len(t, h.State().Data, 1)
	assert.Equal(t, models.PriorityHigh, h.State().Data[0].Priority)
}

func TestMessage(t *testing.T) {
	assert.Empty(t, Message(nil, "x"))
	assert.Equal(t, "boom", Message(errors.New("boom"), "x"))
	assert.Equal(t, "x", Message(emptyErr{}, "x"))
}

var (
	_ MenuAPI          = (*client.Client)(nil)
	_ WorkersAPI       = (*client.Client)(nil)
	_ ComplaintsAPI    = (*client.Client)(nil)
	_ AnnouncementsAPI = (*client.Client)(nil)
)
