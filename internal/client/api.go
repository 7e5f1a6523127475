package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/app/models/dto"
)

// DemoCredentials returns the pre-filled login values for role.
func (c *Client) DemoCredentials(ctx context.Context, role models.Role) (*dto.DemoCredentials, error) {
	var out dto.DemoCredentials
	err := c.doJSON(ctx, http.MethodGet, "/auth/demo-credentials", url.Values{"role": {string(role)}}, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login signs in as role and keeps the session token on the client.
func (c *Client) Login(ctx context.Context, role models.Role, email, password string) (*models.User, error) {
	var out dto.LoginResponse
	req := dto.LoginRequest{Role: role, Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, req, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.AccessToken)
	return &out.User, nil
}

// Logout forgets the session token.
func (c *Client) Logout() {
	c.SetToken("")
}

// Menu lists the weekly menu, Monday first.
func (c *Client) Menu(ctx context.Context) ([]models.MenuItem, error) {
	var out []models.MenuItem
	if err := c.doJSON(ctx, http.MethodGet, "/menu", nil, nil, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Normalize()
	}
	return out, nil
}

// MenuForDay returns the menu of day, today when day is empty.
func (c *Client) MenuForDay(ctx context.Context, day string) (*models.MenuItem, error) {
	var query url.Values
	if day != "" {
		query = url.Values{"day": {day}}
	}

	var out dto.TodayMenuResponse
	if err := c.doJSON(ctx, http.MethodGet, "/menu/today", query, nil, &out); err != nil {
		return nil, err
	}
	if out.Menu == nil {
		return nil, fmt.Errorf("no menu for %s", day)
	}
	out.Menu.Normalize()
	return out.Menu, nil
}

// UpdateMenu replaces the four meal lists of one menu row.
func (c *Client) UpdateMenu(ctx context.Context, id string, meals models.Meals) (*models.MenuItem, error) {
	req := dto.UpdateMenuRequest{
		Breakfast: meals.Breakfast,
		Lunch:     meals.Lunch,
		Snacks:    meals.Snacks,
		Dinner:    meals.Dinner,
	}

	var out models.MenuItem
	if err := c.doJSON(ctx, http.MethodPut, "/menu/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	out.Normalize()
	return &out, nil
}

// Workers lists the tipping roster by name.
func (c *Client) Workers(ctx context.Context) ([]models.Worker, error) {
	var out []models.Worker
	if err := c.doJSON(ctx, http.MethodGet, "/workers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TipLink asks the server for a worker's UPI deep link.
func (c *Client) TipLink(ctx context.Context, workerID, amount string) (*dto.TipLinkResponse, error) {
	var query url.Values
	if amount != "" {
		query = url.Values{"amount": {amount}}
	}

	var out dto.TipLinkResponse
	if err := c.doJSON(ctx, http.MethodGet, "/workers/"+url.PathEscape(workerID)+"/tip-link", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ComplaintQuery filters Complaints.
type ComplaintQuery struct {
	Status models.ComplaintStatus
	// Mine limits the list to the session user's complaints.
	Mine bool
}

// Complaints lists complaints, newest first.
func (c *Client) Complaints(ctx context.Context, q ComplaintQuery) ([]models.Complaint, error) {
	query := url.Values{}
	if q.Status != "" {
		query.Set("status", string(q.Status))
	}
	if q.Mine {
		query.Set("mine", "true")
	}

	var out []models.Complaint
	if err := c.doJSON(ctx, http.MethodGet, "/complaints", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories lists the complaint categories offered by the form.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out dto.CategoriesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/complaints/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// Photo is an image attached to a complaint.
type Photo struct {
	Filename string
	Body     io.Reader
}

// NewComplaint is the complaint form.
type NewComplaint struct {
	Category    string
	Description string
	Photo       *Photo
}

// CreateComplaint files a complaint as the session student. With a photo
// the form is sent as multipart, otherwise as JSON.
func (c *Client) CreateComplaint(ctx context.Context, in NewComplaint) (*models.Complaint, error) {
	var out models.Complaint

	if in.Photo == nil {
		req := dto.CreateComplaintRequest{Category: in.Category, Description: in.Description}
		if err := c.doJSON(ctx, http.MethodPost, "/complaints", nil, req, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}

	body, contentType, err := multipartForm(map[string]string{
		"category":    in.Category,
		"description": in.Description,
	}, in.Photo)
	if err != nil {
		return nil, err
	}
	if err := c.do(ctx, http.MethodPost, "/complaints", nil, body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AttachPhoto uploads a photo for an existing complaint.
func (c *Client) AttachPhoto(ctx context.Context, complaintID string, photo Photo) (*models.Complaint, error) {
	body, contentType, err := multipartForm(nil, &photo)
	if err != nil {
		return nil, err
	}

	var out models.Complaint
	if err := c.do(ctx, http.MethodPost, "/complaints/"+url.PathEscape(complaintID)+"/image", nil, body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateComplaintStatus sets a complaint to pending or resolved.
func (c *Client) UpdateComplaintStatus(ctx context.Context, id string, status models.ComplaintStatus) (*models.Complaint, error) {
	var out models.Complaint
	req := dto.UpdateComplaintStatusRequest{Status: status}
	if err := c.doJSON(ctx, http.MethodPatch, "/complaints/"+url.PathEscape(id)+"/status", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleComplaint flips a complaint between pending and resolved.
func (c *Client) ToggleComplaint(ctx context.Context, id string) (*models.Complaint, error) {
	var out models.Complaint
	if err := c.doJSON(ctx, http.MethodPost, "/complaints/"+url.PathEscape(id)+"/toggle", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Announcements lists notices, newest first.
func (c *Client) Announcements(ctx context.Context) ([]models.Announcement, error) {
	var out []models.Announcement
	if err := c.doJSON(ctx, http.MethodGet, "/announcements", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAnnouncement posts a committee notice.
func (c *Client) CreateAnnouncement(ctx context.Context, title, content string, priority models.Priority) (*models.Announcement, error) {
	var out models.Announcement
	req := dto.CreateAnnouncementRequest{Title: title, Content: content, Priority: priority}
	if err := c.doJSON(ctx, http.MethodPost, "/announcements", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func multipartForm(fields map[string]string, photo *Photo) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	if photo != nil {
		part, err := mw.CreateFormFile("image", photo.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, photo.Body); err != nil {
			return nil, "", fmt.Errorf("failed to read photo: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
