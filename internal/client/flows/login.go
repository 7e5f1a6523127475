// Package flows holds the interactive state machines behind the login
// screen and the dashboard forms.
package flows

import (
	"context"
	"errors"
	"sync"

	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/app/models/dto"
)

var ErrNoRole = errors.New("select a role to continue")

// LoginAPI is the part of the client the login flow uses.
type LoginAPI interface {
	DemoCredentials(ctx context.Context, role models.Role) (*dto.DemoCredentials, error)
	Login(ctx context.Context, role models.Role, email, password string) (*models.User, error)
	Logout()
}

// Login is the role picker followed by the pre-filled credentials form.
// The session lives only in memory.
type Login struct {
	api LoginAPI

	mu       sync.Mutex
	role     models.Role
	email    string
	password string
	user     *models.User
}

func NewLogin(api LoginAPI) *Login {
	return &Login{api: api}
}

// SelectRole picks role and pre-fills its demo credentials.
func (l *Login) SelectRole(ctx context.Context, role models.Role) error {
	if !role.Valid() {
		return ErrNoRole
	}

	creds, err := l.api.DemoCredentials(ctx, role)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.role = role
	l.email = creds.Email
	l.password = creds.Password
	return nil
}

// SetCredentials overrides the pre-filled values. Any values are accepted.
func (l *Login) SetCredentials(email, password string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.email = email
	l.password = password
}

// Credentials returns the current form values.
func (l *Login) Credentials() (models.Role, string, string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.role, l.email, l.password
}

// Submit signs in as the selected role.
func (l *Login) Submit(ctx context.Context) (*models.User, error) {
	role, email, password := l.Credentials()
	if role == "" {
		return nil, ErrNoRole
	}

	user, err := l.api.Login(ctx, role, email, password)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.user = user
	l.mu.Unlock()
	return user, nil
}

// User returns the signed in user, or nil.
func (l *Login) User() *models.User {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.user
}

// Logout drops the session and returns to the role picker.
func (l *Login) Logout() {
	l.api.Logout()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.user = nil
	l.role = ""
	l.email = ""
	l.password = ""
}
