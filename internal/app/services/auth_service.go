package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/app/models/dto"
	"github.com/yigit/hostelmess/internal/pkg/apperrors"
	"github.com/yigit/hostelmess/internal/pkg/auth"
)

// AuthService is the mock role login. Credentials are never checked: the
// selected role alone decides the session user.
type AuthService interface {
	DemoCredentials(role models.Role) (*dto.DemoCredentials, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type demoAccount struct {
	id       string
	name     string
	email    string
	password string
}

var demoAccounts = map[models.Role]demoAccount{
	models.RoleStudent:   {id: "student1", name: "Arjun Singh", email: "student@hostel.edu", password: "student123"},
	models.RoleCommittee: {id: "committee1", name: "Dr. Rajesh Sharma", email: "committee@hostel.edu", password: "admin123"},
}

type authServiceImpl struct {
	userRepo   userRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo userRepository, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// DemoCredentials returns the values the login form pre-fills for role.
func (s *authServiceImpl) DemoCredentials(role models.Role) (*dto.DemoCredentials, error) {
	account, ok := demoAccounts[role]
	if !ok {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, apperrors.ErrInvalidRole)
	}
	return &dto.DemoCredentials{Role: role, Email: account.email, Password: account.password}, nil
}

// Login fabricates the session user for the requested role, keeping the
// typed email, and signs a token for it.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	account, ok := demoAccounts[req.Role]
	if !ok {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, apperrors.ErrInvalidRole)
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = account.email
	}

	user := models.User{
		ID:    account.id,
		Name:  account.name,
		Role:  req.Role,
		Email: email,
	}

	// Only a record of who logged in; the session identity stays fabricated.
	record := user
	if err := s.userRepo.Upsert(ctx, &record); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("Could not record login")
	} else {
		user.CreatedAt = record.CreatedAt
	}

	token, expiresIn, err := s.jwtService.GenerateToken(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("role", string(user.Role)).Str("email", email).Msg("User logged in")

	return &dto.LoginResponse{
		User:        user,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
