package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/app/models/dto"
	"github.com/yigit/hostelmess/internal/pkg/apperrors"
	"github.com/yigit/hostelmess/internal/pkg/auth"
)

func newAuthService(users *fakeUserRepo) (AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "s", AccessTokenExp: time.Hour, TokenIssuer: "hostel-mess"})
	return NewAuthService(users, jwtService, zerolog.Nop()), jwtService
}

func TestDemoCredentials(t *testing.T) {
	svc, _ := newAuthService(&fakeUserRepo{})

	creds, err := svc.DemoCredentials(models.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, "student@hostel.edu", creds.Email)
	assert.Equal(t, "student123", creds.Password)

	creds, err = svc.DemoCredentials(models.RoleCommittee)
	require.NoError(t, err)
	assert.Equal(t, "committee@hostel.edu", creds.Email)
	assert.Equal(t, "admin123", creds.Password)

	_, err = svc.DemoCredentials("warden")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}

func TestLoginRoleDecidesUserRegardlessOfCredentials(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.LoginRequest
		wantID   string
		wantName string
	}{
		{"student with demo creds", dto.LoginRequest{Role: models.RoleStudent, Email: "student@hostel.edu", Password: "student123"}, "student1", "Arjun Singh"},
		{"student with garbage", dto.LoginRequest{Role: models.RoleStudent, Email: "x@y.z", Password: "wrong"}, "student1", "Arjun Singh"},
		{"committee with empty password", dto.LoginRequest{Role: models.RoleCommittee, Email: "boss@hostel.edu"}, "committee1", "Dr. Rajesh Sharma"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &fakeUserRepo{}
			svc, jwtService := newAuthService(users)

			resp, err := svc.Login(context.Background(), &tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.req.Role, resp.User.Role)
			assert.Equal(t, tt.wantID, resp.User.ID)
			assert.Equal(t, tt.wantName, resp.User.Name)
			assert.Equal(t, tt.req.Email, resp.User.Email, "typed email is kept")
			assert.Equal(t, "Bearer", resp.TokenType)

			claims, err := jwtService.ValidateToken(resp.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, tt.req.Role, claims.Role)
			assert.Equal(t, tt.wantID, claims.UserID)

			require.Len(t, users.upserted, 1)
		})
	}
}

func TestLoginSurvivesRecordFailure(t *testing.T) {
	svc, _ := newAuthService(&fakeUserRepo{err: errors.New("db down")})

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, "student@hostel.edu", resp.User.Email)
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	svc, _ := newAuthService(&fakeUserRepo{})
	_, err := svc.Login(context.Background(), &dto.LoginRequest{Role: "admin"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
