package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/infrastructure/config"
	"github.com/lingualog/core/internal/ports"
)

func newTestAuthService(t *testing.T) (*AuthService, *entities.User) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entities.User{
		ID:           uuid.New(),
		Email:        "me@example.com",
		PasswordHash: string(hash),
		DisplayName:  "Me",
		NativeLang:   "en",
		TargetLang:   "es",
	}

	userRepo := newFakeUserRepo()
	require.NoError(t, userRepo.Create(context.Background(), user))

	cfg := config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: time.Hour,
		Issuer:    "lingualog-test",
	}

	return NewAuthService(userRepo, cfg, testLogger()), user
}

func TestAuthServiceLogin(t *testing.T) {
	svc, user := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), ports.LoginRequest{
		Email:    "me@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.EqualValues(t, 3600, resp.ExpiresIn)
	assert.Equal(t, user.Email, resp.User.Email)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), ports.LoginRequest{
		Email:    "me@example.com",
		Password: "battery staple",
	})
	assert.ErrorIs(t, err, entities.ErrUnauthorized)
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), ports.LoginRequest{
		Email:    "stranger@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, entities.ErrUnauthorized)
}

func TestAuthServiceValidateGarbageToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, entities.ErrUnauthorized)
}

func TestAuthServiceRejectsForeignSignature(t *testing.T) {
	svc, _ := newTestAuthService(t)
	other, _ := newTestAuthService(t)
	other.cfg.Secret = "different-secret"

	resp, err := other.Login(context.Background(), ports.LoginRequest{
		Email:    "me@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken)
	assert.ErrorIs(t, err, entities.ErrUnauthorized)
}
