package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/pkg/auth"
	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
	"github.com/jwalitptl/club-admin-api/pkg/security"
)

func newService(t *testing.T) *Service {
	t.Helper()
	hasher := security.NewBcryptHasher(4)
	hash, err := hasher.Hash("open sesame")
	require.NoError(t, err)
	return NewService(auth.NewJWTService("test-secret", "club-admin-api", time.Hour), hasher, hash)
}

func TestLoginIssuesUsableToken(t *testing.T) {
	svc := newService(t)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{Passphrase: "open sesame", Name: "Front Desk"}, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "Front Desk", resp.Operator)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	claims, err := svc.Authenticate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "Front Desk", claims.Operator)
}

func TestLoginWrongPassphrase(t *testing.T) {
	svc := newService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{Passphrase: "guess", Name: "x"}, "10.0.0.1")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestLoginLockout(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	bad := &model.LoginRequest{Passphrase: "guess", Name: "x"}

	for i := 0; i < maxLoginAttempts; i++ {
		_, err := svc.Login(ctx, bad, "10.0.0.9")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := svc.Login(ctx, &model.LoginRequest{Passphrase: "open sesame", Name: "x"}, "10.0.0.9")
	assert.ErrorIs(t, err, ErrLockedOut)

	// other clients are unaffected
	_, err = svc.Login(ctx, &model.LoginRequest{Passphrase: "open sesame", Name: "x"}, "10.0.0.10")
	assert.NoError(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newService(t)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{Passphrase: "open sesame", Name: "Ops"}, "10.0.0.1")
	require.NoError(t, err)
	claims, err := svc.Authenticate(resp.Token)
	require.NoError(t, err)

	svc.Logout(context.Background(), claims)

	_, err = svc.Authenticate(resp.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthenticateGarbage(t *testing.T) {
	_, err := newService(t).Authenticate("not-a-jwt")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}
