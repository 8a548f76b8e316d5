package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/pkg/auth"
	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
	"github.com/jwalitptl/club-admin-api/pkg/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrLockedOut          = errors.New("too many failed attempts, try again later")
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
)

// Service gates dashboard access behind a shared passphrase, stored only as
// a bcrypt hash, and issues signed session tokens.
type Service struct {
	jwtSvc         auth.JWTService
	hasher         security.PasswordHasher
	passphraseHash string
	revoked        *cache.Cache
	attempts       *cache.Cache
	now            func() time.Time
}

func NewService(jwtSvc auth.JWTService, hasher security.PasswordHasher, passphraseHash string) *Service {
	return &Service{
		jwtSvc:         jwtSvc,
		hasher:         hasher,
		passphraseHash: passphraseHash,
		revoked:        cache.New(time.Hour, 10*time.Minute),
		attempts:       cache.New(lockoutDuration, 5*time.Minute),
		now:            time.Now,
	}
}

// Login checks the passphrase and returns a session token for the operator.
// Repeated failures from the same client lock it out for a while.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest, clientIP string) (*model.LoginResponse, error) {
	if n, ok := s.attempts.Get(clientIP); ok && n.(int) >= maxLoginAttempts {
		return nil, apperrors.Unauthorized(ErrLockedOut)
	}

	if err := s.hasher.Compare(s.passphraseHash, req.Passphrase); err != nil {
		if _, err := s.attempts.IncrementInt(clientIP, 1); err != nil {
			s.attempts.Set(clientIP, 1, cache.DefaultExpiration)
		}
		return nil, apperrors.Unauthorized(ErrInvalidCredentials)
	}
	s.attempts.Delete(clientIP)

	token, claims, err := s.jwtSvc.GenerateAccessToken(req.Name)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to issue token: %w", err))
	}

	return &model.LoginResponse{
		Token:     token,
		Operator:  claims.Operator,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Logout revokes the session until it would have expired anyway.
func (s *Service) Logout(ctx context.Context, claims *auth.Claims) {
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		if remaining := claims.ExpiresAt.Time.Sub(s.now()); remaining > 0 {
			ttl = remaining
		}
	}
	s.revoked.Set(claims.ID, struct{}{}, ttl)
}

// Authenticate validates a bearer token and rejects revoked sessions.
func (s *Service) Authenticate(token string) (*auth.Claims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	if _, revoked := s.revoked.Get(claims.ID); revoked {
		return nil, apperrors.Unauthorized(ErrTokenRevoked)
	}
	return claims, nil
}
