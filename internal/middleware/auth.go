package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/club-admin-api/pkg/auth"
	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
)

const (
	ContextClaims   = "claims"
	ContextOperator = "operator"
)

var (
	errMissingAuthHeader = errors.New("missing authorization header")
	errInvalidAuthFormat = errors.New("invalid authorization format")
)

// Authenticator validates a bearer token; the auth service satisfies it.
type Authenticator interface {
	Authenticate(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	authenticator Authenticator
}

func NewAuthMiddleware(authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// Authenticate verifies the JWT token and sets the operator in context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Error(apperrors.Unauthorized(errMissingAuthHeader))
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.Error(apperrors.Unauthorized(errInvalidAuthFormat))
			c.Abort()
			return
		}

		claims, err := m.authenticator.Authenticate(parts[1])
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextOperator, claims.Operator)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by Authenticate.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
