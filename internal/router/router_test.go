package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	promhandler "github.com/jwalitptl/club-admin-api/internal/handler/prometheus"
	"github.com/jwalitptl/club-admin-api/internal/middleware"
	"github.com/jwalitptl/club-admin-api/pkg/auth"
	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
)

type tokenAuthenticator struct{}

func (tokenAuthenticator) Authenticate(token string) (*auth.Claims, error) {
	if token != "valid" {
		return nil, apperrors.Unauthorized(auth.ErrInvalidToken)
	}
	return &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{ID: "1"}, Operator: "desk"}, nil
}

type pingHandler struct{}

func (pingHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/members", func(c *gin.Context) {
		c.JSON(http.StatusOK, []string{c.GetString(middleware.ContextOperator)})
	})
}

func newTestRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := NewRouter(
		middleware.NewAuthMiddleware(tokenAuthenticator{}),
		Handlers{Members: pingHandler{}},
		promhandler.New("club_test"),
		cfg,
	)
	r.Setup()
	return r.Engine()
}

func get(e *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	e.ServeHTTP(w, req)
	return w
}

func TestAPIRequiresBearerToken(t *testing.T) {
	e := newTestRouter(RouterConfig{RequestTimeout: time.Second})

	w := get(e, "/api/members", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"error"`)

	w = get(e, "/api/members", "forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(e, "/api/members", "valid")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["desk"]`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderXRequestID))
}

func TestUnknownRouteRendersJSON(t *testing.T) {
	e := newTestRouter(RouterConfig{})

	w := get(e, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "route not found")
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestRouter(RouterConfig{MetricsEnabled: true, MetricsPath: "/metrics"})

	get(e, "/api/members", "valid")
	w := get(e, "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `club_test_http_requests_total{method="GET",path="/api/members",status="200"} 1`))
}

func TestAPIRateLimit(t *testing.T) {
	e := newTestRouter(RouterConfig{RateLimitEnabled: true, RateLimit: rate.Every(time.Hour), RateBurst: 1})

	assert.Equal(t, http.StatusOK, get(e, "/api/members", "valid").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(e, "/api/members", "valid").Code)
}
