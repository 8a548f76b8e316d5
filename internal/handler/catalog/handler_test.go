package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/club-admin-api/internal/middleware"
	"github.com/jwalitptl/club-admin-api/internal/model"
	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := middleware.RegisterValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeService struct {
	Service

	filter    *model.ServiceFilter
	deleteErr error
}

func (f *fakeService) List(_ context.Context, filter *model.ServiceFilter) ([]*model.Service, error) {
	f.filter = filter
	return []*model.Service{}, nil
}

func (f *fakeService) Create(_ context.Context, req *model.ServiceRequest) (*model.Service, error) {
	return &model.Service{ID: 1, Name: req.Name, Type: req.Type}, nil
}

func (f *fakeService) Delete(context.Context, int64) error { return f.deleteErr }

func newRouter(svc Service) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func TestListServicesFilter(t *testing.T) {
	svc := &fakeService{}
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services?type=Treatment&active=true", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.ServiceTypeTreatment, svc.filter.Type)
	require.NotNil(t, svc.filter.Active)
	assert.True(t, *svc.filter.Active)
}

func TestCreateServiceRequiresKnownType(t *testing.T) {
	body := `{"name":"Cold Plunge","type":"Spa","duration":15,"price":20}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/services", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	newRouter(&fakeService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"type"`)
}

func TestDeleteServiceStillBooked(t *testing.T) {
	svc := &fakeService{deleteErr: apperrors.Conflict("service is still in use", nil)}
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/services/4", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
}
