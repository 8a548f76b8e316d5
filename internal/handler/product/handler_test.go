package product

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

	filter    *model.ProductFilter
	created   *model.ProductRequest
	deleteErr error
}

func (f *fakeService) List(_ context.Context, filter *model.ProductFilter) ([]*model.Product, error) {
	f.filter = filter
	return []*model.Product{}, nil
}

func (f *fakeService) Create(_ context.Context, req *model.ProductRequest) (*model.Product, error) {
	f.created = req
	return &model.Product{ID: 1, Name: req.Name, Price: req.Price, Category: req.Category}, nil
}

func (f *fakeService) Delete(context.Context, int64) error { return f.deleteErr }

func newRouter(svc Service) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestListProductsByCategory(t *testing.T) {
	svc := &fakeService{}
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products?category=Subscription", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.ProductCategorySubscription, svc.filter.Category)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateProduct(t *testing.T) {
	svc := &fakeService{}
	w := post(newRouter(svc), `{"name":"PT Session","price":50,"category":"Service"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"price":50`)
	assert.Equal(t, "PT Session", svc.created.Name)
}

func TestCreateProductValidation(t *testing.T) {
	for name, body := range map[string]string{
		"missing name":     `{"price":10}`,
		"unknown category": `{"name":"Towel","category":"Physical Product"}`,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, post(newRouter(&fakeService{}), body).Code)
		})
	}
}

func TestDeleteMissingProduct(t *testing.T) {
	svc := &fakeService{deleteErr: apperrors.NotFound("product", nil)}
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/products/8", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
