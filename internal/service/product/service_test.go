package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
)

type fakeRepo struct {
	repository.ProductRepository
	stored map[int64]*model.Product
}

func (f *fakeRepo) Create(_ context.Context, p *model.Product) error {
	p.ID = int64(len(f.stored) + 1)
	f.stored[p.ID] = p
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (*model.Product, error) {
	p, ok := f.stored[id]
	if !ok {
		return nil, apperrors.NotFound("product", nil)
	}
	return p, nil
}

func (f *fakeRepo) Update(_ context.Context, p *model.Product) error {
	f.stored[p.ID] = p
	return nil
}

func newRepo() *fakeRepo {
	return &fakeRepo{stored: map[int64]*model.Product{}}
}

func TestCreateProduct(t *testing.T) {
	svc := NewService(newRepo())

	got, err := svc.Create(context.Background(), &model.ProductRequest{
		Name: "PT Session", Price: decimal.RequireFromString("50.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, model.ProductCategoryService, got.Category)
	assert.True(t, decimal.RequireFromString("50").Equal(got.Price))
}

func TestProductNegativePriceRejected(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo)
	req := &model.ProductRequest{Name: "Towel", Price: decimal.RequireFromString("-0.01")}

	_, err := svc.Create(context.Background(), req)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))

	_, err = svc.Update(context.Background(), 1, req)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
	assert.Empty(t, repo.stored)
}

func TestUpdateProductReplacesFields(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), &model.ProductRequest{
		Name: "Protein bar", Price: decimal.RequireFromString("2.50"), Category: model.ProductCategoryProduct,
	})
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), created.ID, &model.ProductRequest{
		Name: "Protein bar (box)", Price: decimal.RequireFromString("24"), Category: model.ProductCategoryProduct,
	})
	require.NoError(t, err)
	assert.Equal(t, "Protein bar (box)", got.Name)
	assert.True(t, decimal.NewFromInt(24).Equal(repo.stored[created.ID].Price))
}

func TestUpdateUnknownProduct(t *testing.T) {
	_, err := NewService(newRepo()).Update(context.Background(), 42, &model.ProductRequest{Name: "x"})
	assert.True(t, apperrors.IsNotFound(err))
}
