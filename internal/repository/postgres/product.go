package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
)

const productColumns = `id, name, price, category, description, created_at, updated_at`

type productRepository struct {
	BaseRepository
}

func NewProductRepository(db *sqlx.DB) repository.ProductRepository {
	return &productRepository{NewBaseRepository(db)}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (name, price, category, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	err := r.conn(ctx).QueryRowxContext(ctx, query,
		product.Name, product.Price, product.Category, product.Description,
		product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	return mapError(err, "product")
}

func (r *productRepository) Get(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.conn(ctx).GetContext(ctx, &product, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err, "product")
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $1, price = $2, category = $3, description = $4, updated_at = $5
		WHERE id = $6
	`
	product.UpdatedAt = time.Now()

	res, err := r.conn(ctx).ExecContext(ctx, query,
		product.Name, product.Price, product.Category, product.Description,
		product.UpdatedAt, product.ID,
	)
	if err != nil {
		return mapError(err, "product")
	}
	return expectOne(res, "product")
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "product")
	}
	return expectOne(res, "product")
}

func (r *productRepository) List(ctx context.Context, filter *model.ProductFilter) ([]*model.Product, error) {
	var p placeholders
	query := `SELECT ` + productColumns + ` FROM products`
	if filter != nil && filter.Category != "" {
		query += ` WHERE category = ` + p.add(filter.Category)
	}
	query += ` ORDER BY name, id`

	products := []*model.Product{}
	if err := r.conn(ctx).SelectContext(ctx, &products, query, p.args...); err != nil {
		return nil, mapError(err, "product")
	}
	return products, nil
}
