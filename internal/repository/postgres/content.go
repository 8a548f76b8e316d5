package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
)

const contentColumns = `id, title, category, url, description, created_at, updated_at`

type contentRepository struct {
	BaseRepository
}

func NewContentRepository(db *sqlx.DB) repository.ContentRepository {
	return &contentRepository{NewBaseRepository(db)}
}

func (r *contentRepository) Create(ctx context.Context, item *model.ContentItem) error {
	query := `
		INSERT INTO content_items (title, category, url, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt

	err := r.conn(ctx).QueryRowxContext(ctx, query,
		item.Title, item.Category, item.URL, item.Description, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	return mapError(err, "content item")
}

func (r *contentRepository) Get(ctx context.Context, id int64) (*model.ContentItem, error) {
	var item model.ContentItem
	err := r.conn(ctx).GetContext(ctx, &item, `SELECT `+contentColumns+` FROM content_items WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err, "content item")
	}
	return &item, nil
}

func (r *contentRepository) Update(ctx context.Context, item *model.ContentItem) error {
	query := `
		UPDATE content_items
		SET title = $1, category = $2, url = $3, description = $4, updated_at = $5
		WHERE id = $6
	`
	item.UpdatedAt = time.Now()

	res, err := r.conn(ctx).ExecContext(ctx, query,
		item.Title, item.Category, item.URL, item.Description, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return mapError(err, "content item")
	}
	return expectOne(res, "content item")
}

func (r *contentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM content_items WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "content item")
	}
	return expectOne(res, "content item")
}

// List returns the newest items first.
func (r *contentRepository) List(ctx context.Context, filter *model.ContentFilter) ([]*model.ContentItem, error) {
	var p placeholders
	query := `SELECT ` + contentColumns + ` FROM content_items`
	if filter != nil && filter.Category != "" {
		query += ` WHERE category = ` + p.add(filter.Category)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	items := []*model.ContentItem{}
	if err := r.conn(ctx).SelectContext(ctx, &items, query, p.args...); err != nil {
		return nil, mapError(err, "content item")
	}
	return items, nil
}
