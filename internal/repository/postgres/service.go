package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
)

const serviceColumns = `id, name, type, duration, price, resource_required, capacity,
	description, active, created_at, updated_at`

type serviceRepository struct {
	BaseRepository
}

func NewServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &serviceRepository{NewBaseRepository(db)}
}

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	query := `
		INSERT INTO services (
			name, type, duration, price, resource_required, capacity,
			description, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	service.CreatedAt = time.Now()
	service.UpdatedAt = service.CreatedAt

	err := r.conn(ctx).QueryRowxContext(ctx, query,
		service.Name, service.Type, service.Duration, service.Price,
		service.ResourceRequired, service.Capacity, service.Description,
		service.Active, service.CreatedAt, service.UpdatedAt,
	).Scan(&service.ID)
	return mapError(err, "service")
}

func (r *serviceRepository) Get(ctx context.Context, id int64) (*model.Service, error) {
	var service model.Service
	err := r.conn(ctx).GetContext(ctx, &service, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err, "service")
	}
	return &service, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *model.Service) error {
	query := `
		UPDATE services
		SET name = $1, type = $2, duration = $3, price = $4, resource_required = $5,
			capacity = $6, description = $7, active = $8, updated_at = $9
		WHERE id = $10
	`
	service.UpdatedAt = time.Now()

	res, err := r.conn(ctx).ExecContext(ctx, query,
		service.Name, service.Type, service.Duration, service.Price,
		service.ResourceRequired, service.Capacity, service.Description,
		service.Active, service.UpdatedAt, service.ID,
	)
	if err != nil {
		return mapError(err, "service")
	}
	return expectOne(res, "service")
}

// Delete fails with a conflict while appointments still reference the service.
func (r *serviceRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "service")
	}
	return expectOne(res, "service")
}

func (r *serviceRepository) List(ctx context.Context, filter *model.ServiceFilter) ([]*model.Service, error) {
	var (
		p     placeholders
		where []string
	)
	if filter != nil {
		if filter.Type != "" {
			where = append(where, "type = "+p.add(filter.Type))
		}
		if filter.Active != nil {
			where = append(where, "active = "+p.add(*filter.Active))
		}
	}

	query := `SELECT ` + serviceColumns + ` FROM services`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name, id"

	services := []*model.Service{}
	if err := r.conn(ctx).SelectContext(ctx, &services, query, p.args...); err != nil {
		return nil, mapError(err, "service")
	}
	return services, nil
}
