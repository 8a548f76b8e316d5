package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
)

const staffColumns = `id, name, email, phone, role, speciality, bio, active, created_at, updated_at`

type staffRepository struct {
	BaseRepository
}

func NewStaffRepository(db *sqlx.DB) repository.StaffRepository {
	return &staffRepository{NewBaseRepository(db)}
}

func (r *staffRepository) Create(ctx context.Context, staff *model.Staff) error {
	query := `
		INSERT INTO staff (name, email, phone, role, speciality, bio, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = staff.CreatedAt

	err := r.conn(ctx).QueryRowxContext(ctx, query,
		staff.Name, staff.Email, staff.Phone, staff.Role, staff.Speciality,
		staff.Bio, staff.Active, staff.CreatedAt, staff.UpdatedAt,
	).Scan(&staff.ID)
	return mapError(err, "staff")
}

func (r *staffRepository) Get(ctx context.Context, id int64) (*model.Staff, error) {
	var staff model.Staff
	err := r.conn(ctx).GetContext(ctx, &staff, `SELECT `+staffColumns+` FROM staff WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err, "staff")
	}
	return &staff, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *model.Staff) error {
	query := `
		UPDATE staff
		SET name = $1, email = $2, phone = $3, role = $4, speciality = $5,
			bio = $6, active = $7, updated_at = $8
		WHERE id = $9
	`
	staff.UpdatedAt = time.Now()

	res, err := r.conn(ctx).ExecContext(ctx, query,
		staff.Name, staff.Email, staff.Phone, staff.Role, staff.Speciality,
		staff.Bio, staff.Active, staff.UpdatedAt, staff.ID,
	)
	if err != nil {
		return mapError(err, "staff")
	}
	return expectOne(res, "staff")
}

// Delete keeps appointment history: their staff_id becomes NULL.
func (r *staffRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "staff")
	}
	return expectOne(res, "staff")
}

func (r *staffRepository) List(ctx context.Context) ([]*model.Staff, error) {
	staff := []*model.Staff{}
	err := r.conn(ctx).SelectContext(ctx, &staff, `SELECT `+staffColumns+` FROM staff ORDER BY name, id`)
	if err != nil {
		return nil, mapError(err, "staff")
	}
	return staff, nil
}
