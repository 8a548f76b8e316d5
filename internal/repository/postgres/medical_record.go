package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
)

const medicalRecordColumns = `id, member_id, doctor_name, summary, secure_link, visit_date,
	record_type, created_at, updated_at`

type medicalRecordRepository struct {
	BaseRepository
}

func NewMedicalRecordRepository(db *sqlx.DB) repository.MedicalRecordRepository {
	return &medicalRecordRepository{NewBaseRepository(db)}
}

func (r *medicalRecordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	query := `
		INSERT INTO medical_records (
			member_id, doctor_name, summary, secure_link, visit_date,
			record_type, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt

	err := r.conn(ctx).QueryRowxContext(ctx, query,
		record.MemberID, record.DoctorName, record.Summary, record.SecureLink,
		record.VisitDate, record.RecordType, record.CreatedAt, record.UpdatedAt,
	).Scan(&record.ID)
	return mapError(err, "medical record")
}

func (r *medicalRecordRepository) DeleteForMember(ctx context.Context, memberID, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx,
		`DELETE FROM medical_records WHERE id = $1 AND member_id = $2`, id, memberID)
	if err != nil {
		return mapError(err, "medical record")
	}
	return expectOne(res, "medical record")
}

func (r *medicalRecordRepository) ListByMember(ctx context.Context, memberID int64) ([]*model.MedicalRecord, error) {
	query := `SELECT ` + medicalRecordColumns + ` FROM medical_records
		WHERE member_id = $1
		ORDER BY visit_date DESC, id DESC`

	records := []*model.MedicalRecord{}
	if err := r.conn(ctx).SelectContext(ctx, &records, query, memberID); err != nil {
		return nil, mapError(err, "medical record")
	}
	return records, nil
}
