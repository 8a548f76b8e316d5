package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
)

type memberNoteRepository struct {
	BaseRepository
	now func() time.Time
}

func NewMemberNoteRepository(db *sqlx.DB) repository.MemberNoteRepository {
	return &memberNoteRepository{BaseRepository: NewBaseRepository(db), now: time.Now}
}

func (r *memberNoteRepository) Create(ctx context.Context, note *model.MemberNote) error {
	query := `
		INSERT INTO member_notes (member_id, content, created_by, category, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	note.CreatedAt = r.now()

	err := r.conn(ctx).QueryRowxContext(ctx, query,
		note.MemberID, note.Content, note.CreatedBy, note.Category, note.CreatedAt,
	).Scan(&note.ID)
	return mapError(err, "member note")
}

// DeleteForMember only matches a note owned by memberID; anything else is
// reported as not found.
func (r *memberNoteRepository) DeleteForMember(ctx context.Context, memberID, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx,
		`DELETE FROM member_notes WHERE id = $1 AND member_id = $2`, id, memberID)
	if err != nil {
		return mapError(err, "member note")
	}
	return expectOne(res, "member note")
}

func (r *memberNoteRepository) ListByMember(ctx context.Context, memberID int64) ([]*model.MemberNote, error) {
	query := `
		SELECT id, member_id, content, created_by, category, created_at
		FROM member_notes
		WHERE member_id = $1
		ORDER BY created_at DESC, id DESC
	`
	notes := []*model.MemberNote{}
	if err := r.conn(ctx).SelectContext(ctx, &notes, query, memberID); err != nil {
		return nil, mapError(err, "member note")
	}
	return notes, nil
}
