package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
)

const memberColumns = `id, name, email, phone, status, tier, join_date, subscription_type,
	monthly_rate, emergency_contact, stripe_customer_id, gocardless_mandate_id, notes,
	created_at, updated_at`

type memberRepository struct {
	BaseRepository
}

func NewMemberRepository(db *sqlx.DB) repository.MemberRepository {
	return &memberRepository{NewBaseRepository(db)}
}

func (r *memberRepository) Create(ctx context.Context, member *model.Member) error {
	query := `
		INSERT INTO members (
			name, email, phone, status, tier, join_date, subscription_type,
			monthly_rate, emergency_contact, stripe_customer_id, gocardless_mandate_id,
			notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	member.CreatedAt = time.Now()
	member.UpdatedAt = member.CreatedAt

	err := r.conn(ctx).QueryRowxContext(ctx, query,
		member.Name,
		member.Email,
		member.Phone,
		member.Status,
		member.Tier,
		member.JoinDate,
		member.SubscriptionType,
		member.MonthlyRate,
		member.EmergencyContact,
		member.StripeCustomerID,
		member.GoCardlessMandateID,
		member.Notes,
		member.CreatedAt,
		member.UpdatedAt,
	).Scan(&member.ID)
	return mapError(err, "member")
}

func (r *memberRepository) Get(ctx context.Context, id int64) (*model.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	var member model.Member
	if err := r.conn(ctx).GetContext(ctx, &member, query, id); err != nil {
		return nil, mapError(err, "member")
	}
	return &member, nil
}

func (r *memberRepository) Update(ctx context.Context, member *model.Member) error {
	query := `
		UPDATE members
		SET name = $1, email = $2, phone = $3, status = $4, tier = $5,
			join_date = $6, subscription_type = $7, monthly_rate = $8,
			emergency_contact = $9, stripe_customer_id = $10,
			gocardless_mandate_id = $11, notes = $12, updated_at = $13
		WHERE id = $14
	`
	member.UpdatedAt = time.Now()

	res, err := r.conn(ctx).ExecContext(ctx, query,
		member.Name,
		member.Email,
		member.Phone,
		member.Status,
		member.Tier,
		member.JoinDate,
		member.SubscriptionType,
		member.MonthlyRate,
		member.EmergencyContact,
		member.StripeCustomerID,
		member.GoCardlessMandateID,
		member.Notes,
		member.UpdatedAt,
		member.ID,
	)
	if err != nil {
		return mapError(err, "member")
	}
	return expectOne(res, "member")
}

// Delete removes the member; owned rows go with it via ON DELETE CASCADE.
func (r *memberRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "member")
	}
	return expectOne(res, "member")
}

func (r *memberRepository) List(ctx context.Context, filter *model.MemberFilter) ([]*model.Member, error) {
	var (
		p     placeholders
		where []string
	)
	if filter != nil {
		if filter.Status != "" {
			where = append(where, "status = "+p.add(filter.Status))
		}
		if filter.Tier != "" {
			where = append(where, "tier = "+p.add(filter.Tier))
		}
		if q := strings.TrimSpace(filter.Query); q != "" {
			arg := p.add(containsPattern(q))
			where = append(where, "(name ILIKE "+arg+` ESCAPE '\' OR email ILIKE `+arg+` ESCAPE '\')`)
		}
	}

	query := `SELECT ` + memberColumns + ` FROM members`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	members := []*model.Member{}
	if err := r.conn(ctx).SelectContext(ctx, &members, query, p.args...); err != nil {
		return nil, mapError(err, "member")
	}
	return members, nil
}

func (r *memberRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.conn(ctx).GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM members WHERE id = $1)`, id)
	if err != nil {
		return false, mapError(err, "member")
	}
	return exists, nil
}
