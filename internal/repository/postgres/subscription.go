package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
)

const subscriptionColumns = `id, member_id, type, amount, status, start_date, next_billing_date,
	external_subscription_id, mandate_id, created_at, updated_at`

type subscriptionRepository struct {
	BaseRepository
}

func NewSubscriptionRepository(db *sqlx.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{NewBaseRepository(db)}
}

// Upsert creates the member's subscription or replaces the existing one.
func (r *subscriptionRepository) Upsert(ctx context.Context, sub *model.Subscription) error {
	query := `
		INSERT INTO subscriptions (
			member_id, type, amount, status, start_date, next_billing_date,
			external_subscription_id, mandate_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (member_id) DO UPDATE SET
			type = EXCLUDED.type,
			amount = EXCLUDED.amount,
			status = EXCLUDED.status,
			start_date = EXCLUDED.start_date,
			next_billing_date = EXCLUDED.next_billing_date,
			external_subscription_id = EXCLUDED.external_subscription_id,
			mandate_id = EXCLUDED.mandate_id,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`
	now := time.Now()

	err := r.conn(ctx).QueryRowxContext(ctx, query,
		sub.MemberID, sub.Type, sub.Amount, sub.Status, sub.StartDate,
		sub.NextBillingDate, sub.ExternalSubscriptionID, sub.MandateID, now,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	return mapError(err, "subscription")
}

// GetByMember returns nil without error when the member has no subscription.
func (r *subscriptionRepository) GetByMember(ctx context.Context, memberID int64) (*model.Subscription, error) {
	var subs []*model.Subscription
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE member_id = $1`
	if err := r.conn(ctx).SelectContext(ctx, &subs, query, memberID); err != nil {
		return nil, mapError(err, "subscription")
	}
	if len(subs) == 0 {
		return nil, nil
	}
	return subs[0], nil
}

func (r *subscriptionRepository) DeleteByMember(ctx context.Context, memberID int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM subscriptions WHERE member_id = $1`, memberID)
	if err != nil {
		return mapError(err, "subscription")
	}
	return expectOne(res, "subscription")
}
