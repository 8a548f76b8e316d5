package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
)

const orderColumns = `o.id, o.member_id, o.total, o.status, o.items, o.payment_method,
	o.charged_at, o.created_at, o.updated_at`

// orderRow carries the member columns joined onto an order.
type orderRow struct {
	model.Order
	MemberName  string `db:"member_name"`
	MemberEmail string `db:"member_email"`
}

func (row *orderRow) toModel() *model.Order {
	o := row.Order
	o.Member = &model.Member{ID: o.MemberID, Name: row.MemberName, Email: row.MemberEmail}
	return &o
}

type orderRepository struct {
	BaseRepository
}

func NewOrderRepository(db *sqlx.DB) repository.OrderRepository {
	return &orderRepository{NewBaseRepository(db)}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	query := `
		INSERT INTO orders (
			member_id, total, status, items, payment_method, charged_at,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	err := r.conn(ctx).QueryRowxContext(ctx, query,
		order.MemberID,
		order.Total,
		order.Status,
		order.Items,
		order.PaymentMethod,
		order.ChargedAt,
		order.CreatedAt,
		order.UpdatedAt,
	).Scan(&order.ID)
	return mapError(err, "order")
}

func (r *orderRepository) Get(ctx context.Context, id int64) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `, m.name AS member_name, m.email AS member_email
		FROM orders o
		JOIN members m ON m.id = o.member_id
		WHERE o.id = $1
	`
	var row orderRow
	if err := r.conn(ctx).GetContext(ctx, &row, query, id); err != nil {
		return nil, mapError(err, "order")
	}
	return row.toModel(), nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "order")
	}
	return expectOne(res, "order")
}

func (r *orderRepository) List(ctx context.Context, filter *model.OrderFilter) ([]*model.Order, error) {
	var p placeholders
	query := `
		SELECT ` + orderColumns + `, m.name AS member_name, m.email AS member_email
		FROM orders o
		JOIN members m ON m.id = o.member_id`
	if filter != nil && filter.Status != "" {
		query += ` WHERE o.status = ` + p.add(filter.Status)
	}
	query += ` ORDER BY o.created_at DESC, o.id DESC`

	var rows []orderRow
	if err := r.conn(ctx).SelectContext(ctx, &rows, query, p.args...); err != nil {
		return nil, mapError(err, "order")
	}

	orders := make([]*model.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, rows[i].toModel())
	}
	return orders, nil
}

func (r *orderRepository) ListByMember(ctx context.Context, memberID int64) ([]*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		WHERE o.member_id = $1
		ORDER BY o.created_at DESC, o.id DESC
	`
	orders := []*model.Order{}
	if err := r.conn(ctx).SelectContext(ctx, &orders, query, memberID); err != nil {
		return nil, mapError(err, "order")
	}
	return orders, nil
}

func (r *orderRepository) ChargeTabs(ctx context.Context, chargedAt time.Time) ([]*model.Order, error) {
	var charged []*model.Order

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var ids []int64
		lock := `SELECT id FROM orders WHERE status = $1 ORDER BY id FOR UPDATE`
		if err := tx.SelectContext(ctx, &ids, lock, model.OrderStatusTab); err != nil {
			return mapError(err, "order")
		}
		if len(ids) == 0 {
			return nil
		}

		// Only the locked rows: a tab opened after the lock is left for the next run.
		update := `
			UPDATE orders
			SET status = $1, charged_at = $2, updated_at = $2
			WHERE id = ANY($3)
		`
		if _, err := tx.ExecContext(ctx, update, model.OrderStatusPaid, chargedAt, pq.Array(ids)); err != nil {
			return mapError(err, "order")
		}

		query, args, err := sqlx.In(`
			SELECT `+orderColumns+`, m.name AS member_name, m.email AS member_email
			FROM orders o
			JOIN members m ON m.id = o.member_id
			WHERE o.id IN (?)
			ORDER BY o.id`, ids)
		if err != nil {
			return err
		}

		var rows []orderRow
		if err := tx.SelectContext(ctx, &rows, tx.Rebind(query), args...); err != nil {
			return mapError(err, "order")
		}
		for i := range rows {
			charged = append(charged, rows[i].toModel())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return charged, nil
}
