package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/club-admin-api/internal/model"
	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return sqlx.NewDb(db, "postgres"), mock
}

var memberCols = []string{
	"id", "name", "email", "phone", "status", "tier", "join_date", "subscription_type",
	"monthly_rate", "emergency_contact", "stripe_customer_id", "gocardless_mandate_id", "notes",
	"created_at", "updated_at",
}

func TestMemberGetNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMemberRepository(db)

	mock.ExpectQuery(`SELECT .* FROM members WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 42)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMemberGet(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMemberRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM members WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(memberCols).AddRow(
			5, "Ada Lovelace", "ada@example.com", "", "Active", "Founding", now, "Monthly",
			"150.00", "Charles Babbage 07700 900123", nil, "MD-1", "", now, now,
		))

	m, err := repo.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", m.Name)
	assert.Equal(t, model.MemberTierFounding, m.Tier)
	assert.True(t, decimal.RequireFromString("150").Equal(m.MonthlyRate))
	assert.Equal(t, "Charles Babbage 07700 900123", m.EmergencyContact)
	assert.Nil(t, m.StripeCustomerID)
	require.NotNil(t, m.GoCardlessMandateID)
	assert.Equal(t, "MD-1", *m.GoCardlessMandateID)
}

func TestMemberCreateDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMemberRepository(db)

	mock.ExpectQuery(`INSERT INTO members`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "members_email_key"})

	err := repo.Create(context.Background(), &model.Member{Name: "Ada", Email: "ada@example.com"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Equal(t, "email already in use", appErr.Message)
}

func TestMemberCreateAssignsID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMemberRepository(db)

	mock.ExpectQuery(`INSERT INTO members`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	m := &model.Member{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, repo.Create(context.Background(), m))
	assert.Equal(t, int64(7), m.ID)
	assert.False(t, m.CreatedAt.IsZero())
}

func TestMemberListFilters(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMemberRepository(db)

	mock.ExpectQuery(`FROM members WHERE status = \$1 AND tier = \$2 AND \(name ILIKE \$3 ESCAPE '\\' OR email ILIKE \$3 ESCAPE '\\'\) ORDER BY created_at DESC`).
		WithArgs(model.MemberStatusFrozen, model.MemberTierCorporate, "%ada%").
		WillReturnRows(sqlmock.NewRows(memberCols))

	members, err := repo.List(context.Background(), &model.MemberFilter{
		Status: model.MemberStatusFrozen,
		Tier:   model.MemberTierCorporate,
		Query:  " ada ",
	})
	require.NoError(t, err)
	assert.NotNil(t, members)
	assert.Empty(t, members)
}

func TestMemberSearchMatchesWildcardsLiterally(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMemberRepository(db)

	mock.ExpectQuery(`FROM members WHERE \(name ILIKE \$1 ESCAPE '\\' OR email ILIKE \$1 ESCAPE '\\'\)`).
		WithArgs(`%50\%\_off\\%`).
		WillReturnRows(sqlmock.NewRows(memberCols))

	_, err := repo.List(context.Background(), &model.MemberFilter{Query: `50%_off\`})
	require.NoError(t, err)
}

func TestMemberUpdateWritesEmergencyContact(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMemberRepository(db)
	mandate := "MD-1"

	mock.ExpectExec(`UPDATE members SET .* emergency_contact = \$9, stripe_customer_id = \$10, gocardless_mandate_id = \$11, notes = \$12, updated_at = \$13 WHERE id = \$14`).
		WithArgs("Ada", "ada@example.com", "", model.MemberStatusActive, model.MemberTierStandard,
			sqlmock.AnyArg(), "", sqlmock.AnyArg(), "Charles Babbage", nil, &mandate, "", sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &model.Member{
		ID: 5, Name: "Ada", Email: "ada@example.com",
		Status: model.MemberStatusActive, Tier: model.MemberTierStandard,
		EmergencyContact: "Charles Babbage", GoCardlessMandateID: &mandate,
	})
	require.NoError(t, err)
}

func TestMemberDeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMemberRepository(db)

	mock.ExpectExec(`DELETE FROM members WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.True(t, apperrors.IsNotFound(repo.Delete(context.Background(), 9)))
}

func TestStoreFailureIsUnavailable(t *testing.T) {
	db, mock := newMock(t)
	repo := NewStaffRepository(db)

	mock.ExpectQuery(`SELECT .* FROM staff ORDER BY name`).
		WillReturnError(errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))

	_, err := repo.List(context.Background())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnavailable))
}

func TestServiceDeleteStillReferenced(t *testing.T) {
	db, mock := newMock(t)
	repo := NewServiceRepository(db)

	mock.ExpectExec(`DELETE FROM services WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnError(&pq.Error{
			Code:       "23503",
			Message:    `update or delete on table "services" violates foreign key constraint "appointments_service_id_fkey" on table "appointments"`,
			Constraint: "appointments_service_id_fkey",
		})

	err := repo.Delete(context.Background(), 3)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestAppointmentCreateUnknownMember(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectQuery(`INSERT INTO appointments`).
		WillReturnError(&pq.Error{
			Code:       "23503",
			Message:    `insert or update on table "appointments" violates foreign key constraint "appointments_member_id_fkey"`,
			Constraint: "appointments_member_id_fkey",
		})

	err := repo.Create(context.Background(), &model.Appointment{MemberID: 99, ServiceID: 1})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	assert.Equal(t, "member not found", appErr.Message)
}

var appointmentCols = []string{
	"id", "member_id", "service_id", "staff_id", "start_time", "end_time", "status", "notes",
	"created_at", "updated_at",
	"member_name", "member_email", "member_phone", "member_status", "member_tier",
	"service_name", "service_type", "service_duration", "service_price",
	"service_resource_required", "service_capacity",
	"staff_name", "staff_email", "staff_role", "staff_speciality",
}

func TestAppointmentListJoinsRelations(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAppointmentRepository(db)

	day := model.DayWindow(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	start := day.From.Add(9 * time.Hour)

	mock.ExpectQuery(`LEFT JOIN staff st ON st.id = a.staff_id WHERE a.start_time >= \$1 AND a.start_time < \$2 ORDER BY a.start_time ASC, a.id ASC`).
		WithArgs(day.From, day.To).
		WillReturnRows(sqlmock.NewRows(appointmentCols).
			AddRow(1, 5, 2, 4, start, start.Add(time.Hour), "Booked", "",
				start, start,
				"Ada", "ada@example.com", "", "Active", "Founding",
				"Sauna", "Treatment", 60, "25.00", "Studio A", 1,
				"Grace", "grace@example.com", "Practitioner", "Physio").
			AddRow(2, 6, 3, nil, start, start.Add(time.Hour), "Booked", "",
				start, start,
				"Alan", "alan@example.com", "", "Active", "Standard",
				"Consult", "Consultation", 30, "0", nil, 1,
				nil, nil, nil, nil))

	appointments, err := repo.List(context.Background(), &model.AppointmentFilter{Window: &day})
	require.NoError(t, err)
	require.Len(t, appointments, 2)

	first := appointments[0]
	assert.Equal(t, "Ada", first.Member.Name)
	require.NotNil(t, first.Service.ResourceRequired)
	assert.Equal(t, "Studio A", *first.Service.ResourceRequired)
	require.NotNil(t, first.Staff)
	assert.Equal(t, model.StaffRolePractitioner, first.Staff.Role)

	second := appointments[1]
	assert.Nil(t, second.StaffID)
	assert.Nil(t, second.Staff)
	assert.Nil(t, second.Service.ResourceRequired)
}

func TestNoteDeleteEnforcesOwnership(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMemberNoteRepository(db)

	mock.ExpectExec(`DELETE FROM member_notes WHERE id = \$1 AND member_id = \$2`).
		WithArgs(int64(11), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM member_notes WHERE id = \$1 AND member_id = \$2`).
		WithArgs(int64(12), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.True(t, apperrors.IsNotFound(repo.DeleteForMember(context.Background(), 5, 11)))
	assert.NoError(t, repo.DeleteForMember(context.Background(), 5, 12))
}

func TestNoteCreateStampsCreatedAt(t *testing.T) {
	db, mock := newMock(t)
	repo := &memberNoteRepository{BaseRepository: NewBaseRepository(db)}
	fixed := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	mock.ExpectQuery(`INSERT INTO member_notes`).
		WithArgs(int64(5), "Test", "A", model.NoteCategoryGeneral, fixed).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))

	note := &model.MemberNote{MemberID: 5, Content: "Test", CreatedBy: "A", Category: model.NoteCategoryGeneral}
	require.NoError(t, repo.Create(context.Background(), note))
	assert.Equal(t, int64(31), note.ID)
	assert.Equal(t, fixed, note.CreatedAt)
}

func TestInsightsSumDefaultsToZero(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInsightsRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total\), 0\) FROM orders WHERE status = \$1`).
		WithArgs(model.OrderStatusTab).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("36.00"))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total\), 0\) FROM orders WHERE status = \$1`).
		WithArgs(model.OrderStatusPaid).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("0"))

	tabs, err := repo.SumOrders(context.Background(), model.OrderStatusTab)
	require.NoError(t, err)
	assert.Equal(t, "36", tabs.String())

	paid, err := repo.SumOrders(context.Background(), model.OrderStatusPaid)
	require.NoError(t, err)
	assert.True(t, paid.IsZero())
}

func TestInsightsCountMembersByStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInsightsRepository(db)
	active := model.MemberStatusActive

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM members WHERE status = \$1`).
		WithArgs(active).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM members$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(20))

	n, err := repo.CountMembers(context.Background(), &active)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)

	total, err := repo.CountMembers(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(20), total)
}

var orderCols = []string{
	"id", "member_id", "total", "status", "items", "payment_method", "charged_at",
	"created_at", "updated_at", "member_name", "member_email",
}

func TestChargeTabsRunsInOneTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepository(db)
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM orders WHERE status = \$1 ORDER BY id FOR UPDATE`).
		WithArgs(model.OrderStatusTab).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(3))
	mock.ExpectExec(`UPDATE orders SET status = \$1, charged_at = \$2, updated_at = \$2 WHERE id = ANY\(\$3\)`).
		WithArgs(model.OrderStatusPaid, now, pq.Array([]int64{1, 3})).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`WHERE o.id IN \(\$1, \$2\)`).
		WithArgs(int64(1), int64(3)).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(1, 5, "12.50", "Paid", []byte(`[{"name":"Smoothie","qty":1,"price":12.5}]`), "Tab", now, now, now, "Ada", "ada@example.com").
			AddRow(3, 6, "23.50", "Paid", []byte(`[]`), "Tab", now, now, now, "Alan", "alan@example.com"))
	mock.ExpectCommit()

	orders, err := repo.ChargeTabs(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, model.OrderStatusPaid, orders[0].Status)
	assert.Equal(t, "Smoothie", orders[0].Items[0].Name)
	assert.Equal(t, "ada@example.com", orders[0].Member.Email)
	require.NotNil(t, orders[1].ChargedAt)
	assert.Equal(t, now, *orders[1].ChargedAt)
}

func TestChargeTabsRollsBackOnFailure(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM orders`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE orders`).
		WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	_, err := repo.ChargeTabs(context.Background(), time.Now())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnavailable))
}

func TestSubscriptionGetByMemberAbsent(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSubscriptionRepository(db)

	mock.ExpectQuery(`FROM subscriptions WHERE member_id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	sub, err := repo.GetByMember(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestOutboxClaimsWithSkipLocked(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOutboxRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE SKIP LOCKED`).
		WithArgs(model.OutboxStatusPending, model.OutboxStatusRetry, 10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "event_type", "payload", "status", "error_message", "retry_count", "retry_at",
			"created_at", "processed_at", "updated_at",
		}).AddRow("5f0c7a1e-8a4b-4f3e-9d55-1c8a3b7e2d10", model.EventNoteCreated, []byte(`{"id":1}`),
			"pending", nil, 0, nil, time.Now(), nil, time.Now()))
	mock.ExpectCommit()

	tx, err := repo.BeginTx(context.Background())
	require.NoError(t, err)
	events, err := repo.GetPendingEventsWithLock(context.Background(), tx, 10)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Len(t, events, 1)
	assert.Equal(t, model.EventNoteCreated, events[0].EventType)
	assert.JSONEq(t, `{"id":1}`, string(events[0].Payload))
}

func TestTransactorStoresEventWithTheWrite(t *testing.T) {
	db, mock := newMock(t)
	members := NewMemberRepository(db)
	outbox := NewOutboxRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO members`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(`INSERT INTO outbox_events`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewTransactor(db).InTx(context.Background(), func(ctx context.Context) error {
		if err := members.Create(ctx, &model.Member{Name: "Ada", Email: "ada@example.com"}); err != nil {
			return err
		}
		return outbox.Create(ctx, &model.OutboxEvent{EventType: model.EventMemberCreated, Payload: []byte(`{"id":7}`)})
	})
	require.NoError(t, err)
}

func TestTransactorRollsBackWriteWhenEventFails(t *testing.T) {
	db, mock := newMock(t)
	members := NewMemberRepository(db)
	outbox := NewOutboxRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM members WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO outbox_events`).
		WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	err := NewTransactor(db).InTx(context.Background(), func(ctx context.Context) error {
		if err := members.Delete(ctx, 7); err != nil {
			return err
		}
		return outbox.Create(ctx, &model.OutboxEvent{EventType: model.EventMemberDeleted, Payload: []byte(`{"id":7}`)})
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnavailable))
}

func TestChargeTabsJoinsSurroundingTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM orders`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	err := NewTransactor(db).InTx(context.Background(), func(ctx context.Context) error {
		_, err := repo.ChargeTabs(ctx, time.Now())
		return err
	})
	require.NoError(t, err)
}

func TestProductListByCategory(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM products WHERE category = \$1 ORDER BY name, id`).
		WithArgs(model.ProductCategorySubscription).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "category", "description", "created_at", "updated_at"}).
			AddRow(2, "Annual pass", "1200.00", "Subscription", "", now, now))

	products, err := repo.List(context.Background(), &model.ProductFilter{Category: model.ProductCategorySubscription})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, decimal.RequireFromString("1200").Equal(products[0].Price))
	assert.Equal(t, model.ProductCategorySubscription, products[0].Category)
}

func TestProductNegativePriceIsBadRequest(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`INSERT INTO products`).
		WillReturnError(&pq.Error{Code: "23514", Constraint: "products_price_check"})

	err := repo.Create(context.Background(), &model.Product{Name: "Towel", Price: decimal.NewFromInt(-1)})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
}

func TestContentUpdateMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewContentRepository(db)

	mock.ExpectExec(`UPDATE content_items SET title = \$1, category = \$2, url = \$3, description = \$4, updated_at = \$5 WHERE id = \$6`).
		WithArgs("Welcome", model.ContentCategoryVideo, "https://example.com/v.mp4", "", sqlmock.AnyArg(), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &model.ContentItem{
		ID: 11, Title: "Welcome", Category: model.ContentCategoryVideo, URL: "https://example.com/v.mp4",
	})
	assert.True(t, apperrors.IsNotFound(err))
}
