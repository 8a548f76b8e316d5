package insights

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/club-admin-api/internal/model"
	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
)

// memStore answers the insight queries from in-memory rows.
type memStore struct {
	members      []model.MemberStatus
	staff        int
	appointments []*model.Appointment
	orders       []*model.Order
	failOn       string
}

func (m *memStore) CountMembers(_ context.Context, status *model.MemberStatus) (int64, error) {
	if m.failOn == "members" {
		return 0, apperrors.Unavailable(errors.New("timeout"))
	}
	var n int64
	for _, s := range m.members {
		if status == nil || s == *status {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountStaff(context.Context) (int64, error) {
	return int64(m.staff), nil
}

func (m *memStore) CountAppointments(_ context.Context, status model.AppointmentStatus, w model.DateRange) (int64, error) {
	var n int64
	for _, a := range m.appointments {
		if a.Status == status && !a.StartTime.Before(w.From) && a.StartTime.Before(w.To) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) SumOrders(_ context.Context, status model.OrderStatus) (decimal.Decimal, error) {
	if m.failOn == "orders" {
		return decimal.Zero, apperrors.Unavailable(errors.New("timeout"))
	}
	sum := decimal.Zero
	for _, o := range m.orders {
		if o.Status == status {
			sum = sum.Add(o.Total)
		}
	}
	return sum, nil
}

func newService(store *memStore) *Service {
	svc := NewService(store, time.UTC)
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC) }
	return svc
}

func TestRevenueScenario(t *testing.T) {
	store := &memStore{orders: []*model.Order{
		{Total: decimal.RequireFromString("12.50"), Status: model.OrderStatusTab},
		{Total: decimal.RequireFromString("218.00"), Status: model.OrderStatusPaid},
		{Total: decimal.RequireFromString("23.50"), Status: model.OrderStatusTab},
	}}

	got, err := newService(store).Get(context.Background())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("36.00").Equal(got.OpenTabsRevenue))
	assert.True(t, decimal.RequireFromString("218.00").Equal(got.PaidRevenue))
}

func TestSumsDefaultToZero(t *testing.T) {
	got, err := newService(&memStore{}).Get(context.Background())
	require.NoError(t, err)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"activeMembers": 0, "waitlist": 0, "frozenMembers": 0,
		"dailyBookings": 0, "completedToday": 0,
		"openTabsRevenue": 0, "paidRevenue": 0,
		"totalMembers": 0, "totalStaff": 0
	}`, string(data))
}

func TestMemberCountsAndDailyAppointments(t *testing.T) {
	today := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	store := &memStore{
		members: []model.MemberStatus{
			model.MemberStatusActive, model.MemberStatusActive, model.MemberStatusWaitlist,
			model.MemberStatusFrozen, model.MemberStatusBanned, model.MemberStatusPendingApproval,
		},
		staff: 4,
		appointments: []*model.Appointment{
			{Status: model.AppointmentStatusBooked, StartTime: today},
			{Status: model.AppointmentStatusBooked, StartTime: today.Add(24 * time.Hour)},
			{Status: model.AppointmentStatusCompleted, StartTime: today.Add(-time.Hour)},
			{Status: model.AppointmentStatusCancelled, StartTime: today},
		},
	}

	got, err := newService(store).Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), got.ActiveMembers)
	assert.Equal(t, int64(1), got.Waitlist)
	assert.Equal(t, int64(1), got.FrozenMembers)
	assert.Equal(t, int64(6), got.TotalMembers)
	assert.LessOrEqual(t, got.ActiveMembers+got.Waitlist+got.FrozenMembers, got.TotalMembers)
	assert.Equal(t, int64(4), got.TotalStaff)
	assert.Equal(t, int64(1), got.DailyBookings)
	assert.Equal(t, int64(1), got.CompletedToday)
}

func TestFailedQueryAbortsAggregation(t *testing.T) {
	for _, failOn := range []string{"members", "orders"} {
		got, err := newService(&memStore{failOn: failOn}).Get(context.Background())
		assert.Nil(t, got, failOn)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrUnavailable), failOn)
	}
}
