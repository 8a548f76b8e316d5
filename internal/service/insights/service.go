package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
)

type Service struct {
	repo     repository.InsightsRepository
	location *time.Location
	now      func() time.Time
}

func NewService(repo repository.InsightsRepository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, location: loc, now: time.Now}
}

// Get computes the dashboard figures. Each one is a separate query with no
// shared snapshot; the first failure aborts the whole result.
func (s *Service) Get(ctx context.Context) (*model.Insights, error) {
	var (
		out    model.Insights
		err    error
		today  = model.DayWindow(s.now().In(s.location))
		status = func(st model.MemberStatus) *model.MemberStatus { return &st }
	)

	if out.ActiveMembers, err = s.repo.CountMembers(ctx, status(model.MemberStatusActive)); err != nil {
		return nil, fmt.Errorf("failed to count active members: %w", err)
	}
	if out.Waitlist, err = s.repo.CountMembers(ctx, status(model.MemberStatusWaitlist)); err != nil {
		return nil, fmt.Errorf("failed to count waitlist: %w", err)
	}
	if out.FrozenMembers, err = s.repo.CountMembers(ctx, status(model.MemberStatusFrozen)); err != nil {
		return nil, fmt.Errorf("failed to count frozen members: %w", err)
	}
	if out.DailyBookings, err = s.repo.CountAppointments(ctx, model.AppointmentStatusBooked, today); err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	if out.CompletedToday, err = s.repo.CountAppointments(ctx, model.AppointmentStatusCompleted, today); err != nil {
		return nil, fmt.Errorf("failed to count completed appointments: %w", err)
	}
	if out.OpenTabsRevenue, err = s.repo.SumOrders(ctx, model.OrderStatusTab); err != nil {
		return nil, fmt.Errorf("failed to sum open tabs: %w", err)
	}
	if out.PaidRevenue, err = s.repo.SumOrders(ctx, model.OrderStatusPaid); err != nil {
		return nil, fmt.Errorf("failed to sum paid orders: %w", err)
	}
	if out.TotalMembers, err = s.repo.CountMembers(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	if out.TotalStaff, err = s.repo.CountStaff(ctx); err != nil {
		return nil, fmt.Errorf("failed to count staff: %w", err)
	}

	return &out, nil
}
