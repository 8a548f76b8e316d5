package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
)

type Service struct {
	repo     repository.AppointmentRepository
	location *time.Location
	now      func() time.Time
}

// NewService builds the schedule view. loc decides where "today" starts.
func NewService(repo repository.AppointmentRepository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, location: loc, now: time.Now}
}

// ForDay groups the appointments of day (today when nil) by the resource
// their service requires.
func (s *Service) ForDay(ctx context.Context, day *time.Time) (*model.ResourceSchedule, error) {
	ref := s.now()
	if day != nil {
		ref = *day
	}
	window := model.DayWindow(ref.In(s.location))

	appointments, err := s.repo.List(ctx, &model.AppointmentFilter{Window: &window})
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	return GroupByResource(appointments), nil
}

// ResourceKey is the grouping key of an appointment.
func ResourceKey(a *model.Appointment) string {
	if a.Service == nil || a.Service.ResourceRequired == nil || *a.Service.ResourceRequired == "" {
		return model.UnassignedResource
	}
	return *a.Service.ResourceRequired
}

// GroupByResource partitions appointments by resource. Each group is in
// start-time order and keys appear in the order they are first met in the
// time-sorted list. The input slice is not modified.
func GroupByResource(appointments []*model.Appointment) *model.ResourceSchedule {
	sorted := make([]*model.Appointment, len(appointments))
	copy(sorted, appointments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	schedule := model.NewResourceSchedule()
	for _, a := range sorted {
		schedule.Append(ResourceKey(a), a)
	}
	return schedule
}
