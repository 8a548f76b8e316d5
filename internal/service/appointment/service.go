package appointment

import (
	"context"
	"fmt"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
	"github.com/jwalitptl/club-admin-api/internal/service/event"
	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
)

type Service struct {
	repo   repository.AppointmentRepository
	events event.Recorder
}

func NewService(repo repository.AppointmentRepository, events event.Recorder) *Service {
	if events == nil {
		events = event.Nop{}
	}
	return &Service{repo: repo, events: events}
}

func validateAppointment(req *model.AppointmentRequest) error {
	if !req.EndTime.After(req.StartTime) {
		return apperrors.BadRequest("endTime must be after startTime", nil)
	}
	if req.Status != "" && !req.Status.Valid() {
		return apperrors.BadRequest(fmt.Sprintf("unknown appointment status %q", req.Status), nil)
	}
	return nil
}

func (s *Service) List(ctx context.Context, filter *model.AppointmentFilter) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return apt, nil
}

func (s *Service) Create(ctx context.Context, req *model.AppointmentRequest) (*model.Appointment, error) {
	if err := validateAppointment(req); err != nil {
		return nil, err
	}

	apt := &model.Appointment{}
	req.Apply(apt)
	err := s.events.InTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, apt); err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return s.events.Emit(ctx, model.EventAppointmentCreated, apt)
	})
	if err != nil {
		return nil, err
	}
	return apt, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.AppointmentRequest) (*model.Appointment, error) {
	if err := validateAppointment(req); err != nil {
		return nil, err
	}

	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	req.Apply(apt)
	err = s.events.InTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, apt); err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}
		return s.events.Emit(ctx, model.EventAppointmentUpdated, apt)
	})
	if err != nil {
		return nil, err
	}
	return apt, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.events.InTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete appointment: %w", err)
		}
		return s.events.Emit(ctx, model.EventAppointmentDeleted, map[string]int64{"id": id})
	})
}
