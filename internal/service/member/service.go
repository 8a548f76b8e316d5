package member

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
	"github.com/jwalitptl/club-admin-api/internal/service/event"
	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
	"github.com/jwalitptl/club-admin-api/pkg/security"
)

// Repositories groups the stores a member and everything it owns live in.
type Repositories struct {
	Members        repository.MemberRepository
	Appointments   repository.AppointmentRepository
	Orders         repository.OrderRepository
	MedicalRecords repository.MedicalRecordRepository
	Notes          repository.MemberNoteRepository
	Subscriptions  repository.SubscriptionRepository
}

type Service struct {
	repos     Repositories
	events    event.Recorder
	encryptor security.Encryptor
	now       func() time.Time
}

// NewService builds the member service. encryptor may be nil, in which case
// medical summaries are stored as given.
func NewService(repos Repositories, events event.Recorder, encryptor security.Encryptor) *Service {
	if events == nil {
		events = event.Nop{}
	}
	return &Service{
		repos:     repos,
		events:    events,
		encryptor: encryptor,
		now:       time.Now,
	}
}

func (s *Service) List(ctx context.Context, filter *model.MemberFilter) ([]*model.Member, error) {
	members, err := s.repos.Members.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (s *Service) Create(ctx context.Context, req *model.MemberRequest) (*model.Member, error) {
	member := &model.Member{}
	req.Apply(member, s.now())

	err := s.events.InTx(ctx, func(ctx context.Context) error {
		if err := s.repos.Members.Create(ctx, member); err != nil {
			return fmt.Errorf("failed to create member: %w", err)
		}
		return s.events.Emit(ctx, model.EventMemberCreated, member)
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.MemberRequest) (*model.Member, error) {
	member, err := s.repos.Members.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	req.Apply(member, s.now())
	err = s.events.InTx(ctx, func(ctx context.Context) error {
		if err := s.repos.Members.Update(ctx, member); err != nil {
			return fmt.Errorf("failed to update member: %w", err)
		}
		return s.events.Emit(ctx, model.EventMemberUpdated, member)
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// Delete removes the member together with its appointments, orders,
// medical records, notes and subscription.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.events.InTx(ctx, func(ctx context.Context) error {
		if err := s.repos.Members.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete member: %w", err)
		}
		return s.events.Emit(ctx, model.EventMemberDeleted, map[string]int64{"id": id})
	})
}

// Detail assembles the member composite view. Any failed lookup aborts the
// whole view; a missing member is a not-found error, never an empty shell.
func (s *Service) Detail(ctx context.Context, id int64) (*model.MemberDetail, error) {
	member, err := s.repos.Members.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	appointments, err := s.repos.Appointments.ListByMember(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	orders, err := s.repos.Orders.ListByMember(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	records, err := s.repos.MedicalRecords.ListByMember(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	for _, rec := range records {
		if err := s.openSummary(rec); err != nil {
			return nil, err
		}
	}

	notes, err := s.repos.Notes.ListByMember(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	now := s.now()
	for _, n := range notes {
		n.Stamp(now)
	}

	sub, err := s.repos.Subscriptions.GetByMember(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &model.MemberDetail{
		Member:         *member,
		Appointments:   nonNil(appointments),
		Orders:         nonNil(orders),
		MedicalRecords: nonNil(records),
		MemberNotes:    nonNil(notes),
		Subscription:   sub,
	}, nil
}

// AddNote appends a note with a server-assigned creation time.
func (s *Service) AddNote(ctx context.Context, memberID int64, req *model.MemberNoteRequest) (*model.MemberNote, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.BadRequest("note content is required", nil)
	}
	if err := s.ensureMember(ctx, memberID); err != nil {
		return nil, err
	}

	note := &model.MemberNote{MemberID: memberID}
	req.Apply(note)
	err := s.events.InTx(ctx, func(ctx context.Context) error {
		if err := s.repos.Notes.Create(ctx, note); err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}
		note.Stamp(s.now())
		return s.events.Emit(ctx, model.EventNoteCreated, note)
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote removes a note owned by memberID. A note that is absent or
// belongs to another member is not found.
func (s *Service) DeleteNote(ctx context.Context, memberID, noteID int64) error {
	return s.events.InTx(ctx, func(ctx context.Context) error {
		if err := s.repos.Notes.DeleteForMember(ctx, memberID, noteID); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}
		return s.events.Emit(ctx, model.EventNoteDeleted, map[string]int64{"memberId": memberID, "id": noteID})
	})
}

func (s *Service) AddMedicalRecord(ctx context.Context, memberID int64, req *model.MedicalRecordRequest) (*model.MedicalRecord, error) {
	if err := s.ensureMember(ctx, memberID); err != nil {
		return nil, err
	}

	record := &model.MedicalRecord{MemberID: memberID}
	req.Apply(record)

	plain := record.Summary
	if s.encryptor != nil {
		sealed, err := security.SealString(s.encryptor, plain)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt summary: %w", err)
		}
		record.Summary = sealed
	}

	if err := s.repos.MedicalRecords.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create medical record: %w", err)
	}
	record.Summary = plain
	return record, nil
}

func (s *Service) DeleteMedicalRecord(ctx context.Context, memberID, recordID int64) error {
	if err := s.repos.MedicalRecords.DeleteForMember(ctx, memberID, recordID); err != nil {
		return fmt.Errorf("failed to delete medical record: %w", err)
	}
	return nil
}

// PutSubscription creates the member's subscription or replaces it.
func (s *Service) PutSubscription(ctx context.Context, memberID int64, req *model.SubscriptionRequest) (*model.Subscription, error) {
	if err := s.ensureMember(ctx, memberID); err != nil {
		return nil, err
	}

	sub := &model.Subscription{MemberID: memberID}
	req.Apply(sub, s.now())
	if err := s.repos.Subscriptions.Upsert(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}
	return sub, nil
}

func (s *Service) DeleteSubscription(ctx context.Context, memberID int64) error {
	if err := s.repos.Subscriptions.DeleteByMember(ctx, memberID); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

func (s *Service) ensureMember(ctx context.Context, id int64) error {
	exists, err := s.repos.Members.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check member: %w", err)
	}
	if !exists {
		return apperrors.NotFound("member", nil)
	}
	return nil
}

func (s *Service) openSummary(rec *model.MedicalRecord) error {
	if s.encryptor == nil {
		return nil
	}
	plain, err := security.OpenString(s.encryptor, rec.Summary)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to decrypt medical record %d: %w", rec.ID, err))
	}
	rec.Summary = plain
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
