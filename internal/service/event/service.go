package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
	"github.com/jwalitptl/club-admin-api/pkg/logger"
)

// Recorder is what mutating services use to publish domain events. The
// business write and its Emit go inside one InTx call, so the event is stored
// if and only if the change commits.
type Recorder interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
	Emit(ctx context.Context, eventType string, payload interface{}) error
}

type EventService struct {
	outboxRepo repository.OutboxRepository
	tx         repository.Transactor
	logger     *logger.Logger
}

func NewEventService(outboxRepo repository.OutboxRepository, tx repository.Transactor, log *logger.Logger) *EventService {
	if log == nil {
		log = logger.Nop()
	}
	return &EventService{
		outboxRepo: outboxRepo,
		tx:         tx,
		logger:     log,
	}
}

func (s *EventService) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.InTx(ctx, fn)
}

// Emit writes the event to the outbox, on the caller's transaction when ctx
// carries one.
func (s *EventService) Emit(ctx context.Context, eventType string, payload interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	event := &model.OutboxEvent{
		EventType: eventType,
		Payload:   payloadJSON,
	}
	if err := s.outboxRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}

	s.logger.Debug("event recorded", "event_id", event.ID.String(), "event_type", eventType)
	return nil
}

// Nop discards events and runs fn without a transaction.
type Nop struct{}

func (Nop) InTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func (Nop) Emit(context.Context, string, interface{}) error { return nil }
