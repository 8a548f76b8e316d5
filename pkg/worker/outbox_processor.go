package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
	"github.com/jwalitptl/club-admin-api/pkg/logger"
	"github.com/jwalitptl/club-admin-api/pkg/messaging"
	"github.com/jwalitptl/club-admin-api/pkg/metrics"
)

type OutboxProcessorConfig struct {
	Channel       string
	BatchSize     int
	PollInterval  time.Duration
	RetryAttempts int
	// RetryDelay is the first backoff; it doubles on every further attempt.
	RetryDelay time.Duration
}

func (c OutboxProcessorConfig) validate() error {
	switch {
	case c.Channel == "":
		return errors.New("channel is required")
	case c.BatchSize <= 0:
		return errors.New("batch size must be greater than 0")
	case c.PollInterval <= 0:
		return errors.New("poll interval must be greater than 0")
	case c.RetryAttempts <= 0:
		return errors.New("retry attempts must be greater than 0")
	case c.RetryDelay <= 0:
		return errors.New("retry delay must be greater than 0")
	}
	return nil
}

// OutboxProcessor relays recorded domain events to the broker. Each batch is
// claimed inside one transaction so concurrent relays never publish the same
// row, and status updates commit together with the claim.
type OutboxProcessor struct {
	repo    repository.OutboxRepository
	broker  messaging.Broker
	config  OutboxProcessorConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	broker messaging.Broker,
	config OutboxProcessorConfig,
	log *logger.Logger,
	m *metrics.Metrics,
) (*OutboxProcessor, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid outbox processor config: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	if m == nil {
		m = metrics.NewMetrics(nil, "club", "worker")
	}

	return &OutboxProcessor{
		repo:    repo,
		broker:  broker,
		config:  config,
		logger:  log,
		metrics: m,
		now:     time.Now,
	}, nil
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.logger.Info("Starting outbox processor", "channel", p.config.Channel)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Shutting down outbox processor")
			return
		case <-ticker.C:
			// Drain while full batches keep coming back.
			for {
				n, err := p.ProcessBatch(ctx)
				if err != nil {
					p.logger.Error(err, "Failed to process events")
					break
				}
				if n < p.config.BatchSize || ctx.Err() != nil {
					break
				}
			}
			p.updateQueueSize(ctx)
		}
	}
}

// ProcessBatch claims up to BatchSize due events, publishes them and records
// the outcome. It returns how many events were claimed.
func (p *OutboxProcessor) ProcessBatch(ctx context.Context) (int, error) {
	timer := prometheus.NewTimer(p.metrics.OutboxProcessingLatency)
	defer timer.ObserveDuration()

	tx, err := p.repo.BeginTx(ctx)
	if err != nil {
		p.metrics.DatabaseOperations.WithLabelValues("begin_tx", "error").Inc()
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	events, err := p.repo.GetPendingEventsWithLock(ctx, tx, p.config.BatchSize)
	p.metrics.DatabaseOperations.WithLabelValues("get_pending_events", metrics.Status(err)).Inc()
	if err != nil {
		return 0, fmt.Errorf("failed to get pending events: %w", err)
	}

	for _, event := range events {
		status, errMsg, retryAt := p.publish(ctx, event)

		err := p.repo.UpdateStatusTx(ctx, tx, event.ID, status, errMsg, retryAt)
		p.metrics.DatabaseOperations.WithLabelValues("update_status", metrics.Status(err)).Inc()
		if err != nil {
			return 0, fmt.Errorf("failed to update event %s: %w", event.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		p.metrics.DatabaseOperations.WithLabelValues("commit", "error").Inc()
		return 0, fmt.Errorf("failed to commit outbox batch: %w", err)
	}

	return len(events), nil
}

// publish sends one event and decides its next status.
func (p *OutboxProcessor) publish(ctx context.Context, event *model.OutboxEvent) (model.OutboxStatus, *string, *time.Time) {
	envelope := messaging.Envelope{
		ID:         event.ID.String(),
		Type:       event.EventType,
		Payload:    event.Payload,
		OccurredAt: event.CreatedAt,
	}

	start := p.now()
	err := p.broker.Publish(ctx, p.config.Channel, envelope)
	p.metrics.RedisLatency.Observe(p.now().Sub(start).Seconds())
	p.metrics.RedisOperations.WithLabelValues("publish", metrics.Status(err)).Inc()

	if err == nil {
		p.metrics.OutboxEventsProcessed.Inc()
		return model.OutboxStatusProcessed, nil, nil
	}

	errMsg := err.Error()
	attempt := event.RetryCount + 1
	if attempt >= p.config.RetryAttempts {
		p.metrics.OutboxEventsFailed.Inc()
		p.logger.Error(err, "Giving up on event",
			"event_id", event.ID.String(),
			"event_type", event.EventType,
			"attempts", attempt)
		return model.OutboxStatusFailed, &errMsg, nil
	}

	p.metrics.OutboxRetries.WithLabelValues(event.EventType).Inc()
	retryAt := p.now().Add(p.backoff(event.RetryCount))
	p.logger.Warn("Publish failed, will retry",
		"event_id", event.ID.String(),
		"event_type", event.EventType,
		"retry_at", retryAt,
		"error", errMsg)
	return model.OutboxStatusRetry, &errMsg, &retryAt
}

func (p *OutboxProcessor) backoff(retries int) time.Duration {
	if retries > 10 {
		retries = 10
	}
	return p.config.RetryDelay << retries
}

func (p *OutboxProcessor) updateQueueSize(ctx context.Context) {
	n, err := p.repo.CountPending(ctx)
	if err != nil {
		p.logger.Error(err, "Failed to count pending events")
		return
	}
	p.metrics.OutboxQueueSize.Set(float64(n))
}
