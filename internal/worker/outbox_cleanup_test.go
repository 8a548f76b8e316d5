package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/club-admin-api/internal/model"
)

type fakeOutboxRepo struct {
	deleted int64
	err     error
	before  time.Time
}

func (r *fakeOutboxRepo) Create(context.Context, *model.OutboxEvent) error { return nil }
func (r *fakeOutboxRepo) BeginTx(context.Context) (*sqlx.Tx, error)        { return nil, nil }
func (r *fakeOutboxRepo) GetPendingEventsWithLock(context.Context, *sqlx.Tx, int) ([]*model.OutboxEvent, error) {
	return nil, nil
}
func (r *fakeOutboxRepo) UpdateStatusTx(context.Context, *sqlx.Tx, uuid.UUID, model.OutboxStatus, *string, *time.Time) error {
	return nil
}
func (r *fakeOutboxRepo) CountPending(context.Context) (int64, error) { return 0, nil }

func (r *fakeOutboxRepo) DeleteProcessedBefore(_ context.Context, before time.Time) (int64, error) {
	r.before = before
	return r.deleted, r.err
}

func TestCleanupUsesRetentionCutoff(t *testing.T) {
	repo := &fakeOutboxRepo{deleted: 12}
	w := NewOutboxCleanupWorker(repo, 48*time.Hour, time.Hour, nil, nil)
	now := time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	n, err := w.Cleanup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), repo.before)
}

func TestCleanupWrapsStoreError(t *testing.T) {
	repo := &fakeOutboxRepo{err: errors.New("connection reset")}
	w := NewOutboxCleanupWorker(repo, time.Hour, time.Hour, nil, nil)

	_, err := w.Cleanup(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to cleanup outbox events")
}
