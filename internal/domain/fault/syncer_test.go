package fault_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/faultdesk/internal/domain/fault"
	"github.com/rpggio/faultdesk/internal/repository"
	"github.com/rpggio/faultdesk/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSyncer_MirrorsMutations(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	repo := &mocks.FaultRepository{}
	syncer := fault.NewSyncer(repo, nil)
	store.Subscribe(syncer.Observe)

	repo.On("Save", ctx, mock.MatchedBy(func(rec *fault.Fault) bool {
		return rec.ID == 1 && rec.Status == fault.StatusPending
	})).Return(nil).Once()
	repo.On("Save", ctx, mock.MatchedBy(func(rec *fault.Fault) bool {
		return rec.ID == 1 && rec.Status == fault.StatusInProgress && rec.AssignedTo == "Ahmet"
	})).Return(nil).Once()
	repo.On("Delete", ctx, int64(1)).Return(nil).Once()

	rec, err := store.Create(pumpRequest())
	require.NoError(t, err)
	_, err = store.ChangeStatus(rec.ID, fault.StatusInProgress, "Ahmet")
	require.NoError(t, err)
	require.NoError(t, store.Remove(rec.ID))

	repo.AssertExpectations(t)
}

func TestSyncer_RepositoryFailureDoesNotAffectStore(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	repo := &mocks.FaultRepository{}
	syncer := fault.NewSyncer(repo, nil)
	store.Subscribe(syncer.Observe)

	repo.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))
	repo.On("Delete", ctx, mock.Anything).Return(repository.ErrNotFound)

	rec, err := store.Create(pumpRequest())
	require.NoError(t, err)
	require.EqualError(t, syncer.Err(), "disk full")

	// A delete of a row that never reached the database counts as stored.
	require.NoError(t, store.Remove(rec.ID))
	require.NoError(t, syncer.Err())
	require.Empty(t, store.Snapshot().Records)
}

func TestSyncer_Restore(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	repo := &mocks.FaultRepository{}
	syncer := fault.NewSyncer(repo, nil)
	store.Subscribe(syncer.Observe)

	persisted := []fault.Fault{{
		ID:          7,
		Title:       "Asansör Arızası",
		Description: "A Blok asansörü 2. katta sıkışmış durumda.",
		Status:      fault.StatusPending,
		Priority:    fault.PriorityCritical,
		Location:    "A Blok - Asansör 1",
		ReportedBy:  "Zeynep",
	}}
	repo.On("LoadAll", ctx).Return(persisted, nil)
	repo.On("LastID", ctx).Return(int64(9), nil)

	n, err := syncer.Restore(ctx, store)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, ok := store.GetByID(7)
	require.True(t, ok)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	require.NoError(t, syncer.Err())

	// Ids 8 and 9 belonged to faults deleted before the restart.
	repo.On("Save", ctx, mock.Anything).Return(nil).Once()
	next, err := store.Create(pumpRequest())
	require.NoError(t, err)
	require.Equal(t, int64(10), next.ID)
}

func TestSyncer_RestoreEmptyKeepsCounter(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	repo := &mocks.FaultRepository{}
	syncer := fault.NewSyncer(repo, nil)

	repo.On("LoadAll", ctx).Return(nil, nil)
	repo.On("LastID", ctx).Return(int64(4), nil)

	n, err := syncer.Restore(ctx, store)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Zero(t, store.Snapshot().Version)

	rec, err := store.Create(pumpRequest())
	require.NoError(t, err)
	require.Equal(t, int64(5), rec.ID)
}

func TestSyncer_RestoreFailures(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	repo := &mocks.FaultRepository{}

	repo.On("LoadAll", ctx).Return(nil, nil)
	repo.On("LastID", ctx).Return(int64(0), errors.New("locked"))

	_, err := fault.NewSyncer(repo, nil).Restore(ctx, store)
	require.EqualError(t, err, "locked")
}
