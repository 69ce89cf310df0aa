package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/faultdesk/internal/domain/fault"
	"github.com/rpggio/faultdesk/internal/repository"
	"github.com/stretchr/testify/require"
)

func sampleFault(id int64) *fault.Fault {
	created := time.Date(2024, 2, 15, 10, 30, 0, 0, time.UTC)
	return &fault.Fault{
		ID:          id,
		Title:       "Elektrik Kesintisi",
		Description: "A Blok 2. katta elektrik kesintisi var.",
		Status:      fault.StatusPending,
		Priority:    fault.PriorityCritical,
		Location:    "A Blok - 2. Kat",
		ReportedBy:  "Ahmet Yılmaz",
		Photos:      []string{"file:///photos/1.jpg", "file:///photos/2.jpg"},
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestFaultRepository_SaveLoadAll(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewFaultRepository(db)

	rec := sampleFault(2)
	require.NoError(t, repo.Save(ctx, rec))
	require.NoError(t, repo.Save(ctx, sampleFault(1)))

	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int64(1), got[0].ID)
	require.Equal(t, int64(2), got[1].ID)

	loaded := got[1]
	require.Equal(t, rec.Title, loaded.Title)
	require.Equal(t, rec.Status, loaded.Status)
	require.Equal(t, rec.Priority, loaded.Priority)
	require.Equal(t, rec.Photos, loaded.Photos)
	require.True(t, rec.CreatedAt.Equal(loaded.CreatedAt))
	require.Nil(t, loaded.CompletedAt)
	require.Empty(t, loaded.AssignedTo)
}

func TestFaultRepository_SaveUpserts(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewFaultRepository(db)

	rec := sampleFault(1)
	require.NoError(t, repo.Save(ctx, rec))

	done := rec.CreatedAt.Add(time.Hour)
	rec.Status = fault.StatusCompleted
	rec.AssignedTo = "Mehmet Demir"
	rec.UpdatedAt = done
	rec.CompletedAt = &done
	rec.Photos = nil
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, fault.StatusCompleted, got[0].Status)
	require.Equal(t, "Mehmet Demir", got[0].AssignedTo)
	require.Nil(t, got[0].Photos)
	require.NotNil(t, got[0].CompletedAt)
	require.True(t, done.Equal(*got[0].CompletedAt))
	require.True(t, done.Equal(got[0].UpdatedAt))
}

func TestFaultRepository_SaveRejectsInconsistentCompletion(t *testing.T) {
	db := NewTestDB(t)
	repo := NewFaultRepository(db)

	rec := sampleFault(1)
	rec.Status = fault.StatusCompleted
	err := repo.Save(context.Background(), rec)
	require.ErrorIs(t, err, repository.ErrInvalidInput)

	require.ErrorIs(t, repo.Save(context.Background(), sampleFault(0)), repository.ErrInvalidInput)
}

func TestFaultRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewFaultRepository(db)

	require.NoError(t, repo.Save(ctx, sampleFault(1)))
	require.NoError(t, repo.Delete(ctx, 1))
	require.ErrorIs(t, repo.Delete(ctx, 1), repository.ErrNotFound)

	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFaultRepository_LastIDSurvivesDelete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewFaultRepository(db)

	id, err := repo.LastID(ctx)
	require.NoError(t, err)
	require.Zero(t, id)

	for _, id := range []int64{1, 2, 3} {
		require.NoError(t, repo.Save(ctx, sampleFault(id)))
	}
	require.NoError(t, repo.Delete(ctx, 3))

	id, err = repo.LastID(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), id)

	// Updating an existing row does not move the sequence.
	rec := sampleFault(1)
	rec.Title = "Elektrik Kesintisi Devam Ediyor"
	require.NoError(t, repo.Save(ctx, rec))
	id, err = repo.LastID(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), id)
}

func TestFaultRepository_RestoreDoesNotReuseDeletedID(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewFaultRepository(db)

	store := fault.NewStore()
	store.Subscribe(fault.NewSyncer(repo, nil).Observe)
	req := fault.CreateRequest{
		Title:       "Pompa Arızası",
		Description: "Hidrofor pompası sürekli çalışıyor.",
		Priority:    fault.PriorityHigh,
		Location:    "Bodrum Kat",
		ReportedBy:  "Ayşe Kaya",
	}
	first, err := store.Create(req)
	require.NoError(t, err)
	require.NoError(t, store.Remove(first.ID))

	restored := fault.NewStore()
	n, err := fault.NewSyncer(repo, nil).Restore(ctx, restored)
	require.NoError(t, err)
	require.Zero(t, n)

	next, err := restored.Create(req)
	require.NoError(t, err)
	require.Equal(t, first.ID+1, next.ID)
}

func TestFaultRepository_RestoresIntoStore(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewFaultRepository(db)

	store := fault.NewStore()
	syncer := fault.NewSyncer(repo, nil)
	store.Subscribe(syncer.Observe)

	created, err := store.Create(fault.CreateRequest{
		Title:       "Su Kaçağı",
		Description: "Bodrum katta su kaçağı tespit edildi.",
		Priority:    fault.PriorityHigh,
		Location:    "Bodrum Kat",
		ReportedBy:  "Ayşe Kaya",
	})
	require.NoError(t, err)
	_, err = store.ChangeStatus(created.ID, fault.StatusCompleted, "Ali")
	require.NoError(t, err)

	restored := fault.NewStore()
	n, err := fault.NewSyncer(repo, nil).Restore(ctx, restored)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	rec, ok := restored.GetByID(created.ID)
	require.True(t, ok)
	require.Equal(t, fault.StatusCompleted, rec.Status)
	require.Equal(t, "Ali", rec.AssignedTo)
	require.NotNil(t, rec.CompletedAt)

	next, err := restored.Create(fault.CreateRequest{
		Title:       "Kapı Kilidi",
		Description: "Ana giriş kapısının kilidi bozuk.",
		Priority:    fault.PriorityLow,
		Location:    "Ana Giriş",
		ReportedBy:  "Ayşe Kaya",
	})
	require.NoError(t, err)
	require.Equal(t, created.ID+1, next.ID)
}
