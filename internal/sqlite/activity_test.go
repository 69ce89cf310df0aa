package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/faultdesk/internal/domain/activity"
	"github.com/rpggio/faultdesk/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	at := time.Date(2024, 2, 15, 10, 30, 0, 0, time.UTC)
	entry1 := &activity.Entry{
		ID:        uuid.NewString(),
		FaultID:   1,
		Type:      activity.TypeFaultCreated,
		Actor:     "Ahmet Yılmaz",
		Summary:   "fault reported: Elektrik Kesintisi",
		CreatedAt: at,
	}
	entry2 := &activity.Entry{
		ID:        uuid.NewString(),
		FaultID:   1,
		Type:      activity.TypeStatusChanged,
		Actor:     "Mehmet Demir",
		Summary:   "status changed from pending to in_progress",
		CreatedAt: at.Add(time.Minute),
	}

	require.NoError(t, repo.Log(ctx, entry1))
	require.NoError(t, repo.Log(ctx, entry2))

	faultID := int64(1)
	entries, err := repo.List(ctx, activity.ListOptions{FaultID: &faultID})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entry2.ID, entries[0].ID)
	require.Equal(t, entry2.Type, entries[0].Type)
	require.Equal(t, entry1.Actor, entries[1].Actor)
	require.True(t, at.Equal(entries[1].CreatedAt))
}

func TestActivityRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	at := time.Date(2024, 2, 15, 10, 30, 0, 0, time.UTC)
	for i, typ := range []activity.Type{
		activity.TypeFaultCreated,
		activity.TypeNoteAdded,
		activity.TypeNoteAdded,
		activity.TypeFaultDeleted,
	} {
		require.NoError(t, repo.Log(ctx, &activity.Entry{
			ID:        uuid.NewString(),
			FaultID:   int64(1 + i%2),
			Type:      typ,
			Summary:   string(typ),
			CreatedAt: at.Add(time.Duration(i) * time.Minute),
		}))
	}

	noteType := activity.TypeNoteAdded
	entries, err := repo.List(ctx, activity.ListOptions{Type: &noteType})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	faultID := int64(2)
	entries, err = repo.List(ctx, activity.ListOptions{FaultID: &faultID})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	entries, err = repo.List(ctx, activity.ListOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, activity.TypeNoteAdded, entries[0].Type)

	entries, err = repo.List(ctx, activity.ListOptions{Offset: 3})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, activity.TypeFaultCreated, entries[0].Type)
}

func TestActivityRepository_LogRejectsDuplicates(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	entry := &activity.Entry{ID: uuid.NewString(), FaultID: 1, Type: activity.TypeNoteAdded, Summary: "note"}
	require.NoError(t, repo.Log(ctx, entry))
	require.ErrorIs(t, repo.Log(ctx, entry), repository.ErrInvalidInput)
	require.ErrorIs(t, repo.Log(ctx, &activity.Entry{Type: activity.TypeNoteAdded}), repository.ErrInvalidInput)
}
