package seed_test

import (
	"testing"
	"time"

	"github.com/rpggio/faultdesk/internal/domain/fault"
	"github.com/rpggio/faultdesk/internal/domain/query"
	"github.com/rpggio/faultdesk/internal/seed"
	"github.com/stretchr/testify/require"
)

func TestFaults_LoadIntoStore(t *testing.T) {
	now := time.Date(2024, 2, 15, 18, 0, 0, 0, time.UTC)
	store := fault.NewStore(fault.WithClock(func() time.Time { return now }))

	require.NoError(t, store.Load(seed.Faults(now), 0))
	snap := store.Snapshot()
	require.Len(t, snap.Records, 5)

	stats := query.Summarize(snap.Records, now)
	require.Equal(t, query.Stats{
		Total:      5,
		Pending:    2,
		InProgress: 2,
		Completed:  1,
		Critical:   1,
		Today:      2,
		Assigned:   3,
		Active:     4,
	}, stats)

	next, err := store.Create(fault.CreateRequest{
		Title:       "Kapı Arızası",
		Description: "Ana giriş kapısı kapanmıyor.",
		Priority:    fault.PriorityLow,
		Location:    "Ana Giriş",
		ReportedBy:  "Can Öztürk",
	})
	require.NoError(t, err)
	require.Equal(t, int64(6), next.ID)
}
