package query_test

import (
	"testing"

	"github.com/rpggio/faultdesk/internal/domain/fault"
	"github.com/rpggio/faultdesk/internal/domain/query"
	"github.com/stretchr/testify/require"
)

func TestCache_ReusesResultsForSameVersion(t *testing.T) {
	cache, err := query.NewCache(query.NewEngine(), 8)
	require.NoError(t, err)

	snap := fault.Snapshot{Version: 1, Records: threeRecords()}
	cache.Observe(snap)

	first, err := cache.Query(snap, query.Spec{Status: "pending"})
	require.NoError(t, err)
	require.Equal(t, []int64{1}, ids(first))
	first[0].Title = "mutated"

	second, err := cache.Query(snap, query.Spec{Status: "pending"})
	require.NoError(t, err)
	require.Equal(t, "Pump overheating", second[0].Title)

	cache.Summarize(snap)
	require.Equal(t, 2, cache.Len())
}

func TestCache_PurgesOnNewVersion(t *testing.T) {
	store := fault.NewStore()
	cache, err := query.NewCache(query.NewEngine(), 0)
	require.NoError(t, err)
	store.Subscribe(cache.Observe)

	_, err = store.Create(fault.CreateRequest{
		Title:       "Pump overheating",
		Description: "Temp at 95C, needs urgent check",
		Priority:    fault.PriorityHigh,
		Location:    "Block A",
		ReportedBy:  "Mehmet",
	})
	require.NoError(t, err)

	got, err := cache.Query(store.Snapshot(), query.Spec{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 1, cache.Len())

	require.NoError(t, store.Remove(got[0].ID))
	require.Equal(t, 0, cache.Len())

	got, err = cache.Query(store.Snapshot(), query.Spec{})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestCache_InvalidSpecNotCached(t *testing.T) {
	cache, err := query.NewCache(query.NewEngine(), 4)
	require.NoError(t, err)

	_, err = cache.Query(fault.Snapshot{Version: 1}, query.Spec{SortBy: "nope"})
	require.ErrorIs(t, err, query.ErrInvalidSpec)
	require.Equal(t, 0, cache.Len())
}
