package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/shiftdesk/internal/models"
)

func TestEnsureTable_SeedsNewTable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	table, rotated, err := f.tables.EnsureTable(ctx, at(10, 0), dayTeam())
	require.NoError(t, err)
	assert.True(t, rotated) // first resolution ever is a rotation from nothing

	assert.Equal(t, "day|2026-03-14|09:00", table.Meta.ShiftKey)
	assert.Equal(t, "day", table.Meta.TeamID)
	assert.Len(t, table.Buckets, 3)
	assert.Equal(t, f.roster.members, table.Members)
	assert.Empty(t, table.Assignments)
	assert.Empty(t, table.Counts)

	entry := f.audit.waitFor(t, "shift_rotation")
	assert.Equal(t, "day", entry.TeamID)
	assert.Equal(t, "day|2026-03-14|09:00", entry.TargetID)

	pointer, err := f.docs.LoadPointer(ctx)
	require.NoError(t, err)
	assert.Equal(t, table.Meta.ShiftKey, pointer.CurrentKey)
	assert.Empty(t, pointer.PreviousKey)
}

func TestEnsureTable_UnchangedRosterWritesNothing(t *testing.T) {
	f := newFixture(t)

	mustEnsure(t, f, at(10, 0), dayTeam())
	before := f.kv.setCount()

	table, rotated, err := f.tables.EnsureTable(context.Background(), at(10, 1), dayTeam())
	require.NoError(t, err)
	assert.False(t, rotated)
	assert.Equal(t, f.roster.members, table.Members)
	assert.Equal(t, before, f.kv.setCount())
}

func TestEnsureTable_RosterChangeKeepsHistoricalCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	table := mustEnsure(t, f, at(10, 0), dayTeam())
	_, err := f.ledger.Assign(ctx, at(10, 5), table, 2, "b1", "INC100", "printer on fire", Actor{ID: 1, Name: "Alice Reyes"})
	require.NoError(t, err)

	// Ben leaves the roster; Carla joins.
	f.roster.set([]models.RosterMember{
		{ID: 1, Name: "Alice Reyes", Username: "alice", Role: "lead"},
		{ID: 3, Name: "Carla Dizon", Username: "carla", Role: "member"},
	})

	refreshed := mustEnsure(t, f, at(10, 10), dayTeam())
	ids := []int{}
	for _, m := range refreshed.Members {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int{1, 3}, ids)

	// Ben's counters and assignment survive by id.
	assert.Equal(t, 1, refreshed.Counts[2]["b1"])
	require.Len(t, refreshed.Assignments, 1)
	assert.Equal(t, 2, refreshed.Assignments[0].AssigneeID)
}

func TestEnsureTable_RotationPromotesPointer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	day := mustEnsure(t, f, at(10, 0), dayTeam())

	table, rotated, err := f.tables.EnsureTable(ctx, at(19, 0), swingTeam())
	require.NoError(t, err)
	assert.True(t, rotated)
	assert.Equal(t, "swing|2026-03-14|18:00", table.Meta.ShiftKey)

	pointer, err := f.docs.LoadPointer(ctx)
	require.NoError(t, err)
	assert.Equal(t, table.Meta.ShiftKey, pointer.CurrentKey)
	assert.Equal(t, day.Meta.ShiftKey, pointer.PreviousKey)
	assert.Equal(t, at(19, 0).UnixMilli(), pointer.LastChangeAt)

	previous, err := f.tables.PreviousTable(ctx)
	require.NoError(t, err)
	require.NotNil(t, previous)
	assert.Equal(t, day.Meta.ShiftKey, previous.Meta.ShiftKey)
}

func TestEnsureTable_UsesConfiguredBuckets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	configured := []models.TimeBucket{
		{ID: "early", StartMinute: 9 * 60, EndMinute: 13 * 60},
		{ID: "late", StartMinute: 13 * 60, EndMinute: 18 * 60},
	}
	require.NoError(t, f.docs.SaveBucketConfig(ctx, "day", configured))

	table := mustEnsure(t, f, at(10, 0), dayTeam())
	assert.Equal(t, configured, table.Buckets)
}

func TestEnsureTable_RosterFailureOnRefreshIsNonFatal(t *testing.T) {
	f := newFixture(t)

	table := mustEnsure(t, f, at(10, 0), dayTeam())

	f.roster.err = assert.AnError
	refreshed, _, err := f.tables.EnsureTable(context.Background(), at(10, 5), dayTeam())
	require.NoError(t, err)
	assert.Equal(t, table.Members, refreshed.Members)
}

func TestPreviousTable_NoneRetained(t *testing.T) {
	f := newFixture(t)
	previous, err := f.tables.PreviousTable(context.Background())
	require.NoError(t, err)
	assert.Nil(t, previous)
}
