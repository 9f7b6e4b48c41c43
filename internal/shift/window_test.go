package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/shiftdesk/internal/models"
)

func TestContains_Boundaries(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		minute     int
		want       bool
	}{
		{"non-wrap inclusive start", 540, 1080, 540, true},
		{"non-wrap exclusive end", 540, 1080, 1080, false},
		{"non-wrap inside", 540, 1080, 800, true},
		{"non-wrap before", 540, 1080, 539, false},
		{"wrap inclusive start", 1320, 360, 1320, true},
		{"wrap exclusive end", 1320, 360, 360, false},
		{"wrap after midnight", 1320, 360, 60, true},
		{"wrap evening side", 1320, 360, 1439, true},
		{"wrap gap", 1320, 360, 720, false},
		{"zero-length covers everything", 600, 600, 600, true},
		{"zero-length covers everything 2", 600, 600, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.minute, tt.start, tt.end))
		})
	}
}

func manilaTime(t *testing.T, hour, min, sec int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	return time.Date(2026, 3, 14, hour, min, sec, 0, loc)
}

func threeTeams() []models.Team {
	return []models.Team{
		{ID: "day", Label: "Day", StartMinute: 9 * 60, EndMinute: 18 * 60},
		{ID: "swing", Label: "Swing", StartMinute: 18 * 60, EndMinute: 22 * 60},
		{ID: "night", Label: "Night", StartMinute: 22 * 60, EndMinute: 9 * 60},
	}
}

func TestResolve_BeforeWindowSelectsPriorTeam(t *testing.T) {
	// 08:30 is still inside the wrapped night window, not the day window
	// that starts at 09:00.
	now := manilaTime(t, 8, 30, 0)
	res, err := Resolve(now, threeTeams())
	require.NoError(t, err)

	assert.Equal(t, "night", res.Current.ID)
	assert.Equal(t, "day", res.Next.ID)
	// 30 minutes remain in the night window.
	assert.Equal(t, 30*60, res.SecondsLeft)
}

func TestResolve_SecondsLeftSubMinute(t *testing.T) {
	now := manilaTime(t, 8, 30, 45)
	res, err := Resolve(now, threeTeams())
	require.NoError(t, err)
	assert.Equal(t, 30*60-45, res.SecondsLeft)
}

func TestResolve_WrappedWindowEveningSide(t *testing.T) {
	now := manilaTime(t, 23, 0, 0)
	res, err := Resolve(now, threeTeams())
	require.NoError(t, err)

	assert.Equal(t, "night", res.Current.ID)
	// 22:00-09:00: from 23:00, one hour to midnight plus nine hours.
	assert.Equal(t, 10*60*60, res.SecondsLeft)
}

func TestResolve_CyclicNext(t *testing.T) {
	now := manilaTime(t, 19, 0, 0)
	res, err := Resolve(now, threeTeams())
	require.NoError(t, err)
	assert.Equal(t, "swing", res.Current.ID)
	assert.Equal(t, "night", res.Next.ID)
}

func TestResolve_NoMatchFallsBackToFirstTeam(t *testing.T) {
	teams := []models.Team{
		{ID: "a", StartMinute: 9 * 60, EndMinute: 12 * 60},
		{ID: "b", StartMinute: 13 * 60, EndMinute: 17 * 60},
	}
	now := manilaTime(t, 12, 30, 0)
	res, err := Resolve(now, teams)
	require.NoError(t, err)
	assert.Equal(t, "a", res.Current.ID)
	assert.Equal(t, "b", res.Next.ID)
	// Fallback window is already over; remaining time clamps to zero.
	assert.Equal(t, 0, res.SecondsLeft)
}

func TestResolve_NoTeams(t *testing.T) {
	_, err := Resolve(manilaTime(t, 12, 0, 0), nil)
	assert.ErrorIs(t, err, ErrNoTeams)
}
