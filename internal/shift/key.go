package shift

import (
	"fmt"
	"time"

	"github.com/opsdesk/shiftdesk/internal/models"
)

// ShiftKeyFor derives the stable identifier for the shift instance team is
// running at now. For a window that wraps past midnight, the portion after
// midnight anchors to the previous calendar date so one overnight shift keeps
// a single key from its evening start through its morning end.
func ShiftKeyFor(now time.Time, team models.Team) string {
	anchor := now
	if team.Wraps() && MinuteOfDay(now) < team.EndMinute {
		anchor = now.AddDate(0, 0, -1)
	}
	return fmt.Sprintf("%s|%s|%s", team.ID, anchor.Format("2006-01-02"), team.StartString())
}

// CheckRotation compares a freshly derived key against the pointer state and,
// when they differ, promotes current to previous. This is the only place
// PreviousKey is ever written.
func CheckRotation(state models.ShiftPointerState, newKey string, nowMS int64) (bool, models.ShiftPointerState) {
	if state.CurrentKey == newKey {
		return false, state
	}
	return true, models.ShiftPointerState{
		CurrentKey:   newKey,
		PreviousKey:  state.CurrentKey,
		LastChangeAt: nowMS,
	}
}
