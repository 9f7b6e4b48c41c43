package shift

import (
	"errors"
	"time"

	"github.com/opsdesk/shiftdesk/internal/models"
)

var ErrNoTeams = errors.New("no teams configured")

// MinuteOfDay returns t's minute since local midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Contains reports whether nowMinute falls inside the half-open window
// [start, end). end <= start means the window wraps past midnight.
func Contains(nowMinute, start, end int) bool {
	if end <= start {
		return nowMinute >= start || nowMinute < end
	}
	return nowMinute >= start && nowMinute < end
}

// Resolution is the outcome of one duty-window lookup.
type Resolution struct {
	Current     models.Team
	Next        models.Team
	SecondsLeft int
}

// Resolve picks the team whose duty window contains now. When no window
// matches, the first configured team is the deterministic fallback so a
// result always exists. Next is the team after Current in rotation order.
func Resolve(now time.Time, teams []models.Team) (Resolution, error) {
	if len(teams) == 0 {
		return Resolution{}, ErrNoTeams
	}
	nowMin := MinuteOfDay(now)

	idx := 0
	for i, t := range teams {
		if Contains(nowMin, t.StartMinute, t.EndMinute) {
			idx = i
			break
		}
	}

	current := teams[idx]
	next := teams[(idx+1)%len(teams)]

	var minutesLeft int
	if current.Wraps() && nowMin >= current.StartMinute {
		minutesLeft = (1440 - nowMin) + current.EndMinute
	} else {
		minutesLeft = current.EndMinute - nowMin
	}
	if minutesLeft < 0 {
		// Fallback team whose window does not actually contain now.
		minutesLeft = 0
	}
	secondsLeft := minutesLeft*60 - now.Second()
	if secondsLeft < 0 {
		secondsLeft = 0
	}

	return Resolution{Current: current, Next: next, SecondsLeft: secondsLeft}, nil
}
