package models

import "fmt"

// Team is one configured duty window in the rotation.
type Team struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	StartMinute int    `json:"start_minute"` // minutes since local midnight, 0-1439
	EndMinute   int    `json:"end_minute"`
}

// Wraps reports whether the duty window crosses midnight. A zero-length
// window counts as wrapping so it covers the full day instead of nothing.
func (t Team) Wraps() bool {
	return t.EndMinute <= t.StartMinute
}

// Length returns the window length in minutes, wrap-aware.
func (t Team) Length() int {
	if t.Wraps() {
		return 1440 - t.StartMinute + t.EndMinute
	}
	return t.EndMinute - t.StartMinute
}

func (t Team) StartString() string {
	return fmt.Sprintf("%02d:%02d", t.StartMinute/60, t.StartMinute%60)
}

func (t Team) EndString() string {
	return fmt.Sprintf("%02d:%02d", t.EndMinute/60, t.EndMinute%60)
}

// RosterMember is one active member of a team as reported by the roster directory.
type RosterMember struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
