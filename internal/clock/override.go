package clock

import "github.com/opsdesk/shiftdesk/internal/models"

// ApplyOverrideUpdate merges an operator's override update over the previous
// record and settles the anchor. The anchor is recomputed only when the
// override is freshly enabled, its base changes, or it transitions from
// frozen to running; otherwise it is preserved so running mode keeps
// advancing continuously instead of jumping.
func ApplyOverrideUpdate(prev, next *models.ClockOverride, realNowMS int64) *models.ClockOverride {
	if next == nil {
		return prev
	}
	merged := *next
	if prev == nil {
		prev = &models.ClockOverride{}
	}

	freshlyEnabled := merged.Enabled && !prev.Enabled
	baseChanged := merged.BaseMS != prev.BaseMS
	unfrozen := prev.Freeze && !merged.Freeze

	if freshlyEnabled || baseChanged || unfrozen {
		merged.AnchorMS = realNowMS
	} else {
		merged.AnchorMS = prev.AnchorMS
	}
	return &merged
}
