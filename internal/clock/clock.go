package clock

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/opsdesk/shiftdesk/internal/models"
)

const (
	// epochFloorMS is the earliest override base accepted: 2020-01-01T00:00:00Z.
	epochFloorMS = int64(1577836800000)
	// maxFutureMS caps how far ahead of real time an override base may sit.
	maxFutureMS = int64(366 * 24 * time.Hour / time.Millisecond)
)

// EffectiveNow resolves the effective "now" in epoch milliseconds under an
// optional clock override. It never fails: any malformed override degrades to
// real time. The returned bool reports that the override's anchor was repaired
// in place and should be persisted by the caller.
func EffectiveNow(ov *models.ClockOverride, realNowMS int64) (int64, bool) {
	if ov == nil || !ov.Enabled {
		return realNowMS, false
	}
	if ov.BaseMS < epochFloorMS || ov.BaseMS > realNowMS+maxFutureMS {
		return realNowMS, false
	}
	if ov.Freeze {
		return ov.BaseMS, false
	}
	repaired := false
	if ov.AnchorMS <= 0 || ov.AnchorMS > realNowMS {
		ov.AnchorMS = realNowMS
		repaired = true
	}
	elapsed := realNowMS - ov.AnchorMS
	if elapsed < 0 {
		elapsed = 0
	}
	return ov.BaseMS + elapsed, repaired
}

// OverrideSource loads and stores the shared clock override document.
type OverrideSource interface {
	LoadOverride(ctx context.Context) (*models.ClockOverride, error)
	SaveOverride(ctx context.Context, ov *models.ClockOverride) error
}

// Clock resolves "now" in the organization's time zone, honoring an
// operator-configured override when one applies to the caller.
type Clock struct {
	loc       *time.Location
	overrides OverrideSource
	logger    *zap.Logger

	// realNow is swappable in tests.
	realNow func() time.Time
}

func New(loc *time.Location, overrides OverrideSource, logger *zap.Logger) *Clock {
	return &Clock{
		loc:       loc,
		overrides: overrides,
		logger:    logger,
		realNow:   time.Now,
	}
}

// Now returns the effective wall-clock time for actorID in the org time zone.
// An actor-scoped override applies only to the actor that set it; a global
// override applies to everyone, actorID 0 (the system) included.
func (c *Clock) Now(ctx context.Context, actorID int) time.Time {
	real := c.realNow()
	ov, err := c.overrides.LoadOverride(ctx)
	if err != nil {
		// Fail-open: a broken override store must never stop time.
		c.logger.Warn("clock override load failed", zap.Error(err))
		return real.In(c.loc)
	}
	if ov != nil && ov.Enabled && ov.Scope == models.ScopeActor && ov.ActorID != actorID {
		return real.In(c.loc)
	}
	effMS, repaired := EffectiveNow(ov, real.UnixMilli())
	if repaired {
		if err := c.overrides.SaveOverride(ctx, ov); err != nil {
			c.logger.Warn("clock override anchor repair not persisted", zap.Error(err))
		}
	}
	return time.UnixMilli(effMS).In(c.loc)
}

// Location returns the organization's time zone.
func (c *Clock) Location() *time.Location {
	return c.loc
}
