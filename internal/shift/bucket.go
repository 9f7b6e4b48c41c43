package shift

import (
	"fmt"

	"github.com/opsdesk/shiftdesk/internal/models"
)

// DefaultBuckets splits a duty window into three ordered segments. The first
// two get the floored third of the window; the last one is pinned to the
// window's true end and absorbs the rounding remainder.
func DefaultBuckets(team models.Team) []models.TimeBucket {
	length := team.Length()
	seg := length / 3
	if seg < 1 {
		seg = 1
	}

	start := team.StartMinute
	buckets := make([]models.TimeBucket, 0, 3)
	for i := 0; i < 3; i++ {
		end := (start + seg) % 1440
		if i == 2 {
			end = team.EndMinute
		}
		buckets = append(buckets, models.TimeBucket{
			ID:          fmt.Sprintf("b%d", i+1),
			StartMinute: start,
			EndMinute:   end,
		})
		start = end
	}
	return buckets
}

// ActiveBucket returns the bucket containing nowMinute, falling back to the
// first bucket when the tiling unexpectedly leaves a gap.
func ActiveBucket(nowMinute int, buckets []models.TimeBucket) models.TimeBucket {
	for _, b := range buckets {
		if Contains(nowMinute, b.StartMinute, b.EndMinute) {
			return b
		}
	}
	if len(buckets) > 0 {
		return buckets[0]
	}
	return models.TimeBucket{}
}
