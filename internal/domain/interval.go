package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Intervals are half-open: [start, end). Touching intervals do not overlap,
// e.g. 09:00-09:30 and 09:30-10:00.

// TimeRangesOverlap reports whether [aStart, aEnd) and [bStart, bEnd) intersect
func TimeRangesOverlap(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}

// InstantsOverlap reports whether [aStart, aEnd) and [bStart, bEnd) intersect
func InstantsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DayBounds returns [00:00, next 00:00) of the date in UTC
func DayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
