package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Weekday day of the week a recurring availability window applies to
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

// Weekdays in calendar order, Monday first
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf returns the weekday of the date in UTC
func WeekdayOf(date time.Time) Weekday {
	switch date.UTC().Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// IsValid returns true for MON..SUN
func (w Weekday) IsValid() bool {
	return w.Index() >= 0
}

// Index position in the week, Monday = 0; -1 for unknown values
func (w Weekday) Index() int {
	for i, d := range Weekdays {
		if d == w {
			return i
		}
	}
	return -1
}

// StaffAvailability recurring weekly window when a staff member can be booked
// The window is half-open: [StartTime, EndTime)
type StaffAvailability struct {
	ID        string
	StaffID   string
	Day       Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether two windows on the same day intersect
func (a *StaffAvailability) Overlaps(other *StaffAvailability) bool {
	return TimeRangesOverlap(a.StartTime, a.EndTime, other.StartTime, other.EndTime)
}

// AvailabilityUpdate partial update of a window, nil fields are left as is
type AvailabilityUpdate struct {
	StaffID   *string
	Day       *Weekday
	StartTime *types.TimeString
	EndTime   *types.TimeString
}

// AvailabilityFilter listing parameters for availability windows
type AvailabilityFilter struct {
	StaffID *string
	Day     *Weekday
	Skip    int
	Take    int
}
