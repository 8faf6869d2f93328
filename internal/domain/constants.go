package domain

// Slot engine defaults
const (
	DefaultStepMinutes   = 15
	MinStepMinutes       = 5
	MaxStepMinutes       = MinutesPerDay
	DefaultBufferMinutes = 0
	MaxBufferMinutes     = MinutesPerDay
	MinutesPerDay        = 24 * 60
)

// Pagination
const (
	DefaultTake = 20
	MaxTake     = 100
)

// Business validation constants
const (
	MaxServiceNameLength        = 120
	MaxServiceDescriptionLength = 2000
	MinServiceDurationMin       = 1
	MaxServiceDurationMin       = MinutesPerDay
	MaxNameLength               = 100
	MaxPhoneLength              = 32
)

// Time format constants
const (
	TimeFormat = "15:04"                    // HH:MM
	DateFormat = "2006-01-02"               // YYYY-MM-DD
	ISOFormat  = "2006-01-02T15:04:05.000Z" // UTC instant with milliseconds
)
