package domain

import "time"

// Slot computed bookable interval for a staff member, never persisted
type Slot struct {
	StaffID string
	Start   time.Time
	End     time.Time
}
