package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// IsValid returns true for known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Appointment booked service visit
type Appointment struct {
	ID         string
	StartAt    time.Time
	EndAt      time.Time
	Status     AppointmentStatus
	ServiceID  string
	CustomerID string
	StaffID    *string // nil until a staff member is assigned
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive returns true if the appointment still blocks the staff member's time
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// BelongsTo returns true if the user is the customer of the appointment
func (a *Appointment) BelongsTo(userID string) bool {
	return a.CustomerID == userID
}

// AppointmentUpdate partial update of an appointment, nil fields are left as is
type AppointmentUpdate struct {
	StartAt    *time.Time
	EndAt      *time.Time
	Status     *AppointmentStatus
	ServiceID  *string
	CustomerID *string
	StaffID    *string
}

// AppointmentOrderField column appointments can be sorted by
type AppointmentOrderField string

const (
	AppointmentOrderByStartAt   AppointmentOrderField = "startAt"
	AppointmentOrderByCreatedAt AppointmentOrderField = "createdAt"
)

// IsValid returns true for supported sort fields
func (f AppointmentOrderField) IsValid() bool {
	return f == AppointmentOrderByStartAt || f == AppointmentOrderByCreatedAt
}

// AppointmentFilter listing parameters for appointments
type AppointmentFilter struct {
	CustomerID *string
	StaffID    *string
	ServiceID  *string
	Status     *AppointmentStatus
	StartFrom  *time.Time // startAt >= StartFrom
	EndTo      *time.Time // endAt <= EndTo
	Skip       int
	Take       int
	OrderBy    AppointmentOrderField
	OrderDir   SortDirection
}
