package domain

import "time"

// Service salon service from the catalog
type Service struct {
	ID          string
	Name        string
	Description *string
	DurationMin int
	PriceCents  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ServiceUpdate partial update of a service, nil fields are left as is
type ServiceUpdate struct {
	Name        *string
	Description *string
	DurationMin *int
	PriceCents  *int
}

// ServiceOrderField column the catalog can be sorted by
type ServiceOrderField string

const (
	ServiceOrderByCreatedAt   ServiceOrderField = "createdAt"
	ServiceOrderByName        ServiceOrderField = "name"
	ServiceOrderByPriceCents  ServiceOrderField = "priceCents"
	ServiceOrderByDurationMin ServiceOrderField = "durationMin"
)

// IsValid returns true for supported sort fields
func (f ServiceOrderField) IsValid() bool {
	switch f {
	case ServiceOrderByCreatedAt, ServiceOrderByName, ServiceOrderByPriceCents, ServiceOrderByDurationMin:
		return true
	}
	return false
}

// SortDirection ascending or descending order
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// IsValid returns true for asc/desc
func (d SortDirection) IsValid() bool {
	return d == SortAsc || d == SortDesc
}

// ServiceFilter catalog listing parameters
type ServiceFilter struct {
	Search   *string // case-insensitive substring of name
	Skip     int
	Take     int
	OrderBy  ServiceOrderField
	OrderDir SortDirection
}
