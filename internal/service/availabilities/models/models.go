package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// CreateAvailabilityRequest запрос на создание окна доступности
type CreateAvailabilityRequest struct {
	StaffID   string `json:"staffId"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// UpdateAvailabilityRequest частичное обновление окна
type UpdateAvailabilityRequest struct {
	StaffID   *string `json:"staffId,omitempty"`
	Day       *string `json:"day,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

// ListAvailabilitiesRequest параметры выборки окон
type ListAvailabilitiesRequest struct {
	StaffID *string
	Day     *string
	Skip    *int
	Take    *int
}

// Response модели

// AvailabilityResponse окно доступности
type AvailabilityResponse struct {
	ID        string    `json:"id"`
	StaffID   string    `json:"staffId"`
	Day       string    `json:"day"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AvailabilityListResponse страница окон доступности
type AvailabilityListResponse struct {
	Items []AvailabilityResponse `json:"items"`
	Total int                    `json:"total"`
	Skip  int                    `json:"skip"`
	Take  int                    `json:"take"`
}

// DeleteAvailabilityResponse результат удаления окна
type DeleteAvailabilityResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// Методы конвертации

// FromDomainAvailability конвертирует domain модель в DTO
func FromDomainAvailability(a *domain.StaffAvailability) *AvailabilityResponse {
	if a == nil {
		return nil
	}
	return &AvailabilityResponse{
		ID:        a.ID,
		StaffID:   a.StaffID,
		Day:       string(a.Day),
		StartTime: a.StartTime.String(),
		EndTime:   a.EndTime.String(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// FromDomainAvailabilityList конвертирует список окон в DTO
func FromDomainAvailabilityList(items []*domain.StaffAvailability) []AvailabilityResponse {
	resp := make([]AvailabilityResponse, 0, len(items))
	for _, a := range items {
		resp = append(resp, *FromDomainAvailability(a))
	}
	return resp
}
