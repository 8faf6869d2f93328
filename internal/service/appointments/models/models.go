package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// CreateAppointmentRequest запрос на создание записи
// Время в формате RFC 3339
type CreateAppointmentRequest struct {
	StartAt    string  `json:"startAt"`
	EndAt      string  `json:"endAt"`
	ServiceID  string  `json:"serviceId"`
	CustomerID string  `json:"customerId"`
	StaffID    *string `json:"staffId,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// UpdateAppointmentRequest частичное обновление записи
type UpdateAppointmentRequest struct {
	StartAt    *string `json:"startAt,omitempty"`
	EndAt      *string `json:"endAt,omitempty"`
	ServiceID  *string `json:"serviceId,omitempty"`
	CustomerID *string `json:"customerId,omitempty"`
	StaffID    *string `json:"staffId,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// ListAppointmentsRequest параметры выборки записей
type ListAppointmentsRequest struct {
	CustomerID *string
	StaffID    *string
	ServiceID  *string
	Status     *string
	StartFrom  *string
	EndTo      *string
	Skip       *int
	Take       *int
	OrderBy    *string
	OrderDir   *string
}

// Response модели

// AppointmentResponse запись на услугу
type AppointmentResponse struct {
	ID         string    `json:"id"`
	StartAt    string    `json:"startAt"`
	EndAt      string    `json:"endAt"`
	Status     string    `json:"status"`
	ServiceID  string    `json:"serviceId"`
	CustomerID string    `json:"customerId"`
	StaffID    *string   `json:"staffId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AppointmentListResponse страница записей
type AppointmentListResponse struct {
	Items []AppointmentResponse `json:"items"`
	Total int                   `json:"total"`
}

// DeleteAppointmentResponse результат удаления записи
type DeleteAppointmentResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}
	return &AppointmentResponse{
		ID:         a.ID,
		StartAt:    a.StartAt.UTC().Format(domain.ISOFormat),
		EndAt:      a.EndAt.UTC().Format(domain.ISOFormat),
		Status:     string(a.Status),
		ServiceID:  a.ServiceID,
		CustomerID: a.CustomerID,
		StaffID:    a.StaffID,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует страницу записей в DTO
func FromDomainAppointmentList(items []*domain.Appointment, total int) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Items: make([]AppointmentResponse, 0, len(items)),
		Total: total,
	}
	for _, a := range items {
		resp.Items = append(resp.Items, *FromDomainAppointment(a))
	}
	return resp
}
