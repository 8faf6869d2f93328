package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	DurationMin int     `json:"durationMin"`
	PriceCents  int     `json:"priceCents"`
}

// UpdateServiceRequest частичное обновление услуги
type UpdateServiceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	DurationMin *int    `json:"durationMin,omitempty"`
	PriceCents  *int    `json:"priceCents,omitempty"`
}

// ListServicesRequest параметры выборки каталога
type ListServicesRequest struct {
	Search   *string
	Skip     *int
	Take     *int
	OrderBy  *string
	OrderDir *string
}

// Response модели

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	DurationMin int       `json:"durationMin"`
	PriceCents  int       `json:"priceCents"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ServiceListResponse страница каталога
type ServiceListResponse struct {
	Items []ServiceResponse `json:"items"`
	Total int               `json:"total"`
	Skip  int               `json:"skip"`
	Take  int               `json:"take"`
}

// DeleteServiceResponse результат удаления услуги
type DeleteServiceResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		DurationMin: s.DurationMin,
		PriceCents:  s.PriceCents,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует страницу каталога в DTO
func FromDomainServiceList(items []*domain.Service, total int, filter domain.ServiceFilter) *ServiceListResponse {
	resp := &ServiceListResponse{
		Items: make([]ServiceResponse, 0, len(items)),
		Total: total,
		Skip:  filter.Skip,
		Take:  filter.Take,
	}
	for _, s := range items {
		resp.Items = append(resp.Items, *FromDomainService(s))
	}
	return resp
}
