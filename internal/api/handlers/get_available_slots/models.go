package get_available_slots

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

// DaySlotsResponse HTTP ответ со слотами дня
type DaySlotsResponse struct {
	Date      string         `json:"date"`
	Weekday   string         `json:"weekday"`
	ServiceID string         `json:"serviceId"`
	Slots     []SlotResponse `json:"slots"`
}

// SlotResponse слот в ISO-8601 UTC
type SlotResponse struct {
	StaffID string `json:"staffId"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// ToUseCaseRequest собирает запрос к use case из query параметров
func ToUseCaseRequest(date, serviceID string, staffID *string, step, buffer *int) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{
		Date:          date,
		ServiceID:     serviceID,
		StaffID:       staffID,
		StepMinutes:   step,
		BufferMinutes: buffer,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *getAvailableSlots.Response) *DaySlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StaffID: s.StaffID,
			Start:   s.Start.UTC().Format(domain.ISOFormat),
			End:     s.End.UTC().Format(domain.ISOFormat),
		})
	}

	return &DaySlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Weekday:   string(resp.Weekday),
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}
