package replace_availabilities

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/availabilities/models"
	replaceAvailabilities "github.com/m04kA/SMC-SalonService/internal/usecase/replace_availabilities"
)

// BulkReplaceRequest HTTP запрос на замену расписания
type BulkReplaceRequest struct {
	StaffID string       `json:"staffId"`
	Slots   []SlotWindow `json:"slots"`
}

// SlotWindow окно в составе запроса
type SlotWindow struct {
	StaffID   string `json:"staffId"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// BatchOverlapDetails пара пересекающихся окон
type BatchOverlapDetails struct {
	Day    string     `json:"day"`
	First  SlotWindow `json:"first"`
	Second SlotWindow `json:"second"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func ToUseCaseRequest(actor domain.Actor, req *BulkReplaceRequest) *replaceAvailabilities.Request {
	slots := make([]replaceAvailabilities.Window, 0, len(req.Slots))
	for _, s := range req.Slots {
		slots = append(slots, replaceAvailabilities.Window{
			StaffID:   s.StaffID,
			Day:       s.Day,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	return &replaceAvailabilities.Request{
		Actor:   actor,
		StaffID: req.StaffID,
		Slots:   slots,
	}
}

// FromUseCaseResponse конвертирует сохраненное расписание в HTTP ответ
func FromUseCaseResponse(resp *replaceAvailabilities.Response) []models.AvailabilityResponse {
	return models.FromDomainAvailabilityList(resp.Items)
}

func toBatchOverlapDetails(e *replaceAvailabilities.BatchOverlapError) BatchOverlapDetails {
	return BatchOverlapDetails{
		Day:    string(e.Day),
		First:  SlotWindow(e.First),
		Second: SlotWindow(e.Second),
	}
}
