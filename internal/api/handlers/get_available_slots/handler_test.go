package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeUseCase struct {
	execute func(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

func (f *fakeUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	return f.execute(ctx, req)
}

func get(h *Handler, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/public/availabilities/day?"+query, nil))
	return rec
}

func TestHandle_ReturnsSlots(t *testing.T) {
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{execute: func(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
		assert.Equal(t, "2025-03-03", req.Date)
		assert.Equal(t, "svc-1", req.ServiceID)
		require.NotNil(t, req.StaffID)
		assert.Equal(t, "staff-1", *req.StaffID)
		require.NotNil(t, req.StepMinutes)
		assert.Equal(t, 30, *req.StepMinutes)
		assert.Nil(t, req.BufferMinutes)

		return &getAvailableSlots.Response{
			Date:      day,
			Weekday:   domain.Monday,
			ServiceID: "svc-1",
			Slots: []domain.Slot{
				{StaffID: "staff-1", Start: day.Add(9 * time.Hour), End: day.Add(9*time.Hour + 30*time.Minute)},
			},
		}, nil
	}}

	rec := get(NewHandler(uc, logger.NewNop()), "date=2025-03-03&serviceId=svc-1&staffId=staff-1&stepMinutes=30")
	require.Equal(t, http.StatusOK, rec.Code)

	var body DaySlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-03-03", body.Date)
	assert.Equal(t, "MON", body.Weekday)
	assert.Equal(t, "svc-1", body.ServiceID)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, SlotResponse{
		StaffID: "staff-1",
		Start:   "2025-03-03T09:00:00.000Z",
		End:     "2025-03-03T09:30:00.000Z",
	}, body.Slots[0])
}

func TestHandle_EmptySlotsIsArray(t *testing.T) {
	uc := &fakeUseCase{execute: func(context.Context, *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
		return &getAvailableSlots.Response{Date: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), Weekday: domain.Sunday, ServiceID: "svc-1"}, nil
	}}

	rec := get(NewHandler(uc, logger.NewNop()), "date=2025-03-09&serviceId=svc-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
		code   string
	}{
		{"non numeric step", "date=2025-03-03&serviceId=s&stepMinutes=abc", nil, http.StatusBadRequest, "validation_error"},
		{"non numeric buffer", "date=2025-03-03&serviceId=s&bufferMinutes=x", nil, http.StatusBadRequest, "validation_error"},
		{"invalid date", "date=03-03-2025&serviceId=s", getAvailableSlots.ErrInvalidDate, http.StatusBadRequest, "invalid_date"},
		{"invalid input", "date=2025-03-03&serviceId=s&stepMinutes=1",
			fmt.Errorf("%w: stepMinutes must be >= 5", getAvailableSlots.ErrInvalidInput), http.StatusBadRequest, "validation_error"},
		{"unknown service", "date=2025-03-03&serviceId=nope", getAvailableSlots.ErrServiceNotFound, http.StatusNotFound, "service_not_found"},
		{"internal", "date=2025-03-03&serviceId=s", getAvailableSlots.ErrInternal, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{execute: func(context.Context, *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
				return nil, tt.err
			}}

			rec := get(NewHandler(uc, logger.NewNop()), tt.query)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"`+tt.code+`"`)
		})
	}
}
