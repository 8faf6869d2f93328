package replace_availabilities

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	replaceAvailabilities "github.com/m04kA/SMC-SalonService/internal/usecase/replace_availabilities"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type fakeUseCase struct {
	execute func(ctx context.Context, req *replaceAvailabilities.Request) (*replaceAvailabilities.Response, error)
}

func (f *fakeUseCase) Execute(ctx context.Context, req *replaceAvailabilities.Request) (*replaceAvailabilities.Response, error) {
	return f.execute(ctx, req)
}

var owner = domain.Actor{UserID: "owner-1", Role: domain.RoleOwner}

func put(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/staff-availabilities/bulk", strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), owner))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func TestHandle_ReplacesSchedule(t *testing.T) {
	uc := &fakeUseCase{execute: func(_ context.Context, req *replaceAvailabilities.Request) (*replaceAvailabilities.Response, error) {
		assert.Equal(t, owner, req.Actor)
		assert.Equal(t, "staff-1", req.StaffID)
		require.Len(t, req.Slots, 2)
		assert.Equal(t, replaceAvailabilities.Window{Day: "MON", StartTime: "09:00", EndTime: "12:00"}, req.Slots[0])
		assert.Equal(t, "staff-1", req.Slots[1].StaffID)

		return &replaceAvailabilities.Response{
			StaffID: "staff-1",
			Items: []*domain.StaffAvailability{
				{ID: "a1", StaffID: "staff-1", Day: domain.Monday, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "12:00")},
				{ID: "a2", StaffID: "staff-1", Day: domain.Tuesday, StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "14:00")},
			},
		}, nil
	}}

	rec := put(NewHandler(uc, logger.NewNop()), `{"staffId":"staff-1","slots":[
		{"day":"MON","startTime":"09:00","endTime":"12:00"},
		{"staffId":"staff-1","day":"TUE","startTime":"10:00","endTime":"14:00"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "MON", body[0]["day"])
	assert.Equal(t, "09:00", body[0]["startTime"])
	assert.Equal(t, "TUE", body[1]["day"])
}

func TestHandle_EmptyResultIsArray(t *testing.T) {
	uc := &fakeUseCase{execute: func(context.Context, *replaceAvailabilities.Request) (*replaceAvailabilities.Response, error) {
		return &replaceAvailabilities.Response{StaffID: "staff-1"}, nil
	}}

	rec := put(NewHandler(uc, logger.NewNop()), `{"staffId":"staff-1","slots":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandle_BatchOverlapCarriesBothWindows(t *testing.T) {
	uc := &fakeUseCase{execute: func(context.Context, *replaceAvailabilities.Request) (*replaceAvailabilities.Response, error) {
		return nil, &replaceAvailabilities.BatchOverlapError{
			Day:    domain.Monday,
			First:  replaceAvailabilities.Window{StaffID: "staff-1", Day: "MON", StartTime: "09:00", EndTime: "11:00"},
			Second: replaceAvailabilities.Window{StaffID: "staff-1", Day: "MON", StartTime: "10:00", EndTime: "12:00"},
		}
	}}

	rec := put(NewHandler(uc, logger.NewNop()), `{"staffId":"staff-1","slots":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Code    string              `json:"code"`
		Details BatchOverlapDetails `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "batch_overlap", body.Code)
	assert.Equal(t, "MON", body.Details.Day)
	assert.Equal(t, "09:00", body.Details.First.StartTime)
	assert.Equal(t, "10:00", body.Details.Second.StartTime)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"staff mismatch", replaceAvailabilities.ErrStaffMismatch, http.StatusBadRequest, "staff_mismatch"},
		{"invalid range", replaceAvailabilities.ErrInvalidTimeRange, http.StatusBadRequest, "invalid_time_range"},
		{"staff not found", replaceAvailabilities.ErrStaffNotFound, http.StatusNotFound, "staff_not_found"},
		{"busy", replaceAvailabilities.ErrBusy, http.StatusConflict, "schedule_busy"},
		{"internal", replaceAvailabilities.ErrInternal, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{execute: func(context.Context, *replaceAvailabilities.Request) (*replaceAvailabilities.Response, error) {
				return nil, tt.err
			}}

			rec := put(NewHandler(uc, logger.NewNop()), `{"staffId":"staff-1","slots":[]}`)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"`+tt.code+`"`)
		})
	}

	rec := put(NewHandler(&fakeUseCase{}, logger.NewNop()), `{"staffId":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
