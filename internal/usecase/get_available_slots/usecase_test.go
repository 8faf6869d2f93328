package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

const (
	monday    = "2025-03-03"
	serviceID = "6f1d1c1e-0d55-4a8e-9a43-1d5f6cfb3a10"
	staffA    = "0b0f6a36-7d6c-4a51-9d0a-5f0b8d3f0a01"
	staffB    = "0b0f6a36-7d6c-4a51-9d0a-5f0b8d3f0a02"
)

type fakeServiceRepo struct {
	getByID func(ctx context.Context, id string) (*domain.Service, error)
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	return f.getByID(ctx, id)
}

type fakeAvailabilityRepo struct {
	listByDay func(ctx context.Context, day domain.Weekday, staffID *string) ([]*domain.StaffAvailability, error)
}

func (f *fakeAvailabilityRepo) ListByDay(ctx context.Context, day domain.Weekday, staffID *string) ([]*domain.StaffAvailability, error) {
	return f.listByDay(ctx, day, staffID)
}

type fakeAppointmentRepo struct {
	listActiveByStaffInRange func(ctx context.Context, staffIDs []string, from, to time.Time) ([]*domain.Appointment, error)
}

func (f *fakeAppointmentRepo) ListActiveByStaffInRange(ctx context.Context, staffIDs []string, from, to time.Time) ([]*domain.Appointment, error) {
	return f.listActiveByStaffInRange(ctx, staffIDs, from, to)
}

type fakeMetrics struct {
	results []string
}

func (f *fakeMetrics) ObserveSlotQuery(result string, _ string, _ int) {
	f.results = append(f.results, result)
}

func service(duration int) *fakeServiceRepo {
	return &fakeServiceRepo{getByID: func(_ context.Context, id string) (*domain.Service, error) {
		return &domain.Service{ID: id, DurationMin: duration}, nil
	}}
}

func windowsOf(windows ...*domain.StaffAvailability) *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{listByDay: func(context.Context, domain.Weekday, *string) ([]*domain.StaffAvailability, error) {
		return windows, nil
	}}
}

func appointmentsOf(appts ...*domain.Appointment) *fakeAppointmentRepo {
	return &fakeAppointmentRepo{listActiveByStaffInRange: func(context.Context, []string, time.Time, time.Time) ([]*domain.Appointment, error) {
		return appts, nil
	}}
}

func window(staffID string, start, end string) *domain.StaffAvailability {
	return &domain.StaffAvailability{
		ID:        domain.NewID(),
		StaffID:   staffID,
		Day:       domain.Monday,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func at(hhmm string) time.Time {
	t, err := time.Parse(time.RFC3339, monday+"T"+hhmm+":00Z")
	if err != nil {
		panic(err)
	}
	return t
}

func appointment(staffID string, start, end string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:      domain.NewID(),
		StartAt: at(start),
		EndAt:   at(end),
		Status:  status,
		StaffID: ptr.Ptr(staffID),
	}
}

type span struct{ start, end string }

func spans(slots []domain.Slot) []span {
	out := make([]span, 0, len(slots))
	for _, s := range slots {
		out = append(out, span{s.Start.Format("15:04"), s.End.Format("15:04")})
	}
	return out
}

func TestExecute_OneWindowNoAppointments(t *testing.T) {
	uc := NewUseCase(service(30), windowsOf(window(staffA, "09:00", "10:00")), appointmentsOf(), nil, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: serviceID})
	require.NoError(t, err)

	assert.Equal(t, domain.Monday, resp.Weekday)
	assert.Equal(t, serviceID, resp.ServiceID)
	assert.Equal(t, []span{{"09:00", "09:30"}, {"09:15", "09:45"}, {"09:30", "10:00"}}, spans(resp.Slots))
	for _, s := range resp.Slots {
		assert.Equal(t, staffA, s.StaffID)
		assert.Equal(t, time.UTC, s.Start.Location())
	}
}

func TestExecute_AppointmentBlocksOverlappingSlots(t *testing.T) {
	uc := NewUseCase(
		service(30),
		windowsOf(window(staffA, "09:00", "10:00")),
		appointmentsOf(appointment(staffA, "09:30", "10:00", domain.StatusConfirmed)),
		nil,
		logger.NewNop(),
	)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: serviceID})
	require.NoError(t, err)
	assert.Equal(t, []span{{"09:00", "09:30"}}, spans(resp.Slots))
}

func TestExecute_BufferExtendsEffectiveDuration(t *testing.T) {
	uc := NewUseCase(service(20), windowsOf(window(staffA, "09:00", "10:00")), appointmentsOf(), nil, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: serviceID, BufferMinutes: ptr.Ptr(10)})
	require.NoError(t, err)
	assert.Equal(t, []span{{"09:00", "09:30"}, {"09:15", "09:45"}, {"09:30", "10:00"}}, spans(resp.Slots))
}

func TestExecute_NoWindowsReturnsEmptySlots(t *testing.T) {
	appts := &fakeAppointmentRepo{listActiveByStaffInRange: func(context.Context, []string, time.Time, time.Time) ([]*domain.Appointment, error) {
		t.Fatal("appointments must not be read without windows")
		return nil, nil
	}}
	m := &fakeMetrics{}
	uc := NewUseCase(service(30), windowsOf(), appts, m, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: serviceID})
	require.NoError(t, err)

	assert.Equal(t, domain.Monday, resp.Weekday)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, []string{resultOK}, m.results)
}

func TestExecute_UnknownServiceStopsBeforeOtherReads(t *testing.T) {
	svc := &fakeServiceRepo{getByID: func(context.Context, string) (*domain.Service, error) {
		return nil, serviceRepo.ErrServiceNotFound
	}}
	avail := &fakeAvailabilityRepo{listByDay: func(context.Context, domain.Weekday, *string) ([]*domain.StaffAvailability, error) {
		t.Fatal("availabilities must not be read for an unknown service")
		return nil, nil
	}}
	m := &fakeMetrics{}
	uc := NewUseCase(svc, avail, &fakeAppointmentRepo{}, m, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: serviceID})
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Equal(t, []string{resultNotFound}, m.results)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeServiceRepo{}, &fakeAvailabilityRepo{}, &fakeAppointmentRepo{}, nil, logger.NewNop())

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"bad date", &Request{Date: "03/03/2025", ServiceID: serviceID}, ErrInvalidDate},
		{"impossible date", &Request{Date: "2025-02-30", ServiceID: serviceID}, ErrInvalidDate},
		{"missing service", &Request{Date: monday}, ErrInvalidInput},
		{"step too small", &Request{Date: monday, ServiceID: serviceID, StepMinutes: ptr.Ptr(4)}, ErrInvalidInput},
		{"step above a day", &Request{Date: monday, ServiceID: serviceID, StepMinutes: ptr.Ptr(1441)}, ErrInvalidInput},
		{"huge step", &Request{Date: monday, ServiceID: serviceID, StepMinutes: ptr.Ptr(1<<53 - 1)}, ErrInvalidInput},
		{"negative buffer", &Request{Date: monday, ServiceID: serviceID, BufferMinutes: ptr.Ptr(-1)}, ErrInvalidInput},
		{"buffer above a day", &Request{Date: monday, ServiceID: serviceID, BufferMinutes: ptr.Ptr(1441)}, ErrInvalidInput},
		{"huge buffer", &Request{Date: monday, ServiceID: serviceID, BufferMinutes: ptr.Ptr(1<<53 - 60)}, ErrInvalidInput},
		{"bad staff id", &Request{Date: monday, ServiceID: serviceID, StaffID: ptr.Ptr("s1")}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_PassesStaffFilterAndDayRange(t *testing.T) {
	var gotStaff *string
	var gotDay domain.Weekday
	avail := &fakeAvailabilityRepo{listByDay: func(_ context.Context, day domain.Weekday, staffID *string) ([]*domain.StaffAvailability, error) {
		gotDay, gotStaff = day, staffID
		return []*domain.StaffAvailability{window(staffA, "09:00", "10:00"), window(staffA, "13:00", "14:00")}, nil
	}}

	var gotIDs []string
	var from, to time.Time
	appts := &fakeAppointmentRepo{listActiveByStaffInRange: func(_ context.Context, ids []string, f, t time.Time) ([]*domain.Appointment, error) {
		gotIDs, from, to = ids, f, t
		return nil, nil
	}}

	uc := NewUseCase(service(60), avail, appts, nil, logger.NewNop())
	_, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: serviceID, StaffID: ptr.Ptr(staffA)})
	require.NoError(t, err)

	assert.Equal(t, domain.Monday, gotDay)
	require.NotNil(t, gotStaff)
	assert.Equal(t, staffA, *gotStaff)
	assert.Equal(t, []string{staffA}, gotIDs)
	assert.Equal(t, at("00:00"), from)
	assert.Equal(t, at("00:00").Add(24*time.Hour), to)
}

func TestExecute_RepositoryErrors(t *testing.T) {
	boom := errors.New("connection reset")

	uc := NewUseCase(
		&fakeServiceRepo{getByID: func(context.Context, string) (*domain.Service, error) { return nil, boom }},
		&fakeAvailabilityRepo{}, &fakeAppointmentRepo{}, nil, logger.NewNop(),
	)
	_, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: serviceID})
	assert.ErrorIs(t, err, ErrInternal)

	uc = NewUseCase(
		service(30),
		windowsOf(window(staffA, "09:00", "10:00")),
		&fakeAppointmentRepo{listActiveByStaffInRange: func(context.Context, []string, time.Time, time.Time) ([]*domain.Appointment, error) {
			return nil, boom
		}},
		nil, logger.NewNop(),
	)
	_, err = uc.Execute(context.Background(), &Request{Date: monday, ServiceID: serviceID})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_MaxBoundsAccepted(t *testing.T) {
	uc := NewUseCase(service(30), windowsOf(window(staffA, "09:00", "10:00")), appointmentsOf(), nil, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{
		Date:          monday,
		ServiceID:     serviceID,
		StepMinutes:   ptr.Ptr(domain.MaxStepMinutes),
		BufferMinutes: ptr.Ptr(domain.MaxBufferMinutes),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ExtremeServiceDurationYieldsNoSlots(t *testing.T) {
	for _, duration := range []int{1<<31 - 1, 1 << 53, -30, domain.MinutesPerDay + 1} {
		metrics := &fakeMetrics{}
		uc := NewUseCase(service(duration), windowsOf(window(staffA, "09:00", "10:00")), appointmentsOf(), metrics, logger.NewNop())

		resp, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: serviceID})
		require.NoError(t, err, "duration=%d", duration)
		assert.Empty(t, resp.Slots, "duration=%d", duration)
		assert.Equal(t, []string{resultOK}, metrics.results)
	}
}

func TestExecute_FullDayWindowFitsFullDayService(t *testing.T) {
	uc := NewUseCase(service(domain.MinutesPerDay), windowsOf(window(staffA, "00:00", "24:00")), appointmentsOf(), nil, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: serviceID})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, at("00:00"), resp.Slots[0].Start)
	assert.Equal(t, at("00:00").Add(24*time.Hour), resp.Slots[0].End)
	for _, slot := range resp.Slots {
		assert.True(t, slot.End.After(slot.Start))
	}
}
