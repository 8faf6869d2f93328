package replace_availabilities

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/lock"
	availabilityRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

const (
	staffA = "0b0f6a36-7d6c-4a51-9d0a-5f0b8d3f0a01"
	staffB = "0b0f6a36-7d6c-4a51-9d0a-5f0b8d3f0a02"
	owner  = "0b0f6a36-7d6c-4a51-9d0a-5f0b8d3f0aff"
)

// memoryRepo хранит окна в памяти и откатывает изменения при ошибке транзакции
type memoryRepo struct {
	rows      []*domain.StaffAvailability
	createErr error
	calls     []string
}

func (m *memoryRepo) DeleteByStaff(_ context.Context, staffID string) (int64, error) {
	m.calls = append(m.calls, "delete")
	kept := m.rows[:0:0]
	var n int64
	for _, r := range m.rows {
		if r.StaffID == staffID {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	return n, nil
}

func (m *memoryRepo) CreateBatch(_ context.Context, items []*domain.StaffAvailability) error {
	m.calls = append(m.calls, "create")
	if m.createErr != nil {
		return m.createErr
	}
	for _, it := range items {
		it.ID = domain.NewID()
		m.rows = append(m.rows, it)
	}
	return nil
}

func (m *memoryRepo) ListByStaff(_ context.Context, staffID string) ([]*domain.StaffAvailability, error) {
	m.calls = append(m.calls, "list")
	out := make([]*domain.StaffAvailability, 0)
	for _, r := range m.rows {
		if r.StaffID == staffID {
			out = append(out, r)
		}
	}
	return out, nil
}

type snapshotTx struct {
	repo  *memoryRepo
	calls int
}

func (f *snapshotTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	saved := append([]*domain.StaffAvailability(nil), f.repo.rows...)
	if err := fn(ctx); err != nil {
		f.repo.rows = saved
		return err
	}
	return nil
}

func newUseCase(repo *memoryRepo) (*UseCase, *snapshotTx) {
	tx := &snapshotTx{repo: repo}
	return NewUseCase(repo, tx, lock.NewLocalLock(), 10*time.Second, logger.NewNop()), tx
}

func existing(staffID string, day domain.Weekday, start, end string) *domain.StaffAvailability {
	return &domain.StaffAvailability{ID: domain.NewID(), StaffID: staffID, Day: day, StartTime: types.TimeString(start), EndTime: types.TimeString(end)}
}

func ownerActor() domain.Actor {
	return domain.Actor{UserID: owner, Role: domain.RoleOwner}
}

func TestExecute_ReplacesStaffWindows(t *testing.T) {
	repo := &memoryRepo{rows: []*domain.StaffAvailability{
		existing(staffA, domain.Monday, "08:00", "12:00"),
		existing(staffB, domain.Monday, "08:00", "12:00"),
	}}
	uc, tx := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:   ownerActor(),
		StaffID: staffA,
		Slots: []Window{
			{StaffID: staffA, Day: "TUE", StartTime: "09:00", EndTime: "10:00"},
			{Day: "TUE", StartTime: "10:00", EndTime: "11:00"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, []string{"delete", "create", "list"}, repo.calls)
	assert.Equal(t, staffA, resp.StaffID)
	require.Len(t, resp.Items, 2)
	for _, it := range resp.Items {
		assert.Equal(t, staffA, it.StaffID)
		assert.Equal(t, domain.Tuesday, it.Day)
	}
	assert.Len(t, repo.rows, 3)
}

func TestExecute_EmptyBatchClearsWindows(t *testing.T) {
	repo := &memoryRepo{rows: []*domain.StaffAvailability{existing(staffA, domain.Monday, "08:00", "12:00")}}
	uc, _ := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{Actor: ownerActor(), StaffID: staffA})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Empty(t, repo.rows)
}

func TestExecute_IntraBatchOverlapRejectsWholeBatch(t *testing.T) {
	before := existing(staffA, domain.Friday, "08:00", "12:00")
	repo := &memoryRepo{rows: []*domain.StaffAvailability{before}}
	uc, tx := newUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		Actor:   ownerActor(),
		StaffID: staffA,
		Slots: []Window{
			{Day: "WED", StartTime: "09:00", EndTime: "10:00"},
			{Day: "MON", StartTime: "09:30", EndTime: "10:30"},
			{Day: "MON", StartTime: "09:00", EndTime: "10:00"},
		},
	})

	var overlap *BatchOverlapError
	require.ErrorAs(t, err, &overlap)
	assert.ErrorIs(t, err, ErrBatchOverlap)
	assert.Equal(t, domain.Monday, overlap.Day)
	assert.Equal(t, "09:00", overlap.First.StartTime)
	assert.Equal(t, "09:30", overlap.Second.StartTime)

	assert.Zero(t, tx.calls)
	assert.Empty(t, repo.calls)
	assert.Equal(t, []*domain.StaffAvailability{before}, repo.rows)
}

func TestExecute_OneInvalidWindowRejectsWholeBatch(t *testing.T) {
	tests := []struct {
		name    string
		slots   []Window
		wantErr error
	}{
		{
			name:    "staff mismatch",
			slots:   []Window{{Day: "MON", StartTime: "09:00", EndTime: "10:00"}, {StaffID: staffB, Day: "TUE", StartTime: "09:00", EndTime: "10:00"}},
			wantErr: ErrStaffMismatch,
		},
		{
			name:    "reversed range",
			slots:   []Window{{Day: "MON", StartTime: "09:00", EndTime: "10:00"}, {Day: "TUE", StartTime: "11:00", EndTime: "10:00"}},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "empty range",
			slots:   []Window{{Day: "MON", StartTime: "09:00", EndTime: "09:00"}},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "unknown day",
			slots:   []Window{{Day: "FUNDAY", StartTime: "09:00", EndTime: "10:00"}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad time",
			slots:   []Window{{Day: "MON", StartTime: "9:00", EndTime: "10:00"}},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryRepo{rows: []*domain.StaffAvailability{existing(staffA, domain.Monday, "08:00", "12:00")}}
			uc, tx := newUseCase(repo)

			_, err := uc.Execute(context.Background(), &Request{Actor: ownerActor(), StaffID: staffA, Slots: tt.slots})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, tx.calls)
			assert.Len(t, repo.rows, 1)
		})
	}
}

func TestExecute_StorageFailureRollsBack(t *testing.T) {
	before := existing(staffA, domain.Monday, "08:00", "12:00")
	repo := &memoryRepo{rows: []*domain.StaffAvailability{before}, createErr: errors.New("connection reset")}
	uc, _ := newUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		Actor:   ownerActor(),
		StaffID: staffA,
		Slots:   []Window{{Day: "MON", StartTime: "09:00", EndTime: "10:00"}},
	})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []*domain.StaffAvailability{before}, repo.rows)
}

func TestExecute_StaffForcedToSelf(t *testing.T) {
	repo := &memoryRepo{}
	uc, _ := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:   domain.Actor{UserID: staffB, Role: domain.RoleStaff},
		StaffID: staffA,
		Slots:   []Window{{Day: "MON", StartTime: "09:00", EndTime: "10:00"}},
	})
	require.NoError(t, err)
	assert.Equal(t, staffB, resp.StaffID)
	assert.Equal(t, staffB, resp.Items[0].StaffID)

	_, err = uc.Execute(context.Background(), &Request{
		Actor:   domain.Actor{UserID: staffB, Role: domain.RoleStaff},
		StaffID: staffA,
		Slots:   []Window{{StaffID: staffA, Day: "MON", StartTime: "09:00", EndTime: "10:00"}},
	})
	assert.ErrorIs(t, err, ErrStaffMismatch)
}

func TestExecute_MapsStorageErrors(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"staff missing", availabilityRepo.ErrStaffNotFound, ErrStaffNotFound},
		{"exclusion constraint", availabilityRepo.ErrOverlap, ErrBatchOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryRepo{createErr: tt.repoErr}
			uc, _ := newUseCase(repo)

			_, err := uc.Execute(context.Background(), &Request{
				Actor:   ownerActor(),
				StaffID: staffA,
				Slots:   []Window{{Day: "MON", StartTime: "09:00", EndTime: "10:00"}},
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_BusyWhenStaffLocked(t *testing.T) {
	repo := &memoryRepo{}
	l := lock.NewLocalLock()
	uc := NewUseCase(repo, &snapshotTx{repo: repo}, l, 10*time.Second, logger.NewNop())

	_, ok, err := l.Lock(context.Background(), lock.StaffKey(staffA), time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = uc.Execute(context.Background(), &Request{Actor: ownerActor(), StaffID: staffA})
	assert.ErrorIs(t, err, ErrBusy)
	assert.Empty(t, repo.calls)
}

func TestCheckBatchOverlap_TouchingWindowsAllowed(t *testing.T) {
	items, err := validateBatch(staffA, []Window{
		{Day: "MON", StartTime: "10:00", EndTime: "11:00"},
		{Day: "MON", StartTime: "09:00", EndTime: "10:00"},
		{Day: "TUE", StartTime: "09:30", EndTime: "10:30"},
	})
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestCheckBatchOverlap_NestedWindowDetected(t *testing.T) {
	_, err := validateBatch(staffA, []Window{
		{Day: "SAT", StartTime: "08:00", EndTime: "18:00"},
		{Day: "SAT", StartTime: "12:00", EndTime: "13:00"},
	})
	assert.ErrorIs(t, err, ErrBatchOverlap)
}
