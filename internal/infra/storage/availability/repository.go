package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/pgerr"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const table = "staff_availabilities"

var columns = []string{
	"id",
	"staff_id",
	"day",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с окнами доступности сотрудников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает окно доступности
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, a *domain.StaffAvailability) (*domain.StaffAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if a.ID == "" {
		a.ID = domain.NewID()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "staff_id", "day", "start_time", "end_time").
		Values(a.ID, a.StaffID, a.Day, a.StartTime, a.EndTime).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	return a, nil
}

// CreateBatch вставляет набор окон одним запросом
// Пустой набор - не ошибка
func (r *Repository) CreateBatch(ctx context.Context, items []*domain.StaffAvailability) error {
	if len(items) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(table).Columns("id", "staff_id", "day", "start_time", "end_time")
	for _, a := range items {
		if a.ID == "" {
			a.ID = domain.NewID()
		}
		insert = insert.Values(a.ID, a.StaffID, a.Day, a.StartTime, a.EndTime)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError("CreateBatch", err)
	}

	return nil
}

// GetByID получает окно по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.StaffAvailability, error) {
	if !domain.IsValidID(id) {
		return nil, ErrAvailabilityNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAvailability(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan availability: %v", ErrScanRow, err)
	}

	return a, nil
}

// List возвращает страницу окон и общее количество под фильтром
// Сортировка: staff_id, day, start_time
func (r *Repository) List(ctx context.Context, filter domain.AvailabilityFilter) ([]*domain.StaffAvailability, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{}
	if filter.StaffID != nil {
		where = append(where, squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.Day != nil {
		where = append(where, squirrel.Eq{"day": *filter.Day})
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - count: %v", ErrExecQuery, err)
	}

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		OrderBy("staff_id ASC", "day ASC", "start_time ASC").
		Offset(uint64(filter.Skip)).
		Limit(uint64(filter.Take)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	items, err := r.query(ctx, executor, "List", query, args)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// ListByDay получает все окна на день недели, опционально только одного сотрудника
// Сортировка: staff_id, start_time
func (r *Repository) ListByDay(ctx context.Context, day domain.Weekday, staffID *string) ([]*domain.StaffAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"day": day}).
		OrderBy("staff_id ASC", "start_time ASC")

	if staffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *staffID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDay - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListByDay", query, args)
}

// ListByStaffAndDay получает окна сотрудника на день недели
// excludeID исключает запись (при обновлении она не конфликтует сама с собой)
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) ListByStaffAndDay(ctx context.Context, staffID string, day domain.Weekday, excludeID *string) ([]*domain.StaffAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"staff_id": staffID, "day": day}).
		OrderBy("start_time ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaffAndDay - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListByStaffAndDay", query, args)
}

// ListByStaff получает все окна сотрудника, упорядоченные по дню недели и времени начала
func (r *Repository) ListByStaff(ctx context.Context, staffID string) ([]*domain.StaffAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("day ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListByStaff", query, args)
}

// Update перезаписывает поля окна
func (r *Repository) Update(ctx context.Context, a *domain.StaffAvailability) (*domain.StaffAvailability, error) {
	if !domain.IsValidID(a.ID) {
		return nil, ErrAvailabilityNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("staff_id", a.StaffID).
		Set("day", a.Day).
		Set("start_time", a.StartTime).
		Set("end_time", a.EndTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, mapWriteError("Update", err)
	}

	return a, nil
}

// Delete удаляет окно
func (r *Repository) Delete(ctx context.Context, id string) error {
	if !domain.IsValidID(id) {
		return ErrAvailabilityNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}

// DeleteByStaff удаляет все окна сотрудника и возвращает количество удаленных
func (r *Repository) DeleteByStaff(ctx context.Context, staffID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByStaff - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByStaff - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByStaff - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op string, query string, args []interface{}) ([]*domain.StaffAvailability, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	items := make([]*domain.StaffAvailability, 0)
	for rows.Next() {
		a, err := scanAvailability(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAvailability(row rowScanner) (*domain.StaffAvailability, error) {
	var a domain.StaffAvailability
	err := row.Scan(
		&a.ID,
		&a.StaffID,
		&a.Day,
		&a.StartTime,
		&a.EndTime,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func mapWriteError(op string, err error) error {
	switch {
	case pgerr.IsExclusionViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrOverlap, op, err)
	case pgerr.IsForeignKeyViolation(err), pgerr.IsInvalidText(err):
		return fmt.Errorf("%w: %s: %v", ErrStaffNotFound, op, err)
	case errors.Is(err, sql.ErrNoRows):
		return ErrAvailabilityNotFound
	default:
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}
}
