package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/pgerr"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"start_at",
	"end_at",
	"status",
	"service_id",
	"customer_id",
	"staff_id",
	"created_at",
	"updated_at",
}

var orderColumns = map[domain.AppointmentOrderField]string{
	domain.AppointmentOrderByStartAt:   "start_at",
	domain.AppointmentOrderByCreatedAt: "created_at",
}

// Repository репозиторий записей клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if a.ID == "" {
		a.ID = domain.NewID()
	}
	if a.Status == "" {
		a.Status = domain.StatusPending
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "start_at", "end_at", "status", "service_id", "customer_id", "staff_id").
		Values(a.ID, a.StartAt.UTC(), a.EndAt.UTC(), a.Status, a.ServiceID, a.CustomerID, a.StaffID).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, mapWriteError("Create", err)
	}

	return a, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	if !domain.IsValidID(id) {
		return nil, ErrAppointmentNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// List возвращает страницу записей и общее количество под фильтром
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{}
	if filter.CustomerID != nil {
		where = append(where, squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.StaffID != nil {
		where = append(where, squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.ServiceID != nil {
		where = append(where, squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartFrom != nil {
		where = append(where, squirrel.GtOrEq{"start_at": filter.StartFrom.UTC()})
	}
	if filter.EndTo != nil {
		where = append(where, squirrel.LtOrEq{"end_at": filter.EndTo.UTC()})
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - count: %v", ErrExecQuery, err)
	}

	orderColumn, ok := orderColumns[filter.OrderBy]
	if !ok {
		orderColumn = "start_at"
	}
	direction := "ASC"
	if filter.OrderDir == domain.SortDesc {
		direction = "DESC"
	}

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		OrderBy(fmt.Sprintf("%s %s", orderColumn, direction), "id ASC").
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

// ListActiveByStaffInRange получает неотмененные записи сотрудников, пересекающиеся с [from, to)
func (r *Repository) ListActiveByStaffInRange(ctx context.Context, staffIDs []string, from, to time.Time) ([]*domain.Appointment, error) {
	if len(staffIDs) == 0 {
		return []*domain.Appointment{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Expr("staff_id = ANY(?)", pq.Array(staffIDs))).
		Where(squirrel.Lt{"start_at": to.UTC()}).
		Where(squirrel.Gt{"end_at": from.UTC()}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("staff_id ASC", "start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByStaffInRange - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListActiveByStaffInRange", query, args)
}

// Update перезаписывает поля записи
func (r *Repository) Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if !domain.IsValidID(a.ID) {
		return nil, ErrAppointmentNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("start_at", a.StartAt.UTC()).
		Set("end_at", a.EndAt.UTC()).
		Set("status", a.Status).
		Set("service_id", a.ServiceID).
		Set("customer_id", a.CustomerID).
		Set("staff_id", a.StaffID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, mapWriteError("Update", err)
	}

	return a, nil
}

// UpdateStatus меняет статус записи и возвращает обновленную запись
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	if !domain.IsValidID(id) {
		return nil, ErrAppointmentNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return a, nil
}

// CancelFutureByStaff отменяет будущие неотмененные записи, где пользователь - сотрудник
func (r *Repository) CancelFutureByStaff(ctx context.Context, staffID string, now time.Time) (int64, error) {
	return r.cancelFuture(ctx, "CancelFutureByStaff", squirrel.Eq{"staff_id": staffID}, now)
}

// CancelFutureByCustomer отменяет будущие неотмененные записи, где пользователь - клиент
func (r *Repository) CancelFutureByCustomer(ctx context.Context, customerID string, now time.Time) (int64, error) {
	return r.cancelFuture(ctx, "CancelFutureByCustomer", squirrel.Eq{"customer_id": customerID}, now)
}

// Delete удаляет запись
func (r *Repository) Delete(ctx context.Context, id string) error {
	if !domain.IsValidID(id) {
		return ErrAppointmentNotFound
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
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) cancelFuture(ctx context.Context, op string, who squirrel.Eq, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(who).
		Where(squirrel.Gt{"start_at": now.UTC()}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return rowsAffected, nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op string, query string, args []interface{}) ([]*domain.Appointment, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	items := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
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

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var staffID sql.NullString

	err := row.Scan(
		&a.ID,
		&a.StartAt,
		&a.EndAt,
		&a.Status,
		&a.ServiceID,
		&a.CustomerID,
		&staffID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.StartAt = a.StartAt.UTC()
	a.EndAt = a.EndAt.UTC()
	if staffID.Valid {
		a.StaffID = &staffID.String
	}

	return &a, nil
}

func mapWriteError(op string, err error) error {
	if pgerr.IsForeignKeyViolation(err) || pgerr.IsInvalidText(err) {
		return fmt.Errorf("%w: %s: %v", ErrReferenceNotFound, op, err)
	}
	return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
}
