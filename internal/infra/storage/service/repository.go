package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/pgerr"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const table = "services"

var columns = []string{
	"id",
	"name",
	"description",
	"duration_min",
	"price_cents",
	"created_at",
	"updated_at",
}

// orderColumns сопоставление полей сортировки API колонкам таблицы
var orderColumns = map[domain.ServiceOrderField]string{
	domain.ServiceOrderByCreatedAt:   "created_at",
	domain.ServiceOrderByName:        "name",
	domain.ServiceOrderByPriceCents:  "price_cents",
	domain.ServiceOrderByDurationMin: "duration_min",
}

// Repository репозиторий каталога услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает услугу
func (r *Repository) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if s.ID == "" {
		s.ID = domain.NewID()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "name", "description", "duration_min", "price_cents").
		Values(s.ID, s.Name, s.Description, s.DurationMin, s.PriceCents).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	if !domain.IsValidID(id) {
		return nil, ErrServiceNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	return s, nil
}

// List возвращает страницу каталога и общее количество под фильтром
// Search - регистронезависимый поиск подстроки в названии
func (r *Repository) List(ctx context.Context, filter domain.ServiceFilter) ([]*domain.Service, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{}
	if filter.Search != nil && *filter.Search != "" {
		where = append(where, squirrel.ILike{"name": "%" + escapeLike(*filter.Search) + "%"})
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
		orderColumn = "created_at"
	}
	direction := "DESC"
	if filter.OrderDir == domain.SortAsc {
		direction = "ASC"
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

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		items = append(items, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return items, total, nil
}

// Update перезаписывает поля услуги
func (r *Repository) Update(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	if !domain.IsValidID(s.ID) {
		return nil, ErrServiceNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", s.Name).
		Set("description", s.Description).
		Set("duration_min", s.DurationMin).
		Set("price_cents", s.PriceCents).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return s, nil
}

// Delete удаляет услугу
func (r *Repository) Delete(ctx context.Context, id string) error {
	if !domain.IsValidID(id) {
		return ErrServiceNotFound
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
		if pgerr.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: Delete: %v", ErrServiceInUse, err)
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var s domain.Service
	var description sql.NullString

	err := row.Scan(
		&s.ID,
		&s.Name,
		&description,
		&s.DurationMin,
		&s.PriceCents,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		s.Description = &description.String
	}

	return &s, nil
}

// escapeLike экранирует спецсимволы LIKE, чтобы поиск шел по буквальной подстроке
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, c := range s {
		if c == '%' || c == '_' || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return string(out)
}
