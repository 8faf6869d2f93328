package user

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/pgerr"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const table = "users"

var columns = []string{
	"id",
	"firebase_uid",
	"email",
	"phone",
	"first_name",
	"last_name",
	"role",
	"created_at",
	"updated_at",
}

// Repository репозиторий пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает пользователя
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if u.ID == "" {
		u.ID = domain.NewID()
	}
	if u.Role == "" {
		u.Role = domain.RoleCustomer
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "firebase_uid", "email", "phone", "first_name", "last_name", "role").
		Values(u.ID, u.FirebaseUID, u.Email, u.Phone, u.FirstName, u.LastName, u.Role).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Create: %v", ErrDuplicate, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return u, nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if !domain.IsValidID(id) {
		return nil, ErrUserNotFound
	}
	return r.getBy(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByFirebaseUID получает пользователя по UID учетной записи провайдера идентификации
func (r *Repository) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	return r.getBy(ctx, "GetByFirebaseUID", squirrel.Eq{"firebase_uid": uid})
}

// GetByEmail получает пользователя по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "GetByEmail", squirrel.Eq{"email": email})
}

// List возвращает всех пользователей, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return users, nil
}

// Update перезаписывает изменяемые поля пользователя
func (r *Repository) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	if !domain.IsValidID(u.ID) {
		return nil, ErrUserNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("email", u.Email).
		Set("phone", u.Phone).
		Set("first_name", u.FirstName).
		Set("last_name", u.LastName).
		Set("role", u.Role).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": u.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Update: %v", ErrDuplicate, err)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return u, nil
}

// Delete удаляет пользователя и возвращает удаленную запись
func (r *Repository) Delete(ctx context.Context, id string) (*domain.User, error) {
	if !domain.IsValidID(id) {
		return nil, ErrUserNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	u, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return u, nil
}

func (r *Repository) getBy(ctx context.Context, op string, where squirrel.Eq) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	u, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, op, err)
	}

	return u, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var phone sql.NullString

	err := row.Scan(
		&u.ID,
		&u.FirebaseUID,
		&u.Email,
		&phone,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if phone.Valid {
		u.Phone = &phone.String
	}

	return &u, nil
}
