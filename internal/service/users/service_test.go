package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/internal/service/users/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type fakeUserRepo struct {
	create           func(ctx context.Context, u *domain.User) (*domain.User, error)
	getByID          func(ctx context.Context, id string) (*domain.User, error)
	getByFirebaseUID func(ctx context.Context, uid string) (*domain.User, error)
	getByEmail       func(ctx context.Context, email string) (*domain.User, error)
	list             func(ctx context.Context) ([]*domain.User, error)
	update           func(ctx context.Context, u *domain.User) (*domain.User, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return f.create(ctx, u)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return f.getByID(ctx, id)
}

func (f *fakeUserRepo) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	return f.getByFirebaseUID(ctx, uid)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.getByEmail(ctx, email)
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	return f.list(ctx)
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	return f.update(ctx, u)
}

func notFoundByUID(context.Context, string) (*domain.User, error) {
	return nil, userRepo.ErrUserNotFound
}

func TestFinalizeProfile_CreatesCustomer(t *testing.T) {
	var created *domain.User
	repo := &fakeUserRepo{
		getByFirebaseUID: notFoundByUID,
		getByEmail:       notFoundByUID,
		create: func(_ context.Context, u *domain.User) (*domain.User, error) {
			u.ID = "user-1"
			created = u
			return u, nil
		},
	}
	svc := NewService(repo, logger.NewNop())

	resp, err := svc.FinalizeProfile(context.Background(), "uid-1", "ana@example.com",
		&models.FinalizeProfileRequest{FirstName: "Ana", LastName: "Lopez"})
	require.NoError(t, err)

	assert.False(t, resp.NeedsProfile)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, domain.RoleCustomer, created.Role)
	assert.Equal(t, "uid-1", created.FirebaseUID)
	assert.Equal(t, "ana@example.com", created.Email)
}

func TestFinalizeProfile_Idempotent(t *testing.T) {
	repo := &fakeUserRepo{
		getByFirebaseUID: func(_ context.Context, uid string) (*domain.User, error) {
			return &domain.User{ID: "user-1", FirebaseUID: uid, Role: domain.RoleStaff}, nil
		},
	}
	svc := NewService(repo, logger.NewNop())

	// невалидные данные игнорируются, если профиль уже есть
	resp, err := svc.FinalizeProfile(context.Background(), "uid-1", "", &models.FinalizeProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, "STAFF", resp.User.Role)
}

func TestFinalizeProfile_EmailOwnedByOtherAccount(t *testing.T) {
	repo := &fakeUserRepo{
		getByFirebaseUID: notFoundByUID,
		getByEmail: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "other", FirebaseUID: "uid-2", Email: email}, nil
		},
	}
	svc := NewService(repo, logger.NewNop())

	_, err := svc.FinalizeProfile(context.Background(), "uid-1", "ana@example.com",
		&models.FinalizeProfileRequest{FirstName: "Ana", LastName: "Lopez"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestFinalizeProfile_Validation(t *testing.T) {
	repo := &fakeUserRepo{getByFirebaseUID: notFoundByUID}
	svc := NewService(repo, logger.NewNop())

	_, err := svc.FinalizeProfile(context.Background(), "uid-1", "", &models.FinalizeProfileRequest{FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.FinalizeProfile(context.Background(), "uid-1", "a@b.c", &models.FinalizeProfileRequest{FirstName: "A"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFinalizeProfile_ConcurrentCreate(t *testing.T) {
	calls := 0
	repo := &fakeUserRepo{
		getByFirebaseUID: func(_ context.Context, uid string) (*domain.User, error) {
			calls++
			if calls == 1 {
				return nil, userRepo.ErrUserNotFound
			}
			return &domain.User{ID: "user-1", FirebaseUID: uid}, nil
		},
		getByEmail: notFoundByUID,
		create: func(context.Context, *domain.User) (*domain.User, error) {
			return nil, userRepo.ErrDuplicate
		},
	}
	svc := NewService(repo, logger.NewNop())

	resp, err := svc.FinalizeProfile(context.Background(), "uid-1", "a@b.c",
		&models.FinalizeProfileRequest{FirstName: "A", LastName: "B"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.User.ID)
}

func TestUpdate_OnlyOwnerChangesRole(t *testing.T) {
	repo := &fakeUserRepo{
		getByID: func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.RoleCustomer}, nil
		},
		update: func(_ context.Context, u *domain.User) (*domain.User, error) { return u, nil },
	}
	svc := NewService(repo, logger.NewNop())
	req := &models.UpdateUserRequest{Role: ptr.Ptr("STAFF")}

	_, err := svc.Update(context.Background(), domain.Actor{UserID: "u1", Role: domain.RoleStaff}, "u2", req)
	assert.ErrorIs(t, err, ErrRoleChangeForbidden)

	_, err = svc.Update(context.Background(), domain.Actor{UserID: "u2", Role: domain.RoleCustomer}, "u2", req)
	assert.ErrorIs(t, err, ErrRoleChangeForbidden)

	resp, err := svc.Update(context.Background(), domain.Actor{UserID: "o", Role: domain.RoleOwner}, "u2", req)
	require.NoError(t, err)
	assert.Equal(t, "STAFF", resp.Role)
}

func TestUpdate_SelfProfileFields(t *testing.T) {
	repo := &fakeUserRepo{
		getByID: func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, FirstName: "Ana", LastName: "Lopez", Email: "a@b.c"}, nil
		},
		update: func(_ context.Context, u *domain.User) (*domain.User, error) { return u, nil },
	}
	svc := NewService(repo, logger.NewNop())

	resp, err := svc.Update(context.Background(), domain.Actor{UserID: "u1", Role: domain.RoleCustomer}, "u1",
		&models.UpdateUserRequest{Phone: ptr.Ptr("+33600000000"), LastName: ptr.Ptr("Martin")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.FirstName)
	assert.Equal(t, "Martin", resp.LastName)
	require.NotNil(t, resp.Phone)
	assert.Equal(t, "+33600000000", *resp.Phone)
}

func TestUpdate_Errors(t *testing.T) {
	owner := domain.Actor{UserID: "o", Role: domain.RoleOwner}

	svc := NewService(&fakeUserRepo{}, logger.NewNop())
	_, err := svc.Update(context.Background(), owner, "u1", &models.UpdateUserRequest{Email: ptr.Ptr("not-an-email")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Update(context.Background(), owner, "u1", &models.UpdateUserRequest{Role: ptr.Ptr("ADMIN")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	svc = NewService(&fakeUserRepo{getByID: func(context.Context, string) (*domain.User, error) {
		return nil, userRepo.ErrUserNotFound
	}}, logger.NewNop())
	_, err = svc.Update(context.Background(), owner, "u1", &models.UpdateUserRequest{})
	assert.ErrorIs(t, err, ErrUserNotFound)

	svc = NewService(&fakeUserRepo{
		getByID: func(_ context.Context, id string) (*domain.User, error) { return &domain.User{ID: id}, nil },
		update: func(context.Context, *domain.User) (*domain.User, error) {
			return nil, userRepo.ErrDuplicate
		},
	}, logger.NewNop())
	_, err = svc.Update(context.Background(), owner, "u1", &models.UpdateUserRequest{Email: ptr.Ptr("x@y.z")})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestList(t *testing.T) {
	svc := NewService(&fakeUserRepo{list: func(context.Context) ([]*domain.User, error) {
		return []*domain.User{{ID: "a"}, {ID: "b"}}, nil
	}}, logger.NewNop())

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp, 2)

	svc = NewService(&fakeUserRepo{list: func(context.Context) ([]*domain.User, error) {
		return nil, errors.New("boom")
	}}, logger.NewNop())
	_, err = svc.List(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetByFirebaseUID_NotFound(t *testing.T) {
	svc := NewService(&fakeUserRepo{getByFirebaseUID: notFoundByUID}, logger.NewNop())

	_, err := svc.GetByFirebaseUID(context.Background(), "uid")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
