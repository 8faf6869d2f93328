package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/internal/integrations/identity"
	"github.com/m04kA/SMC-SalonService/internal/service/auth/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

const week = 7 * 24 * time.Hour

type fakeIdentity struct {
	verify        func(ctx context.Context, idToken string) (*identity.Identity, error)
	sessionCookie func(ctx context.Context, idToken string, ttl time.Duration) (string, error)
}

func (f *fakeIdentity) VerifyIDToken(ctx context.Context, idToken string) (*identity.Identity, error) {
	return f.verify(ctx, idToken)
}

func (f *fakeIdentity) CreateSessionCookie(ctx context.Context, idToken string, ttl time.Duration) (string, error) {
	return f.sessionCookie(ctx, idToken, ttl)
}

type fakeUserRepo struct {
	getByFirebaseUID func(ctx context.Context, uid string) (*domain.User, error)
}

func (f *fakeUserRepo) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	return f.getByFirebaseUID(ctx, uid)
}

func verified(id *identity.Identity) func(context.Context, string) (*identity.Identity, error) {
	return func(context.Context, string) (*identity.Identity, error) { return id, nil }
}

func cookie(_ context.Context, _ string, ttl time.Duration) (string, error) {
	if ttl != week {
		return "", errors.New("unexpected ttl")
	}
	return "session-cookie", nil
}

func TestLogin_ExistingUser(t *testing.T) {
	idp := &fakeIdentity{verify: verified(&identity.Identity{UID: "uid-1", Email: "ana@example.com"}), sessionCookie: cookie}
	users := &fakeUserRepo{getByFirebaseUID: func(context.Context, string) (*domain.User, error) {
		return &domain.User{ID: "user-1", Email: "ana@example.com", FirstName: "Ana", LastName: "Lopez"}, nil
	}}
	svc := NewService(idp, users, week, logger.NewNop())

	resp, err := svc.Login(context.Background(), &models.LoginRequest{IDToken: "tok"})
	require.NoError(t, err)

	assert.True(t, resp.Authenticated)
	require.NotNil(t, resp.NeedsProfile)
	assert.False(t, *resp.NeedsProfile)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Nil(t, resp.Prefill)
	assert.Equal(t, "session-cookie", resp.SessionCookie)
	assert.Equal(t, week, resp.ExpiresIn)
}

func TestLogin_NeedsProfile(t *testing.T) {
	idp := &fakeIdentity{
		verify:        verified(&identity.Identity{UID: "uid-1", Email: "ana@example.com", Name: "Ana L", Picture: "http://p"}),
		sessionCookie: cookie,
	}
	users := &fakeUserRepo{getByFirebaseUID: func(context.Context, string) (*domain.User, error) {
		return nil, userRepo.ErrUserNotFound
	}}
	svc := NewService(idp, users, week, logger.NewNop())

	resp, err := svc.Login(context.Background(), &models.LoginRequest{IDToken: "tok"})
	require.NoError(t, err)

	assert.True(t, *resp.NeedsProfile)
	assert.Nil(t, resp.User)
	assert.Equal(t, &models.Prefill{Email: "ana@example.com", DisplayName: "Ana L", PhotoURL: "http://p"}, resp.Prefill)
}

func TestLogin_NoEmail(t *testing.T) {
	idp := &fakeIdentity{verify: verified(&identity.Identity{UID: "uid-1"})}
	svc := NewService(idp, &fakeUserRepo{}, week, logger.NewNop())

	resp, err := svc.Login(context.Background(), &models.LoginRequest{IDToken: "tok"})
	require.NoError(t, err)
	assert.False(t, resp.Authenticated)
	assert.Equal(t, models.ReasonNoEmail, resp.Reason)
	assert.Empty(t, resp.SessionCookie)
}

func TestLogin_Errors(t *testing.T) {
	svc := NewService(&fakeIdentity{}, &fakeUserRepo{}, week, logger.NewNop())
	_, err := svc.Login(context.Background(), &models.LoginRequest{IDToken: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	idp := &fakeIdentity{verify: func(context.Context, string) (*identity.Identity, error) {
		return nil, identity.ErrInvalidToken
	}}
	svc = NewService(idp, &fakeUserRepo{}, week, logger.NewNop())
	_, err = svc.Login(context.Background(), &models.LoginRequest{IDToken: "tok"})
	assert.ErrorIs(t, err, ErrInvalidToken)

	idp = &fakeIdentity{verify: func(context.Context, string) (*identity.Identity, error) {
		return nil, identity.ErrInternal
	}}
	svc = NewService(idp, &fakeUserRepo{}, week, logger.NewNop())
	_, err = svc.Login(context.Background(), &models.LoginRequest{IDToken: "tok"})
	assert.ErrorIs(t, err, ErrInternal)
}
