package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/identity"
	"github.com/m04kA/SMC-SalonService/internal/service/users"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
)

const userID = "0b0f6a36-7d6c-4a51-9d0a-5f0b8d3f0a01"

type fakeVerifier struct {
	verifyIDToken       func(ctx context.Context, token string) (*identity.Identity, error)
	verifySessionCookie func(ctx context.Context, cookie string) (*identity.Identity, error)
}

func (f *fakeVerifier) VerifyIDToken(ctx context.Context, token string) (*identity.Identity, error) {
	return f.verifyIDToken(ctx, token)
}

func (f *fakeVerifier) VerifySessionCookie(ctx context.Context, cookie string) (*identity.Identity, error) {
	return f.verifySessionCookie(ctx, cookie)
}

type fakeUserFinder struct {
	getByFirebaseUID func(ctx context.Context, uid string) (*domain.User, error)
}

func (f *fakeUserFinder) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	return f.getByFirebaseUID(ctx, uid)
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

var noContent = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestAuthenticate(t *testing.T) {
	verifier := &fakeVerifier{
		verifyIDToken: func(_ context.Context, token string) (*identity.Identity, error) {
			if token == "good" {
				return &identity.Identity{UID: "uid-bearer"}, nil
			}
			if token == "down" {
				return nil, identity.ErrInternal
			}
			return nil, identity.ErrInvalidToken
		},
		verifySessionCookie: func(_ context.Context, cookie string) (*identity.Identity, error) {
			if cookie == "session-ok" {
				return &identity.Identity{UID: "uid-cookie"}, nil
			}
			return nil, identity.ErrInvalidToken
		},
	}
	auth := NewAuthenticator(verifier, "session", logger.NewNop())

	var seen string
	h := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := GetIdentity(r.Context())
		seen = id.UID
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name     string
		header   string
		cookie   string
		wantCode int
		wantBody string
		wantUID  string
	}{
		{name: "bearer", header: "Bearer good", wantCode: http.StatusNoContent, wantUID: "uid-bearer"},
		{name: "bearer lowercase", header: "bearer good", wantCode: http.StatusNoContent, wantUID: "uid-bearer"},
		{name: "bearer wins over cookie", header: "Bearer good", cookie: "session-ok", wantCode: http.StatusNoContent, wantUID: "uid-bearer"},
		{name: "cookie", cookie: "session-ok", wantCode: http.StatusNoContent, wantUID: "uid-cookie"},
		{name: "missing", wantCode: http.StatusUnauthorized, wantBody: handlers.CodeMissingAuthToken},
		{name: "basic scheme", header: "Basic abc", wantCode: http.StatusUnauthorized, wantBody: handlers.CodeMissingAuthToken},
		{name: "invalid bearer", header: "Bearer bad", wantCode: http.StatusUnauthorized, wantBody: handlers.CodeInvalidAuthToken},
		{name: "invalid cookie", cookie: "expired", wantCode: http.StatusUnauthorized, wantBody: handlers.CodeInvalidAuthToken},
		{name: "provider down", header: "Bearer down", wantCode: http.StatusInternalServerError, wantBody: handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, errorCode(t, rec))
			}
			assert.Equal(t, tt.wantUID, seen)
		})
	}
}

func TestLoadUser(t *testing.T) {
	finder := &fakeUserFinder{getByFirebaseUID: func(_ context.Context, uid string) (*domain.User, error) {
		switch uid {
		case "known":
			return &domain.User{ID: userID, Role: domain.RoleStaff}, nil
		case "broken":
			return nil, errors.New("db down")
		}
		return nil, users.ErrUserNotFound
	}}
	loader := NewUserLoader(finder, logger.NewNop())

	var actor domain.Actor
	h := loader.LoadUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, _ = GetActor(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(uid string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithIdentity(req.Context(), &identity.Identity{UID: uid}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := serve("known")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, domain.Actor{UserID: userID, Role: domain.RoleStaff}, actor)

	rec = serve("stranger")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, handlers.CodeProfileNotFinalized, errorCode(t, rec))

	rec = serve("broken")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireRolesOrSelf(t *testing.T) {
	guard := RequireRolesOrSelf("id", domain.RoleOwner, domain.RoleStaff)(noContent)

	serve := func(actor domain.Actor, routeID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/users/"+routeID, nil)
		req = mux.SetURLVars(req, map[string]string{"id": routeID})
		req = req.WithContext(WithActor(req.Context(), actor))
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, serve(domain.Actor{UserID: "x", Role: domain.RoleOwner}, userID).Code)
	assert.Equal(t, http.StatusNoContent, serve(domain.Actor{UserID: userID, Role: domain.RoleCustomer}, userID).Code)

	rec := serve(domain.Actor{UserID: "other", Role: domain.RoleCustomer}, userID)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, handlers.CodeInsufficientRole, errorCode(t, rec))
}

func TestRequireRoles_NoActor(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireRoles(domain.RoleOwner)(noContent).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, handlers.CodeProfileNotFinalized, errorCode(t, rec))
}

func TestRateLimiter_PerIP(t *testing.T) {
	now := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 2, logger.NewNop())
	rl.now = func() time.Time { return now }
	h := rl.Middleware(noContent)

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.2"))

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1"))
}

func TestClientIP_PrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", clientIP(req))
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://salon.example"})(noContent)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/services", nil)
	req.Header.Set("Origin", "https://salon.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://salon.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/services", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryAndRequestID(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	h := RequestID(AccessLog(logger.NewNop())(Recovery(logger.NewNop())(panicking)))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rec = httptest.NewRecorder()
	RequestID(noContent).ServeHTTP(rec, req)
	assert.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegisterer("salon-test", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m, "salon-test"))
	r.Handle("/api/v1/services/{id}", noContent).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services/abc", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/services/{id}", "204")))
}
