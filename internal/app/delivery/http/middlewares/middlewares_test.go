package middlewares

import (
	"context"
	"errors"
	"mindhaven-service/internal/app/config"
	"mindhaven-service/internal/app/models"
	"mindhaven-service/internal/app/services/shared/metrics"
	"mindhaven-service/internal/pkg/constvars"
	"mindhaven-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) CreateToken(ctx context.Context, claims *models.SessionClaims) (string, error) {
	args := m.Called(ctx, claims)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) VerifyToken(ctx context.Context, token string) *models.SessionClaims {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.SessionClaims)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.CredentialUser) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) FindPublicByID(ctx context.Context, userID string) (*models.PublicUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PublicUser), args.Error(1)
}

func (m *MockUserRepository) FindPublicByEmail(ctx context.Context, email string) (*models.PublicUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PublicUser), args.Error(1)
}

func (m *MockUserRepository) FindCredentialsByEmail(ctx context.Context, email string) (*models.CredentialUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CredentialUser), args.Error(1)
}

func (m *MockUserRepository) FindDoctorsWithoutProfile(ctx context.Context) ([]models.PublicUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PublicUser), args.Error(1)
}

func (m *MockUserRepository) SetActive(ctx context.Context, userID string, active bool) error {
	args := m.Called(ctx, userID, active)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newTestMiddlewares() (*Middlewares, *MockTokenService, *MockUserRepository) {
	tokenService := new(MockTokenService)
	userRepository := new(MockUserRepository)
	internalConfig := &config.InternalConfig{
		App: config.App{
			MaxRequests:              100,
			AuthMaxRequestsPerMinute: 2,
			AuthBlockTimeInMinutes:   1,
		},
	}
	return NewMiddlewares(zap.NewNop(), internalConfig, tokenService, userRepository, metrics.NewMetrics()), tokenService, userRepository
}

func decodeErrorBody(t *testing.T, rr *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func identityEcho(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := r.Context().Value(constvars.CONTEXT_IDENTITY_KEY).(*models.PublicUser)
		require.True(t, ok)
		w.Header().Set("X-Identity", identity.Email)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticate(t *testing.T) {
	userID := primitive.NewObjectID()
	activeUser := &models.PublicUser{ID: userID, Email: "ada@example.com", UserType: models.RoleDoctor, IsActive: true}
	claims := &models.SessionClaims{UserID: userID.Hex(), Role: models.RoleDoctor}

	t.Run("Missing Header Is Rejected", func(t *testing.T) {
		mw, _, _ := newTestMiddlewares()
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		rr := httptest.NewRecorder()

		mw.Authenticate(identityEcho(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		body := decodeErrorBody(t, rr)
		assert.False(t, body.Success)
		assert.Equal(t, constvars.ErrClientNotAuthorizedNoToken, body.Message)
		assert.Equal(t, 1.0, testutil.ToFloat64(mw.Metrics.AuthGateOutcomes.WithLabelValues(metrics.AuthOutcomeMissingToken)))
	})

	t.Run("Wrong Scheme Is Treated As Missing", func(t *testing.T) {
		mw, _, _ := newTestMiddlewares()
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Basic abc")
		rr := httptest.NewRecorder()

		mw.Authenticate(identityEcho(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, constvars.ErrClientNotAuthorizedNoToken, decodeErrorBody(t, rr).Message)
	})

	t.Run("Invalid Token Is Rejected", func(t *testing.T) {
		mw, tokens, users := newTestMiddlewares()
		tokens.On("VerifyToken", mock.Anything, "bad").Return(nil)
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer bad")
		rr := httptest.NewRecorder()

		mw.Authenticate(identityEcho(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, constvars.ErrClientNotAuthorized, decodeErrorBody(t, rr).Message)
		users.AssertNotCalled(t, "FindPublicByID", mock.Anything, mock.Anything)
	})

	t.Run("Lookup Failure Is Unauthorized", func(t *testing.T) {
		mw, tokens, users := newTestMiddlewares()
		tokens.On("VerifyToken", mock.Anything, "good").Return(claims)
		users.On("FindPublicByID", mock.Anything, userID.Hex()).Return(nil, errors.New("connection reset"))
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer good")
		rr := httptest.NewRecorder()

		mw.Authenticate(identityEcho(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, 1.0, testutil.ToFloat64(mw.Metrics.AuthGateOutcomes.WithLabelValues(metrics.AuthOutcomeLookupFailed)))
	})

	t.Run("Unknown User Is Not Found", func(t *testing.T) {
		mw, tokens, users := newTestMiddlewares()
		tokens.On("VerifyToken", mock.Anything, "good").Return(claims)
		users.On("FindPublicByID", mock.Anything, userID.Hex()).Return(nil, nil)
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer good")
		rr := httptest.NewRecorder()

		mw.Authenticate(identityEcho(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, constvars.ErrClientUserNotFound, decodeErrorBody(t, rr).Message)
	})

	t.Run("Deactivated User Is Forbidden", func(t *testing.T) {
		mw, tokens, users := newTestMiddlewares()
		inactive := *activeUser
		inactive.IsActive = false
		tokens.On("VerifyToken", mock.Anything, "good").Return(claims)
		users.On("FindPublicByID", mock.Anything, userID.Hex()).Return(&inactive, nil)
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer good")
		rr := httptest.NewRecorder()

		mw.Authenticate(identityEcho(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, constvars.ErrClientAccountDeactivated, decodeErrorBody(t, rr).Message)
	})

	t.Run("Active User Reaches Handler", func(t *testing.T) {
		mw, tokens, users := newTestMiddlewares()
		tokens.On("VerifyToken", mock.Anything, "good").Return(claims)
		users.On("FindPublicByID", mock.Anything, userID.Hex()).Return(activeUser, nil)
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set(constvars.HeaderAuthorization, "bearer good")
		rr := httptest.NewRecorder()

		mw.Authenticate(identityEcho(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "ada@example.com", rr.Header().Get("X-Identity"))
		assert.Equal(t, 1.0, testutil.ToFloat64(mw.Metrics.AuthGateOutcomes.WithLabelValues(metrics.AuthOutcomeAccepted)))
	})
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	withIdentity := func(role models.Role) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/doctors/profile", nil)
		identity := &models.PublicUser{UserType: role, IsActive: true}
		return req.WithContext(context.WithValue(req.Context(), constvars.CONTEXT_IDENTITY_KEY, identity))
	}

	t.Run("Matching Role Passes", func(t *testing.T) {
		mw, _, _ := newTestMiddlewares()
		rr := httptest.NewRecorder()
		mw.RequireRole(models.RoleDoctor)(ok).ServeHTTP(rr, withIdentity(models.RoleDoctor))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Patient On Doctor Route Is Forbidden", func(t *testing.T) {
		mw, _, _ := newTestMiddlewares()
		rr := httptest.NewRecorder()
		mw.RequireRole(models.RoleDoctor)(ok).ServeHTTP(rr, withIdentity(models.RolePatient))
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, constvars.ErrClientOnlyDoctors, decodeErrorBody(t, rr).Message)
	})

	t.Run("Doctor On Patient Route Is Forbidden", func(t *testing.T) {
		mw, _, _ := newTestMiddlewares()
		rr := httptest.NewRecorder()
		mw.RequireRole(models.RolePatient)(ok).ServeHTTP(rr, withIdentity(models.RoleDoctor))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Missing Identity Is Unauthorized", func(t *testing.T) {
		mw, _, _ := newTestMiddlewares()
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/doctors/profile", nil)
		mw.RequireRole(models.RoleDoctor)(ok).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	mw, _, _ := newTestMiddlewares()
	var seen string
	var isClient bool
	handler := mw.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetRequestID(r.Context())
		isClient, _ = r.Context().Value(constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY).(bool)
	}))

	t.Run("Client Header Is Propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-123")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, "client-123", seen)
		assert.True(t, isClient)
		assert.Equal(t, "client-123", rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Missing Header Is Generated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.NotEmpty(t, seen)
		assert.False(t, isClient)
		assert.Equal(t, seen, rr.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestErrorHandler(t *testing.T) {
	mw, _, _ := newTestMiddlewares()
	handler := mw.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	req := httptest.NewRequest(http.MethodGet, "/doctors", nil)
	rr := httptest.NewRecorder()

	require.NotPanics(t, func() { handler.ServeHTTP(rr, req) })

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.False(t, decodeErrorBody(t, rr).Success)
}

func TestInstrument(t *testing.T) {
	mw, _, _ := newTestMiddlewares()
	router := chi.NewRouter()
	router.Use(mw.Instrument)
	router.Get("/doctors/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/doctors/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(mw.Metrics.RequestsTotal.WithLabelValues("/doctors/{id}", http.MethodGet, "404")))
}

func TestLogging(t *testing.T) {
	mw, _, _ := newTestMiddlewares()
	handler := mw.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health?x=1", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestRateLimiter(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	send := func(rl *RateLimiter, remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{}"))
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		rl.Limit(ok).ServeHTTP(rr, req)
		return rr
	}

	t.Run("Burst Then Block", func(t *testing.T) {
		now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		rl := NewRateLimiter(2, 30*time.Second, time.Minute, zap.NewNop())
		rl.now = func() time.Time { return now }

		assert.Equal(t, http.StatusOK, send(rl, "10.0.0.1:5000").Code)
		assert.Equal(t, http.StatusOK, send(rl, "10.0.0.1:5001").Code)

		rr := send(rl, "10.0.0.1:5002")
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "61", rr.Header().Get(constvars.HeaderRetryAfter))
		assert.Equal(t, constvars.ErrClientTooManyRequests, decodeErrorBody(t, rr).Message)

		// another client is unaffected
		assert.Equal(t, http.StatusOK, send(rl, "10.0.0.2:5000").Code)

		// still blocked even though a token has refilled
		now = now.Add(45 * time.Second)
		assert.Equal(t, http.StatusTooManyRequests, send(rl, "10.0.0.1:5003").Code)

		now = now.Add(20 * time.Second)
		assert.Equal(t, http.StatusOK, send(rl, "10.0.0.1:5004").Code)
	})

	t.Run("Evicts Idle Clients", func(t *testing.T) {
		now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		rl := NewRateLimiter(1, 30*time.Second, time.Minute, zap.NewNop())
		rl.now = func() time.Time { return now }

		assert.Equal(t, http.StatusOK, send(rl, "10.0.0.1:5000").Code)
		assert.Equal(t, http.StatusTooManyRequests, send(rl, "10.0.0.1:5001").Code)
		assert.Equal(t, http.StatusOK, send(rl, "10.0.0.2:5000").Code)
		assert.Equal(t, http.StatusOK, send(rl, "10.0.0.3:5000").Code)
		assert.Equal(t, 4, rl.tracked())

		now = now.Add(2 * time.Minute)
		assert.Equal(t, http.StatusOK, send(rl, "10.0.0.4:5000").Code)
		assert.Equal(t, 1, rl.tracked())

		// an evicted client starts over with a full bucket
		assert.Equal(t, http.StatusOK, send(rl, "10.0.0.1:5002").Code)
		assert.Equal(t, 2, rl.tracked())
	})
}

func TestGlobalRateLimiter(t *testing.T) {
	mw, _, _ := newTestMiddlewares()
	mw.InternalConfig.App.MaxRequests = 1
	handler := mw.GlobalRateLimiter()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/doctors", nil)
	req.RemoteAddr = "10.0.0.9:1234"
	handler.ServeHTTP(first, req)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, constvars.ErrClientTooManyRequests, decodeErrorBody(t, second).Message)
}
