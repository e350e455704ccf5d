package handlers_test

import (
	"MoodKeeper/internal/config"
	"MoodKeeper/internal/handlers"
	"MoodKeeper/internal/middleware"
	"MoodKeeper/internal/model"
	"MoodKeeper/internal/realtime"
	"MoodKeeper/internal/repo"
	"MoodKeeper/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Minimal mocks
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockRecordRepo struct{ mock.Mock }

func (m *mockRecordRepo) Create(ctx context.Context, rec *model.Record) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockRecordRepo) ListByUser(ctx context.Context, userID int64) ([]model.Record, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Record); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRecordRepo) Delete(ctx context.Context, userID int64, id string) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

var _ repo.RecordRepository = (*mockRecordRepo)(nil)

const testSecret = "test-secret"

type testEnv struct {
	router  http.Handler
	users   *mockUserRepo
	records *mockRecordRepo
	hub     *realtime.Hub
	userSvc *service.UserService
}

// --- Helpers ---
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{AuthSecret: testSecret, RecentLoginWindow: 5 * time.Minute}
	logger := zap.NewNop().Sugar()

	ur := &mockUserRepo{}
	rr := &mockRecordRepo{}
	hub := realtime.NewHub(logger)
	bus := realtime.NewMemoryBus()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, bus.StartForwarder(ctx, hub.Broadcast))

	userSvc := service.NewUserService(ur, cfg.RecentLoginWindow)
	recordSvc := service.NewRecordService(rr, bus, logger)

	h := handlers.NewHandler(userSvc, recordSvc, hub, logger, cfg)
	return &testEnv{router: h.Router, users: ur, records: rr, hub: hub, userSvc: userSvc}
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64) {
	t.Helper()
	rr := httptest.NewRecorder()
	require.NoError(t, middleware.SetLoginCookie(rr, userID, testSecret))
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

// addStaleAuthCookie выпускает токен с моментом входа в прошлом.
func addStaleAuthCookie(t *testing.T, req *http.Request, userID int64, age time.Duration) {
	t.Helper()
	tok, err := middleware.BuildToken(userID, time.Now().Add(-age), testSecret)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: tok})
}

func hasAuthCookie(resp *http.Response) bool {
	for _, c := range resp.Cookies() {
		if c.Name == middleware.AuthCookieName && c.Value != "" {
			return true
		}
	}
	return false
}
