package commands

import (
	"MoodKeeper/internal/config"
	"MoodKeeper/internal/handlers"
	"MoodKeeper/internal/realtime"
	srvrepo "MoodKeeper/internal/repo"
	srvservice "MoodKeeper/internal/service"
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEnv - настоящий сервер поверх in-memory SQLite и конфиг клиента во временном каталоге.
type testEnv struct {
	ts      *httptest.Server
	cfg     *config.Config
	userSvc *srvservice.UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := srvrepo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	bus := realtime.NewMemoryBus()
	hub := realtime.NewHub(nil)
	require.NoError(t, bus.StartForwarder(ctx, hub.Broadcast))

	dir := t.TempDir()
	cfg := &config.Config{
		AuthSecret:   "test-secret",
		StateDir:     filepath.Join(dir, "state"),
		ClientDBPath: filepath.Join(dir, "users"),
	}
	userSvc := srvservice.NewUserService(srvrepo.NewUserRepository(db), time.Minute)
	recordSvc := srvservice.NewRecordService(srvrepo.NewRecordRepository(db), bus, nil)
	h := handlers.NewHandler(userSvc, recordSvc, hub, zap.NewNop().Sugar(), cfg)

	ts := httptest.NewServer(h.Router)
	t.Cleanup(ts.Close)
	cfg.ServerURL = ts.URL
	return &testEnv{ts: ts, cfg: cfg, userSvc: userSvc}
}

// syncBuffer - bytes.Buffer, безопасный для записи из горутины watch.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// withOutput перенаправляет Out на время теста.
func withOutput(t *testing.T) *syncBuffer {
	t.Helper()
	old := Out
	buf := &syncBuffer{}
	Out = buf
	t.Cleanup(func() { Out = old })
	return buf
}

// run выполняет команду через Dispatch и возвращает код и её вывод.
func (e *testEnv) run(t *testing.T, buf *syncBuffer, args ...string) (int, string) {
	t.Helper()
	before := len(buf.String())
	code := Dispatch(context.Background(), e.cfg, args)
	return code, buf.String()[before:]
}
