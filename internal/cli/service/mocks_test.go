package service

import (
	"MoodKeeper/internal/cli/repo"
	"MoodKeeper/internal/journal"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type mockIdentity struct{ mock.Mock }

func (m *mockIdentity) Register(ctx context.Context, login, password, displayName string) (repo.User, error) {
	args := m.Called(ctx, login, password, displayName)
	return args.Get(0).(repo.User), args.Error(1)
}

func (m *mockIdentity) Login(ctx context.Context, login, password string) (repo.User, error) {
	args := m.Called(ctx, login, password)
	return args.Get(0).(repo.User), args.Error(1)
}

func (m *mockIdentity) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockIdentity) Current(ctx context.Context) (repo.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(repo.User), args.Error(1)
}

func (m *mockIdentity) DeleteAccount(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockStore struct{ mock.Mock }

func (m *mockStore) Create(ctx context.Context, draft journal.Draft) (journal.Record, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(journal.Record), args.Error(1)
}

func (m *mockStore) List(ctx context.Context, window journal.Window) ([]journal.Record, error) {
	args := m.Called(ctx, window)
	recs, _ := args.Get(0).([]journal.Record)
	return recs, args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// Subscribe отдаёт снимки из поля snapshots и возвращает ошибку из ожидания.
func (m *mockStore) Subscribe(ctx context.Context, onSnapshot func([]journal.Record), onError func(error)) error {
	args := m.Called(ctx)
	if snaps, ok := args.Get(0).([][]journal.Record); ok {
		for _, s := range snaps {
			onSnapshot(s)
		}
	}
	if e, ok := args.Get(1).(error); ok && onError != nil {
		onError(e)
	}
	return args.Error(2)
}

// memStore - простые файлы состояния в памяти.
type memStore struct {
	login string
	intro bool
	fail  error
}

func (s *memStore) SaveLogin(login string) error { s.login = login; return s.fail }
func (s *memStore) LoadLogin() (string, error)   { return s.login, nil }
func (s *memStore) ClearLogin() error            { s.login = ""; return s.fail }
func (s *memStore) IntroSeen() (bool, error)     { return s.intro, nil }
func (s *memStore) MarkIntroSeen() error         { s.intro = true; return nil }
func (s *memStore) ClearIntro() error            { s.intro = false; return nil }

type memCache struct {
	records  []journal.Record
	syncedAt time.Time
}

func (c *memCache) Replace(records []journal.Record) error {
	c.records = append([]journal.Record(nil), records...)
	c.syncedAt = time.Now()
	return nil
}
func (c *memCache) List() ([]journal.Record, error)  { return c.records, nil }
func (c *memCache) SyncedAt() (time.Time, error)    { return c.syncedAt, nil }
func (c *memCache) Purge() error {
	c.records = nil
	c.syncedAt = time.Time{}
	return nil
}
func (c *memCache) Close() error                    { return nil }
