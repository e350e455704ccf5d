package bootstrap

import (
	"MoodKeeper/internal/cli/repo"
	reposqlite "MoodKeeper/internal/cli/repo/sqlite"
	"MoodKeeper/internal/config"
	"fmt"
	"sync"
)

// OpenRecordCache открывает офлайн-кэш записей для текущего пользователя,
// выполняет миграции и возвращает (cache, cleanup, error).
// cleanup необходимо вызвать после окончания работы, чтобы закрыть соединение с БД.
func OpenRecordCache(cfg *config.Config, users repo.UserContextStore) (repo.RecordCache, func() error, error) {
	login, err := users.LoadLogin()
	if err != nil {
		return nil, nil, fmt.Errorf("no active user, run login or register: %w", err)
	}
	r, _, err := reposqlite.OpenForUser(cfg.ClientDBPath, login)
	if err != nil {
		return nil, nil, fmt.Errorf("open user cache: %w", err)
	}
	if err := r.Migrate(); err != nil {
		_ = r.Close()
		return nil, nil, fmt.Errorf("migrate user cache: %w", err)
	}
	var once sync.Once
	cleanup := func() error {
		var cerr error
		once.Do(func() { cerr = r.Close() })
		return cerr
	}
	return r, cleanup, nil
}
