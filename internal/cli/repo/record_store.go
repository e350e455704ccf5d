package repo

import (
	"MoodKeeper/internal/journal"
	"context"
	"time"
)

// RecordStore - записи текущего пользователя на сервере.
type RecordStore interface {
	Create(ctx context.Context, draft journal.Draft) (journal.Record, error)
	// List возвращает записи за окно, новые первыми.
	List(ctx context.Context, window journal.Window) ([]journal.Record, error)
	Delete(ctx context.Context, id string) error
	// Subscribe блокируется до отмены ctx или конца потока. onSnapshot вызывается на каждый
	// снимок (все записи, новые первыми). Ошибки отдельных событий уходят в onError,
	// подписка при этом продолжается.
	Subscribe(ctx context.Context, onSnapshot func([]journal.Record), onError func(error)) error
}

// RecordCache - локальная копия последнего снимка для работы без сети.
type RecordCache interface {
	Replace(records []journal.Record) error
	List() ([]journal.Record, error)
	// SyncedAt - момент последнего Replace; нулевое время, если кэш пуст.
	SyncedAt() (time.Time, error)
	// Purge удаляет все записи и отметку синхронизации; после него SyncedAt снова нулевой.
	Purge() error
	Close() error
}
