package service

import (
	"MoodKeeper/internal/cli/repo"
	"MoodKeeper/internal/journal"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

var errNoCache = errors.New("no cached records")

// History - записи за окно. Stale означает, что сервер был недоступен и данные взяты из кэша.
type History struct {
	Records  []journal.Record
	Stale    bool
	SyncedAt time.Time
}

// View - то, что показывает живой экран: записи за окно и сводка по всем записям.
type View struct {
	Records []journal.Record
	Summary journal.Summary
}

// JournalService - добавление записей, история, инсайты и живые обновления.
type JournalService struct {
	store repo.RecordStore
	cache repo.RecordCache
	log   *zap.SugaredLogger

	Now func() time.Time
}

// NewJournalService создаёт сервис. cache может быть nil, тогда офлайн-режима нет.
func NewJournalService(store repo.RecordStore, cache repo.RecordCache, logger *zap.SugaredLogger) *JournalService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &JournalService{store: store, cache: cache, log: logger, Now: time.Now}
}

// Add проверяет черновик локально и только потом отправляет на сервер.
func (s *JournalService) Add(ctx context.Context, draft journal.Draft) (journal.Record, error) {
	if _, err := journal.Validate(draft); err != nil {
		return journal.Record{}, err
	}
	return s.store.Create(ctx, draft)
}

// History загружает все записи, обновляет кэш и фильтрует по окну локально.
// Если сервер недоступен, а кэш есть, возвращает данные кэша с Stale=true.
func (s *JournalService) History(ctx context.Context, window journal.Window) (History, error) {
	all, err := s.store.List(ctx, journal.WindowAll)
	if err != nil {
		cached, cerr := s.fromCache()
		if cerr != nil {
			return History{}, err
		}
		s.log.Warnw("server unavailable, showing cached records", "err", err)
		cached.Records = journal.FilterByWindow(cached.Records, window, s.Now())
		return cached, nil
	}
	s.remember(all)
	return History{Records: journal.FilterByWindow(all, window, s.Now()), SyncedAt: s.Now()}, nil
}

// Insights считает сводку по всем записям пользователя.
func (s *JournalService) Insights(ctx context.Context) (journal.Summary, bool, error) {
	h, err := s.History(ctx, journal.WindowAll)
	if err != nil {
		return journal.Summary{}, false, err
	}
	return journal.Summarize(h.Records, s.Now()), h.Stale, nil
}

// Watch подписывается на снимки и пересчитывает View на каждый. Блокируется до отмены ctx.
func (s *JournalService) Watch(ctx context.Context, window journal.Window, onView func(View), onError func(error)) error {
	if onError == nil {
		onError = func(error) {}
	}
	return s.store.Subscribe(ctx, func(all []journal.Record) {
		s.remember(all)
		now := s.Now()
		onView(View{
			Records: journal.FilterByWindow(all, window, now),
			Summary: journal.Summarize(all, now),
		})
	}, func(err error) {
		s.log.Warnw("record stream error", "err", err)
		onError(err)
	})
}

func (s *JournalService) remember(all []journal.Record) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Replace(all); err != nil {
		s.log.Warnw("cache update failed", "err", err)
	}
}

func (s *JournalService) fromCache() (History, error) {
	if s.cache == nil {
		return History{}, errNoCache
	}
	syncedAt, err := s.cache.SyncedAt()
	if err != nil {
		return History{}, err
	}
	if syncedAt.IsZero() {
		return History{}, errNoCache
	}
	recs, err := s.cache.List()
	if err != nil {
		return History{}, err
	}
	return History{Records: recs, Stale: true, SyncedAt: syncedAt}, nil
}
