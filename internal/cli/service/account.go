package service

import (
	"MoodKeeper/internal/cli/repo"
	"MoodKeeper/internal/journal"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// AccountService удаляет учётную запись: сначала все записи, затем саму учётку.
type AccountService struct {
	store    repo.RecordStore
	identity repo.Identity
	session  *SessionService
	cache    repo.RecordCache
	log      *zap.SugaredLogger
}

// NewAccountService создаёт сервис. cache может быть nil, если офлайн-кэша нет.
func NewAccountService(store repo.RecordStore, identity repo.Identity, session *SessionService, cache repo.RecordCache, logger *zap.SugaredLogger) *AccountService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &AccountService{store: store, identity: identity, session: session, cache: cache, log: logger}
}

// Delete выполняет каскад целиком или возвращает ошибку. Если упало удаление записи,
// учётка не тронута. Если упало удаление учётки, записи уже удалены (откат не делается),
// а ошибка удаления учётки возвращается как есть, чтобы errors.Is видел причину
// (например, api.ErrRecentLoginRequired).
func (s *AccountService) Delete(ctx context.Context) (int, error) {
	recs, err := s.store.List(ctx, journal.WindowAll)
	if err != nil {
		return 0, fmt.Errorf("list records: %w", err)
	}
	for i, r := range recs {
		if err := s.store.Delete(ctx, r.ID); err != nil {
			return i, fmt.Errorf("delete record %s: %w", r.ID, err)
		}
	}

	if err := s.identity.DeleteAccount(ctx); err != nil {
		s.log.Warnw("account removal failed after records were deleted", "records", len(recs), "err", err)
		return len(recs), err
	}

	// записи удалённой учётки не остаются в офлайн-кэше
	if s.cache != nil {
		if err := s.cache.Purge(); err != nil {
			s.log.Warnw("purge offline cache after account removal", "err", err)
		}
	}

	if s.session != nil {
		if err := s.session.SignOut(ctx); err != nil {
			s.log.Debugw("sign out after account removal", "err", err)
		}
	}
	return len(recs), nil
}
