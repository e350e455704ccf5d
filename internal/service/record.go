package service

import (
	"MoodKeeper/internal/journal"
	"MoodKeeper/internal/model"
	"MoodKeeper/internal/realtime"
	"MoodKeeper/internal/repo"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrRecordNotFound = errors.New("record not found")

// RecordService - запись, чтение и удаление записей дневника, плюс сигналы об изменениях.
type RecordService struct {
	repo   repo.RecordRepository
	bus    realtime.Bus
	logger *zap.SugaredLogger

	Now func() time.Time
}

func NewRecordService(r repo.RecordRepository, bus realtime.Bus, logger *zap.SugaredLogger) *RecordService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &RecordService{repo: r, bus: bus, logger: logger, Now: time.Now}
}

// Create валидирует черновик и сохраняет запись. Ошибки валидации оборачивают journal.ErrValidation.
func (s *RecordService) Create(ctx context.Context, userID int64, draft journal.Draft) (journal.Record, error) {
	rec, err := journal.Validate(draft)
	if err != nil {
		return journal.Record{}, err
	}
	rec.ID = uuid.NewString()
	rec.UserID = userID
	rec.CreatedAt = s.Now().UTC()

	m := model.FromJournal(rec)
	if err := s.repo.Create(ctx, &m); err != nil {
		return journal.Record{}, fmt.Errorf("create record: %w", err)
	}
	s.publish(ctx, userID, realtime.EventRecordsChanged)
	return rec, nil
}

// List возвращает записи пользователя за окно, новые первыми.
func (s *RecordService) List(ctx context.Context, userID int64, window journal.Window) ([]journal.Record, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return journal.FilterByWindow(model.ToJournal(rows), window, s.Now()), nil
}

func (s *RecordService) Delete(ctx context.Context, userID int64, id string) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if !deleted {
		return ErrRecordNotFound
	}
	s.publish(ctx, userID, realtime.EventRecordsChanged)
	return nil
}

// Insights считает сводку по всем записям пользователя.
func (s *RecordService) Insights(ctx context.Context, userID int64) (journal.Summary, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return journal.Summary{}, fmt.Errorf("list records: %w", err)
	}
	return journal.Summarize(model.ToJournal(rows), s.Now()), nil
}

// AccountDeleted сообщает подписчикам пользователя, что аккаунта больше нет.
func (s *RecordService) AccountDeleted(ctx context.Context, userID int64) {
	s.publish(ctx, userID, realtime.EventAccountDeleted)
}

// publish не прерывает операцию: запись уже сохранена, подписчик догонит со следующим снимком.
func (s *RecordService) publish(ctx context.Context, userID int64, ev realtime.Event) {
	if s.bus == nil {
		return
	}
	msg := realtime.Message{Channel: realtime.UserChannel(userID), Event: ev}
	if err := s.bus.Publish(ctx, msg); err != nil {
		s.logger.Warnw("publish change failed", "userID", userID, "event", ev, "error", err)
	}
}
