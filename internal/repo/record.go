package repo

import (
	"MoodKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// RecordRepository - коллекция записей, всегда в разрезе владельца.
type RecordRepository interface {
	Create(ctx context.Context, rec *model.Record) error
	// ListByUser возвращает записи пользователя, новые первыми.
	ListByUser(ctx context.Context, userID int64) ([]model.Record, error)
	// Delete возвращает deleted=false, если записи у пользователя нет.
	Delete(ctx context.Context, userID int64, id string) (bool, error)
}

type recordRepo struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepo{db: db}
}

func (r *recordRepo) Create(ctx context.Context, rec *model.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recordRepo) ListByUser(ctx context.Context, userID int64) ([]model.Record, error) {
	var out []model.Record
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recordRepo) Delete(ctx context.Context, userID int64, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Record{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
