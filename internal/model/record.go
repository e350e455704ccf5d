package model

import (
	"time"

	"MoodKeeper/internal/journal"
)

// Record - серверная модель записи дневника. Записи разделены по UserID.
type Record struct {
	ID     string `gorm:"primaryKey;type:varchar(36)"`
	UserID int64  `gorm:"not null;index:idx_records_user_created,priority:1"`

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Category      string `gorm:"not null;size:32"`
	CategoryValue string `gorm:"size:64"`
	Content       string `gorm:"type:text"`

	// Под-атрибуты: заполнен не более чем один, в зависимости от категории
	PainValue       *string `gorm:"size:32"`
	ScreenTimeValue *string `gorm:"size:32"`
	SeverityValue   *string `gorm:"size:32"`

	CreatedAt time.Time `gorm:"not null;index:idx_records_user_created,priority:2,sort:desc" json:"created_at"`
}

// FromJournal собирает модель из уже нормализованной записи.
func FromJournal(r journal.Record) Record {
	return Record{
		ID:              r.ID,
		UserID:          r.UserID,
		Category:        string(r.Category),
		CategoryValue:   r.CategoryValue,
		Content:         r.Content,
		PainValue:       optional(r.PainValue),
		ScreenTimeValue: optional(r.ScreenTimeValue),
		SeverityValue:   optional(r.SeverityValue),
		CreatedAt:       r.CreatedAt,
	}
}

// Journal переводит модель в доменную запись.
func (r Record) Journal() journal.Record {
	return journal.Record{
		ID:              r.ID,
		UserID:          r.UserID,
		Category:        journal.Category(r.Category),
		CategoryValue:   r.CategoryValue,
		Content:         r.Content,
		PainValue:       deref(r.PainValue),
		ScreenTimeValue: deref(r.ScreenTimeValue),
		SeverityValue:   deref(r.SeverityValue),
		CreatedAt:       r.CreatedAt.UTC(),
	}
}

// ToJournal converts a slice preserving order.
func ToJournal(rs []Record) []journal.Record {
	out := make([]journal.Record, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Journal())
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
