package model

import "time"

// User - учётная запись (identity) на сервере.
type User struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Login       string `gorm:"uniqueIndex;not null"`
	Password    string `gorm:"not null"` // bcrypt hash
	DisplayName string

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
