package repo

import (
	"MoodKeeper/internal/model"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

const defaultSQLiteDSN = "file:moodkeeper.db?_pragma=busy_timeout(5000)"

// InitDB открывает БД по строке подключения и выполняет миграции.
// postgres:// и postgresql:// открываются драйвером Postgres, всё остальное считается
// путём/DSN SQLite (драйвер modernc, без CGO).
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialectorFor(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate создаёт/обновляет таблицы всех серверных моделей.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Record{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func dialectorFor(dsn string) gorm.Dialector {
	dsn = strings.TrimSpace(dsn)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgres.Open(dsn)
	}
	if dsn == "" {
		dsn = defaultSQLiteDSN
	}
	return gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
}
