package sqlite

import (
	"MoodKeeper/internal/cli/repo"
	"MoodKeeper/internal/journal"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	_ "modernc.org/sqlite"
)

const syncedAtKey = "synced_at"

// RecordCacheSQLite - локальная копия последнего снимка записей (SQLite, файл на пользователя).
type RecordCacheSQLite struct {
	db    *sql.DB
	login string
}

var _ repo.RecordCache = (*RecordCacheSQLite)(nil)

var loginRe = regexp.MustCompile(`^[A-Za-z0-9._@-]+$`)

// OpenForUser открывает (и создаёт при необходимости) файл кэша base/<login>/client.sqlite.
// Вторым значением возвращается путь к БД.
func OpenForUser(base, login string) (*RecordCacheSQLite, string, error) {
	if login == "" {
		return nil, "", errors.New("empty login for user cache")
	}
	if !loginRe.MatchString(login) || login == "." || login == ".." {
		return nil, "", fmt.Errorf("login %q cannot be used as a directory name", login)
	}
	if base == "" {
		return nil, "", errors.New("client db path is not configured")
	}
	dir := filepath.Join(base, login)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, "", err
	}
	dbPath := filepath.Join(dir, "client.sqlite")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, "", err
	}
	return &RecordCacheSQLite{db: db, login: login}, dbPath, nil
}

// Close закрывает соединение с БД.
func (r *RecordCacheSQLite) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Migrate гарантирует наличие необходимых таблиц/индексов.
func (r *RecordCacheSQLite) Migrate() error {
	scripts, err := migrationScripts()
	if err != nil {
		return err
	}
	for _, ddl := range scripts {
		if _, err := r.db.Exec(ddl); err != nil {
			return fmt.Errorf("migrate cache: %w", err)
		}
	}
	return nil
}

// Replace целиком заменяет кэш новым снимком в одной транзакции.
func (r *RecordCacheSQLite) Replace(records []journal.Record) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM records`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO records(
        id, user_id, category, category_value, content,
        pain_value, screen_time_value, severity_value, created_at
    ) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err = stmt.Exec(
			rec.ID, rec.UserID, string(rec.Category), rec.CategoryValue, rec.Content,
			rec.PainValue, rec.ScreenTimeValue, rec.SeverityValue, rec.CreatedAt.UnixNano(),
		); err != nil {
			return fmt.Errorf("insert %s: %w", rec.ID, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err = tx.Exec(`INSERT INTO cache_meta(key, value) VALUES(?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value`, syncedAtKey, now); err != nil {
		return err
	}
	return tx.Commit()
}

// Purge очищает кэш целиком, например после удаления учётной записи.
func (r *RecordCacheSQLite) Purge() (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.Exec(`DELETE FROM records`); err != nil {
		return err
	}
	if _, err = tx.Exec(`DELETE FROM cache_meta`); err != nil {
		return err
	}
	return tx.Commit()
}

// List возвращает записи кэша, новые первыми.
func (r *RecordCacheSQLite) List() ([]journal.Record, error) {
	rows, err := r.db.Query(`SELECT id, user_id, category, category_value, content,
        pain_value, screen_time_value, severity_value, created_at
        FROM records ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []journal.Record
	for rows.Next() {
		var (
			rec      journal.Record
			category string
			created  int64
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &category, &rec.CategoryValue, &rec.Content,
			&rec.PainValue, &rec.ScreenTimeValue, &rec.SeverityValue, &created); err != nil {
			return nil, err
		}
		rec.Category = journal.Category(category)
		rec.CreatedAt = time.Unix(0, created).UTC()
		res = append(res, rec)
	}
	return res, rows.Err()
}

func (r *RecordCacheSQLite) SyncedAt() (time.Time, error) {
	var v string
	err := r.db.QueryRow(`SELECT value FROM cache_meta WHERE key = ?`, syncedAtKey).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, v)
}
