package sqlite

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// migrationScripts возвращает DDL офлайн-кэша в порядке номеров файлов.
// Скрипты идемпотентны (IF NOT EXISTS), поэтому применяются при каждом открытии.
func migrationScripts() ([]string, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	scripts := make([]string, 0, len(names))
	for _, n := range names {
		b, err := migrationFiles.ReadFile(n)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", n, err)
		}
		scripts = append(scripts, string(b))
	}
	return scripts, nil
}
