package fs

import (
	"MoodKeeper/internal/cli/repo"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	tokenFile     = "auth_token"
	lastLoginFile = "last_login"
	introFile     = "intro_seen"
)

// ErrNotFound - файл состояния ещё не создан.
var ErrNotFound = errors.New("not found")

// FSStore - файловое хранилище токена, логина и флага вступления для CLI.
// Все файлы лежат в Dir (CLIENT_STATE_DIR).
type FSStore struct {
	Dir string
}

var (
	_ repo.TokenStore       = FSStore{}
	_ repo.UserContextStore = FSStore{}
	_ repo.IntroFlagStore   = FSStore{}
)

func NewFSStore(dir string) FSStore {
	return FSStore{Dir: dir}
}

func (s FSStore) path(name string) (string, error) {
	if s.Dir == "" {
		return "", errors.New("state dir is not configured")
	}
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, name), nil
}

func (s FSStore) write(name, value string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(value), 0o600)
}

// read возвращает содержимое без завершающих пробелов и переводов строк.
// Пустой или отсутствующий файл - ErrNotFound.
func (s FSStore) read(name string) (string, error) {
	p, err := s.path(name)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	v := strings.TrimRight(string(b), " \t\r\n")
	if v == "" {
		return "", ErrNotFound
	}
	return v, nil
}

func (s FSStore) remove(name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Save сохраняет auth‑токен в файл.
func (s FSStore) Save(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("empty token")
	}
	return s.write(tokenFile, token)
}

// Load читает auth‑токен из файла.
func (s FSStore) Load() (string, error) { return s.read(tokenFile) }

func (s FSStore) Clear() error { return s.remove(tokenFile) }

// SaveLogin сохраняет логин пользователя в файл.
func (s FSStore) SaveLogin(login string) error {
	if login == "" {
		return errors.New("empty login")
	}
	return s.write(lastLoginFile, login)
}

// LoadLogin читает логин пользователя из файла.
func (s FSStore) LoadLogin() (string, error) { return s.read(lastLoginFile) }

func (s FSStore) ClearLogin() error { return s.remove(lastLoginFile) }

// IntroSeen - был ли флаг выставлен. Отсутствие файла означает false без ошибки.
func (s FSStore) IntroSeen() (bool, error) {
	_, err := s.read(introFile)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s FSStore) MarkIntroSeen() error { return s.write(introFile, "true") }

func (s FSStore) ClearIntro() error { return s.remove(introFile) }
