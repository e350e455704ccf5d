package service

import (
	"MoodKeeper/internal/cli/api"
	"MoodKeeper/internal/cli/repo"
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// SessionService - вход, выход и наблюдение за текущим пользователем.
// Наблюдатели вызываются на каждое изменение: *repo.User после входа, nil после выхода.
type SessionService struct {
	identity repo.Identity
	users    repo.UserContextStore
	intro    repo.IntroFlagStore
	log      *zap.SugaredLogger

	mu        sync.Mutex
	observers map[int]func(*repo.User)
	nextID    int
}

func NewSessionService(identity repo.Identity, users repo.UserContextStore, intro repo.IntroFlagStore, logger *zap.SugaredLogger) *SessionService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &SessionService{
		identity:  identity,
		users:     users,
		intro:     intro,
		log:       logger,
		observers: make(map[int]func(*repo.User)),
	}
}

// Observe регистрирует fn и возвращает функцию отписки.
func (s *SessionService) Observe(fn func(*repo.User)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *SessionService) notify(u *repo.User) {
	s.mu.Lock()
	fns := make([]func(*repo.User), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(u)
	}
}

func (s *SessionService) Register(ctx context.Context, login, password, displayName string) (repo.User, error) {
	u, err := s.identity.Register(ctx, login, password, displayName)
	if err != nil {
		return repo.User{}, err
	}
	s.signedIn(u)
	return u, nil
}

func (s *SessionService) SignIn(ctx context.Context, login, password string) (repo.User, error) {
	u, err := s.identity.Login(ctx, login, password)
	if err != nil {
		return repo.User{}, err
	}
	s.signedIn(u)
	return u, nil
}

func (s *SessionService) signedIn(u repo.User) {
	if err := s.users.SaveLogin(u.Login); err != nil {
		s.log.Warnw("save last login failed", "login", u.Login, "err", err)
	}
	s.notify(&u)
}

// SignOut стирает локальное состояние сессии (флаг вступления, логин, токен) и уведомляет
// наблюдателей. Ошибка сервера при выходе возвращается, но локальное состояние уже очищено.
func (s *SessionService) SignOut(ctx context.Context) error {
	if err := s.intro.ClearIntro(); err != nil {
		return fmt.Errorf("clear intro flag: %w", err)
	}
	if err := s.users.ClearLogin(); err != nil {
		return fmt.Errorf("clear last login: %w", err)
	}
	err := s.identity.Logout(ctx)
	s.notify(nil)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Current возвращает пользователя по текущему токену; nil без ошибки, если вход не выполнен.
func (s *SessionService) Current(ctx context.Context) (*repo.User, error) {
	u, err := s.identity.Current(ctx)
	if errors.Is(err, api.ErrUnauthenticated) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Refresh перечитывает текущего пользователя и рассылает результат наблюдателям.
func (s *SessionService) Refresh(ctx context.Context) (*repo.User, error) {
	u, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	s.notify(u)
	return u, nil
}

func (s *SessionService) IntroSeen() (bool, error) { return s.intro.IntroSeen() }

func (s *SessionService) AcknowledgeIntro() error { return s.intro.MarkIntroSeen() }
