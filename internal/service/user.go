package service

import (
	"MoodKeeper/internal/model"
	"MoodKeeper/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrLoginTaken          = errors.New("login already taken")
	ErrInvalidCredentials  = errors.New("invalid login or password")
	ErrEmptyCredentials    = errors.New("login and password are required")
	ErrUserNotFound        = errors.New("user not found")
	ErrRecentLoginRequired = errors.New("this operation requires a recent login, sign in again and retry")
)

// DefaultRecentLoginWindow - сколько после входа можно удалять аккаунт.
const DefaultRecentLoginWindow = 5 * time.Minute

type UserService struct {
	repo              repo.UserRepository
	recentLoginWindow time.Duration

	// Now подменяется в тестах
	Now func() time.Time
}

func NewUserService(r repo.UserRepository, recentLoginWindow time.Duration) *UserService {
	if recentLoginWindow <= 0 {
		recentLoginWindow = DefaultRecentLoginWindow
	}
	return &UserService{
		repo:              r,
		recentLoginWindow: recentLoginWindow,
		Now:               time.Now,
	}
}

// Register создаёт пользователя с bcrypt-хешем пароля.
func (s *UserService) Register(ctx context.Context, login, password, displayName string) (*model.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	existing, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup login: %w", err)
	}
	if existing != nil {
		return nil, ErrLoginTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Login:       login,
		Password:    string(hash),
		DisplayName: strings.TrimSpace(displayName),
	}
	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Login проверяет логин и пароль. Неизвестный логин и неверный пароль неразличимы.
func (s *UserService) Login(ctx context.Context, login, password string) (*model.User, error) {
	user, err := s.repo.GetUserByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup login: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// Delete удаляет учётную запись. authTime - момент входа из токена; если вход был
// раньше окна recentLoginWindow, возвращается ErrRecentLoginRequired и ничего не удаляется.
func (s *UserService) Delete(ctx context.Context, id int64, authTime time.Time) error {
	if authTime.IsZero() || s.Now().Sub(authTime) > s.recentLoginWindow {
		return ErrRecentLoginRequired
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
