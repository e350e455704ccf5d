package repo

import "context"

// User - текущий пользователь, как его видит клиент.
type User struct {
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	DisplayName string `json:"displayName"`
	Name        string `json:"name"`
}

// Identity - вход, выход, текущий пользователь и удаление учётной записи.
// DeleteAccount возвращает ошибку, удовлетворяющую errors.Is(err, api.ErrRecentLoginRequired),
// если сервер требует повторного входа.
type Identity interface {
	Register(ctx context.Context, login, password, displayName string) (User, error)
	Login(ctx context.Context, login, password string) (User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (User, error)
	DeleteAccount(ctx context.Context) error
}
