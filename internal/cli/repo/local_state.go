package repo

// TokenStore хранит auth_token между запусками CLI. Load без сохранённого токена
// возвращает ошибку, Clear без токена ошибкой не считается.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// UserContextStore помнит логин последнего вошедшего пользователя: по нему
// выбирается офлайн-кэш записей.
type UserContextStore interface {
	SaveLogin(login string) error
	LoadLogin() (string, error)
	ClearLogin() error
}

// IntroFlagStore хранит признак «вступление просмотрено».
// Отсутствие флага - обычное состояние, не ошибка.
type IntroFlagStore interface {
	IntroSeen() (bool, error)
	MarkIntroSeen() error
	ClearIntro() error
}
