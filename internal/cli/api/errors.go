package api

import (
	"MoodKeeper/internal/journal"
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated     = errors.New("not signed in")
	ErrInvalidCredentials  = errors.New("invalid login or password")
	ErrLoginTaken          = errors.New("login already taken")
	ErrNotFound            = errors.New("not found")
	ErrRecentLoginRequired = errors.New("this operation requires a recent login: sign out, sign in again and retry")
	ErrAccountDeleted      = errors.New("account was deleted")
	ErrNoAuthCookie        = errors.New("no auth cookie in response")
)

// APIError - ответ сервера с кодом ошибки.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server status %d", e.Status)
	}
	return fmt.Sprintf("server status %d: %s", e.Status, e.Message)
}

// Unwrap сопоставляет код ответа с ошибкой клиента, чтобы работал errors.Is.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "missing-content":
		return journal.ErrMissingContent
	case "missing-category-value":
		return journal.ErrMissingCategoryValue
	case "missing-sub-attribute":
		return journal.ErrMissingSubAttribute
	case "invalid-category-value":
		return journal.ErrInvalidCategoryValue
	case "invalid-sub-attribute":
		return journal.ErrInvalidSubAttribute
	case "unknown-category":
		return journal.ErrUnknownCategory
	case "requires-recent-login":
		return ErrRecentLoginRequired
	case "login-taken":
		return ErrLoginTaken
	case "invalid-credentials":
		return ErrInvalidCredentials
	case "not-found":
		return ErrNotFound
	case "unauthenticated":
		return ErrUnauthenticated
	}
	return nil
}
