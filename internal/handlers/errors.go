package handlers

import (
	"MoodKeeper/internal/journal"
	"MoodKeeper/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Коды ошибок в теле ответа.
const (
	CodeBadRequest           = "bad-request"
	CodeMissingContent       = "missing-content"
	CodeMissingCategoryValue = "missing-category-value"
	CodeMissingSubAttribute  = "missing-sub-attribute"
	CodeInvalidCategoryValue = "invalid-category-value"
	CodeInvalidSubAttribute  = "invalid-sub-attribute"
	CodeUnknownCategory      = "unknown-category"
	CodeInvalidWindow        = "invalid-window"
	CodeLoginTaken           = "login-taken"
	CodeInvalidCredentials   = "invalid-credentials"
	CodeRecentLoginRequired  = "requires-recent-login"
	CodeNotFound             = "not-found"
	CodeInternal             = "internal"
)

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Code: code, Error: msg})
}

// validationCode возвращает код для ошибки валидации записи.
func validationCode(err error) string {
	switch {
	case errors.Is(err, journal.ErrMissingContent):
		return CodeMissingContent
	case errors.Is(err, journal.ErrMissingCategoryValue):
		return CodeMissingCategoryValue
	case errors.Is(err, journal.ErrMissingSubAttribute):
		return CodeMissingSubAttribute
	case errors.Is(err, journal.ErrInvalidCategoryValue):
		return CodeInvalidCategoryValue
	case errors.Is(err, journal.ErrInvalidSubAttribute):
		return CodeInvalidSubAttribute
	case errors.Is(err, journal.ErrUnknownCategory):
		return CodeUnknownCategory
	}
	return CodeBadRequest
}

// writeServiceError маппит ошибки сервисов в HTTP. Неизвестные ошибки скрываются за 500.
func (h *baseHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, journal.ErrValidation):
		writeError(w, http.StatusBadRequest, validationCode(err), err.Error())
	case errors.Is(err, service.ErrEmptyCredentials):
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
	case errors.Is(err, service.ErrLoginTaken):
		writeError(w, http.StatusConflict, CodeLoginTaken, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, CodeInvalidCredentials, err.Error())
	case errors.Is(err, service.ErrRecentLoginRequired):
		writeError(w, http.StatusForbidden, CodeRecentLoginRequired, err.Error())
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, err.Error())
	default:
		h.Logger.Errorw("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}

type baseHandler struct {
	Logger *zap.SugaredLogger
}
