package handlers

import (
	"MoodKeeper/internal/config"
	"MoodKeeper/internal/journal"
	"MoodKeeper/internal/middleware"
	"MoodKeeper/internal/model"
	"MoodKeeper/internal/service"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler - регистрация, вход и управление учётной записью.
type UserHandler struct {
	baseHandler
	UserService   *service.UserService
	RecordService *service.RecordService
	Config        *config.Config
}

func NewUserHandler(userService *service.UserService, recordService *service.RecordService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{
		baseHandler:   baseHandler{Logger: logger},
		UserService:   userService,
		RecordService: recordService,
		Config:        cfg,
	}
}

type credentials struct {
	Login       string `json:"login"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

// UserDTO - публичное представление пользователя.
type UserDTO struct {
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	DisplayName string `json:"displayName"`
	// Name - то, что показывается в приветствии.
	Name string `json:"name"`
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Login:       u.Login,
		DisplayName: u.DisplayName,
		Name:        journal.DisplayName(u.DisplayName, u.Login),
	}
}

// Register регистрация пользователя
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Login, req.Password, req.DisplayName)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.authorize(w, user)
}

// Login авторизация пользователя
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.authorize(w, user)
}

func (h *UserHandler) authorize(w http.ResponseWriter, user *model.User) {
	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// Logout стирает cookie. Токен без состояния, на сервере больше ничего не делаем.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me возвращает текущего пользователя
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	user, err := h.UserService.Get(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// Delete удаляет учётную запись. Требует недавнего входа (403 requires-recent-login).
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	authTime, _ := middleware.GetAuthTimeFromContext(r.Context())

	if err := h.UserService.Delete(r.Context(), userID, authTime); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.Logger.Infow("account deleted", "userID", userID)
	h.RecordService.AccountDeleted(r.Context(), userID)
	middleware.ClearLoginCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
