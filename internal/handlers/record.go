package handlers

import (
	"MoodKeeper/internal/journal"
	"MoodKeeper/internal/middleware"
	"MoodKeeper/internal/service"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RecordHandler - записи дневника текущего пользователя.
type RecordHandler struct {
	baseHandler
	RecordService *service.RecordService
}

func NewRecordHandler(recordService *service.RecordService, logger *zap.SugaredLogger) *RecordHandler {
	return &RecordHandler{baseHandler: baseHandler{Logger: logger}, RecordService: recordService}
}

// Create сохраняет новую запись. 201 с нормализованной записью или 400 с кодом валидации.
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var draft journal.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	rec, err := h.RecordService.Create(r.Context(), userID, draft)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// List отдаёт записи за окно ?window=7|30|90|all (по умолчанию неделя), новые первыми.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	window, err := journal.ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidWindow, err.Error())
		return
	}

	recs, err := h.RecordService.List(r.Context(), userID, window)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if recs == nil {
		recs = []journal.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.RecordService.Delete(r.Context(), userID, id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Insights отдаёт сводку по всем записям пользователя.
func (h *RecordHandler) Insights(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	sum, err := h.RecordService.Insights(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
