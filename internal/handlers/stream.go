package handlers

import (
	"MoodKeeper/internal/journal"
	"MoodKeeper/internal/middleware"
	"MoodKeeper/internal/realtime"
	"MoodKeeper/internal/service"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Имена SSE-событий.
const (
	EventSnapshot = "snapshot"
	EventDeleted  = "account-deleted"
	EventError    = "error"
)

const heartbeatInterval = 15 * time.Second

// StreamHandler держит SSE-подписку на записи пользователя.
type StreamHandler struct {
	baseHandler
	RecordService *service.RecordService
	Hub           *realtime.Hub
}

func NewStreamHandler(recordService *service.RecordService, hub *realtime.Hub, logger *zap.SugaredLogger) *StreamHandler {
	return &StreamHandler{baseHandler: baseHandler{Logger: logger}, RecordService: recordService, Hub: hub}
}

// Stream сразу отправляет текущий снимок, затем новый снимок на каждое изменение.
// Снимок - все записи пользователя, новые первыми.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, CodeInternal, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	client := h.Hub.NewClient(userID)
	h.Hub.AddChannel(client, realtime.UserChannel(userID))
	defer h.Hub.CloseClient(client)

	h.Logger.Debugw("stream open", "userID", userID, "clientID", client.ID)

	ctx := r.Context()
	h.sendSnapshot(w, r, userID)
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			h.Logger.Debugw("stream closed", "userID", userID, "clientID", client.ID)
			return
		case <-heartbeat.C:
			_, _ = fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case msg, ok := <-client.Outbound:
			if !ok {
				return
			}
			switch msg.Event {
			case realtime.EventAccountDeleted:
				writeEvent(w, EventDeleted, []byte("{}"))
				flusher.Flush()
				return
			default:
				h.sendSnapshot(w, r, userID)
				flusher.Flush()
			}
		}
	}
}

// sendSnapshot при ошибке чтения шлёт событие error, подписка продолжается.
func (h *StreamHandler) sendSnapshot(w http.ResponseWriter, r *http.Request, userID int64) {
	recs, err := h.RecordService.List(r.Context(), userID, journal.WindowAll)
	if err != nil {
		h.Logger.Warnw("snapshot failed", "userID", userID, "error", err)
		payload, _ := json.Marshal(ErrorResponse{Code: CodeInternal, Error: "snapshot unavailable"})
		writeEvent(w, EventError, payload)
		return
	}
	if recs == nil {
		recs = []journal.Record{}
	}
	payload, err := json.Marshal(recs)
	if err != nil {
		h.Logger.Warnw("marshal snapshot", "error", err)
		return
	}
	writeEvent(w, EventSnapshot, payload)
}

func writeEvent(w http.ResponseWriter, event string, data []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
