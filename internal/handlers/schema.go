package handlers

import (
	"MoodKeeper/internal/journal"
	"net/http"
)

// SchemaResponse - реестр категорий для клиентов.
type SchemaResponse struct {
	Categories []journal.CategorySchema `json:"categories"`
}

// Schema отдаёт реестр категорий в фиксированном порядке.
func Schema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SchemaResponse{Categories: journal.Schemas()})
}
