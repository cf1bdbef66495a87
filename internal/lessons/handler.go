package lessons

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lingo-app/backend/internal/models"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

func (h *Handler) ListLessons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lessons": h.catalog.Summaries(),
	})
}

func (h *Handler) GetLesson(w http.ResponseWriter, r *http.Request) {
	lesson, ok := h.catalog.ByID(mux.Vars(r)["id"])
	if !ok {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Lesson not found"})
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
