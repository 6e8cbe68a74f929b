package handlers

import (
	"net/http"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/services"
	"github.com/gorilla/mux"
)

type FoodLogHandler struct {
	Service *services.FoodLogService
}

func NewFoodLogHandler(service *services.FoodLogService) *FoodLogHandler {
	return &FoodLogHandler{Service: service}
}

func (h *FoodLogHandler) AddEntryHandler(w http.ResponseWriter, r *http.Request) {
	userID := callerID(w, r)
	if userID == "" {
		return
	}
	var in models.FoodLogInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	entry, err := h.Service.AddEntry(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *FoodLogHandler) GetEntriesHandler(w http.ResponseWriter, r *http.Request) {
	userID := callerID(w, r)
	if userID == "" {
		return
	}
	entries, err := h.Service.ListEntries(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(entries))
}

func (h *FoodLogHandler) DeleteEntryHandler(w http.ResponseWriter, r *http.Request) {
	userID := callerID(w, r)
	if userID == "" {
		return
	}
	if err := h.Service.RemoveEntry(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
