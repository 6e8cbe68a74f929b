package handlers

import (
	"net/http"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/services"
)

// PlanHandler exposes the AI flows.
type PlanHandler struct {
	Service *services.PlanService
}

func NewPlanHandler(service *services.PlanService) *PlanHandler {
	return &PlanHandler{Service: service}
}

// serveAI decodes In, runs fn and writes its result.
func serveAI[In any, Out any](w http.ResponseWriter, r *http.Request, fn func(*http.Request, In) (*Out, error)) {
	if callerID(w, r) == "" {
		return
	}
	var in In
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := fn(r, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *PlanHandler) WorkoutPlanHandler(w http.ResponseWriter, r *http.Request) {
	serveAI(w, r, func(r *http.Request, in models.WorkoutPlanInput) (*models.WorkoutPlan, error) {
		return h.Service.WorkoutPlan(r.Context(), in)
	})
}

func (h *PlanHandler) MealPlanHandler(w http.ResponseWriter, r *http.Request) {
	serveAI(w, r, func(r *http.Request, in models.MealPlanInput) (*models.MealPlan, error) {
		return h.Service.MealPlan(r.Context(), in)
	})
}

func (h *PlanHandler) ScanFoodHandler(w http.ResponseWriter, r *http.Request) {
	// photos arrive inline as data URIs
	r.Body = http.MaxBytesReader(w, r.Body, 8<<20)
	serveAI(w, r, func(r *http.Request, in models.ScanFoodInput) (*models.FoodScan, error) {
		return h.Service.ScanFood(r.Context(), in)
	})
}

func (h *PlanHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	serveAI(w, r, func(r *http.Request, in models.ChatInput) (*models.ChatReply, error) {
		return h.Service.Chat(r.Context(), in)
	})
}
