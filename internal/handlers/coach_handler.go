package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/services"
	"github.com/Dias221467/health-o-mania/pkg/apperr"
	"github.com/gorilla/mux"
)

// CoachHandler serves coach profiles and their live classes.
type CoachHandler struct {
	Service *services.CoachService
}

func NewCoachHandler(service *services.CoachService) *CoachHandler {
	return &CoachHandler{Service: service}
}

func (h *CoachHandler) RegisterCoachHandler(w http.ResponseWriter, r *http.Request) {
	userID := callerID(w, r)
	if userID == "" {
		return
	}
	var in models.CoachInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	coach, err := h.Service.RegisterCoach(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, coach)
}

func (h *CoachHandler) GetMyCoachHandler(w http.ResponseWriter, r *http.Request) {
	userID := callerID(w, r)
	if userID == "" {
		return
	}
	coach, err := h.Service.GetMyCoachProfile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coach)
}

func (h *CoachHandler) GetLatestCoachHandler(w http.ResponseWriter, r *http.Request) {
	coach, err := h.Service.LatestCoach(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coach)
}

// RemoveCoachHandler deletes the caller's coach profile along with every
// class it hosts.
func (h *CoachHandler) RemoveCoachHandler(w http.ResponseWriter, r *http.Request) {
	userID := callerID(w, r)
	if userID == "" {
		return
	}
	if err := h.Service.RemoveCoach(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateLiveClassHandler accepts either a JSON body or a multipart form
// with the same fields plus an optional "banner" image.
func (h *CoachHandler) CreateLiveClassHandler(w http.ResponseWriter, r *http.Request) {
	userID := callerID(w, r)
	if userID == "" {
		return
	}

	var (
		in     models.LiveClassInput
		banner io.Reader
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, services.MaxBannerSize+maxBodySize)
		if err := r.ParseMultipartForm(services.MaxBannerSize); err != nil {
			writeError(w, r, apperr.Wrap(err, apperr.InvalidArgument, "File too big or invalid format."))
			return
		}
		parsed, err := liveClassFromForm(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		in = parsed

		file, _, err := r.FormFile("banner")
		switch {
		case err == nil:
			defer file.Close()
			banner = file
		case !errors.Is(err, http.ErrMissingFile):
			writeError(w, r, apperr.Wrap(err, apperr.InvalidArgument, "Invalid banner upload."))
			return
		}
	} else if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	class, err := h.Service.AddLiveClass(r.Context(), userID, in, banner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, class)
}

func liveClassFromForm(r *http.Request) (models.LiveClassInput, error) {
	in := models.LiveClassInput{
		Title:    r.FormValue("title"),
		Category: r.FormValue("category"),
		Duration: r.FormValue("duration"),
		MeetLink: r.FormValue("meetLink"),
	}
	if raw := r.FormValue("startAt"); raw != "" {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return in, apperr.Wrap(err, apperr.InvalidArgument, "StartAt must be an RFC 3339 timestamp.")
		}
		in.StartAt = at
	}
	return in, nil
}

func (h *CoachHandler) GetLiveClassesHandler(w http.ResponseWriter, r *http.Request) {
	classes, err := h.Service.ListLiveClasses(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(classes))
}

func (h *CoachHandler) GetLiveClassHandler(w http.ResponseWriter, r *http.Request) {
	class, err := h.Service.GetLiveClass(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, class)
}

func (h *CoachHandler) DeleteLiveClassHandler(w http.ResponseWriter, r *http.Request) {
	userID := callerID(w, r)
	if userID == "" {
		return
	}
	if err := h.Service.RemoveLiveClass(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
