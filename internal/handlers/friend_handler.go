package handlers

import (
	"net/http"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/services"
	"github.com/Dias221467/health-o-mania/pkg/middleware"
)

// FriendHandler manages HTTP endpoints related to friend requests.
type FriendHandler struct {
	Service *services.FriendService
}

// NewFriendHandler initializes a new FriendHandler.
func NewFriendHandler(service *services.FriendService) *FriendHandler {
	return &FriendHandler{Service: service}
}

// ManageFriendRequestHandler is the single RPC for send, accept, reject
// and remove. Anonymous callers are turned away before the body is read.
func (h *FriendHandler) ManageFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	var caller string
	if claims := middleware.GetUserFromContext(r.Context()); claims != nil {
		caller = claims.UserID
	}
	if caller == "" {
		writeError(w, r, services.ErrNotLoggedIn)
		return
	}

	var req models.ManageFriendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.Service.Manage(r.Context(), caller, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetPendingRequestsHandler shows all incoming friend requests.
func (h *FriendHandler) GetPendingRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID := callerID(w, r)
	if userID == "" {
		return
	}
	requests, err := h.Service.ListIncoming(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(requests))
}

// GetFriendsHandler returns a list of user’s friends.
func (h *FriendHandler) GetFriendsHandler(w http.ResponseWriter, r *http.Request) {
	userID := callerID(w, r)
	if userID == "" {
		return
	}
	friends, err := h.Service.ListFriends(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(friends))
}

// orEmpty keeps empty lists encoding as [] rather than null.
func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
