package models

import (
	"sort"
	"strings"
	"time"
)

// RequestPending is the only stored friend request status. Accepting or
// rejecting a request deletes it.
const RequestPending = "pending"

type FriendRequest struct {
	ID           string    `bson:"_id" json:"id"`
	From         string    `bson:"from" json:"from"`
	To           string    `bson:"to" json:"to"`
	Participants []string  `bson:"participants" json:"participants"`
	PairKey      string    `bson:"pair_key" json:"-"`
	FromName     string    `bson:"from_name" json:"fromName"`
	FromUserCode string    `bson:"from_user_code" json:"fromUserCode"`
	Status       string    `bson:"status" json:"status"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// HasParticipant reports whether id is the sender or the receiver.
func (r *FriendRequest) HasParticipant(id string) bool {
	for _, p := range r.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// PairKey identifies the unordered pair {a, b}.
func PairKey(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, ":")
}

// Friend request actions accepted by ManageFriendRequest.
const (
	ActionSend   = "send"
	ActionAccept = "accept"
	ActionReject = "reject"
	ActionRemove = "remove"
)

// ManageFriendRequest is the single RPC payload for every friendship change.
type ManageFriendRequest struct {
	Action    string `json:"action"`
	UserCode  string `json:"userCode,omitempty"`
	RequestID string `json:"requestId,omitempty"`
	FriendID  string `json:"friendId,omitempty"`
}

// ActionResult is returned by every successful friendship change.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
