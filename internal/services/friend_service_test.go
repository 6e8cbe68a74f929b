package services

import (
	"context"
	"sync"
	"testing"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
	"github.com/Dias221467/health-o-mania/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFriendService(t *testing.T) (*FriendService, *repository.Store) {
	t.Helper()
	store := newStore(t)
	seedUser(t, store, "alice", "Alice", "ALICE-111")
	seedUser(t, store, "bob", "Bob", "BOB-222")
	seedUser(t, store, "carol", "Carol", "CAROL-333")
	return NewFriendService(store, store.Users, NewNotificationService(store)), store
}

func send(t *testing.T, svc *FriendService, from, code string) {
	t.Helper()
	res, err := svc.Manage(context.Background(), from, models.ManageFriendRequest{Action: models.ActionSend, UserCode: code})
	require.NoError(t, err)
	assert.Equal(t, &models.ActionResult{Success: true, Message: "Friend request sent!"}, res)
}

func pendingBetween(t *testing.T, store *repository.Store, a, b string) *models.FriendRequest {
	t.Helper()
	req, err := store.Requests.FindBetween(context.Background(), a, b)
	require.NoError(t, err)
	return req
}

func TestManage_Validation(t *testing.T) {
	svc, _ := newFriendService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		caller  string
		req     models.ManageFriendRequest
		code    apperr.Code
		message string
	}{
		{"unauthenticated", "", models.ManageFriendRequest{Action: "send", UserCode: "BOB-222"}, apperr.Unauthenticated, "You must be logged in to perform this action."},
		{"unknown action", "alice", models.ManageFriendRequest{Action: "poke"}, apperr.InvalidArgument, "Invalid action specified."},
		{"send without code", "alice", models.ManageFriendRequest{Action: "send"}, apperr.InvalidArgument, "User code is required."},
		{"accept without id", "alice", models.ManageFriendRequest{Action: "accept"}, apperr.InvalidArgument, "Request ID is required."},
		{"reject without id", "alice", models.ManageFriendRequest{Action: "reject"}, apperr.InvalidArgument, "Request ID is required."},
		{"remove without id", "alice", models.ManageFriendRequest{Action: "remove"}, apperr.InvalidArgument, "Friend ID is required."},
		{"blank code", "alice", models.ManageFriendRequest{Action: "send", UserCode: "   "}, apperr.InvalidArgument, "User code is required."},
		{"unknown code", "alice", models.ManageFriendRequest{Action: "send", UserCode: "NOPE-000"}, apperr.NotFound, "User with that code does not exist."},
		{"padded code is not trimmed", "alice", models.ManageFriendRequest{Action: "send", UserCode: " BOB-222 "}, apperr.NotFound, "User with that code does not exist."},
		{"self request", "alice", models.ManageFriendRequest{Action: "send", UserCode: "ALICE-111"}, apperr.InvalidArgument, "You can't send a request to yourself."},
		{"caller without profile", "ghost", models.ManageFriendRequest{Action: "send", UserCode: "BOB-222"}, apperr.NotFound, "Your user profile could not be found."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Manage(ctx, tt.caller, tt.req)
			assert.Nil(t, res)
			requireCode(t, err, tt.code, tt.message)
		})
	}
}

func TestSendThenAccept(t *testing.T) {
	svc, store := newFriendService(t)
	ctx := context.Background()

	send(t, svc, "alice", "BOB-222")
	req := pendingBetween(t, store, "alice", "bob")
	assert.Equal(t, "alice", req.From)
	assert.Equal(t, "bob", req.To)
	assert.Equal(t, "Alice", req.FromName)
	assert.Equal(t, "ALICE-111", req.FromUserCode)
	assert.Equal(t, models.RequestPending, req.Status)

	// only the receiver may accept
	_, err := svc.Manage(ctx, "alice", models.ManageFriendRequest{Action: "accept", RequestID: req.ID})
	requireCode(t, err, apperr.PermissionDenied, "You do not have permission to accept this request.")
	_, err = svc.Manage(ctx, "bob", models.ManageFriendRequest{Action: "accept", RequestID: "missing"})
	requireCode(t, err, apperr.PermissionDenied, "You do not have permission to accept this request.")

	res, err := svc.Manage(ctx, "bob", models.ManageFriendRequest{Action: "accept", RequestID: req.ID})
	require.NoError(t, err)
	assert.Equal(t, &models.ActionResult{Success: true, Message: "Friend request accepted!"}, res)

	assert.True(t, getUser(t, store, "alice").HasFriend("bob"))
	assert.True(t, getUser(t, store, "bob").HasFriend("alice"))
	_, err = store.Requests.FindBetween(ctx, "alice", "bob")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// both sides got notified
	bobNotes, err := store.Notifications.ListForUser(ctx, "bob", getUser(t, store, "bob").CreatedAt)
	require.NoError(t, err)
	require.Len(t, bobNotes, 1)
	assert.Equal(t, models.NotifyFriendRequest, bobNotes[0].Type)
	aliceNotes, err := store.Notifications.ListForUser(ctx, "alice", getUser(t, store, "alice").CreatedAt)
	require.NoError(t, err)
	require.Len(t, aliceNotes, 1)
	assert.Equal(t, models.NotifyFriendAccepted, aliceNotes[0].Type)

	friends, err := svc.ListFriends(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "BOB-222", friends[0].UserCode)
}

func TestSend_AlreadyExistsVariants(t *testing.T) {
	svc, store := newFriendService(t)
	ctx := context.Background()

	send(t, svc, "alice", "BOB-222")

	_, err := svc.Manage(ctx, "alice", models.ManageFriendRequest{Action: "send", UserCode: "BOB-222"})
	requireCode(t, err, apperr.AlreadyExists, "You have already sent a request to this user.")

	_, err = svc.Manage(ctx, "bob", models.ManageFriendRequest{Action: "send", UserCode: "ALICE-111"})
	requireCode(t, err, apperr.AlreadyExists, "This user has already sent you a friend request.")

	req := pendingBetween(t, store, "alice", "bob")
	_, err = svc.Manage(ctx, "bob", models.ManageFriendRequest{Action: "accept", RequestID: req.ID})
	require.NoError(t, err)

	_, err = svc.Manage(ctx, "bob", models.ManageFriendRequest{Action: "send", UserCode: "ALICE-111"})
	requireCode(t, err, apperr.AlreadyExists, "You are already friends with this user.")
}

func TestSend_ConcurrentOppositeDirections(t *testing.T) {
	svc, store := newFriendService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	pairs := [][2]string{{"alice", "BOB-222"}, {"bob", "ALICE-111"}}
	for i, p := range pairs {
		wg.Add(1)
		go func(i int, caller, code string) {
			defer wg.Done()
			_, errs[i] = svc.Manage(ctx, caller, models.ManageFriendRequest{Action: "send", UserCode: code})
		}(i, p[0], p[1])
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, apperr.Is(err, apperr.AlreadyExists), "unexpected error %v", err)
	}
	assert.Equal(t, 1, succeeded)

	incomingAlice, err := store.Requests.ListIncoming(ctx, "alice")
	require.NoError(t, err)
	incomingBob, err := store.Requests.ListIncoming(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, append(incomingAlice, incomingBob...), 1)
}

func TestReject_EitherParticipant(t *testing.T) {
	svc, store := newFriendService(t)
	ctx := context.Background()

	send(t, svc, "alice", "BOB-222")
	req := pendingBetween(t, store, "alice", "bob")

	_, err := svc.Manage(ctx, "carol", models.ManageFriendRequest{Action: "reject", RequestID: req.ID})
	requireCode(t, err, apperr.PermissionDenied, "You do not have permission to modify this request.")

	// the sender cancels
	res, err := svc.Manage(ctx, "alice", models.ManageFriendRequest{Action: "reject", RequestID: req.ID})
	require.NoError(t, err)
	assert.Equal(t, "Friend request rejected.", res.Message)
	assert.False(t, getUser(t, store, "bob").HasFriend("alice"))

	send(t, svc, "alice", "BOB-222")
	req = pendingBetween(t, store, "alice", "bob")
	_, err = svc.Manage(ctx, "bob", models.ManageFriendRequest{Action: "reject", RequestID: req.ID})
	require.NoError(t, err)

	_, err = svc.Manage(ctx, "bob", models.ManageFriendRequest{Action: "reject", RequestID: req.ID})
	requireCode(t, err, apperr.PermissionDenied, "")
}

func TestRemove_IsMutualAndIdempotent(t *testing.T) {
	svc, store := newFriendService(t)
	ctx := context.Background()

	send(t, svc, "alice", "BOB-222")
	req := pendingBetween(t, store, "alice", "bob")
	_, err := svc.Manage(ctx, "bob", models.ManageFriendRequest{Action: "accept", RequestID: req.ID})
	require.NoError(t, err)

	res, err := svc.Manage(ctx, "alice", models.ManageFriendRequest{Action: "remove", FriendID: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "Friend removed.", res.Message)
	assert.Empty(t, getUser(t, store, "alice").Friends)
	assert.Empty(t, getUser(t, store, "bob").Friends)

	// not friends any more: still a success, nothing changes
	_, err = svc.Manage(ctx, "alice", models.ManageFriendRequest{Action: "remove", FriendID: "bob"})
	require.NoError(t, err)
	_, err = svc.Manage(ctx, "alice", models.ManageFriendRequest{Action: "remove", FriendID: "carol"})
	require.NoError(t, err)
	assert.Empty(t, getUser(t, store, "carol").Friends)
	assert.Empty(t, getUser(t, store, "alice").Friends)
}

func TestRemove_UnknownUserRollsBack(t *testing.T) {
	svc, store := newFriendService(t)
	ctx := context.Background()

	require.NoError(t, store.Users.AddFriend(ctx, "alice", "ghost"))
	_, err := svc.Manage(ctx, "alice", models.ManageFriendRequest{Action: "remove", FriendID: "ghost"})
	requireCode(t, err, apperr.NotFound, "That user does not exist.")
	assert.True(t, getUser(t, store, "alice").HasFriend("ghost"))
}
