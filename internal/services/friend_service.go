package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dias221467/health-o-mania/internal/metrics"
	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
	"github.com/Dias221467/health-o-mania/pkg/apperr"
	"github.com/Dias221467/health-o-mania/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ErrNotLoggedIn rejects an anonymous manageFriendRequest call.
var ErrNotLoggedIn = apperr.New(apperr.Unauthenticated, "You must be logged in to perform this action.")

// FriendService owns the friendship graph and the pending friend requests.
// Friend sets stay mutual and there is at most one request per pair of users.
type FriendService struct {
	tx            repository.Transactor
	friendRepo    repository.FriendRequests
	userRepo      repository.Users
	notifications *NotificationService
}

// NewFriendService creates a new FriendService. users may differ from
// store.Users (e.g. wrapped with the user code cache).
func NewFriendService(store *repository.Store, users repository.Users, notifications *NotificationService) *FriendService {
	return &FriendService{
		tx:            store.Tx,
		friendRepo:    store.Requests,
		userRepo:      users,
		notifications: notifications,
	}
}

// Manage dispatches one manageFriendRequest call. Any error it returns is
// an *apperr.Error; unclassified failures are logged and reported as
// Internal.
func (s *FriendService) Manage(ctx context.Context, callerID string, req models.ManageFriendRequest) (*models.ActionResult, error) {
	log := logger.Log.WithFields(logrus.Fields{"user_id": callerID, "action": req.Action})
	if callerID == "" {
		return nil, ErrNotLoggedIn
	}
	log.Info("manageFriendRequest triggered")

	res, err := s.dispatch(ctx, callerID, req)
	if err != nil {
		appErr := apperr.From(err)
		metrics.FriendActions.WithLabelValues(req.Action, string(appErr.Code)).Inc()
		if appErr.Code == apperr.Internal {
			log.WithError(err).Error("manageFriendRequest internal error")
		} else {
			log.WithField("code", appErr.Code).Warn(appErr.Message)
		}
		return nil, appErr
	}
	metrics.FriendActions.WithLabelValues(req.Action, metrics.ResultOK).Inc()
	return res, nil
}

func (s *FriendService) dispatch(ctx context.Context, callerID string, req models.ManageFriendRequest) (*models.ActionResult, error) {
	switch req.Action {
	case models.ActionSend:
		if strings.TrimSpace(req.UserCode) == "" {
			return nil, apperr.New(apperr.InvalidArgument, "User code is required.")
		}
		return s.Send(ctx, callerID, req.UserCode)
	case models.ActionAccept:
		if req.RequestID == "" {
			return nil, apperr.New(apperr.InvalidArgument, "Request ID is required.")
		}
		return s.Accept(ctx, callerID, req.RequestID)
	case models.ActionReject:
		if req.RequestID == "" {
			return nil, apperr.New(apperr.InvalidArgument, "Request ID is required.")
		}
		return s.Reject(ctx, callerID, req.RequestID)
	case models.ActionRemove:
		if req.FriendID == "" {
			return nil, apperr.New(apperr.InvalidArgument, "Friend ID is required.")
		}
		return s.Remove(ctx, callerID, req.FriendID)
	}
	return nil, apperr.New(apperr.InvalidArgument, "Invalid action specified.")
}

// Send creates a pending request from callerID to the owner of userCode.
// The existence checks and the insert run in one transaction and the
// store rejects a second request for the same pair, so two concurrent
// sends cannot both succeed.
func (s *FriendService) Send(ctx context.Context, callerID, userCode string) (*models.ActionResult, error) {
	if strings.TrimSpace(userCode) == "" {
		return nil, apperr.New(apperr.InvalidArgument, "User code is required.")
	}

	target, err := s.userRepo.GetByUserCode(ctx, userCode)
	if err != nil {
		return nil, notFound(err, "User with that code does not exist.")
	}
	if target.ID == callerID {
		return nil, apperr.New(apperr.InvalidArgument, "You can't send a request to yourself.")
	}

	var sender *models.User
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		caller, err := s.userRepo.GetByID(ctx, callerID)
		if err != nil {
			return notFound(err, "Your user profile could not be found.")
		}
		if caller.HasFriend(target.ID) {
			return apperr.New(apperr.AlreadyExists, "You are already friends with this user.")
		}

		existing, err := s.friendRepo.FindBetween(ctx, callerID, target.ID)
		switch {
		case err == nil:
			if existing.From == callerID {
				return apperr.New(apperr.AlreadyExists, "You have already sent a request to this user.")
			}
			return apperr.New(apperr.AlreadyExists, "This user has already sent you a friend request.")
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}

		request := &models.FriendRequest{
			From:         callerID,
			To:           target.ID,
			FromName:     orDefault(caller.Name, "A user"),
			FromUserCode: orDefault(caller.UserCode, "UNKNOWN"),
		}
		if err := s.friendRepo.Create(ctx, request); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperr.Wrap(err, apperr.AlreadyExists, "A friend request between you and this user already exists.")
			}
			return err
		}
		sender = caller
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(ctx, target.ID, models.NotifyFriendRequest,
		"New Friend Request",
		fmt.Sprintf("%s (%s) sent you a friend request.", orDefault(sender.Name, "A user"), sender.UserCode),
		callerID,
	)
	logger.Log.WithFields(logrus.Fields{"from": callerID, "to": target.ID}).Info("Friend request sent")
	return &models.ActionResult{Success: true, Message: "Friend request sent!"}, nil
}

// Accept makes the two parties of a request friends and deletes the
// request, atomically. Only the receiver may accept.
func (s *FriendService) Accept(ctx context.Context, callerID, requestID string) (*models.ActionResult, error) {
	var request *models.FriendRequest
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		req, err := s.friendRepo.GetByID(ctx, requestID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if err != nil || req.To != callerID {
			return apperr.New(apperr.PermissionDenied, "You do not have permission to accept this request.")
		}

		if err := s.userRepo.AddFriend(ctx, req.From, req.To); err != nil {
			return notFound(err, "The user who sent this request no longer exists.")
		}
		if err := s.userRepo.AddFriend(ctx, req.To, req.From); err != nil {
			return notFound(err, "Your user profile could not be found.")
		}
		if err := s.friendRepo.Delete(ctx, req.ID); err != nil {
			return err
		}
		request = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	name := "Your friend"
	if me, err := s.userRepo.GetByID(ctx, callerID); err == nil && me.Name != "" {
		name = me.Name
	}
	s.notifications.Notify(ctx, request.From, models.NotifyFriendAccepted,
		"Friend Request Accepted",
		fmt.Sprintf("%s accepted your friend request.", name),
		callerID,
	)
	return &models.ActionResult{Success: true, Message: "Friend request accepted!"}, nil
}

// Reject deletes a pending request. Either participant may reject, which
// lets the sender cancel their own request.
func (s *FriendService) Reject(ctx context.Context, callerID, requestID string) (*models.ActionResult, error) {
	req, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err != nil || !req.HasParticipant(callerID) {
		return nil, apperr.New(apperr.PermissionDenied, "You do not have permission to modify this request.")
	}

	if err := s.friendRepo.Delete(ctx, requestID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return &models.ActionResult{Success: true, Message: "Friend request rejected."}, nil
}

// Remove drops the friendship in both directions. Removing someone who is
// not a friend succeeds without changing anything.
func (s *FriendService) Remove(ctx context.Context, callerID, friendID string) (*models.ActionResult, error) {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.RemoveFriend(ctx, callerID, friendID); err != nil {
			return notFound(err, "Your user profile could not be found.")
		}
		if err := s.userRepo.RemoveFriend(ctx, friendID, callerID); err != nil {
			return notFound(err, "That user does not exist.")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &models.ActionResult{Success: true, Message: "Friend removed."}, nil
}

// ListIncoming returns the pending requests addressed to userID.
func (s *FriendService) ListIncoming(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	return s.friendRepo.ListIncoming(ctx, userID)
}

// ListFriends returns the public profiles of the user's friends.
func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]models.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "Your user profile could not be found.")
	}
	if len(user.Friends) == 0 {
		return []models.PublicUser{}, nil
	}

	users, err := s.userRepo.GetByIDs(ctx, user.Friends)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	publicFriends := make([]models.PublicUser, 0, len(users))
	for i := range users {
		publicFriends = append(publicFriends, users[i].Public())
	}
	return publicFriends, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
