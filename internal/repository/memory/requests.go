package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
)

type requestRepo struct{ s *Store }

func copyRequest(r models.FriendRequest) *models.FriendRequest {
	r.Participants = append([]string{}, r.Participants...)
	return &r
}

func (r *requestRepo) Create(ctx context.Context, req *models.FriendRequest) error {
	defer r.s.write(ctx, repository.CollFriendRequests)()

	key := models.PairKey(req.From, req.To)
	for _, existing := range r.s.data.requests {
		if existing.PairKey == key {
			return fmt.Errorf("friend request: %w", repository.ErrDuplicate)
		}
	}
	if req.ID == "" {
		req.ID = repository.NewID()
	}
	req.Participants = []string{req.From, req.To}
	req.PairKey = key
	req.Status = models.RequestPending
	req.CreatedAt = time.Now().UTC()
	r.s.data.requests[req.ID] = *copyRequest(*req)
	return nil
}

func (r *requestRepo) GetByID(ctx context.Context, id string) (*models.FriendRequest, error) {
	defer r.s.read(ctx)()

	req, ok := r.s.data.requests[id]
	if !ok {
		return nil, fmt.Errorf("friend request: %w", repository.ErrNotFound)
	}
	return copyRequest(req), nil
}

func (r *requestRepo) FindBetween(ctx context.Context, a, b string) (*models.FriendRequest, error) {
	defer r.s.read(ctx)()

	for _, req := range r.s.data.requests {
		if req.HasParticipant(a) && req.HasParticipant(b) {
			return copyRequest(req), nil
		}
	}
	return nil, fmt.Errorf("friend request: %w", repository.ErrNotFound)
}

func (r *requestRepo) ListIncoming(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	defer r.s.read(ctx)()

	requests := []models.FriendRequest{}
	for _, req := range r.s.data.requests {
		if req.To == userID && req.Status == models.RequestPending {
			requests = append(requests, *copyRequest(req))
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
}

func (r *requestRepo) Delete(ctx context.Context, id string) error {
	defer r.s.write(ctx, repository.CollFriendRequests)()

	if _, ok := r.s.data.requests[id]; !ok {
		return fmt.Errorf("friend request: %w", repository.ErrNotFound)
	}
	delete(r.s.data.requests, id)
	return nil
}
