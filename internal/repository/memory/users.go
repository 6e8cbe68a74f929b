package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
)

type userRepo struct{ s *Store }

func copyUser(u models.User) *models.User {
	u.Friends = append([]string{}, u.Friends...)
	return &u
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	defer r.s.write(ctx, repository.CollUsers)()

	for _, u := range r.s.data.users {
		if u.Email == user.Email || u.UserCode == user.UserCode {
			return fmt.Errorf("user: %w", repository.ErrDuplicate)
		}
	}
	if user.ID == "" {
		user.ID = repository.NewID()
	}
	if _, ok := r.s.data.users[user.ID]; ok {
		return fmt.Errorf("user: %w", repository.ErrDuplicate)
	}
	if user.Friends == nil {
		user.Friends = []string{}
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.data.users[user.ID] = *copyUser(*user)
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	defer r.s.read(ctx)()

	u, ok := r.s.data.users[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
	}
	return copyUser(u), nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	defer r.s.read(ctx)()

	for _, u := range r.s.data.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
}

func (r *userRepo) GetByUserCode(ctx context.Context, code string) (*models.User, error) {
	defer r.s.read(ctx)()

	for _, u := range r.s.data.users {
		if u.UserCode == code {
			return copyUser(u), nil
		}
	}
	return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
}

func (r *userRepo) GetByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	defer r.s.read(ctx)()

	users := []models.User{}
	for _, id := range ids {
		if u, ok := r.s.data.users[id]; ok {
			users = append(users, *copyUser(u))
		}
	}
	return users, nil
}

func (r *userRepo) ListInactiveSince(ctx context.Context, cutoff time.Time) ([]models.User, error) {
	defer r.s.read(ctx)()

	var users []models.User
	for _, u := range r.s.data.users {
		if u.LastActiveAt.Before(cutoff) {
			users = append(users, *copyUser(u))
		}
	}
	return users, nil
}

// mutate applies fn to a stored user.
func (r *userRepo) mutate(ctx context.Context, id string, fn func(u *models.User)) error {
	defer r.s.write(ctx, repository.CollUsers)()

	u, ok := r.s.data.users[id]
	if !ok {
		return fmt.Errorf("user: %w", repository.ErrNotFound)
	}
	fn(&u)
	r.s.data.users[id] = u
	return nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) error {
	return r.mutate(ctx, id, func(u *models.User) {
		if update.Name != nil {
			u.Name = *update.Name
		}
		if update.PhotoURL != nil {
			u.PhotoURL = *update.PhotoURL
		}
		u.UpdatedAt = time.Now().UTC()
	})
}

func (r *userRepo) SetProgress(ctx context.Context, id string, p models.Progress) error {
	return r.mutate(ctx, id, func(u *models.User) {
		u.Level = p.Level
		u.XP = p.XP
		u.XPToNextLevel = p.XPToNextLevel
		u.UpdatedAt = time.Now().UTC()
	})
}

func (r *userRepo) TouchLastActive(ctx context.Context, id string, at time.Time) error {
	// unknown ids are ignored, like an update that matches nothing
	_ = r.mutate(ctx, id, func(u *models.User) { u.LastActiveAt = at })
	return nil
}

func (r *userRepo) AddFriend(ctx context.Context, userID, friendID string) error {
	return r.mutate(ctx, userID, func(u *models.User) {
		if !u.HasFriend(friendID) {
			u.Friends = append(append([]string{}, u.Friends...), friendID)
		}
	})
}

func (r *userRepo) RemoveFriend(ctx context.Context, userID, friendID string) error {
	return r.mutate(ctx, userID, func(u *models.User) {
		kept := make([]string, 0, len(u.Friends))
		for _, f := range u.Friends {
			if f != friendID {
				kept = append(kept, f)
			}
		}
		u.Friends = kept
	})
}
