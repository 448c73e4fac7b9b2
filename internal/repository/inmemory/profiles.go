package inmemory

import (
	"context"
	"sync"
	"time"

	userdomain "finance-app-go/internal/domain/user"
)

type ProfileRepository struct {
	mu       sync.Mutex
	profiles map[string]userdomain.Profile
}

var _ userdomain.Repository = (*ProfileRepository)(nil)

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{profiles: make(map[string]userdomain.Profile)}
}

func (r *ProfileRepository) UpsertProfile(ctx context.Context, profile *userdomain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	current, ok := r.profiles[profile.UserID]
	if !ok {
		current = userdomain.Profile{UserID: profile.UserID, CreatedAt: now}
	}
	if profile.Email != nil {
		email := *profile.Email
		current.Email = &email
	}
	if profile.AvatarURL != nil {
		avatarURL := *profile.AvatarURL
		current.AvatarURL = &avatarURL
	}
	current.UpdatedAt = now
	r.profiles[profile.UserID] = current
	return nil
}

func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*userdomain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, userdomain.ErrProfileNotFound
	}
	return &profile, nil
}
