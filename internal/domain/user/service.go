package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidUserID   = errors.New("invalid user id")
	ErrProfileNotFound = errors.New("profile not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpsertProfile records the caller's identity. Empty email or avatar keep
// whatever is already stored.
func (s *Service) UpsertProfile(ctx context.Context, userID, email, avatarURL string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return ErrInvalidUserID
	}

	profile := Profile{UserID: userID}
	if email = strings.TrimSpace(email); email != "" {
		profile.Email = &email
	}
	if avatarURL = strings.TrimSpace(avatarURL); avatarURL != "" {
		profile.AvatarURL = &avatarURL
	}

	return s.repo.UpsertProfile(ctx, &profile)
}

func (s *Service) Profile(ctx context.Context, userID string) (*Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrProfileNotFound
	}
	return s.repo.GetProfile(ctx, userID)
}
