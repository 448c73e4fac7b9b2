package common

import (
	"context"

	userdomain "finance-app-go/internal/domain/user"
	"finance-app-go/pkg/logger"
)

// ProfileReader returns the stored profile of an authenticated user.
type ProfileReader interface {
	Profile(ctx context.Context, userID string) (*userdomain.Profile, error)
}

type Handlers struct {
	profiles ProfileReader
	log      logger.Logger
}

func New(profiles ProfileReader, log logger.Logger) *Handlers {
	return &Handlers{profiles: profiles, log: log}
}
