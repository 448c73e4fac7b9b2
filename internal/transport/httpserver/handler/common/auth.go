package common

import (
	"errors"
	"net/http"
	"time"

	userdomain "finance-app-go/internal/domain/user"
	"finance-app-go/internal/transport/httpserver/middleware"
)

type authMeResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	AvatarURL   string     `json:"avatar_url"`
	MemberSince *time.Time `json:"member_since,omitempty"`
}

// AuthMe answers with the token identity, filling gaps from the stored
// profile.
func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.log.Debug("auth.me: no user in context")
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	resp := authMeResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}

	if h.profiles != nil {
		profile, err := h.profiles.Profile(r.Context(), user.ID)
		switch {
		case err == nil:
			if resp.Email == "" && profile.Email != nil {
				resp.Email = *profile.Email
			}
			if resp.AvatarURL == "" && profile.AvatarURL != nil {
				resp.AvatarURL = *profile.AvatarURL
			}
			if !profile.CreatedAt.IsZero() {
				createdAt := profile.CreatedAt.UTC()
				resp.MemberSince = &createdAt
			}
		case errors.Is(err, userdomain.ErrProfileNotFound):
		default:
			h.log.InternalError("auth.me: load profile", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
