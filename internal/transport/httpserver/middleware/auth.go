package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"finance-app-go/internal/config"
	"finance-app-go/pkg/logger"
)

var ErrInvalidToken = errors.New("invalid token")

type contextKey int

const (
	userIDKey contextKey = iota
	userKey
)

type User struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
}

type ProfileSaver interface {
	UpsertProfile(ctx context.Context, userID, email, avatarURL string) error
}

// TokenVerifier turns a bearer token into the user it was issued to.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (User, error)
}

type Authenticator struct {
	verifier TokenVerifier
	profiles ProfileSaver
	skipAuth bool
	mockUser User
	log      logger.Logger
}

// NewAuthenticator picks the token verifier for cfg.Mode. In skip mode every
// request runs as the configured mock user.
func NewAuthenticator(cfg config.AuthConfig, profiles ProfileSaver, log logger.Logger) *Authenticator {
	a := &Authenticator{
		profiles: profiles,
		log:      log.WithComponent(logger.ComponentAuth),
		mockUser: User{
			ID:        strings.TrimSpace(cfg.MockUserID),
			Email:     strings.TrimSpace(cfg.MockUserEmail),
			Name:      strings.TrimSpace(cfg.MockUserName),
			AvatarURL: strings.TrimSpace(cfg.MockUserAvatar),
		},
	}

	switch cfg.Mode {
	case config.AuthModeSkip:
		a.skipAuth = true
	case config.AuthModeJWT:
		a.verifier = NewJWTVerifier(cfg.JWTSecret)
	default:
		a.verifier = NewSupabaseVerifier(cfg.Supabase)
	}
	return a
}

func NewAuthenticatorWithVerifier(verifier TokenVerifier, profiles ProfileSaver, log logger.Logger) *Authenticator {
	return &Authenticator{verifier: verifier, profiles: profiles, log: log.WithComponent(logger.ComponentAuth)}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var user User
		if a.skipAuth {
			user = a.mockUser
			if user.ID == "" {
				writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock user id not configured")
				return
			}
		} else {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			verified, err := a.verifier.Verify(r.Context(), token)
			if err != nil {
				if errors.Is(err, errAuthNotConfigured) {
					a.log.Error("auth: verifier not configured")
					writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth not configured")
					return
				}
				a.log.Debug("auth: token rejected", "err", err)
				unauthorized(w)
				return
			}
			user = verified
		}

		if a.profiles != nil {
			if err := a.profiles.UpsertProfile(r.Context(), user.ID, user.Email, user.AvatarURL); err != nil {
				a.log.InternalError("auth: upsert profile failed", err, "user_id", user.ID)
			}
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, user User) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, userIDKey, user.ID)
}

func UserFromContext(ctx context.Context) (User, bool) {
	value := ctx.Value(userKey)
	user, ok := value.(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(userIDKey)
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
