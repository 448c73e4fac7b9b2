package middleware

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTVerifier accepts HS256 tokens signed with a shared secret. The owner id
// comes from the sub claim, falling back to user_id, and must be a UUID.
type JWTVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (User, error) {
	if len(v.secret) == 0 {
		return User{}, errAuthNotConfigured
	}

	claims := jwt.MapClaims{}
	parsed, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, _ := claims["sub"].(string)
	legacyID, _ := claims["user_id"].(string)
	rawID := firstNonEmpty(sub, legacyID)

	userID, err := uuid.Parse(rawID)
	if err != nil {
		return User{}, fmt.Errorf("%w: subject is not a uuid", ErrInvalidToken)
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	return User{ID: userID.String(), Email: email, Name: name}, nil
}
