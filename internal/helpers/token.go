package helpers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/maozinhas/api/internal/config"
)

var ErrAuthDisabled = errors.New("token validation is not configured")

// TokenValidator verifies access tokens issued by the identity provider,
// either against its JWKS endpoint or with a shared HMAC secret.
type TokenValidator struct {
	jwks    *keyfunc.JWKS
	keyFunc jwt.Keyfunc
	methods []string
}

func NewTokenValidator(ctx context.Context, cfg config.AuthConfig) (*TokenValidator, error) {
	switch {
	case cfg.JWKSURL != "":
		// ctx bounds the background refresh, not just the initial fetch.
		jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
			Ctx:               ctx,
			RefreshInterval:   time.Hour,
			RefreshTimeout:    10 * time.Second,
			RefreshUnknownKID: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load JWKS from %s: %w", cfg.JWKSURL, err)
		}
		return &TokenValidator{
			jwks:    jwks,
			keyFunc: jwks.Keyfunc,
			methods: []string{"RS256", "ES256"},
		}, nil
	case cfg.JWTSecret != "":
		secret := []byte(cfg.JWTSecret)
		return &TokenValidator{
			keyFunc: func(*jwt.Token) (interface{}, error) { return secret, nil },
			methods: []string{"HS256"},
		}, nil
	}
	return nil, ErrAuthDisabled
}

func (v *TokenValidator) Validate(tokenStr string) (*Claims, error) {
	tokenStr = strings.TrimSpace(strings.TrimPrefix(tokenStr, "Bearer "))
	if tokenStr == "" {
		return nil, errors.New("missing token")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, v.keyFunc, jwt.WithValidMethods(v.methods))
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

// Close stops the background JWKS refresh.
func (v *TokenValidator) Close() {
	if v != nil && v.jwks != nil {
		v.jwks.EndBackground()
	}
}
