package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// Identity is the caller derived from a verified bearer token. It is a
// projection of a user record, constructed per request and never persisted.
type Identity struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type accessClaims struct {
	jwt.RegisteredClaims

	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// TokenPolicy is the single source of truth for how access tokens are issued
// and verified. The three original deployments drifted on TTL and secret
// naming; everything now goes through one configured policy.
type TokenPolicy struct {
	Secret []byte
	TTL    time.Duration

	// Now is overridable for tests.
	Now func() time.Time
}

const DefaultTokenTTL = 24 * time.Hour

// NewTokenPolicy builds the policy from settings. The secret is required;
// callers are expected to fail the boot when an error is returned.
func NewTokenPolicy() (*TokenPolicy, error) {
	secret := viper.GetString("security.jwt_secret")
	if len(secret) == 0 {
		return nil, fmt.Errorf("security.jwt_secret is not configured")
	}
	ttl := viper.GetDuration("security.token_ttl")
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenPolicy{Secret: []byte(secret), TTL: ttl, Now: time.Now}, nil
}

// Sign issues a bearer token carrying the identity with the policy's TTL.
func (v *TokenPolicy) Sign(identity Identity) (string, error) {
	if len(v.Secret) == 0 {
		return "", fmt.Errorf("token signing secret is not configured")
	}
	now := v.now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.TTL)),
		},
		ID:    identity.ID,
		Email: identity.Email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.Secret)
}

// Verify parses a bearer token and returns the identity it carries. Any
// malformed, expired or mis-signed token yields ok=false; the reason is
// deliberately not surfaced to callers.
func (v *TokenPolicy) Verify(token string) (Identity, bool) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || !parsed.Valid {
		return Identity{}, false
	}
	return Identity{ID: claims.ID, Email: claims.Email}, true
}

func (v *TokenPolicy) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}
