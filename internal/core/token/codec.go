// Package token issues and verifies the bearer tokens shared by all three
// role namespaces. Tokens are stateless HS256 JWTs; there is no server-side
// session or revocation list, so logout is purely client-side.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/salonms/backend/internal/core/domain"
)

const DefaultTTL = 24 * time.Hour

// Claims is the payload carried by every issued token.
type Claims struct {
	AccountID string      `json:"userId"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens with a server-held secret. Verification
// also accepts tokens signed with previous secrets so the signing key can
// be rotated without invalidating live sessions. Safe for unbounded
// concurrent use.
type Codec struct {
	secrets [][]byte // [0] signs; the rest only verify
	ttl     time.Duration
}

// NewCodec builds a Codec. The secret must be supplied by configuration —
// an empty secret is a deployment error, not a default to paper over.
func NewCodec(secret string, ttl time.Duration, previous ...string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}

	secrets := [][]byte{[]byte(secret)}
	for _, p := range previous {
		if p != "" {
			secrets = append(secrets, []byte(p))
		}
	}
	return &Codec{secrets: secrets, ttl: ttl}, nil
}

// Issue signs a token asserting the given identity. Every token gets a
// unique jti so two logins by the same account remain distinguishable in
// audit logs.
func (c *Codec) Issue(accountID, email string, role domain.Role) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secrets[0])
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate reports whether the token is well formed, carries a valid
// signature under any accepted secret, and has not expired. It never
// returns an error: a malformed token is simply invalid.
func (c *Codec) Validate(tokenString string) bool {
	_, err := c.decode(tokenString)
	return err == nil
}

// DecodeClaims validates the token and returns its claims. Callers must
// not read claims any other way; an invalid token yields
// domain.ErrInvalidToken and no claims.
func (c *Codec) DecodeClaims(tokenString string) (*Claims, error) {
	claims, err := c.decode(tokenString)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (c *Codec) decode(tokenString string) (*Claims, error) {
	var lastErr error
	for _, secret := range c.secrets {
		claims := &Claims{}
		tkn, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err == nil && tkn.Valid {
			return claims, nil
		}
		if err == nil {
			err = jwt.ErrTokenUnverifiable
		}
		lastErr = err
	}
	return nil, lastErr
}
