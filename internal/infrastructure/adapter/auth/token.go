package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	errs "github.com/rakapradana/member-gateway/internal/domain/error"
	"github.com/rakapradana/member-gateway/internal/domain/port/core"
)

// JWTCodec implements TokenCodec with HS256-signed JWTs. The user ID rides
// in the subject claim; expiry comes from the configured TTL.
type JWTCodec struct {
	secret       []byte
	ttl          time.Duration
	timeProvider core.TimeProvider
}

// NewJWTCodec creates a codec signing with secret for tokens valid for ttl
func NewJWTCodec(secret string, ttl time.Duration, timeProvider core.TimeProvider) core.TokenCodec {
	return &JWTCodec{
		secret:       []byte(secret),
		ttl:          ttl,
		timeProvider: timeProvider,
	}
}

// Issue returns a signed token for the given user
func (c *JWTCodec) Issue(userID uint64) (string, error) {
	if len(c.secret) == 0 {
		return "", errs.NewInvalidToken("token signing key is not configured")
	}

	now := c.timeProvider.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", errs.NewInvalidToken("failed to sign token")
	}
	return signed, nil
}

// Verify parses and validates a token, returning the embedded user ID
func (c *JWTCodec) Verify(tokenString string) (uint64, error) {
	if len(c.secret) == 0 {
		return 0, errs.NewInvalidToken("token signing key is not configured")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.NewInvalidToken("unexpected signing method")
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.timeProvider.Now))
	if err != nil || !token.Valid {
		return 0, errs.NewInvalidToken("invalid or expired token")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, errs.NewInvalidToken("token subject is not a user id")
	}
	return userID, nil
}
