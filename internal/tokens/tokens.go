package tokens

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Subject identifies the single moderator role in signed session tokens.
const Subject = "admin"

var ErrMissingSecret = errors.New("session secret is not configured")

// Claims carried by a signed session token. ID (jti) is what logout revokes.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateSessionToken creates an HS256 session token valid for ttl from issuedAt.
func GenerateSessionToken(secret []byte, ttl time.Duration, issuedAt time.Time) (string, *Claims, error) {
	if len(secret) == 0 {
		return "", nil, ErrMissingSecret
	}
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   Subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return signed, claims, nil
}

// ParseSessionToken verifies signature, algorithm and expiry of a signed token.
func ParseSessionToken(secret []byte, raw string) (*Claims, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithSubject(Subject),
	)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, errors.New("session token has no id")
	}
	return claims, nil
}

// GenerateOpaqueToken returns 32 random bytes hex-encoded (256 bits of entropy),
// the legacy cookie format.
func GenerateOpaqueToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
