// Package auth issues and verifies the admin bearer tokens and guards
// the protected routes.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// Issuer is the iss claim stamped on every token.
	Issuer = "school-service"
	// TokenTTL is the session lifetime.
	TokenTTL = time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer mints a signed session token for an admin.
type TokenIssuer interface {
	Issue(adminID int) (token string, expiresAt time.Time, err error)
}

// TokenVerifier checks a bearer token and returns the admin it belongs to.
type TokenVerifier interface {
	Verify(token string) (adminID int, err error)
}

// JWTManager implements TokenIssuer and TokenVerifier with HS256 over a
// shared secret.
type JWTManager struct {
	key []byte
}

func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{key: []byte(secret)}
}

func (m *JWTManager) Issue(adminID int) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(TokenTTL)

	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   strconv.Itoa(adminID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (m *JWTManager) Verify(token string) (int, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return m.key, nil
	}, jwt.WithIssuer(Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}
	if !parsed.Valid {
		return 0, ErrInvalidToken
	}

	adminID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return adminID, nil
}
