// Package auth issues and checks the bearer tokens the launcher host uses to
// push snapshots to the web UI.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Realm identifies the JWT authentication realm.
type Realm string

// RealmHost is the realm of the launcher host process.
const RealmHost Realm = "host"

// Claims holds the custom JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	Realm Realm `json:"realm"`
}

// JWTManager handles token generation and validation.
type JWTManager struct {
	secret     []byte
	hostExpiry time.Duration
	now        func() time.Time
}

// NewJWTManager creates a JWT manager. Host tokens live for hostExpiry.
func NewJWTManager(secret string, hostExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		hostExpiry: hostExpiry,
		now:        time.Now,
	}
}

// IssueHostToken creates a signed host token for the given host instance.
func (m *JWTManager) IssueHostToken(hostID string) (string, error) {
	if hostID == "" {
		return "", fmt.Errorf("host id is required")
	}

	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   hostID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.hostExpiry)),
			ID:        uuid.New().String(),
		},
		Realm: RealmHost,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken parses and validates a JWT, returning claims if valid.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

// ValidateTokenForRealm validates a token and ensures it belongs to the expected realm.
func (m *JWTManager) ValidateTokenForRealm(tokenString string, expectedRealm Realm) (*Claims, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Realm != expectedRealm {
		return nil, fmt.Errorf("expected realm %s, got %s", expectedRealm, claims.Realm)
	}
	return claims, nil
}
