// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/travelworld/internal/config"
)

// MinSecretLength is the shortest accepted HMAC secret.
const MinSecretLength = 32

var (
	ErrEmptySecret  = errors.New("JWT_SECRET is required but was empty")
	ErrShortSecret  = fmt.Errorf("JWT_SECRET must be at least %d characters", MinSecretLength)
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims carries the user ID in the standard subject claim. Name is an
// optional display hint set by the identity provider.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the subject.
func (c *Claims) UserID() string {
	return c.Subject
}

// JWTManager signs and validates HS256 tokens shared with the identity
// provider.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTManager creates a manager from the security config.
//
// Tokens are signed with HMAC-SHA256 and must carry a non-empty sub. Any
// other algorithm is rejected on validation.
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	if cfg.JWTSecret == "" {
		return nil, ErrEmptySecret
	}
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, ErrShortSecret
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTManager{
		secret: []byte(cfg.JWTSecret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// GenerateToken issues a signed token for userID. It backs the
// "travelworld issue-token" command; production tokens come from the
// identity provider.
func (m *JWTManager) GenerateToken(userID, name string) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	now := m.now()
	claims := &Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature, algorithm and time claims and returns
// the claims. Errors wrap ErrInvalidToken.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid claims", ErrInvalidToken)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}
	return claims, nil
}
