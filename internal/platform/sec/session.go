// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives: password hashing and
// session token signing.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, Token Signing) from
// the domain logic. Verification here is pure: it takes a token string and
// returns claims or a typed failure, with no I/O and no transport concerns.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/reelflix/pkg/uuid"
)

// Verification failures. Callers map all of them to a 401.
var (
	ErrTokenMissing = errors.New("sec: session token missing")
	ErrTokenExpired = errors.New("sec: session token expired")
	ErrTokenInvalid = errors.New("sec: session token invalid")
)

// SessionClaims is the payload embedded inside a session token.
//
// The token ID (jti) identifies one issued session so that it can be
// revoked on logout without a server-side session table.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the cookie small.
	UserID   string `json:"uid"`
	Username string `json:"unm"`
}

// TokenID returns the unique identifier of the issued token.
func (claims *SessionClaims) TokenID() string {
	return claims.ID
}

// Expiry returns the instant the token stops being valid.
func (claims *SessionClaims) Expiry() time.Time {
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// SessionSigner issues and verifies HS256-signed session tokens.
type SessionSigner struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// SignerOption customises a [SessionSigner].
type SignerOption func(*SessionSigner)

// WithClock replaces the time source, used by tests to move past expiry.
func WithClock(now func() time.Time) SignerOption {
	return func(signer *SessionSigner) {
		signer.now = now
	}
}

// NewSessionSigner creates a signer keyed by secret. Tokens expire after ttl.
func NewSessionSigner(secret []byte, issuer string, ttl time.Duration, options ...SignerOption) *SessionSigner {
	signer := &SessionSigner{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, option := range options {
		option(signer)
	}
	return signer
}

// TTL returns the lifetime given to newly issued tokens.
func (signer *SessionSigner) TTL() time.Duration {
	return signer.ttl
}

// Issue creates a signed session token for a user.
func (signer *SessionSigner) Issue(userID, username string) (string, *SessionClaims, error) {
	currentTime := signer.now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   userID,
			Issuer:    signer.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(signer.ttl)),
		},
		UserID:   userID,
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(signer.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, claims, nil
}

// Verify checks the signature, issuer and expiry of a session token.
func (signer *SessionSigner) Verify(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			return signer.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(signer.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(signer.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid || claims.UserID == "" || claims.ID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
