// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the account and session lifecycle.

It handles user registration with bcrypt password hashing, credential login,
and cookie-carried HS256 session tokens whose IDs are denylisted in Redis on
logout.

Architecture:

  - Service: Orchestrates business logic (Signup, Login, Logout, AuthCheck).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Revocations).
  - Security: Leverages bcrypt and HMAC-signed JWTs.

A session token is only accepted while it verifies, is not revoked, and still
points at an existing account.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/taibuivan/reelflix/internal/platform/apperr"
	"github.com/taibuivan/reelflix/internal/platform/sec"
	"github.com/taibuivan/reelflix/internal/platform/validate"
	"github.com/taibuivan/reelflix/pkg/textnorm"
	"github.com/taibuivan/reelflix/pkg/uuid"
)

// # Contracts & Types

// TokenSigner issues and verifies session tokens.
type TokenSigner interface {
	Issue(userID, username string) (string, *sec.SessionClaims, error)
	Verify(token string) (*sec.SessionClaims, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(password, hash string) bool
}

// Service implements user authentication use cases.
type Service struct {
	userRepository  UserRepository
	revocationStore RevocationStore
	signer          TokenSigner
	hasher          PasswordHasher
	now             func() time.Time
	pickImage       func() string
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	revocations RevocationStore,
	signer TokenSigner,
	hasher PasswordHasher,
) *Service {
	return &Service{
		userRepository:  userRepo,
		revocationStore: revocations,
		signer:          signer,
		hasher:          hasher,
		now:             time.Now,
		pickImage:       randomProfileImage,
	}
}

// WithClock replaces the time source used to compute revocation lifetimes.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

// randomProfileImage picks one of the stock avatars.
func randomProfileImage() string {
	return ProfileImages[rand.IntN(len(ProfileImages))]
}

// # Registration Flow

// SignupInput holds the data required to enroll a new member.
type SignupInput struct {
	Email    string
	Username string
	Password string
}

/*
Signup validates, hashes, and persists a brand new user account.

Description: Canonicalizes the email and username, rejects malformed input
with per-field details, rejects duplicates with a Conflict, then creates the
account and issues its first session.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *Session: Token plus public projection of the created user
  - error: ValidationError, Conflict, or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*Session, error) {

	email := textnorm.Email(input.Email)
	username := textnorm.Username(input.Username)

	// Field rules run on the canonical values so stored data matches what was checked.
	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		MaxLen(FieldEmail, email, MaxEmailLength).
		Required(FieldUsername, username).
		MinLen(FieldUsername, username, MinUsernameLength).
		MaxLen(FieldUsername, username, MaxUsernameLength).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Custom(FieldPassword, len(input.Password) > MaxPasswordLength, fmt.Sprintf("Maximum %d bytes", MaxPasswordLength))
	if email != "" {
		validator.Email(FieldEmail, email)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Verify email uniqueness. Return a client-safe Conflict.
	if err := ensureAbsent(service.userRepository.FindByEmail(context, email)); err != nil {
		if errors.Is(err, errTaken) {
			return nil, apperr.Conflict("Email already exists")
		}
		return nil, err
	}

	// Verify username uniqueness. Return a client-safe Conflict.
	if err := ensureAbsent(service.userRepository.FindByUsername(context, username)); err != nil {
		if errors.Is(err, errTaken) {
			return nil, apperr.Conflict("Username already exists")
		}
		return nil, err
	}

	// Prevent storing plain-text passwords.
	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: hashedPassword,
		Image:        service.pickImage(),
		CreatedAt:    service.now().UTC(),
	}

	// The UNIQUE constraints still guard against a concurrent signup racing the checks above.
	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_signup_failed: %w", err)
	}

	return service.issue(user)
}

// errTaken marks a uniqueness probe that found an existing row.
var errTaken = errors.New("auth: identity taken")

// ensureAbsent turns a lookup result into nil (free), errTaken, or the lookup failure.
func ensureAbsent(_ *User, err error) error {
	switch {
	case err == nil:
		return errTaken
	case apperr.HasCode(err, apperr.CodeNotFound):
		return nil
	default:
		return err
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues a session token.

Description: Unknown emails and wrong passwords produce the same
Unauthorized error to prevent account enumeration.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Token plus public projection of the user
  - error: ValidationError, Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {

	email := textnorm.Email(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized(msgInvalidCredentials)
		}
		return nil, err
	}

	// bcrypt comparison is constant-time.
	if !service.hasher.Compare(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	return service.issue(user)
}

// issue signs a new session token for the user.
func (service *Service) issue(user *User) (*Session, error) {
	token, claims, err := service.signer.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &Session{
		Token:     token,
		ExpiresAt: claims.Expiry(),
		MaxAge:    claims.Expiry().Sub(service.now()),
		User:      user.Public(),
	}, nil
}

/*
Logout permanently revokes the session token.

Description: Missing, malformed and expired tokens are a no-op, so logout is
idempotent. A valid token's ID is denylisted until its natural expiry.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Revocation store failures
*/
func (service *Service) Logout(context context.Context, token string) error {
	claims, err := service.signer.Verify(token)
	if err != nil {
		return nil
	}

	remaining := claims.Expiry().Sub(service.now())
	if err := service.revocationStore.Revoke(context, claims.TokenID(), remaining); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
VerifySession resolves a raw session token into its claims.

Description: The token must verify, must not be revoked, and must reference
an existing account. Infrastructure failures become apperr.Internal.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *sec.SessionClaims: Verified identity
  - error: Unauthorized or Internal
*/
func (service *Service) VerifySession(context context.Context, token string) (*sec.SessionClaims, error) {
	claims, _, err := service.resolve(context, token)
	return claims, err
}

/*
AuthCheck returns the user the session token belongs to.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *PublicUser: Current user
  - error: Unauthorized or Internal
*/
func (service *Service) AuthCheck(context context.Context, token string) (*PublicUser, error) {
	_, user, err := service.resolve(context, token)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// resolve performs the full session check shared by VerifySession and AuthCheck.
func (service *Service) resolve(context context.Context, token string) (*sec.SessionClaims, *User, error) {

	// 1. Signature, issuer and expiry
	claims, err := service.signer.Verify(token)
	if err != nil {
		switch {
		case errors.Is(err, sec.ErrTokenMissing):
			return nil, nil, apperr.Unauthorized(msgNoToken)
		case errors.Is(err, sec.ErrTokenExpired):
			return nil, nil, apperr.Unauthorized(msgTokenExpired)
		default:
			return nil, nil, apperr.Unauthorized(msgInvalidToken)
		}
	}

	// 2. Denylist written by Logout
	revoked, err := service.revocationStore.IsRevoked(context, claims.TokenID())
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	if revoked {
		return nil, nil, apperr.Unauthorized(msgSessionRevoked)
	}

	// 3. The account must still exist
	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, nil, apperr.Unauthorized(msgUserNotFound)
		}
		return nil, nil, apperr.Internal(err)
	}

	return claims, user, nil
}
