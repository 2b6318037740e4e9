// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entity (User) and the logic for signup, login,
logout and session verification.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered member of the Reelflix platform.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Image        string    `json:"image"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the subset of a [User] safe to return to clients.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public projects the user without its password hash.
func (user *User) Public() *PublicUser {
	return &PublicUser{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Image:     user.Image,
		CreatedAt: user.CreatedAt,
	}
}

// Session is a freshly issued session token bound to a user.
type Session struct {
	Token     string
	ExpiresAt time.Time
	MaxAge    time.Duration
	User      *PublicUser
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail    = "email"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldMessage  = "message"
)
