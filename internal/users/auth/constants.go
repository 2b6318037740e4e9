// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Authentication Constraints

const (
	// MinPasswordLength is the shortest password accepted on signup.
	MinPasswordLength = 6

	// MaxPasswordLength is bcrypt's input limit in bytes; longer input is rejected, not truncated.
	MaxPasswordLength = 72

	// MinUsernameLength and MaxUsernameLength bound the username in characters.
	MinUsernameLength = 3
	MaxUsernameLength = 32

	// MaxEmailLength matches the users.account column width.
	MaxEmailLength = 320
)

// ProfileImages are the avatars a new account may be assigned.
var ProfileImages = []string{"/avatar1.png", "/avatar2.png", "/avatar3.png"}

// Client-facing messages.
const (
	msgInvalidCredentials = "Invalid credentials"
	msgNoToken            = "Unauthorized - No Token Provided"
	msgInvalidToken       = "Unauthorized - Invalid Token"
	msgTokenExpired       = "Unauthorized - Token Expired"
	msgSessionRevoked     = "Unauthorized - Session Revoked"
	msgUserNotFound       = "Unauthorized - User Not Found"
	msgLoggedOut          = "Logged out successfully"
)
