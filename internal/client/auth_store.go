// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"errors"
	"sync"
)

// Notification messages.
const (
	MsgSignupSucceeded = "Account created successfully"
	MsgLoginSucceeded  = "Logged in successfully"
	MsgLogoutSucceeded = "Logged out successfully"
	MsgConnectionError = "Server connection error. Please try again later."
)

// # Notifications

// Level distinguishes success from failure notifications.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// Notification is a transient message for the user.
type Notification struct {
	Level   Level
	Message string
}

// Notifier receives notifications. It must not block.
type Notifier func(Notification)

// discard drops every notification.
func discard(Notification) {}

// # Auth State

// AuthState is one immutable snapshot of the auth store.
type AuthState struct {
	User           *User
	IsSigningUp    bool
	IsLoggingIn    bool
	IsLoggingOut   bool
	IsCheckingAuth bool
}

// InitialAuthState is the state before the first auth check completes.
func InitialAuthState() AuthState {
	return AuthState{IsCheckingAuth: true}
}

// SignupStarted marks a signup in flight.
func (state AuthState) SignupStarted() AuthState {
	state.IsSigningUp = true
	return state
}

// SignupFinished applies a signup outcome; failure clears the user.
func (state AuthState) SignupFinished(user *User, err error) AuthState {
	state.IsSigningUp = false
	state.User = outcomeUser(user, err)
	return state
}

// LoginStarted marks a login in flight.
func (state AuthState) LoginStarted() AuthState {
	state.IsLoggingIn = true
	return state
}

// LoginFinished applies a login outcome; failure clears the user.
func (state AuthState) LoginFinished(user *User, err error) AuthState {
	state.IsLoggingIn = false
	state.User = outcomeUser(user, err)
	return state
}

// LogoutStarted marks a logout in flight.
func (state AuthState) LogoutStarted() AuthState {
	state.IsLoggingOut = true
	return state
}

// LogoutFinished applies a logout outcome; failure keeps the user.
func (state AuthState) LogoutFinished(err error) AuthState {
	state.IsLoggingOut = false
	if err == nil {
		state.User = nil
	}
	return state
}

// AuthCheckStarted marks an auth check in flight.
func (state AuthState) AuthCheckStarted() AuthState {
	state.IsCheckingAuth = true
	return state
}

// AuthCheckFinished applies an auth check outcome; failure clears the user.
func (state AuthState) AuthCheckFinished(user *User, err error) AuthState {
	state.IsCheckingAuth = false
	state.User = outcomeUser(user, err)
	return state
}

func outcomeUser(user *User, err error) *User {
	if err != nil {
		return nil
	}
	return user
}

// # Auth Store

// AuthAPI is the subset of [API] the auth store needs.
type AuthAPI interface {
	Signup(ctx context.Context, input SignupRequest) (*User, error)
	Login(ctx context.Context, input LoginRequest) (*User, error)
	Logout(ctx context.Context) error
	AuthCheck(ctx context.Context) (*User, error)
}

// AuthStore holds the current user and the in-flight flags of each auth operation.
type AuthStore struct {
	api    AuthAPI
	notify Notifier

	mu          sync.Mutex
	state       AuthState
	subscribers []func(AuthState)
}

// NewAuthStore constructs an [AuthStore]. A nil notifier discards notifications.
func NewAuthStore(api AuthAPI, notify Notifier) *AuthStore {
	if notify == nil {
		notify = discard
	}
	return &AuthStore{api: api, notify: notify, state: InitialAuthState()}
}

// State returns the current snapshot.
func (store *AuthStore) State() AuthState {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.state
}

// Subscribe registers fn to receive every new snapshot.
func (store *AuthStore) Subscribe(fn func(AuthState)) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.subscribers = append(store.subscribers, fn)
}

// apply runs one transition and publishes the resulting snapshot.
func (store *AuthStore) apply(transition func(AuthState) AuthState) AuthState {
	store.mu.Lock()
	store.state = transition(store.state)
	snapshot := store.state
	subscribers := append([]func(AuthState){}, store.subscribers...)
	store.mu.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
	return snapshot
}

/*
Signup creates an account.

Returns:
  - error: the API failure, after the store has reverted and notified
*/
func (store *AuthStore) Signup(ctx context.Context, input SignupRequest) error {
	store.apply(AuthState.SignupStarted)

	user, err := store.api.Signup(ctx, input)
	store.apply(func(state AuthState) AuthState { return state.SignupFinished(user, err) })

	if err != nil {
		store.notify(Notification{LevelError, failureMessage(err, "Signup failed", "An error occurred while signing up")})
		return err
	}
	store.notify(Notification{LevelSuccess, MsgSignupSucceeded})
	return nil
}

// Login authenticates an existing account.
func (store *AuthStore) Login(ctx context.Context, input LoginRequest) error {
	store.apply(AuthState.LoginStarted)

	user, err := store.api.Login(ctx, input)
	store.apply(func(state AuthState) AuthState { return state.LoginFinished(user, err) })

	if err != nil {
		store.notify(Notification{LevelError, failureMessage(err, "Login failed", "An error occurred while logging in")})
		return err
	}
	store.notify(Notification{LevelSuccess, MsgLoginSucceeded})
	return nil
}

// Logout ends the session. On failure the user stays signed in.
func (store *AuthStore) Logout(ctx context.Context) error {
	store.apply(AuthState.LogoutStarted)

	err := store.api.Logout(ctx)
	store.apply(func(state AuthState) AuthState { return state.LogoutFinished(err) })

	if err != nil {
		message := responseReason(err)
		if message == "" {
			message = "Logout failed"
		}
		store.notify(Notification{LevelError, message})
		return err
	}
	store.notify(Notification{LevelSuccess, MsgLogoutSucceeded})
	return nil
}

// AuthCheck resolves the stored session. Failures are silent.
func (store *AuthStore) AuthCheck(ctx context.Context) error {
	store.apply(AuthState.AuthCheckStarted)

	user, err := store.api.AuthCheck(ctx)
	store.apply(func(state AuthState) AuthState { return state.AuthCheckFinished(user, err) })

	return err
}

// failureMessage prefers the server's reason, then the connection message.
func failureMessage(err error, rejected, fallback string) string {
	var responseErr *ResponseError
	if errors.As(err, &responseErr) {
		if reason := responseErr.Reason(); reason != "" {
			return reason
		}
		return rejected
	}

	var connectionErr *ConnectionError
	if errors.As(err, &connectionErr) {
		return MsgConnectionError
	}
	return fallback
}

// responseReason returns the server's reason for err, or "" when the server gave none.
func responseReason(err error) string {
	var responseErr *ResponseError
	if errors.As(err, &responseErr) {
		return responseErr.Reason()
	}
	return ""
}
