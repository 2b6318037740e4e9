// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth provides the HTTP delivery layer for user identity management.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Owns the session cookie (set on signup/login, expired on logout).
  - Verification: Input rules live in [Service] so every caller gets them.

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/reelflix/internal/platform/constants"
	requestutil "github.com/taibuivan/reelflix/internal/platform/request"
	"github.com/taibuivan/reelflix/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService   *Service
	secureCookies bool
}

// NewHandler constructs a new [Handler].
//
// secureCookies sets the Secure attribute on the session cookie; it is
// disabled only for plain-HTTP local development.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{authService: service, secureCookies: secureCookies}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup    : Creates a new account and starts a session.
//   - POST /login     : Authenticates and starts a session.
//   - POST /logout    : Revokes the session and expires the cookie.
//   - GET  /authCheck : Returns the user behind the session cookie.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.Get("/authCheck", handler.authCheck)

	return router
}

// # Request Payloads

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Signup handles the creation of a new user account.

POST /api/v1/auth/signup

Request:
  - Body: signupRequest (Email, Username, Password)

Response:
  - 201: { success, user } and the session cookie
  - 400: VALIDATION_ERROR: Bad input
  - 409: CONFLICT: Username or Email already exists
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Signup(request.Context(), SignupInput{
		Email:    input.Email,
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, session)
	respond.Created(writer, respond.Body{constants.FieldUser: session.User})
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: { success, user } and the session cookie
  - 400: VALIDATION_ERROR: Missing fields
  - 401: UNAUTHORIZED: Invalid credentials (no cookie is set)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, session)
	respond.OK(writer, respond.Body{constants.FieldUser: session.User})
}

/*
Logout terminates the current user session.

POST /api/v1/auth/logout

Description: Revokes the session token (if any) and always expires the
cookie, so repeated calls succeed.

Response:
  - 200: { success, message }
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	var token string
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
		token = cookie.Value
	}

	// The cookie is cleared even if revocation fails.
	handler.clearSessionCookie(writer)

	if err := handler.authService.Logout(request.Context(), token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Body{constants.FieldMessage: msgLoggedOut})
}

/*
AuthCheck reports the user behind the session cookie.

GET /api/v1/auth/authCheck

Response:
  - 200: { success, user }
  - 401: UNAUTHORIZED: Missing, invalid, expired or revoked session
*/
func (handler *Handler) authCheck(writer http.ResponseWriter, request *http.Request) {
	var token string
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
		token = cookie.Value
	}

	user, err := handler.authService.AuthCheck(request.Context(), token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Body{constants.FieldUser: user})
}

// # Cookie Helpers

// setSessionCookie writes the HttpOnly session cookie for a new session.
func (handler *Handler) setSessionCookie(writer http.ResponseWriter, session *Session) {
	maxAge := max(int(session.MaxAge.Seconds()), 1)

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    session.Token,
		Path:     constants.SessionCookiePath,
		MaxAge:   maxAge,
		Expires:  session.ExpiresAt,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookie instructs the client to drop the session cookie.
func (handler *Handler) clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
