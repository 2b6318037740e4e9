// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"

	"github.com/taibuivan/reelflix/internal/platform/apperr"
	"github.com/taibuivan/reelflix/internal/platform/constants"
	"github.com/taibuivan/reelflix/internal/platform/ctxutil"
	"github.com/taibuivan/reelflix/internal/platform/respond"
	"github.com/taibuivan/reelflix/internal/platform/sec"
)

// SessionVerifier resolves a raw session token into verified claims.
//
// Declared here so the middleware does not import the auth service and
// tests can plug in a stub.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (*sec.SessionClaims, error)
}

// RequireSession rejects requests that do not carry a valid session cookie.
//
// # Flow
//  1. Read the session cookie. Absent or empty means 401.
//  2. Verify the token via [SessionVerifier]. A bare verification error
//     means 401; an [apperr.AppError] is passed through unchanged.
//  3. Inject [*sec.SessionClaims] into the request context for downstream use.
//
// # Parameters
//   - verifier: The SessionVerifier instance.
//
// # Returns
//   - An [http.Handler] middleware.
func RequireSession(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Cookie Extraction ──────────────────────────────────────────
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				respond.Error(writer, request, apperr.Unauthorized("Unauthorized - No Token Provided"))
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifySession(request.Context(), cookie.Value)
			if err != nil {
				if apperr.IsAppError(err) {
					respond.Error(writer, request, err)
					return
				}
				respond.Error(writer, request, apperr.Unauthorized("Unauthorized - Invalid Token"))
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			if recorder, ok := writer.(*statusRecorder); ok {
				recorder.userID = claims.UserID
			}
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
