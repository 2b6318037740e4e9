// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelflix/internal/platform/constants"
	"github.com/taibuivan/reelflix/internal/users/auth"
)

func serve(t *testing.T, handler http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func sessionCookie(recorder *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName {
			return cookie
		}
	}
	return nil
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestHandler_SignupSetsSessionCookie checks the status, envelope and cookie attributes.
*/
func TestHandler_SignupSetsSessionCookie(t *testing.T) {
	fx := newFixture(t)
	router := auth.NewHandler(fx.service, true).Routes()

	recorder := serve(t, router, http.MethodPost, "/signup", `{"email":"a@b.com","username":"alice","password":"secret1"}`)

	require.Equal(t, http.StatusCreated, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "a@b.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")

	cookie := sessionCookie(recorder)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Greater(t, cookie.MaxAge, 0)
}

/*
TestHandler_FailuresSetNoCookie covers the validation and credential errors.
*/
func TestHandler_FailuresSetNoCookie(t *testing.T) {
	fx := newFixture(t)
	router := auth.NewHandler(fx.service, false).Routes()

	recorder := serve(t, router, http.MethodPost, "/signup", `{"email":"a@b.com","username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"short_password", "/signup", `{"email":"c@d.com","username":"ab","password":"short"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"duplicate_email", "/signup", `{"email":"a@b.com","username":"bob","password":"secret1"}`, http.StatusConflict, "CONFLICT"},
		{"bad_json", "/signup", `{"email":`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"wrong_password", "/login", `{"email":"a@b.com","password":"wrong12"}`, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"missing_fields", "/login", `{}`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(t, router, http.MethodPost, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			body := decodeBody(t, recorder)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Nil(t, sessionCookie(recorder))
		})
	}
	assert.Equal(t, 1, fx.users.count())
}

/*
TestHandler_SessionLifecycle runs login, authCheck, logout and a replayed authCheck.
*/
func TestHandler_SessionLifecycle(t *testing.T) {
	fx := newFixture(t)
	router := auth.NewHandler(fx.service, false).Routes()

	serve(t, router, http.MethodPost, "/signup", `{"email":"a@b.com","username":"alice","password":"secret1"}`)

	login := serve(t, router, http.MethodPost, "/login", `{"email":"A@B.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, login.Code)
	cookie := sessionCookie(login)
	require.NotNil(t, cookie)

	check := serve(t, router, http.MethodGet, "/authCheck", "", cookie)
	require.Equal(t, http.StatusOK, check.Code)
	assert.Equal(t, "alice", decodeBody(t, check)["user"].(map[string]any)["username"])

	logout := serve(t, router, http.MethodPost, "/logout", "", cookie)
	require.Equal(t, http.StatusOK, logout.Code)
	assert.Equal(t, "Logged out successfully", decodeBody(t, logout)["message"])
	cleared := sessionCookie(logout)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)

	replay := serve(t, router, http.MethodGet, "/authCheck", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, replay.Code)
}

/*
TestHandler_LogoutWithoutSession still succeeds and clears the cookie.
*/
func TestHandler_LogoutWithoutSession(t *testing.T) {
	fx := newFixture(t)
	router := auth.NewHandler(fx.service, false).Routes()

	for range 2 {
		recorder := serve(t, router, http.MethodPost, "/logout", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, true, decodeBody(t, recorder)["success"])
		cleared := sessionCookie(recorder)
		require.NotNil(t, cleared)
		assert.Less(t, cleared.MaxAge, 0)
	}
}

/*
TestHandler_AuthCheckWithoutCookie answers 401.
*/
func TestHandler_AuthCheckWithoutCookie(t *testing.T) {
	fx := newFixture(t)
	router := auth.NewHandler(fx.service, false).Routes()

	recorder := serve(t, router, http.MethodGet, "/authCheck", "")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeBody(t, recorder)["code"])
}
