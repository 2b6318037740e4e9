// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionToken = "signed-session-token"

// newBackend fakes the API server the CLI talks to.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	authorized := func(request *http.Request) bool {
		cookie, err := request.Cookie("jwt-reelflix")
		return err == nil && cookie.Value == sessionToken
	}
	unauthorized := func(writer http.ResponseWriter) {
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"success":false,"code":"UNAUTHORIZED","message":"Unauthorized - No Token Provided"}`))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(writer http.ResponseWriter, request *http.Request) {
		var input struct{ Email, Password string }
		require.NoError(t, json.NewDecoder(request.Body).Decode(&input))

		if input.Password != "secret1" {
			writer.WriteHeader(http.StatusUnauthorized)
			_, _ = writer.Write([]byte(`{"success":false,"code":"UNAUTHORIZED","message":"Invalid credentials"}`))
			return
		}
		http.SetCookie(writer, &http.Cookie{Name: "jwt-reelflix", Value: sessionToken, Path: "/", HttpOnly: true})
		_, _ = writer.Write([]byte(`{"success":true,"user":{"id":"u1","email":"a@b.com","username":"alice"}}`))
	})
	mux.HandleFunc("POST /api/v1/auth/logout", func(writer http.ResponseWriter, _ *http.Request) {
		http.SetCookie(writer, &http.Cookie{Name: "jwt-reelflix", Value: "", Path: "/", MaxAge: -1})
		_, _ = writer.Write([]byte(`{"success":true,"message":"Logged out successfully"}`))
	})
	mux.HandleFunc("GET /api/v1/auth/authCheck", func(writer http.ResponseWriter, request *http.Request) {
		if !authorized(request) {
			unauthorized(writer)
			return
		}
		_, _ = writer.Write([]byte(`{"success":true,"user":{"id":"u1","email":"a@b.com","username":"alice","createdAt":"2026-03-01T00:00:00Z"}}`))
	})
	mux.HandleFunc("GET /api/v1/tv/trending", func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`{"success":true,"content":{"id":7,"name":"Severance","first_air_date":"2022-02-18","overview":"Work and life, split."}}`))
	})
	mux.HandleFunc("GET /api/v1/tv/{category}", func(writer http.ResponseWriter, request *http.Request) {
		if request.PathValue("category") == "on_the_air" {
			writer.WriteHeader(http.StatusBadGateway)
			_, _ = writer.Write([]byte(`{"success":false,"code":"UPSTREAM_ERROR","message":"Content provider is unavailable"}`))
			return
		}
		_, _ = writer.Write([]byte(`{"success":true,"content":[{"id":1,"name":"Shown","backdrop_path":"/b.jpg"},{"id":2,"name":"Hidden"}]}`))
	})
	mux.HandleFunc("GET /api/v1/movie/603/details", func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`{"success":true,"content":{"id":603,"title":"The Matrix","tagline":"Welcome to the Real World.","runtime":136,"genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}]}}`))
	})
	mux.HandleFunc("GET /api/v1/movie/603/trailers", func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`{"success":true,"trailers":[{"id":"v1","key":"vKQi3bBA1y8","name":"Official Trailer","site":"YouTube"}]}`))
	})
	mux.HandleFunc("GET /api/v1/movie/{id}/details", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"success":false,"code":"NOT_FOUND","message":"Content not found"}`))
	})
	mux.HandleFunc("GET /api/v1/search/history", func(writer http.ResponseWriter, request *http.Request) {
		if !authorized(request) {
			unauthorized(writer)
			return
		}
		_, _ = writer.Write([]byte(`{"success":true,"content":[{"id":"h1","title":"Dune","searchType":"movie","createdAt":"2026-10-01T12:00:00Z"}]}`))
	})
	mux.HandleFunc("GET /api/v1/search/{searchType}/{query}", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "the matrix", request.PathValue("query"))
		_, _ = writer.Write([]byte(`{"success":true,"results":[{"id":603,"title":"The Matrix","release_date":"1999-03-31","vote_average":8.2}]}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// stubPassword answers every password prompt with password.
func stubPassword(t *testing.T, password string) {
	t.Helper()

	original := readPassword
	readPassword = func() ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() { readPassword = original })
}

type harness struct {
	configPath string
	output     *bytes.Buffer
	logs       *bytes.Buffer
}

// run executes one CLI invocation against server with a fresh runner.
func (h *harness) run(t *testing.T, server *httptest.Server, args ...string) error {
	t.Helper()

	runner := NewRunner(RunnerOpts{Logger: NewLogger(h.logs), Output: h.output})
	argv := append([]string{"reelflix", "--config", h.configPath, "--server", server.URL}, args...)
	return runner.App().Run(context.Background(), argv)
}

func newHarness(t *testing.T) *harness {
	return &harness{
		configPath: filepath.Join(t.TempDir(), "reelflix", "config.toml"),
		output:     &bytes.Buffer{},
		logs:       &bytes.Buffer{},
	}
}

/*
TestConfig_LoadAndSave falls back to defaults and writes an owner-only file.
*/
func TestConfig_LoadAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, defaultServerURL, config.ServerURL)
	assert.Empty(t, config.Session)

	config.Session = "abc"
	require.NoError(t, SaveConfig(path, config))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)

	require.NoError(t, os.WriteFile(path, []byte("server_url = [broken"), 0o600))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

/*
TestRunner_PromptPasswordKeepsSpaces strips only the line ending.
*/
func TestRunner_PromptPasswordKeepsSpaces(t *testing.T) {
	stubPassword(t, "  two words \r\n")
	runner := NewRunner(RunnerOpts{Logger: NewLogger(&bytes.Buffer{}), Output: &bytes.Buffer{}})

	password, err := runner.promptPassword()
	require.NoError(t, err)
	assert.Equal(t, "  two words ", password)
}

/*
TestRunner_SessionLifecycle persists the session on login and clears it on logout.
*/
func TestRunner_SessionLifecycle(t *testing.T) {
	server := newBackend(t)
	h := newHarness(t)
	stubPassword(t, "secret1")

	require.NoError(t, h.run(t, server, "whoami"))
	assert.Contains(t, h.output.String(), "Not signed in")

	require.NoError(t, h.run(t, server, "login", "--email", "a@b.com"))
	assert.Contains(t, h.output.String(), "Welcome back, alice")
	assert.Contains(t, h.logs.String(), "Logged in successfully")

	saved, err := LoadConfig(h.configPath)
	require.NoError(t, err)
	assert.Equal(t, sessionToken, saved.Session)

	h.output.Reset()
	require.NoError(t, h.run(t, server, "whoami"))
	assert.Contains(t, h.output.String(), "alice <a@b.com>")
	assert.Contains(t, h.output.String(), "Member since March 2026")

	require.NoError(t, h.run(t, server, "logout"))
	assert.Contains(t, h.logs.String(), "Logged out successfully")

	saved, err = LoadConfig(h.configPath)
	require.NoError(t, err)
	assert.Empty(t, saved.Session)
}

/*
TestRunner_LoginRejected shows the server message and saves nothing.
*/
func TestRunner_LoginRejected(t *testing.T) {
	server := newBackend(t)
	h := newHarness(t)
	stubPassword(t, "wrong")

	err := h.run(t, server, "login", "--email", "a@b.com")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, h.logs.String(), "Invalid credentials")

	_, err = os.Stat(h.configPath)
	assert.True(t, os.IsNotExist(err))
}

/*
TestRunner_Home renders the hero and the rows that loaded.
*/
func TestRunner_Home(t *testing.T) {
	server := newBackend(t)
	h := newHarness(t)

	err := h.run(t, server, "--type", "tv", "home")
	require.ErrorIs(t, err, errReported)

	output := h.output.String()
	assert.Contains(t, output, "Severance")
	assert.Contains(t, output, "#7 · 2022")
	assert.Contains(t, output, "Airing Today TV Shows")
	assert.Contains(t, output, "Popular TV Shows")
	assert.Contains(t, output, "Shown")
	assert.NotContains(t, output, "Hidden")
	assert.NotContains(t, output, "On The Air TV Shows")
	assert.Contains(t, h.logs.String(), "Failed to load On The Air TV Shows")
}

/*
TestRunner_Browse validates the category against the selected type.
*/
func TestRunner_Browse(t *testing.T) {
	server := newBackend(t)
	h := newHarness(t)

	require.NoError(t, h.run(t, server, "-t", "tv", "browse", "top_rated"))
	assert.Contains(t, h.output.String(), "Top Rated TV Shows")

	err := h.run(t, server, "-t", "tv", "browse", "now_playing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")

	err = h.run(t, server, "--type", "anime", "browse", "popular")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown content type")
}

/*
TestRunner_SearchAndHistory sends the saved session with each call.
*/
func TestRunner_SearchAndHistory(t *testing.T) {
	server := newBackend(t)
	h := newHarness(t)

	require.NoError(t, h.run(t, server, "search", "movie", "the matrix"))
	assert.Contains(t, h.output.String(), "The Matrix")
	assert.Contains(t, h.output.String(), "#603 · 1999 · 8.2")

	err := h.run(t, server, "history")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, h.logs.String(), "Unauthorized - No Token Provided")

	require.NoError(t, SaveConfig(h.configPath, &Config{ServerURL: server.URL, Session: sessionToken}))

	h.output.Reset()
	require.NoError(t, h.run(t, server, "history"))
	assert.Contains(t, h.output.String(), "Dune")
	assert.Contains(t, h.output.String(), "[movie] 2026-10-01")
}

/*
TestRunner_Details renders the record with its trailers and reports unknown ids.
*/
func TestRunner_Details(t *testing.T) {
	server := newBackend(t)
	h := newHarness(t)

	require.NoError(t, h.run(t, server, "details", "603"))
	output := h.output.String()
	assert.Contains(t, output, "Welcome to the Real World.")
	assert.Contains(t, output, "Action, Science Fiction")
	assert.Contains(t, output, "136 min")
	assert.Contains(t, output, "https://www.youtube.com/watch?v=vKQi3bBA1y8")

	err := h.run(t, server, "details", "999")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, h.logs.String(), "Content not found")

	err = h.run(t, server, "details", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid id")
}
