// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/reelflix/internal/api"
	"github.com/taibuivan/reelflix/internal/client"
	"github.com/taibuivan/reelflix/internal/content"
	"github.com/taibuivan/reelflix/internal/platform/apperr"
	"github.com/taibuivan/reelflix/internal/platform/config"
	redisstore "github.com/taibuivan/reelflix/internal/platform/redis"
	"github.com/taibuivan/reelflix/internal/platform/sec"
	"github.com/taibuivan/reelflix/internal/users/auth"
)

// # Fakes

type memoryUsers struct {
	mu    sync.Mutex
	users []auth.User
}

func (repo *memoryUsers) find(match func(auth.User) bool) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, user := range repo.users {
		if match(user) {
			return &user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	return repo.find(func(user auth.User) bool { return user.ID == id })
}

func (repo *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return repo.find(func(user auth.User) bool { return user.Email == email })
}

func (repo *memoryUsers) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	return repo.find(func(user auth.User) bool { return user.Username == username })
}

func (repo *memoryUsers) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.users = append(repo.users, *user)
	return nil
}

type memoryHistory struct {
	mu      sync.Mutex
	entries []content.HistoryEntry
}

func (history *memoryHistory) Append(_ context.Context, entry *content.HistoryEntry) error {
	history.mu.Lock()
	defer history.mu.Unlock()
	history.entries = append([]content.HistoryEntry{*entry}, history.entries...)
	return nil
}

func (history *memoryHistory) ListByUser(_ context.Context, userID string, _ int) ([]content.HistoryEntry, error) {
	history.mu.Lock()
	defer history.mu.Unlock()
	result := []content.HistoryEntry{}
	for _, entry := range history.entries {
		if entry.UserID == userID {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (history *memoryHistory) Delete(context.Context, string, string) error {
	return apperr.NotFound("Search history entry")
}

// # Fixture

type stack struct {
	server   *httptest.Server
	upstream *httptest.Server
	redis    *miniredis.Miniredis
}

func newStack(t *testing.T) *stack {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/movie/popular":
			_, _ = writer.Write([]byte(`{"page":1,"results":[{"id":550,"title":"Fight Club","backdrop_path":"/f.jpg"}]}`))
		case "/search/movie":
			_, _ = writer.Write([]byte(`{"results":[{"id":603,"title":"The Matrix","poster_path":"/m.jpg"}]}`))
		case "/configuration":
			_, _ = writer.Write([]byte(`{"images":{"base_url":"http://image.tmdb.org/t/p/"}}`))
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(upstream.Close)

	mini := miniredis.RunT(t)
	rdb, err := redisstore.NewClient(context.Background(), "redis://"+mini.Addr(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		ServerPort:  "0",
		Environment: "development",
		SessionTTL:  time.Hour,
		CORSOrigins: []string{"http://localhost:5173"},
	}

	signer := sec.NewSessionSigner([]byte("0123456789abcdef0123456789abcdef"), "reelflix.app", cfg.SessionTTL)
	authService := auth.NewService(&memoryUsers{}, auth.NewRevocationStore(rdb), signer, sec.NewPasswordHasher(bcrypt.MinCost))

	provider, err := content.NewClient(upstream.URL, "read-access-token")
	require.NoError(t, err)
	contentService := content.NewService(provider, &memoryHistory{})

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		Environment: cfg.Environment,
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
		CheckUpstream: contentService.Ping,
	}, logger)

	server := api.NewServer(cfg, logger, authService, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, !cfg.IsDevelopment()),
		Content:   content.NewHandler(contentService),
	})

	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)

	return &stack{server: httpServer, upstream: upstream, redis: mini}
}

func getJSON(t *testing.T, url string) (int, map[string]any) {
	t.Helper()

	response, err := http.Get(url)
	require.NoError(t, err)
	defer response.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(response.Body).Decode(&body))
	return response.StatusCode, body
}

// # Tests

/*
TestServer_Health reports liveness with the environment name.
*/
func TestServer_Health(t *testing.T) {
	fx := newStack(t)

	status, body := getJSON(t, fx.server.URL+"/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "development", body["environment"])
}

/*
TestServer_Ready turns degraded when a dependency stops answering.
*/
func TestServer_Ready(t *testing.T) {
	fx := newStack(t)

	status, body := getJSON(t, fx.server.URL+"/ready")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["status"])
	assert.Len(t, body["checks"], 2)

	fx.upstream.Close()

	status, body = getJSON(t, fx.server.URL+"/ready")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "degraded", body["status"])
}

/*
TestServer_ContentRequiresSession rejects content calls without a cookie.
*/
func TestServer_ContentRequiresSession(t *testing.T) {
	fx := newStack(t)

	status, body := getJSON(t, fx.server.URL+"/api/v1/movie/popular")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Unauthorized - No Token Provided", body["message"])
}

/*
TestServer_EndToEnd drives the full stack through the Go client.
*/
func TestServer_EndToEnd(t *testing.T) {
	fx := newStack(t)
	ctx := context.Background()

	apiClient, err := client.NewAPI(fx.server.URL)
	require.NoError(t, err)

	user, err := apiClient.Signup(ctx, client.SignupRequest{Email: "Neo@Matrix.io", Username: "neo", Password: "followthewhiterabbit"})
	require.NoError(t, err)
	assert.Equal(t, "neo@matrix.io", user.Email)
	assert.NotEmpty(t, apiClient.SessionToken())

	items, err := apiClient.Category(ctx, content.Movie, "popular")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Fight Club", items[0].Title)

	results, err := apiClient.Search(ctx, content.SearchMovie, "the matrix")
	require.NoError(t, err)
	require.Len(t, results, 1)

	history, err := apiClient.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "The Matrix", history[0].Title)

	_, err = apiClient.Details(ctx, content.Movie, 999)
	var responseErr *client.ResponseError
	require.ErrorAs(t, err, &responseErr)
	assert.Equal(t, http.StatusNotFound, responseErr.StatusCode)

	revokedToken := apiClient.SessionToken()
	require.NoError(t, apiClient.Logout(ctx))
	assert.Empty(t, apiClient.SessionToken())

	replay, err := client.NewAPI(fx.server.URL)
	require.NoError(t, err)
	replay.SetSessionToken(revokedToken)

	_, err = replay.Category(ctx, content.Movie, "popular")
	require.ErrorAs(t, err, &responseErr)
	assert.Equal(t, http.StatusUnauthorized, responseErr.StatusCode)
}

/*
TestServer_SignupValidationReason surfaces the failing field through the auth store.
*/
func TestServer_SignupValidationReason(t *testing.T) {
	fx := newStack(t)

	apiClient, err := client.NewAPI(fx.server.URL)
	require.NoError(t, err)

	var notifications []client.Notification
	store := client.NewAuthStore(apiClient, func(notification client.Notification) {
		notifications = append(notifications, notification)
	})

	err = store.Signup(context.Background(), client.SignupRequest{Email: "a@b.com", Username: "alice", Password: "short"})
	require.Error(t, err)

	assert.Nil(t, store.State().User)
	assert.Empty(t, apiClient.SessionToken())
	assert.Equal(t, []client.Notification{{Level: client.LevelError, Message: "password: Minimum 6 characters"}}, notifications)
}

/*
TestServer_CORSPreflight answers allowed origins with credentials enabled.
*/
func TestServer_CORSPreflight(t *testing.T) {
	fx := newStack(t)

	request, err := http.NewRequest(http.MethodOptions, fx.server.URL+"/api/v1/auth/login", nil)
	require.NoError(t, err)
	request.Header.Set("Origin", "http://localhost:5173")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)

	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	assert.Equal(t, http.StatusNoContent, response.StatusCode)
	assert.Equal(t, "http://localhost:5173", response.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", response.Header.Get("Access-Control-Allow-Credentials"))
}
