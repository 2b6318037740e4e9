// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package client is the Go client of the Reelflix API.

It provides the HTTP binding ([API]) and the client-side state containers
that front ends drive: [AuthStore], [ContentStore] and the content feeds.

# Architecture

Stores never share global state. Each one owns its fields behind a mutex,
applies pure transitions to a value snapshot, and publishes whole snapshots
to subscribers. Tests construct stores explicitly with a fake API.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/reelflix/internal/content"
	"github.com/taibuivan/reelflix/internal/platform/apperr"
	"github.com/taibuivan/reelflix/internal/platform/constants"
)

// Per-call deadlines.
const (
	AuthTimeout    = 10 * time.Second
	SessionTimeout = 5 * time.Second
	DefaultTimeout = 15 * time.Second
)

const (
	// apiPrefix is the versioned root of every endpoint.
	apiPrefix = "/api/v1"
	// maxResponseBytes caps how much of a response body is decoded.
	maxResponseBytes = 4 << 20
)

// # Errors

// ResponseError is returned when the server answered with a non-2xx status.
type ResponseError struct {
	StatusCode int
	Code       string
	Message    string
	// Details lists per-field validation failures, if any.
	Details []apperr.FieldError
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("client: server responded %d", e.StatusCode)
	}
	return fmt.Sprintf("client: server responded %d: %s", e.StatusCode, e.Message)
}

// ConnectionError is returned when no response was received at all.
type ConnectionError struct {
	Err error
}

// Reason is the most specific explanation the server gave: the field failures
// when present, otherwise the message.
func (e *ResponseError) Reason() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	reasons := make([]string, 0, len(e.Details))
	for _, detail := range e.Details {
		reasons = append(reasons, detail.Field+": "+detail.Message)
	}
	return strings.Join(reasons, "; ")
}

func (e *ConnectionError) Error() string { return "client: no response: " + e.Err.Error() }

func (e *ConnectionError) Unwrap() error { return e.Err }

// # Payloads

// User is the public user projection returned by the auth endpoints.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

// SignupRequest is the body of a signup call.
type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the body of a login call.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// envelope is the union of every body the API returns.
type envelope struct {
	Success  bool                `json:"success"`
	Message  string              `json:"message"`
	Code     string              `json:"code"`
	Details  []apperr.FieldError `json:"details"`
	User     *User               `json:"user"`
	Content  json.RawMessage     `json:"content"`
	Results  []content.Item      `json:"results"`
	Trailers []content.Trailer   `json:"trailers"`
	Similar  []content.Item      `json:"similar"`
}

// # API Binding

// API calls the Reelflix backend, carrying the session cookie in a jar.
type API struct {
	httpClient *http.Client
	baseURL    *url.URL
	logger     *slog.Logger
}

// Option customises an [API].
type Option func(*API)

// WithHTTPClient replaces the underlying client; its jar is replaced too.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(api *API) {
		api.httpClient = httpClient
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(api *API) {
		api.logger = logger
	}
}

/*
NewAPI builds an API binding for the server at baseURL.

Parameters:
  - baseURL: string (e.g. http://localhost:5000)
  - options: ...Option

Returns:
  - *API
  - error: if the URL does not parse
*/
func NewAPI(baseURL string, options ...Option) (*API, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("client: invalid server URL %q", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("client: cookie jar: %w", err)
	}

	api := &API{
		httpClient: &http.Client{},
		baseURL:    parsed,
		logger:     slog.Default(),
	}
	for _, option := range options {
		option(api)
	}
	api.httpClient.Jar = jar

	return api, nil
}

// SessionToken returns the session cookie value held in the jar, or "".
func (api *API) SessionToken() string {
	for _, cookie := range api.httpClient.Jar.Cookies(api.baseURL) {
		if cookie.Name == constants.SessionCookieName {
			return cookie.Value
		}
	}
	return ""
}

// SetSessionToken seeds the jar with a previously saved session cookie.
func (api *API) SetSessionToken(token string) {
	if token == "" {
		return
	}
	api.httpClient.Jar.SetCookies(api.baseURL, []*http.Cookie{{
		Name:  constants.SessionCookieName,
		Value: token,
		Path:  constants.SessionCookiePath,
	}})
}

// # Auth Endpoints

// Signup creates an account and stores the session cookie.
func (api *API) Signup(ctx context.Context, input SignupRequest) (*User, error) {
	var body envelope
	if err := api.do(ctx, AuthTimeout, http.MethodPost, "/auth/signup", input, &body); err != nil {
		return nil, err
	}
	return body.User, nil
}

// Login authenticates and stores the session cookie.
func (api *API) Login(ctx context.Context, input LoginRequest) (*User, error) {
	var body envelope
	if err := api.do(ctx, AuthTimeout, http.MethodPost, "/auth/login", input, &body); err != nil {
		return nil, err
	}
	return body.User, nil
}

// Logout ends the session; the server expires the cookie.
func (api *API) Logout(ctx context.Context) error {
	return api.do(ctx, SessionTimeout, http.MethodPost, "/auth/logout", struct{}{}, nil)
}

// AuthCheck returns the user behind the stored session cookie.
func (api *API) AuthCheck(ctx context.Context) (*User, error) {
	var body envelope
	if err := api.do(ctx, SessionTimeout, http.MethodGet, "/auth/authCheck", nil, &body); err != nil {
		return nil, err
	}
	return body.User, nil
}

// # Content Endpoints

// Trending returns one random trending item.
func (api *API) Trending(ctx context.Context, contentType content.Type) (*content.Item, error) {
	var item content.Item
	if err := api.getContent(ctx, fmt.Sprintf("/%s/trending", contentType), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Category returns the first page of a category list.
func (api *API) Category(ctx context.Context, contentType content.Type, category string) ([]content.Item, error) {
	var items []content.Item
	path := fmt.Sprintf("/%s/%s", contentType, url.PathEscape(category))
	if err := api.getContent(ctx, path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Details returns the full record of one title.
func (api *API) Details(ctx context.Context, contentType content.Type, id int) (*content.Details, error) {
	var details content.Details
	if err := api.getContent(ctx, fmt.Sprintf("/%s/%d/details", contentType, id), &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// Trailers returns the videos of one title.
func (api *API) Trailers(ctx context.Context, contentType content.Type, id int) ([]content.Trailer, error) {
	var body envelope
	path := fmt.Sprintf("/%s/%d/trailers", contentType, id)
	if err := api.do(ctx, DefaultTimeout, http.MethodGet, path, nil, &body); err != nil {
		return nil, err
	}
	return body.Trailers, nil
}

// Similar returns titles similar to one title.
func (api *API) Similar(ctx context.Context, contentType content.Type, id int) ([]content.Item, error) {
	var body envelope
	path := fmt.Sprintf("/%s/%d/similar", contentType, id)
	if err := api.do(ctx, DefaultTimeout, http.MethodGet, path, nil, &body); err != nil {
		return nil, err
	}
	return body.Similar, nil
}

// Search runs a query against one index.
func (api *API) Search(ctx context.Context, searchType content.SearchType, query string) ([]content.Item, error) {
	var body envelope
	path := fmt.Sprintf("/search/%s/%s", searchType, url.PathEscape(query))
	if err := api.do(ctx, DefaultTimeout, http.MethodGet, path, nil, &body); err != nil {
		return nil, err
	}
	return body.Results, nil
}

// History returns the caller's recent searches.
func (api *API) History(ctx context.Context) ([]content.HistoryEntry, error) {
	var entries []content.HistoryEntry
	if err := api.getContent(ctx, "/search/history", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// RemoveHistory forgets one search.
func (api *API) RemoveHistory(ctx context.Context, id string) error {
	return api.do(ctx, DefaultTimeout, http.MethodDelete, "/search/history/"+url.PathEscape(id), nil, nil)
}

// # Transport

// getContent decodes the "content" field of a GET response into target.
func (api *API) getContent(ctx context.Context, path string, target any) error {
	var body envelope
	if err := api.do(ctx, DefaultTimeout, http.MethodGet, path, nil, &body); err != nil {
		return err
	}
	if len(body.Content) == 0 {
		return nil
	}
	if err := json.Unmarshal(body.Content, target); err != nil {
		return fmt.Errorf("client: decode %s: %w", path, err)
	}
	return nil
}

/*
do performs one API call under its own deadline.

Description: A transport failure (including the deadline) yields a
[ConnectionError]; a non-2xx status yields a [ResponseError] carrying the
server's message.
*/
func (api *API) do(ctx context.Context, timeout time.Duration, method, path string, payload, target any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("client: encode %s: %w", path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	// Path segments arrive already escaped.
	endpoint := api.baseURL.String() + apiPrefix + path

	request, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("client: build %s %s: %w", method, path, err)
	}
	request.Header.Set("Accept", "application/json")
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	response, err := api.httpClient.Do(request)
	if err != nil {
		api.logger.DebugContext(ctx, "api_call_failed", slog.String("method", method), slog.String("path", path), slog.Any("error", err))
		return &ConnectionError{Err: err}
	}
	defer response.Body.Close()

	api.logger.DebugContext(ctx, "api_call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.Duration("latency", time.Since(started)),
	)

	body := io.LimitReader(response.Body, maxResponseBytes)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		var failure envelope
		_ = json.NewDecoder(body).Decode(&failure)
		return &ResponseError{
			StatusCode: response.StatusCode,
			Code:       failure.Code,
			Message:    failure.Message,
			Details:    failure.Details,
		}
	}

	if target == nil {
		_, _ = io.Copy(io.Discard, body)
		return nil
	}
	if err := json.NewDecoder(body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("client: decode %s: %w", path, err)
	}
	return nil
}
