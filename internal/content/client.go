// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/taibuivan/reelflix/internal/platform/apperr"
	"github.com/taibuivan/reelflix/internal/platform/constants"
	"github.com/taibuivan/reelflix/internal/platform/ctxutil"
)

// ErrNotFound is returned when the provider answers 404 for an addressed resource.
var ErrNotFound = errors.New("content: upstream resource not found")

// # Upstream Client

// Client performs single, uncached GET calls against the metadata provider.
//
// The bearer credential is attached by an [oauth2.Transport] wrapping the
// base transport, so it never appears in URLs or logs.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	language   string
}

// ClientOption customises a [Client].
type ClientOption func(*clientOptions)

type clientOptions struct {
	base http.RoundTripper
}

// WithTransport replaces the base transport under the bearer-token transport.
func WithTransport(base http.RoundTripper) ClientOption {
	return func(options *clientOptions) {
		options.base = base
	}
}

/*
NewClient builds a provider client.

Parameters:
  - baseURL: string (e.g. https://api.themoviedb.org/3)
  - accessToken: string (v4 read access token)
  - options: ...ClientOption

Returns:
  - *Client
  - error: if the base URL does not parse
*/
func NewClient(baseURL, accessToken string, options ...ClientOption) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("content: invalid base URL %q", baseURL)
	}

	settings := &clientOptions{base: http.DefaultTransport}
	for _, option := range options {
		option(settings)
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})

	return &Client{
		httpClient: &http.Client{
			Transport: &oauth2.Transport{Source: source, Base: settings.base},
			Timeout:   constants.UpstreamTimeout,
		},
		baseURL:  parsed,
		language: constants.UpstreamLanguage,
	}, nil
}

// pageResponse is the envelope of every list endpoint.
type pageResponse struct {
	Page    int    `json:"page"`
	Results []Item `json:"results"`
}

// Category fetches the first page of a category list.
func (client *Client) Category(context context.Context, contentType Type, category string) ([]Item, error) {
	var page pageResponse
	path := fmt.Sprintf("/%s/%s", contentType, category)
	if err := client.get(context, path, url.Values{"page": {"1"}}, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// Trending fetches the daily trending list.
func (client *Client) Trending(context context.Context, contentType Type) ([]Item, error) {
	var page pageResponse
	if err := client.get(context, fmt.Sprintf("/trending/%s/day", contentType), nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// Search runs a query against one search index.
func (client *Client) Search(context context.Context, searchType SearchType, query string) ([]Item, error) {
	var page pageResponse
	params := url.Values{
		"query":         {query},
		"include_adult": {"false"},
		"page":          {"1"},
	}
	if err := client.get(context, "/search/"+string(searchType), params, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// Details fetches the full record of one movie or TV show.
func (client *Client) Details(context context.Context, contentType Type, id int) (*Details, error) {
	details := &Details{}
	if err := client.get(context, fmt.Sprintf("/%s/%d", contentType, id), nil, details); err != nil {
		return nil, err
	}
	return details, nil
}

// Videos fetches the trailers and clips of one movie or TV show.
func (client *Client) Videos(context context.Context, contentType Type, id int) ([]Trailer, error) {
	var videos struct {
		Results []Trailer `json:"results"`
	}
	if err := client.get(context, fmt.Sprintf("/%s/%d/videos", contentType, id), nil, &videos); err != nil {
		return nil, err
	}
	return videos.Results, nil
}

// Similar fetches titles similar to one movie or TV show.
func (client *Client) Similar(context context.Context, contentType Type, id int) ([]Item, error) {
	var page pageResponse
	path := fmt.Sprintf("/%s/%d/similar", contentType, id)
	if err := client.get(context, path, url.Values{"page": {"1"}}, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// Configuration probes the provider's configuration endpoint.
func (client *Client) Configuration(context context.Context) error {
	var configuration struct {
		Images struct {
			BaseURL string `json:"base_url"`
		} `json:"images"`
	}
	return client.get(context, "/configuration", nil, &configuration)
}

/*
get performs one GET and decodes the JSON body into target.

Description: Network failures, non-2xx statuses and undecodable bodies
become apperr.Upstream; a 404 becomes [ErrNotFound] so id-addressed callers
can answer 404 instead of 502.
*/
func (client *Client) get(context context.Context, path string, params url.Values, target any) error {
	logger := ctxutil.GetLogger(context)

	endpoint := client.baseURL.JoinPath(path)
	query := url.Values{"language": {client.language}}
	for key, values := range params {
		query[key] = values
	}
	endpoint.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return apperr.Upstream(fmt.Errorf("content: build request %s: %w", path, err))
	}
	request.Header.Set("Accept", "application/json")

	logger.DebugContext(context, "upstream_request", slog.String("path", path))

	response, err := client.httpClient.Do(request)
	if err != nil {
		return apperr.Upstream(fmt.Errorf("content: GET %s: %w", path, err))
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case response.StatusCode < 200 || response.StatusCode > 299:
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, constants.UpstreamMaxBodyBytes))
		return apperr.Upstream(fmt.Errorf("content: GET %s: status %d", path, response.StatusCode))
	}

	body := io.LimitReader(response.Body, constants.UpstreamMaxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return apperr.Upstream(fmt.Errorf("content: decode %s: %w", path, err))
	}

	return nil
}
