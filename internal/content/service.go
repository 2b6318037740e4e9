// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/taibuivan/reelflix/internal/platform/apperr"
	"github.com/taibuivan/reelflix/internal/platform/validate"
	"github.com/taibuivan/reelflix/pkg/uuid"
)

const (
	// maxQueryLength bounds free-text search queries.
	maxQueryLength = 100
	// historyLimit caps how many history entries are listed.
	historyLimit = 50
)

// # Contracts & Types

// Provider is the upstream metadata API.
type Provider interface {
	Category(ctx context.Context, contentType Type, category string) ([]Item, error)
	Trending(ctx context.Context, contentType Type) ([]Item, error)
	Search(ctx context.Context, searchType SearchType, query string) ([]Item, error)
	Details(ctx context.Context, contentType Type, id int) (*Details, error)
	Videos(ctx context.Context, contentType Type, id int) ([]Trailer, error)
	Similar(ctx context.Context, contentType Type, id int) ([]Item, error)
	Configuration(ctx context.Context) error
}

// Service implements the content browsing use cases.
type Service struct {
	provider Provider
	history  HistoryRepository
	pick     func(n int) int
	now      func() time.Time
}

// NewService constructs a new [Service].
func NewService(provider Provider, history HistoryRepository) *Service {
	return &Service{
		provider: provider,
		history:  history,
		pick:     rand.IntN,
		now:      time.Now,
	}
}

// WithPicker replaces the random index source used by GetTrending.
func (service *Service) WithPicker(pick func(n int) int) *Service {
	service.pick = pick
	return service
}

// # Browsing

/*
GetByCategory lists one category of movies or TV shows.

Parameters:
  - context: context.Context
  - contentType: Type
  - category: string

Returns:
  - []Item: Normalized items
  - error: ValidationError for unknown types/categories, Upstream on provider failure
*/
func (service *Service) GetByCategory(context context.Context, contentType Type, category string) ([]Item, error) {
	validator := &validate.Validator{}
	validateType(validator, contentType).
		Custom(FieldCategory, !IsCategory(contentType, category), "Unknown category")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	items, err := service.provider.Category(context, contentType, category)
	if err != nil {
		return nil, listError(err)
	}

	return normalize(items), nil
}

/*
GetTrending returns one random item from the daily trending list.

Parameters:
  - context: context.Context
  - contentType: Type

Returns:
  - *Item: A trending item
  - error: NotFound when the list is empty, Upstream on provider failure
*/
func (service *Service) GetTrending(context context.Context, contentType Type) (*Item, error) {
	validator := &validate.Validator{}
	if err := validateType(validator, contentType).Err(); err != nil {
		return nil, err
	}

	items, err := service.provider.Trending(context, contentType)
	if err != nil {
		return nil, listError(err)
	}

	items = normalize(items)
	if len(items) == 0 {
		return nil, apperr.NotFound("Trending content")
	}

	item := items[service.pick(len(items))]
	return &item, nil
}

/*
GetDetails returns the full record of one movie or TV show.

Returns:
  - *Details
  - error: NotFound when the provider does not know the id
*/
func (service *Service) GetDetails(context context.Context, contentType Type, id int) (*Details, error) {
	if err := validateAddress(contentType, id); err != nil {
		return nil, err
	}

	details, err := service.provider.Details(context, contentType, id)
	if err != nil {
		return nil, addressedError(err)
	}
	return details, nil
}

/*
GetTrailers returns the videos of one movie or TV show.

Returns:
  - []Trailer: Possibly empty
  - error: NotFound when the provider does not know the id
*/
func (service *Service) GetTrailers(context context.Context, contentType Type, id int) ([]Trailer, error) {
	if err := validateAddress(contentType, id); err != nil {
		return nil, err
	}

	trailers, err := service.provider.Videos(context, contentType, id)
	if err != nil {
		return nil, addressedError(err)
	}
	if trailers == nil {
		trailers = []Trailer{}
	}
	return trailers, nil
}

/*
GetSimilar returns titles similar to one movie or TV show.

Returns:
  - []Item: Normalized items
  - error: NotFound when the provider does not know the id
*/
func (service *Service) GetSimilar(context context.Context, contentType Type, id int) ([]Item, error) {
	if err := validateAddress(contentType, id); err != nil {
		return nil, err
	}

	items, err := service.provider.Similar(context, contentType, id)
	if err != nil {
		return nil, addressedError(err)
	}
	return normalize(items), nil
}

// # Search

/*
Search queries one index and remembers the top hit in the user's history.

Parameters:
  - context: context.Context
  - userID: string
  - searchType: SearchType
  - query: string

Returns:
  - []Item: Normalized results
  - error: ValidationError, NotFound when nothing matched, Upstream, or history persistence failures
*/
func (service *Service) Search(context context.Context, userID string, searchType SearchType, query string) ([]Item, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldSearchType, !isSearchType(searchType), "Must be one of: movie, tv, person").
		Required(FieldQuery, query).
		MaxLen(FieldQuery, query, maxQueryLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	items, err := service.provider.Search(context, searchType, query)
	if err != nil {
		return nil, listError(err)
	}

	items = normalize(items)
	if len(items) == 0 {
		return nil, apperr.NotFound("Results")
	}

	top := items[0]
	entry := &HistoryEntry{
		ID:         uuid.New(),
		UserID:     userID,
		Image:      top.Image(),
		Title:      top.DisplayTitle(),
		SearchType: searchType,
		CreatedAt:  service.now().UTC(),
	}
	if err := service.history.Append(context, entry); err != nil {
		return nil, fmt.Errorf("content_service_history_append_failed: %w", err)
	}

	return items, nil
}

/*
History lists the user's recent searches, newest first.
*/
func (service *Service) History(context context.Context, userID string) ([]HistoryEntry, error) {
	return service.history.ListByUser(context, userID, historyLimit)
}

/*
RemoveHistory deletes one of the user's history entries.

Returns:
  - error: ValidationError for malformed ids, NotFound if absent or owned by someone else
*/
func (service *Service) RemoveHistory(context context.Context, userID, id string) error {
	validator := &validate.Validator{}
	if err := validator.UUID(FieldID, id).Err(); err != nil {
		return err
	}
	return service.history.Delete(context, userID, id)
}

// # Diagnostics

// Ping probes the provider. It reports only reachability and credential validity.
func (service *Service) Ping(context context.Context) error {
	if err := service.provider.Configuration(context); err != nil {
		return listError(err)
	}
	return nil
}

// # Helpers

func validateType(validator *validate.Validator, contentType Type) *validate.Validator {
	return validator.OneOf(FieldContentType, string(contentType), string(Movie), string(TV))
}

func validateAddress(contentType Type, id int) error {
	validator := &validate.Validator{}
	return validateType(validator, contentType).
		Positive(FieldID, id).
		Err()
}

func isSearchType(searchType SearchType) bool {
	for _, known := range SearchTypes {
		if searchType == known {
			return true
		}
	}
	return false
}

// listError maps an upstream 404 on a list endpoint to a provider failure.
func listError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.Upstream(err)
	}
	return err
}

// addressedError maps an upstream 404 on an id endpoint to NOT_FOUND.
func addressedError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("Content")
	}
	return err
}

