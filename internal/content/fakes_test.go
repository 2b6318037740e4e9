// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"context"
	"slices"
	"sync"

	"github.com/taibuivan/reelflix/internal/content"
	"github.com/taibuivan/reelflix/internal/platform/apperr"
)

// fakeProvider serves canned upstream data and records every call.
type fakeProvider struct {
	mu       sync.Mutex
	lists    map[string][]content.Item
	details  map[int]*content.Details
	trailers map[int][]content.Trailer
	err      error
	calls    []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		lists:    map[string][]content.Item{},
		details:  map[int]*content.Details{},
		trailers: map[int][]content.Trailer{},
	}
}

func (provider *fakeProvider) record(call string) error {
	provider.mu.Lock()
	defer provider.mu.Unlock()
	provider.calls = append(provider.calls, call)
	return provider.err
}

func (provider *fakeProvider) Category(_ context.Context, contentType content.Type, category string) ([]content.Item, error) {
	key := string(contentType) + "/" + category
	if err := provider.record(key); err != nil {
		return nil, err
	}
	return provider.lists[key], nil
}

func (provider *fakeProvider) Trending(_ context.Context, contentType content.Type) ([]content.Item, error) {
	key := "trending/" + string(contentType)
	if err := provider.record(key); err != nil {
		return nil, err
	}
	return provider.lists[key], nil
}

func (provider *fakeProvider) Search(_ context.Context, searchType content.SearchType, query string) ([]content.Item, error) {
	key := "search/" + string(searchType) + "/" + query
	if err := provider.record(key); err != nil {
		return nil, err
	}
	return provider.lists[key], nil
}

func (provider *fakeProvider) Details(_ context.Context, _ content.Type, id int) (*content.Details, error) {
	if err := provider.record("details"); err != nil {
		return nil, err
	}
	details, ok := provider.details[id]
	if !ok {
		return nil, content.ErrNotFound
	}
	return details, nil
}

func (provider *fakeProvider) Videos(_ context.Context, _ content.Type, id int) ([]content.Trailer, error) {
	if err := provider.record("videos"); err != nil {
		return nil, err
	}
	trailers, ok := provider.trailers[id]
	if !ok {
		return nil, content.ErrNotFound
	}
	return trailers, nil
}

func (provider *fakeProvider) Similar(_ context.Context, _ content.Type, id int) ([]content.Item, error) {
	if err := provider.record("similar"); err != nil {
		return nil, err
	}
	if _, ok := provider.details[id]; !ok {
		return nil, content.ErrNotFound
	}
	return provider.lists["similar"], nil
}

func (provider *fakeProvider) Configuration(context.Context) error {
	return provider.record("configuration")
}

// memoryHistory is an in-memory HistoryRepository.
type memoryHistory struct {
	mu        sync.Mutex
	entries   []content.HistoryEntry
	appendErr error
}

func (history *memoryHistory) Append(_ context.Context, entry *content.HistoryEntry) error {
	history.mu.Lock()
	defer history.mu.Unlock()

	if history.appendErr != nil {
		return history.appendErr
	}
	history.entries = append(history.entries, *entry)
	return nil
}

func (history *memoryHistory) ListByUser(_ context.Context, userID string, limit int) ([]content.HistoryEntry, error) {
	history.mu.Lock()
	defer history.mu.Unlock()

	result := []content.HistoryEntry{}
	for _, entry := range slices.Backward(history.entries) {
		if entry.UserID == userID && len(result) < limit {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (history *memoryHistory) Delete(_ context.Context, userID, id string) error {
	history.mu.Lock()
	defer history.mu.Unlock()

	for index, entry := range history.entries {
		if entry.ID == id && entry.UserID == userID {
			history.entries = slices.Delete(history.entries, index, index+1)
			return nil
		}
	}
	return apperr.NotFound("Search history entry")
}
