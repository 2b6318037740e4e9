// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/taibuivan/reelflix/internal/content"
	"github.com/taibuivan/reelflix/pkg/textnorm"
)

// # Content Store

// ContentStore holds the selected content type. It is pure UI state.
type ContentStore struct {
	mu          sync.Mutex
	contentType content.Type
}

// NewContentStore constructs a [ContentStore] selecting movies.
func NewContentStore() *ContentStore {
	return &ContentStore{contentType: content.Movie}
}

// ContentType returns the selected content type.
func (store *ContentStore) ContentType() content.Type {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.contentType
}

// SetContentType selects a content type; unknown types are rejected.
func (store *ContentStore) SetContentType(contentType content.Type) error {
	if !slices.Contains(content.Types, contentType) {
		return fmt.Errorf("client: unknown content type %q", contentType)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	store.contentType = contentType
	return nil
}

// TypeLabel returns the plural display name of a content type.
func TypeLabel(contentType content.Type) string {
	if contentType == content.TV {
		return "TV Shows"
	}
	return "Movies"
}

// # Feeds

// ContentAPI is the subset of [API] the feeds need.
type ContentAPI interface {
	Trending(ctx context.Context, contentType content.Type) (*content.Item, error)
	Category(ctx context.Context, contentType content.Type, category string) ([]content.Item, error)
}

// FeedState is one snapshot of a feed. A failed load leaves Content empty.
type FeedState[T any] struct {
	Content   T
	IsLoading bool
	Err       error
}

// feed is the shared load cycle of every feed kind.
type feed[T any] struct {
	mu    sync.Mutex
	state FeedState[T]
}

func (f *feed[T]) State() FeedState[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *feed[T]) load(fetch func() (T, error)) FeedState[T] {
	f.mu.Lock()
	f.state = FeedState[T]{IsLoading: true}
	f.mu.Unlock()

	value, err := fetch()

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = FeedState[T]{Err: err}
	} else {
		f.state = FeedState[T]{Content: value}
	}
	return f.state
}

// TrendingFeed loads the hero banner item for the selected content type.
type TrendingFeed struct {
	feed[*content.Item]
	api    ContentAPI
	types  *ContentStore
	notify Notifier
}

// NewTrendingFeed constructs a [TrendingFeed].
func NewTrendingFeed(api ContentAPI, types *ContentStore, notify Notifier) *TrendingFeed {
	if notify == nil {
		notify = discard
	}
	return &TrendingFeed{api: api, types: types, notify: notify}
}

// Load fetches a fresh trending item.
func (trending *TrendingFeed) Load(ctx context.Context) FeedState[*content.Item] {
	contentType := trending.types.ContentType()

	state := trending.load(func() (*content.Item, error) {
		return trending.api.Trending(ctx, contentType)
	})
	if state.Err != nil {
		trending.notify(Notification{LevelError, fmt.Sprintf("Failed to load trending %s", TypeLabel(contentType))})
	}
	return state
}

// RowFeed loads one category row for the selected content type.
type RowFeed struct {
	feed[[]content.Item]
	api      ContentAPI
	types    *ContentStore
	category string
	notify   Notifier
}

// NewRowFeed constructs a [RowFeed] for category.
func NewRowFeed(api ContentAPI, types *ContentStore, category string, notify Notifier) *RowFeed {
	if notify == nil {
		notify = discard
	}
	return &RowFeed{api: api, types: types, category: category, notify: notify}
}

// Title is the row heading, e.g. "Now Playing Movies".
func (row *RowFeed) Title() string {
	return textnorm.Label(row.category) + " " + TypeLabel(row.types.ContentType())
}

// Load fetches the row; items without a backdrop cannot be shown and are dropped.
func (row *RowFeed) Load(ctx context.Context) FeedState[[]content.Item] {
	contentType := row.types.ContentType()

	state := row.load(func() ([]content.Item, error) {
		items, err := row.api.Category(ctx, contentType, row.category)
		if err != nil {
			return nil, err
		}
		return slices.DeleteFunc(items, func(item content.Item) bool {
			return item.BackdropPath == ""
		}), nil
	})
	if state.Err != nil {
		row.notify(Notification{LevelError, fmt.Sprintf("Failed to load %s", row.Title())})
	}
	return state
}
