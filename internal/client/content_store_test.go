// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelflix/internal/client"
	"github.com/taibuivan/reelflix/internal/content"
)

// fakeContentAPI serves canned feeds and records requested types.
type fakeContentAPI struct {
	trending *content.Item
	rows     []content.Item
	err      error
	types    []content.Type
}

func (api *fakeContentAPI) Trending(_ context.Context, contentType content.Type) (*content.Item, error) {
	api.types = append(api.types, contentType)
	return api.trending, api.err
}

func (api *fakeContentAPI) Category(_ context.Context, contentType content.Type, _ string) ([]content.Item, error) {
	api.types = append(api.types, contentType)
	if api.err != nil {
		return nil, api.err
	}
	return append([]content.Item(nil), api.rows...), nil
}

/*
TestContentStore_Selection defaults to movies and rejects unknown types.
*/
func TestContentStore_Selection(t *testing.T) {
	store := client.NewContentStore()
	assert.Equal(t, content.Movie, store.ContentType())

	require.NoError(t, store.SetContentType(content.TV))
	assert.Equal(t, content.TV, store.ContentType())

	assert.Error(t, store.SetContentType(content.Type("anime")))
	assert.Equal(t, content.TV, store.ContentType())
}

/*
TestRowFeed_Load drops items without a backdrop and clears content on failure.
*/
func TestRowFeed_Load(t *testing.T) {
	api := &fakeContentAPI{rows: []content.Item{
		{ID: 1, Title: "Shown", BackdropPath: "/a.jpg"},
		{ID: 2, Title: "Hidden"},
		{ID: 3, Title: "Also shown", BackdropPath: "/c.jpg"},
	}}
	types := client.NewContentStore()
	notes := &recorder{}
	row := client.NewRowFeed(api, types, "now_playing", notes.notify)

	assert.Equal(t, "Now Playing Movies", row.Title())

	state := row.Load(context.Background())
	require.NoError(t, state.Err)
	assert.False(t, state.IsLoading)
	require.Len(t, state.Content, 2)
	assert.Equal(t, 3, state.Content[1].ID)

	api.err = &client.ResponseError{StatusCode: 502, Message: "Content provider is unavailable"}
	state = row.Load(context.Background())
	assert.Error(t, state.Err)
	assert.Empty(t, state.Content)
	assert.Equal(t, state, row.State())
	require.Len(t, notes.items, 1)
	assert.Equal(t, "Failed to load Now Playing Movies", notes.items[0].Message)
}

/*
TestTrendingFeed_Load follows the selected content type.
*/
func TestTrendingFeed_Load(t *testing.T) {
	api := &fakeContentAPI{trending: &content.Item{ID: 1399, Name: "Game of Thrones"}}
	types := client.NewContentStore()
	trending := client.NewTrendingFeed(api, types, nil)

	state := trending.Load(context.Background())
	require.NoError(t, state.Err)
	assert.Equal(t, 1399, state.Content.ID)

	require.NoError(t, types.SetContentType(content.TV))
	api.err = &client.ConnectionError{Err: context.DeadlineExceeded}
	state = trending.Load(context.Background())
	assert.Error(t, state.Err)
	assert.Nil(t, state.Content)

	assert.Equal(t, []content.Type{content.Movie, content.TV}, api.types)
}
