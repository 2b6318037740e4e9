// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content proxies the movie/TV metadata provider.

It defines the explicit shapes the provider's JSON is decoded into, the
per-type category catalog, and the per-user search history.

# Architecture

Upstream data is never persisted or cached: every call re-fetches. Items are
normalized at the boundary so downstream code can rely on a positive ID.
*/
package content

import (
	"slices"
	"time"
)

// # Content Types

// Type selects the movie or TV half of the catalog.
type Type string

const (
	Movie Type = "movie"
	TV    Type = "tv"
)

// Types lists every browsable content type.
var Types = []Type{Movie, TV}

// SearchType selects what a search query matches.
type SearchType string

const (
	SearchMovie  SearchType = "movie"
	SearchTV     SearchType = "tv"
	SearchPerson SearchType = "person"
)

// SearchTypes lists every searchable kind.
var SearchTypes = []SearchType{SearchMovie, SearchTV, SearchPerson}

// Categories are the list endpoints the provider exposes per content type.
var Categories = map[Type][]string{
	Movie: {"now_playing", "popular", "top_rated", "upcoming"},
	TV:    {"airing_today", "on_the_air", "popular", "top_rated"},
}

// IsCategory reports whether category is listed for the content type.
func IsCategory(contentType Type, category string) bool {
	return slices.Contains(Categories[contentType], category)
}

// # Upstream Shapes

// Item is a movie, TV show or person as returned in provider lists.
//
// ID is required; every other field is optional and may be zero.
type Item struct {
	ID               int     `json:"id"`
	Title            string  `json:"title,omitempty"`
	Name             string  `json:"name,omitempty"`
	Overview         string  `json:"overview,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ProfilePath      string  `json:"profile_path,omitempty"`
	VoteAverage      float64 `json:"vote_average,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	FirstAirDate     string  `json:"first_air_date,omitempty"`
	MediaType        string  `json:"media_type,omitempty"`
	Adult            bool    `json:"adult"`
	Popularity       float64 `json:"popularity,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
}

// DisplayTitle returns the movie title, falling back to the TV/person name.
func (item Item) DisplayTitle() string {
	if item.Title != "" {
		return item.Title
	}
	return item.Name
}

// Image returns the poster path, falling back to a person's profile path.
func (item Item) Image() string {
	if item.PosterPath != "" {
		return item.PosterPath
	}
	return item.ProfilePath
}

// Year returns the four-digit release or first-air year, or "".
func (item Item) Year() string {
	for _, date := range []string{item.ReleaseDate, item.FirstAirDate} {
		if len(date) >= 4 {
			return date[:4]
		}
	}
	return ""
}

// Genre is a named genre attached to details.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Details is the full record of a single movie or TV show.
type Details struct {
	Item
	Genres           []Genre `json:"genres,omitempty"`
	Runtime          int     `json:"runtime,omitempty"`
	Tagline          string  `json:"tagline,omitempty"`
	Status           string  `json:"status,omitempty"`
	NumberOfSeasons  int     `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int     `json:"number_of_episodes,omitempty"`
}

// Trailer is a video attached to a movie or TV show.
type Trailer struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// normalize drops items the provider returned without a usable ID.
func normalize(items []Item) []Item {
	valid := make([]Item, 0, len(items))
	for _, item := range items {
		if item.ID > 0 {
			valid = append(valid, item)
		}
	}
	return valid
}

// # Search History

// HistoryEntry is one successful search remembered for a user.
type HistoryEntry struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Image      string     `json:"image"`
	Title      string     `json:"title"`
	SearchType SearchType `json:"searchType"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// # Field Identifiers

const (
	FieldContentType = "contentType"
	FieldCategory    = "category"
	FieldSearchType  = "searchType"
	FieldQuery       = "query"
	FieldID          = "id"
)
