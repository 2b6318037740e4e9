// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taibuivan/reelflix/internal/content"
)

// overviewWidth wraps long synopses in the hero and details views.
const overviewWidth = 72

var styles = NewPalette("#E50914", "#F5F5F1", "#46D369", "#808080")

// Palette is the stylesheet of every rendered view.
type Palette struct {
	brand lipgloss.Style
	title lipgloss.Style
	ok    lipgloss.Style
	muted lipgloss.Style
	body  lipgloss.Style
}

func NewPalette(brand, text, ok, muted string) *Palette {
	return &Palette{
		brand: NewBold(brand),
		title: NewBold(text),
		ok:    NewStyle(ok),
		muted: NewStyle(muted),
		body:  NewStyle(text).Width(overviewWidth),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

// # Views

// renderHero prints the banner item of the home screen.
func renderHero(w io.Writer, item *content.Item) {
	fmt.Fprintln(w, styles.brand.Render("★ "+item.DisplayTitle()))
	fmt.Fprintln(w, styles.muted.Render(itemMeta(*item)))
	if item.Overview != "" {
		fmt.Fprintln(w, styles.body.Render(item.Overview))
	}
	fmt.Fprintln(w)
}

// renderRow prints one titled list of items.
func renderRow(w io.Writer, title string, items []content.Item) {
	fmt.Fprintln(w, styles.title.Render(title))
	if len(items) == 0 {
		fmt.Fprintln(w, styles.muted.Render("  nothing to show"))
	}
	for _, item := range items {
		fmt.Fprintf(w, "  %s %s\n", item.DisplayTitle(), styles.muted.Render(itemMeta(item)))
	}
	fmt.Fprintln(w)
}

// renderDetails prints the full record of one title with its trailers.
func renderDetails(w io.Writer, details *content.Details, trailers []content.Trailer) {
	fmt.Fprintln(w, styles.brand.Render(details.DisplayTitle()))
	if details.Tagline != "" {
		fmt.Fprintln(w, styles.muted.Render(details.Tagline))
	}
	fmt.Fprintln(w, styles.muted.Render(itemMeta(details.Item)))

	if len(details.Genres) > 0 {
		names := make([]string, 0, len(details.Genres))
		for _, genre := range details.Genres {
			names = append(names, genre.Name)
		}
		fmt.Fprintln(w, strings.Join(names, ", "))
	}
	if details.Runtime > 0 {
		fmt.Fprintf(w, "%d min\n", details.Runtime)
	}
	if details.NumberOfSeasons > 0 {
		fmt.Fprintf(w, "%d seasons, %d episodes\n", details.NumberOfSeasons, details.NumberOfEpisodes)
	}
	if details.Overview != "" {
		fmt.Fprintln(w, styles.body.Render(details.Overview))
	}

	if len(trailers) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styles.title.Render("Trailers"))
		for _, trailer := range trailers {
			fmt.Fprintf(w, "  %s %s\n", trailer.Name, styles.muted.Render(trailerURL(trailer)))
		}
	}
}

// renderHistory prints the caller's recent searches.
func renderHistory(w io.Writer, entries []content.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, styles.muted.Render("No recent searches"))
		return
	}
	for _, entry := range entries {
		fmt.Fprintf(w, "%s  %s %s\n",
			styles.muted.Render(entry.ID),
			entry.Title,
			styles.muted.Render(fmt.Sprintf("[%s] %s", entry.SearchType, entry.CreatedAt.Format("2006-01-02"))),
		)
	}
}

// # Helpers

// itemMeta is the "#id · year · rating" suffix of a list line.
func itemMeta(item content.Item) string {
	parts := []string{fmt.Sprintf("#%d", item.ID)}
	if year := item.Year(); year != "" {
		parts = append(parts, year)
	}
	if item.VoteAverage > 0 {
		parts = append(parts, fmt.Sprintf("%.1f", item.VoteAverage))
	}
	return strings.Join(parts, " · ")
}

func trailerURL(trailer content.Trailer) string {
	if trailer.Site == "YouTube" {
		return "https://www.youtube.com/watch?v=" + trailer.Key
	}
	return trailer.Site + ":" + trailer.Key
}
