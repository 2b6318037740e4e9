// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/reelflix/pkg/textnorm"
)

/*
TestEmail checks trimming and case folding.
*/
func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a@b.com", "a@b.com"},
		{"  Alice@Example.COM ", "alice@example.com"},
		{"Stra\u00dfe@b.de", "strasse@b.de"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, textnorm.Email(tt.in))
	}
}

/*
TestUsername_ComposesRunes makes decomposed and composed input equal.
*/
func TestUsername_ComposesRunes(t *testing.T) {
	composed := "Jos\u00e9"
	decomposed := "Jose\u0301"

	assert.Equal(t, textnorm.Username(composed), textnorm.Username(" "+decomposed+" "))
	assert.Equal(t, "Alice", textnorm.Username("Alice"))
}

/*
TestLabel covers category keys used by the client rows.
*/
func TestLabel(t *testing.T) {
	assert.Equal(t, "Now Playing", textnorm.Label("now_playing"))
	assert.Equal(t, "Top Rated", textnorm.Label("top_rated"))
	assert.Equal(t, "Popular", textnorm.Label("popular"))
}
