// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/revio-app/revio/pkg/slug"
)

/*
TestFrom verifies the slug transformation pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Science Fiction", "science-fiction"},
		{"accents", "Café Société", "cafe-societe"},
		{"punctuation", "Rock & Roll!", "rock-roll"},
		{"multiple_spaces", "a   b", "a-b"},
		{"leading_trailing", " -Drama- ", "drama"},
		{"digits", "Top 10 Films", "top-10-films"},
		{"already_slug", "sci-fi", "sci-fi"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
