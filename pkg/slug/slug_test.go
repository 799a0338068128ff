// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/namira/pkg/slug"
)

/*
TestSlug_From verifies the full transformation pipeline against representative inputs.
*/
func TestSlug_From(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple lowercase", "maria", "maria"},
		{"uppercase", "Maria", "maria"},
		{"accents removed", "Héloïse", "heloise"},
		{"spaces become hyphens", "Jean Pierre", "jean-pierre"},
		{"punctuation collapsed", "O'Brien  --  Jr.", "o-brien-jr"},
		{"leading and trailing junk", "  !Maria!  ", "maria"},
		{"digits preserved", "Maria 2", "maria-2"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, slug.From(testCase.input))
		})
	}
}

/*
TestSlug_From_NonLatin verifies that scripts with no ASCII decomposition
produce an empty slug. Callers are expected to fall back to a synthetic key.
*/
func TestSlug_From_NonLatin(t *testing.T) {
	assert.Empty(t, slug.From("மாரி"))
	assert.Empty(t, slug.From("···"))
	assert.Empty(t, slug.From(""))
}
