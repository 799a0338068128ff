// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cursor_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/namira/pkg/cursor"
)

/*
TestCursor_RoundTrip verifies that Decode(Encode(n)) == n for positive ids.
*/
func TestCursor_RoundTrip(t *testing.T) {
	ids := []int64{1, 2, 7, 42, 999, 100000, 9223372036854775807}

	for _, id := range ids {
		token := cursor.Encode(id)
		require.NotEmpty(t, token)

		decoded, ok := cursor.Decode(token)
		assert.True(t, ok)
		assert.Equal(t, id, decoded)
	}
}

/*
TestCursor_EncodeNonPositive verifies that invalid ids produce empty tokens.
*/
func TestCursor_EncodeNonPositive(t *testing.T) {
	assert.Empty(t, cursor.Encode(0))
	assert.Empty(t, cursor.Encode(-17))
}

/*
TestCursor_DecodeMalformed verifies that bad tokens degrade to "no cursor"
rather than failing.
*/
func TestCursor_DecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64", "!!!not-base64!!!"},
		{"non-integer payload", base64.RawURLEncoding.EncodeToString([]byte("abc"))},
		{"zero id", base64.RawURLEncoding.EncodeToString([]byte("0"))},
		{"negative id", base64.RawURLEncoding.EncodeToString([]byte("-5"))},
		{"fractional id", base64.RawURLEncoding.EncodeToString([]byte("3.5"))},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			id, ok := cursor.Decode(testCase.token)
			assert.False(t, ok)
			assert.Zero(t, id)
		})
	}
}
