// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package cursor encodes keyset-pagination tokens for API list endpoints.
//
// # Overview
//
// A cursor is the opaque form of the last-seen internal row id. The token
// itself carries no ordering guarantee — ordering is enforced by the query
// (`id > cursor`, ascending). Clients must treat tokens as opaque strings.
package cursor

import (
	"encoding/base64"
	"strconv"
)

// Encode converts a positive row id into an opaque pagination token.
//
// It returns an empty string for non-positive ids so callers can emit
// "no next page" without a separate branch.
func Encode(id int64) string {
	if id <= 0 {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// Decode converts a pagination token back into the row id it encodes.
//
// # Degradation
//
// Malformed base64, non-integer payloads, and non-positive ids all return
// (0, false). Callers treat that as "no cursor" — a tampered or truncated
// token degrades to first-page behavior instead of failing the request.
func Decode(token string) (int64, bool) {
	if token == "" {
		return 0, false
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, false
	}

	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}
