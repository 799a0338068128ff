// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package name

import "context"

// # Read Path Contract

// DisplayLocales carries the resolved locale identifiers a search needs.
// All fields are storage ids, resolved once per request via the directory.
type DisplayLocales struct {
	Tamil   int
	English int
	French  int
	// Requested is the locale the substring match and description resolution
	// are scoped to.
	Requested int
	// Default is the description fallback locale.
	Default int

	// RequestedCode and DefaultCode mirror Requested/Default as locale codes.
	// The denormalized path keys its pre-stored per-locale mappings by code.
	RequestedCode string
	DefaultCode   string
}

// ReadPath is the query contract shared by the normalized (join-based) and
// denormalized (pre-aggregated) storage layouts. The orchestrator holds
// whichever implementation was configured at startup and never switches at
// runtime.
type ReadPath interface {
	// CountMatches returns the number of distinct names with at least one
	// variant in the given locale containing the substring.
	CountMatches(context context.Context, localeID int, text string) (int, error)

	// PageIDs returns up to limit matching name ids strictly greater than
	// afterID, in ascending order. afterID 0 starts from the beginning.
	PageIDs(context context.Context, localeID int, text string, afterID int64, limit int) ([]int64, error)

	// IDAtOffset returns the id at the given 0-based offset of the ordered
	// match set, or 0 when the offset is past the end.
	IDAtOffset(context context.Context, localeID int, text string, offset int) (int64, error)

	// AggregateByIDs resolves full response rows for the given ids,
	// preserving the input (ascending) order.
	AggregateByIDs(context context.Context, ids []int64, display DisplayLocales) ([]*SearchRow, error)
}

// # Publish Contract

// PreparedValue is a locale-resolved (locale, value) pair ready for storage.
// The code is carried alongside the id so duplicate reports can speak the
// caller's vocabulary without a reverse lookup.
type PreparedValue struct {
	LocaleID   int
	LocaleCode string
	Value      string
}

// PreparedRow is one publish row after validation, locale resolution, and
// canonical key derivation.
type PreparedRow struct {
	CanonicalKey string
	Variants     []PreparedValue
	Meanings     []PreparedValue
}

// PublishRepository executes a prepared batch inside one transaction.
type PublishRepository interface {
	// PublishBatch ensures a name per row, upserts variants and meanings
	// set-based, and either commits or (for dry runs) rolls back after the
	// full result has been computed.
	PublishBatch(context context.Context, rows []PreparedRow, dryRun bool) (*PublishResult, error)
}

// # Catalogue Contract

// Repository provides the browse/detail reads that back the catalogue
// endpoints, independent of the search read paths.
type Repository interface {
	ListNames(context context.Context, limit, offset int) ([]*Name, int, error)
	GetByCanonicalKey(context context.Context, canonicalKey string) (*Detail, error)
}
