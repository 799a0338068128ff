// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package name defines the core domain of the Namira dictionary.

It manages canonical name records together with their per-locale spelling
variants and meanings, and exposes the two operations the product is built
around:

  - Search: substring lookup over one locale's variants, grouped by canonical
    name, paginated with an opaque keyset cursor.
  - Publish: transactional bulk ingestion of name/variant/meaning batches with
    set-based duplicate detection and a dry-run simulation mode.

A Name is never deleted by this package; ingestion only creates or extends
records, keyed by the canonical key.
*/
package name

import "time"

// # Core Entities

// Name is the canonical entity all variants and meanings hang off.
type Name struct {
	ID           int64     `json:"id"`
	CanonicalKey string    `json:"canonical_key"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LocalizedValue is a single (locale, value) pair, used for both variants
// and meanings on the publish input side.
type LocalizedValue struct {
	Locale string `json:"locale"`
	Value  string `json:"value"`
}

// # Search Shapes

// SearchInput carries one search request into the orchestrator.
type SearchInput struct {
	Query    string
	Locale   string
	Page     int
	PageSize int
	Cursor   string
}

// SearchRow is the unified per-name response row. Both read paths must
// produce exactly this shape.
type SearchRow struct {
	// Tamil holds the single representative Tamil spelling.
	Tamil string `json:"tamil"`
	// English and French hold every known spelling, deduplicated and sorted.
	English []string `json:"english"`
	French  []string `json:"french"`
	// Description is the meaning in the requested locale, falling back to the
	// default locale, then to the empty string.
	Description string `json:"description"`
}

// SearchOutput is the paginated search response.
type SearchOutput struct {
	Results    []*SearchRow `json:"results"`
	TotalCount int          `json:"total_count"`
	// NextCursor is nil on the last page and on empty pages.
	NextCursor *string `json:"next_cursor"`
}

// # Publish Shapes

// PublishRow is one input row of a bulk-publish batch.
type PublishRow struct {
	// CanonicalKey is optional; when blank a key is derived from the row's
	// variants.
	CanonicalKey string           `json:"canonical_key,omitempty"`
	Variants     []LocalizedValue `json:"variants"`
	Meanings     []LocalizedValue `json:"meanings,omitempty"`
}

// PublishInput carries one bulk-publish request into the pipeline.
type PublishInput struct {
	Rows []PublishRow `json:"rows"`
	// DryRun computes the full result and then rolls the transaction back.
	DryRun bool `json:"dry_run,omitempty"`
	// Source labels the batch origin for logging (e.g. an import job name).
	Source string `json:"source,omitempty"`
}

// DuplicateDetail identifies one (locale, value) pair that already existed.
type DuplicateDetail struct {
	RowIndex     int    `json:"row_index"`
	CanonicalKey string `json:"canonical_key"`
	NameID       int64  `json:"name_id"`
	// Kind is "variant" or "meaning".
	Kind   string `json:"kind"`
	Locale string `json:"locale"`
	Value  string `json:"value"`
}

// RowResult is the per-row breakdown of a publish batch.
type RowResult struct {
	RowIndex           int    `json:"row_index"`
	CanonicalKey       string `json:"canonical_key"`
	NameID             int64  `json:"name_id"`
	VariantsInserted   int    `json:"variants_inserted"`
	VariantsDuplicates int    `json:"variants_duplicates"`
	MeaningsInserted   int    `json:"meanings_inserted"`
	MeaningsDuplicates int    `json:"meanings_duplicates"`
}

// PublishResult is the full outcome of one bulk-publish call.
//
// Duplicates are reported, never rejected: a batch with nothing but
// duplicates is still a successful call.
type PublishResult struct {
	Rows               int  `json:"rows"`
	NamesEnsured       int  `json:"names_ensured"`
	VariantsInserted   int  `json:"variants_inserted"`
	VariantsDuplicates int  `json:"variants_duplicates"`
	MeaningsInserted   int  `json:"meanings_inserted"`
	MeaningsDuplicates int  `json:"meanings_duplicates"`
	DryRun             bool `json:"dry_run"`

	// Inserted and Duplicates are grand totals across variants and meanings.
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`

	RowResults       []RowResult       `json:"row_results"`
	DuplicateDetails []DuplicateDetail `json:"duplicate_details"`
}

// # Detail Shapes

// Detail is the full record for one canonical name: every variant and
// meaning, grouped by locale code.
type Detail struct {
	Name     Name                `json:"name"`
	Variants map[string][]string `json:"variants"`
	Meanings map[string][]string `json:"meanings"`
}
