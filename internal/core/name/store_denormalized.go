// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package name

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/namira/internal/core/locale"
	"github.com/taibuivan/namira/internal/platform/database/schema"
	"github.com/taibuivan/namira/internal/platform/dberr"
)

// # Denormalized Read Path

// DenormalizedReadPath implements [ReadPath] against the pre-aggregated
// core.namesearch read model: one row per name with per-locale value arrays,
// per-locale meanings, and a precomputed lowercase search blob.
//
// # Ownership
//
// Population and refresh of the read model happen outside this package (an
// external refresh job); this path only reads. It is enabled by the
// SEARCH_FAST_PATH deployment toggle and trades staleness for latency.
type DenormalizedReadPath struct {
	pool *pgxpool.Pool
}

// NewDenormalizedReadPath constructs the fast-path reader.
func NewDenormalizedReadPath(pool *pgxpool.Pool) *DenormalizedReadPath {
	return &DenormalizedReadPath{pool: pool}
}

// CountMatches counts read-model rows whose search blob contains the text.
// The blob spans every locale's variants, so localeID is not a filter here;
// it is accepted to satisfy the shared [ReadPath] contract.
func (path *DenormalizedReadPath) CountMatches(context context.Context, localeID int, text string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE %s ILIKE $1;
	`,
		schema.CoreNameSearch.Table,
		schema.CoreNameSearch.SearchBlob,
	)

	var count int
	err := path.pool.QueryRow(context, query, containsPattern(text)).Scan(&count)
	if err != nil {
		return 0, dberr.Wrap(err, "count_matches_fast")
	}
	return count, nil
}

// PageIDs returns the next window of matching name ids after a keyset bound.
// Same ordering contract as the normalized path: strictly ascending name id.
func (path *DenormalizedReadPath) PageIDs(context context.Context, localeID int, text string, afterID int64, limit int) ([]int64, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s ILIKE $1 AND %s > $2
		ORDER BY %s ASC
		LIMIT $3;
	`,
		schema.CoreNameSearch.NameID,
		schema.CoreNameSearch.Table,
		schema.CoreNameSearch.SearchBlob,
		schema.CoreNameSearch.NameID,
		schema.CoreNameSearch.NameID,
	)

	rows, err := path.pool.Query(context, query, containsPattern(text), afterID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "page_ids_fast")
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_page_id_fast")
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// IDAtOffset returns the id at a 0-based offset of the ordered match set,
// or 0 when past the end.
func (path *DenormalizedReadPath) IDAtOffset(context context.Context, localeID int, text string, offset int) (int64, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s ILIKE $1
		ORDER BY %s ASC
		OFFSET $2 LIMIT 1;
	`,
		schema.CoreNameSearch.NameID,
		schema.CoreNameSearch.Table,
		schema.CoreNameSearch.SearchBlob,
		schema.CoreNameSearch.NameID,
	)

	var id int64
	err := path.pool.QueryRow(context, query, containsPattern(text), offset).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, dberr.Wrap(err, "id_at_offset_fast")
	}
	return id, nil
}

/*
AggregateByIDs shapes response rows from pre-aggregated read-model rows.

Description: Fetches the per-locale mappings as jsonb and resolves them with
plain key lookups — no joins. The arrays in the read model are already
deduplicated and sorted by the external refresh job; this path passes them
through unchanged.

Parameters:
  - context: context.Context
  - ids: []int64 (ascending; the output preserves this order)
  - display: DisplayLocales (code fields key the jsonb lookups)

Returns:
  - []*SearchRow: One row per id, ascending by id
*/
func (path *DenormalizedReadPath) AggregateByIDs(context context.Context, ids []int64, display DisplayLocales) ([]*SearchRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = ANY($1::bigint[])
		ORDER BY %s ASC;
	`,
		schema.CoreNameSearch.NameID,
		schema.CoreNameSearch.Variants,
		schema.CoreNameSearch.Meanings,
		schema.CoreNameSearch.Table,
		schema.CoreNameSearch.NameID,
		schema.CoreNameSearch.NameID,
	)

	rows, err := path.pool.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "aggregate_by_ids_fast")
	}
	defer rows.Close()

	var results []*SearchRow
	for rows.Next() {
		var id int64
		var variants map[string][]string
		var meanings map[string][]string

		if err := rows.Scan(&id, &variants, &meanings); err != nil {
			return nil, dberr.Wrap(err, "scan_read_model_row")
		}

		results = append(results, shapeReadModelRow(variants, meanings, display))
	}

	return results, rows.Err()
}

// shapeReadModelRow resolves one read-model row into the unified shape.
func shapeReadModelRow(variants, meanings map[string][]string, display DisplayLocales) *SearchRow {
	row := &SearchRow{
		English: variants[locale.CodeEnglish],
		French:  variants[locale.CodeFrench],
	}

	// Representative Tamil value is the first pre-stored spelling
	if tamil := variants[locale.CodeTamil]; len(tamil) > 0 {
		row.Tamil = tamil[0]
	}

	// Description: requested locale first, default locale fallback, else ""
	if requested := meanings[display.RequestedCode]; len(requested) > 0 {
		row.Description = requested[0]
	} else if fallback := meanings[display.DefaultCode]; len(fallback) > 0 {
		row.Description = fallback[0]
	}

	return row
}
