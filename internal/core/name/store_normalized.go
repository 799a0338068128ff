// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package name

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/namira/internal/platform/database/schema"
	"github.com/taibuivan/namira/internal/platform/dberr"
)

// # Normalized Read Path

// NormalizedReadPath implements [ReadPath] with joins over the relational
// variant/meaning tables. It is the default layout: always consistent with
// what the publish pipeline last committed, at the cost of join work per
// query.
type NormalizedReadPath struct {
	pool *pgxpool.Pool
}

// NewNormalizedReadPath constructs the join-based read path.
func NewNormalizedReadPath(pool *pgxpool.Pool) *NormalizedReadPath {
	return &NormalizedReadPath{pool: pool}
}

// likeEscaper neutralizes the ILIKE metacharacters in user-supplied text so
// a search for "100%" matches the literal string.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive substring pattern.
func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}

/*
CountMatches counts distinct names matching the substring in one locale.

Parameters:
  - context: context.Context
  - localeID: int
  - text: string (raw user input, escaped internally)

Returns:
  - int: Count of distinct matching names
*/
func (path *NormalizedReadPath) CountMatches(context context.Context, localeID int, text string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(DISTINCT v.%s)
		FROM %s v
		WHERE v.%s = $1 AND v.%s ILIKE $2;
	`,
		schema.CoreNameVariant.NameID,
		schema.CoreNameVariant.Table,
		schema.CoreNameVariant.LocaleID,
		schema.CoreNameVariant.Value,
	)

	var count int
	err := path.pool.QueryRow(context, query, localeID, containsPattern(text)).Scan(&count)
	if err != nil {
		return 0, dberr.Wrap(err, "count_matches")
	}
	return count, nil
}

/*
PageIDs returns the next window of matching name ids after a keyset bound.

Description: The strictly-ascending id order is the sole total order the
pagination cursor relies on; it must never change.

Parameters:
  - context: context.Context
  - localeID: int
  - text: string
  - afterID: int64 (exclusive lower bound; 0 starts from the beginning)
  - limit: int

Returns:
  - []int64: Ascending name ids, at most limit entries
*/
func (path *NormalizedReadPath) PageIDs(context context.Context, localeID int, text string, afterID int64, limit int) ([]int64, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT v.%s
		FROM %s v
		WHERE v.%s = $1 AND v.%s ILIKE $2 AND v.%s > $3
		ORDER BY v.%s ASC
		LIMIT $4;
	`,
		schema.CoreNameVariant.NameID,
		schema.CoreNameVariant.Table,
		schema.CoreNameVariant.LocaleID,
		schema.CoreNameVariant.Value,
		schema.CoreNameVariant.NameID,
		schema.CoreNameVariant.NameID,
	)

	rows, err := path.pool.Query(context, query, localeID, containsPattern(text), afterID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "page_ids")
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_page_id")
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

/*
IDAtOffset returns the name id at a 0-based offset of the ordered match set.

Description: Backs the offset-to-cursor compatibility shim; issued once per
legacy-style request, never on the cursor hot path.

Returns:
  - int64: The id, or 0 when the offset is past the end of the match set
*/
func (path *NormalizedReadPath) IDAtOffset(context context.Context, localeID int, text string, offset int) (int64, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT v.%s
		FROM %s v
		WHERE v.%s = $1 AND v.%s ILIKE $2
		ORDER BY v.%s ASC
		OFFSET $3 LIMIT 1;
	`,
		schema.CoreNameVariant.NameID,
		schema.CoreNameVariant.Table,
		schema.CoreNameVariant.LocaleID,
		schema.CoreNameVariant.Value,
		schema.CoreNameVariant.NameID,
	)

	var id int64
	err := path.pool.QueryRow(context, query, localeID, containsPattern(text), offset).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, dberr.Wrap(err, "id_at_offset")
	}
	return id, nil
}

/*
AggregateByIDs resolves full response rows for a window of name ids.

Description: One round-trip that gathers, per name: the first-recorded Tamil
spelling as the representative value, the deduplicated sorted English and
French spellings as arrays, and the description with requested-then-default
locale fallback folded into a COALESCE chain.

Parameters:
  - context: context.Context
  - ids: []int64 (ascending; the output preserves this order)
  - display: DisplayLocales

Returns:
  - []*SearchRow: One row per id, ascending by id
*/
func (path *NormalizedReadPath) AggregateByIDs(context context.Context, ids []int64, display DisplayLocales) ([]*SearchRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT
			n.%[1]s,
			COALESCE((
				SELECT v.%[4]s FROM %[3]s v
				WHERE v.%[5]s = n.%[1]s AND v.%[6]s = $2
				ORDER BY v.%[7]s ASC LIMIT 1
			), '') AS tamil,
			COALESCE((
				SELECT array_agg(DISTINCT v.%[4]s ORDER BY v.%[4]s)
				FROM %[3]s v
				WHERE v.%[5]s = n.%[1]s AND v.%[6]s = $3
			), '{}') AS english,
			COALESCE((
				SELECT array_agg(DISTINCT v.%[4]s ORDER BY v.%[4]s)
				FROM %[3]s v
				WHERE v.%[5]s = n.%[1]s AND v.%[6]s = $4
			), '{}') AS french,
			COALESCE((
				SELECT m.%[9]s FROM %[8]s m
				WHERE m.%[10]s = n.%[1]s AND m.%[11]s = $5
				ORDER BY m.%[12]s ASC LIMIT 1
			), (
				SELECT m.%[9]s FROM %[8]s m
				WHERE m.%[10]s = n.%[1]s AND m.%[11]s = $6
				ORDER BY m.%[12]s ASC LIMIT 1
			), '') AS description
		FROM %[2]s n
		WHERE n.%[1]s = ANY($1::bigint[])
		ORDER BY n.%[1]s ASC;
	`,
		schema.CoreName.ID,
		schema.CoreName.Table,
		schema.CoreNameVariant.Table,
		schema.CoreNameVariant.Value,
		schema.CoreNameVariant.NameID,
		schema.CoreNameVariant.LocaleID,
		schema.CoreNameVariant.ID,
		schema.CoreNameMeaning.Table,
		schema.CoreNameMeaning.Value,
		schema.CoreNameMeaning.NameID,
		schema.CoreNameMeaning.LocaleID,
		schema.CoreNameMeaning.ID,
	)

	rows, err := path.pool.Query(context, query,
		ids, display.Tamil, display.English, display.French,
		display.Requested, display.Default,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "aggregate_by_ids")
	}
	defer rows.Close()

	var results []*SearchRow
	for rows.Next() {
		var id int64
		row := &SearchRow{}
		if err := rows.Scan(&id, &row.Tamil, &row.English, &row.French, &row.Description); err != nil {
			return nil, dberr.Wrap(err, "scan_aggregate_row")
		}
		results = append(results, row)
	}

	return results, rows.Err()
}
