// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package name provides the PostgreSQL implementation for the dictionary's ingestion
and catalogue data access.

It leans on Postgres features to keep the publish pipeline set-based:
  - Idempotent Upserts: 'ON CONFLICT ... DO UPDATE ... RETURNING' resolves
    concurrent publishers racing on the same canonical key.
  - Array Binding: 'unnest' turns a whole row's variants into one INSERT,
    with 'ON CONFLICT DO NOTHING RETURNING' reporting exactly which pairs
    were new.
  - Single Transaction: a batch either lands completely or not at all; the
    dry-run mode computes the full result and then rolls back.
*/
package name

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/namira/internal/platform/database/schema"
	"github.com/taibuivan/namira/internal/platform/dberr"
)

// # PostgreSQL Repositories

// postgresRepository implements [PublishRepository] and [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the PostgreSQL backed name store.
func NewPostgresRepository(pool *pgxpool.Pool) *postgresRepository {
	return &postgresRepository{pool: pool}
}

// # Publish Pipeline

// pairKey identifies one (locale, value) pair inside a single row's upsert.
type pairKey struct {
	localeID int
	value    string
}

/*
PublishBatch ingests a prepared batch inside one transaction.

Description: Processes rows in input order. Per row it ensures the canonical
name, then runs one set-based upsert for variants and one for meanings,
diffing the returned rows against the input set to report duplicates. The
whole batch is atomic: any storage error aborts everything, including rows
already processed earlier in the same call.

Parameters:
  - context: context.Context
  - rows: []PreparedRow (validated, locale-resolved)
  - dryRun: bool (roll back after computing the full result)

Returns:
  - *PublishResult: Batch totals, per-row detail, duplicate identities
  - error: Storage errors via dberr
*/
func (repository *postgresRepository) PublishBatch(context context.Context, rows []PreparedRow, dryRun bool) (*PublishResult, error) {

	// 1. Open the single transaction covering the entire batch
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_publish_batch")
	}
	defer transaction.Rollback(context)

	result := &PublishResult{
		Rows:             len(rows),
		DryRun:           dryRun,
		RowResults:       make([]RowResult, 0, len(rows)),
		DuplicateDetails: []DuplicateDetail{},
	}

	// 2. Process rows in input order; the result list preserves that order
	for index, row := range rows {

		nameID, err := repository.ensureName(context, transaction, row.CanonicalKey)
		if err != nil {
			return nil, err
		}
		result.NamesEnsured++

		rowResult := RowResult{
			RowIndex:     index,
			CanonicalKey: row.CanonicalKey,
			NameID:       nameID,
		}

		// 2a. Variants: set-based upsert, duplicates diffed from the input set
		variantDuplicates, err := repository.upsertPairs(context, transaction,
			schema.CoreNameVariant.Table, nameID, row.Variants)
		if err != nil {
			return nil, err
		}
		rowResult.VariantsInserted = len(row.Variants) - len(variantDuplicates)
		rowResult.VariantsDuplicates = len(variantDuplicates)
		appendDuplicates(result, index, row.CanonicalKey, nameID, "variant", variantDuplicates)

		// 2b. Meanings: independent duplicate set, same mechanics
		meaningDuplicates, err := repository.upsertPairs(context, transaction,
			schema.CoreNameMeaning.Table, nameID, row.Meanings)
		if err != nil {
			return nil, err
		}
		rowResult.MeaningsInserted = len(row.Meanings) - len(meaningDuplicates)
		rowResult.MeaningsDuplicates = len(meaningDuplicates)
		appendDuplicates(result, index, row.CanonicalKey, nameID, "meaning", meaningDuplicates)

		result.VariantsInserted += rowResult.VariantsInserted
		result.VariantsDuplicates += rowResult.VariantsDuplicates
		result.MeaningsInserted += rowResult.MeaningsInserted
		result.MeaningsDuplicates += rowResult.MeaningsDuplicates
		result.RowResults = append(result.RowResults, rowResult)
	}

	result.Inserted = result.VariantsInserted + result.MeaningsInserted
	result.Duplicates = result.VariantsDuplicates + result.MeaningsDuplicates

	// 3. Dry run: the result is final, the data is not
	if dryRun {
		if err := transaction.Rollback(context); err != nil {
			return nil, dberr.Wrap(err, "rollback_dry_run")
		}
		return result, nil
	}

	// 4. Commit the whole batch atomically
	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_publish_batch")
	}

	return result, nil
}

/*
ensureName inserts-or-fetches the canonical name row.

Description: 'ON CONFLICT DO UPDATE' (rather than DO NOTHING) makes the
RETURNING clause yield the id on both branches, so two publishers racing on
the same canonical key converge on one row without a second query. The
update refreshes the touch timestamp on the existing row.
*/
func (repository *postgresRepository) ensureName(context context.Context, transaction pgx.Tx, canonicalKey string) (int64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1)
		ON CONFLICT (%s) DO UPDATE SET %s = NOW()
		RETURNING %s;
	`,
		schema.CoreName.Table,
		schema.CoreName.CanonicalKey,
		schema.CoreName.CanonicalKey,
		schema.CoreName.UpdatedAt,
		schema.CoreName.ID,
	)

	var nameID int64
	if err := transaction.QueryRow(context, query, canonicalKey).Scan(&nameID); err != nil {
		return 0, dberr.Wrap(err, "ensure_name")
	}
	return nameID, nil
}

/*
upsertPairs inserts a row's (locale, value) pairs into one table set-based.

Description: Binds the pairs as parallel arrays and expands them with
'unnest', skipping pairs that violate the (nameid, localeid, value)
uniqueness invariant. The RETURNING clause names exactly the pairs that were
inserted; everything in the input set but not in the returned set is a
duplicate.

Returns:
  - []PreparedValue: The duplicate pairs, in input order
*/
func (repository *postgresRepository) upsertPairs(context context.Context, transaction pgx.Tx, table string, nameID int64, pairs []PreparedValue) ([]PreparedValue, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	localeIDs := make([]int, len(pairs))
	values := make([]string, len(pairs))
	for i, pair := range pairs {
		localeIDs[i] = pair.LocaleID
		values[i] = pair.Value
	}

	// Both target tables share the (nameid, localeid, value) column triple.
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		SELECT $1, input.localeid, input.value
		FROM unnest($2::int[], $3::text[]) AS input(localeid, value)
		ON CONFLICT (%s, %s, %s) DO NOTHING
		RETURNING %s, %s;
	`,
		table,
		schema.CoreNameVariant.NameID,
		schema.CoreNameVariant.LocaleID,
		schema.CoreNameVariant.Value,
		schema.CoreNameVariant.NameID,
		schema.CoreNameVariant.LocaleID,
		schema.CoreNameVariant.Value,
		schema.CoreNameVariant.LocaleID,
		schema.CoreNameVariant.Value,
	)

	rows, err := transaction.Query(context, query, nameID, localeIDs, values)
	if err != nil {
		return nil, dberr.Wrap(err, "upsert_pairs")
	}
	defer rows.Close()

	inserted := make(map[pairKey]struct{}, len(pairs))
	for rows.Next() {
		var key pairKey
		if err := rows.Scan(&key.localeID, &key.value); err != nil {
			return nil, dberr.Wrap(err, "scan_upserted_pair")
		}
		inserted[key] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "read_upserted_pairs")
	}

	// Diff the input set against the returned set
	var duplicates []PreparedValue
	for _, pair := range pairs {
		if _, ok := inserted[pairKey{localeID: pair.LocaleID, value: pair.Value}]; !ok {
			duplicates = append(duplicates, pair)
		}
	}
	return duplicates, nil
}

// appendDuplicates folds one row's duplicate pairs into the batch result.
func appendDuplicates(result *PublishResult, rowIndex int, canonicalKey string, nameID int64, kind string, duplicates []PreparedValue) {
	for _, pair := range duplicates {
		result.DuplicateDetails = append(result.DuplicateDetails, DuplicateDetail{
			RowIndex:     rowIndex,
			CanonicalKey: canonicalKey,
			NameID:       nameID,
			Kind:         kind,
			Locale:       pair.LocaleCode,
			Value:        pair.Value,
		})
	}
}

// # Catalogue Queries

/*
ListNames retrieves a page of canonical names.

Description: Uses a window function to compute the total count in the same
round-trip as the page itself.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Name: Page of canonical names, ascending by id
  - int: Total name count
*/
func (repository *postgresRepository) ListNames(context context.Context, limit, offset int) ([]*Name, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s,
			COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2;
	`,
		schema.CoreName.ID,
		schema.CoreName.CanonicalKey,
		schema.CoreName.CreatedAt,
		schema.CoreName.UpdatedAt,
		schema.CoreName.Table,
		schema.CoreName.ID,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_names")
	}
	defer rows.Close()

	var names []*Name
	var total int
	for rows.Next() {
		entry := &Name{}
		if err := rows.Scan(&entry.ID, &entry.CanonicalKey, &entry.CreatedAt, &entry.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_name")
		}
		names = append(names, entry)
	}

	return names, total, nil
}

/*
GetByCanonicalKey retrieves the full record for one canonical name.

Description: Batches the name lookup and the two locale-joined value scans
into a single round-trip with [pgx.Batch].

Returns:
  - *Detail: The name with all variants and meanings grouped by locale code
  - error: apperr.NotFound when the key does not exist
*/
func (repository *postgresRepository) GetByCanonicalKey(context context.Context, canonicalKey string) (*Detail, error) {
	nameQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1;
	`,
		schema.CoreName.ID,
		schema.CoreName.CanonicalKey,
		schema.CoreName.CreatedAt,
		schema.CoreName.UpdatedAt,
		schema.CoreName.Table,
		schema.CoreName.CanonicalKey,
	)

	valuesQuery := func(table string) string {
		return fmt.Sprintf(`
			SELECT l.%s, t.%s
			FROM %s t
			JOIN %s l ON t.%s = l.%s
			WHERE t.%s = (SELECT %s FROM %s WHERE %s = $1)
			ORDER BY l.%s ASC, t.%s ASC;
		`,
			schema.RefLocale.Code,
			schema.CoreNameVariant.Value,
			table,
			schema.RefLocale.Table,
			schema.CoreNameVariant.LocaleID,
			schema.RefLocale.ID,
			schema.CoreNameVariant.NameID,
			schema.CoreName.ID,
			schema.CoreName.Table,
			schema.CoreName.CanonicalKey,
			schema.RefLocale.ID,
			schema.CoreNameVariant.ID,
		)
	}

	batch := &pgx.Batch{}
	batch.Queue(nameQuery, canonicalKey)
	batch.Queue(valuesQuery(schema.CoreNameVariant.Table), canonicalKey)
	batch.Queue(valuesQuery(schema.CoreNameMeaning.Table), canonicalKey)

	batchResults := repository.pool.SendBatch(context, batch)
	defer batchResults.Close()

	detail := &Detail{
		Variants: map[string][]string{},
		Meanings: map[string][]string{},
	}

	err := batchResults.QueryRow().Scan(
		&detail.Name.ID, &detail.Name.CanonicalKey,
		&detail.Name.CreatedAt, &detail.Name.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_name_by_key")
	}

	for _, grouped := range []map[string][]string{detail.Variants, detail.Meanings} {
		rows, err := batchResults.Query()
		if err != nil {
			return nil, dberr.Wrap(err, "get_name_values")
		}
		for rows.Next() {
			var code, value string
			if err := rows.Scan(&code, &value); err != nil {
				rows.Close()
				return nil, dberr.Wrap(err, "scan_name_value")
			}
			grouped[code] = append(grouped[code], value)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, dberr.Wrap(err, "read_name_values")
		}
	}

	return detail, nil
}
