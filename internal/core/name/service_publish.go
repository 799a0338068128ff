// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package name

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taibuivan/namira/internal/core/locale"
	"github.com/taibuivan/namira/internal/platform/constants"
	"github.com/taibuivan/namira/internal/platform/validate"
	"github.com/taibuivan/namira/pkg/slug"
)

const (
	FieldRows         = "rows"
	FieldCanonicalKey = "canonical_key"
	FieldVariants     = "variants"
	FieldMeanings     = "meanings"
	FieldSource       = "source"
)

// # Publish Service

// PublishService validates and prepares bulk-publish batches, then hands
// them to the transactional store.
type PublishService struct {
	repo      PublishRepository
	directory *locale.Directory
	logger    *slog.Logger
}

// NewPublishService constructs a [PublishService].
func NewPublishService(repo PublishRepository, directory *locale.Directory, logger *slog.Logger) *PublishService {
	return &PublishService{
		repo:      repo,
		directory: directory,
		logger:    logger,
	}
}

/*
BulkPublish ingests a batch of name rows transactionally.

Description: Validates the batch shape, resolves every referenced locale
once against a single directory snapshot, derives canonical keys, and
executes the prepared batch inside one storage transaction. With DryRun set
the full result is computed and the transaction rolled back, so callers can
preview exact outcomes with zero persisted side effects.

Parameters:
  - context: context.Context
  - input: PublishInput

Returns:
  - *PublishResult: Batch totals, per-row detail, duplicate identities
  - error: Validation, configuration, or storage errors
*/
func (service *PublishService) BulkPublish(context context.Context, input PublishInput) (*PublishResult, error) {

	// 1. Validate the whole batch before touching storage
	if err := validateBatch(input); err != nil {
		return nil, err
	}

	// 2. Resolve the union of referenced locales in one pass
	resolved, err := service.directory.ResolveAll(context, referencedLocales(input.Rows)...)
	if err != nil {
		return nil, err
	}

	// 3. Prepare rows: canonical keys and locale ids
	prepared := make([]PreparedRow, len(input.Rows))
	for index, row := range input.Rows {
		prepared[index] = PreparedRow{
			CanonicalKey: deriveCanonicalKey(row),
			Variants:     preparePairs(row.Variants, resolved),
			Meanings:     preparePairs(row.Meanings, resolved),
		}
	}

	// 4. Execute inside one transaction
	result, err := service.repo.PublishBatch(context, prepared, input.DryRun)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "bulk_publish_finished",
		slog.String("source", input.Source),
		slog.Bool("dry_run", result.DryRun),
		slog.Int("rows", result.Rows),
		slog.Int("inserted", result.Inserted),
		slog.Int("duplicates", result.Duplicates),
	)

	return result, nil
}

// # Batch Validation

// validateBatch checks the request shape, including per-row intra-batch
// constraints. Duplicate (locale, value) pairs inside one row's variants
// (or meanings) are a caller mistake and rejected here; duplicates against
// already-stored data are reported by the pipeline, never rejected.
func validateBatch(input PublishInput) error {
	validator := &validate.Validator{}

	validator.
		Custom(FieldRows, len(input.Rows) == 0, "At least one row is required").
		Custom(FieldRows, len(input.Rows) > constants.PublishBatchMaxRows,
			fmt.Sprintf("Maximum %d rows per batch", constants.PublishBatchMaxRows)).
		MaxLen(FieldSource, input.Source, 100)

	for index, row := range input.Rows {
		prefix := fmt.Sprintf("%s[%d]", FieldRows, index)

		if key := strings.TrimSpace(row.CanonicalKey); key != "" {
			validator.
				Slug(prefix+"."+FieldCanonicalKey, key).
				MaxLen(prefix+"."+FieldCanonicalKey, key, constants.CanonicalKeyMaxLength)
		}

		validator.Custom(prefix+"."+FieldVariants, len(row.Variants) == 0,
			"At least one variant is required")

		validateValues(validator, prefix+"."+FieldVariants, row.Variants, constants.VariantValueMaxLength)
		validateValues(validator, prefix+"."+FieldMeanings, row.Meanings, constants.MeaningValueMaxLength)
	}

	return validator.Err()
}

// validateValues checks one row's variant or meaning list, including the
// intra-row duplicate pair rule.
func validateValues(validator *validate.Validator, field string, values []LocalizedValue, maxLen int) {
	seen := make(map[string]struct{}, len(values))

	for index, value := range values {
		entry := fmt.Sprintf("%s[%d]", field, index)

		validator.
			OneOf(entry+".locale", value.Locale, locale.CodeTamil, locale.CodeEnglish, locale.CodeFrench).
			Required(entry+".value", value.Value).
			MaxLen(entry+".value", value.Value, maxLen)

		pair := value.Locale + "\x00" + value.Value
		if _, duplicate := seen[pair]; duplicate {
			validator.Custom(entry, true, "Duplicate (locale, value) pair within the row")
		}
		seen[pair] = struct{}{}
	}
}

// # Batch Preparation

// referencedLocales collects the union of locale codes across the batch.
func referencedLocales(rows []PublishRow) []string {
	seen := make(map[string]struct{})
	var codes []string

	collect := func(values []LocalizedValue) {
		for _, value := range values {
			if _, ok := seen[value.Locale]; !ok {
				seen[value.Locale] = struct{}{}
				codes = append(codes, value.Locale)
			}
		}
	}
	for _, row := range rows {
		collect(row.Variants)
		collect(row.Meanings)
	}
	return codes
}

// preparePairs resolves locale codes to ids for one value list.
func preparePairs(values []LocalizedValue, resolved map[string]int) []PreparedValue {
	if len(values) == 0 {
		return nil
	}
	pairs := make([]PreparedValue, len(values))
	for index, value := range values {
		pairs[index] = PreparedValue{
			LocaleID:   resolved[value.Locale],
			LocaleCode: value.Locale,
			Value:      value.Value,
		}
	}
	return pairs
}

/*
deriveCanonicalKey determines the idempotency key for one row.

Description: A provided non-blank key wins. Otherwise the key is slugged
from the Tamil variant, then from the remaining variants in input order
(Tamil script slugs to the empty string under the Latin-centric pipeline,
so a transliterated spelling usually supplies the key). A row whose every
variant slugs empty gets a timestamp-based synthetic key, keeping ingestion
deterministic for the caller while still unique.
*/
func deriveCanonicalKey(row PublishRow) string {
	if key := strings.TrimSpace(row.CanonicalKey); key != "" {
		return truncateKey(key)
	}

	// Tamil variant first, then the rest in input order
	if value := firstVariant(row.Variants, locale.CodeTamil); value != "" {
		if key := slug.From(value); key != "" {
			return truncateKey(key)
		}
	}
	for _, variant := range row.Variants {
		if key := slug.From(variant.Value); key != "" {
			return truncateKey(key)
		}
	}

	return fmt.Sprintf("name-%d", time.Now().UnixNano())
}

// firstVariant returns the first variant value recorded for a locale code.
func firstVariant(variants []LocalizedValue, code string) string {
	for _, variant := range variants {
		if variant.Locale == code {
			return variant.Value
		}
	}
	return ""
}

// truncateKey bounds a key to the canonical key storage width without
// splitting a multi-byte rune.
func truncateKey(key string) string {
	if utf8.RuneCountInString(key) <= constants.CanonicalKeyMaxLength {
		return key
	}
	runes := []rune(key)
	return strings.TrimRight(string(runes[:constants.CanonicalKeyMaxLength]), "-")
}
