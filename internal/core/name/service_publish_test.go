// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package name_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/namira/internal/core/name"
	"github.com/taibuivan/namira/internal/platform/apperr"
)

// fakePublishRepository records what reaches the transactional store.
type fakePublishRepository struct {
	rows   []name.PreparedRow
	dryRun bool
	calls  int
}

func (repository *fakePublishRepository) PublishBatch(_ context.Context, rows []name.PreparedRow, dryRun bool) (*name.PublishResult, error) {
	repository.rows = rows
	repository.dryRun = dryRun
	repository.calls++
	return &name.PublishResult{Rows: len(rows), DryRun: dryRun}, nil
}

func publishService(repository *fakePublishRepository) *name.PublishService {
	return name.NewPublishService(repository, testDirectory(), slog.Default())
}

/*
TestBulkPublish_PreparesRows verifies locale resolution and that variants
and meanings reach the store with both the id and the original code.
*/
func TestBulkPublish_PreparesRows(t *testing.T) {
	repository := &fakePublishRepository{}
	service := publishService(repository)

	result, err := service.BulkPublish(context.Background(), name.PublishInput{
		Rows: []name.PublishRow{{
			Variants: []name.LocalizedValue{
				{Locale: "ta", Value: "மாரி"},
				{Locale: "en", Value: "Maari"},
			},
			Meanings: []name.LocalizedValue{
				{Locale: "en", Value: "rain"},
			},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Rows)

	require.Len(t, repository.rows, 1)
	prepared := repository.rows[0]

	require.Len(t, prepared.Variants, 2)
	assert.Equal(t, 1, prepared.Variants[0].LocaleID)
	assert.Equal(t, "ta", prepared.Variants[0].LocaleCode)
	assert.Equal(t, 2, prepared.Variants[1].LocaleID)

	require.Len(t, prepared.Meanings, 1)
	assert.Equal(t, "rain", prepared.Meanings[0].Value)
}

/*
TestBulkPublish_CanonicalKeyDerivation covers the key precedence chain:
provided key, Tamil variant, remaining variants, synthetic fallback.
*/
func TestBulkPublish_CanonicalKeyDerivation(t *testing.T) {
	cases := []struct {
		label     string
		row       name.PublishRow
		wantKey   string
		synthetic bool
	}{
		{
			label: "provided key wins",
			row: name.PublishRow{
				CanonicalKey: "maari-given",
				Variants:     []name.LocalizedValue{{Locale: "en", Value: "Something Else"}},
			},
			wantKey: "maari-given",
		},
		{
			label: "tamil script falls through to the transliteration",
			row: name.PublishRow{
				Variants: []name.LocalizedValue{
					{Locale: "ta", Value: "மாரி"},
					{Locale: "en", Value: "Maari Selvan"},
				},
			},
			wantKey: "maari-selvan",
		},
		{
			label: "accents are folded",
			row: name.PublishRow{
				Variants: []name.LocalizedValue{{Locale: "fr", Value: "Aimée"}},
			},
			wantKey: "aimee",
		},
		{
			label: "all-tamil row gets a synthetic key",
			row: name.PublishRow{
				Variants: []name.LocalizedValue{{Locale: "ta", Value: "மாரி"}},
			},
			synthetic: true,
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.label, func(t *testing.T) {
			repository := &fakePublishRepository{}
			service := publishService(repository)

			_, err := service.BulkPublish(context.Background(), name.PublishInput{
				Rows: []name.PublishRow{testCase.row},
			})
			require.NoError(t, err)
			require.Len(t, repository.rows, 1)

			key := repository.rows[0].CanonicalKey
			if testCase.synthetic {
				assert.True(t, strings.HasPrefix(key, "name-"), "expected synthetic key, got %q", key)
			} else {
				assert.Equal(t, testCase.wantKey, key)
			}
		})
	}
}

/*
TestBulkPublish_DryRunPassthrough verifies the flag reaches the store.
*/
func TestBulkPublish_DryRunPassthrough(t *testing.T) {
	repository := &fakePublishRepository{}
	service := publishService(repository)

	result, err := service.BulkPublish(context.Background(), name.PublishInput{
		Rows:   []name.PublishRow{{Variants: []name.LocalizedValue{{Locale: "en", Value: "Maari"}}}},
		DryRun: true,
	})
	require.NoError(t, err)
	assert.True(t, repository.dryRun)
	assert.True(t, result.DryRun)
}

/*
TestBulkPublish_Validation rejects malformed batches before the store runs.
*/
func TestBulkPublish_Validation(t *testing.T) {
	variant := name.LocalizedValue{Locale: "en", Value: "Maari"}

	bigBatch := make([]name.PublishRow, 2001)
	for i := range bigBatch {
		bigBatch[i] = name.PublishRow{Variants: []name.LocalizedValue{variant}}
	}

	cases := []struct {
		label string
		input name.PublishInput
	}{
		{"empty batch", name.PublishInput{}},
		{"batch too large", name.PublishInput{Rows: bigBatch}},
		{"row without variants", name.PublishInput{
			Rows: []name.PublishRow{{Meanings: []name.LocalizedValue{variant}}},
		}},
		{"unknown locale", name.PublishInput{
			Rows: []name.PublishRow{{Variants: []name.LocalizedValue{{Locale: "de", Value: "Marie"}}}},
		}},
		{"malformed canonical key", name.PublishInput{
			Rows: []name.PublishRow{{CanonicalKey: "Not A Slug!", Variants: []name.LocalizedValue{variant}}},
		}},
		{"variant value too long", name.PublishInput{
			Rows: []name.PublishRow{{Variants: []name.LocalizedValue{
				{Locale: "en", Value: strings.Repeat("a", 256)},
			}}},
		}},
		{"duplicate pair within one row", name.PublishInput{
			Rows: []name.PublishRow{{Variants: []name.LocalizedValue{variant, variant}}},
		}},
	}

	for _, testCase := range cases {
		t.Run(testCase.label, func(t *testing.T) {
			repository := &fakePublishRepository{}
			service := publishService(repository)

			_, err := service.BulkPublish(context.Background(), testCase.input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)
			assert.Zero(t, repository.calls)
		})
	}
}

/*
TestBulkPublish_SameValueDifferentLocales is the positive counterpart of the
intra-row duplicate rule: the same spelling under two locales is two pairs.
*/
func TestBulkPublish_SameValueDifferentLocales(t *testing.T) {
	repository := &fakePublishRepository{}
	service := publishService(repository)

	_, err := service.BulkPublish(context.Background(), name.PublishInput{
		Rows: []name.PublishRow{{
			Variants: []name.LocalizedValue{
				{Locale: "en", Value: "Marie"},
				{Locale: "fr", Value: "Marie"},
			},
		}},
	})
	require.NoError(t, err)
	require.Len(t, repository.rows, 1)
	assert.Len(t, repository.rows[0].Variants, 2)
}
