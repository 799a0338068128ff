// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/namira/internal/core/locale"
	"github.com/taibuivan/namira/internal/platform/apperr"
)

// fakeRepository serves a scripted locale list and counts storage hits.
type fakeRepository struct {
	locales []*locale.Locale
	calls   int
}

func (repository *fakeRepository) ListLocales(_ context.Context) ([]*locale.Locale, error) {
	repository.calls++
	return repository.locales, nil
}

func allLocales() []*locale.Locale {
	return []*locale.Locale{
		{ID: 1, Code: "ta", Name: "Tamil", NativeName: "தமிழ்"},
		{ID: 2, Code: "en", Name: "English", NativeName: "English"},
		{ID: 3, Code: "fr", Name: "French", NativeName: "Français"},
	}
}

/*
TestDirectory_Resolve verifies code-to-id resolution and snapshot reuse.
*/
func TestDirectory_Resolve(t *testing.T) {
	repository := &fakeRepository{locales: allLocales()}
	directory := locale.NewDirectory(repository, slog.Default(), time.Minute)
	ctx := context.Background()

	// 1. First lookup loads the snapshot
	id, err := directory.Resolve(ctx, "ta")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, 1, repository.calls)

	// 2. Subsequent lookups are served from the cache
	id, err = directory.Resolve(ctx, "fr")
	require.NoError(t, err)
	assert.Equal(t, 3, id)
	assert.Equal(t, 1, repository.calls)
}

/*
TestDirectory_UnknownCode verifies that unsupported codes fail validation.
*/
func TestDirectory_UnknownCode(t *testing.T) {
	repository := &fakeRepository{locales: allLocales()}
	directory := locale.NewDirectory(repository, slog.Default(), time.Minute)

	_, err := directory.Resolve(context.Background(), "de")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

/*
TestDirectory_MissingRequiredLocale verifies the configuration fault when a
required locale row is absent from storage.
*/
func TestDirectory_MissingRequiredLocale(t *testing.T) {
	repository := &fakeRepository{locales: []*locale.Locale{
		{ID: 1, Code: "ta", Name: "Tamil", NativeName: "தமிழ்"},
		{ID: 2, Code: "en", Name: "English", NativeName: "English"},
	}}
	directory := locale.NewDirectory(repository, slog.Default(), time.Minute)

	_, err := directory.Resolve(context.Background(), "ta")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFIGURATION_ERROR", appError.Code)

	// The failure must not be cached: the next lookup hits storage again.
	_, _ = directory.Resolve(context.Background(), "ta")
	assert.Equal(t, 2, repository.calls)
}

/*
TestDirectory_Invalidate verifies that invalidation forces a reload.
*/
func TestDirectory_Invalidate(t *testing.T) {
	repository := &fakeRepository{locales: allLocales()}
	directory := locale.NewDirectory(repository, slog.Default(), time.Minute)
	ctx := context.Background()

	_, err := directory.Resolve(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, 1, repository.calls)

	directory.Invalidate()

	_, err = directory.Resolve(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, 2, repository.calls)
}

/*
TestDirectory_TTLExpiry verifies that an expired snapshot is reloaded.
*/
func TestDirectory_TTLExpiry(t *testing.T) {
	repository := &fakeRepository{locales: allLocales()}
	directory := locale.NewDirectory(repository, slog.Default(), time.Nanosecond)
	ctx := context.Background()

	_, err := directory.Resolve(ctx, "en")
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)

	_, err = directory.Resolve(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, 2, repository.calls)

	// Widening the TTL stops further reloads.
	directory.SetTTL(time.Hour)
	_, err = directory.Resolve(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, 2, repository.calls)
}
