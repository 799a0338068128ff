// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package name_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/namira/internal/core/locale"
	"github.com/taibuivan/namira/internal/core/name"
	"github.com/taibuivan/namira/internal/platform/apperr"
	"github.com/taibuivan/namira/pkg/cursor"
)

// fakeLocaleRepository backs a directory with the three fixed locales.
type fakeLocaleRepository struct{}

func (fakeLocaleRepository) ListLocales(_ context.Context) ([]*locale.Locale, error) {
	return []*locale.Locale{
		{ID: 1, Code: "ta", Name: "Tamil", NativeName: "தமிழ்"},
		{ID: 2, Code: "en", Name: "English", NativeName: "English"},
		{ID: 3, Code: "fr", Name: "French", NativeName: "Français"},
	}, nil
}

func testDirectory() *locale.Directory {
	return locale.NewDirectory(fakeLocaleRepository{}, slog.Default(), time.Minute)
}

// fakeReadPath serves a scripted, id-ordered match set.
type fakeReadPath struct {
	// ids is the full ascending match set for any query.
	ids []int64
	// rows maps id to the hydrated response row.
	rows map[int64]*name.SearchRow

	offsetLookups int
}

func (path *fakeReadPath) CountMatches(_ context.Context, _ int, _ string) (int, error) {
	return len(path.ids), nil
}

func (path *fakeReadPath) PageIDs(_ context.Context, _ int, _ string, afterID int64, limit int) ([]int64, error) {
	var page []int64
	for _, id := range path.ids {
		if id > afterID {
			page = append(page, id)
		}
		if len(page) == limit {
			break
		}
	}
	return page, nil
}

func (path *fakeReadPath) IDAtOffset(_ context.Context, _ int, _ string, offset int) (int64, error) {
	path.offsetLookups++
	if offset >= len(path.ids) {
		return 0, nil
	}
	return path.ids[offset], nil
}

func (path *fakeReadPath) AggregateByIDs(_ context.Context, ids []int64, _ name.DisplayLocales) ([]*name.SearchRow, error) {
	rows := make([]*name.SearchRow, len(ids))
	for i, id := range ids {
		rows[i] = path.rows[id]
	}
	return rows, nil
}

func twoNamePath() *fakeReadPath {
	return &fakeReadPath{
		ids: []int64{10, 20},
		rows: map[int64]*name.SearchRow{
			10: {Tamil: "மாரி", English: []string{"Maari", "Mari"}, Description: "rain"},
			20: {Tamil: "மார்கழி", English: []string{"Margazhi"}, Description: "a month"},
		},
	}
}

/*
TestSearch_CursorPagination walks a two-name match set one row at a time,
feeding each page's cursor into the next request.
*/
func TestSearch_CursorPagination(t *testing.T) {
	path := twoNamePath()
	service := name.NewSearchService(path, testDirectory(), slog.Default())
	ctx := context.Background()

	// 1. First page: one result and a cursor pointing past it
	first, err := service.Search(ctx, name.SearchInput{Query: "mar", Locale: "en", PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, first.TotalCount)
	require.Len(t, first.Results, 1)
	assert.Equal(t, "rain", first.Results[0].Description)
	require.NotNil(t, first.NextCursor)

	// 2. Second page via the cursor: last row, no further cursor
	second, err := service.Search(ctx, name.SearchInput{
		Query: "mar", Locale: "en", PageSize: 1, Cursor: *first.NextCursor,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.TotalCount)
	require.Len(t, second.Results, 1)
	assert.Equal(t, "a month", second.Results[0].Description)
	assert.Nil(t, second.NextCursor)
}

/*
TestSearch_ZeroMatches short-circuits with an empty result and no cursor.
*/
func TestSearch_ZeroMatches(t *testing.T) {
	path := &fakeReadPath{}
	service := name.NewSearchService(path, testDirectory(), slog.Default())

	output, err := service.Search(context.Background(), name.SearchInput{Query: "zz", Locale: "en"})
	require.NoError(t, err)
	assert.Empty(t, output.Results)
	assert.Zero(t, output.TotalCount)
	assert.Nil(t, output.NextCursor)
}

/*
TestSearch_MalformedCursor degrades to first-page behavior instead of failing.
*/
func TestSearch_MalformedCursor(t *testing.T) {
	path := twoNamePath()
	service := name.NewSearchService(path, testDirectory(), slog.Default())

	output, err := service.Search(context.Background(), name.SearchInput{
		Query: "mar", Locale: "en", PageSize: 10, Cursor: "!!not-base64!!",
	})
	require.NoError(t, err)
	assert.Len(t, output.Results, 2)
	assert.Nil(t, output.NextCursor)
}

/*
TestSearch_CursorPrecedence verifies a valid cursor wins over page math:
no offset lookup is issued even though page > 1 is also supplied.
*/
func TestSearch_CursorPrecedence(t *testing.T) {
	path := twoNamePath()
	service := name.NewSearchService(path, testDirectory(), slog.Default())

	output, err := service.Search(context.Background(), name.SearchInput{
		Query: "mar", Locale: "en", PageSize: 1, Page: 5, Cursor: cursor.Encode(10),
	})
	require.NoError(t, err)
	require.Len(t, output.Results, 1)
	assert.Equal(t, "a month", output.Results[0].Description)
	assert.Zero(t, path.offsetLookups)
}

/*
TestSearch_OffsetDerivedCursor converts page/pageSize into a keyset bound
with exactly one extra offset lookup.
*/
func TestSearch_OffsetDerivedCursor(t *testing.T) {
	path := twoNamePath()
	service := name.NewSearchService(path, testDirectory(), slog.Default())

	output, err := service.Search(context.Background(), name.SearchInput{
		Query: "mar", Locale: "en", PageSize: 1, Page: 2,
	})
	require.NoError(t, err)
	require.Len(t, output.Results, 1)
	assert.Equal(t, "a month", output.Results[0].Description)
	assert.Nil(t, output.NextCursor)
	assert.Equal(t, 1, path.offsetLookups)
}

/*
TestSearch_PageBeyondEnd returns an empty page but keeps the true total.
*/
func TestSearch_PageBeyondEnd(t *testing.T) {
	path := twoNamePath()
	service := name.NewSearchService(path, testDirectory(), slog.Default())

	output, err := service.Search(context.Background(), name.SearchInput{
		Query: "mar", Locale: "en", PageSize: 10, Page: 4,
	})
	require.NoError(t, err)
	assert.Empty(t, output.Results)
	assert.Equal(t, 2, output.TotalCount)
	assert.Nil(t, output.NextCursor)
}

/*
TestSearch_Validation rejects malformed requests before any storage access.
*/
func TestSearch_Validation(t *testing.T) {
	service := name.NewSearchService(&fakeReadPath{}, testDirectory(), slog.Default())
	ctx := context.Background()

	cases := []struct {
		label string
		input name.SearchInput
	}{
		{"empty query", name.SearchInput{Query: "", Locale: "en"}},
		{"query too long", name.SearchInput{Query: strings.Repeat("a", 101), Locale: "en"}},
		{"unknown locale", name.SearchInput{Query: "mar", Locale: "de"}},
		{"page size too large", name.SearchInput{Query: "mar", Locale: "en", PageSize: 101}},
		{"negative page", name.SearchInput{Query: "mar", Locale: "en", Page: -1}},
	}

	for _, testCase := range cases {
		t.Run(testCase.label, func(t *testing.T) {
			_, err := service.Search(ctx, testCase.input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)
		})
	}
}
