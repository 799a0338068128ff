// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package name

import (
	"context"
	"log/slog"

	"github.com/taibuivan/namira/internal/core/locale"
	"github.com/taibuivan/namira/internal/platform/constants"
	"github.com/taibuivan/namira/internal/platform/validate"
	"github.com/taibuivan/namira/pkg/cursor"
	"github.com/taibuivan/namira/pkg/pointer"
)

const (
	FieldSearchText = "q"
	FieldLocale     = "locale"
	FieldPage       = "page"
	FieldPageSize   = "page_size"

	// defaultPageSize applies when the request leaves page_size unset.
	defaultPageSize = 20
)

// descriptionFallbackLocale is the designated default locale for description
// resolution when the requested locale has no meaning recorded.
const descriptionFallbackLocale = locale.CodeEnglish

// # Search Orchestrator

// SearchService selects a read path, computes pagination cursors, and shapes
// the unified search response.
type SearchService struct {
	readPath  ReadPath
	directory *locale.Directory
	logger    *slog.Logger
}

// NewSearchService constructs a [SearchService] over the configured read
// path. The path is chosen once at startup; it never switches at runtime.
func NewSearchService(readPath ReadPath, directory *locale.Directory, logger *slog.Logger) *SearchService {
	return &SearchService{
		readPath:  readPath,
		directory: directory,
		logger:    logger,
	}
}

/*
Search executes one multilingual name search.

Description: Validates the request, resolves locale identifiers once,
computes the total independently of the page window, then pages through the
match set with a keyset cursor. A valid cursor takes precedence over
page/pageSize; a page > 1 without a cursor is converted into one with a
single extra offset lookup, keeping the hot path keyset-based.

Parameters:
  - context: context.Context
  - input: SearchInput

Returns:
  - *SearchOutput: Results, total count, next cursor (nil on the last page)
  - error: Validation, configuration, or storage errors
*/
func (service *SearchService) Search(context context.Context, input SearchInput) (*SearchOutput, error) {

	// 1. Normalize paging defaults before validation
	if input.Page == 0 {
		input.Page = 1
	}
	if input.PageSize == 0 {
		input.PageSize = defaultPageSize
	}

	// 2. Validate the request shape
	validator := &validate.Validator{}
	validator.
		Required(FieldSearchText, input.Query).
		MaxLen(FieldSearchText, input.Query, constants.SearchTextMaxLength).
		OneOf(FieldLocale, input.Locale, locale.CodeTamil, locale.CodeEnglish, locale.CodeFrench).
		Range(FieldPageSize, input.PageSize, 1, constants.SearchPageSizeMax).
		Custom(FieldPage, input.Page < 1, "Must be at least 1")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// 3. Resolve every display locale against one directory snapshot
	resolved, err := service.directory.ResolveAll(context,
		locale.CodeTamil, locale.CodeEnglish, locale.CodeFrench)
	if err != nil {
		return nil, err
	}
	display := DisplayLocales{
		Tamil:         resolved[locale.CodeTamil],
		English:       resolved[locale.CodeEnglish],
		French:        resolved[locale.CodeFrench],
		Requested:     resolved[input.Locale],
		Default:       resolved[descriptionFallbackLocale],
		RequestedCode: input.Locale,
		DefaultCode:   descriptionFallbackLocale,
	}

	// 4. Total count is window-independent; zero short-circuits
	totalCount, err := service.readPath.CountMatches(context, display.Requested, input.Query)
	if err != nil {
		return nil, err
	}
	if totalCount == 0 {
		return &SearchOutput{Results: []*SearchRow{}, TotalCount: 0, NextCursor: nil}, nil
	}

	// 5. Establish the keyset bound
	afterID, err := service.resolveCursor(context, input, display)
	if err != nil {
		return nil, err
	}
	if afterID < 0 {
		// Offset derivation walked past the end of the match set
		return &SearchOutput{Results: []*SearchRow{}, TotalCount: totalCount, NextCursor: nil}, nil
	}

	// 6. Fetch one id beyond the window to detect end-of-data
	ids, err := service.readPath.PageIDs(context, display.Requested, input.Query, afterID, input.PageSize+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(ids) > input.PageSize
	if hasMore {
		ids = ids[:input.PageSize]
	}
	if len(ids) == 0 {
		return &SearchOutput{Results: []*SearchRow{}, TotalCount: totalCount, NextCursor: nil}, nil
	}

	// 7. Hydrate the window into full response rows
	results, err := service.readPath.AggregateByIDs(context, ids, display)
	if err != nil {
		return nil, err
	}

	// 8. Emit the cursor only when more data exists
	var nextCursor *string
	if hasMore {
		nextCursor = pointer.To(cursor.Encode(ids[len(ids)-1]))
	}

	return &SearchOutput{
		Results:    results,
		TotalCount: totalCount,
		NextCursor: nextCursor,
	}, nil
}

// resolveCursor determines the exclusive keyset lower bound for the request.
//
// Precedence: a decodable cursor wins outright; a malformed cursor degrades
// to first-page behavior rather than erroring. Without a cursor, page > 1 is
// translated into the id of the last row of the previous page via one
// offset lookup. Returns -1 when the offset points past the match set.
func (service *SearchService) resolveCursor(context context.Context, input SearchInput, display DisplayLocales) (int64, error) {
	if input.Cursor != "" {
		if id, ok := cursor.Decode(input.Cursor); ok {
			return id, nil
		}
	}

	if input.Page <= 1 {
		return 0, nil
	}

	// Compatibility shim for offset-style paging: the row right before the
	// requested page is the exclusive bound for a keyset fetch.
	offset := (input.Page-1)*input.PageSize - 1
	boundID, err := service.readPath.IDAtOffset(context, display.Requested, input.Query, offset)
	if err != nil {
		return 0, err
	}
	if boundID == 0 {
		return -1, nil
	}
	return boundID, nil
}
