// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package name provides the HTTP interface for dictionary search and ingestion.

# Routing Strategy

  - Public (v1): Search and catalogue browsing, accessible to all visitors.
  - Restricted (v1): Bulk publishing, requiring the Editor role.

The handler translates between the web/JSON layer and the domain services.
*/
package name

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/namira/internal/platform/middleware"
	"github.com/taibuivan/namira/internal/platform/request"
	"github.com/taibuivan/namira/internal/platform/respond"
	"github.com/taibuivan/namira/internal/platform/sec"
	"github.com/taibuivan/namira/pkg/convert"
	"github.com/taibuivan/namira/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the name dictionary.
type Handler struct {
	search    *SearchService
	publish   *PublishService
	catalogue *CatalogueService
}

// NewHandler constructs a name [Handler] with its service dependencies.
func NewHandler(search *SearchService, publish *PublishService, catalogue *CatalogueService) *Handler {
	return &Handler{
		search:    search,
		publish:   publish,
		catalogue: catalogue,
	}
}

// Routes returns a [chi.Router] configured with the dictionary endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/search", handler.searchNames)
	router.Get("/", handler.listNames)
	router.Get("/{key}", handler.getName)

	// ## Ingestion (Editor Protected)
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/publish", handler.publishNames)
	})

	return router
}

// # Search Endpoint

/*
GET /api/v1/names/search.

Description: Multilingual substring search over one locale's variants,
grouped by canonical name, paginated with an opaque keyset cursor.

Request:
  - q: string (1-100 chars)
  - locale: string (ta, en, fr)
  - page: int (≥1, compatibility shim; ignored when a valid cursor is given)
  - page_size: int (1-100)
  - cursor: string (opaque; from a previous response's next_cursor)
*/
func (handler *Handler) searchNames(writer http.ResponseWriter, httpRequest *http.Request) {
	queryParams := httpRequest.URL.Query()

	input := SearchInput{
		Query:  queryParams.Get("q"),
		Locale: queryParams.Get("locale"),
		Cursor: queryParams.Get("cursor"),
	}
	input.Page = convert.ToInt(queryParams.Get("page"))
	input.PageSize = convert.ToInt(queryParams.Get("page_size"))

	output, err := handler.search.Search(httpRequest.Context(), input)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}
	respond.OK(writer, output)
}

// # Ingestion Endpoint

/*
POST /api/v1/names/publish.

Description: Transactional bulk ingestion of name/variant/meaning rows with
duplicate reporting. Setting dry_run previews the exact outcome without
persisting anything.

Request Body: PublishInput (rows, dry_run, source)
*/
func (handler *Handler) publishNames(writer http.ResponseWriter, httpRequest *http.Request) {
	var input PublishInput
	if err := request.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	result, err := handler.publish.BulkPublish(httpRequest.Context(), input)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}
	respond.OK(writer, result)
}

// # Catalogue Endpoints

/*
GET /api/v1/names.

Description: Paginated browse of canonical names, ascending by id.
*/
func (handler *Handler) listNames(writer http.ResponseWriter, httpRequest *http.Request) {
	params := pagination.FromRequest(httpRequest)

	names, total, err := handler.catalogue.ListNames(httpRequest.Context(), params)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}
	respond.Paginated(writer, names, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/names/{key}.

Description: Full record (all variants and meanings, grouped by locale) for
one canonical key. 404 when the key does not exist.
*/
func (handler *Handler) getName(writer http.ResponseWriter, httpRequest *http.Request) {
	canonicalKey := chi.URLParam(httpRequest, "key")

	detail, err := handler.catalogue.GetName(httpRequest.Context(), canonicalKey)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}
	respond.OK(writer, detail)
}
