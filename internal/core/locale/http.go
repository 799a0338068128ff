// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/namira/internal/platform/middleware"
	"github.com/taibuivan/namira/internal/platform/respond"
	"github.com/taibuivan/namira/internal/platform/sec"
)

type Handler struct {
	directory *Directory
}

func NewHandler(directory *Directory) *Handler {
	return &Handler{directory: directory}
}

// Routes returns a [chi.Router] for the locale catalogue.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listLocales)
	router.Get("/{code}", handler.getLocale)

	// Admin endpoints
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/refresh", handler.refresh)
	})

	return router
}

func (handler *Handler) listLocales(writer http.ResponseWriter, request *http.Request) {
	locales, err := handler.directory.All(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, locales)
}

func (handler *Handler) getLocale(writer http.ResponseWriter, request *http.Request) {
	code := chi.URLParam(request, "code")

	entry, err := handler.directory.Locale(request.Context(), code)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

// refresh drops the cached snapshot so the next read reloads from storage.
// Used after out-of-band changes to the locale table.
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	handler.directory.Invalidate()
	respond.NoContent(writer)
}
