// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package name

import (
	"context"
	"log/slog"

	"github.com/taibuivan/namira/pkg/pagination"
)

// # Catalogue Service

// CatalogueService serves the browse/detail reads over canonical names.
// It is independent of the search read paths: catalogue pages are small and
// keyed directly, so they always read the normalized tables.
type CatalogueService struct {
	repo   Repository
	logger *slog.Logger
}

// NewCatalogueService constructs a [CatalogueService].
func NewCatalogueService(repo Repository, logger *slog.Logger) *CatalogueService {
	return &CatalogueService{
		repo:   repo,
		logger: logger,
	}
}

// ListNames retrieves one page of canonical names plus the total count.
func (service *CatalogueService) ListNames(context context.Context, params pagination.Params) ([]*Name, int, error) {
	return service.repo.ListNames(context, params.Limit, params.Offset())
}

// GetName retrieves the full record for one canonical key.
func (service *CatalogueService) GetName(context context.Context, canonicalKey string) (*Detail, error) {
	return service.repo.GetByCanonicalKey(context, canonicalKey)
}
