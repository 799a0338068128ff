// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/taibuivan/namira/internal/platform/apperr"
)

// # Locale Directory

// snapshot is an immutable view of the locale table. Readers get the whole
// snapshot or nothing; there is never a partially refreshed mapping.
type snapshot struct {
	byCode   map[string]*Locale
	ordered  []*Locale
	loadedAt time.Time
}

// Directory caches the code-to-id mapping for locales with a TTL.
//
// # Concurrency
//
// The current snapshot lives behind an [atomic.Pointer], so lookups are
// lock-free. Reloads are serialized by reloadMu: one goroutine refreshes
// while the rest wait and then read the fresh snapshot.
//
// # Failure Semantics
//
// A reload that finds any of [RequiredCodes] missing returns
// [apperr.Configuration]. That error is fatal for the calling operation and
// is never retried here: a missing reference row cannot be fixed by retrying.
type Directory struct {
	repo   Repository
	logger *slog.Logger

	ttl      atomic.Int64 // nanoseconds
	current  atomic.Pointer[snapshot]
	reloadMu sync.Mutex
}

// NewDirectory constructs a [Directory] backed by the given repository.
// The cache starts cold; the first lookup triggers a load.
func NewDirectory(repo Repository, logger *slog.Logger, ttl time.Duration) *Directory {
	directory := &Directory{
		repo:   repo,
		logger: logger,
	}
	directory.ttl.Store(int64(ttl))
	return directory
}

// # Lookups

/*
Resolve maps a locale code to its storage identifier.

Parameters:
  - context: context.Context
  - code: string (e.g. "ta", "en", "fr")

Returns:
  - int: Locale ID
  - error: apperr.ValidationError for unknown codes, apperr.Configuration
    if required locales are missing from storage
*/
func (directory *Directory) Resolve(context context.Context, code string) (int, error) {
	snap, err := directory.fresh(context)
	if err != nil {
		return 0, err
	}

	entry, ok := snap.byCode[code]
	if !ok {
		return 0, apperr.ValidationError(fmt.Sprintf("Unsupported locale %q", code))
	}
	return entry.ID, nil
}

/*
ResolveAll maps a set of locale codes to storage identifiers in one pass.

Description: Used by the publish pipeline to resolve every locale referenced
by a batch against a single snapshot, so one request never observes a
mid-refresh mix of old and new identifiers.

Parameters:
  - context: context.Context
  - codes: ...string (deduplicated internally)

Returns:
  - map[string]int: Code to locale ID
  - error: Same taxonomy as [Directory.Resolve]
*/
func (directory *Directory) ResolveAll(context context.Context, codes ...string) (map[string]int, error) {
	snap, err := directory.fresh(context)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]int, len(codes))
	for _, code := range codes {
		entry, ok := snap.byCode[code]
		if !ok {
			return nil, apperr.ValidationError(fmt.Sprintf("Unsupported locale %q", code))
		}
		resolved[code] = entry.ID
	}
	return resolved, nil
}

// Locale returns the full locale record for a code.
func (directory *Directory) Locale(context context.Context, code string) (*Locale, error) {
	snap, err := directory.fresh(context)
	if err != nil {
		return nil, err
	}

	entry, ok := snap.byCode[code]
	if !ok {
		return nil, apperr.ValidationError(fmt.Sprintf("Unsupported locale %q", code))
	}
	return entry, nil
}

// All returns every cached locale, ordered by ID.
func (directory *Directory) All(context context.Context) ([]*Locale, error) {
	snap, err := directory.fresh(context)
	if err != nil {
		return nil, err
	}
	return snap.ordered, nil
}

// # Cache Control

// Invalidate discards the current snapshot. The next lookup reloads from
// storage. Called after a publish batch lands new reference data.
func (directory *Directory) Invalidate() {
	directory.current.Store(nil)
}

// SetTTL adjusts the snapshot lifetime at runtime.
func (directory *Directory) SetTTL(ttl time.Duration) {
	directory.ttl.Store(int64(ttl))
}

// # Snapshot Lifecycle

// fresh returns the current snapshot, reloading it first if it is missing
// or older than the TTL.
func (directory *Directory) fresh(context context.Context) (*snapshot, error) {
	if snap := directory.current.Load(); snap != nil && !directory.expired(snap) {
		return snap, nil
	}

	directory.reloadMu.Lock()
	defer directory.reloadMu.Unlock()

	// Another goroutine may have finished the reload while we waited.
	if snap := directory.current.Load(); snap != nil && !directory.expired(snap) {
		return snap, nil
	}

	return directory.reload(context)
}

func (directory *Directory) expired(snap *snapshot) bool {
	return time.Since(snap.loadedAt) > time.Duration(directory.ttl.Load())
}

// reload replaces the snapshot wholesale from storage.
func (directory *Directory) reload(context context.Context) (*snapshot, error) {
	locales, err := directory.repo.ListLocales(context)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]*Locale, len(locales))
	for _, entry := range locales {
		byCode[entry.Code] = entry
	}

	// Every required locale must be present before the snapshot is published.
	for _, code := range RequiredCodes() {
		if _, ok := byCode[code]; !ok {
			return nil, apperr.Configuration(fmt.Sprintf("Required locale %q is missing from storage", code))
		}
	}

	ordered := make([]*Locale, len(locales))
	copy(ordered, locales)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	snap := &snapshot{
		byCode:   byCode,
		ordered:  ordered,
		loadedAt: time.Now(),
	}
	directory.current.Store(snap)

	directory.logger.InfoContext(context, "locale_directory_reloaded",
		slog.Int("locales", len(locales)),
	)

	return snap, nil
}
