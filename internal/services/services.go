// package services defines the clients for external resources: the Last.fm
// metadata endpoint and the on-disk album art cache.
package services

import (
	"context"

	"github.com/fretlog/fretlog/internal/models"
)

// MetadataService looks up track metadata from an external provider.
//
// Implementations never raise for expected failure modes (missing
// credentials, network errors, unknown tracks); they return
// [shared.ErrMetadataUnavailable] and let callers decide what that means.
type MetadataService interface {
	// Fetch retrieves metadata for a track by artist and title.
	Fetch(ctx context.Context, artist, track string) (*models.TrackInfo, error)

	// Name returns the provider name (e.g. "Last.fm")
	Name() string
}

// ArtStore caches downloaded album art on disk, keyed by album name.
type ArtStore interface {
	// FetchAndCache downloads the resource and stores it under the album name.
	FetchAndCache(ctx context.Context, url, album string) (string, error)

	// CachedPath returns the local path for an album's art if it is cached.
	CachedPath(album string) (string, bool)

	// Invalidate removes a single cached entry.
	Invalidate(album string) error

	// Purge empties the cache.
	Purge() error
}
