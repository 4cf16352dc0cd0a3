// Package services implements the external interfaces of the catalog: the
// Last.fm metadata endpoint and the on-disk album art cache.
//
// # Metadata
//
// [LastFMService] issues a single track.getInfo GET per lookup, bounded by
// a 5 second timeout with no retry, throttled by a [rate.Limiter]. It
// extracts the album title, the string-encoded millisecond duration, the
// ordered tag names, and the last (largest) album image variant.
//
// # Art cache
//
// [ArtCache] stores one JPEG per album name. Lookup is a pure existence
// check with no staleness semantics; nothing expires automatically.
// [ArtCache.Invalidate] and [ArtCache.Purge] are the explicit escape
// hatches for refreshing or clearing entries.
//
// # Error Handling
//
// Both clients return sentinel errors for expected failure modes instead
// of raising hard errors:
//   - [shared.ErrMetadataUnavailable] : lookup failed or no credentials
//   - [shared.ErrArtUnavailable] : art download failed
package services
