package models

// TrackInfo is the normalized result of a metadata lookup.
type TrackInfo struct {
	Album      string   // Album title, "N/A" when the provider has none
	DurationMS int      // Track length in milliseconds, 0 when unknown
	Genres     []string // Ordered tag names
	ArtURL     string   // Largest-resolution album art URL, "" when absent
}
