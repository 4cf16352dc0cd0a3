package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Store errors
	ErrSongNotFound  = fmt.Errorf("song not found")
	ErrDuplicateSong = fmt.Errorf("song already exists")
	ErrStoreFailure  = fmt.Errorf("store operation failed")
	ErrMigration     = fmt.Errorf("migration failed")
	ErrResetRefused  = fmt.Errorf("schema reset refused")

	// Metadata and cache errors
	ErrMetadataUnavailable = fmt.Errorf("track metadata unavailable")
	ErrArtUnavailable      = fmt.Errorf("album art unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
