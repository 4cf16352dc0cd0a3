package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fretlog/fretlog/internal/shared"
)

const artFetchTimeout = 5 * time.Second

// ArtCache implements [ArtStore] as one file per album name under a single
// directory. There is no size bound and no staleness check: a cached image
// is valid until explicitly invalidated.
type ArtCache struct {
	dir        string
	httpClient *http.Client
	logger     *log.Logger
}

// NewArtCache creates an ArtCache rooted at dir, which must already exist.
func NewArtCache(dir string, client *http.Client, logger *log.Logger) *ArtCache {
	if client == nil {
		client = &http.Client{Timeout: artFetchTimeout}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ArtCache{dir: dir, httpClient: client, logger: logger}
}

// Dir returns the cache directory.
func (c *ArtCache) Dir() string {
	return c.dir
}

// entryPath maps an album name to its cache file. Path separators in the
// name are flattened so an album can't escape the cache directory.
func (c *ArtCache) entryPath(album string) string {
	name := strings.NewReplacer("/", "_", string(os.PathSeparator), "_").Replace(album)
	return filepath.Join(c.dir, name+".jpg")
}

// FetchAndCache downloads the resource at url and writes it verbatim to
// <dir>/<album>.jpg, silently replacing any previous file. Download
// failures are logged and returned as [shared.ErrArtUnavailable]; they are
// never fatal to the caller's operation.
func (c *ArtCache) FetchAndCache(ctx context.Context, url, album string) (string, error) {
	if url == "" || album == "" {
		return "", fmt.Errorf("%w: no art URL for album", shared.ErrArtUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrArtUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("failed to fetch album art", "album", album, "error", err)
		return "", fmt.Errorf("%w: %v", shared.ErrArtUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("failed to fetch album art", "album", album, "status", resp.StatusCode)
		return "", fmt.Errorf("%w: status %d", shared.ErrArtUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrArtUnavailable, err)
	}

	path := c.entryPath(album)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrArtUnavailable, err)
	}

	c.logger.Debug("cached album art", "album", album, "path", path)
	return path, nil
}

// CachedPath returns the local path for an album's art and whether it
// exists. Pure existence check; no staleness semantics.
func (c *ArtCache) CachedPath(album string) (string, bool) {
	if album == "" {
		return "", false
	}
	path := c.entryPath(album)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// Invalidate removes a single cached entry. Removing an absent entry is a
// no-op.
func (c *ArtCache) Invalidate(album string) error {
	if err := os.Remove(c.entryPath(album)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to invalidate cache entry: %w", err)
	}
	return nil
}

// Purge removes every cached image.
func (c *ArtCache) Purge() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jpg") {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove cache entry: %w", err)
		}
	}
	return nil
}
