// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/fretlog/fretlog/internal/models"
	"github.com/fretlog/fretlog/internal/shared"
)

// MockMetadata is a test double for the metadata service.
//
// Set Info for a successful lookup or Err to force a failure; a nil Info
// with a nil Err behaves like an unavailable lookup.
type MockMetadata struct {
	Info    *models.TrackInfo
	Err     error
	Fetches int
}

func (m *MockMetadata) Fetch(ctx context.Context, artist, track string) (*models.TrackInfo, error) {
	m.Fetches++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Info == nil {
		return nil, fmt.Errorf("%w: track not found", shared.ErrMetadataUnavailable)
	}
	return m.Info, nil
}

func (m *MockMetadata) Name() string { return "mock" }

// MockArtStore is a test double for the art store that records calls
// instead of touching the network or disk.
type MockArtStore struct {
	Cached      map[string]string
	FetchErr    error
	FetchCalls  int
	LastURL     string
	LastAlbum   string
	Invalidated []string
}

func NewMockArtStore() *MockArtStore {
	return &MockArtStore{Cached: make(map[string]string)}
}

func (m *MockArtStore) FetchAndCache(ctx context.Context, url, album string) (string, error) {
	m.FetchCalls++
	m.LastURL = url
	m.LastAlbum = album
	if m.FetchErr != nil {
		return "", m.FetchErr
	}
	path := "/tmp/art/" + album + ".jpg"
	m.Cached[album] = path
	return path, nil
}

func (m *MockArtStore) CachedPath(album string) (string, bool) {
	path, ok := m.Cached[album]
	return path, ok
}

func (m *MockArtStore) Invalidate(album string) error {
	m.Invalidated = append(m.Invalidated, album)
	delete(m.Cached, album)
	return nil
}

func (m *MockArtStore) Purge() error {
	m.Cached = make(map[string]string)
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
