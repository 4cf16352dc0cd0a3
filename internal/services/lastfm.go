// Last.fm implementation of [MetadataService]
//
// Response types based on https://www.last.fm/api/show/track.getInfo
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fretlog/fretlog/internal/models"
	"github.com/fretlog/fretlog/internal/shared"
	"golang.org/x/time/rate"
)

const (
	lastFMBaseURL = "http://ws.audioscrobbler.com/2.0/"

	// Last.fm asks clients to stay under roughly five requests per second.
	lastFMRequestsPerSecond = 5

	lastFMTimeout = 5 * time.Second
)

// lastFMImage is one entry of the image variant list, ordered small to large.
type lastFMImage struct {
	URL  string `json:"#text"`
	Size string `json:"size"`
}

type lastFMTag struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type lastFMTopTags struct {
	Tags []lastFMTag `json:"tag"`
}

type lastFMAlbum struct {
	Artist string        `json:"artist"`
	Title  string        `json:"title"`
	Images []lastFMImage `json:"image"`
}

type lastFMTrack struct {
	Name     string        `json:"name"`
	Duration string        `json:"duration"` // string-encoded integer milliseconds
	Album    *lastFMAlbum  `json:"album"`
	TopTags  lastFMTopTags `json:"toptags"`
}

// lastFMTrackInfoResponse is the track.getInfo response envelope.
type lastFMTrackInfoResponse struct {
	Track *lastFMTrack `json:"track"`
	Error int          `json:"error"`
	// Message accompanies non-zero Error codes
	Message string `json:"message"`
}

// LastFMService implements [MetadataService] against the Last.fm web API.
//
// A single GET with a 5 second timeout and no retry: one failed attempt is
// terminal for that call and surfaces as [shared.ErrMetadataUnavailable].
type LastFMService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// LastFMOpts contains configuration options for creating a LastFMService.
type LastFMOpts struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *log.Logger
}

// NewLastFMService creates a Last.fm client. An empty API key is allowed;
// every Fetch then short-circuits to unavailable without a network call.
func NewLastFMService(opts LastFMOpts) *LastFMService {
	if opts.BaseURL == "" {
		opts.BaseURL = lastFMBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: lastFMTimeout}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &LastFMService{
		apiKey:     opts.APIKey,
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(lastFMRequestsPerSecond), 1),
		logger:     opts.Logger,
	}
}

func (s *LastFMService) Name() string {
	return "Last.fm"
}

// Fetch retrieves track metadata via track.getInfo.
//
// Configuration, network, HTTP, and parse failures are logged and mapped to
// [shared.ErrMetadataUnavailable]; none of them escape as hard errors.
func (s *LastFMService) Fetch(ctx context.Context, artist, track string) (*models.TrackInfo, error) {
	if s.apiKey == "" {
		s.logger.Debug("no Last.fm API key configured, skipping lookup")
		return nil, fmt.Errorf("%w: %v", shared.ErrMetadataUnavailable, shared.ErrMissingCredentials)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMetadataUnavailable, err)
	}

	query := url.Values{}
	query.Set("method", "track.getInfo")
	query.Set("artist", artist)
	query.Set("track", track)
	query.Set("api_key", s.apiKey)
	query.Set("format", "json")

	// Spaces travel as '+' in the query string.
	call := s.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, call, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMetadataUnavailable, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("track info request failed", "artist", artist, "track", track, "error", err)
		return nil, fmt.Errorf("%w: %v", shared.ErrMetadataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn("track info request failed", "artist", artist, "track", track, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", shared.ErrMetadataUnavailable, resp.StatusCode)
	}

	var payload lastFMTrackInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		s.logger.Warn("failed to decode track info response", "error", err)
		return nil, fmt.Errorf("%w: %v", shared.ErrMetadataUnavailable, err)
	}

	if payload.Track == nil || payload.Error != 0 {
		s.logger.Info("track not found", "artist", artist, "track", track, "message", payload.Message)
		return nil, fmt.Errorf("%w: track not found", shared.ErrMetadataUnavailable)
	}

	return normalizeTrackInfo(payload.Track), nil
}

// normalizeTrackInfo maps the raw response onto a [models.TrackInfo].
func normalizeTrackInfo(track *lastFMTrack) *models.TrackInfo {
	info := &models.TrackInfo{Album: "N/A"}

	if ms, err := strconv.Atoi(strings.TrimSpace(track.Duration)); err == nil {
		info.DurationMS = ms
	}

	for _, tag := range track.TopTags.Tags {
		if tag.Name != "" {
			info.Genres = append(info.Genres, tag.Name)
		}
	}

	if track.Album != nil {
		if track.Album.Title != "" {
			info.Album = track.Album.Title
		}
		// Variants are ordered small to large; take the last as the
		// highest resolution.
		if n := len(track.Album.Images); n > 0 {
			info.ArtURL = track.Album.Images[n-1].URL
		}
	}

	return info
}
