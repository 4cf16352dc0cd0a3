// package catalog composes the repository, the metadata client, and the
// art cache into the save/update/delete/filter operations the presentation
// layers call.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fretlog/fretlog/internal/models"
	"github.com/fretlog/fretlog/internal/repositories"
	"github.com/fretlog/fretlog/internal/services"
	"github.com/fretlog/fretlog/internal/shared"
)

// Service orchestrates catalog operations. The repository is the sole
// writer of durable state; the metadata client and art cache fill in what
// the user didn't type.
type Service struct {
	repo     *repositories.SongRepository
	metadata services.MetadataService
	art      services.ArtStore
	logger   *log.Logger
}

// ServiceOpts contains the dependencies for creating a Service.
type ServiceOpts struct {
	Repo     *repositories.SongRepository
	Metadata services.MetadataService
	Art      services.ArtStore
	Logger   *log.Logger
}

// NewService creates a catalog Service with the provided dependencies.
func NewService(opts ServiceOpts) *Service {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Service{
		repo:     opts.Repo,
		metadata: opts.Metadata,
		art:      opts.Art,
		logger:   opts.Logger,
	}
}

// Save persists a new song.
//
// A non-custom song is enriched first: album, duration, and genres come
// from the metadata service and the album art is cached (art failure is
// non-fatal). When the lookup comes back unavailable no row is inserted
// and the returned error tells the user to check the spelling or save the
// song as custom. A custom song skips enrichment and trusts the
// user-supplied fields.
func (s *Service) Save(ctx context.Context, song *models.Song, isCustom bool) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	exists, err := s.repo.Exists(song.Title, song.Artist)
	if err != nil {
		return fmt.Errorf("unable to save the song: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s by %s is already in the catalog", shared.ErrDuplicateSong, song.Title, song.Artist)
	}

	if !isCustom {
		info, err := s.metadata.Fetch(ctx, song.Artist, song.Title)
		if err != nil {
			s.logger.Info("metadata lookup failed", "title", song.Title, "artist", song.Artist, "error", err)
			return fmt.Errorf(
				"%w: %s by %s was not found on Last.fm; check the spelling or save it as a custom song",
				shared.ErrMetadataUnavailable, song.Title, song.Artist,
			)
		}

		song.Album = info.Album
		song.DurationMS = info.DurationMS
		song.Genres = info.Genres

		if info.ArtURL != "" && s.art != nil {
			if _, err := s.art.FetchAndCache(ctx, info.ArtURL, song.Album); err != nil {
				// Missing art never blocks a save.
				s.logger.Warn("failed to cache album art", "album", song.Album, "error", err)
			}
		}
	}

	if err := s.repo.Insert(song); err != nil {
		// The UNIQUE constraint is the real duplicate guard; the earlier
		// existence check only gives a friendlier early answer.
		if errors.Is(err, shared.ErrDuplicateSong) {
			return err
		}
		s.logger.Error("failed to insert song", "title", song.Title, "artist", song.Artist, "error", err)
		return fmt.Errorf("unable to save the song: %w", err)
	}

	s.logger.Info("song saved", "title", song.Title, "artist", song.Artist, "custom", isCustom)
	return nil
}

// Update commits edited fields (notes, tuning, album, duration, genres,
// progress) for an existing song, keyed by natural key.
func (s *Service) Update(song *models.Song) error {
	found, err := s.repo.UpdateFields(song)
	if err != nil {
		return fmt.Errorf("unable to update the song: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: %s by %s", shared.ErrSongNotFound, song.Title, song.Artist)
	}
	s.logger.Info("song updated", "title", song.Title, "artist", song.Artist)
	return nil
}

// Delete removes a song by natural key. Deleting an absent song succeeds.
func (s *Service) Delete(title, artist string) error {
	if err := s.repo.Delete(title, artist); err != nil {
		return fmt.Errorf("unable to delete the song: %w", err)
	}
	s.logger.Info("song deleted", "title", title, "artist", artist)
	return nil
}

// Get retrieves a single song by natural key.
func (s *Service) Get(title, artist string) (*models.Song, error) {
	return s.repo.Get(title, artist)
}

// Exists reports whether a song is in the catalog.
func (s *Service) Exists(title, artist string) (bool, error) {
	return s.repo.Exists(title, artist)
}

// List retrieves every song. Order is unspecified; presentation sorts.
func (s *Service) List() ([]*models.Song, error) {
	return s.repo.List()
}

// Genres returns the catalog's unique genres; see
// [repositories.SongRepository.UniqueGenres] for the artist-name
// exclusion.
func (s *Service) Genres() ([]string, error) {
	return s.repo.UniqueGenres()
}

// Tunings returns the catalog's unique display-formatted tunings.
func (s *Service) Tunings() ([]string, error) {
	return s.repo.UniqueTunings()
}

// ArtPath returns the cached album art path for an album, if any.
func (s *Service) ArtPath(album string) (string, bool) {
	if s.art == nil {
		return "", false
	}
	return s.art.CachedPath(album)
}

// Criteria selects songs in [Service.Filter]. Zero values mean "don't
// filter on this".
type Criteria struct {
	Text            string   // substring match on artist, title, or album
	Genre           string   // exact (case-insensitive) genre membership
	Tunings         []string // tuning set membership, display-formatted
	ExcludeMastered bool
	SampleSize      int // uniform random down-sample to at most N results
}

// Search returns songs whose title or artist contains text,
// case-insensitively and with runs of whitespace collapsed.
func (s *Service) Search(text string) ([]*models.Song, error) {
	songs, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.Join(strings.Fields(text), " "))
	if needle == "" {
		return songs, nil
	}

	var matched []*models.Song
	for _, song := range songs {
		if strings.Contains(shared.NormalizeSongKey(song.Title, song.Artist), needle) {
			matched = append(matched, song)
		}
	}
	return matched, nil
}

// Filter applies criteria as an in-memory post-filter over the full list.
func (s *Service) Filter(criteria Criteria) ([]*models.Song, error) {
	songs, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	var matched []*models.Song
	for _, song := range songs {
		if matchesCriteria(song, criteria) {
			matched = append(matched, song)
		}
	}

	if criteria.SampleSize > 0 && criteria.SampleSize < len(matched) {
		matched = sample(matched, criteria.SampleSize)
	}

	return matched, nil
}

func matchesCriteria(song *models.Song, criteria Criteria) bool {
	if text := strings.ToLower(strings.TrimSpace(criteria.Text)); text != "" {
		if !strings.Contains(strings.ToLower(song.Title), text) &&
			!strings.Contains(strings.ToLower(song.Artist), text) &&
			!strings.Contains(strings.ToLower(song.Album), text) {
			return false
		}
	}

	if criteria.Genre != "" {
		found := false
		for _, genre := range song.Genres {
			if strings.EqualFold(genre, criteria.Genre) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(criteria.Tunings) > 0 {
		songTuning := models.FormatTuning(song.Tuning)
		found := false
		for _, tuning := range criteria.Tunings {
			if strings.EqualFold(models.FormatTuning(tuning), songTuning) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if criteria.ExcludeMastered && song.Progress == models.ProgressMastered {
		return false
	}

	return true
}

// sample picks n songs uniformly without replacement.
func sample(songs []*models.Song, n int) []*models.Song {
	shuffled := make([]*models.Song, len(songs))
	copy(shuffled, songs)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}

// Stats aggregates the read-only numbers the statistics surfaces display.
type Stats struct {
	Total      int
	ByProgress map[models.Progress]int
	Tunings    []string
	Genres     []string
}

// Stats computes catalog-wide aggregates.
func (s *Service) Stats() (*Stats, error) {
	songs, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	byProgress, err := s.repo.CountByProgress()
	if err != nil {
		return nil, err
	}

	tunings, err := s.repo.UniqueTunings()
	if err != nil {
		return nil, err
	}

	genres, err := s.repo.UniqueGenres()
	if err != nil {
		return nil, err
	}

	return &Stats{
		Total:      len(songs),
		ByProgress: byProgress,
		Tunings:    tunings,
		Genres:     genres,
	}, nil
}
