package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fretlog/fretlog/internal/models"
	"github.com/fretlog/fretlog/internal/repositories"
	"github.com/fretlog/fretlog/internal/shared"
	tu "github.com/fretlog/fretlog/internal/testing"
)

func setupService(t *testing.T, metadata *tu.MockMetadata, art *tu.MockArtStore) *Service {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if metadata == nil {
		metadata = &tu.MockMetadata{}
	}
	if art == nil {
		art = tu.NewMockArtStore()
	}

	return NewService(ServiceOpts{
		Repo:     repositories.NewSongRepository(db),
		Metadata: metadata,
		Art:      art,
	})
}

func mustSaveCustom(t *testing.T, svc *Service, song *models.Song) {
	t.Helper()
	if err := svc.Save(context.Background(), song, true); err != nil {
		t.Fatalf("failed to save %s by %s: %v", song.Title, song.Artist, err)
	}
}

func TestSave(t *testing.T) {
	t.Run("Custom Song Skips Lookup", func(t *testing.T) {
		metadata := &tu.MockMetadata{}
		svc := setupService(t, metadata, nil)

		song := models.NewSong("Homemade Riff", "Me")
		song.Album = "Demos"
		song.DurationMS = 60000
		song.Genres = []string{"practice"}

		if err := svc.Save(context.Background(), song, true); err != nil {
			t.Fatalf("failed to save custom song: %v", err)
		}

		if metadata.Fetches != 0 {
			t.Errorf("expected no metadata lookups for a custom song, got %d", metadata.Fetches)
		}

		got, err := svc.Get("Homemade Riff", "Me")
		if err != nil {
			t.Fatalf("failed to get saved song: %v", err)
		}
		if got.Album != "Demos" {
			t.Errorf("expected user-supplied album to be trusted, got %q", got.Album)
		}
	})

	t.Run("Enriched Song Copies Metadata And Caches Art", func(t *testing.T) {
		metadata := &tu.MockMetadata{Info: &models.TrackInfo{
			Album:      "Help!",
			DurationMS: 125000,
			Genres:     []string{"rock", "pop"},
			ArtURL:     "http://img.example/large.jpg",
		}}
		art := tu.NewMockArtStore()
		svc := setupService(t, metadata, art)

		song := models.NewSong("Yesterday", "The Beatles")
		if err := svc.Save(context.Background(), song, false); err != nil {
			t.Fatalf("failed to save song: %v", err)
		}

		if metadata.Fetches != 1 {
			t.Errorf("expected one metadata lookup, got %d", metadata.Fetches)
		}

		got, err := svc.Get("Yesterday", "The Beatles")
		if err != nil {
			t.Fatalf("failed to get saved song: %v", err)
		}
		if got.Album != "Help!" {
			t.Errorf("expected album Help!, got %q", got.Album)
		}
		if got.DurationMS != 125000 {
			t.Errorf("expected duration 125000, got %d", got.DurationMS)
		}
		if len(got.Genres) != 2 {
			t.Errorf("expected 2 genres, got %v", got.Genres)
		}

		if art.FetchCalls != 1 {
			t.Errorf("expected one art fetch, got %d", art.FetchCalls)
		}
		if art.LastURL != "http://img.example/large.jpg" || art.LastAlbum != "Help!" {
			t.Errorf("art fetched with url=%q album=%q", art.LastURL, art.LastAlbum)
		}
	})

	t.Run("Unavailable Metadata Rejects Save", func(t *testing.T) {
		// Nil Info with nil Err behaves like a failed lookup.
		svc := setupService(t, &tu.MockMetadata{}, nil)

		song := models.NewSong("Msispelled", "The Baetles")
		err := svc.Save(context.Background(), song, false)
		if !errors.Is(err, shared.ErrMetadataUnavailable) {
			t.Fatalf("expected ErrMetadataUnavailable, got %v", err)
		}
		if !strings.Contains(err.Error(), "check the spelling") || !strings.Contains(err.Error(), "custom") {
			t.Errorf("expected the error to suggest checking spelling or saving as custom, got %q", err)
		}

		if exists, _ := svc.Exists("Msispelled", "The Baetles"); exists {
			t.Error("expected no row to be inserted on a failed lookup")
		}
	})

	t.Run("Art Failure Does Not Block Save", func(t *testing.T) {
		metadata := &tu.MockMetadata{Info: &models.TrackInfo{
			Album:  "Help!",
			ArtURL: "http://img.example/large.jpg",
		}}
		art := tu.NewMockArtStore()
		art.FetchErr = errors.New("connection refused")
		svc := setupService(t, metadata, art)

		if err := svc.Save(context.Background(), models.NewSong("Yesterday", "The Beatles"), false); err != nil {
			t.Fatalf("expected save to succeed despite art failure, got %v", err)
		}
	})

	t.Run("Duplicate Rejected", func(t *testing.T) {
		svc := setupService(t, nil, nil)
		mustSaveCustom(t, svc, models.NewSong("Yesterday", "The Beatles"))

		err := svc.Save(context.Background(), models.NewSong("YESTERDAY", "the beatles"), true)
		if !errors.Is(err, shared.ErrDuplicateSong) {
			t.Errorf("expected ErrDuplicateSong for case-varied duplicate, got %v", err)
		}
	})

	t.Run("Invalid Song Rejected", func(t *testing.T) {
		svc := setupService(t, nil, nil)

		err := svc.Save(context.Background(), models.NewSong("", ""), true)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestUpdate(t *testing.T) {
	t.Run("Updates Existing Song", func(t *testing.T) {
		svc := setupService(t, nil, nil)
		mustSaveCustom(t, svc, models.NewSong("Yesterday", "The Beatles"))

		song := models.NewSong("Yesterday", "The Beatles")
		song.Progress = models.ProgressMastered
		if err := svc.Update(song); err != nil {
			t.Fatalf("failed to update: %v", err)
		}

		got, err := svc.Get("Yesterday", "The Beatles")
		if err != nil {
			t.Fatalf("failed to get song: %v", err)
		}
		if got.Progress != models.ProgressMastered {
			t.Errorf("expected Mastered, got %q", got.Progress)
		}
	})

	t.Run("Missing Song", func(t *testing.T) {
		svc := setupService(t, nil, nil)

		err := svc.Update(models.NewSong("Nonexistent", "Nobody"))
		if !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected ErrSongNotFound, got %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	svc := setupService(t, nil, nil)
	mustSaveCustom(t, svc, models.NewSong("Yesterday", "The Beatles"))

	if err := svc.Delete("Yesterday", "The Beatles"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if exists, _ := svc.Exists("Yesterday", "The Beatles"); exists {
		t.Error("expected song to be gone")
	}

	if err := svc.Delete("Yesterday", "The Beatles"); err != nil {
		t.Errorf("expected idempotent delete, got %v", err)
	}
}

// filterFixture saves three songs spanning tunings and progress states.
func filterFixture(t *testing.T, svc *Service) {
	t.Helper()

	a := models.NewSong("Yesterday", "The Beatles")
	a.Tuning = "Standard"
	a.Album = "Help!"
	a.Genres = []string{"pop"}
	a.Progress = models.ProgressLearning
	mustSaveCustom(t, svc, a)

	b := models.NewSong("Little Wing", "Jimi Hendrix")
	b.Tuning = "standard"
	b.Album = "Axis: Bold as Love"
	b.Genres = []string{"rock", "blues"}
	b.Progress = models.ProgressMastered
	mustSaveCustom(t, svc, b)

	c := models.NewSong("Black Mountain Side", "Led Zeppelin")
	c.Tuning = "DADGAD"
	c.Genres = []string{"rock", "folk"}
	mustSaveCustom(t, svc, c)
}

func TestSearch(t *testing.T) {
	svc := setupService(t, nil, nil)
	filterFixture(t, svc)

	t.Run("Matches Title Substring", func(t *testing.T) {
		songs, err := svc.Search("wing")
		if err != nil {
			t.Fatalf("failed to search: %v", err)
		}
		if len(songs) != 1 || songs[0].Title != "little wing" {
			t.Errorf("expected Little Wing, got %v", songs)
		}
	})

	t.Run("Matches Artist Substring", func(t *testing.T) {
		songs, err := svc.Search("BEATLES")
		if err != nil {
			t.Fatalf("failed to search: %v", err)
		}
		if len(songs) != 1 {
			t.Errorf("expected one match, got %d", len(songs))
		}
	})

	t.Run("Collapses Whitespace", func(t *testing.T) {
		songs, err := svc.Search("  little \t wing ")
		if err != nil {
			t.Fatalf("failed to search: %v", err)
		}
		if len(songs) != 1 || songs[0].Title != "little wing" {
			t.Errorf("expected Little Wing, got %v", songs)
		}
	})

	t.Run("Empty Text Returns Everything", func(t *testing.T) {
		songs, err := svc.Search("")
		if err != nil {
			t.Fatalf("failed to search: %v", err)
		}
		if len(songs) != 3 {
			t.Errorf("expected 3 songs, got %d", len(songs))
		}
	})
}

func TestFilter(t *testing.T) {
	svc := setupService(t, nil, nil)
	filterFixture(t, svc)

	t.Run("By Tuning", func(t *testing.T) {
		songs, err := svc.Filter(Criteria{Tunings: []string{"standard"}})
		if err != nil {
			t.Fatalf("failed to filter: %v", err)
		}
		if len(songs) != 2 {
			t.Errorf("expected both Standard songs regardless of stored case, got %d", len(songs))
		}
	})

	t.Run("By Tuning Excluding Mastered", func(t *testing.T) {
		songs, err := svc.Filter(Criteria{Tunings: []string{"Standard"}, ExcludeMastered: true})
		if err != nil {
			t.Fatalf("failed to filter: %v", err)
		}
		if len(songs) != 1 || songs[0].Title != "yesterday" {
			t.Errorf("expected only the Learning song, got %v", songs)
		}
	})

	t.Run("By Genre", func(t *testing.T) {
		songs, err := svc.Filter(Criteria{Genre: "Rock"})
		if err != nil {
			t.Fatalf("failed to filter: %v", err)
		}
		if len(songs) != 2 {
			t.Errorf("expected 2 rock songs, got %d", len(songs))
		}
	})

	t.Run("By Album Text", func(t *testing.T) {
		songs, err := svc.Filter(Criteria{Text: "axis"})
		if err != nil {
			t.Fatalf("failed to filter: %v", err)
		}
		if len(songs) != 1 || songs[0].Title != "little wing" {
			t.Errorf("expected the Axis song, got %v", songs)
		}
	})

	t.Run("Sample Caps Result Size", func(t *testing.T) {
		songs, err := svc.Filter(Criteria{SampleSize: 2})
		if err != nil {
			t.Fatalf("failed to filter: %v", err)
		}
		if len(songs) != 2 {
			t.Errorf("expected a sample of 2, got %d", len(songs))
		}

		seen := make(map[string]bool)
		for _, song := range songs {
			key := song.Title + "|" + song.Artist
			if seen[key] {
				t.Errorf("sample repeated %s", key)
			}
			seen[key] = true
		}
	})

	t.Run("Sample Larger Than Matches Is A No-op", func(t *testing.T) {
		songs, err := svc.Filter(Criteria{SampleSize: 10})
		if err != nil {
			t.Fatalf("failed to filter: %v", err)
		}
		if len(songs) != 3 {
			t.Errorf("expected all 3 songs, got %d", len(songs))
		}
	})

	t.Run("No Criteria Returns Everything", func(t *testing.T) {
		songs, err := svc.Filter(Criteria{})
		if err != nil {
			t.Fatalf("failed to filter: %v", err)
		}
		if len(songs) != 3 {
			t.Errorf("expected 3 songs, got %d", len(songs))
		}
	})
}

func TestStats(t *testing.T) {
	svc := setupService(t, nil, nil)
	filterFixture(t, svc)

	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("failed to compute stats: %v", err)
	}

	if stats.Total != 3 {
		t.Errorf("expected 3 songs, got %d", stats.Total)
	}
	if stats.ByProgress[models.ProgressLearning] != 1 {
		t.Errorf("expected 1 Learning, got %d", stats.ByProgress[models.ProgressLearning])
	}
	if stats.ByProgress[models.ProgressMastered] != 1 {
		t.Errorf("expected 1 Mastered, got %d", stats.ByProgress[models.ProgressMastered])
	}
	if len(stats.Tunings) != 2 {
		t.Errorf("expected [DADGAD Standard], got %v", stats.Tunings)
	}
	if len(stats.Genres) != 4 {
		t.Errorf("expected 4 genres, got %v", stats.Genres)
	}
}

func TestArtPath(t *testing.T) {
	art := tu.NewMockArtStore()
	art.Cached["Help!"] = "/tmp/art/Help!.jpg"
	svc := setupService(t, nil, art)

	path, ok := svc.ArtPath("Help!")
	if !ok || path != "/tmp/art/Help!.jpg" {
		t.Errorf("expected cached path, got %q ok=%v", path, ok)
	}

	if _, ok := svc.ArtPath("Nothing"); ok {
		t.Error("expected miss for uncached album")
	}
}
