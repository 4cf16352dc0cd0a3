package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fretlog/fretlog/internal/models"
	"github.com/fretlog/fretlog/internal/shared"
	"github.com/mattn/go-sqlite3"
)

// SongRepository persists [models.Song] records in SQLite.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

const songColumns = "title, artist, tuning, notes, album, duration_ms, genres, progress"

// Exists reports whether a song with the given natural key is stored,
// comparing title and artist case-insensitively.
func (r *SongRepository) Exists(title, artist string) (bool, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM songs WHERE LOWER(title) = LOWER(?) AND LOWER(artist) = LOWER(?)",
		title, artist,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check song existence: %w", err)
	}
	return count > 0, nil
}

// Get retrieves a song by natural key, case-insensitively.
// Returns [shared.ErrSongNotFound] when no row matches.
func (r *SongRepository) Get(title, artist string) (*models.Song, error) {
	row := r.db.QueryRow(
		"SELECT "+songColumns+" FROM songs WHERE LOWER(title) = LOWER(?) AND LOWER(artist) = LOWER(?)",
		title, artist,
	)

	song, err := scanSong(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s by %s", shared.ErrSongNotFound, title, artist)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}
	return song, nil
}

// List retrieves every stored song. Order is unspecified; callers sort.
func (r *SongRepository) List() ([]*models.Song, error) {
	rows, err := r.db.Query("SELECT " + songColumns + " FROM songs")
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.Song
	for rows.Next() {
		song, err := scanSong(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// Insert commits a new song row with a generated id. Title and artist are
// stored lowercased. A natural-key collision surfaces as
// [shared.ErrDuplicateSong] via the table's UNIQUE constraint.
func (r *SongRepository) Insert(song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStoreFailure, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO songs (id, title, artist, tuning, notes, album, duration_ms, genres, progress)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		shared.GenerateID(),
		strings.ToLower(song.Title),
		strings.ToLower(song.Artist),
		song.Tuning,
		song.Notes,
		song.Album,
		song.DurationMS,
		models.JoinGenres(song.Genres),
		string(song.Progress),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("%w: %s by %s", shared.ErrDuplicateSong, song.Title, song.Artist)
		}
		return fmt.Errorf("%w: %v", shared.ErrStoreFailure, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStoreFailure, err)
	}
	return nil
}

// Delete removes a song by natural key, case-insensitively.
// Deleting an absent song is a no-op, not an error.
func (r *SongRepository) Delete(title, artist string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStoreFailure, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"DELETE FROM songs WHERE LOWER(title) = LOWER(?) AND LOWER(artist) = LOWER(?)",
		title, artist,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStoreFailure, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStoreFailure, err)
	}
	return nil
}

// UpdateFields commits new notes/tuning/album/duration/genres/progress
// values for the song matching the natural key. Returns false when no row
// matched; detecting that is the caller's responsibility.
func (r *SongRepository) UpdateFields(song *models.Song) (bool, error) {
	if err := song.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("%w: %v", shared.ErrStoreFailure, err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE songs
		SET notes = ?, tuning = ?, album = ?, duration_ms = ?, genres = ?, progress = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE LOWER(title) = LOWER(?) AND LOWER(artist) = LOWER(?)
	`,
		song.Notes,
		song.Tuning,
		song.Album,
		song.DurationMS,
		models.JoinGenres(song.Genres),
		string(song.Progress),
		song.Title,
		song.Artist,
	)
	if err != nil {
		return false, fmt.Errorf("%w: %v", shared.ErrStoreFailure, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %v", shared.ErrStoreFailure, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("%w: %v", shared.ErrStoreFailure, err)
	}
	return rows > 0, nil
}

// UniqueGenres returns the sorted set of lowercase genre strings, excluding
// any genre that coincides case-insensitively with a stored artist name.
// Mis-tagged entries sometimes leak the artist into the genre field.
func (r *SongRepository) UniqueGenres() ([]string, error) {
	artists := make(map[string]bool)
	artistRows, err := r.db.Query("SELECT DISTINCT LOWER(artist) FROM songs")
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer artistRows.Close()
	for artistRows.Next() {
		var artist string
		if err := artistRows.Scan(&artist); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists[artist] = true
	}
	if err := artistRows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	rows, err := r.db.Query("SELECT DISTINCT genres FROM songs WHERE genres IS NOT NULL AND genres != ''")
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	unique := make(map[string]bool)
	for rows.Next() {
		var joined string
		if err := rows.Scan(&joined); err != nil {
			return nil, fmt.Errorf("failed to scan genres: %w", err)
		}
		for _, genre := range models.SplitGenres(joined) {
			genre = strings.ToLower(genre)
			if !artists[genre] {
				unique[genre] = true
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	genres := make([]string, 0, len(unique))
	for genre := range unique {
		genres = append(genres, genre)
	}
	sort.Strings(genres)
	return genres, nil
}

// UniqueTunings returns the sorted set of display-formatted tuning strings;
// see [models.FormatTuning] for the formatting rule.
func (r *SongRepository) UniqueTunings() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT tuning FROM songs WHERE tuning IS NOT NULL AND tuning != ''")
	if err != nil {
		return nil, fmt.Errorf("failed to query tunings: %w", err)
	}
	defer rows.Close()

	unique := make(map[string]bool)
	for rows.Next() {
		var tuning string
		if err := rows.Scan(&tuning); err != nil {
			return nil, fmt.Errorf("failed to scan tuning: %w", err)
		}
		unique[models.FormatTuning(tuning)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	tunings := make([]string, 0, len(unique))
	for tuning := range unique {
		tunings = append(tunings, tuning)
	}
	sort.Strings(tunings)
	return tunings, nil
}

// CountByProgress returns the number of stored songs per progress state.
func (r *SongRepository) CountByProgress() (map[models.Progress]int, error) {
	rows, err := r.db.Query("SELECT progress, COUNT(*) FROM songs GROUP BY progress")
	if err != nil {
		return nil, fmt.Errorf("failed to query progress counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Progress]int)
	for rows.Next() {
		var progress string
		var count int
		if err := rows.Scan(&progress, &count); err != nil {
			return nil, fmt.Errorf("failed to scan progress count: %w", err)
		}
		counts[models.ParseProgress(progress)] += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return counts, nil
}

// scanSong maps a songs row onto a [models.Song] using the provided scan
// function, which works for both [sql.Row] and [sql.Rows].
func scanSong(scan func(dest ...any) error) (*models.Song, error) {
	var (
		title, artist                string
		tuning, notes, album, genres sql.NullString
		durationMS                   int
		progress                     string
	)

	if err := scan(&title, &artist, &tuning, &notes, &album, &durationMS, &genres, &progress); err != nil {
		return nil, err
	}

	return &models.Song{
		Title:      title,
		Artist:     artist,
		Tuning:     tuning.String,
		Notes:      notes.String,
		Album:      album.String,
		DurationMS: durationMS,
		Genres:     models.SplitGenres(genres.String),
		Progress:   models.ParseProgress(progress),
	}, nil
}
