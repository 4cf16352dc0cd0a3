package models

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Progress is the learning state of a song.
type Progress string

const (
	ProgressNotStarted Progress = "Not Started"
	ProgressLearning   Progress = "Learning"
	ProgressMastered   Progress = "Mastered"
)

// ProgressStates lists the valid states in display order.
var ProgressStates = []Progress{ProgressNotStarted, ProgressLearning, ProgressMastered}

// ParseProgress maps a stored or user-supplied string to a Progress,
// coercing anything unrecognized to [ProgressNotStarted].
func ParseProgress(s string) Progress {
	for _, state := range ProgressStates {
		if Progress(s) == state {
			return state
		}
	}
	return ProgressNotStarted
}

// GenreDelimiter joins the genre list into the single stored column.
// No genre string may contain it, or the round trip breaks.
const GenreDelimiter = ", "

// Song is the sole catalog entity, identified by the (title, artist)
// natural key compared case-insensitively. Title and artist are lowercased
// at the storage boundary; use [Song.DisplayTitle] and [Song.DisplayArtist]
// when rendering.
type Song struct {
	Title      string
	Artist     string
	Tuning     string
	Notes      string
	Album      string
	DurationMS int
	Genres     []string
	Progress   Progress
}

// NewSong creates a Song with the default progress state.
func NewSong(title, artist string) *Song {
	return &Song{
		Title:    title,
		Artist:   artist,
		Progress: ProgressNotStarted,
	}
}

// Validate checks that the song can be persisted.
func (s *Song) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(s.Artist) == "" {
		return fmt.Errorf("artist is required")
	}
	for _, genre := range s.Genres {
		if strings.Contains(genre, GenreDelimiter) {
			return fmt.Errorf("genre %q contains the reserved delimiter %q", genre, GenreDelimiter)
		}
	}
	return nil
}

var titleCaser = cases.Title(language.English)

// DisplayTitle re-capitalizes the stored lowercase title for display.
func (s *Song) DisplayTitle() string {
	return titleCaser.String(s.Title)
}

// DisplayArtist re-capitalizes the stored lowercase artist for display.
func (s *Song) DisplayArtist() string {
	return titleCaser.String(s.Artist)
}

// JoinGenres serializes a genre list into the stored column format.
func JoinGenres(genres []string) string {
	return strings.Join(genres, GenreDelimiter)
}

// SplitGenres parses the stored column back into an ordered genre list.
// An empty column yields a nil slice, not [""].
func SplitGenres(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, GenreDelimiter)
}

// FormatTuning normalizes a tuning string for display: an exact 6-character
// all-uppercase token is treated as a compact per-string note sequence
// (e.g. "DADGAD") and kept verbatim, otherwise each word is capitalized.
func FormatTuning(tuning string) string {
	if len(tuning) == 6 && tuning == strings.ToUpper(tuning) && strings.ToLower(tuning) != tuning {
		return tuning
	}
	words := strings.Fields(tuning)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
