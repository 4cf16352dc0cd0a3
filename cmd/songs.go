package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fretlog/fretlog/internal/catalog"
	"github.com/fretlog/fretlog/internal/models"
	"github.com/fretlog/fretlog/internal/shared"
	"github.com/urfave/cli/v3"
)

// songJSON is the JSON projection of a [models.Song] for CLI output.
type songJSON struct {
	Title      string   `json:"title"`
	Artist     string   `json:"artist"`
	Album      string   `json:"album,omitempty"`
	Tuning     string   `json:"tuning,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	DurationMS int      `json:"duration_ms,omitempty"`
	Genres     []string `json:"genres,omitempty"`
	Progress   string   `json:"progress"`
}

func toSongJSON(song *models.Song) songJSON {
	return songJSON{
		Title:      song.DisplayTitle(),
		Artist:     song.DisplayArtist(),
		Album:      song.Album,
		Tuning:     song.Tuning,
		Notes:      song.Notes,
		DurationMS: song.DurationMS,
		Genres:     song.Genres,
		Progress:   string(song.Progress),
	}
}

func toSongsJSON(songs []*models.Song) []songJSON {
	out := make([]songJSON, len(songs))
	for i, song := range songs {
		out[i] = toSongJSON(song)
	}
	return out
}

// sortSongs orders songs by artist then title for display. Storage order
// is unspecified; presentation sorts.
func sortSongs(songs []*models.Song) {
	sort.Slice(songs, func(i, j int) bool {
		if songs[i].Artist != songs[j].Artist {
			return songs[i].Artist < songs[j].Artist
		}
		return songs[i].Title < songs[j].Title
	})
}

// writeSongTable renders songs as aligned plain-text rows.
func (r *Runner) writeSongTable(songs []*models.Song) {
	r.writePlain("%-24s %-28s %-24s %-12s %-11s %s\n", "ARTIST", "TITLE", "ALBUM", "TUNING", "PROGRESS", "LENGTH")
	for _, song := range songs {
		r.writePlain("%-24s %-28s %-24s %-12s %-11s %s\n",
			song.DisplayArtist(),
			song.DisplayTitle(),
			song.Album,
			models.FormatTuning(song.Tuning),
			song.Progress,
			shared.FormatDuration(song.DurationMS),
		)
	}
}

// AddSong saves a new song, enriching it from Last.fm unless --custom.
//
// Expected rejections (duplicate key, track not found) print as status
// messages rather than hard errors.
func (r *Runner) AddSong(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.ensureCatalog()
	if err != nil {
		return err
	}

	song := models.NewSong(cmd.String("title"), cmd.String("artist"))
	song.Tuning = cmd.String("tuning")
	song.Notes = cmd.String("notes")

	isCustom := cmd.Bool("custom")
	if isCustom {
		song.Album = cmd.String("album")
		if song.Album == "" {
			song.Album = "N/A"
		}
		song.DurationMS = int(cmd.Int("duration"))
		song.Genres = cmd.StringSlice("genre")
	}

	r.logger.Info("saving song", "title", song.Title, "artist", song.Artist, "custom", isCustom)

	if err := svc.Save(ctx, song, isCustom); err != nil {
		if errors.Is(err, shared.ErrDuplicateSong) || errors.Is(err, shared.ErrMetadataUnavailable) {
			r.writePlainln("✗ %v", err)
			return nil
		}
		return err
	}

	r.writePlainln("✓ Saved %s by %s", song.DisplayTitle(), song.DisplayArtist())
	return nil
}

// ShowSong prints a single song by natural key.
func (r *Runner) ShowSong(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	artist := cmd.StringArg("artist")
	if title == "" || artist == "" {
		return fmt.Errorf("%w: TITLE and ARTIST are required", shared.ErrMissingArgument)
	}

	svc, err := r.ensureCatalog()
	if err != nil {
		return err
	}

	song, err := svc.Get(title, artist)
	if err != nil {
		if errors.Is(err, shared.ErrSongNotFound) {
			r.writePlainln("✗ %s by %s is not in the catalog", title, artist)
			return nil
		}
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(toSongJSON(song), cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("%s — %s", song.DisplayArtist(), song.DisplayTitle()))
	r.writePlain("Album:    %s\n", song.Album)
	r.writePlain("Length:   %s\n", shared.FormatDuration(song.DurationMS))
	r.writePlain("Tuning:   %s\n", models.FormatTuning(song.Tuning))
	r.writePlain("Genres:   %s\n", models.JoinGenres(song.Genres))
	r.writePlain("Progress: %s\n", song.Progress)
	if song.Notes != "" {
		r.writePlain("Notes:    %s\n", song.Notes)
	}
	if path, ok := svc.ArtPath(song.Album); ok {
		r.writePlain("Art:      %s\n", path)
	}
	return nil
}

// ListSongs prints the whole catalog.
func (r *Runner) ListSongs(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.ensureCatalog()
	if err != nil {
		return err
	}

	songs, err := svc.List()
	if err != nil {
		return err
	}
	sortSongs(songs)

	if cmd.Bool("json") {
		return r.writeJSON(toSongsJSON(songs), cmd.Bool("pretty"))
	}

	if len(songs) == 0 {
		r.writePlainln("The catalog is empty. Add a song with: fretlog add -t TITLE -a ARTIST")
		return nil
	}

	r.writeSongTable(songs)
	r.writePlainln("%d song(s)", len(songs))
	return nil
}

// EditSong updates fields on an existing song. Only flags that were set
// are applied; album/duration/genre edits require --custom.
func (r *Runner) EditSong(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.ensureCatalog()
	if err != nil {
		return err
	}

	title := cmd.String("title")
	artist := cmd.String("artist")

	song, err := svc.Get(title, artist)
	if err != nil {
		if errors.Is(err, shared.ErrSongNotFound) {
			r.writePlainln("✗ %s by %s is not in the catalog", title, artist)
			return nil
		}
		return err
	}

	if cmd.IsSet("notes") {
		song.Notes = cmd.String("notes")
	}
	if cmd.IsSet("tuning") {
		song.Tuning = cmd.String("tuning")
	}
	if cmd.IsSet("progress") {
		song.Progress = models.ParseProgress(cmd.String("progress"))
	}

	metadataEdit := cmd.IsSet("album") || cmd.IsSet("duration") || cmd.IsSet("genre")
	if metadataEdit && !cmd.Bool("custom") {
		return fmt.Errorf("%w: album, duration, and genres come from Last.fm; pass --custom to override them on a custom entry", shared.ErrInvalidArgument)
	}
	if cmd.IsSet("album") {
		song.Album = cmd.String("album")
	}
	if cmd.IsSet("duration") {
		song.DurationMS = int(cmd.Int("duration"))
	}
	if cmd.IsSet("genre") {
		song.Genres = cmd.StringSlice("genre")
	}

	if err := svc.Update(song); err != nil {
		if errors.Is(err, shared.ErrSongNotFound) {
			r.writePlainln("✗ %v", err)
			return nil
		}
		return err
	}

	r.writePlainln("✓ Updated %s by %s", song.DisplayTitle(), song.DisplayArtist())
	return nil
}

// DeleteSong removes a song. Deleting an absent song still reports success
// because the end state is the same.
func (r *Runner) DeleteSong(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	artist := cmd.StringArg("artist")
	if title == "" || artist == "" {
		return fmt.Errorf("%w: TITLE and ARTIST are required", shared.ErrMissingArgument)
	}

	svc, err := r.ensureCatalog()
	if err != nil {
		return err
	}

	if err := svc.Delete(title, artist); err != nil {
		return err
	}

	r.writePlainln("✓ Deleted %s by %s", title, artist)
	return nil
}

// SearchSongs matches songs by title/artist substring.
func (r *Runner) SearchSongs(ctx context.Context, cmd *cli.Command) error {
	text := cmd.StringArg("text")

	svc, err := r.ensureCatalog()
	if err != nil {
		return err
	}

	songs, err := svc.Search(text)
	if err != nil {
		return err
	}
	sortSongs(songs)

	if cmd.Bool("json") {
		return r.writeJSON(toSongsJSON(songs), true)
	}

	if len(songs) == 0 {
		r.writePlainln("No songs match %q", text)
		return nil
	}

	r.writeSongTable(songs)
	r.writePlainln("%d match(es)", len(songs))
	return nil
}

// FilterSongs applies criteria over the catalog, optionally down-sampling.
func (r *Runner) FilterSongs(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.ensureCatalog()
	if err != nil {
		return err
	}

	criteria := catalog.Criteria{
		Text:            cmd.String("text"),
		Genre:           cmd.String("genre"),
		Tunings:         cmd.StringSlice("tuning"),
		ExcludeMastered: cmd.Bool("exclude-mastered"),
		SampleSize:      int(cmd.Int("sample")),
	}

	r.logger.Debug("filtering catalog",
		"text", criteria.Text,
		"genre", criteria.Genre,
		"tunings", strings.Join(criteria.Tunings, ","),
		"exclude_mastered", criteria.ExcludeMastered,
		"sample", criteria.SampleSize,
	)

	songs, err := svc.Filter(criteria)
	if err != nil {
		return err
	}
	sortSongs(songs)

	if cmd.Bool("json") {
		return r.writeJSON(toSongsJSON(songs), true)
	}

	if len(songs) == 0 {
		r.writePlainln("No songs match the given criteria")
		return nil
	}

	r.writeSongTable(songs)
	r.writePlainln("%d song(s)", len(songs))
	return nil
}
