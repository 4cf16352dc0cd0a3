package main

import (
	"context"
	"fmt"

	"github.com/fretlog/fretlog/internal/models"
	"github.com/fretlog/fretlog/internal/shared"
	"github.com/urfave/cli/v3"
)

// Genres prints the distinct genre list, one per line.
func (r *Runner) Genres(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.ensureCatalog()
	if err != nil {
		return err
	}

	genres, err := svc.Genres()
	if err != nil {
		return err
	}

	if len(genres) == 0 {
		r.writePlainln("No genres recorded yet")
		return nil
	}

	for _, genre := range genres {
		r.writePlain("%s\n", genre)
	}
	return nil
}

// Tunings prints the distinct tuning list in display form.
func (r *Runner) Tunings(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.ensureCatalog()
	if err != nil {
		return err
	}

	tunings, err := svc.Tunings()
	if err != nil {
		return err
	}

	if len(tunings) == 0 {
		r.writePlainln("No tunings recorded yet")
		return nil
	}

	for _, tuning := range tunings {
		r.writePlain("%s\n", tuning)
	}
	return nil
}

type statsJSON struct {
	Total    int            `json:"total"`
	Progress map[string]int `json:"progress"`
	Tunings  []string       `json:"tunings"`
	Genres   []string       `json:"genres"`
}

// StatsReport summarizes the catalog: totals, progress breakdown, and the
// distinct tuning and genre vocabularies.
func (r *Runner) StatsReport(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.ensureCatalog()
	if err != nil {
		return err
	}

	stats, err := svc.Stats()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		progress := make(map[string]int, len(stats.ByProgress))
		for state, count := range stats.ByProgress {
			progress[string(state)] = count
		}
		return r.writeJSON(statsJSON{
			Total:    stats.Total,
			Progress: progress,
			Tunings:  stats.Tunings,
			Genres:   stats.Genres,
		}, true)
	}

	r.writePlainHeader("Catalog")
	r.writePlain("Songs:    %d\n", stats.Total)
	for _, state := range models.ProgressStates {
		r.writePlain("%-9s %d\n", fmt.Sprintf("%s:", state), stats.ByProgress[state])
	}
	r.writePlain("Tunings:  %d\n", len(stats.Tunings))
	r.writePlain("Genres:   %d\n", len(stats.Genres))
	return nil
}

// ArtPath prints the cached cover path for an album, if any.
func (r *Runner) ArtPath(ctx context.Context, cmd *cli.Command) error {
	album := cmd.StringArg("album")
	if album == "" {
		return fmt.Errorf("%w: ALBUM is required", shared.ErrMissingArgument)
	}

	svc, err := r.ensureCatalog()
	if err != nil {
		return err
	}

	path, ok := svc.ArtPath(album)
	if !ok {
		r.writePlainln("No cached art for %q", album)
		return nil
	}

	r.writePlain("%s\n", path)
	return nil
}

// ArtInvalidate drops the cached cover for one album.
func (r *Runner) ArtInvalidate(ctx context.Context, cmd *cli.Command) error {
	album := cmd.StringArg("album")
	if album == "" {
		return fmt.Errorf("%w: ALBUM is required", shared.ErrMissingArgument)
	}

	if _, err := r.ensureCatalog(); err != nil {
		return err
	}

	if err := r.art.Invalidate(album); err != nil {
		return err
	}

	r.writePlainln("✓ Invalidated cached art for %q", album)
	return nil
}

// ArtPurge empties the art cache.
func (r *Runner) ArtPurge(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.ensureCatalog(); err != nil {
		return err
	}

	if err := r.art.Purge(); err != nil {
		return err
	}

	r.writePlainln("✓ Purged the art cache")
	return nil
}
