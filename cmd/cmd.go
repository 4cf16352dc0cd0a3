// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// titleArtistArgs declares the positional TITLE ARTIST pair shared by
// show/delete.
func titleArtistArgs() []cli.Argument {
	return []cli.Argument{
		&cli.StringArg{Name: "title"},
		&cli.StringArg{Name: "artist"},
	}
}

// setupCommand initializes the config file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file and initialize the database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
		Action: r.Setup,
	}
}

// addCommand saves a new song, enriched from Last.fm unless --custom.
func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a song to the catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "title",
				Aliases:  []string{"t"},
				Usage:    "Song title",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "artist",
				Aliases:  []string{"a"},
				Usage:    "Artist name",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "tuning",
				Usage: "Guitar tuning (e.g. \"Standard\", \"DADGAD\")",
			},
			&cli.StringFlag{
				Name:  "notes",
				Usage: "Free-form notes",
			},
			&cli.BoolFlag{
				Name:  "custom",
				Usage: "Skip the Last.fm lookup and trust the supplied fields",
			},
			&cli.StringFlag{
				Name:  "album",
				Usage: "Album title (custom entries only)",
			},
			&cli.IntFlag{
				Name:  "duration",
				Usage: "Track length in milliseconds (custom entries only)",
			},
			&cli.StringSliceFlag{
				Name:  "genre",
				Usage: "Genre tag, repeatable (custom entries only)",
			},
		},
		Action: r.AddSong,
	}
}

// showCommand prints one song.
func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a song by title and artist",
		Arguments: titleArtistArgs(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.ShowSong,
	}
}

// listCommand prints the full catalog.
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List every song in the catalog",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.ListSongs,
	}
}

// editCommand updates fields on an existing song.
func editCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "edit",
		Usage: "Edit an existing song",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "title",
				Aliases:  []string{"t"},
				Usage:    "Song title",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "artist",
				Aliases:  []string{"a"},
				Usage:    "Artist name",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "notes",
				Usage: "Replace the notes",
			},
			&cli.StringFlag{
				Name:  "tuning",
				Usage: "Replace the tuning",
			},
			&cli.StringFlag{
				Name:  "progress",
				Usage: "Set the progress: \"Not Started\", \"Learning\", or \"Mastered\"",
			},
			&cli.BoolFlag{
				Name:  "custom",
				Usage: "Acknowledge this is a custom entry, unlocking album/duration/genre edits",
			},
			&cli.StringFlag{
				Name:  "album",
				Usage: "Replace the album (requires --custom)",
			},
			&cli.IntFlag{
				Name:  "duration",
				Usage: "Replace the duration in milliseconds (requires --custom)",
			},
			&cli.StringSliceFlag{
				Name:  "genre",
				Usage: "Replace the genre list, repeatable (requires --custom)",
			},
		},
		Action: r.EditSong,
	}
}

// deleteCommand removes a song.
func deleteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a song by title and artist",
		Arguments: titleArtistArgs(),
		Action:    r.DeleteSong,
	}
}

// searchCommand matches songs by title/artist substring.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search songs by title or artist substring",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "text"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.SearchSongs,
	}
}

// filterCommand selects songs by criteria, optionally down-sampling.
func filterCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "filter",
		Usage: "Filter the catalog by text, genre, tuning, or progress",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "text",
				Usage: "Substring match on artist, title, or album",
			},
			&cli.StringFlag{
				Name:  "genre",
				Usage: "Exact genre membership match",
			},
			&cli.StringSliceFlag{
				Name:  "tuning",
				Usage: "Tuning set membership, repeatable",
			},
			&cli.BoolFlag{
				Name:  "exclude-mastered",
				Usage: "Drop songs already mastered",
			},
			&cli.IntFlag{
				Name:  "sample",
				Usage: "Down-sample to at most N random songs",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.FilterSongs,
	}
}

// genresCommand lists the catalog's unique genres.
func genresCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "genres",
		Usage:  "List unique genres (artist-name collisions excluded)",
		Action: r.Genres,
	}
}

// tuningsCommand lists the catalog's unique tunings.
func tuningsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tunings",
		Usage:  "List unique tunings, display-formatted",
		Action: r.Tunings,
	}
}

// statsCommand prints catalog aggregates.
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show catalog statistics",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.StatsReport,
	}
}

// artCommand handles album art cache maintenance.
func artCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "art",
		Usage: "Album art cache maintenance",
		Commands: []*cli.Command{
			{
				Name:  "path",
				Usage: "Print the cached art path for an album",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "album"},
				},
				Action: r.ArtPath,
			},
			{
				Name:  "invalidate",
				Usage: "Remove one cached album art entry",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "album"},
				},
				Action: r.ArtInvalidate,
			},
			{
				Name:   "purge",
				Usage:  "Empty the album art cache",
				Action: r.ArtPurge,
			},
		},
	}
}

// dbCommand groups destructive schema operations.
func dbCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "Database maintenance",
		Commands: []*cli.Command{
			{
				Name:   "reset",
				Usage:  "Drop and recreate the songs table (requires FRETLOG_CONFIRM_RESET=yes)",
				Action: r.DBReset,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive catalog browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"browse"},
		Usage:   "Browse the catalog interactively",
		Action:  r.TUI,
	}
}
