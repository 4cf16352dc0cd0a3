package shared

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
)

// resetConfirmEnv must be set to "yes" before ResetSchema will run.
const resetConfirmEnv = "FRETLOG_CONFIRM_RESET"

// Migration represents one ordered schema change.
//
// Steps must be safe to re-run: the version row is the source of truth for
// what has been applied, but a step that half-ran on a previous failed
// attempt may see its own partial work.
type Migration struct {
	Version int
	Name    string
	Apply   func(tx *sql.Tx) error
}

// songsTableDDL is the current shape of the songs table.
//
// title/artist are stored lowercased; the UNIQUE constraint makes the insert
// itself the source of truth for the natural-key invariant.
const songsTableDDL = `
	CREATE TABLE songs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		tuning TEXT,
		notes TEXT,
		album TEXT,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		genres TEXT,
		progress TEXT NOT NULL DEFAULT 'Not Started',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (title, artist)
	)
`

// Migrations returns all registered migration steps in ascending order.
func Migrations() []Migration {
	return []Migration{
		{Version: 1, Name: "add schema version table", Apply: addSchemaVersionTable},
		{Version: 2, Name: "add progress column", Apply: addProgressColumn},
		{Version: 3, Name: "rebuild songs with unique natural key", Apply: rebuildSongsTable},
	}
}

// addSchemaVersionTable creates the single-row version tracking table.
func addSchemaVersionTable(tx *sql.Tx) error {
	if _, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			version INTEGER NOT NULL
		)
	`); err != nil {
		return err
	}
	_, err := tx.Exec("INSERT OR IGNORE INTO schema_version (id, version) VALUES (1, 1)")
	return err
}

// addProgressColumn adds the progress column to the songs table.
//
// Databases that predate the songs table get it created fully instead.
func addProgressColumn(tx *sql.Tx) error {
	_, err := tx.Exec("ALTER TABLE songs ADD COLUMN progress TEXT DEFAULT 'Not Started'")
	if err == nil {
		return nil
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such table"):
		_, err = tx.Exec(`
			CREATE TABLE songs (
				title TEXT NOT NULL,
				artist TEXT NOT NULL,
				tuning TEXT,
				notes TEXT,
				album TEXT,
				duration TEXT,
				genres TEXT,
				progress TEXT DEFAULT 'Not Started',
				PRIMARY KEY (title, artist)
			)
		`)
		return err
	case strings.Contains(msg, "duplicate column name"):
		// Re-run against an already migrated table.
		return nil
	default:
		return err
	}
}

// rebuildSongsTable migrates the legacy songs table to the current shape:
// UUID row id, INTEGER duration_ms, declared UNIQUE(title, artist), and
// created_at/updated_at timestamps. Existing rows are copied forward.
func rebuildSongsTable(tx *sql.Tx) error {
	var migrated int
	err := tx.QueryRow(
		"SELECT COUNT(*) FROM pragma_table_info('songs') WHERE name = 'duration_ms'",
	).Scan(&migrated)
	if err != nil {
		return fmt.Errorf("failed to inspect songs table: %w", err)
	}
	if migrated > 0 {
		return nil
	}

	if _, err := tx.Exec(strings.Replace(songsTableDDL, "CREATE TABLE songs", "CREATE TABLE songs_new", 1)); err != nil {
		return err
	}

	// Legacy duration was stored as TEXT milliseconds; CAST tolerates both
	// empty strings and plain integers.
	if _, err := tx.Exec(`
		INSERT INTO songs_new (id, title, artist, tuning, notes, album, duration_ms, genres, progress)
		SELECT lower(hex(randomblob(16))),
			lower(title), lower(artist), tuning, notes, album,
			CAST(COALESCE(NULLIF(duration, ''), '0') AS INTEGER),
			genres, COALESCE(progress, 'Not Started')
		FROM songs
	`); err != nil {
		return err
	}

	if _, err := tx.Exec("DROP TABLE songs"); err != nil {
		return err
	}
	_, err = tx.Exec("ALTER TABLE songs_new RENAME TO songs")
	return err
}

// CurrentSchemaVersion returns the schema version recorded in the database.
// An absent version table means a new or pre-versioning database (version 0).
func CurrentSchemaVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT version FROM schema_version WHERE id = 1").Scan(&version)
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// RunMigrations applies every registered step above the current version, in
// ascending order. Each step runs in its own transaction together with the
// version upsert, so a failed step leaves the version at its last
// successful value and aborts the run.
func RunMigrations(db *sql.DB) error {
	current, err := CurrentSchemaVersion(db)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMigration, err)
	}

	for _, migration := range Migrations() {
		if migration.Version <= current {
			continue
		}
		if err := applyMigration(db, migration); err != nil {
			return fmt.Errorf("%w: step %d (%s): %v", ErrMigration, migration.Version, migration.Name, err)
		}
		current = migration.Version
	}

	return nil
}

// applyMigration executes a single step and advances the version row in the
// same transaction.
func applyMigration(db *sql.DB, migration Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := migration.Apply(tx); err != nil {
		return err
	}

	if migration.Version > 1 {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO schema_version (id, version) VALUES (1, ?)",
			migration.Version,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ResetSchema drops and recreates the songs table, destroying all catalog
// data. It refuses to run unless the FRETLOG_CONFIRM_RESET environment
// variable is set to "yes".
func ResetSchema(db *sql.DB) error {
	if os.Getenv(resetConfirmEnv) != "yes" {
		return fmt.Errorf(
			"%w: this drops the songs table and deletes every saved song; set %s=yes to proceed",
			ErrResetRefused, resetConfirmEnv,
		)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DROP TABLE IF EXISTS songs"); err != nil {
		return fmt.Errorf("failed to drop songs table: %w", err)
	}
	if _, err := tx.Exec(songsTableDDL); err != nil {
		return fmt.Errorf("failed to recreate songs table: %w", err)
	}

	return tx.Commit()
}
