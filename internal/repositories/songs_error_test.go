package repositories

import (
	"errors"
	"testing"

	"github.com/fretlog/fretlog/internal/models"
	"github.com/fretlog/fretlog/internal/shared"
)

// setupClosedRepo migrates an in-memory database, closes it, and returns a
// repository over the dead connection so every statement fails.
func setupClosedRepo(t *testing.T) *SongRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	db.Close()

	return NewSongRepository(db)
}

func TestSongRepositoryErrors(t *testing.T) {
	t.Run("Insert", func(t *testing.T) {
		t.Run("StoreFailure", func(t *testing.T) {
			repo := setupClosedRepo(t)

			song := models.NewSong("Yesterday", "The Beatles")
			err := repo.Insert(song)
			if err == nil {
				t.Fatal("expected insert on closed database to fail")
			}
			if !errors.Is(err, shared.ErrStoreFailure) {
				t.Errorf("expected ErrStoreFailure, got %v", err)
			}
		})
	})

	t.Run("UpdateFields", func(t *testing.T) {
		t.Run("StoreFailure", func(t *testing.T) {
			repo := setupClosedRepo(t)

			song := models.NewSong("Yesterday", "The Beatles")
			found, err := repo.UpdateFields(song)
			if err == nil {
				t.Fatal("expected update on closed database to fail")
			}
			if !errors.Is(err, shared.ErrStoreFailure) {
				t.Errorf("expected ErrStoreFailure, got %v", err)
			}
			if found {
				t.Error("expected found to be false on store failure")
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("StoreFailure", func(t *testing.T) {
			repo := setupClosedRepo(t)

			err := repo.Delete("Yesterday", "The Beatles")
			if err == nil {
				t.Fatal("expected delete on closed database to fail")
			}
			if !errors.Is(err, shared.ErrStoreFailure) {
				t.Errorf("expected ErrStoreFailure, got %v", err)
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("StoreFailure Is Not NotFound", func(t *testing.T) {
			repo := setupClosedRepo(t)

			_, err := repo.Get("Yesterday", "The Beatles")
			if err == nil {
				t.Fatal("expected get on closed database to fail")
			}
			if errors.Is(err, shared.ErrSongNotFound) {
				t.Errorf("expected a store error, not ErrSongNotFound: %v", err)
			}
		})
	})

	t.Run("List", func(t *testing.T) {
		t.Run("StoreFailure", func(t *testing.T) {
			repo := setupClosedRepo(t)

			if _, err := repo.List(); err == nil {
				t.Fatal("expected list on closed database to fail")
			}
		})
	})

	t.Run("Exists", func(t *testing.T) {
		t.Run("StoreFailure", func(t *testing.T) {
			repo := setupClosedRepo(t)

			if _, err := repo.Exists("Yesterday", "The Beatles"); err == nil {
				t.Fatal("expected existence check on closed database to fail")
			}
		})
	})
}
