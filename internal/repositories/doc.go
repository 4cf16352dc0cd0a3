// Package repositories implements SQLite persistence for the song catalog.
//
// [SongRepository] owns all durable state. Every statement is parameterized
// and every lookup on the natural key compares title and artist
// case-insensitively. Mutating operations each run in their own
// transaction: commit on success, rollback and a wrapped
// [shared.ErrStoreFailure] on any store error, so no operation is ever left
// half-committed.
package repositories
