// package models defines the data model for the song catalog.
//
// [Song] is the only persistent entity. It is identified by its natural key,
// the (title, artist) pair, compared case-insensitively everywhere. The
// genres list is persisted as a single delimiter-joined column; see
// [JoinGenres] and [SplitGenres] for the round trip.
package models
